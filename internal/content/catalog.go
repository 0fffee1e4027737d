package content

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/abhisek/kotoba/internal/keys"
)

// ErrInvalidCatalog is returned (wrapped) for any catalog that fails
// validation.
var ErrInvalidCatalog = errors.New("invalid catalog")

// ValidationError locates a semantic problem inside a catalog.
type ValidationError struct {
	GroupKey   string
	ItemNumber int
	Err        error
}

func (e *ValidationError) Error() string {
	if e.ItemNumber > 0 {
		return fmt.Sprintf("%s item %d: %v", e.GroupKey, e.ItemNumber, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.GroupKey, e.Err)
}

func (e *ValidationError) Unwrap() []error { return []error{ErrInvalidCatalog, e.Err} }

// Catalog is the import format of a question bank.
type Catalog struct {
	Title  string         `json:"title,omitempty"`
	Groups []CatalogGroup `json:"groups"`
}

// CatalogGroup holds the questions of one exam paper or one daily set.
type CatalogGroup struct {
	GroupKey  string            `json:"group_key"`
	Questions []CatalogQuestion `json:"questions"`
}

// CatalogQuestion is the import form of a Question.
type CatalogQuestion struct {
	ItemNumber int             `json:"item_number"`
	Section    Section         `json:"section"`
	Stem       string          `json:"stem"`
	Passage    *string         `json:"passage,omitempty"`
	Choices    []CatalogChoice `json:"choices"`
}

// CatalogChoice is the import form of a Choice.
type CatalogChoice struct {
	Position    int     `json:"position"`
	Content     string  `json:"content"`
	IsCorrect   bool    `json:"is_correct"`
	Explanation *string `json:"explanation,omitempty"`
}

// ToQuestions converts the group to pool questions.
func (g CatalogGroup) ToQuestions() []Question {
	out := make([]Question, 0, len(g.Questions))
	for _, cq := range g.Questions {
		q := Question{
			GroupKey:   g.GroupKey,
			ItemNumber: cq.ItemNumber,
			Section:    cq.Section,
			Stem:       cq.Stem,
			Passage:    cq.Passage,
		}
		for _, cc := range cq.Choices {
			q.Choices = append(q.Choices, Choice(cc))
		}
		out = append(out, q)
	}
	return out
}

// Group is the decoded form of a group key.
type Group struct {
	Key   string
	Level keys.Level

	// Exactly one of Exam and Daily is set.
	Exam  *keys.ExamKey
	Daily *keys.DailyRef
}

// legacyExamKeyPattern matches exam keys labeled by session number.
var legacyExamKeyPattern = regexp.MustCompile(`^(N[1-5])-(\d{4})-(1|2)$`)

// ParseGroupKey decodes an exam or daily key. Exam keys may carry a legacy
// session label ("N2-2022-1"); the label is kept as stored so queries can
// match it.
func ParseGroupKey(key string) (Group, bool) {
	if ek, ok := keys.ParseExamKey(key); ok {
		return Group{Key: key, Level: ek.Level, Exam: &ek}, true
	}
	if m := legacyExamKeyPattern.FindStringSubmatch(key); m != nil {
		year, _ := strconv.Atoi(m[2])
		ek := keys.ExamKey{Level: keys.Level(m[1]), Year: year, Month: keys.Month(m[3])}
		return Group{Key: key, Level: ek.Level, Exam: &ek}, true
	}
	if ref, ok := keys.ParseDailyKey(key); ok {
		return Group{Key: key, Level: ref.Level, Daily: &ref}, true
	}
	return Group{}, false
}

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

func getCompiledSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		// The compiler wants a plain decoded JSON value.
		defBytes, err := json.Marshal(catalogSchema)
		if err != nil {
			compileErr = fmt.Errorf("marshal catalog schema: %w", err)
			return
		}
		def, err := jsonschema.UnmarshalJSON(bytes.NewReader(defBytes))
		if err != nil {
			compileErr = fmt.Errorf("parse catalog schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("schema://catalog.json", def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiledSchema, compileErr = c.Compile("schema://catalog.json")
	})
	return compiledSchema, compileErr
}

// ParseCatalog decodes raw JSON, checks it against the catalog schema and
// then against the rules the schema cannot express.
func ParseCatalog(raw []byte) (*Catalog, error) {
	parsed, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", ErrInvalidCatalog, err)
	}

	compiled, err := getCompiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := compiled.Validate(parsed); err != nil {
		return nil, fmt.Errorf("%w: schema validation failed: %v", ErrInvalidCatalog, err)
	}

	var cat Catalog
	if err := json.Unmarshal(raw, &cat); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrInvalidCatalog, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate enforces key syntax, choice positions and the exactly-one-correct
// rule for every question.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Groups))
	for _, g := range c.Groups {
		if _, ok := ParseGroupKey(g.GroupKey); !ok {
			return &ValidationError{GroupKey: g.GroupKey, Err: errors.New("unrecognized group key")}
		}
		if seen[g.GroupKey] {
			return &ValidationError{GroupKey: g.GroupKey, Err: errors.New("duplicate group")}
		}
		seen[g.GroupKey] = true

		for _, q := range g.Questions {
			if err := validateQuestion(q); err != nil {
				return &ValidationError{GroupKey: g.GroupKey, ItemNumber: q.ItemNumber, Err: err}
			}
		}
	}
	return nil
}

func validateQuestion(q CatalogQuestion) error {
	if !ValidSections[q.Section] {
		return fmt.Errorf("unknown section %q", q.Section)
	}
	positions := make(map[int]bool, len(q.Choices))
	correct := 0
	for _, c := range q.Choices {
		if c.Position < 1 {
			return fmt.Errorf("choice position %d is not 1-based", c.Position)
		}
		if positions[c.Position] {
			return fmt.Errorf("duplicate choice position %d", c.Position)
		}
		positions[c.Position] = true
		if c.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return fmt.Errorf("want exactly one correct choice, got %d", correct)
	}
	return nil
}
