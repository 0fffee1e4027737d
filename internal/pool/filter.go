package pool

import (
	"fmt"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
)

// Mode is the content mode a filter selects.
type Mode string

const (
	ModeExam  Mode = "exam"
	ModeDaily Mode = "daily"
)

// Filter is either an ExamFilter or a DailyFilter.
type Filter interface {
	Mode() Mode
	String() string
	isFilter()
}

// LevelSelector is a single level, RandomPair or AllLevels.
type LevelSelector string

const (
	// RandomPair resolves to the fixed two-level set in Config.RandomPair.
	RandomPair LevelSelector = "random-pair"

	// AllLevels resolves to N1 through N5.
	AllLevels LevelSelector = "all"
)

// ParseLevelSelector accepts a level name, "random-pair" or "all".
func ParseLevelSelector(s string) (LevelSelector, error) {
	switch LevelSelector(s) {
	case RandomPair, AllLevels:
		return LevelSelector(s), nil
	}
	l, err := keys.ParseLevel(s)
	if err != nil {
		return "", fmt.Errorf("invalid level selector %q: want N1-N5, random-pair or all", s)
	}
	return LevelSelector(l), nil
}

// Single reports the selected level when the selector names exactly one.
func (s LevelSelector) Single() (keys.Level, bool) {
	if s == RandomPair || s == AllLevels {
		return "", false
	}
	return keys.Level(s), true
}

// ExamFilter selects mock-exam questions.
type ExamFilter struct {
	Level LevelSelector
	Kind  content.Kind

	// Year 0 matches any year.
	Year int

	// Month "" matches any month.
	Month keys.Month

	// WholePaper includes every section instead of Kind's sections. It is
	// honored only when the filter is exact (see Exact).
	WholePaper bool
}

func (ExamFilter) Mode() Mode { return ModeExam }
func (ExamFilter) isFilter()  {}

// Exact reports whether the filter names one paper: a single level with both
// year and month set.
func (f ExamFilter) Exact() bool {
	_, single := f.Level.Single()
	return single && f.Year != 0 && f.Month != ""
}

func (f ExamFilter) String() string {
	year := "any"
	if f.Year != 0 {
		year = fmt.Sprintf("%d", f.Year)
	}
	month := "any"
	if f.Month != "" {
		month = string(f.Month)
	}
	s := fmt.Sprintf("exam level=%s kind=%s year=%s month=%s", f.Level, f.Kind, year, month)
	if f.WholePaper {
		s += " whole-paper"
	}
	return s
}

// DailyFilter selects one day's practice set. Key, when set, is used as is;
// otherwise it is computed from Ref.
type DailyFilter struct {
	Ref keys.DailyRef
	Key string
}

func (DailyFilter) Mode() Mode { return ModeDaily }
func (DailyFilter) isFilter()  {}

// GroupKey returns the daily key the filter resolves to.
func (f DailyFilter) GroupKey() string {
	if f.Key != "" {
		return f.Key
	}
	return f.Ref.Key()
}

func (f DailyFilter) String() string {
	return "daily " + f.GroupKey()
}

// Relax returns the next weaker filter: it drops the year first, then the
// month. The second return is false when nothing is left to drop.
func Relax(f ExamFilter) (ExamFilter, bool) {
	switch {
	case f.Year != 0:
		f.Year = 0
		return f, true
	case f.Month != "":
		f.Month = ""
		return f, true
	}
	return f, false
}
