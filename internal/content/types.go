// Package content defines the question model and the contract the quiz
// engine uses to read questions from a content source.
package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/abhisek/kotoba/internal/keys"
)

// Section is the part of an exam paper a question belongs to.
type Section string

const (
	SectionVocab     Section = "vocab"
	SectionGrammar   Section = "grammar"
	SectionReading   Section = "reading"
	SectionListening Section = "listening"
)

// ValidSections lists every known section.
var ValidSections = map[Section]bool{
	SectionVocab:     true,
	SectionGrammar:   true,
	SectionReading:   true,
	SectionListening: true,
}

// Kind selects a practice area of an exam.
type Kind string

const (
	KindLanguage  Kind = "language"
	KindReading   Kind = "reading"
	KindListening Kind = "listening"
)

// ParseKind accepts any casing.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindLanguage, KindReading, KindListening:
		return k, nil
	}
	return "", fmt.Errorf("invalid kind %q: must be language, reading or listening", s)
}

// Sections returns the sections included for the kind. Unknown kinds
// include nothing.
func (k Kind) Sections() []Section {
	switch k {
	case KindLanguage:
		return []Section{SectionVocab, SectionGrammar}
	case KindReading:
		return []Section{SectionReading}
	case KindListening:
		return []Section{SectionListening}
	}
	return nil
}

// AllSections returns every section in paper order.
func AllSections() []Section {
	return []Section{SectionVocab, SectionGrammar, SectionReading, SectionListening}
}

// Choice is one answer option. Position is 1-based and unique within its
// question.
type Choice struct {
	Position    int
	Content     string
	IsCorrect   bool
	Explanation *string
}

// Question is a read-only question record. Identity is (GroupKey, ItemNumber).
type Question struct {
	GroupKey   string
	ItemNumber int
	Section    Section
	Stem       string
	Passage    *string
	Choices    []Choice
}

// ID identifies a question within a pool.
type ID struct {
	GroupKey   string
	ItemNumber int
}

// ID returns the question's identity.
func (q Question) ID() ID {
	return ID{GroupKey: q.GroupKey, ItemNumber: q.ItemNumber}
}

// CorrectChoice returns the first choice flagged correct.
func (q Question) CorrectChoice() (Choice, bool) {
	for _, c := range q.Choices {
		if c.IsCorrect {
			return c, true
		}
	}
	return Choice{}, false
}

// ChoiceAt returns the choice with the given position.
func (q Question) ChoiceAt(position int) (Choice, bool) {
	for _, c := range q.Choices {
		if c.Position == position {
			return c, true
		}
	}
	return Choice{}, false
}

// ExamQuery selects exam rows. Zero Year and empty Month match any value.
type ExamQuery struct {
	Levels   []keys.Level
	Year     int
	Month    keys.Month
	Sections []Section
}

// Source is the read-only content collaborator.
type Source interface {
	// ExamQuestions returns exam questions matching the query, choices
	// attached. Order is unspecified.
	ExamQuestions(ctx context.Context, q ExamQuery) ([]Question, error)

	// GroupQuestions returns every question stored under groupKey.
	GroupQuestions(ctx context.Context, groupKey string) ([]Question, error)
}
