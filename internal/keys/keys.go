// Package keys encodes and decodes the identifiers that group questions:
// exam keys (LEVEL-YEAR-MONTH) and daily keys (LEVEL-CATEGORY-SEQ4), plus
// the completion tokens used by progress tracking.
package keys

import (
	"fmt"
	"strings"
)

const (
	// MaxWeek is the number of weeks in a (level, category) track.
	MaxWeek = 10

	// DaysPerWeek is the number of daily sets in one week.
	DaysPerWeek = 7
)

// Level is a JLPT proficiency tier.
type Level string

const (
	N1 Level = "N1"
	N2 Level = "N2"
	N3 Level = "N3"
	N4 Level = "N4"
	N5 Level = "N5"
)

// AllLevels lists every level, hardest first.
var AllLevels = []Level{N1, N2, N3, N4, N5}

// ParseLevel accepts "N3" or "n3".
func ParseLevel(s string) (Level, error) {
	l := Level(strings.ToUpper(strings.TrimSpace(s)))
	for _, v := range AllLevels {
		if v == l {
			return l, nil
		}
	}
	return "", fmt.Errorf("invalid level %q: must be one of N1-N5", s)
}

// Category is a daily practice subject.
type Category string

const (
	Grammar Category = "grammar"
	Vocab   Category = "vocab"
)

// AllCategories lists the daily practice subjects.
var AllCategories = []Category{Grammar, Vocab}

// ParseCategory accepts any casing.
func ParseCategory(s string) (Category, error) {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case Grammar:
		return Grammar, nil
	case Vocab:
		return Vocab, nil
	}
	return "", fmt.Errorf("invalid category %q: must be grammar or vocab", s)
}

// Month is an exam session month. The test runs in July and December.
type Month string

const (
	July     Month = "07"
	December Month = "12"
)

// Legacy session labels. Some content was labeled by session number
// instead of by month; both encodings name the same sitting.
const (
	FirstSession  Month = "1"
	SecondSession Month = "2"
)

// ParseMonth accepts "07", "7", "12" and the legacy session labels "1"/"2".
// The result is always a canonical month.
func ParseMonth(s string) (Month, error) {
	switch strings.TrimSpace(s) {
	case "07", "7", "1":
		return July, nil
	case "12", "2":
		return December, nil
	}
	return "", fmt.Errorf("invalid month %q: must be 07 or 12", s)
}

// AltMonth returns the other encoding of the same sitting: canonical months
// map to their session label and session labels map back. The second return
// is false for values with no alternate.
func AltMonth(m Month) (Month, bool) {
	switch m {
	case July:
		return FirstSession, true
	case December:
		return SecondSession, true
	case FirstSession:
		return July, true
	case SecondSession:
		return December, true
	}
	return "", false
}

// ClampWeek clamps w into [1, MaxWeek].
func ClampWeek(w int) int {
	return min(max(w, 1), MaxWeek)
}

// ClampDay clamps d into [1, DaysPerWeek].
func ClampDay(d int) int {
	return min(max(d, 1), DaysPerWeek)
}
