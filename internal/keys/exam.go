package keys

import (
	"fmt"
	"regexp"
	"strconv"
)

var examKeyPattern = regexp.MustCompile(`^(N[1-5])-(\d{4})-(07|12)$`)

// ExamKey identifies one mock exam paper.
type ExamKey struct {
	Level Level
	Year  int
	Month Month
}

// String formats the key as "{LEVEL}-{YYYY}-{MM}".
func (k ExamKey) String() string {
	return fmt.Sprintf("%s-%04d-%s", k.Level, k.Year, k.Month)
}

// ParseExamKey parses "N2-2022-07". It reports false for anything that does
// not match exactly; callers use it for display grouping only.
func ParseExamKey(key string) (ExamKey, bool) {
	m := examKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return ExamKey{}, false
	}
	year, err := strconv.Atoi(m[2])
	if err != nil {
		return ExamKey{}, false
	}
	return ExamKey{Level: Level(m[1]), Year: year, Month: Month(m[3])}, true
}
