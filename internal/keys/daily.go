package keys

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var dailyKeyPattern = regexp.MustCompile(`^(N[1-5])-(GRAMMAR|VOCAB)-(\d{4})$`)

// DailyRef addresses one day's practice set.
type DailyRef struct {
	Level    Level
	Category Category
	Week     int
	Day      int
}

// Key returns the daily key for the ref.
func (r DailyRef) Key() string {
	return DailyKey(r.Level, r.Category, r.Week, r.Day)
}

// Seq returns the 1-based position of the day within the track (1..70).
func (r DailyRef) Seq() int {
	return (r.Week-1)*DaysPerWeek + r.Day
}

// Token returns the completion token for the ref.
func (r DailyRef) Token() string {
	return Token(r.Level, r.Category, r.Week, r.Day)
}

// DailyKey computes "{LEVEL}-{CATEGORY}-{seq:04d}" with seq = (week-1)*7 + day.
// Week must be in [1, MaxWeek] and day in [1, DaysPerWeek]; callers clamp
// before calling.
func DailyKey(level Level, category Category, week, day int) string {
	seq := (week-1)*DaysPerWeek + day
	return fmt.Sprintf("%s-%s-%04d", level, strings.ToUpper(string(category)), seq)
}

// ParseDailyKey is the inverse of DailyKey.
func ParseDailyKey(key string) (DailyRef, bool) {
	m := dailyKeyPattern.FindStringSubmatch(key)
	if m == nil {
		return DailyRef{}, false
	}
	seq, err := strconv.Atoi(m[3])
	if err != nil || seq < 1 || seq > MaxWeek*DaysPerWeek {
		return DailyRef{}, false
	}
	return DailyRef{
		Level:    Level(m[1]),
		Category: Category(strings.ToLower(m[2])),
		Week:     (seq-1)/DaysPerWeek + 1,
		Day:      (seq-1)%DaysPerWeek + 1,
	}, true
}

// Token formats a completion token: "{level}|{category}|{week}|{day}".
func Token(level Level, category Category, week, day int) string {
	return fmt.Sprintf("%s|%s|%d|%d", level, category, week, day)
}

// ParseToken splits a completion token. Malformed tokens return false.
func ParseToken(tok string) (DailyRef, bool) {
	parts := strings.Split(tok, "|")
	if len(parts) != 4 {
		return DailyRef{}, false
	}
	week, err := strconv.Atoi(parts[2])
	if err != nil || week < 1 || week > MaxWeek {
		return DailyRef{}, false
	}
	day, err := strconv.Atoi(parts[3])
	if err != nil || day < 1 || day > DaysPerWeek {
		return DailyRef{}, false
	}
	return DailyRef{
		Level:    Level(parts[0]),
		Category: Category(parts[1]),
		Week:     week,
		Day:      day,
	}, true
}
