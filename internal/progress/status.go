// Package progress tracks which daily practice sets are unlocked, available
// and done for each (level, category) track.
package progress

import (
	"github.com/abhisek/kotoba/internal/keys"
)

// DayStatus is the display state of one day in the week grid.
type DayStatus int

const (
	Locked DayStatus = iota
	Available
	Done
)

func (s DayStatus) String() string {
	switch s {
	case Locked:
		return "locked"
	case Available:
		return "available"
	case Done:
		return "done"
	}
	return "unknown"
}

// StatusOf computes the status of one day. It is a pure function of the
// unlocked week and the completed-token set.
//
// A week beyond unlockedWeek is locked. A completed day is done. In week 1,
// days 1 and 2 open together until either is done. Otherwise a day is
// available only when every earlier day of the same week is done.
func StatusOf(level keys.Level, category keys.Category, week, day, unlockedWeek int, completed TokenSet) DayStatus {
	if week > unlockedWeek {
		return Locked
	}
	isDone := func(d int) bool {
		return completed.Has(keys.Token(level, category, week, d))
	}
	if isDone(day) {
		return Done
	}
	if week == 1 && day <= 2 && !isDone(1) && !isDone(2) {
		return Available
	}
	for d := 1; d < day; d++ {
		if !isDone(d) {
			return Locked
		}
	}
	return Available
}
