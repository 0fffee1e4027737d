package progress

import (
	"github.com/abhisek/kotoba/internal/keys"
)

// Progress is a snapshot of one track. It is not kept in sync with storage;
// call Tracker.Refresh again after any change made elsewhere.
type Progress struct {
	Level        keys.Level
	Category     keys.Category
	UnlockedWeek int
	Completed    TokenSet
}

// Status returns the status of one day.
func (p *Progress) Status(week, day int) DayStatus {
	return StatusOf(p.Level, p.Category, week, day, p.UnlockedWeek, p.Completed)
}

// Week returns the statuses of days 1..7 of week.
func (p *Progress) Week(week int) [keys.DaysPerWeek]DayStatus {
	var out [keys.DaysPerWeek]DayStatus
	for i := range out {
		out[i] = p.Status(week, i+1)
	}
	return out
}

// WeekDone reports whether all seven days of week are completed.
func (p *Progress) WeekDone(week int) bool {
	for d := 1; d <= keys.DaysPerWeek; d++ {
		if !p.Completed.Has(keys.Token(p.Level, p.Category, week, d)) {
			return false
		}
	}
	return true
}

// DoneCount returns how many days of week are completed.
func (p *Progress) DoneCount(week int) int {
	n := 0
	for d := 1; d <= keys.DaysPerWeek; d++ {
		if p.Completed.Has(keys.Token(p.Level, p.Category, week, d)) {
			n++
		}
	}
	return n
}

// Overview returns the grid for every week of the track.
func (p *Progress) Overview() [keys.MaxWeek][keys.DaysPerWeek]DayStatus {
	var out [keys.MaxWeek][keys.DaysPerWeek]DayStatus
	for w := range out {
		out[w] = p.Week(w + 1)
	}
	return out
}

// NextAvailable returns the first available day, scanning weeks in order.
func (p *Progress) NextAvailable() (week, day int, ok bool) {
	for w := 1; w <= p.UnlockedWeek; w++ {
		for d := 1; d <= keys.DaysPerWeek; d++ {
			if p.Status(w, d) == Available {
				return w, d, true
			}
		}
	}
	return 0, 0, false
}
