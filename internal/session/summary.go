package session

import (
	"time"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/pool"
)

// SectionResult tracks per-section performance within a session.
type SectionResult struct {
	Section   content.Section
	Total     int
	Attempted int
	Correct   int
}

// Summary holds the data shown when a session ends.
type Summary struct {
	SessionID      string
	Mode           pool.Mode
	Duration       time.Duration
	TotalQuestions int
	TotalAnswered  int
	TotalCorrect   int
	Accuracy       float64
	Sections       []SectionResult
	Missed         []content.ID
}

// BuildSummary creates a Summary from the session's current state.
// Sections appear in pool order.
func BuildSummary(s *Session) *Summary {
	var sections []SectionResult
	index := make(map[content.Section]int)
	var missed []content.ID

	for i, q := range s.questions {
		pos, ok := index[q.Section]
		if !ok {
			pos = len(sections)
			index[q.Section] = pos
			sections = append(sections, SectionResult{Section: q.Section})
		}
		sr := &sections[pos]
		sr.Total++

		a, answered := s.answers[i]
		if !answered {
			continue
		}
		sr.Attempted++
		if a.Correct {
			sr.Correct++
		} else {
			missed = append(missed, q.ID())
		}
	}

	var accuracy float64
	if s.totalAnswered > 0 {
		accuracy = float64(s.score) / float64(s.totalAnswered)
	}

	return &Summary{
		SessionID:      s.id,
		Mode:           s.mode,
		Duration:       s.now().Sub(s.startedAt),
		TotalQuestions: len(s.questions),
		TotalAnswered:  s.totalAnswered,
		TotalCorrect:   s.score,
		Accuracy:       accuracy,
		Sections:       sections,
		Missed:         missed,
	}
}
