package quiz

import (
	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/progress"
	"github.com/abhisek/kotoba/internal/session"
)

// poolLoadedMsg is sent when the pool for the screen's filter is built.
type poolLoadedMsg struct {
	Questions []content.Question

	// Filter is the filter that produced Questions. It differs from the
	// requested one when the exam filter was relaxed.
	Filter  pool.Filter
	Relaxed int
	Err     error
}

// finishedMsg is sent once the session summary and progress are persisted.
type finishedMsg struct {
	Summary *session.Summary

	// Progress is set when a daily set was marked done.
	Progress     *progress.Progress
	UnlockedWeek int
}
