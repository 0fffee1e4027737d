package session

import (
	"context"
	"errors"
	"time"

	"github.com/abhisek/kotoba/internal/content"
)

// ErrNeedsSelection is returned by Submit when no choice has been picked for
// the current question. Session state is left unchanged.
var ErrNeedsSelection = errors.New("session: pick a choice before submitting")

// Phase represents the session-level state.
type Phase int

const (
	PhaseLoading   Phase = iota // Pool is being fetched
	PhaseReady                  // Serving questions
	PhaseEmpty                  // Pool has no questions; cursor addresses nothing
	PhaseCompleted              // Cursor on the last question and it is answered
)

func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseEmpty:
		return "empty"
	case PhaseCompleted:
		return "completed"
	}
	return "unknown"
}

// Answer is the locked result for one question index.
type Answer struct {
	Picked  content.Choice
	Correct bool
}

// MistakeRecord is appended to the mistake log for every incorrect submit.
type MistakeRecord struct {
	CreatedAt      time.Time
	SessionID      string
	GroupKey       string
	ItemNumber     int
	PickedPosition int
}

// MistakeLog is the append-only persistence collaborator for mistakes.
type MistakeLog interface {
	AppendMistake(ctx context.Context, rec MistakeRecord) error
}
