// Package session runs a single practice attempt over a question pool:
// cursor movement, per-question answer locking, scoring and mistake logging.
//
// A Session is owned by its caller and is not safe for concurrent use.
package session

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/pool"
)

// Options configures a Session. Every field is optional.
type Options struct {
	// MistakeLog receives a record for each incorrect submit.
	MistakeLog MistakeLog

	Logger *slog.Logger

	// Now defaults to time.Now.
	Now func() time.Time

	// NewID defaults to a random UUID.
	NewID func() string
}

// Session is the in-memory state of one practice attempt.
type Session struct {
	id        string
	mode      pool.Mode
	questions []content.Question
	cursor    int
	loading   bool
	startedAt time.Time

	// answers is append-only: an index, once present, is never removed or
	// overwritten until the next Init.
	answers map[int]Answer

	// pending holds picks that have not been submitted yet.
	pending map[int]content.Choice

	score         int
	totalAnswered int

	mistakes MistakeLog
	logger   *slog.Logger
	now      func() time.Time
	newID    func() string
}

// New creates a session in the loading phase.
func New(opts Options) *Session {
	s := &Session{
		mistakes: opts.MistakeLog,
		logger:   opts.Logger,
		now:      opts.Now,
		newID:    opts.NewID,
		loading:  true,
		answers:  make(map[int]Answer),
		pending:  make(map[int]content.Choice),
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.newID == nil {
		s.newID = uuid.NewString
	}
	return s
}

// Begin marks the session as loading while the caller fetches a pool.
func (s *Session) Begin() {
	s.loading = true
}

// Init replaces any previous state with a fresh attempt over questions.
// An empty pool puts the session in PhaseEmpty.
func (s *Session) Init(questions []content.Question, mode pool.Mode) {
	s.id = s.newID()
	s.mode = mode
	s.questions = questions
	s.cursor = 0
	s.loading = false
	s.startedAt = s.now()
	s.answers = make(map[int]Answer)
	s.pending = make(map[int]content.Choice)
	s.score = 0
	s.totalAnswered = 0
}

// ID returns the identifier assigned by the last Init.
func (s *Session) ID() string { return s.id }

// Mode returns the content mode of the current pool.
func (s *Session) Mode() pool.Mode { return s.mode }

// StartedAt returns when the last Init ran.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Phase reports the session-level state.
func (s *Session) Phase() Phase {
	switch {
	case s.loading:
		return PhaseLoading
	case len(s.questions) == 0:
		return PhaseEmpty
	case s.IsCompleted():
		return PhaseCompleted
	}
	return PhaseReady
}

// Len returns the pool size.
func (s *Session) Len() int { return len(s.questions) }

// Cursor returns the current index. It is meaningless for an empty pool.
func (s *Session) Cursor() int { return s.cursor }

// Questions returns the pool. Callers must not modify it.
func (s *Session) Questions() []content.Question { return s.questions }

// Current returns the question under the cursor.
func (s *Session) Current() (content.Question, bool) {
	if !s.valid(s.cursor) {
		return content.Question{}, false
	}
	return s.questions[s.cursor], true
}

// Score is the number of correct answers.
func (s *Session) Score() int { return s.score }

// TotalAnswered is the number of submitted questions.
func (s *Session) TotalAnswered() int { return s.totalAnswered }

// IsCompleted reports whether the cursor is on the last question and that
// question is answered.
func (s *Session) IsCompleted() bool {
	n := len(s.questions)
	if n == 0 || s.cursor != n-1 {
		return false
	}
	_, ok := s.answers[s.cursor]
	return ok
}

// Pick stores choice as the pending selection for the current question. It
// is a no-op once the question is answered or when choice does not belong to
// the question. The return reports whether the pick was stored.
func (s *Session) Pick(choice content.Choice) bool {
	q, ok := s.Current()
	if !ok {
		return false
	}
	if _, answered := s.answers[s.cursor]; answered {
		return false
	}
	c, ok := q.ChoiceAt(choice.Position)
	if !ok {
		return false
	}
	s.pending[s.cursor] = c
	return true
}

// Selected returns the choice shown as selected for the current question:
// the recorded answer when answered, otherwise the pending pick.
func (s *Session) Selected() (content.Choice, bool) {
	if a, ok := s.answers[s.cursor]; ok {
		return a.Picked, true
	}
	c, ok := s.pending[s.cursor]
	return c, ok
}

// Answered returns the answer recorded for the current question.
func (s *Session) Answered() (Answer, bool) {
	return s.AnswerAt(s.cursor)
}

// AnswerAt returns the answer recorded at index i.
func (s *Session) AnswerAt(i int) (Answer, bool) {
	a, ok := s.answers[i]
	return a, ok
}

// Submit locks the pending pick for the current question and scores it.
//
// Submitting an index that already has an answer returns that answer and
// changes nothing. Without a pending pick it returns ErrNeedsSelection. An
// incorrect answer is appended to the mistake log; a logging failure is
// reported to the logger and does not undo the answer.
func (s *Session) Submit(ctx context.Context) (Answer, error) {
	if a, ok := s.answers[s.cursor]; ok {
		return a, nil
	}
	q, ok := s.Current()
	if !ok {
		return Answer{}, ErrNeedsSelection
	}
	picked, ok := s.pending[s.cursor]
	if !ok {
		return Answer{}, ErrNeedsSelection
	}

	correct := false
	if want, ok := q.CorrectChoice(); ok {
		correct = picked.Position == want.Position
	}

	if !correct {
		s.logMistake(ctx, q, picked)
	}

	a := Answer{Picked: picked, Correct: correct}
	s.answers[s.cursor] = a
	delete(s.pending, s.cursor)
	s.totalAnswered++
	if correct {
		s.score++
	}
	return a, nil
}

func (s *Session) logMistake(ctx context.Context, q content.Question, picked content.Choice) {
	if s.mistakes == nil {
		return
	}
	rec := MistakeRecord{
		CreatedAt:      s.now(),
		SessionID:      s.id,
		GroupKey:       q.GroupKey,
		ItemNumber:     q.ItemNumber,
		PickedPosition: picked.Position,
	}
	if err := s.mistakes.AppendMistake(ctx, rec); err != nil {
		s.logger.Warn("failed to record mistake",
			"session", s.id, "group_key", q.GroupKey, "item", q.ItemNumber, "err", err)
	}
}

// Next moves the cursor forward, stopping at the last question.
func (s *Session) Next() int { return s.JumpTo(s.cursor + 1) }

// Prev moves the cursor back, stopping at the first question.
func (s *Session) Prev() int { return s.JumpTo(s.cursor - 1) }

// JumpTo clamps i into the pool and moves the cursor there. Pending picks
// and answers are kept per index, so revisiting a question shows its state.
func (s *Session) JumpTo(i int) int {
	if len(s.questions) == 0 {
		s.cursor = 0
		return 0
	}
	s.cursor = min(max(i, 0), len(s.questions)-1)
	return s.cursor
}

// Unanswered returns the indices without a recorded answer, ascending.
func (s *Session) Unanswered() []int {
	var out []int
	for i := range s.questions {
		if _, ok := s.answers[i]; !ok {
			out = append(out, i)
		}
	}
	return out
}

func (s *Session) valid(i int) bool {
	return i >= 0 && i < len(s.questions)
}
