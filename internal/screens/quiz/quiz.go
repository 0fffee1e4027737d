// Package quiz is the screen that runs one practice session over a pool.
package quiz

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/progress"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/summary"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
)

// Deps are the collaborators a quiz needs. Tracker, Mistakes and History
// may be nil.
type Deps struct {
	Builder  *pool.Builder
	Tracker  *progress.Tracker
	Mistakes session.MistakeLog
	History  store.SessionRepo
	Logger   *slog.Logger
}

// QuizScreen implements screen.Screen for an active practice session.
type QuizScreen struct {
	deps   Deps
	filter pool.Filter
	sess   *session.Session

	// highlight is the index into the current question's choices, -1 for
	// none.
	highlight int

	relaxed  int
	notice   string
	errMsg   string
	jumping  bool
	jump     components.TextInput
	finished bool
}

var _ screen.Screen = (*QuizScreen)(nil)
var _ screen.KeyHintProvider = (*QuizScreen)(nil)
var _ screen.InputCapturer = (*QuizScreen)(nil)

// New creates a QuizScreen for filter. Exam filters are relaxed while they
// match nothing.
func New(deps Deps, filter pool.Filter) *QuizScreen {
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &QuizScreen{
		deps:      deps,
		filter:    filter,
		highlight: -1,
		jump:      components.NewTextInput("question #", true, 4),
		sess: session.New(session.Options{
			MistakeLog: deps.Mistakes,
			Logger:     deps.Logger,
		}),
	}
	s.sess.Begin()
	return s
}

func (s *QuizScreen) Init() tea.Cmd {
	return s.loadPool()
}

func (s *QuizScreen) Title() string {
	if s.filter.Mode() == pool.ModeDaily {
		return "Daily Practice"
	}
	return "Exam Practice"
}

// Status reports the filter in the header.
func (s *QuizScreen) Status() string {
	switch f := s.filter.(type) {
	case pool.DailyFilter:
		return f.GroupKey()
	case pool.ExamFilter:
		return string(f.Level) + " " + string(f.Kind)
	}
	return ""
}

// CapturingInput reports whether the jump prompt is open.
func (s *QuizScreen) CapturingInput() bool {
	return s.jumping
}

func (s *QuizScreen) KeyHints() []layout.KeyHint {
	if s.jumping {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Go"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	switch s.sess.Phase() {
	case session.PhaseLoading:
		return nil
	case session.PhaseEmpty:
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	case session.PhaseCompleted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Results"},
			{Key: "←", Description: "Review"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return append(hints(bindings.Up, bindings.Pick, bindings.Submit, bindings.Prev, bindings.Jump, bindings.Finish),
		layout.KeyHint{Key: "Esc", Description: "Back"})
}

func (s *QuizScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case poolLoadedMsg:
		return s.handlePoolLoaded(msg)

	case finishedMsg:
		return s, func() tea.Msg {
			return router.ReplaceScreenMsg{
				Screen: summary.New(msg.Summary, summary.Unlock{
					Progress: msg.Progress,
					Week:     msg.UnlockedWeek,
				}),
			}
		}

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.jumping {
		var cmd tea.Cmd
		s.jump, cmd = s.jump.Update(msg)
		return s, cmd
	}
	return s, nil
}

// loadPool builds the pool asynchronously.
func (s *QuizScreen) loadPool() tea.Cmd {
	b := s.deps.Builder
	filter := s.filter
	return func() tea.Msg {
		ctx := context.Background()
		if b == nil {
			return poolLoadedMsg{Filter: filter, Err: errors.New("no question bank configured")}
		}
		if ef, ok := filter.(pool.ExamFilter); ok {
			res, err := b.BuildRelaxed(ctx, ef)
			if err != nil {
				return poolLoadedMsg{Filter: filter, Err: err}
			}
			return poolLoadedMsg{Questions: res.Questions, Filter: res.Filter, Relaxed: res.Steps}
		}
		qs, err := b.Build(ctx, filter)
		return poolLoadedMsg{Questions: qs, Filter: filter, Err: err}
	}
}

func (s *QuizScreen) handlePoolLoaded(msg poolLoadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	s.filter = msg.Filter
	s.relaxed = msg.Relaxed
	s.sess.Init(msg.Questions, s.filter.Mode())
	s.syncHighlight()
	return s, nil
}

func (s *QuizScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.errMsg != "" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	if s.jumping {
		return s.handleJumpKey(msg)
	}
	if s.finished {
		return s, nil
	}

	switch s.sess.Phase() {
	case session.PhaseLoading:
		return s, nil
	case session.PhaseEmpty:
		if key.Matches(msg, bindings.Submit) {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		return s, nil
	}

	s.notice = ""
	switch {
	case key.Matches(msg, bindings.Up):
		s.moveHighlight(-1)
	case key.Matches(msg, bindings.Down):
		s.moveHighlight(1)
	case key.Matches(msg, bindings.Pick):
		s.pickPosition(int(msg.String()[0] - '0'))
	case key.Matches(msg, bindings.Submit):
		return s.submitOrAdvance()
	case key.Matches(msg, bindings.Prev):
		s.sess.Prev()
		s.syncHighlight()
	case key.Matches(msg, bindings.Next):
		s.sess.Next()
		s.syncHighlight()
	case key.Matches(msg, bindings.Jump):
		s.jumping = true
		s.jump.Reset()
		return s, s.jump.Init()
	case key.Matches(msg, bindings.Finish):
		return s, s.finish()
	}
	return s, nil
}

func (s *QuizScreen) handleJumpKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch {
	case key.Matches(msg, bindings.Cancel):
		s.jumping = false
		return s, nil
	case key.Matches(msg, bindings.Submit):
		s.jumping = false
		n, ok := s.jump.NumberIn(1, s.sess.Len())
		if !ok {
			s.notice = fmt.Sprintf("Enter a question number from 1 to %d.", s.sess.Len())
			return s, nil
		}
		s.sess.JumpTo(n - 1)
		s.syncHighlight()
		return s, nil
	}
	var cmd tea.Cmd
	s.jump, cmd = s.jump.Update(msg)
	return s, cmd
}

func (s *QuizScreen) submitOrAdvance() (screen.Screen, tea.Cmd) {
	if _, answered := s.sess.Answered(); answered {
		if s.sess.Phase() == session.PhaseCompleted {
			return s, s.finish()
		}
		s.sess.Next()
		s.syncHighlight()
		return s, nil
	}

	_, err := s.sess.Submit(context.Background())
	if errors.Is(err, session.ErrNeedsSelection) {
		s.notice = "Pick a choice first."
	}
	return s, nil
}

// moveHighlight moves the highlight and picks the highlighted choice.
func (s *QuizScreen) moveHighlight(delta int) {
	q, ok := s.sess.Current()
	if !ok || len(q.Choices) == 0 {
		return
	}
	if _, answered := s.sess.Answered(); answered {
		return
	}
	if s.highlight < 0 {
		s.highlight = 0
	} else {
		s.highlight = min(max(s.highlight+delta, 0), len(q.Choices)-1)
	}
	s.sess.Pick(q.Choices[s.highlight])
}

func (s *QuizScreen) pickPosition(pos int) {
	q, ok := s.sess.Current()
	if !ok {
		return
	}
	for i, c := range q.Choices {
		if c.Position == pos && s.sess.Pick(c) {
			s.highlight = i
			return
		}
	}
}

// syncHighlight points the highlight at the selection for the question
// under the cursor.
func (s *QuizScreen) syncHighlight() {
	s.highlight = -1
	q, ok := s.sess.Current()
	if !ok {
		return
	}
	sel, ok := s.sess.Selected()
	if !ok {
		return
	}
	for i, c := range q.Choices {
		if c.Position == sel.Position {
			s.highlight = i
			return
		}
	}
}

// finish persists the session summary and, for a fully answered daily set,
// marks the day done. Persistence failures are logged.
func (s *QuizScreen) finish() tea.Cmd {
	s.finished = true
	sum := session.BuildSummary(s.sess)
	rec := store.SessionRecord{
		ID:        s.sess.ID(),
		Mode:      string(s.sess.Mode()),
		Filter:    s.filter.String(),
		StartedAt: s.sess.StartedAt(),
		Duration:  sum.Duration,
		Total:     sum.TotalQuestions,
		Answered:  sum.TotalAnswered,
		Correct:   sum.TotalCorrect,
	}
	complete := s.sess.Len() > 0 && len(s.sess.Unanswered()) == 0
	ref, daily := dailyRef(s.filter)
	deps := s.deps

	return func() tea.Msg {
		ctx := context.Background()
		msg := finishedMsg{Summary: sum}

		if deps.History != nil {
			if err := deps.History.Append(ctx, rec); err != nil {
				deps.Logger.Warn("failed to save session", "session", rec.ID, "err", err)
			}
		}

		if daily && complete && deps.Tracker != nil {
			before := deps.Tracker.Refresh(ctx, ref.Level, ref.Category).UnlockedWeek
			p, err := deps.Tracker.MarkDone(ctx, ref.Level, ref.Category, ref.Week, ref.Day)
			if err != nil {
				deps.Logger.Warn("failed to mark day done", "key", ref.Key(), "err", err)
				return msg
			}
			msg.Progress = p
			if p.UnlockedWeek > before {
				msg.UnlockedWeek = p.UnlockedWeek
			}
		}
		return msg
	}
}

func dailyRef(f pool.Filter) (keys.DailyRef, bool) {
	df, ok := f.(pool.DailyFilter)
	if !ok {
		return keys.DailyRef{}, false
	}
	if df.Key != "" {
		return keys.ParseDailyKey(df.Key)
	}
	return df.Ref, true
}

// current returns the question under the cursor with its render state.
func (s *QuizScreen) current() (content.Question, components.ChoiceList, bool) {
	q, ok := s.sess.Current()
	if !ok {
		return content.Question{}, components.ChoiceList{}, false
	}
	list := components.ChoiceList{Choices: q.Choices}
	if s.highlight >= 0 && s.highlight < len(q.Choices) {
		list.Cursor = q.Choices[s.highlight].Position
	}
	if sel, ok := s.sess.Selected(); ok {
		list.Picked = sel.Position
	}
	_, list.Revealed = s.sess.Answered()
	return q, list, true
}
