// Package history lists past practice sessions.
package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// Limit is how many sessions the screen loads.
const Limit = 50

// Lines reserved around the list for the summary line and padding.
const chromeLines = 4

type loadedMsg struct {
	records []store.SessionRecord
	err     error
}

// HistoryScreen displays past sessions, newest first. Tab cycles the mode
// filter between all, daily and exam sessions.
type HistoryScreen struct {
	repo     store.SessionRepo
	all      []store.SessionRecord
	rows     []store.SessionRecord
	mode     pool.Mode // empty shows every mode
	cursor   int
	offset   int
	expanded string // id of the expanded row
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SessionRepo) *HistoryScreen {
	return &HistoryScreen{repo: repo}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		records, err := s.repo.Recent(context.Background(), Limit)
		return loadedMsg{records: records, err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

// Status names the active mode filter.
func (s *HistoryScreen) Status() string {
	if s.mode == "" {
		return "all sessions"
	}
	return string(s.mode) + " sessions"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Details"},
		{Key: "Tab", Description: "Filter"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		s.loaded = true
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.all = msg.records
		s.applyFilter()
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.cursor = max(s.cursor-1, 0)
		case "down", "j":
			s.cursor = max(min(s.cursor+1, len(s.rows)-1), 0)
		case "enter":
			if s.cursor < len(s.rows) {
				id := s.rows[s.cursor].ID
				if s.expanded == id {
					id = ""
				}
				s.expanded = id
			}
		case "tab":
			switch s.mode {
			case "":
				s.mode = pool.ModeDaily
			case pool.ModeDaily:
				s.mode = pool.ModeExam
			default:
				s.mode = ""
			}
			s.applyFilter()
		}
	}
	return s, nil
}

func (s *HistoryScreen) applyFilter() {
	s.rows = s.rows[:0]
	for _, rec := range s.all {
		if s.mode == "" || rec.Mode == string(s.mode) {
			s.rows = append(s.rows, rec)
		}
	}
	s.cursor, s.offset, s.expanded = 0, 0, ""
}

func (s *HistoryScreen) View(width, height int) string {
	center := lipgloss.NewStyle().Width(width).Align(lipgloss.Center)
	switch {
	case s.errMsg != "":
		return center.Foreground(theme.Error).Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	case !s.loaded:
		return center.Foreground(theme.TextDim).Render("\n\nLoading history...")
	case len(s.all) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render("\n\nNo sessions yet. Finish a daily set or an exam to see it here.")
	case len(s.rows) == 0:
		return center.Foreground(theme.TextDim).Italic(true).
			Render(fmt.Sprintf("\n\nNo %s sessions yet. Tab shows the others.", s.mode))
	}

	lines := []string{"", s.totals(), ""}
	visible := max(height-chromeLines, 1)
	s.scrollTo(visible)

	for i := s.offset; i < len(s.rows) && len(lines)-3 < visible; i++ {
		rec := s.rows[i]
		lines = append(lines, s.row(rec, i == s.cursor))
		if s.expanded == rec.ID {
			detail := lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true)
			lines = append(lines,
				detail.Render("    "+rec.Filter),
				detail.Render(fmt.Sprintf("    %d correct  session %s", rec.Correct, rec.ID)))
		}
	}

	var b strings.Builder
	for _, l := range lines {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, l))
		b.WriteString("\n")
	}
	return b.String()
}

// scrollTo keeps the cursor inside a window of n rows.
func (s *HistoryScreen) scrollTo(n int) {
	if s.cursor < s.offset {
		s.offset = s.cursor
	}
	if s.cursor >= s.offset+n {
		s.offset = s.cursor - n + 1
	}
}

func (s *HistoryScreen) totals() string {
	var answered, correct int
	for _, rec := range s.rows {
		answered += rec.Answered
		correct += rec.Correct
	}
	acc := store.SessionRecord{Answered: answered, Correct: correct}.Accuracy()
	return lipgloss.NewStyle().Foreground(theme.Secondary).
		Render(fmt.Sprintf("%d sessions · %d answered · %.0f%% overall", len(s.rows), answered, acc*100))
}

func (s *HistoryScreen) row(rec store.SessionRecord, selected bool) string {
	prefix := "  "
	style := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		prefix = "> "
		style = style.Foreground(theme.Primary).Bold(true)
	}
	line := style.Render(fmt.Sprintf("%s%s  %-5s  %s  %d/%d answered  ",
		prefix,
		rec.StartedAt.Local().Format("Jan 02 15:04"),
		rec.Mode,
		formatDuration(rec),
		rec.Answered, rec.Total))
	return line + accuracyStyle(rec.Accuracy()).Render(fmt.Sprintf("%.0f%% accuracy", rec.Accuracy()*100))
}

func accuracyStyle(acc float64) lipgloss.Style {
	switch {
	case acc >= 0.8:
		return lipgloss.NewStyle().Foreground(theme.Success)
	case acc < 0.5:
		return lipgloss.NewStyle().Foreground(theme.Error)
	}
	return lipgloss.NewStyle().Foreground(theme.Accent)
}

func formatDuration(rec store.SessionRecord) string {
	secs := int(rec.Duration.Seconds())
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
