// Package days is the week-by-day grid for one daily practice track.
package days

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/progress"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/quiz"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

type progressLoadedMsg struct {
	Progress *progress.Progress
}

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Start    key.Binding
	Category key.Binding
	Harder   key.Binding
	Easier   key.Binding
}

var bindings = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Left:     key.NewBinding(key.WithKeys("left", "h")),
	Right:    key.NewBinding(key.WithKeys("right", "l")),
	Start:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "Start")),
	Category: key.NewBinding(key.WithKeys("tab"), key.WithHelp("Tab", "Grammar/Vocab")),
	Harder:   key.NewBinding(key.WithKeys("]"), key.WithHelp("[ ]", "Level")),
	Easier:   key.NewBinding(key.WithKeys("[")),
}

// DaysScreen shows one (level, category) track as a 10 x 7 grid.
type DaysScreen struct {
	deps     quiz.Deps
	level    keys.Level
	category keys.Category
	progress *progress.Progress

	// week and day are the 1-based cursor.
	week, day int

	// placed is false until the cursor has been moved to the next
	// available day after a load.
	placed bool
	notice string
}

var _ screen.Screen = (*DaysScreen)(nil)
var _ screen.KeyHintProvider = (*DaysScreen)(nil)
var _ screen.Focuser = (*DaysScreen)(nil)
var _ screen.StatusProvider = (*DaysScreen)(nil)

// New creates a DaysScreen. deps are handed to the quiz started from a day.
func New(deps quiz.Deps, level keys.Level, category keys.Category) *DaysScreen {
	return &DaysScreen{
		deps:     deps,
		level:    level,
		category: category,
		week:     1,
		day:      1,
	}
}

func (s *DaysScreen) Init() tea.Cmd {
	return s.load()
}

// Focus reloads progress when returning from a quiz.
func (s *DaysScreen) Focus() tea.Cmd {
	return s.load()
}

func (s *DaysScreen) Title() string {
	return "Daily Practice"
}

func (s *DaysScreen) Status() string {
	return fmt.Sprintf("%s %s", s.level, s.category)
}

func (s *DaysScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: bindings.Start.Help().Key, Description: bindings.Start.Help().Desc},
		{Key: bindings.Category.Help().Key, Description: bindings.Category.Help().Desc},
		{Key: bindings.Harder.Help().Key, Description: bindings.Harder.Help().Desc},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *DaysScreen) load() tea.Cmd {
	tracker := s.deps.Tracker
	level, category := s.level, s.category
	return func() tea.Msg {
		if tracker == nil {
			return progressLoadedMsg{Progress: &progress.Progress{
				Level:        level,
				Category:     category,
				UnlockedWeek: 1,
				Completed:    progress.TokenSet{},
			}}
		}
		return progressLoadedMsg{Progress: tracker.Refresh(context.Background(), level, category)}
	}
}

func (s *DaysScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case progressLoadedMsg:
		p := msg.Progress
		if p == nil || p.Level != s.level || p.Category != s.category {
			return s, nil
		}
		s.progress = p
		if !s.placed {
			if w, d, ok := p.NextAvailable(); ok {
				s.week, s.day = w, d
			}
			s.placed = true
		}
		return s, nil

	case tea.KeyMsg:
		s.notice = ""
		switch {
		case key.Matches(msg, bindings.Up):
			s.week = keys.ClampWeek(s.week - 1)
		case key.Matches(msg, bindings.Down):
			s.week = keys.ClampWeek(s.week + 1)
		case key.Matches(msg, bindings.Left):
			s.day = keys.ClampDay(s.day - 1)
		case key.Matches(msg, bindings.Right):
			s.day = keys.ClampDay(s.day + 1)
		case key.Matches(msg, bindings.Category):
			s.category = otherCategory(s.category)
			return s, s.switchTrack()
		case key.Matches(msg, bindings.Harder):
			s.level = shiftLevel(s.level, -1)
			return s, s.switchTrack()
		case key.Matches(msg, bindings.Easier):
			s.level = shiftLevel(s.level, 1)
			return s, s.switchTrack()
		case key.Matches(msg, bindings.Start):
			return s, s.start()
		}
	}
	return s, nil
}

func (s *DaysScreen) switchTrack() tea.Cmd {
	s.progress = nil
	s.placed = false
	return s.load()
}

// start opens the quiz for the day under the cursor unless it is locked.
func (s *DaysScreen) start() tea.Cmd {
	if s.progress == nil {
		return nil
	}
	if s.progress.Status(s.week, s.day) == progress.Locked {
		s.notice = fmt.Sprintf("Week %d day %d is locked. Finish the days before it first.", s.week, s.day)
		return nil
	}
	ref := keys.DailyRef{Level: s.level, Category: s.category, Week: s.week, Day: s.day}
	deps := s.deps
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: quiz.New(deps, pool.DailyFilter{Ref: ref})}
	}
}

func otherCategory(c keys.Category) keys.Category {
	if c == keys.Grammar {
		return keys.Vocab
	}
	return keys.Grammar
}

// shiftLevel moves through AllLevels, which runs hardest first.
func shiftLevel(l keys.Level, delta int) keys.Level {
	i := slices.Index(keys.AllLevels, l)
	if i < 0 {
		return keys.AllLevels[len(keys.AllLevels)-1]
	}
	i = min(max(i+delta, 0), len(keys.AllLevels)-1)
	return keys.AllLevels[i]
}

func (s *DaysScreen) View(width, height int) string {
	if s.progress == nil {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading progress...")
	}
	p := s.progress

	var b strings.Builder
	b.WriteString(theme.Title.Width(width).Render(fmt.Sprintf("%s %s", s.level, strings.ToUpper(string(s.category)))))
	b.WriteString("\n")
	b.WriteString(theme.Subtitle.Width(width).Render(fmt.Sprintf("Unlocked through week %d", p.UnlockedWeek)))
	b.WriteString("\n\n")

	var grid strings.Builder
	grid.WriteString("         ")
	for d := 1; d <= keys.DaysPerWeek; d++ {
		grid.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" D%d ", d)))
	}
	grid.WriteString("\n")

	overview := p.Overview()
	for w := 1; w <= keys.MaxWeek; w++ {
		label := lipgloss.NewStyle().Foreground(theme.TextDim)
		if w == s.week {
			label = label.Foreground(theme.Primary).Bold(true)
		}
		grid.WriteString(label.Render(fmt.Sprintf("Week %-2d  ", w)))
		for d := 1; d <= keys.DaysPerWeek; d++ {
			grid.WriteString(cell(overview[w-1][d-1], w == s.week && d == s.day))
		}
		grid.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d/%d", p.DoneCount(w), keys.DaysPerWeek)))
		grid.WriteString("\n")
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, grid.String()))
	b.WriteString("\n")

	ref := keys.DailyRef{Level: s.level, Category: s.category, Week: s.week, Day: s.day}
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("%s  %s", ref.Key(), p.Status(s.week, s.day))))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
		Render(theme.DayDone.Render("● done") + "   " +
			theme.DayAvailable.Render("○ available") + "   " +
			theme.DayLocked.Render("· locked")))

	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(lipgloss.NewStyle().Width(width).Align(lipgloss.Center).
			Foreground(theme.Accent).Render(s.notice))
	}
	return b.String()
}

func cell(st progress.DayStatus, cursor bool) string {
	var glyph string
	style := theme.DayLocked
	switch st {
	case progress.Done:
		glyph, style = "●", theme.DayDone
	case progress.Available:
		glyph, style = "○", theme.DayAvailable
	default:
		glyph = "·"
	}
	if cursor {
		return theme.DayCursor.Render("["+glyph+"]") + " "
	}
	return style.Render(" "+glyph+" ") + " "
}
