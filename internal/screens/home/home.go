// Package home is the start menu.
package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/days"
	"github.com/abhisek/kotoba/internal/screens/history"
	"github.com/abhisek/kotoba/internal/screens/quiz"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const titleArt = `┃ 言 葉 ┃  K O T O B A`

// Options configure the menu targets.
type Options struct {
	Deps    quiz.Deps
	History store.SessionRepo

	// Level and Category pick the track the day grid opens on.
	Level    keys.Level
	Category keys.Category

	// Exam is the filter "Exam practice" starts with.
	Exam pool.ExamFilter
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(opts Options) *HomeScreen {
	items := []components.MenuItem{
		{
			Label: "DAILY PRACTICE",
			Hint:  fmt.Sprintf("%s %s, one set per day, ten weeks", opts.Level, opts.Category),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: days.New(opts.Deps, opts.Level, opts.Category)}
				}
			},
		},
		{
			Label: "EXAM PRACTICE",
			Hint:  opts.Exam.String(),
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: quiz.New(opts.Deps, opts.Exam)}
				}
			},
		},
		{
			Label:    "HISTORY",
			Hint:     "Past sessions",
			Disabled: opts.History == nil,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: history.New(opts.History)}
				}
			},
		},
		{
			Label:  "QUIT",
			Action: func() tea.Cmd { return tea.Quit },
		},
	}

	return &HomeScreen{
		opts: opts,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := components.ContentWidth(width)

	sections := []string{
		lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).
			Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(titleArt)),
		theme.Subtitle.Width(cw).Render("JLPT spaced practice"),
		h.menu.View(cw - 4),
	}
	if hint := h.menu.SelectedHint(); hint != "" {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(hint))
	}

	return components.Frame(strings.Join(sections, "\n\n"), width, height)
}
