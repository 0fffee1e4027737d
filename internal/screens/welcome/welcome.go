// Package welcome is the splash screen shown on launch.
package welcome

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/store"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	strokeEvery  = 300 * time.Millisecond
	bannerAt     = 900 * time.Millisecond
	totalDur     = 1500 * time.Millisecond
)

// glyphs are revealed one at a time.
var glyphs = []string{"言", "葉"}

type tickMsg time.Time

type bankCheckedMsg struct {
	Groups int
	Err    error
}

// GroupLister reports the imported question groups.
type GroupLister interface {
	Groups(ctx context.Context) ([]store.GroupInfo, error)
}

// WelcomeScreen shows a short splash, then hands over to the screen produced
// by homeFactory on the first key press. It warns when the question bank is
// empty.
type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	bank         GroupLister
	elapsed      time.Duration
	checked      bool
	groups       int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen. bank may be nil to skip the empty-bank check.
func New(homeFactory func() screen.Screen, bank GroupLister) *WelcomeScreen {
	return &WelcomeScreen{
		homeFactory: homeFactory,
		bank:        bank,
	}
}

func (w *WelcomeScreen) Title() string {
	return ""
}

func (w *WelcomeScreen) Init() tea.Cmd {
	return tea.Batch(tick(), w.checkBank())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (w *WelcomeScreen) checkBank() tea.Cmd {
	if w.bank == nil {
		return nil
	}
	bank := w.bank
	return func() tea.Msg {
		groups, err := bank.Groups(context.Background())
		return bankCheckedMsg{Groups: len(groups), Err: err}
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if w.elapsed >= totalDur {
			return w, nil
		}
		w.elapsed += tickInterval
		return w, tick()

	case bankCheckedMsg:
		// A failed check is not worth blocking the splash over.
		w.checked = msg.Err == nil
		w.groups = msg.Groups
		return w, nil

	case tea.KeyPressMsg:
		return w, w.transition()
	}

	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	homeScreen := w.homeFactory()
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: homeScreen}
	}
}

// emptyBank reports whether the check ran and found nothing imported.
func (w *WelcomeScreen) emptyBank() bool {
	return w.checked && w.groups == 0
}

func (w *WelcomeScreen) View(width, height int) string {
	shown := min(int(w.elapsed/strokeEvery), len(glyphs))
	mark := lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(strings.Join(glyphs[:shown], " "))

	sections := []string{mark}

	if w.elapsed >= bannerAt {
		sections = append(sections,
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).
				Render("JLPT practice, one day at a time"),
		)
	}

	if w.emptyBank() {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.Error).
				Render("Your question bank is empty. Run `kotoba import <catalog.json>` first."))
	}

	if w.elapsed >= totalDur {
		sections = append(sections, "",
			lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true).
				Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}
