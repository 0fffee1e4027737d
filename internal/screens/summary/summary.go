// Package summary shows the results of a finished practice session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/progress"
	"github.com/abhisek/kotoba/internal/router"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/ui/layout"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// maxMissed caps the missed-question list.
const maxMissed = 8

// Unlock describes the progress change a daily session caused. The zero
// value means nothing was marked done.
type Unlock struct {
	Progress *progress.Progress

	// Week is the newly unlocked week, 0 if no week was unlocked.
	Week int
}

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
	unlock  Unlock
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary, unlock Unlock) *SummaryScreen {
	return &SummaryScreen{summary: summary, unlock: unlock}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Continue"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	var b strings.Builder

	title := "Session complete!"
	if sum.TotalAnswered < sum.TotalQuestions {
		title = "Session ended"
	}
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true), title))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim),
		fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Text),
		fmt.Sprintf("Answered: %d/%d        Correct: %d        Accuracy: %.0f%%",
			sum.TotalAnswered, sum.TotalQuestions, sum.TotalCorrect, sum.Accuracy*100)))
	b.WriteString("\n\n")

	if s.unlock.Progress != nil {
		b.WriteString(center(theme.Correct, "Day marked done"))
		b.WriteString("\n")
		if s.unlock.Week > 0 {
			b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
				fmt.Sprintf("Week %d unlocked!", s.unlock.Week)))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 0)))

	if len(sum.Sections) > 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Sections"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for _, sr := range sum.Sections {
			line := fmt.Sprintf("%-10s %d/%d correct   %d/%d answered",
				sr.Section, sr.Correct, sr.Attempted, sr.Attempted, sr.Total)
			style := lipgloss.NewStyle().Foreground(theme.Text)
			if sr.Attempted > 0 && sr.Correct == sr.Attempted {
				style = style.Foreground(theme.Success)
			}
			b.WriteString(center(style, line))
			b.WriteString("\n")
		}
	}

	if len(sum.Missed) > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim), "Missed"))
		b.WriteString("\n")
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
		b.WriteString("\n\n")
		for i, id := range sum.Missed {
			if i == maxMissed {
				b.WriteString(center(theme.Hint, fmt.Sprintf("and %d more", len(sum.Missed)-maxMissed)))
				b.WriteString("\n")
				break
			}
			b.WriteString(center(theme.Incorrect, fmt.Sprintf("%s #%d", id.GroupKey, id.ItemNumber)))
			b.WriteString("\n")
		}
	}

	return b.String()
}
