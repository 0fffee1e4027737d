package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/session"
	"github.com/abhisek/kotoba/internal/ui/components"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	if s.errMsg != "" {
		return s.centered(width, height,
			lipgloss.NewStyle().Foreground(theme.Error).Bold(true).Render("Could not load questions"),
			lipgloss.NewStyle().Foreground(theme.TextDim).Render(s.errMsg),
			theme.Hint.Render("Press any key to go back"),
		)
	}

	switch s.sess.Phase() {
	case session.PhaseLoading:
		return s.centered(width, height, theme.Hint.Render("Loading questions..."))
	case session.PhaseEmpty:
		return s.centered(width, height,
			theme.Title.Render("No questions found"),
			theme.Subtitle.Render(s.filter.String()),
			theme.Hint.Render("Import a catalog with `kotoba import`, or press Esc"),
		)
	}
	return s.renderQuestion(width)
}

func (s *QuizScreen) centered(width, height int, lines ...string) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (s *QuizScreen) renderQuestion(width int) string {
	q, list, ok := s.current()
	if !ok {
		return ""
	}
	inner := max(width-4, 20)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  %s  #%d  %s", q.GroupKey, q.ItemNumber, q.Section))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Q %d/%d  %s %d/%d",
			s.sess.Cursor()+1, s.sess.Len(),
			lipgloss.NewStyle().Foreground(theme.Success).Render("✓"),
			s.sess.Score(), s.sess.TotalAnswered(),
		))
	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 2; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")
	b.WriteString("  " + components.FractionBar("", s.sess.TotalAnswered(), s.sess.Len(), inner-2).View())
	b.WriteString("\n")

	if s.relaxed > 0 {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  No exact match; showing %s", s.filter.String())))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if q.Passage != nil && *q.Passage != "" {
		passage := lipgloss.NewStyle().
			Width(min(inner, 90)).
			Foreground(theme.TextDim).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(theme.Border).
			PaddingLeft(1).
			Render(*q.Passage)
		b.WriteString(passage)
		b.WriteString("\n\n")
	}

	b.WriteString(lipgloss.NewStyle().
		Width(min(inner, 90)).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Stem))
	b.WriteString("\n\n")
	b.WriteString(list.View(min(inner, 90)))

	if a, answered := s.sess.Answered(); answered {
		b.WriteString("\n")
		if a.Correct {
			b.WriteString(theme.Correct.Render("Correct!"))
		} else {
			msg := "Not quite."
			if c, ok := q.CorrectChoice(); ok {
				msg = fmt.Sprintf("Not quite. The answer is %d.", c.Position)
			}
			b.WriteString(theme.Incorrect.Render(msg))
		}
		if exp := list.Explanation(); exp != "" {
			b.WriteString("\n")
			b.WriteString(lipgloss.NewStyle().Width(min(inner, 90)).Foreground(theme.Text).Render(exp))
		}
		b.WriteString("\n")
		if s.sess.Phase() == session.PhaseCompleted {
			b.WriteString(theme.Hint.Render("All questions answered. Press Enter for results."))
		}
	}

	if s.notice != "" {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Render(s.notice))
	}

	if s.jumping {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Jump to (1-%d): %s", s.sess.Len(), s.jump.View()))
	} else if un := s.sess.Unanswered(); s.sess.Phase() != session.PhaseCompleted && len(un) > 0 && s.sess.TotalAnswered() > 0 {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("%d unanswered", len(un))))
	}

	return lipgloss.NewStyle().PaddingLeft(2).Render(b.String())
}
