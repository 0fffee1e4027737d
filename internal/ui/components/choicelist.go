package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

// ChoiceList renders the choices of one question. It holds no state of its
// own; the caller passes the highlighted, picked and answered positions.
type ChoiceList struct {
	Choices []content.Choice

	// Cursor is the highlighted position, 0 when nothing is highlighted.
	Cursor int

	// Picked is the selected position, 0 when nothing is selected.
	Picked int

	// Revealed shows correct and incorrect marks once the question is
	// answered.
	Revealed bool
}

// View renders the list, one choice per line.
func (c ChoiceList) View(width int) string {
	var b strings.Builder
	for _, ch := range c.Choices {
		prefix := "  "
		if ch.Position == c.Cursor && !c.Revealed {
			prefix = "▸ "
		}
		mark := " "
		if ch.Position == c.Picked {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %d) %s", prefix, mark, ch.Position, ch.Content)

		style := lipgloss.NewStyle().Foreground(theme.Text).Width(width)
		switch {
		case c.Revealed && ch.IsCorrect:
			style = style.Foreground(theme.Success).Bold(true)
		case c.Revealed && ch.Position == c.Picked:
			style = style.Foreground(theme.Error).Bold(true)
		case c.Revealed:
			style = style.Foreground(theme.TextDim)
		case ch.Position == c.Cursor:
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

// Explanation returns the explanation to show after an answer: the picked
// choice's own explanation, falling back to the correct choice's.
func (c ChoiceList) Explanation() string {
	if !c.Revealed {
		return ""
	}
	var correct string
	for _, ch := range c.Choices {
		if ch.Explanation == nil {
			continue
		}
		if ch.Position == c.Picked {
			return *ch.Explanation
		}
		if ch.IsCorrect {
			correct = *ch.Explanation
		}
	}
	return correct
}
