package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/kotoba/internal/ui/theme"
)

// ProgressBar is a one-line bar drawn with box glyphs, followed by a caption
// such as "42%" or "3/7".
type ProgressBar struct {
	Label   string
	Percent float64
	Caption string
	Width   int
}

// NewProgressBar creates a bar for a fraction in [0, 1]. With showPercent
// the caption is the rounded-down percentage.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	p := ProgressBar{Label: label, Percent: min(max(percent, 0), 1), Width: width}
	if showPercent {
		p.Caption = fmt.Sprintf("%d%%", int(p.Percent*100))
	}
	return p
}

// FractionBar creates a bar for done out of total, captioned "done/total".
// A zero total renders empty.
func FractionBar(label string, done, total, width int) ProgressBar {
	var pct float64
	if total > 0 {
		pct = float64(done) / float64(total)
	}
	p := NewProgressBar(label, pct, false, width)
	p.Caption = fmt.Sprintf("%d/%d", done, total)
	return p
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var label, caption string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + " "
	}
	if p.Caption != "" {
		caption = " " + theme.Hint.Italic(false).Render(p.Caption)
	}

	barWidth := max(p.Width-lipgloss.Width(label)-lipgloss.Width(caption), 4)
	filled := int(float64(barWidth) * p.Percent)

	return label +
		theme.ProgressFilled.Render(strings.Repeat("━", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat("─", barWidth-filled)) +
		caption
}
