// Package theme holds the Kotoba palette: sumi ink and washi paper tones
// with a vermilion seal accent.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#E4572E") // shu, vermilion
	Secondary = lipgloss.Color("#2A9D8F") // seiji, celadon
	Accent    = lipgloss.Color("#E9C46A") // yamabuki, saffron
	Success   = lipgloss.Color("#6BBF59") // matcha
	Error     = lipgloss.Color("#D7263D") // beni, crimson
	Text      = lipgloss.Color("#F4EFE6") // washi
	TextDim   = lipgloss.Color("#A39E93") // nezumi, mouse grey
	BgDark    = lipgloss.Color("#16161D") // sumi
	BgCard    = lipgloss.Color("#24232B") // keshizumi
	Border    = lipgloss.Color("#3F3D48")
)

func fg(c color.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// Text styles.
var (
	Title    = fg(Primary).Bold(true).Align(lipgloss.Center)
	Subtitle = fg(TextDim).Align(lipgloss.Center)
	Hint     = fg(TextDim).Italic(true)
)

// Answer feedback.
var (
	Correct   = fg(Success).Bold(true)
	Incorrect = fg(Error).Bold(true)
)

// Day grid cells.
var (
	DayDone      = fg(Success).Bold(true)
	DayAvailable = fg(Accent).Bold(true)
	DayLocked    = fg(Border)
	DayCursor    = fg(Primary).Background(BgCard).Bold(true)
)

// Progress bar segments.
var (
	ProgressFilled = fg(Secondary)
	ProgressEmpty  = fg(Border)
)
