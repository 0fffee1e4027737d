package cmd

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/progress"
	"github.com/abhisek/kotoba/internal/ui/theme"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show the week grid for a daily track",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, category, err := trackFromFlags(cmd)
		if err != nil {
			return err
		}
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		p := e.tracker().Refresh(cmd.Context(), level, category)
		fmt.Println(renderProgress(p))
		return nil
	},
}

func init() {
	addTrackFlags(progressCmd)
}

// renderProgress draws the track as a bordered week-by-day table.
func renderProgress(p *progress.Progress) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render(fmt.Sprintf("%s %s", p.Level, strings.ToUpper(string(p.Category)))))
	b.WriteString("\n\n")

	b.WriteString("         ")
	for d := 1; d <= keys.DaysPerWeek; d++ {
		fmt.Fprintf(&b, " D%d", d)
	}
	b.WriteString("\n")

	overview := p.Overview()
	for w := range keys.MaxWeek {
		fmt.Fprintf(&b, "Week %-2d  ", w+1)
		for _, st := range overview[w] {
			switch st {
			case progress.Done:
				b.WriteString(theme.DayDone.Render("  ●"))
			case progress.Available:
				b.WriteString(theme.DayAvailable.Render("  ○"))
			default:
				b.WriteString(theme.DayLocked.Render("  ·"))
			}
		}
		fmt.Fprintf(&b, "   %d/%d\n", p.DoneCount(w+1), keys.DaysPerWeek)
	}

	b.WriteString("\n")
	if w, d, ok := p.NextAvailable(); ok {
		fmt.Fprintf(&b, "Next: week %d day %d (%s)", w, d, keys.DailyKey(p.Level, p.Category, w, d))
	} else {
		fmt.Fprintf(&b, "Unlocked through week %d; nothing available", p.UnlockedWeek)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(1, 2).
		Render(b.String())
}
