package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/keys"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarize progress across every track",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()
		ctx := cmd.Context()

		tracker := e.tracker()
		fmt.Printf("%-5s  %-8s  %8s  %6s\n", "Level", "Track", "Unlocked", "Done")
		fmt.Println(strings.Repeat("─", 34))
		for _, level := range keys.AllLevels {
			for _, category := range keys.AllCategories {
				p := tracker.Refresh(ctx, level, category)
				done := 0
				for w := 1; w <= keys.MaxWeek; w++ {
					done += p.DoneCount(w)
				}
				fmt.Printf("%-5s  %-8s  %8d  %3d/%d\n",
					level, category, p.UnlockedWeek, done, keys.MaxWeek*keys.DaysPerWeek)
			}
		}

		sessions, err := e.store.SessionRepo().Recent(ctx, 0)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		var answered, correct int
		for _, s := range sessions {
			answered += s.Answered
			correct += s.Correct
		}
		fmt.Printf("\n%d sessions, %d answered, %d correct", len(sessions), answered, correct)
		if answered > 0 {
			fmt.Printf(" (%.0f%%)", float64(correct)/float64(answered)*100)
		}
		fmt.Println()
		return nil
	},
}
