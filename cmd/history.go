package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent practice sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		sessions, err := e.store.SessionRepo().Recent(cmd.Context(), limit)
		if err != nil {
			return fmt.Errorf("query sessions: %w", err)
		}
		if len(sessions) == 0 {
			fmt.Println("No sessions yet.")
			return nil
		}

		fmt.Printf("%-16s  %-5s  %7s  %8s  %8s  %s\n", "Started", "Mode", "Time", "Answered", "Accuracy", "Filter")
		fmt.Println(strings.Repeat("─", 100))
		for _, s := range sessions {
			secs := int(s.Duration.Seconds())
			fmt.Printf("%-16s  %-5s  %4d:%02d  %8s  %7.0f%%  %s\n",
				s.StartedAt.Local().Format("2006-01-02 15:04"),
				s.Mode,
				secs/60, secs%60,
				fmt.Sprintf("%d/%d", s.Answered, s.Total),
				s.Accuracy()*100,
				s.Filter,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of sessions")
}
