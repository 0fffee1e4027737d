package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/store"
)

var mistakesCmd = &cobra.Command{
	Use:   "mistakes",
	Short: "List recent mistakes",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		group, _ := cmd.Flags().GetString("group")
		top, _ := cmd.Flags().GetBool("top")

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		repo := e.store.MistakeRepo()
		if top {
			counts, err := repo.CountsByQuestion(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("count mistakes: %w", err)
			}
			if len(counts) == 0 {
				fmt.Println("No mistakes recorded.")
				return nil
			}
			fmt.Printf("%-16s  %4s  %5s  %s\n", "Group", "Item", "Count", "Last")
			fmt.Println(strings.Repeat("─", 50))
			for _, c := range counts {
				fmt.Printf("%-16s  %4d  %5d  %s\n",
					c.GroupKey, c.ItemNumber, c.Count, c.LastAt.Local().Format("2006-01-02 15:04"))
			}
			return nil
		}

		mistakes, err := repo.Query(cmd.Context(), store.QueryOpts{Limit: limit, GroupKey: group})
		if err != nil {
			return fmt.Errorf("query mistakes: %w", err)
		}
		if len(mistakes) == 0 {
			fmt.Println("No mistakes recorded.")
			return nil
		}

		fmt.Printf("%-6s  %-19s  %-16s  %4s  %6s  %s\n", "Seq", "Time", "Group", "Item", "Picked", "Session")
		fmt.Println(strings.Repeat("─", 90))
		for _, m := range mistakes {
			fmt.Printf("%-6d  %-19s  %-16s  %4d  %6d  %s\n",
				m.Sequence,
				m.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				m.GroupKey,
				m.ItemNumber,
				m.PickedPosition,
				m.SessionID,
			)
		}
		return nil
	},
}

func init() {
	mistakesCmd.Flags().IntP("limit", "n", 20, "Maximum number of rows")
	mistakesCmd.Flags().String("group", "", "Only mistakes from this group key")
	mistakesCmd.Flags().Bool("top", false, "Show the most missed questions instead")
}
