package cmd

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/pool"
)

var poolCmd = &cobra.Command{
	Use:   "pool",
	Short: "Print the question pool a filter resolves to",
}

var poolExamCmd = &cobra.Command{
	Use:   "exam",
	Short: "Resolve an exam filter, relaxing it when nothing matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := examFilterFromFlags(cmd)
		if err != nil {
			return err
		}
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.builder().BuildRelaxed(cmd.Context(), f)
		if err != nil {
			return err
		}
		fmt.Printf("Requested: %s\n", f)
		if res.Steps > 0 {
			fmt.Printf("Relaxed %d step(s): %s\n", res.Steps, res.Filter)
		}
		printPool(res.Questions)
		return nil
	},
}

var poolDailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Resolve one day's practice set",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, category, err := trackFromFlags(cmd)
		if err != nil {
			return err
		}
		week, _ := cmd.Flags().GetInt("week")
		day, _ := cmd.Flags().GetInt("day")
		if week < 1 || week > keys.MaxWeek || day < 1 || day > keys.DaysPerWeek {
			return fmt.Errorf("--week must be 1-%d and --day 1-%d", keys.MaxWeek, keys.DaysPerWeek)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		f := pool.DailyFilter{Ref: keys.DailyRef{Level: level, Category: category, Week: week, Day: day}}
		qs, err := e.builder().Build(cmd.Context(), f)
		if err != nil {
			return err
		}
		status := e.tracker().Refresh(cmd.Context(), level, category).Status(week, day)
		fmt.Printf("%s (%s)\n", f.GroupKey(), status)
		printPool(qs)
		return nil
	},
}

func init() {
	addExamFlags(poolExamCmd)
	addTrackFlags(poolDailyCmd)
	poolDailyCmd.Flags().Int("week", 1, "Week (1-10)")
	poolDailyCmd.Flags().Int("day", 1, "Day (1-7)")

	poolCmd.AddCommand(poolExamCmd)
	poolCmd.AddCommand(poolDailyCmd)
}

func printPool(qs []content.Question) {
	if len(qs) == 0 {
		fmt.Println("No questions match.")
		return
	}
	fmt.Printf("%-4s  %-16s  %4s  %-9s  %s\n", "#", "Group", "Item", "Section", "Stem")
	fmt.Println(strings.Repeat("─", 80))
	for i, q := range qs {
		fmt.Printf("%-4d  %-16s  %4d  %-9s  %s\n", i+1, q.GroupKey, q.ItemNumber, q.Section, truncate(q.Stem, 40))
	}
	fmt.Printf("\n%d questions\n", len(qs))
}

// truncate shortens s to at most n runes, flattening newlines.
func truncate(s string, n int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-1]) + "…"
}
