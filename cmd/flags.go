package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/pool"
)

func addTrackFlags(cmd *cobra.Command) {
	cmd.Flags().String("level", "N3", "JLPT level (N1-N5)")
	cmd.Flags().String("category", "vocab", "Track: grammar or vocab")
}

func trackFromFlags(cmd *cobra.Command) (keys.Level, keys.Category, error) {
	rawLevel, _ := cmd.Flags().GetString("level")
	rawCategory, _ := cmd.Flags().GetString("category")
	level, err := keys.ParseLevel(rawLevel)
	if err != nil {
		return "", "", err
	}
	category, err := keys.ParseCategory(rawCategory)
	if err != nil {
		return "", "", err
	}
	return level, category, nil
}

func addExamFlags(cmd *cobra.Command) {
	cmd.Flags().String("level", string(pool.RandomPair), "Level: N1-N5, random-pair or all")
	cmd.Flags().String("kind", string(content.KindLanguage), "Kind: language, reading or listening")
	cmd.Flags().Int("year", 0, "Exam year (0 for any)")
	cmd.Flags().String("month", "", "Sitting: 07 or 12 (empty for any)")
	cmd.Flags().Bool("whole-paper", false, "Include every section when level, year and month are all set")
}

func examFilterFromFlags(cmd *cobra.Command) (pool.ExamFilter, error) {
	rawLevel, _ := cmd.Flags().GetString("level")
	rawKind, _ := cmd.Flags().GetString("kind")
	year, _ := cmd.Flags().GetInt("year")
	rawMonth, _ := cmd.Flags().GetString("month")
	whole, _ := cmd.Flags().GetBool("whole-paper")

	sel, err := pool.ParseLevelSelector(rawLevel)
	if err != nil {
		return pool.ExamFilter{}, err
	}
	kind, err := content.ParseKind(rawKind)
	if err != nil {
		return pool.ExamFilter{}, err
	}
	if year < 0 {
		return pool.ExamFilter{}, fmt.Errorf("invalid --year %d", year)
	}
	var month keys.Month
	if rawMonth != "" {
		if month, err = keys.ParseMonth(rawMonth); err != nil {
			return pool.ExamFilter{}, err
		}
	}

	f := pool.ExamFilter{Level: sel, Kind: kind, Year: year, Month: month, WholePaper: whole}
	if whole && !f.Exact() {
		return pool.ExamFilter{}, fmt.Errorf("--whole-paper needs a single --level with --year and --month")
	}
	return f, nil
}
