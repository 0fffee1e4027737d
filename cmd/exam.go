package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/quiz"
)

var examCmd = &cobra.Command{
	Use:   "exam",
	Short: "Practice past exam questions",
	Long: `Practice past exam questions.

When nothing matches, the filter is relaxed by dropping the year and then the
month until questions are found.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := examFilterFromFlags(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, func(deps quiz.Deps) screen.Screen {
			return quiz.New(deps, f)
		})
	},
}

func init() {
	addExamFlags(examCmd)
}
