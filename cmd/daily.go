package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/days"
	"github.com/abhisek/kotoba/internal/screens/quiz"
)

var dailyCmd = &cobra.Command{
	Use:   "daily",
	Short: "Open the daily practice grid for a track",
	RunE: func(cmd *cobra.Command, args []string) error {
		level, category, err := trackFromFlags(cmd)
		if err != nil {
			return err
		}
		return runApp(cmd, func(deps quiz.Deps) screen.Screen {
			return days.New(deps, level, category)
		})
	},
}

func init() {
	addTrackFlags(dailyCmd)
}
