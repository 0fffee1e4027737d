package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/app"
	"github.com/abhisek/kotoba/internal/content"
	"github.com/abhisek/kotoba/internal/keys"
	"github.com/abhisek/kotoba/internal/pool"
	"github.com/abhisek/kotoba/internal/screen"
	"github.com/abhisek/kotoba/internal/screens/home"
	"github.com/abhisek/kotoba/internal/screens/quiz"
)

// runApp opens the store, builds dependencies, and launches the TUI. start,
// when non-nil, builds the screen opened above the home menu.
func runApp(cmd *cobra.Command, start func(quiz.Deps) screen.Screen) error {
	e, err := openEnv(cmd, true)
	if err != nil {
		return err
	}
	defer e.Close()

	deps := e.quizDeps()
	opts := app.Options{
		Bank: e.store.ContentRepo(),
		Home: home.Options{
			Deps:     deps,
			History:  e.store.SessionRepo(),
			Level:    keys.N3,
			Category: keys.Vocab,
			Exam:     pool.ExamFilter{Level: pool.RandomPair, Kind: content.KindLanguage},
		},
	}
	if start != nil {
		opts.Start = start(deps)
	}

	e.logger.Info("tui started")
	return app.Run(cmd.Context(), opts)
}
