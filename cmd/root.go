package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "kotoba",
	Short: "JLPT spaced practice in the terminal",
	Long: `Kotoba drills JLPT questions from an imported question bank.

Daily practice walks a ten-week grammar or vocabulary track one set per day,
unlocking each week once the previous one is done. Exam practice draws from
past papers by level, year and sitting.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd, nil)
	},
}

// Execute runs the root command. Cancelling ctx stops a running TUI.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides KOTOBA_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")

	rootCmd.AddCommand(dailyCmd)
	rootCmd.AddCommand(examCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(groupsCmd)
	rootCmd.AddCommand(poolCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(mistakesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then KOTOBA_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}
