package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var groupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List imported question groups",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		groups, err := e.store.ContentRepo().Groups(cmd.Context())
		if err != nil {
			return fmt.Errorf("list groups: %w", err)
		}
		if len(groups) == 0 {
			fmt.Println("No questions imported. Run `kotoba import <catalog.json>`.")
			return nil
		}

		fmt.Printf("%-16s  %-5s  %-5s  %9s\n", "Group", "Mode", "Level", "Questions")
		fmt.Println(strings.Repeat("─", 42))
		total := 0
		for _, g := range groups {
			fmt.Printf("%-16s  %-5s  %-5s  %9d\n", g.Key, g.Mode, g.Level, g.Questions)
			total += g.Questions
		}
		fmt.Printf("\n%d groups, %d questions\n", len(groups), total)
		return nil
	},
}
