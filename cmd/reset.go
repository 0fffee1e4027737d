package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset progress for one daily track",
	Long: `Reset progress for one daily track.

Completed days of the track are cleared and only week 1 stays unlocked.
Mistakes and session history are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		level, category, err := trackFromFlags(cmd)
		if err != nil {
			return err
		}
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("this clears %s %s progress; rerun with --yes to confirm", level, category)
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.tracker().Reset(cmd.Context(), level, category); err != nil {
			return err
		}
		fmt.Printf("Reset %s %s.\n", level, category)
		return nil
	},
}

func init() {
	addTrackFlags(resetCmd)
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
