package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/kotoba/internal/content"
)

var importCmd = &cobra.Command{
	Use:   "import <catalog.json>",
	Short: "Import a question catalog",
	Long: `Import a JSON question catalog into the question bank.

Each group in the catalog replaces any group already stored under the same
key. The whole file is imported in one transaction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dryRun, _ := cmd.Flags().GetBool("dry-run")

		raw, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read catalog: %w", err)
		}
		cat, err := content.ParseCatalog(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", args[0], err)
		}

		questions := 0
		for _, g := range cat.Groups {
			questions += len(g.Questions)
		}
		if dryRun {
			fmt.Printf("%s: %d groups, %d questions (not imported)\n", args[0], len(cat.Groups), questions)
			return nil
		}

		e, err := openEnv(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		res, err := e.store.ContentRepo().Import(cmd.Context(), cat)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		fmt.Printf("Imported %d groups, %d questions, %d choices.\n", res.Groups, res.Questions, res.Choices)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "Validate the catalog without importing it")
}
