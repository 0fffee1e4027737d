package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and database location",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("kotoba", resolveVersion())
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		fmt.Println("database:", dbPath)
		return nil
	},
}

// resolveVersion falls back to the module version recorded by `go install`
// when no version was stamped.
func resolveVersion() string {
	if version != "(devel)" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return version
}
