package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/history"
)

var showShellInfo bool

var showCmd = &cobra.Command{
	Use:   "show [path]",
	Short: "Show history for a directory",
	Long: `Show merged command history for a directory, newest first.

Defaults to the current directory. The view spans every shell that has ever
run commands there, live or dead.

Examples:
  hh show
  hh show /path/to/project
  hh show . --shell`,
	Args: cobra.MaximumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
	showCmd.Flags().BoolVarP(&showShellInfo, "shell", "s", false, "Show shell information")
}

func runShow(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	dir, err := filepath.Abs(target)
	if err != nil {
		return fmt.Errorf("failed to resolve path %q: %w", target, err)
	}
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}

	fmt.Printf("History for: %s\n", dir)
	displayTimeline(history.ByDirectory(cfg, dir), showShellInfo)
	return nil
}
