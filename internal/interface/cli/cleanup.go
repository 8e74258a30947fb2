package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/lifecycle"
	"github.com/mhaile/hh/internal/core/retention"
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup [days]",
	Short: "Remove session stores older than N days (default 30)",
	Long: `Delete session stores whose newest command is older than the cutoff.

Stores that cannot be read at all are deleted regardless of age.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCleanup,
}

var cleanupDeadCmd = &cobra.Command{
	Use:   "cleanup-dead",
	Short: "Remove stores belonging to shells that no longer exist",
	Long: `Check every lifecycle marker against its recorded pid and delete the
marker and session store of every shell that has died. Shells that exited
normally clean up after themselves; this repairs the ones that were killed.`,
	RunE: runCleanupDead,
}

func init() {
	rootCmd.AddCommand(cleanupCmd)
	rootCmd.AddCommand(cleanupDeadCmd)
}

func runCleanup(cmd *cobra.Command, args []string) error {
	days := 30
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return fmt.Errorf("invalid day count %q", args[0])
		}
		days = n
	}

	removed := retention.EvictOlderThan(cfg, days)
	fmt.Printf("Cleaned up %d old session store(s)\n", removed)
	return nil
}

func runCleanupDead(cmd *cobra.Command, args []string) error {
	removed := retention.ReclaimDead(cfg, lifecycle.SignalProbe{})
	fmt.Printf("Cleaned up %d dead shell store(s)\n", removed)
	return nil
}
