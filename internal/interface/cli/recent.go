package cli

import (
	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/history"
)

var (
	recentLimit int
	recentShell bool
)

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the most recent commands across all shells",
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)
	recentCmd.Flags().IntVarP(&recentLimit, "limit", "n", 0, "Number of commands to show (default from config)")
	recentCmd.Flags().BoolVarP(&recentShell, "shell", "s", false, "Show shell information")
}

func runRecent(cmd *cobra.Command, args []string) error {
	limit := recentLimit
	if limit <= 0 {
		limit = cfg.RecentLimit
	}
	displayTimeline(history.Recent(cfg, limit), recentShell)
	return nil
}
