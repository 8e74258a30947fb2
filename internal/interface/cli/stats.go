package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/history"
	"github.com/mhaile/hh/internal/core/lifecycle"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show history statistics",
	Long: `Display statistics across all session stores.

Shows totals, unique directories and shells, date range, top directories and
commands, and on-disk storage usage.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	s := history.GetStats(cfg)

	fmt.Println("History Statistics")
	fmt.Println("==================")
	fmt.Println()
	fmt.Printf("Total entries:      %d\n", s.Total)
	fmt.Printf("Unique directories: %d\n", s.UniqueDirectories)
	fmt.Printf("Unique shells:      %d\n", s.UniqueShells)
	fmt.Printf("Unique TTYs:        %d\n", s.UniqueTTYs)

	if s.HasRange {
		first := time.Unix(int64(s.MinTimestamp), 0)
		last := time.Unix(int64(s.MaxTimestamp), 0)
		fmt.Printf("Date range:         %s to %s\n",
			first.Format("Jan 2, 2006 3:04 PM"), last.Format("Jan 2, 2006 3:04 PM"))
	}
	fmt.Println()

	if top := history.TopDirectories(cfg, 5); len(top) > 0 {
		fmt.Println("Top Directories:")
		for _, d := range top {
			fmt.Printf("  %s: %d commands\n", d.Value, d.Count)
		}
		fmt.Println()
	}

	if top := history.TopCommands(cfg, 5); len(top) > 0 {
		fmt.Println("Top Commands:")
		for _, c := range top {
			fmt.Printf("  %s: %d times\n", truncate(c.Value, 60), c.Count)
		}
		fmt.Println()
	}

	stores := db.Discover(cfg)
	var total int64
	for _, path := range stores {
		if info, err := os.Stat(path); err == nil {
			total += info.Size()
		}
	}
	fmt.Printf("Session stores:     %d (%d live markers)\n", len(stores), len(lifecycle.Identifiers(cfg)))
	fmt.Printf("Storage location:   %s\n", cfg.DataDir)
	fmt.Printf("Storage size:       %s\n", humanize.Bytes(uint64(total)))

	return nil
}
