package cli

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/history"
	"github.com/mhaile/hh/internal/core/search"
)

var (
	searchFuzzy     bool
	searchThreshold float64
	searchLimit     int
	searchCopy      bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search commands across all shells",
	Long: `Search the merged history by command text.

Plain search is a case-insensitive substring match. With --fuzzy, results
are ranked by similarity instead: exact substring hits always score 1.0,
near-misses score by edit distance, and duplicate commands collapse to their
best-ranked occurrence.

Examples:
  hh search "git rebase"
  hh search gti --fuzzy
  hh search "docker run" --fuzzy --threshold 0.5 --limit 10
  hh search make --fuzzy --copy`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().BoolVar(&searchFuzzy, "fuzzy", false, "Rank by similarity instead of filtering")
	searchCmd.Flags().Float64Var(&searchThreshold, "threshold", search.DefaultThreshold, "Minimum similarity score for fuzzy results")
	searchCmd.Flags().IntVar(&searchLimit, "limit", search.DefaultLimit, "Maximum number of fuzzy results")
	searchCmd.Flags().BoolVar(&searchCopy, "copy", false, "Copy the top result to the clipboard")
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")
	records := history.MergeAll(cfg)

	if !searchFuzzy {
		matched := search.Exact(records, query)
		fmt.Printf("Search results for '%s':\n", query)
		displayTimeline(matched, true)
		if searchCopy && len(matched) > 0 {
			return copyCommand(matched[0].Command)
		}
		return nil
	}

	matches := search.Fuzzy(records, query, searchThreshold, searchLimit)
	if len(matches) == 0 {
		fmt.Printf("No results found for: %s\n", query)
		return nil
	}

	fmt.Printf("Fuzzy results for '%s':\n", query)
	for _, m := range matches {
		fmt.Printf("  %.2f  %s\n", m.Score, truncate(m.Record.Command, 80))
		fmt.Printf("        %s\n", m.Record.Directory)
	}

	if searchCopy {
		return copyCommand(matches[0].Record.Command)
	}
	return nil
}

func copyCommand(command string) error {
	if err := clipboard.WriteAll(command); err != nil {
		return fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	fmt.Printf("\nCopied to clipboard: %s\n", truncate(command, 60))
	return nil
}
