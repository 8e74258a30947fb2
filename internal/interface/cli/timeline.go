package cli

import (
	"fmt"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/history"
	"github.com/mhaile/hh/internal/core/models"
)

var (
	timelineSince string
	timelineUntil string
	timelineTTY   string
	timelineShell string
)

var timelineCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Show a time-ordered view of all commands",
	Long: `Show every recorded command across all shells, newest first.

Date bounds accept natural language via --since and --until.

Examples:
  hh timeline
  hh timeline --since "2 days ago"
  hh timeline --since yesterday --until "an hour ago"
  hh timeline --tty pts-3`,
	RunE: runTimeline,
}

func init() {
	rootCmd.AddCommand(timelineCmd)
	timelineCmd.Flags().StringVar(&timelineSince, "since", "", "Only commands after this time")
	timelineCmd.Flags().StringVar(&timelineUntil, "until", "", "Only commands before this time")
	timelineCmd.Flags().StringVar(&timelineTTY, "tty", "", "Only commands from this terminal")
	timelineCmd.Flags().StringVar(&timelineShell, "shell-id", "", "Only commands from this shell identifier")
}

func runTimeline(cmd *cobra.Command, args []string) error {
	switch {
	case timelineTTY != "":
		displayTimeline(history.ByTTY(cfg, timelineTTY), true)
		return nil
	case timelineShell != "":
		displayTimeline(history.ByShell(cfg, timelineShell), true)
		return nil
	}

	start := 0.0
	end := models.Now()

	if timelineSince != "" {
		t, err := parseWhen(timelineSince)
		if err != nil {
			return err
		}
		start = float64(t.UnixNano()) / 1e9
	}
	if timelineUntil != "" {
		t, err := parseWhen(timelineUntil)
		if err != nil {
			return err
		}
		end = float64(t.UnixNano()) / 1e9
	}

	fmt.Println("Timeline View:")
	displayTimeline(history.ByTimeRange(cfg, start, end), true)
	return nil
}

// parseWhen parses natural-language dates ("yesterday", "2 days ago") as
// well as plain formats.
func parseWhen(s string) (time.Time, error) {
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	if r, err := w.Parse(s, time.Now()); err == nil && r != nil {
		return r.Time, nil
	}

	for _, format := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("could not parse time %q", s)
}
