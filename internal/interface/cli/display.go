package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/mhaile/hh/internal/core/models"
)

// displayEntries prints records the way the default directory view does:
// one command per line, indented.
func displayEntries(records []models.HistoryRecord) {
	if len(records) == 0 {
		fmt.Println("No entries found.")
		return
	}
	for _, r := range records {
		fmt.Printf("   %s\n", r.Command)
	}
}

// displayTimeline prints records with timestamp, shell, and directory
// context lines.
func displayTimeline(records []models.HistoryRecord, showShell bool) {
	if len(records) == 0 {
		fmt.Println("No entries found.")
		return
	}
	for _, r := range records {
		when := r.Time()
		header := fmt.Sprintf("[%s, %s]", when.Format("2006-01-02 15:04:05"), humanize.Time(when))
		if showShell {
			header += fmt.Sprintf(" %s (%s)", shortID(r.ShellID), r.TTY)
		}
		fmt.Printf("%s %s\n", header, r.Directory)
		fmt.Printf("   %s\n\n", r.Command)
	}
}

// shortID trims a shell identifier for display.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}

// truncate shortens long commands for one-line summaries.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
