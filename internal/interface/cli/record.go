package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/history"
	"github.com/mhaile/hh/internal/core/importer"
	"github.com/mhaile/hh/internal/core/lifecycle"
	"github.com/mhaile/hh/internal/core/models"
	"github.com/mhaile/hh/internal/core/shellid"
)

// runRecord is the bare `hh` invocation: ingest the shell's history file
// into this shell's store, then show merged history for the current
// directory. A store that cannot be opened degrades to read-only querying;
// it never takes the whole command down.
func runRecord(cmd *cobra.Command, args []string) error {
	id := shellid.Resolve()

	store, err := db.Open(cfg, id.Identifier)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history recording disabled: %v\n", err)
	} else {
		defer func() { _ = store.Close() }()

		if err := lifecycle.MarkActive(cfg, id, models.Now()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		} else {
			lifecycle.RegisterCleanup(cfg, id.Identifier)
			defer lifecycle.MarkInactive(cfg, id.Identifier)
		}

		if err := ingestHistory(store, id); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not read history file: %v\n", err)
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to determine current directory: %w", err)
	}

	fmt.Printf("History for: %s\n", cwd)
	displayEntries(history.ByDirectory(cfg, cwd))
	return nil
}

func ingestHistory(store *db.Store, id shellid.Identity) error {
	commands, err := importer.ReadHistoryFile(cfg.HistoryFile)
	if err != nil {
		return err
	}
	if len(commands) == 0 {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		home = "/"
	}
	importer.Ingest(store, id, importer.TrackDirectories(commands, home))
	return nil
}
