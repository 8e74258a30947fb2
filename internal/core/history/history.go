// Package history builds the merged, query-facing view over every session
// store. The view is recomputed from scratch on each call: no caching, each
// query is a fresh snapshot of whatever the writers have flushed so far.
// There is deliberately no cross-store transaction; human-scale interactive
// history tolerates a write landing between two store reads.
package history

import (
	"os"
	"sort"

	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/logger"
	"github.com/mhaile/hh/internal/core/models"
)

// MergeAll reads every discoverable session store and returns the combined
// records newest first. A store that cannot be read is skipped with a
// warning; one bad store never breaks the whole view.
func MergeAll(cfg *config.Config) []models.HistoryRecord {
	log := logger.WithComponent("history")

	var all []models.HistoryRecord
	for _, path := range db.Discover(cfg) {
		records, err := readStore(path)
		if err != nil {
			log.Warn("skipping unreadable store", "path", path, "error", err)
			continue
		}
		all = append(all, records...)
	}

	// Stable keeps per-store insertion order among equal timestamps.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Timestamp > all[j].Timestamp
	})
	return all
}

func readStore(path string) ([]models.HistoryRecord, error) {
	// A store can vanish between discovery and open (concurrent reclamation);
	// opening it blind would re-create an empty file in its place.
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	store, err := db.OpenPath(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = store.Close() }()
	return store.ReadAll()
}

// ByDirectory returns the merged records whose directory matches exactly.
func ByDirectory(cfg *config.Config, dir string) []models.HistoryRecord {
	return filter(MergeAll(cfg), func(r models.HistoryRecord) bool {
		return r.Directory == dir
	})
}

// ByShell returns the records of one shell's store. Reading just the one
// store instead of merging everything is an optimization only; the result is
// identical to filtering MergeAll on shell_id.
func ByShell(cfg *config.Config, identifier string) []models.HistoryRecord {
	path := db.PathFor(cfg, identifier)
	records, err := readStore(path)
	if err != nil {
		logger.WithComponent("history").Warn("skipping unreadable store",
			"path", path, "error", err)
		return nil
	}
	return filter(records, func(r models.HistoryRecord) bool {
		return r.ShellID == identifier
	})
}

// ByTTY returns the merged records for one terminal.
func ByTTY(cfg *config.Config, tty string) []models.HistoryRecord {
	return filter(MergeAll(cfg), func(r models.HistoryRecord) bool {
		return r.TTY == tty
	})
}

// ByTimeRange returns the merged records with start <= timestamp <= end.
func ByTimeRange(cfg *config.Config, start, end float64) []models.HistoryRecord {
	return filter(MergeAll(cfg), func(r models.HistoryRecord) bool {
		return r.Timestamp >= start && r.Timestamp <= end
	})
}

// Recent returns the newest limit records across all stores.
func Recent(cfg *config.Config, limit int) []models.HistoryRecord {
	all := MergeAll(cfg)
	if limit >= 0 && len(all) > limit {
		all = all[:limit]
	}
	return all
}

func filter(records []models.HistoryRecord, keep func(models.HistoryRecord) bool) []models.HistoryRecord {
	var out []models.HistoryRecord
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
