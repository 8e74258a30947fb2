// Package retention reclaims session stores that no longer earn their disk:
// stores whose owning shell is dead, and stores whose newest record has aged
// past a cutoff.
package retention

import (
	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/lifecycle"
	"github.com/mhaile/hh/internal/core/logger"
	"github.com/mhaile/hh/internal/core/models"
)

const secondsPerDay = 86400

// ReclaimDead removes the stores of shells whose process no longer exists,
// returning how many stores were deleted.
func ReclaimDead(cfg *config.Config, probe lifecycle.ProcessProbe) int {
	return lifecycle.Sweep(cfg, probe)
}

// EvictOlderThan deletes every store whose newest record is older than the
// given number of days, and every store that cannot be read at all. A store
// we cannot read is as useless as a stale one; corruption is not
// distinguished from staleness here. Returns the number of stores deleted.
func EvictOlderThan(cfg *config.Config, days int) int {
	log := logger.WithComponent("retention")
	cutoff := models.Now() - float64(days)*secondsPerDay

	removed := 0
	for _, path := range db.Discover(cfg) {
		stale, err := storeStale(path, cutoff)
		if err != nil {
			log.Warn("evicting unreadable store", "path", path, "error", err)
			stale = true
		}
		if !stale {
			continue
		}

		ok, err := db.Remove(path)
		if err != nil {
			log.Warn("failed to remove store", "path", path, "error", err)
			continue
		}
		if ok {
			removed++
			log.Info("evicted session store", "path", path)
		}
	}
	return removed
}

// storeStale reports whether the store's newest record predates the cutoff.
// An empty store is considered current; only reading failures force its
// removal.
func storeStale(path string, cutoff float64) (bool, error) {
	store, err := db.OpenPath(path)
	if err != nil {
		return false, err
	}
	defer func() { _ = store.Close() }()

	max, ok, err := store.MaxTimestamp()
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}
	return max < cutoff, nil
}
