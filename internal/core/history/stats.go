package history

import (
	"sort"

	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/models"
)

// Stats summarizes the merged view.
type Stats struct {
	Total             int
	UniqueDirectories int
	UniqueShells      int
	UniqueTTYs        int
	MinTimestamp      float64
	MaxTimestamp      float64
	HasRange          bool // false when the view is empty
}

// Count is a value with its occurrence count in the merged view.
type Count struct {
	Value string
	Count int
}

// GetStats computes summary statistics over all stores.
func GetStats(cfg *config.Config) Stats {
	records := MergeAll(cfg)

	s := Stats{Total: len(records)}
	if len(records) == 0 {
		return s
	}

	dirs := map[string]struct{}{}
	shells := map[string]struct{}{}
	ttys := map[string]struct{}{}
	s.MinTimestamp = records[0].Timestamp
	s.MaxTimestamp = records[0].Timestamp
	for _, r := range records {
		dirs[r.Directory] = struct{}{}
		shells[r.ShellID] = struct{}{}
		ttys[r.TTY] = struct{}{}
		if r.Timestamp < s.MinTimestamp {
			s.MinTimestamp = r.Timestamp
		}
		if r.Timestamp > s.MaxTimestamp {
			s.MaxTimestamp = r.Timestamp
		}
	}
	s.UniqueDirectories = len(dirs)
	s.UniqueShells = len(shells)
	s.UniqueTTYs = len(ttys)
	s.HasRange = true
	return s
}

// TopDirectories returns the most used directories, count descending. Equal
// counts keep the order the directories were first seen in the merged view.
func TopDirectories(cfg *config.Config, limit int) []Count {
	return topBy(MergeAll(cfg), limit, func(r models.HistoryRecord) string {
		return r.Directory
	})
}

// TopCommands returns the most used commands, count descending, with the
// same first-seen tie-break as TopDirectories.
func TopCommands(cfg *config.Config, limit int) []Count {
	return topBy(MergeAll(cfg), limit, func(r models.HistoryRecord) string {
		return r.Command
	})
}

func topBy(records []models.HistoryRecord, limit int, key func(models.HistoryRecord) string) []Count {
	counts := map[string]int{}
	var order []string
	for _, r := range records {
		k := key(r)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	result := make([]Count, 0, len(order))
	for _, k := range order {
		result = append(result, Count{Value: k, Count: counts[k]})
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Count > result[j].Count
	})

	if limit >= 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}
