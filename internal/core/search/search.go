// Package search ranks history records against a query: exact substring
// filtering plus fuzzy similarity with dedup for "what was that command
// again" lookups.
package search

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mhaile/hh/internal/core/models"
)

// Fuzzy ranking defaults.
const (
	DefaultThreshold = 0.6
	DefaultLimit     = 20
)

// Match is a record with its similarity score in [0,1].
type Match struct {
	Record models.HistoryRecord
	Score  float64
}

// Exact returns the records whose command contains the query,
// case-insensitive, preserving input order.
func Exact(records []models.HistoryRecord, query string) []models.HistoryRecord {
	q := strings.ToLower(query)
	var out []models.HistoryRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Command), q) {
			out = append(out, r)
		}
	}
	return out
}

// Fuzzy ranks records by similarity to the query. Substring containment
// scores exactly 1.0 and short-circuits the edit-distance metric, so literal
// hits always outrank near-misses. Records scoring below threshold are
// dropped; the rest sort by score descending, then timestamp descending.
// Only the best-ranked occurrence of each distinct command text survives,
// capped at limit.
func Fuzzy(records []models.HistoryRecord, query string, threshold float64, limit int) []Match {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []Match
	for _, r := range records {
		score := similarity(q, strings.ToLower(r.Command))
		if score < threshold {
			continue
		}
		matches = append(matches, Match{Record: r, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Record.Timestamp > matches[j].Record.Timestamp
	})

	// First occurrence under the sort order wins: highest score, newest on
	// score ties.
	seen := map[string]struct{}{}
	deduped := matches[:0]
	for _, m := range matches {
		if _, dup := seen[m.Record.Command]; dup {
			continue
		}
		seen[m.Record.Command] = struct{}{}
		deduped = append(deduped, m)
		if limit >= 0 && len(deduped) >= limit {
			break
		}
	}
	return deduped
}

// similarity scores query against command: 1.0 on containment, otherwise a
// normalized Levenshtein ratio. Both inputs are already lowercased.
func similarity(query, command string) float64 {
	if strings.Contains(command, query) {
		return 1.0
	}

	longest := len([]rune(query))
	if l := len([]rune(command)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}

	dist := levenshtein.ComputeDistance(query, command)
	return 1.0 - float64(dist)/float64(longest)
}
