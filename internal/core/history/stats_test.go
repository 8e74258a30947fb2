package history

import (
	"testing"

	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/models"
)

func TestGetStats(t *testing.T) {
	cfg := testConfig(t)

	t.Run("Empty", func(t *testing.T) {
		s := GetStats(cfg)
		if s.Total != 0 || s.HasRange {
			t.Errorf("GetStats() on empty view = %+v, want zero totals and no range", s)
		}
	})

	seedStore(t, cfg, "pts-1_100", "pts-1", "/home/u", map[string]float64{
		"ls": 100, "make": 300,
	})
	seedStore(t, cfg, "pts-2_200", "pts-2", "/home/u/proj", map[string]float64{
		"ls": 200,
	})

	t.Run("Populated", func(t *testing.T) {
		s := GetStats(cfg)
		if s.Total != 3 {
			t.Errorf("Total = %d, want 3", s.Total)
		}
		if s.UniqueDirectories != 2 {
			t.Errorf("UniqueDirectories = %d, want 2", s.UniqueDirectories)
		}
		if s.UniqueShells != 2 {
			t.Errorf("UniqueShells = %d, want 2", s.UniqueShells)
		}
		if s.UniqueTTYs != 2 {
			t.Errorf("UniqueTTYs = %d, want 2", s.UniqueTTYs)
		}
		if !s.HasRange || s.MinTimestamp != 100 || s.MaxTimestamp != 300 {
			t.Errorf("range = (%v, %v, %v), want (100, 300, true)",
				s.MinTimestamp, s.MaxTimestamp, s.HasRange)
		}
	})
}

func TestTopDirectories(t *testing.T) {
	cfg := testConfig(t)

	store, err := db.Open(cfg, "pts-1_100")
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	// /a twice, /b once, /c once; /b encountered before /c in the merged
	// (newest-first) view
	rows := []struct {
		command string
		dir     string
		ts      float64
	}{
		{"cmd1", "/a", 400},
		{"cmd2", "/b", 300},
		{"cmd3", "/c", 200},
		{"cmd4", "/a", 100},
	}
	for _, r := range rows {
		store.Append(models.HistoryRecord{
			Command: r.command, Directory: r.dir, ShellID: "pts-1_100",
			TTY: "pts-1", PID: 1, Timestamp: r.ts,
		})
	}

	got := TopDirectories(cfg, 10)
	if len(got) != 3 {
		t.Fatalf("TopDirectories() = %d entries, want 3", len(got))
	}
	if got[0].Value != "/a" || got[0].Count != 2 {
		t.Errorf("top entry = %+v, want /a with count 2", got[0])
	}
	// Tie between /b and /c resolves to first-encountered order
	if got[1].Value != "/b" || got[2].Value != "/c" {
		t.Errorf("tie order = [%s, %s], want [/b, /c]", got[1].Value, got[2].Value)
	}

	if limited := TopDirectories(cfg, 1); len(limited) != 1 {
		t.Errorf("TopDirectories(1) = %d entries, want 1", len(limited))
	}
}

func TestTopCommands(t *testing.T) {
	cfg := testConfig(t)
	seedStore(t, cfg, "pts-1_100", "pts-1", "/home/u", map[string]float64{
		"ls": 100, "make": 200,
	})
	seedStore(t, cfg, "pts-2_200", "pts-2", "/home/u", map[string]float64{
		"ls": 300,
	})

	got := TopCommands(cfg, 10)
	if len(got) != 2 {
		t.Fatalf("TopCommands() = %d entries, want 2", len(got))
	}
	if got[0].Value != "ls" || got[0].Count != 2 {
		t.Errorf("top command = %+v, want ls with count 2", got[0])
	}
}
