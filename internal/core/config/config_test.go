package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.DataDir == "" || cfg.LifecycleDir == "" {
		t.Fatalf("Load() left directories empty: %+v", cfg)
	}
	if cfg.DataDir == cfg.LifecycleDir {
		t.Error("data and lifecycle directories must be distinct")
	}
	if filepath.Base(cfg.DataDir) != ".hh_databases" {
		t.Errorf("DataDir = %q, want a .hh_databases default", cfg.DataDir)
	}
	if cfg.RecentLimit <= 0 {
		t.Errorf("RecentLimit = %d, want a positive default", cfg.RecentLimit)
	}
}

func TestExpand(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"~", "/home/u"},
		{"~/data", "/home/u/data"},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		if got := expand("/home/u", tt.in); got != tt.want {
			t.Errorf("expand(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
