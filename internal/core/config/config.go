package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config carries every filesystem path the storage layer touches. It is
// built once by the entry point and passed down explicitly; no package-level
// path state exists anywhere else.
type Config struct {
	DataDir      string // Per-shell session databases live here
	LifecycleDir string // One marker file per live shell
	HistoryFile  string // Raw shell history to ingest
	LogPath      string
	RecentLimit  int // Default row count for recent views
}

type tomlConfig struct {
	DataDir      string `toml:"data_dir"`
	LifecycleDir string `toml:"lifecycle_dir"`
	HistoryFile  string `toml:"history_file"`
	RecentLimit  int    `toml:"recent_limit"`
}

// Load builds a Config from defaults plus ~/.config/hh/config.toml when it
// exists. A missing or malformed config file is not an error; defaults win.
func Load() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}

	cfg := &Config{
		DataDir:      filepath.Join(home, ".hh_databases"),
		LifecycleDir: filepath.Join(home, ".hh_lifecycle"),
		HistoryFile:  filepath.Join(home, ".myhistory"),
		LogPath:      filepath.Join(home, ".hh_databases", "hh.log"),
		RecentLimit:  50,
	}

	tomlPath := filepath.Join(home, ".config", "hh", "config.toml")
	if _, err := os.Stat(tomlPath); err == nil {
		var tc tomlConfig
		if _, err := toml.DecodeFile(tomlPath, &tc); err == nil {
			if tc.DataDir != "" {
				cfg.DataDir = expand(home, tc.DataDir)
			}
			if tc.LifecycleDir != "" {
				cfg.LifecycleDir = expand(home, tc.LifecycleDir)
			}
			if tc.HistoryFile != "" {
				cfg.HistoryFile = expand(home, tc.HistoryFile)
			}
			if tc.RecentLimit > 0 {
				cfg.RecentLimit = tc.RecentLimit
			}
		}
	}

	return cfg
}

// expand resolves a leading ~ against the user's home directory.
func expand(home, path string) string {
	if path == "~" {
		return home
	}
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
