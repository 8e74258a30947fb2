// Package lifecycle tracks which shell identities are currently alive. Each
// live shell keeps a marker file; a marker alone proves nothing (SIGKILL
// leaves one behind), so liveness is always re-verified against the recorded
// pid before anything gets reclaimed.
package lifecycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/logger"
	"github.com/mhaile/hh/internal/core/shellid"
)

// Marker is the JSON body of a lifecycle marker file.
type Marker struct {
	ShellID   string  `json:"shell_id"`
	StartTime float64 `json:"start_time"`
	TTY       string  `json:"tty"`
	PID       int     `json:"pid"`
}

// ProcessProbe answers whether a pid refers to a live process. Behind an
// interface so sweeps can be tested without spawning processes.
type ProcessProbe interface {
	Alive(pid int) bool
}

// SignalProbe probes liveness with a zero-effect kill(pid, 0).
type SignalProbe struct{}

// Alive reports whether pid exists. Permission denied counts as alive:
// reclaiming a store we merely cannot signal would lose live data.
func (SignalProbe) Alive(pid int) bool {
	if pid <= 0 {
		return false
	}
	err := syscall.Kill(pid, 0)
	if err == nil {
		return true
	}
	return errors.Is(err, syscall.EPERM)
}

// markerPath returns the marker file for an identifier; like store files,
// the name is a pure function of the identifier.
func markerPath(cfg *config.Config, identifier string) string {
	return filepath.Join(cfg.LifecycleDir, "active_"+identifier)
}

// MarkActive writes the marker for this shell, overwriting any previous one.
func MarkActive(cfg *config.Config, id shellid.Identity, startTime float64) error {
	if err := os.MkdirAll(cfg.LifecycleDir, 0755); err != nil {
		return fmt.Errorf("create lifecycle directory: %w", err)
	}

	data, err := json.Marshal(Marker{
		ShellID:   id.Identifier,
		StartTime: startTime,
		TTY:       id.TTY,
		PID:       id.PID,
	})
	if err != nil {
		return fmt.Errorf("encode marker: %w", err)
	}

	if err := os.WriteFile(markerPath(cfg, id.Identifier), data, 0644); err != nil {
		return fmt.Errorf("write marker: %w", err)
	}
	return nil
}

// MarkInactive removes the marker for an identifier. Removing a marker that
// is already gone is a no-op, not an error.
func MarkInactive(cfg *config.Config, identifier string) {
	if err := os.Remove(markerPath(cfg, identifier)); err != nil && !os.IsNotExist(err) {
		logger.WithComponent("lifecycle").Warn("failed to remove marker",
			"identifier", identifier, "error", err)
	}
}

// Sweep enumerates all markers and reclaims the ones whose shell is dead:
// the marker and the shell's session store are both deleted. A marker that
// fails to parse is removed on its own; without a trustworthy pid we have no
// confidence about store ownership, so the store stays. Returns the number
// of stores reclaimed.
func Sweep(cfg *config.Config, probe ProcessProbe) int {
	log := logger.WithComponent("lifecycle")

	markers, err := filepath.Glob(filepath.Join(cfg.LifecycleDir, "active_*"))
	if err != nil || len(markers) == 0 {
		return 0
	}

	reclaimed := 0
	for _, path := range markers {
		data, err := os.ReadFile(path)
		if err != nil {
			// Vanished mid-sweep: another process got there first.
			continue
		}

		var m Marker
		if err := json.Unmarshal(data, &m); err != nil || m.ShellID == "" {
			log.Warn("removing corrupt marker", "path", path)
			_ = os.Remove(path)
			continue
		}

		if probe.Alive(m.PID) {
			continue
		}

		MarkInactive(cfg, m.ShellID)
		removed, err := db.Remove(db.PathFor(cfg, m.ShellID))
		if err != nil {
			log.Warn("failed to remove store for dead shell",
				"identifier", m.ShellID, "error", err)
			continue
		}
		if removed {
			reclaimed++
			log.Info("reclaimed dead shell", "identifier", m.ShellID, "pid", m.PID)
		}
	}
	return reclaimed
}

// Identifiers returns the shell identifiers of all current markers, parsed
// from file names. Used for display, not for reclamation decisions.
func Identifiers(cfg *config.Config) []string {
	markers, err := filepath.Glob(filepath.Join(cfg.LifecycleDir, "active_*"))
	if err != nil {
		return nil
	}
	ids := make([]string, 0, len(markers))
	for _, m := range markers {
		ids = append(ids, strings.TrimPrefix(filepath.Base(m), "active_"))
	}
	return ids
}
