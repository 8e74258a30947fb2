package models

import (
	"errors"
	"time"
)

// HistoryRecord is one executed shell command, tagged with the directory it
// ran in and the shell that ran it. Records are immutable once written;
// deletion only ever happens at whole-store granularity.
type HistoryRecord struct {
	ID        int64
	Command   string
	Directory string // Absolute path the command ran in
	ShellID   string // tty_pid identifier of the owning shell
	TTY       string
	PID       int
	PPID      int     // 0 when unknown
	Timestamp float64 // Wall-clock seconds since the epoch
}

// Validate checks that the record carries the fields every store row needs.
func (r *HistoryRecord) Validate() error {
	if r.Command == "" {
		return errors.New("command is required")
	}
	if r.Directory == "" {
		return errors.New("directory is required")
	}
	if r.ShellID == "" {
		return errors.New("shell_id is required")
	}
	return nil
}

// Time converts the raw timestamp into a time.Time for display.
func (r *HistoryRecord) Time() time.Time {
	sec := int64(r.Timestamp)
	nsec := int64((r.Timestamp - float64(sec)) * 1e9)
	return time.Unix(sec, nsec)
}

// Now returns the current time as a store timestamp.
func Now() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}
