// Package db implements per-shell session stores. Each interactive shell
// owns exactly one SQLite database named after its identity; writers never
// touch another shell's store, which is what keeps the whole system free of
// cross-process locking.
package db

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/logger"
	"github.com/mhaile/hh/internal/core/models"
)

// Error taxonomy for store operations. Callers match with errors.Is; a
// failure on one store must never prevent reads or writes on the others.
var (
	ErrStorageInit  = errors.New("store init failed")
	ErrStorageRead  = errors.New("store read failed")
	ErrStorageWrite = errors.New("store write failed")
)

// Store is one shell's private append-only command log.
type Store struct {
	conn       *sql.DB
	identifier string
	path       string
}

// PathFor returns the database file path for a shell identifier. The name is
// a deterministic function of the identifier so any process can derive it.
func PathFor(cfg *config.Config, identifier string) string {
	return filepath.Join(cfg.DataDir, "session_"+identifier+".db")
}

// IdentifierFromPath recovers the shell identifier from a store file path.
// Returns "" if the path is not a session store.
func IdentifierFromPath(path string) string {
	base := filepath.Base(path)
	if !strings.HasPrefix(base, "session_") || !strings.HasSuffix(base, ".db") {
		return ""
	}
	return strings.TrimSuffix(strings.TrimPrefix(base, "session_"), ".db")
}

// Discover lists every session store file currently present in the data
// directory. Entries may vanish between discovery and open; callers treat
// that as "store gone", not an error.
func Discover(cfg *config.Config) []string {
	paths, err := filepath.Glob(filepath.Join(cfg.DataDir, "session_*.db"))
	if err != nil {
		return nil
	}
	return paths
}

// Remove deletes a store file along with its WAL sidecars. Reports whether
// the main database file was actually removed.
func Remove(path string) (bool, error) {
	err := os.Remove(path)
	// The sidecars only exist while the store has uncheckpointed writes.
	_ = os.Remove(path + "-wal")
	_ = os.Remove(path + "-shm")
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Open opens the store for a shell identifier, creating the data directory,
// database file, and schema as needed. Errors wrap ErrStorageInit: fatal to
// recording from this process, never fatal to the CLI as a whole.
func Open(cfg *config.Config, identifier string) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: create data directory: %v", ErrStorageInit, err)
	}
	s, err := openPath(PathFor(cfg, identifier), identifier)
	if err != nil {
		return nil, err
	}
	if err := s.initSchema(); err != nil {
		_ = s.conn.Close()
		return nil, fmt.Errorf("%w: init schema for %s: %v", ErrStorageInit, s.path, err)
	}
	return s, nil
}

// OpenPath opens an existing store file directly, as used by the merge and
// retention paths that enumerate the data directory. It never creates schema
// in another shell's file; reading a store that lacks one simply fails with
// a read error the caller skips.
func OpenPath(path string) (*Store, error) {
	return openPath(path, IdentifierFromPath(path))
}

func openPath(path, identifier string) (*Store, error) {
	// WAL lets concurrent readers (merge queries from other shells) proceed
	// while the owner appends.
	dsn := path + "?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=busy_timeout(2000)"
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrStorageInit, path, err)
	}

	// Single owning writer per store.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(time.Hour)

	return &Store{conn: conn, identifier: identifier, path: path}, nil
}

func (s *Store) initSchema() error {
	_, err := s.conn.Exec(`
		CREATE TABLE IF NOT EXISTS history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			command TEXT NOT NULL,
			directory TEXT NOT NULL,
			shell_id TEXT NOT NULL,
			tty TEXT NOT NULL,
			pid INTEGER NOT NULL,
			ppid INTEGER,
			timestamp REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_directory ON history(directory);
		CREATE INDEX IF NOT EXISTS idx_timestamp ON history(timestamp);
		CREATE INDEX IF NOT EXISTS idx_command ON history(command);
		CREATE INDEX IF NOT EXISTS idx_shell_id ON history(shell_id);
		CREATE INDEX IF NOT EXISTS idx_tty ON history(tty);
	`)
	return err
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}

// Identifier returns the shell identifier this store belongs to.
func (s *Store) Identifier() string {
	return s.identifier
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Append durably inserts one record, assigning the next local row id.
// Storage failures are logged and reported as false; the entry is lost, not
// retried, and the caller keeps going.
func (s *Store) Append(rec models.HistoryRecord) bool {
	log := logger.WithComponent("db")

	if err := rec.Validate(); err != nil {
		log.Warn("dropping invalid history record", "store", s.identifier, "error", err)
		return false
	}

	var ppid any
	if rec.PPID > 0 {
		ppid = rec.PPID
	}
	_, err := s.conn.Exec(`
		INSERT INTO history (command, directory, shell_id, tty, pid, ppid, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, rec.Command, rec.Directory, rec.ShellID, rec.TTY, rec.PID, ppid, rec.Timestamp)
	if err != nil {
		log.Warn("append failed", "store", s.identifier,
			"error", fmt.Errorf("%w: %v", ErrStorageWrite, err))
		return false
	}
	return true
}

// ReadAll returns every record in the store, newest first. Ties on timestamp
// keep insertion order. An empty store yields an empty slice; an unreadable
// one yields an error wrapping ErrStorageRead.
func (s *Store) ReadAll() ([]models.HistoryRecord, error) {
	rows, err := s.conn.Query(`
		SELECT id, command, directory, shell_id, tty, pid, COALESCE(ppid, 0), timestamp
		FROM history
		ORDER BY timestamp DESC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageRead, s.path, err)
	}
	defer func() { _ = rows.Close() }()

	var records []models.HistoryRecord
	for rows.Next() {
		var r models.HistoryRecord
		if err := rows.Scan(&r.ID, &r.Command, &r.Directory, &r.ShellID,
			&r.TTY, &r.PID, &r.PPID, &r.Timestamp); err != nil {
			return nil, fmt.Errorf("%w: scan %s: %v", ErrStorageRead, s.path, err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorageRead, s.path, err)
	}
	return records, nil
}

// MaxTimestamp returns the newest timestamp in the store. ok is false when
// the store holds no rows.
func (s *Store) MaxTimestamp() (ts float64, ok bool, err error) {
	var max sql.NullFloat64
	if err := s.conn.QueryRow(`SELECT MAX(timestamp) FROM history`).Scan(&max); err != nil {
		return 0, false, fmt.Errorf("%w: %s: %v", ErrStorageRead, s.path, err)
	}
	if !max.Valid {
		return 0, false, nil
	}
	return max.Float64, true, nil
}

// Count returns the number of records in the store.
func (s *Store) Count() (int, error) {
	var n int
	if err := s.conn.QueryRow(`SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, fmt.Errorf("%w: %s: %v", ErrStorageRead, s.path, err)
	}
	return n, nil
}
