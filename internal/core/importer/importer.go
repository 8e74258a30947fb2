// Package importer feeds raw shell history into a session store. Directory
// attribution is heuristic: it replays cd/pushd transitions through the
// history, and a target that cannot be resolved simply keeps the previous
// directory rather than fabricating a path.
package importer

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"

	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/models"
	"github.com/mhaile/hh/internal/core/shellid"
)

// Entry is one command paired with the directory it is believed to have run
// in.
type Entry struct {
	Command   string
	Directory string
}

// ReadHistoryFile returns the non-blank lines of a raw history file. A
// missing file yields no commands, not an error.
func ReadHistoryFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = f.Close() }()

	var commands []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			commands = append(commands, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return commands, nil
}

// TrackDirectories walks the command sequence attributing a directory to
// each command, following cd and pushd. startDir is where the replay begins,
// normally the user's home directory since that is where login shells start.
func TrackDirectories(commands []string, startDir string) []Entry {
	home, err := os.UserHomeDir()
	if err != nil {
		home = startDir
	}

	current := startDir
	entries := make([]Entry, 0, len(commands))
	for _, command := range commands {
		if target, ok := changeTarget(command); ok {
			if resolved := resolveDir(target, current, home); resolved != "" {
				current = resolved
			}
		}
		entries = append(entries, Entry{Command: command, Directory: current})
	}
	return entries
}

// changeTarget extracts the destination argument of a cd or pushd command.
func changeTarget(command string) (string, bool) {
	for _, prefix := range []string{"cd ", "pushd "} {
		if strings.HasPrefix(command, prefix) {
			return strings.TrimSpace(strings.TrimPrefix(command, prefix)), true
		}
	}
	return "", false
}

// resolveDir turns a cd target into an absolute path, or "" when the target
// does not exist on disk. Non-existent targets keep the replay in place; a
// guess would poison the directory attribution of everything that follows.
func resolveDir(target, current, home string) string {
	switch {
	case target == "~":
		target = home
	case strings.HasPrefix(target, "~/"):
		target = filepath.Join(home, target[2:])
	case !filepath.IsAbs(target):
		target = filepath.Join(current, target)
	}

	resolved, err := filepath.EvalSymlinks(target)
	if err != nil {
		return ""
	}
	info, err := os.Stat(resolved)
	if err != nil || !info.IsDir() {
		return ""
	}
	return resolved
}

// Ingest appends each entry to the store as a record owned by the given
// shell identity, stamped with the current time. Returns how many rows were
// actually written; append failures are logged by the store and skipped.
func Ingest(store *db.Store, id shellid.Identity, entries []Entry) int {
	written := 0
	for _, e := range entries {
		rec := models.HistoryRecord{
			Command:   e.Command,
			Directory: e.Directory,
			ShellID:   id.Identifier,
			TTY:       id.TTY,
			PID:       id.PID,
			PPID:      id.PPID,
			Timestamp: models.Now(),
		}
		if store.Append(rec) {
			written++
		}
	}
	return written
}
