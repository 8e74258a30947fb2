package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mhaile/hh/internal/core/config"
	"github.com/mhaile/hh/internal/core/db"
	"github.com/mhaile/hh/internal/core/shellid"
)

func TestReadHistoryFile(t *testing.T) {
	t.Run("Missing", func(t *testing.T) {
		commands, err := ReadHistoryFile(filepath.Join(t.TempDir(), "nope"))
		if err != nil {
			t.Fatalf("ReadHistoryFile(missing) error = %v", err)
		}
		if len(commands) != 0 {
			t.Errorf("expected no commands, got %v", commands)
		}
	})

	t.Run("SkipsBlankLines", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "history")
		content := "ls -la\n\n  \ngit status\n\tmake test\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		commands, err := ReadHistoryFile(path)
		if err != nil {
			t.Fatalf("ReadHistoryFile() error = %v", err)
		}
		want := []string{"ls -la", "git status", "make test"}
		if len(commands) != len(want) {
			t.Fatalf("got %v, want %v", commands, want)
		}
		for i := range want {
			if commands[i] != want[i] {
				t.Errorf("commands[%d] = %q, want %q", i, commands[i], want[i])
			}
		}
	})
}

func TestTrackDirectories(t *testing.T) {
	base := t.TempDir()
	// EvalSymlinks so expectations survive /tmp being a symlink (macOS)
	base, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatal(err)
	}
	sub := filepath.Join(base, "proj")
	if err := os.Mkdir(sub, 0755); err != nil {
		t.Fatal(err)
	}

	commands := []string{
		"ls",
		"cd " + sub,
		"git status",
		"cd does-not-exist",
		"make",
		"pushd ..",
		"pwd",
	}

	entries := TrackDirectories(commands, base)
	if len(entries) != len(commands) {
		t.Fatalf("got %d entries, want %d", len(entries), len(commands))
	}

	wantDirs := []string{
		base, // ls, before any cd
		sub,  // the cd itself is attributed to the new directory
		sub,  // git status
		sub,  // failed cd keeps the current directory
		sub,  // make
		base, // pushd .. resolves relative to current
		base, // pwd
	}
	for i, want := range wantDirs {
		if entries[i].Directory != want {
			t.Errorf("entries[%d] (%q) directory = %q, want %q",
				i, entries[i].Command, entries[i].Directory, want)
		}
	}
}

func TestTrackDirectories_RelativeCd(t *testing.T) {
	base := t.TempDir()
	base, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(base, "a", "b"), 0755); err != nil {
		t.Fatal(err)
	}

	entries := TrackDirectories([]string{"cd a", "cd b", "echo hi"}, base)
	if got := entries[2].Directory; got != filepath.Join(base, "a", "b") {
		t.Errorf("after cd a; cd b, directory = %q, want %q", got, filepath.Join(base, "a", "b"))
	}
}

func TestTrackDirectories_CdToFileKeepsDirectory(t *testing.T) {
	base := t.TempDir()
	base, err := filepath.EvalSymlinks(base)
	if err != nil {
		t.Fatal(err)
	}
	file := filepath.Join(base, "notadir")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	entries := TrackDirectories([]string{"cd " + file, "ls"}, base)
	if entries[1].Directory != base {
		t.Errorf("cd to a regular file moved the directory to %q", entries[1].Directory)
	}
}

func TestIngest(t *testing.T) {
	cfg := &config.Config{DataDir: t.TempDir()}
	id := shellid.Identity{
		TTY: "pts-1", PID: 42, PPID: 7, Identifier: "pts-1_42",
	}

	store, err := db.Open(cfg, id.Identifier)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer func() { _ = store.Close() }()

	entries := []Entry{
		{Command: "ls", Directory: "/home/u"},
		{Command: "git status", Directory: "/home/u/proj"},
	}
	if got := Ingest(store, id, entries); got != 2 {
		t.Fatalf("Ingest() = %d, want 2", got)
	}

	records, err := store.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.ShellID != "pts-1_42" || r.TTY != "pts-1" || r.PID != 42 || r.PPID != 7 {
			t.Errorf("record %q not stamped with identity: %+v", r.Command, r)
		}
		if r.Timestamp <= 0 {
			t.Errorf("record %q has no timestamp", r.Command)
		}
	}
}
