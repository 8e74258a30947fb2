// Package shellid derives a stable identifier for the calling shell process
// from its controlling terminal and pid. The identifier partitions history
// storage: every shell writes to its own database named after it.
package shellid

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mattn/go-isatty"
)

// Identity names the shell process this invocation belongs to.
type Identity struct {
	TTY  string // Base name of the controlling terminal, "unknown" if none
	PID  int
	PPID int

	// Identifier is tty+"_"+pid, the storage partition key.
	Identifier string

	// ParentIdentifier is tty+"_"+ppid, empty when the process has been
	// reparented to init and no parent shell is traceable.
	ParentIdentifier string
}

var (
	once     sync.Once
	resolved Identity
)

// Resolve returns the identity of the current process. It never fails: when
// no controlling terminal can be determined (running under a pipe or cron)
// the tty component degrades to "unknown" and the identifier stays usable.
// The result is computed once and is immutable for the process lifetime.
func Resolve() Identity {
	once.Do(func() {
		resolved = resolve(os.Getpid(), os.Getppid())
	})
	return resolved
}

func resolve(pid, ppid int) Identity {
	tty := ttyName()

	id := Identity{
		TTY:        tty,
		PID:        pid,
		PPID:       ppid,
		Identifier: fmt.Sprintf("%s_%d", tty, pid),
	}

	// ppid 1 means the original parent is gone; there is no parent shell
	// whose store could be related to ours.
	if ppid != 1 {
		id.ParentIdentifier = fmt.Sprintf("%s_%d", tty, ppid)
	}

	return id
}

// ttyName finds the controlling terminal by checking stdout, stdin, then
// stderr. Returns "unknown" when none of them is a terminal or the device
// path cannot be read back.
func ttyName() string {
	for _, f := range []*os.File{os.Stdout, os.Stdin, os.Stderr} {
		if !isatty.IsTerminal(f.Fd()) {
			continue
		}
		if path := devicePath(f.Fd()); path != "" {
			return filepath.Base(path)
		}
	}
	return "unknown"
}
