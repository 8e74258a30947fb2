//go:build linux

package shellid

import (
	"fmt"
	"os"
)

// devicePath resolves the terminal device behind an open fd via procfs.
func devicePath(fd uintptr) string {
	link, err := os.Readlink(fmt.Sprintf("/proc/self/fd/%d", fd))
	if err != nil {
		return ""
	}
	return link
}
