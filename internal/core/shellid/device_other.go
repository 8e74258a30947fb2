//go:build !linux

package shellid

// devicePath resolves the terminal device behind an open fd. Without procfs
// there is no portable way to recover the device path, so the identity
// degrades to the "unknown" tty; the pid component keeps it unique.
func devicePath(fd uintptr) string {
	return ""
}
