//go:build linux || darwin || freebsd

package files

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Disk reports total and free bytes on the filesystem holding path.
func Disk(path string) (Usage, error) {
	var st unix.Statfs_t
	if err := unix.Statfs(path, &st); err != nil {
		return Usage{}, fmt.Errorf("failed to stat filesystem for %s: %w", path, err)
	}
	bsize := uint64(st.Bsize)
	return Usage{Path: path, Total: uint64(st.Blocks) * bsize, Free: uint64(st.Bavail) * bsize}, nil
}
