//go:build linux || darwin || freebsd

package model

import "golang.org/x/sys/unix"

// getDiskSpace returns disk space information for a given path using statfs
func getDiskSpace(path string) (total, free int64) {
	var stat unix.Statfs_t
	if err := unix.Statfs(path, &stat); err != nil {
		return 0, 0
	}

	total = int64(uint64(stat.Blocks) * uint64(stat.Bsize))
	free = int64(uint64(stat.Bavail) * uint64(stat.Bsize))
	return total, free
}
