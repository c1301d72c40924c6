//go:build unix

package scanner

import "golang.org/x/sys/unix"

// allocatedSize returns the bytes allocated on disk for path (handles sparse files).
// Blocks is in 512-byte units.
func allocatedSize(path string, follow bool) (int64, bool) {
	var stat unix.Stat_t
	var err error
	if follow {
		err = unix.Stat(path, &stat)
	} else {
		err = unix.Lstat(path, &stat)
	}
	if err != nil {
		return 0, false
	}
	return int64(stat.Blocks) * 512, true
}

// deviceID returns the device holding path, used for mount point detection
func deviceID(path string) (uint64, bool) {
	var stat unix.Stat_t
	if err := unix.Stat(path, &stat); err != nil {
		return 0, false
	}
	return uint64(stat.Dev), true
}
