//go:build !linux && !darwin && !freebsd && !windows

package model

func getDiskSpace(path string) (total, free int64) {
	return 0, 0
}
