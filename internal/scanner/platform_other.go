//go:build !unix

package scanner

// allocatedSize is not available here; callers fall back to the apparent size
func allocatedSize(path string, follow bool) (int64, bool) {
	return 0, false
}

// deviceID returns false: drives are separate roots, so there are no mount points to skip
func deviceID(path string) (uint64, bool) {
	return 0, false
}
