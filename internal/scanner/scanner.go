package scanner

import (
	"path/filepath"

	"github.com/lumipallolabs/mezdisk/internal/model"
)

// Unbounded disables the depth cutoff
const Unbounded = -1

// SizeMode selects how file sizes are measured
type SizeMode int

const (
	// Apparent uses the size reported by stat
	Apparent SizeMode = iota
	// Allocated uses the blocks actually allocated on disk
	Allocated
)

// String returns the config name of the mode
func (m SizeMode) String() string {
	switch m {
	case Allocated:
		return "allocated"
	default:
		return "apparent"
	}
}

// ParseSizeMode converts a config name to a SizeMode
func ParseSizeMode(s string) (SizeMode, bool) {
	switch s {
	case "", "apparent":
		return Apparent, true
	case "allocated":
		return Allocated, true
	default:
		return Apparent, false
	}
}

// Config controls a scan
type Config struct {
	// MaxDepth stops descent at this depth; negative means unbounded.
	// Directories at the cutoff are reported with no children and size 0.
	MaxDepth int
	// FollowSymlinks traverses symbolic links. There is no cycle detection.
	FollowSymlinks bool
	// OnVisit is called synchronously with the path of every entry, root included
	OnVisit func(path string)
	// SizeMode selects apparent or allocated file sizes
	SizeMode SizeMode
	// OneFileSystem stops descent into directories on another device than the root
	OneFileSystem bool
}

// DefaultConfig returns an unbounded, non-following configuration
func DefaultConfig() Config {
	return Config{MaxDepth: Unbounded}
}

// cutoff reports whether a directory at depth must not be listed
func (c Config) cutoff(depth int) bool {
	return c.MaxDepth >= 0 && depth >= c.MaxDepth
}

// Scanner defines the interface for filesystem scanning
type Scanner interface {
	// Scan walks root and returns the size-annotated tree. It never fails;
	// problems are recorded on the affected nodes.
	Scan(root string) model.ScanResult
}

// Scan runs a sequential scan of root
func Scan(root string, cfg Config) model.ScanResult {
	return New(cfg).Scan(root)
}

// absPath resolves root, keeping it as given when that fails
func absPath(root string) string {
	abs, err := filepath.Abs(root)
	if err != nil {
		return root
	}
	return abs
}
