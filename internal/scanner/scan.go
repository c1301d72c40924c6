package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/lumipallolabs/mezdisk/internal/logging"
	"github.com/lumipallolabs/mezdisk/internal/model"
)

// Sequential walks the tree depth-first on the calling goroutine
type Sequential struct {
	cfg Config
}

// New creates a sequential scanner
func New(cfg Config) *Sequential {
	return &Sequential{cfg: cfg}
}

// dirFrame is one directory on the explicit traversal stack
type dirFrame struct {
	node    *model.Node
	depth   int
	entries []fs.DirEntry
	next    int
}

// scan holds the mutable state of one Scan call
type scan struct {
	cfg     Config
	stats   model.ScanStats
	rootDev uint64
	hasDev  bool
}

// Scan walks root and returns the size-annotated tree
func (s *Sequential) Scan(root string) model.ScanResult {
	start := time.Now()
	absRoot := absPath(root)

	sc := &scan{cfg: s.cfg}
	sc.visit(absRoot)
	node := sc.scanRoot(absRoot)

	return model.ScanResult{
		Root:    node,
		Stats:   sc.stats,
		Elapsed: time.Since(start),
	}
}

func (sc *scan) visit(path string) {
	if sc.cfg.OnVisit != nil {
		sc.cfg.OnVisit(path)
	}
}

// fail marks node as degraded by err
func (sc *scan) fail(node *model.Node, err error) *model.Node {
	sc.stats.Errors++
	node.Err = describe(err)
	node.Size = 0
	logging.Scanner.Debug("scan failure", "path", node.Path, "kind", Classify(err), "err", err)
	return node
}

func (sc *scan) scanRoot(path string) *model.Node {
	info, err := os.Lstat(path)
	if err != nil {
		sc.stats.Files++
		return sc.fail(model.NewNode(path, false), err)
	}

	followed := false
	if info.Mode()&fs.ModeSymlink != 0 {
		if !sc.cfg.FollowSymlinks {
			sc.stats.Files++
			return model.NewNode(path, false)
		}
		info, err = os.Stat(path)
		if err != nil {
			sc.stats.Files++
			return sc.fail(model.NewNode(path, false), err)
		}
		followed = true
	}

	if info.IsDir() {
		sc.rootDev, sc.hasDev = deviceID(path)
		return sc.walk(path)
	}

	sc.stats.Files++
	node := model.NewNode(path, false)
	node.Size = sc.fileSize(path, info, followed)
	return node
}

// walk scans the directory tree rooted at path using an explicit stack
func (sc *scan) walk(path string) *model.Node {
	root := sc.openDir(path, 0)
	stack := []*dirFrame{root}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if top.next < len(top.entries) {
			entry := top.entries[top.next]
			top.next++

			childPath := filepath.Join(top.node.Path, entry.Name())
			sc.visit(childPath)

			child, isDir := sc.classify(childPath, entry)
			if isDir {
				frame := sc.openDir(childPath, top.depth+1)
				top.node.Children = append(top.node.Children, frame.node)
				stack = append(stack, frame)
				continue
			}
			top.node.Children = append(top.node.Children, child)
			continue
		}

		// All children are complete: aggregate once
		var total int64
		for _, child := range top.node.Children {
			total += child.Size
		}
		top.node.Size = total
		stack = stack[:len(stack)-1]
	}

	return root.node
}

// openDir creates the node for a directory and lists it unless it is cut off.
// A failed listing keeps whatever entries were read before the failure.
func (sc *scan) openDir(path string, depth int) *dirFrame {
	node := model.NewNode(path, true)
	sc.stats.Dirs++
	frame := &dirFrame{node: node, depth: depth}

	if sc.cfg.cutoff(depth) {
		return frame
	}

	if sc.cfg.OneFileSystem && depth > 0 && sc.hasDev {
		if dev, ok := deviceID(path); ok && dev != sc.rootDev {
			logging.Scanner.Debug("skipping mount point", "path", path)
			return frame
		}
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		sc.fail(node, err)
	}
	frame.entries = entries
	return frame
}

// classify turns a directory entry into a leaf node, or reports that it is a
// directory to descend into
func (sc *scan) classify(path string, entry fs.DirEntry) (*model.Node, bool) {
	if entry.Type()&fs.ModeSymlink != 0 {
		if !sc.cfg.FollowSymlinks {
			sc.stats.Files++
			return model.NewNode(path, false), false
		}

		info, err := os.Stat(path)
		if err != nil {
			sc.stats.Files++
			return sc.fail(model.NewNode(path, false), err), false
		}
		if info.IsDir() {
			return nil, true
		}

		sc.stats.Files++
		node := model.NewNode(path, false)
		node.Size = sc.fileSize(path, info, true)
		return node, false
	}

	if entry.IsDir() {
		return nil, true
	}

	sc.stats.Files++
	node := model.NewNode(path, false)
	info, err := entry.Info()
	if err != nil {
		return sc.fail(node, err), false
	}
	node.Size = sc.fileSize(path, info, false)
	return node, false
}

func (sc *scan) fileSize(path string, info fs.FileInfo, follow bool) int64 {
	return sizeOf(sc.cfg.SizeMode, path, info, follow)
}

// sizeOf measures a file according to mode, falling back to the apparent size
func sizeOf(mode SizeMode, path string, info fs.FileInfo, follow bool) int64 {
	if mode == Allocated {
		if size, ok := allocatedSize(path, follow); ok {
			return size
		}
	}
	return info.Size()
}

// Ensure Sequential implements Scanner
var _ Scanner = (*Sequential)(nil)
