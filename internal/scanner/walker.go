package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/lumipallolabs/mezdisk/internal/logging"
	"github.com/lumipallolabs/mezdisk/internal/model"
)

// Walker implements parallel filesystem scanning on top of fastwalk.
// Counters are merged across workers and OnVisit calls are serialized,
// but their order across subtrees is undefined.
type Walker struct {
	cfg     Config
	workers int
}

// NewWalker creates a new parallel filesystem walker.
// workers <= 0 lets fastwalk pick the worker count.
func NewWalker(cfg Config, workers int) *Walker {
	return &Walker{cfg: cfg, workers: workers}
}

// nodeEntry is a temporary structure for building the tree
type nodeEntry struct {
	path  string
	size  int64
	isDir bool
	err   string
	// errOnly entries carry a failure for a path that may already have an entry
	errOnly bool
}

// walkCounters are updated concurrently from fastwalk callbacks
type walkCounters struct {
	files  atomic.Int64
	dirs   atomic.Int64
	errors atomic.Int64
}

// Scan scans the filesystem starting at root using fastwalk
func (w *Walker) Scan(root string) model.ScanResult {
	absRoot := absPath(root)

	// Non-directory roots and depth 0 never list anything; the sequential
	// scanner already handles them the same way
	if w.cfg.MaxDepth == 0 || !w.walkableRoot(absRoot) {
		return New(w.cfg).Scan(root)
	}

	start := time.Now()

	var visitMu sync.Mutex
	visit := func(path string) {
		if w.cfg.OnVisit == nil {
			return
		}
		visitMu.Lock()
		defer visitMu.Unlock()
		w.cfg.OnVisit(path)
	}
	visit(absRoot)

	rootDev, hasDev := deviceID(absRoot)

	// Use channels for lock-free entry collection
	entryChan := make(chan nodeEntry, 4096)
	var entries []nodeEntry
	var entriesWg sync.WaitGroup

	entriesWg.Add(1)
	go func() {
		defer entriesWg.Done()
		collected := make([]nodeEntry, 0, 1024)
		for e := range entryChan {
			collected = append(collected, e)
		}
		entries = collected
	}()

	var counters walkCounters
	counters.dirs.Add(1) // root

	fail := func(path string, isDir bool, err error) nodeEntry {
		counters.errors.Add(1)
		logging.Scanner.Debug("scan failure", "path", path, "kind", Classify(err), "err", err)
		return nodeEntry{path: path, isDir: isDir, err: describe(err)}
	}

	conf := &fastwalk.Config{
		Follow:     w.cfg.FollowSymlinks,
		NumWorkers: w.workers,
	}

	walkErr := fastwalk.Walk(conf, absRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Listing or stat failure: localize it to path and keep walking
			e := fail(path, d != nil && d.IsDir(), err)
			e.errOnly = true
			entryChan <- e
			return nil
		}

		if path == absRoot {
			return nil
		}

		visit(path)

		if d.Type()&fs.ModeSymlink != 0 {
			if !w.cfg.FollowSymlinks {
				counters.files.Add(1)
				entryChan <- nodeEntry{path: path}
				return nil
			}

			info, statErr := os.Stat(path)
			if statErr != nil {
				counters.files.Add(1)
				entryChan <- fail(path, false, statErr)
				return nil
			}
			if !info.IsDir() {
				counters.files.Add(1)
				entryChan <- nodeEntry{path: path, size: sizeOf(w.cfg.SizeMode, path, info, true)}
				return nil
			}
			return w.enterDir(path, absRoot, rootDev, hasDev, &counters, entryChan)
		}

		if d.IsDir() {
			return w.enterDir(path, absRoot, rootDev, hasDev, &counters, entryChan)
		}

		counters.files.Add(1)
		info, infoErr := d.Info()
		if infoErr != nil {
			entryChan <- fail(path, false, infoErr)
			return nil
		}
		entryChan <- nodeEntry{path: path, size: sizeOf(w.cfg.SizeMode, path, info, false)}
		return nil
	})

	// Close channel and wait for collector to finish
	close(entryChan)
	entriesWg.Wait()

	if walkErr != nil {
		// fastwalk only returns errors our callback produced or a root failure
		entries = append(entries, fail(absRoot, true, walkErr))
		entries[len(entries)-1].errOnly = true
	}

	rootNode := buildTree(absRoot, entries)

	return model.ScanResult{
		Root: rootNode,
		Stats: model.ScanStats{
			Files:  counters.files.Load(),
			Dirs:   counters.dirs.Load(),
			Errors: counters.errors.Load(),
		},
		Elapsed: time.Since(start),
	}
}

// enterDir records a directory entry and decides whether fastwalk descends into it
func (w *Walker) enterDir(path, root string, rootDev uint64, hasDev bool, counters *walkCounters, entryChan chan<- nodeEntry) error {
	counters.dirs.Add(1)
	entryChan <- nodeEntry{path: path, isDir: true}

	if w.cfg.cutoff(depthOf(path, root)) {
		return fs.SkipDir
	}
	if w.cfg.OneFileSystem && hasDev {
		if dev, ok := deviceID(path); ok && dev != rootDev {
			logging.Scanner.Debug("skipping mount point", "path", path)
			return fs.SkipDir
		}
	}
	return nil
}

// walkableRoot reports whether root is a directory the walker will list
func (w *Walker) walkableRoot(root string) bool {
	info, err := os.Lstat(root)
	if err != nil {
		return false
	}
	if info.Mode()&fs.ModeSymlink != 0 {
		if !w.cfg.FollowSymlinks {
			return false
		}
		info, err = os.Stat(root)
		if err != nil {
			return false
		}
	}
	return info.IsDir()
}

// depthOf returns the depth of a path relative to the root
func depthOf(path, root string) int {
	rel := strings.TrimPrefix(path, root)
	rel = strings.TrimPrefix(rel, string(filepath.Separator))
	if rel == "" {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}

// buildTree constructs the tree structure from flat entries and aggregates sizes.
// Children are ordered by name so the result matches a sequential scan.
func buildTree(rootPath string, entries []nodeEntry) *model.Node {
	nodes := make(map[string]*model.Node, len(entries)+1)

	rootNode := model.NewNode(rootPath, true)
	nodes[rootPath] = rootNode

	// First pass: create nodes, merging late failures into existing ones
	var failures []nodeEntry
	order := make([]string, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		if e.errOnly {
			failures = append(failures, *e)
			continue
		}
		if _, exists := nodes[e.path]; exists {
			continue
		}
		node := model.NewNode(e.path, e.isDir)
		node.Size = e.size
		node.Err = e.err
		nodes[e.path] = node
		order = append(order, e.path)
	}

	for _, f := range failures {
		if node, exists := nodes[f.path]; exists {
			node.Err = f.err
			if !node.IsDir {
				node.Size = 0
			}
			continue
		}
		node := model.NewNode(f.path, f.isDir)
		node.Err = f.err
		nodes[f.path] = node
		order = append(order, f.path)
	}

	// Second pass: link parent/child relationships
	for _, path := range order {
		parentPath := filepath.Dir(path)
		if parent, exists := nodes[parentPath]; exists && parent.IsDir {
			parent.Children = append(parent.Children, nodes[path])
		}
	}

	model.Walk(rootNode, func(n *model.Node) bool {
		sort.Slice(n.Children, func(i, j int) bool {
			return n.Children[i].Name < n.Children[j].Name
		})
		return true
	})

	rootNode.ComputeSizes()
	return rootNode
}

// Ensure Walker implements Scanner
var _ Scanner = (*Walker)(nil)
