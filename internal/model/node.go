package model

import (
	"path/filepath"
	"time"
)

// Node represents a file or directory in the scanned tree
type Node struct {
	Path     string
	Name     string
	Size     int64 // stat size for files, sum of children for dirs
	IsDir    bool
	Children []*Node

	// Err describes why the node is degraded; empty when the node is healthy
	Err string
}

// NewNode creates a node for path, deriving its display name
func NewNode(path string, isDir bool) *Node {
	return &Node{Path: path, Name: baseName(path), IsDir: isDir}
}

func baseName(path string) string {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return path
	}
	return name
}

// TotalSize returns the aggregated size of the node
func (n *Node) TotalSize() int64 {
	return n.Size
}

// IsLeaf reports whether the node is a leaf file
func (n *Node) IsLeaf() bool {
	return !n.IsDir
}

// HasError reports whether the node is degraded
func (n *Node) HasError() bool {
	return n.Err != ""
}

// ComputeSizes recalculates directory sizes bottom-up and returns the root total.
// Uses an explicit post-order stack so deep trees don't exhaust the goroutine stack.
func (n *Node) ComputeSizes() int64 {
	type frame struct {
		node *Node
		next int
	}

	stack := []frame{{node: n}}
	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if !top.node.IsDir {
			stack = stack[:len(stack)-1]
			continue
		}
		if top.next < len(top.node.Children) {
			child := top.node.Children[top.next]
			top.next++
			if child.IsDir {
				stack = append(stack, frame{node: child})
			}
			continue
		}

		var total int64
		for _, child := range top.node.Children {
			total += child.Size
		}
		top.node.Size = total
		stack = stack[:len(stack)-1]
	}
	return n.Size
}

// ScanStats holds the counters of a single scan
type ScanStats struct {
	Files  int64
	Dirs   int64
	Errors int64
}

// ScanResult is the complete output of a scan
type ScanResult struct {
	Root    *Node
	Stats   ScanStats
	Elapsed time.Duration
}

// ElapsedSeconds returns the scan duration in seconds
func (r ScanResult) ElapsedSeconds() float64 {
	return r.Elapsed.Seconds()
}
