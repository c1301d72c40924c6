// Package topk selects the largest leaf files of a tree without sorting every leaf.
package topk

import (
	"container/heap"
	"sort"

	"github.com/lumipallolabs/mezdisk/internal/model"
)

// candidate is a leaf tagged with its visit sequence number
type candidate struct {
	node *model.Node
	seq  uint64
}

// less orders candidates from worst to best: smaller size first, and among
// equal sizes the later-visited one first
func (c candidate) less(o candidate) bool {
	if c.node.Size != o.node.Size {
		return c.node.Size < o.node.Size
	}
	return c.seq > o.seq
}

// minHeap keeps the current worst candidate at the top
type minHeap []candidate

func (h minHeap) Len() int           { return len(h) }
func (h minHeap) Less(i, j int) bool { return h[i].less(h[j]) }
func (h minHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *minHeap) Push(x any)        { *h = append(*h, x.(candidate)) }
func (h *minHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Keeper maintains the k largest leaves seen so far
type Keeper struct {
	k     int
	h     minHeap
	seq   uint64
	total int64
}

// NewKeeper creates a Keeper for the k largest leaves
func NewKeeper(k int) *Keeper {
	capacity := k
	if capacity < 0 {
		capacity = 0
	}
	return &Keeper{k: k, h: make(minHeap, 0, capacity)}
}

// Consider offers a leaf. It replaces the current minimum only when strictly larger.
func (k *Keeper) Consider(n *model.Node) {
	k.total += n.Size
	c := candidate{node: n, seq: k.seq}
	k.seq++

	if k.k <= 0 {
		return
	}
	if k.h.Len() < k.k {
		heap.Push(&k.h, c)
		return
	}
	if n.Size > k.h[0].node.Size {
		k.h[0] = c
		heap.Fix(&k.h, 0)
	}
}

// Total returns the summed size of every leaf considered
func (k *Keeper) Total() int64 {
	return k.total
}

// Largest returns the kept leaves by size descending, earlier visits first on ties
func (k *Keeper) Largest() []*model.Node {
	sorted := make([]candidate, len(k.h))
	copy(sorted, k.h)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[j].less(sorted[i])
	})

	out := make([]*model.Node, len(sorted))
	for i, c := range sorted {
		out[i] = c.node
	}
	return out
}

// SelectLargest returns the k largest leaf files under root and the size of
// everything else. The walk uses an explicit stack.
func SelectLargest(root *model.Node, k int) (selected []*model.Node, otherSize int64) {
	keeper := NewKeeper(k)

	if root != nil {
		stack := []*model.Node{root}
		for len(stack) > 0 {
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if n.IsLeaf() {
				keeper.Consider(n)
				continue
			}
			stack = append(stack, n.Children...)
		}
	}

	selected = keeper.Largest()
	var kept int64
	for _, n := range selected {
		kept += n.Size
	}
	otherSize = keeper.Total() - kept
	if otherSize < 0 {
		otherSize = 0
	}
	return selected, otherSize
}
