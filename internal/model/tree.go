package model

import "sort"

// SortBySize sorts nodes by total size descending, then by name ascending
func SortBySize(nodes []*Node) {
	sort.SliceStable(nodes, func(i, j int) bool {
		si, sj := nodes[i].TotalSize(), nodes[j].TotalSize()
		if si != sj {
			return si > sj
		}
		return nodes[i].Name < nodes[j].Name
	})
}

// SortedChildren returns a size-sorted copy of the node's children
func SortedChildren(n *Node) []*Node {
	out := make([]*Node, len(n.Children))
	copy(out, n.Children)
	SortBySize(out)
	return out
}

// Walk visits every node under root (root included) in depth-first pre-order.
// Returning false from fn skips the node's children.
func Walk(root *Node, fn func(*Node) bool) {
	if root == nil {
		return
	}
	stack := []*Node{root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(n) {
			continue
		}
		// push in reverse so children pop in their stored order
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// CheckSizes returns the first directory whose size differs from the sum of
// its children, or nil when the whole tree is consistent
func CheckSizes(root *Node) *Node {
	var bad *Node
	Walk(root, func(n *Node) bool {
		if bad != nil {
			return false
		}
		if n.IsDir {
			var total int64
			for _, c := range n.Children {
				total += c.Size
			}
			if total != n.Size {
				bad = n
				return false
			}
		}
		return true
	})
	return bad
}
