package treemap

import (
	"path/filepath"

	"github.com/lumipallolabs/mezdisk/internal/model"
	"github.com/lumipallolabs/mezdisk/internal/topk"
)

// OtherLabel names the item aggregating everything outside the selection
const OtherLabel = "Other"

// Item is a weighted entry to lay out. Label and Color pass through untouched.
type Item struct {
	Label string
	Value float64
	Color string
}

// Placed pairs an item with its rectangle
type Placed struct {
	Item Item
	Rect Rect
}

// ColorFunc returns the color tag for a selected leaf
type ColorFunc func(*model.Node) string

// LayoutItems lays out items and pairs every item that got a rectangle with it
func LayoutItems(items []Item, width, height int) []Placed {
	weights := make([]float64, len(items))
	for i, it := range items {
		weights[i] = it.Value
	}

	rects := Layout(weights, width, height)
	if len(rects) == 0 {
		return nil
	}

	placed := make([]Placed, 0, len(rects))
	next := 0
	for _, it := range items {
		if !usable(it.Value) {
			continue
		}
		if next >= len(rects) {
			break
		}
		placed = append(placed, Placed{Item: it, Rect: rects[next]})
		next++
	}
	return placed
}

// BuildItems returns the maxItems largest leaf files under subtree as items,
// followed by an "Other" item for the remaining size when there is any
func BuildItems(subtree *model.Node, maxItems int, color ColorFunc, otherColor string) []Item {
	if subtree == nil {
		return nil
	}

	selected, otherSize := topk.SelectLargest(subtree, maxItems)

	items := make([]Item, 0, len(selected)+1)
	for _, n := range selected {
		c := ""
		if color != nil {
			c = color(n)
		}
		items = append(items, Item{
			Label: labelFor(subtree, n),
			Value: float64(n.Size),
			Color: c,
		})
	}

	if otherSize > 0 {
		items = append(items, Item{Label: OtherLabel, Value: float64(otherSize), Color: otherColor})
	}
	return items
}

// labelFor returns the path of n relative to subtree in slash form
func labelFor(subtree, n *model.Node) string {
	if !subtree.IsDir {
		return n.Name
	}
	rel, err := filepath.Rel(subtree.Path, n.Path)
	if err != nil {
		return n.Path
	}
	return filepath.ToSlash(rel)
}
