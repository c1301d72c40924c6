package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/mezdisk/internal/filetype"
	"github.com/lumipallolabs/mezdisk/internal/model"
)

const treeSizeBarWidth = 4 // Width of size proportion bar [████]

// Tree guides
const (
	guideBranch = "├── "
	guideLast   = "└── "
	guidePipe   = "│   "
	guideSpace  = "    "
)

// TreeRenderer draws a size-sorted directory tree
type TreeRenderer struct {
	Classifier filetype.Classifier
}

// RenderTree draws root and its children down to depth levels, largest first.
// Percentages are relative to total.
func RenderTree(root *model.Node, total int64, depth int) string {
	return TreeRenderer{}.Render(root, total, depth)
}

// Render draws root like RenderTree, coloring files with the renderer's classifier
func (r TreeRenderer) Render(root *model.Node, total int64, depth int) string {
	if root == nil {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(noData)
	}

	lines := []string{r.label(root, total, 0)}
	r.children(&lines, root, total, "", 0, depth)
	return strings.Join(lines, "\n")
}

func (r TreeRenderer) children(lines *[]string, n *model.Node, total int64, indent string, depth, maxDepth int) {
	if depth >= maxDepth || len(n.Children) == 0 {
		return
	}

	children := model.SortedChildren(n)
	for i, child := range children {
		last := i == len(children)-1
		guide, next := guideBranch, guidePipe
		if last {
			guide, next = guideLast, guideSpace
		}

		*lines = append(*lines, TreeGuide.Render(indent+guide)+r.label(child, total, n.Size))
		if child.IsDir {
			r.children(lines, child, total, indent+next, depth+1, maxDepth)
		}
	}
}

// label renders one node: name, size bar for directories, size, percent and error
func (r TreeRenderer) label(n *model.Node, total, parentSize int64) string {
	name := lipgloss.NewStyle().Foreground(r.color(n)).Render(n.Name)

	var b strings.Builder
	b.WriteString(name)
	b.WriteByte(' ')
	if n.IsDir && parentSize > 0 {
		b.WriteString(TreeSizeBar.Render(sizeBar(n.Size, parentSize)))
		b.WriteByte(' ')
	}

	size := FormatSize(n.Size)
	if total > 0 {
		size += fmt.Sprintf("  (%4.1f%%)", percent(n.Size, total))
	}
	b.WriteString(TreeSize.Render(size))

	if n.HasError() {
		b.WriteString(ErrorStyle.Render("  ! " + n.Err))
	}
	return b.String()
}

func (r TreeRenderer) color(n *model.Node) lipgloss.Color {
	switch {
	case n.HasError():
		return ColorError
	case n.IsDir:
		return ColorDir
	default:
		return lipgloss.Color(r.Classifier.Classify(n.Path).Color)
	}
}

// sizeBar shows size as a fraction of parent
func sizeBar(size, parent int64) string {
	pct := float64(size) / float64(parent)
	filledFloat := pct * float64(treeSizeBarWidth)
	filled := int(filledFloat)

	var bar strings.Builder
	for j := 0; j < treeSizeBarWidth; j++ {
		switch {
		case j < filled:
			bar.WriteRune('█')
		case j == filled && filledFloat-float64(filled) >= 0.5:
			bar.WriteRune('▓')
		default:
			bar.WriteRune('░')
		}
	}
	return "[" + bar.String() + "]"
}
