package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/lumipallolabs/mezdisk/internal/model"
	"github.com/lumipallolabs/mezdisk/internal/topk"
	"github.com/lumipallolabs/mezdisk/internal/treemap"
)

// Largest table columns
const (
	colPath = iota
	colSize
	colPercent
)

// RenderLargest lists the k largest files under root with their share of root
func RenderLargest(root *model.Node, k int) string {
	if root == nil {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(noData)
	}

	selected, otherSize := topk.SelectLargest(root, k)
	if len(selected) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(noData)
	}

	rows := make([][]string, 0, len(selected)+1)
	for _, n := range selected {
		rows = append(rows, []string{
			relativePath(root, n),
			FormatSize(n.Size),
			fmt.Sprintf("%4.1f", percent(n.Size, root.Size)),
		})
	}
	otherRow := -1
	if otherSize > 0 {
		otherRow = len(rows)
		rows = append(rows, []string{
			treemap.OtherLabel,
			FormatSize(otherSize),
			fmt.Sprintf("%4.1f", percent(otherSize, root.Size)),
		})
	}

	cell := lipgloss.NewStyle()
	t := table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		BorderLeft(false).
		BorderRight(false).
		BorderHeader(false).
		Headers("Path", "Size", "%").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			style := cell
			switch {
			case row == table.HeaderRow:
				style = TableHeader
			case row == otherRow:
				style = TreeSize
			}
			if col != colPercent {
				style = style.PaddingRight(1)
			}
			if col == colSize || col == colPercent {
				style = style.Align(lipgloss.Right)
			}
			return style
		})

	return strings.TrimRight(t.Render(), "\n")
}

// relativePath returns n's path below root, or its name when root is the file
func relativePath(root, n *model.Node) string {
	if root == n || !root.IsDir {
		return n.Name
	}
	rel, err := filepath.Rel(root.Path, n.Path)
	if err != nil {
		return n.Path
	}
	return rel
}
