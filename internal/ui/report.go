package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/mezdisk/internal/filetype"
	"github.com/lumipallolabs/mezdisk/internal/model"
	"github.com/lumipallolabs/mezdisk/internal/treemap"
)

// panelChrome is the horizontal space taken by a panel's border and padding
const panelChrome = 4

// ReportOptions controls the layout of a report
type ReportOptions struct {
	Width         int
	TreeDepth     int
	TreemapHeight int
	TreemapItems  int
	LargestItems  int
	Classifier    filetype.Classifier
}

// DefaultReportOptions returns the layout used when nothing is configured
func DefaultReportOptions() ReportOptions {
	return ReportOptions{
		Width:         120,
		TreeDepth:     4,
		TreemapHeight: 18,
		TreemapItems:  25,
		LargestItems:  12,
	}
}

// RenderReport renders the header, the tree and treemap panels side by side,
// and the largest files table below them
func RenderReport(path string, result model.ScanResult, opts ReportOptions) string {
	width := max(opts.Width, 40)

	header := NewHeader(path, result)
	header.SetWidth(width)

	// One third for the tree, the rest for the treemap
	treeW := width / 3
	mapW := width - treeW
	bodyH := max(opts.TreemapHeight, 1)

	total := int64(0)
	if result.Root != nil {
		total = result.Root.Size
	}

	tree := TreeRenderer{Classifier: opts.Classifier}.Render(result.Root, total, opts.TreeDepth)
	treePanel := panel("Tree", clip(tree, bodyH, treeW-panelChrome), treeW)

	items := treemap.BuildItems(result.Root, opts.TreemapItems, leafColor(opts.Classifier), filetype.ColorOther)
	mapPanel := panel("Treemap", RenderTreemap(items, mapW-panelChrome, bodyH), mapW)

	body := lipgloss.JoinHorizontal(lipgloss.Top, treePanel, mapPanel)
	footer := panel("Largest", RenderLargest(result.Root, opts.LargestItems), width)

	return lipgloss.JoinVertical(lipgloss.Left, header.View(), body, footer)
}

// leafColor colors treemap files by type, and failed files as errors
func leafColor(c filetype.Classifier) treemap.ColorFunc {
	return func(n *model.Node) string {
		if n.HasError() {
			return filetype.ColorError
		}
		return c.Classify(n.Path).Color
	}
}

// panel wraps content in a titled border of the given outer width
func panel(title, content string, width int) string {
	inner := PanelTitle.Render(title) + "\n" + content
	return PanelStyle.Width(max(width-2, 1)).Render(inner)
}

// clip limits s to height lines, each at most width cells wide
func clip(s string, height, width int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > height {
		more := len(lines) - height + 1
		lines = append(lines[:height-1], TreeSize.Render("… "+pluralize(more, "more entry", "more entries")))
	}
	if width < 1 {
		return strings.Join(lines, "\n")
	}
	truncate := lipgloss.NewStyle().MaxWidth(width)
	for i, line := range lines {
		lines[i] = truncate.Render(line)
	}
	return strings.Join(lines, "\n")
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
