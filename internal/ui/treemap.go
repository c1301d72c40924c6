package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lumipallolabs/mezdisk/internal/treemap"
)

// Labels are only drawn on rectangles at least this large
const (
	minLabelWidth  = 6
	minLabelHeight = 2
)

const noData = "(no data)"

// cell is one character of the treemap grid
type cell struct {
	owner int // index into the placed items, -1 when uncovered
	label rune
}

// RenderTreemap draws items as a width x height grid of colored rectangles
func RenderTreemap(items []treemap.Item, width, height int) string {
	if len(items) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render(noData)
	}
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	grid := make([][]cell, height)
	for y := range grid {
		grid[y] = make([]cell, width)
		for x := range grid[y] {
			grid[y][x].owner = -1
		}
	}

	placed := treemap.LayoutItems(items, width, height)

	// Fill blocks
	for i, p := range placed {
		r := p.Rect
		for y := r.Y; y < r.Y+r.H && y < height; y++ {
			for x := r.X; x < r.X+r.W && x < width; x++ {
				grid[y][x].owner = i
			}
		}
	}

	// Labels go on the top row, one cell in from the left edge
	for _, p := range placed {
		r := p.Rect
		if r.W < minLabelWidth || r.H < minLabelHeight {
			continue
		}
		label := []rune(p.Item.Label)
		if len(label) > r.W-1 {
			label = label[:r.W-1]
		}
		for i, ch := range label {
			x := r.X + 1 + i
			if x >= width {
				break
			}
			grid[r.Y][x].label = ch
		}
	}

	styles := make([]lipgloss.Style, len(placed))
	for i, p := range placed {
		styles[i] = lipgloss.NewStyle().Background(lipgloss.Color(p.Item.Color))
	}

	lines := make([]string, height)
	for y, row := range grid {
		lines[y] = renderRow(row, styles)
	}
	return strings.Join(lines, "\n")
}

// renderRow renders runs of cells sharing an owner and label state together
func renderRow(row []cell, styles []lipgloss.Style) string {
	var line strings.Builder
	for start := 0; start < len(row); {
		owner := row[start].owner
		labeled := row[start].label != 0

		end := start
		var run strings.Builder
		for end < len(row) && row[end].owner == owner && (row[end].label != 0) == labeled {
			if labeled {
				run.WriteRune(row[end].label)
			} else {
				run.WriteByte(' ')
			}
			end++
		}

		text := run.String()
		switch {
		case owner < 0:
			line.WriteString(text)
		case labeled:
			line.WriteString(TreemapLabel.Inherit(styles[owner]).Render(text))
		default:
			line.WriteString(styles[owner].Render(text))
		}
		start = end
	}
	return line.String()
}
