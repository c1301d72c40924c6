package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lumipallolabs/mezdisk/internal/treemap"
)

func TestRenderTreemapEmpty(t *testing.T) {
	if got := ansi.Strip(RenderTreemap(nil, 20, 5)); got != noData {
		t.Errorf("expected %q, got %q", noData, got)
	}
}

func TestRenderTreemapDimensions(t *testing.T) {
	items := []treemap.Item{
		{Label: "big", Value: 30, Color: "5"},
		{Label: "small", Value: 10, Color: "2"},
	}

	out := RenderTreemap(items, 20, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 20 {
			t.Errorf("line %d: expected width 20, got %d", i, w)
		}
	}

	// big gets a 19x4 block at the origin, its label one cell in
	if got := ansi.Strip(lines[0]); !strings.HasPrefix(got, " big ") {
		t.Errorf("expected label on the first row, got %q", got)
	}
	// small is a single row, too short for a label
	if strings.Contains(ansi.Strip(out), "small") {
		t.Errorf("label drawn on a block that is too short: %q", ansi.Strip(out))
	}
}

func TestRenderTreemapTruncatesLabels(t *testing.T) {
	items := []treemap.Item{{Label: "a-very-long-file-name.bin", Value: 1, Color: "4"}}

	out := ansi.Strip(RenderTreemap(items, 8, 3))
	first := strings.Split(out, "\n")[0]
	// Label starts one cell in and is cut to width-1 runes
	if first != " a-very-" {
		t.Errorf("expected truncated label, got %q", first)
	}
}

func TestRenderTreemapClampsTinySizes(t *testing.T) {
	items := []treemap.Item{{Label: "x", Value: 1}}
	out := RenderTreemap(items, 0, 0)
	if lipgloss.Width(out) != 1 || lipgloss.Height(out) != 1 {
		t.Errorf("expected a 1x1 grid, got %q", out)
	}
}
