package ui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lumipallolabs/mezdisk/internal/model"
)

// fixture builds /data with a.txt (10) and sub/b.bin (25)
func fixture() *model.Node {
	root := model.NewNode(filepath.FromSlash("/data"), true)
	a := model.NewNode(filepath.FromSlash("/data/a.txt"), false)
	a.Size = 10
	sub := model.NewNode(filepath.FromSlash("/data/sub"), true)
	b := model.NewNode(filepath.FromSlash("/data/sub/b.bin"), false)
	b.Size = 25
	sub.Children = []*model.Node{b}
	root.Children = []*model.Node{a, sub}
	root.ComputeSizes()
	return root
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{35, "35 B"},
		{1500, "1.5 kB"},
		{2_000_000, "2.0 MB"},
		{-5, "0 B"},
	}
	for _, tt := range tests {
		if got := FormatSize(tt.in); got != tt.want {
			t.Errorf("FormatSize(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestRenderTreeSortsBySize(t *testing.T) {
	root := fixture()
	out := ansi.Strip(RenderTree(root, root.Size, 4))
	lines := strings.Split(out, "\n")

	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), out)
	}
	if !strings.HasPrefix(lines[0], "data 35 B  (100.0%)") {
		t.Errorf("unexpected root line %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], guideBranch+"sub ") {
		t.Errorf("expected sub first, got %q", lines[1])
	}
	if !strings.HasPrefix(lines[2], guidePipe+guideLast+"b.bin ") {
		t.Errorf("expected nested b.bin, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[3], guideLast+"a.txt 10 B") {
		t.Errorf("expected a.txt last, got %q", lines[3])
	}
	if !strings.Contains(lines[3], "(28.6%)") {
		t.Errorf("expected percentage of total, got %q", lines[3])
	}
}

func TestRenderTreeDepthLimit(t *testing.T) {
	root := fixture()

	if got := ansi.Strip(RenderTree(root, root.Size, 0)); strings.Contains(got, "\n") {
		t.Errorf("depth 0 should render only the root, got %q", got)
	}
	if got := ansi.Strip(RenderTree(root, root.Size, 1)); strings.Contains(got, "b.bin") {
		t.Errorf("depth 1 should not reach b.bin, got %q", got)
	}
}

func TestRenderTreeShowsErrors(t *testing.T) {
	root := fixture()
	root.Children[1].Err = "AccessDenied: permission denied"

	out := ansi.Strip(RenderTree(root, root.Size, 4))
	if !strings.Contains(out, "! AccessDenied: permission denied") {
		t.Errorf("expected error mark, got:\n%s", out)
	}
}

func TestSizeBar(t *testing.T) {
	tests := []struct {
		size, parent int64
		want         string
	}{
		{1, 1, "[████]"},
		{1, 2, "[██░░]"},
		{3, 8, "[█▓░░]"},
		{0, 5, "[░░░░]"},
	}
	for _, tt := range tests {
		if got := sizeBar(tt.size, tt.parent); got != tt.want {
			t.Errorf("sizeBar(%d, %d) = %q, want %q", tt.size, tt.parent, got, tt.want)
		}
	}
}

func TestRenderLargest(t *testing.T) {
	root := fixture()
	out := ansi.Strip(RenderLargest(root, 1))
	lines := strings.Split(out, "\n")

	if len(lines) != 3 {
		t.Fatalf("expected header, one row and Other, got:\n%s", out)
	}
	if !strings.HasPrefix(lines[0], "Path") {
		t.Errorf("expected header, got %q", lines[0])
	}
	fields := strings.Fields(lines[1])
	if fields[0] != filepath.Join("sub", "b.bin") || fields[1] != "25" || fields[3] != "71.4" {
		t.Errorf("unexpected row %q", lines[1])
	}
	fields = strings.Fields(lines[2])
	if fields[0] != "Other" || fields[1] != "10" || fields[3] != "28.6" {
		t.Errorf("unexpected Other row %q", lines[2])
	}

	// Size and percent are right-aligned columns, so every line ends at the same cell
	for i, suffix := range []string{"%", "71.4", "28.6"} {
		if lipgloss.Width(lines[i]) != lipgloss.Width(lines[0]) {
			t.Errorf("line %d is %d wide, header is %d", i, lipgloss.Width(lines[i]), lipgloss.Width(lines[0]))
		}
		if !strings.HasSuffix(lines[i], suffix) {
			t.Errorf("line %d does not end with %q: %q", i, suffix, lines[i])
		}
	}
}

func TestRenderLargestEmpty(t *testing.T) {
	root := model.NewNode(filepath.FromSlash("/empty"), true)
	if got := ansi.Strip(RenderLargest(root, 5)); got != noData {
		t.Errorf("expected %q, got %q", noData, got)
	}
}

func TestRenderReport(t *testing.T) {
	root := fixture()
	result := model.ScanResult{
		Root:    root,
		Stats:   model.ScanStats{Files: 2, Dirs: 2},
		Elapsed: 1500 * time.Millisecond,
	}

	opts := DefaultReportOptions()
	opts.Width = 90
	opts.TreemapHeight = 8

	out := RenderReport(root.Path, result, opts)
	plain := ansi.Strip(out)

	for _, want := range []string{
		"MezDisk",
		"Total: 35 B",
		"Dirs: 2",
		"Files: 2",
		"Errors: 0",
		"Time: 1.50s",
		"Tree",
		"Treemap",
		"Largest",
		"b.bin",
	} {
		if !strings.Contains(plain, want) {
			t.Errorf("report missing %q:\n%s", want, plain)
		}
	}

	if w := lipgloss.Width(out); w > opts.Width {
		t.Errorf("report is %d wide, limit %d", w, opts.Width)
	}
}

func TestClip(t *testing.T) {
	got := ansi.Strip(clip("a\nb\nc\nd", 3, 20))
	lines := strings.Split(got, "\n")
	if len(lines) != 3 || lines[2] != "… 2 more entries" {
		t.Errorf("unexpected clip result %q", got)
	}
	if got := clip("a\nb", 3, 10); ansi.Strip(got) != "a\nb" {
		t.Errorf("short input should pass through, got %q", got)
	}
}
