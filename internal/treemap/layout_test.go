package treemap

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/jeffwilliams/squarify"
)

// sizer adapts a weight list to squarify.TreeSizer
type sizer struct {
	size     float64
	children []*sizer
}

func (s *sizer) Size() float64 {
	return s.size
}

func (s *sizer) NumChildren() int {
	return len(s.children)
}

func (s *sizer) Child(i int) squarify.TreeSizer {
	return s.children[i]
}

func randomWeights(r *rand.Rand, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Floor(r.ExpFloat64()*1000) + 1
	}
	return out
}

func checkPartition(t *testing.T, rects []Rect, width, height int) {
	t.Helper()

	area := 0
	for i, r := range rects {
		if r.X < 0 || r.Y < 0 || r.W < 0 || r.H < 0 {
			t.Errorf("rect %d has negative component: %+v", i, r)
		}
		if r.X+r.W > width || r.Y+r.H > height {
			t.Errorf("rect %d outside %dx%d grid: %+v", i, width, height, r)
		}
		if r.X >= width || r.Y >= height {
			t.Errorf("rect %d origin outside %dx%d grid: %+v", i, width, height, r)
		}
		area += r.Area()
	}
	if area > width*height {
		t.Errorf("area sum %d exceeds grid %d", area, width*height)
	}

	for i := 0; i < len(rects); i++ {
		for j := i + 1; j < len(rects); j++ {
			a, b := rects[i], rects[j]
			if a.Empty() || b.Empty() {
				continue
			}
			if a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H {
				t.Errorf("rects %d %+v and %d %+v overlap", i, a, j, b)
			}
		}
	}
}

func TestLayoutDegenerate(t *testing.T) {
	tests := []struct {
		name          string
		weights       []float64
		width, height int
	}{
		{"zero width", []float64{1, 2}, 0, 10},
		{"negative height", []float64{1, 2}, 10, -1},
		{"empty input", nil, 10, 10},
		{"all zero", []float64{0, 0}, 10, 10},
		{"all negative", []float64{-1, -5}, 10, 10},
		{"not numbers", []float64{math.NaN(), math.Inf(1)}, 10, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Layout(tt.weights, tt.width, tt.height); len(got) != 0 {
				t.Errorf("expected empty layout, got %v", got)
			}
		})
	}
}

func TestLayoutSingleWeightFillsGrid(t *testing.T) {
	rects := Layout([]float64{5}, 10, 3)
	if len(rects) != 1 {
		t.Fatalf("expected 1 rect, got %d", len(rects))
	}
	if rects[0] != (Rect{X: 0, Y: 0, W: 10, H: 3}) {
		t.Errorf("expected full grid, got %+v", rects[0])
	}
}

func TestLayoutTwoEqualWeights(t *testing.T) {
	rects := Layout([]float64{1, 1}, 4, 2)

	want := []Rect{{X: 0, Y: 0, W: 4, H: 1}, {X: 0, Y: 1, W: 4, H: 1}}
	if len(rects) != len(want) {
		t.Fatalf("expected %d rects, got %v", len(want), rects)
	}
	for i := range want {
		if rects[i] != want[i] {
			t.Errorf("rect %d: expected %+v, got %+v", i, want[i], rects[i])
		}
	}
}

func TestLayoutRowGrowsWhileRatioImproves(t *testing.T) {
	// The second value improves the ratio, so the first two share a 2x2 row
	rects := Layout([]float64{1, 1, 1, 1}, 4, 4)
	if len(rects) != 4 {
		t.Fatalf("expected 4 rects, got %d", len(rects))
	}
	checkPartition(t, rects, 4, 4)

	area := 0
	for _, r := range rects {
		area += r.Area()
	}
	if area != 16 {
		t.Errorf("expected the grid to be filled exactly, got %d cells", area)
	}
}

func TestLayoutFiltersNonPositive(t *testing.T) {
	rects := Layout([]float64{0, -3, 2, math.NaN(), 6}, 8, 4)
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
	if rects[0].Area() >= rects[1].Area() {
		t.Errorf("expected second rect larger: %+v vs %+v", rects[0], rects[1])
	}
	checkPartition(t, rects, 8, 4)
}

func TestLayoutProperties(t *testing.T) {
	r := rand.New(rand.NewSource(1))

	for trial := 0; trial < 200; trial++ {
		n := 1 + r.Intn(40)
		width := 1 + r.Intn(120)
		height := 1 + r.Intn(40)
		weights := randomWeights(r, n)

		t.Run(fmt.Sprintf("%d_%dx%d_n%d", trial, width, height, n), func(t *testing.T) {
			rects := Layout(weights, width, height)
			if len(rects) != n {
				t.Fatalf("expected %d rects, got %d", n, len(rects))
			}
			checkPartition(t, rects, width, height)
		})
	}
}

func TestLayoutTinyGridManyWeights(t *testing.T) {
	weights := make([]float64, 30)
	for i := range weights {
		weights[i] = float64(i + 1)
	}

	rects := Layout(weights, 3, 2)
	if len(rects) != len(weights) {
		t.Fatalf("expected %d rects, got %d", len(weights), len(rects))
	}
	checkPartition(t, rects, 3, 2)
}

func TestLayoutPinsEmptyRectsInsideGrid(t *testing.T) {
	tests := []struct {
		name          string
		weights       []float64
		width, height int
	}{
		{"single cell", []float64{5, 1, 1}, 1, 1},
		{"wide strip", []float64{100, 1, 1}, 4, 1},
		{"tall strip", []float64{100, 1, 1}, 1, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rects := Layout(tt.weights, tt.width, tt.height)
			if len(rects) != len(tt.weights) {
				t.Fatalf("expected %d rects, got %d", len(tt.weights), len(rects))
			}
			empty := 0
			for _, r := range rects {
				if r.Empty() {
					empty++
				}
			}
			if empty == 0 {
				t.Errorf("expected small weights to collapse, got %v", rects)
			}
			checkPartition(t, rects, tt.width, tt.height)
		})
	}
}

func TestLayoutIdempotent(t *testing.T) {
	weights := []float64{500, 120, 80, 80, 33, 7, 1}

	first := Layout(weights, 80, 18)
	second := Layout(weights, 80, 18)

	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("rect %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLayoutPreservesInputOrder(t *testing.T) {
	// Small value first: it must still get the first rect
	rects := Layout([]float64{1, 99}, 50, 10)
	if len(rects) != 2 {
		t.Fatalf("expected 2 rects, got %d", len(rects))
	}
	if rects[0].Area() >= rects[1].Area() {
		t.Errorf("expected first rect to be the small one: %+v vs %+v", rects[0], rects[1])
	}
}

func TestLayoutMatchesSquarifyBlockCount(t *testing.T) {
	weights := []float64{100, 100, 100, 60, 30, 10}

	root := &sizer{}
	for _, w := range weights {
		root.children = append(root.children, &sizer{size: w})
		root.size += w
	}

	blocks, metas := squarify.Squarify(root, squarify.Rect{X: 0, Y: 0, W: 76, H: 22}, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})

	depth0 := 0
	var refArea float64
	for i := range blocks {
		if i < len(metas) && metas[i].Depth == 0 {
			depth0++
			refArea += blocks[i].W * blocks[i].H
		}
	}

	rects := Layout(weights, 76, 22)
	if len(rects) != depth0 {
		t.Errorf("expected %d rects like squarify, got %d", depth0, len(rects))
	}

	area := 0
	for _, r := range rects {
		area += r.Area()
	}
	t.Logf("squarify area %.1f, grid area %d", refArea, area)
	if area > 76*22 {
		t.Errorf("grid area %d exceeds the grid", area)
	}
}

func TestWorstRatio(t *testing.T) {
	if !math.IsInf(worstRatio(nil, 3), 1) {
		t.Error("empty row must be +Inf")
	}
	if !math.IsInf(worstRatio([]float64{1, 0}, 3), 1) {
		t.Error("row with a zero must be +Inf")
	}
	// a single square cell of area 4 against side 2 is a perfect square
	if got := worstRatio([]float64{4}, 2); got != 1 {
		t.Errorf("expected ratio 1, got %f", got)
	}
}

func TestRoundHalfToEven(t *testing.T) {
	if round(2.5) != 2 || round(3.5) != 4 || round(2.4) != 2 {
		t.Errorf("unexpected rounding: %d %d %d", round(2.5), round(3.5), round(2.4))
	}
}
