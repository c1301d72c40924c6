// Package treemap lays out weighted items as a squarified treemap on an integer grid.
//
// The layout follows Bruls, Huizing and van Wijk: values are consumed in input
// order and grouped into rows while adding a value does not worsen the row's
// worst aspect ratio. Each closed row becomes a strip along the longer side of
// the remaining rectangle. Extents are rounded to whole cells, so areas are only
// approximately proportional to the weights.
package treemap

import "math"

// Rect is a rectangle on the layout grid
type Rect struct {
	X, Y, W, H int
}

// Area returns the number of cells covered
func (r Rect) Area() int {
	return r.W * r.H
}

// Empty reports whether the rectangle covers no cells
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Layout converts weights into rectangles inside a width x height grid.
// Non-positive and non-finite weights are dropped; the result holds one
// rect per remaining weight, in input order. Weights too small to get a
// cell once the grid is used up yield empty rects whose origin is pinned
// inside the grid, so X < width and Y < height hold for every rect.
func Layout(weights []float64, width, height int) []Rect {
	if width <= 0 || height <= 0 {
		return nil
	}

	values := normalize(weights, float64(width)*float64(height))
	if len(values) == 0 {
		return nil
	}

	l := &layouter{
		remaining: Rect{X: 0, Y: 0, W: width, H: height},
		width:     width,
		height:    height,
		out:       make([]Rect, 0, len(values)),
	}

	var row []float64
	for _, v := range values {
		if len(row) == 0 {
			row = append(row, v)
			continue
		}

		side := float64(l.shortSide())
		current := worstRatio(row, side)
		candidate := worstRatio(append(row, v), side)
		if candidate <= current {
			row = append(row, v)
			continue
		}

		l.closeRow(row)
		row = append(row[:0], v)
	}
	if len(row) > 0 {
		l.closeRow(row)
	}

	return l.out
}

// usable reports whether a weight takes part in the layout
func usable(w float64) bool {
	return w > 0 && !math.IsInf(w, 1)
}

// normalize scales the usable weights so they sum to area
func normalize(weights []float64, area float64) []float64 {
	var total float64
	for _, w := range weights {
		if usable(w) {
			total += w
		}
	}
	if total <= 0 || math.IsInf(total, 1) {
		return nil
	}

	out := make([]float64, 0, len(weights))
	for _, w := range weights {
		if !usable(w) {
			continue
		}
		if v := w * area / total; v > 0 {
			out = append(out, v)
		}
	}
	return out
}

// worstRatio returns the worst aspect ratio of row laid against side
func worstRatio(row []float64, side float64) float64 {
	if len(row) == 0 || side <= 0 {
		return math.Inf(1)
	}

	sum, max, min := 0.0, row[0], row[0]
	for _, v := range row {
		sum += v
		if v > max {
			max = v
		}
		if v < min {
			min = v
		}
	}
	if min <= 0 {
		return math.Inf(1)
	}

	side2 := side * side
	sum2 := sum * sum
	return math.Max(side2*max/sum2, sum2/(side2*min))
}

// round rounds half to even
func round(v float64) int {
	return int(math.RoundToEven(v))
}

type layouter struct {
	remaining     Rect
	width, height int
	out           []Rect
}

// emit appends r, pinning the origin of an empty rect to the last grid cell
func (l *layouter) emit(r Rect) {
	if r.Empty() {
		r = Rect{X: min(r.X, l.width-1), Y: min(r.Y, l.height-1)}
	}
	l.out = append(l.out, r)
}

func (l *layouter) shortSide() int {
	if l.remaining.W < l.remaining.H {
		return l.remaining.W
	}
	return l.remaining.H
}

// closeRow lays row out as a strip along the longer side of the remaining
// rectangle and shrinks it by the strip's thickness. Rounding drift moves the
// cursor; extents are clipped to the remaining rectangle.
func (l *layouter) closeRow(row []float64) {
	r := l.remaining

	if r.Empty() {
		// Collapsed: keep one empty rect per value at the collapsed edge
		for range row {
			l.emit(Rect{X: r.X, Y: r.Y})
		}
		return
	}

	var sum float64
	for _, v := range row {
		sum += v
	}

	if r.W >= r.H {
		h := clamp(max(1, round(sum/float64(r.W))), r.H)
		x, right := r.X, r.X+r.W
		for _, v := range row {
			w := max(1, round(v/float64(h)))
			cx := min(x, right)
			l.emit(Rect{X: cx, Y: r.Y, W: clamp(w, right-cx), H: h})
			x += w
		}
		l.remaining = Rect{X: r.X, Y: r.Y + h, W: r.W, H: r.H - h}
		return
	}

	w := clamp(max(1, round(sum/float64(r.H))), r.W)
	y, bottom := r.Y, r.Y+r.H
	for _, v := range row {
		h := max(1, round(v/float64(w)))
		cy := min(y, bottom)
		l.emit(Rect{X: r.X, Y: cy, W: w, H: clamp(h, bottom-cy)})
		y += h
	}
	l.remaining = Rect{X: r.X + w, Y: r.Y, W: r.W - w, H: r.H}
}

// clamp limits v to [0, limit]
func clamp(v, limit int) int {
	if v > limit {
		v = limit
	}
	if v < 0 {
		v = 0
	}
	return v
}
