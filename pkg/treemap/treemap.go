package treemap

import (
	"cmp"
	"slices"
)

// DefaultPadding is the gutter, in layout units, subtracted from each
// emitted rectangle so neighbouring tiles visually separate.
const DefaultPadding = 3.0

// Item is a weighted layout input. Size must be positive; items with
// non-positive sizes are filtered out before layout. Meta is opaque
// caller data carried through to the output unchanged.
type Item[T any] struct {
	ID   string
	Size float64
	Meta T
}

// Rect is a placed rectangle. Coordinates are in the same space as the
// bounding rectangle passed to [Layout]: origin top-left, y growing
// downward. Padding has already been subtracted symmetrically, so Width
// and Height are the drawable extents (floored at zero).
type Rect[T any] struct {
	ID   string
	Meta T

	X, Y          float64
	Width, Height float64
}

// Layout computes a squarified treemap for items inside a width x height
// rectangle anchored at the origin.
//
// Items are normalized so their areas are proportional to their sizes and
// processed largest-first; the greedy row growth then converges to near
// square aspect ratios. The returned order follows that internal sorting,
// not the input order.
//
// Degenerate inputs return an empty (nil) slice: an empty item list, a
// zero or negative total weight, and non-positive width or height. The
// caller's slice is never mutated.
func Layout[T any](items []Item[T], width, height, padding float64) []Rect[T] {
	if len(items) == 0 || width <= 0 || height <= 0 {
		return nil
	}
	if padding < 0 {
		padding = 0
	}

	var total float64
	for _, it := range items {
		if it.Size > 0 {
			total += it.Size
		}
	}
	if total <= 0 {
		return nil
	}

	// Normalize weights to absolute areas within the frame.
	scale := width * height / total
	weighted := make([]weightedItem[T], 0, len(items))
	for _, it := range items {
		if it.Size <= 0 {
			continue
		}
		weighted = append(weighted, weightedItem[T]{item: it, area: it.Size * scale})
	}

	// Largest-first ordering is what makes the squarify heuristic work;
	// the stable sort keeps equal-weight items in input order so layout
	// stays deterministic.
	slices.SortStableFunc(weighted, func(a, b weightedItem[T]) int {
		return cmp.Compare(b.area, a.area)
	})

	return squarify(weighted, 0, 0, width, height, padding, make([]Rect[T], 0, len(weighted)))
}

type weightedItem[T any] struct {
	item Item[T]
	area float64
}

// squarify recursively partitions the [x,y,w,h] rectangle. Each call
// consumes at least one item, so recursion depth is bounded by len(items).
func squarify[T any](items []weightedItem[T], x, y, w, h, padding float64, out []Rect[T]) []Rect[T] {
	if len(items) == 0 {
		return out
	}
	if len(items) == 1 {
		return append(out, emit(items[0], x, y, w, h, padding))
	}

	// Wide frames are cut into rows stacked top-to-bottom spanning the
	// full width; tall frames into columns side-by-side. side is the
	// span of the row/column, fixed for this cut.
	horizontal := w >= h
	side := w
	if !horizontal {
		side = h
	}

	// Grow the row greedily while the worst aspect ratio keeps improving
	// (or at least does not get strictly worse).
	rowArea := items[0].area
	worst := worstRatio(items[:1], rowArea, side)
	n := 1
	for n < len(items) {
		nextArea := rowArea + items[n].area
		next := worstRatio(items[:n+1], nextArea, side)
		if next > worst {
			break
		}
		worst, rowArea = next, nextArea
		n++
	}

	// rowLength is the row's thickness along the split axis. Each item
	// occupies its proportional share of the span.
	rowLength := rowArea / side
	offset := 0.0
	for _, it := range items[:n] {
		extent := it.area / rowLength
		if horizontal {
			out = append(out, emit(it, x+offset, y, extent, rowLength, padding))
		} else {
			out = append(out, emit(it, x, y+offset, rowLength, extent, padding))
		}
		offset += extent
	}

	if horizontal {
		return squarify(items[n:], x, y+rowLength, w, h-rowLength, padding, out)
	}
	return squarify(items[n:], x+rowLength, y, w-rowLength, h, padding, out)
}

// worstRatio is the squarify badness metric for a candidate row: the
// maximum of long/short side ratios over its items. 1.0 is a perfect
// square; lower is better.
func worstRatio[T any](row []weightedItem[T], area, side float64) float64 {
	rowLength := area / side
	worst := 0.0
	for _, it := range row {
		itemSide := it.area / rowLength
		r := rowLength / itemSide
		if r < 1 {
			r = 1 / r
		}
		if r > worst {
			worst = r
		}
	}
	return worst
}

// emit applies the symmetric padding inset and clamps dimensions at zero
// so a padding larger than the slot never produces negative extents.
func emit[T any](it weightedItem[T], x, y, w, h, padding float64) Rect[T] {
	return Rect[T]{
		ID:     it.item.ID,
		Meta:   it.item.Meta,
		X:      x + padding/2,
		Y:      y + padding/2,
		Width:  max(w-padding, 0),
		Height: max(h-padding, 0),
	}
}
