// Package treemap implements a squarified treemap layout engine.
//
// The engine converts a list of weighted items plus a bounding rectangle
// into non-overlapping, axis-aligned rectangles whose areas are proportional
// to the item weights. It uses the squarify heuristic (Bruls, Huizing,
// van Wijk) to keep rectangles close to square, which makes the resulting
// mosaic far more legible than naive proportional slicing.
//
// # Usage
//
//	items := []treemap.Item[string]{
//	    {ID: "a", Size: 60, Meta: "sixty"},
//	    {ID: "b", Size: 30, Meta: "thirty"},
//	    {ID: "c", Size: 10, Meta: "ten"},
//	}
//	rects := treemap.Layout(items, 300, 200, treemap.DefaultPadding)
//	for _, r := range rects {
//	    fmt.Printf("%s: %.0fx%.0f at (%.0f,%.0f)\n", r.ID, r.Width, r.Height, r.X, r.Y)
//	}
//
// # Guarantees
//
// For valid positive-weight inputs the engine guarantees:
//   - Area conservation: pre-padding areas sum to width*height.
//   - Non-overlap: no two rectangles share positive area when padding > 0.
//   - Containment: every rectangle lies within the bounding rectangle.
//   - Determinism: identical inputs produce identical outputs.
//
// Degenerate inputs (empty list, zero total weight, non-positive bounds)
// yield an empty result rather than an error, so a render pipeline can
// always treat the output as safe to draw.
//
// Layout is a pure function with no shared state; it is safe to call
// concurrently from independent goroutines.
package treemap
