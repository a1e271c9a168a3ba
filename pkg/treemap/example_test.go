package treemap_test

import (
	"fmt"

	"github.com/mkessel/trendmap/pkg/treemap"
)

func ExampleLayout() {
	items := []treemap.Item[string]{
		{ID: "amapiano", Size: 60, Meta: "#e63946"},
		{ID: "drill", Size: 30, Meta: "#457b9d"},
		{ID: "jersey", Size: 10, Meta: "#2a9d8f"},
	}

	for _, r := range treemap.Layout(items, 300, 200, 0) {
		fmt.Printf("%s %s: %.0fx%.0f at (%.0f,%.0f)\n", r.ID, r.Meta, r.Width, r.Height, r.X, r.Y)
	}
	// Output:
	// amapiano #e63946: 200x180 at (0,0)
	// drill #457b9d: 100x180 at (200,0)
	// jersey #2a9d8f: 300x20 at (0,180)
}

func ExampleLayout_single() {
	items := []treemap.Item[struct{}]{{ID: "only", Size: 5}}
	rects := treemap.Layout(items, 200, 100, 0)
	fmt.Printf("%s: %.0fx%.0f\n", rects[0].ID, rects[0].Width, rects[0].Height)
	// Output:
	// only: 200x100
}
