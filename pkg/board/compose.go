package board

import (
	"github.com/mkessel/trendmap/pkg/treemap"
)

// Compose lays out trends on the canvas and returns a serializable Layout.
//
// Trends are grouped by category in first-seen order. Each category gets a
// full-width band below the header, with height proportional to the
// category's share of the total weight, and its trends are placed by the
// treemap engine inside that band. Trends with non-positive sizes are
// skipped; if nothing remains, the returned layout has no tiles but still
// carries the canvas dimensions so callers can render an empty frame.
//
// Compose is pure and deterministic: it never mutates trends and identical
// input always produces an identical layout.
func Compose(trends []Trend, canvas Canvas, padding float64) Layout {
	layout := Layout{
		Canvas:  canvas.Name,
		Width:   canvas.Width,
		Height:  canvas.Height,
		Padding: padding,
	}

	groups, order := groupByCategory(trends)
	var total float64
	for _, name := range order {
		for _, t := range groups[name] {
			total += t.Size
		}
	}
	if total <= 0 || canvas.ContentHeight() <= 0 {
		return layout
	}

	y := canvas.Header
	for _, name := range order {
		group := groups[name]

		var weight float64
		for _, t := range group {
			weight += t.Size
		}
		bandHeight := weight / total * canvas.ContentHeight()

		band := Band{
			Category: name,
			Y:        y,
			Height:   bandHeight,
			Weight:   weight,
		}

		items := make([]treemap.Item[Trend], 0, len(group))
		for _, t := range group {
			items = append(items, treemap.Item[Trend]{ID: t.ID, Size: t.Size, Meta: t})
		}

		for _, r := range treemap.Layout(items, canvas.Width, bandHeight, padding) {
			layout.Tiles = append(layout.Tiles, Tile{
				Trend:  r.Meta,
				X:      r.X,
				Y:      y + r.Y,
				Width:  r.Width,
				Height: r.Height,
			})
		}

		layout.Bands = append(layout.Bands, band)
		y += bandHeight
	}

	return layout
}

// groupByCategory splits trends into per-category groups, dropping
// non-positive weights. Category order follows first appearance so curated
// ordering survives composition.
func groupByCategory(trends []Trend) (map[string][]Trend, []string) {
	groups := make(map[string][]Trend)
	var order []string
	for _, t := range trends {
		if t.Size <= 0 {
			continue
		}
		name := t.DisplayCategory()
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], t)
	}
	return groups, order
}
