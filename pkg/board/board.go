package board

import (
	"time"
)

// =============================================================================
// Constants - Single Source of Truth
// =============================================================================

// Canvas preset names.
const (
	CanvasFeed  = "feed"
	CanvasStory = "story"
)

// DefaultPadding is the tile gutter in canvas pixels.
const DefaultPadding = 3.0

// ValidCanvases is the set of supported canvas presets.
var ValidCanvases = map[string]bool{
	CanvasFeed:  true,
	CanvasStory: true,
}

// =============================================================================
// Trend - Curated Item
// =============================================================================

// Trend is a curated heatmap item. Size is the layout weight; everything
// else is display metadata carried through to the placed tile.
type Trend struct {
	ID       string  `json:"id" bson:"id"`
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category,omitempty" bson:"category,omitempty"`
	Size     float64 `json:"size" bson:"size"`
	Image    string  `json:"image,omitempty" bson:"image,omitempty"`
	Color    string  `json:"color,omitempty" bson:"color,omitempty"`
	Source   string  `json:"source,omitempty" bson:"source,omitempty"` // originating platform

	Metrics Metrics `json:"metrics,omitempty" bson:"metrics,omitempty"`

	CreatedAt time.Time `json:"created_at,omitempty" bson:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" bson:"updated_at,omitempty"`
}

// Metrics holds the source platform numbers backing a trend's weight.
type Metrics struct {
	Plays     int64   `json:"plays,omitempty" bson:"plays,omitempty"`
	Views     int64   `json:"views,omitempty" bson:"views,omitempty"`
	Followers int64   `json:"followers,omitempty" bson:"followers,omitempty"`
	Momentum  float64 `json:"momentum,omitempty" bson:"momentum,omitempty"` // fractional growth, 0 = flat
}

// DisplayCategory returns the category if set, otherwise "uncategorized".
func (t *Trend) DisplayCategory() string {
	if t.Category != "" {
		return t.Category
	}
	return "uncategorized"
}

// =============================================================================
// Canvas - Export Frame
// =============================================================================

// Canvas describes the export frame in pixels. Header and Footer reserve
// bands for branding overlays; tiles are laid out in the space between.
type Canvas struct {
	Name   string  `json:"name"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Header float64 `json:"header"`
	Footer float64 `json:"footer"`
}

// Feed is the 4:5 feed-post canvas (1080x1350).
var Feed = Canvas{Name: CanvasFeed, Width: 1080, Height: 1350, Header: 150, Footer: 90}

// Story is the 9:16 story canvas (1080x1920).
var Story = Canvas{Name: CanvasStory, Width: 1080, Height: 1920, Header: 220, Footer: 140}

// CanvasByName resolves a preset canvas by name.
// Returns ok=false for unknown names.
func CanvasByName(name string) (Canvas, bool) {
	switch name {
	case CanvasFeed:
		return Feed, true
	case CanvasStory:
		return Story, true
	default:
		return Canvas{}, false
	}
}

// ContentHeight returns the height available for tiles.
func (c Canvas) ContentHeight() float64 {
	return c.Height - c.Header - c.Footer
}
