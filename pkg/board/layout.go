package board

import (
	"encoding/json"
	"fmt"
	"os"
)

// =============================================================================
// Layout - Serializable Board
// =============================================================================

// Layout is the serialization format for a composed board. It is the
// hand-off contract to renderers and the unit cached by the pipeline:
// compose -> marshal -> cache/export -> unmarshal -> paint.
type Layout struct {
	Canvas  string  `json:"canvas" bson:"canvas"`
	Width   float64 `json:"width" bson:"width"`
	Height  float64 `json:"height" bson:"height"`
	Padding float64 `json:"padding,omitempty" bson:"padding,omitempty"`

	Bands []Band `json:"bands,omitempty" bson:"bands,omitempty"`
	Tiles []Tile `json:"tiles,omitempty" bson:"tiles,omitempty"`
}

// Band is a full-width category strip on the canvas.
type Band struct {
	Category string  `json:"category" bson:"category"`
	Y        float64 `json:"y" bson:"y"`
	Height   float64 `json:"height" bson:"height"`
	Weight   float64 `json:"weight" bson:"weight"`
}

// Tile is a placed trend rectangle in canvas coordinates.
type Tile struct {
	Trend Trend `json:"trend" bson:"trend"`

	X      float64 `json:"x" bson:"x"`
	Y      float64 `json:"y" bson:"y"`
	Width  float64 `json:"width" bson:"width"`
	Height float64 `json:"height" bson:"height"`
}

// IsEmpty returns true if the layout has no tiles.
func (l *Layout) IsEmpty() bool { return len(l.Tiles) == 0 }

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// Validates that frame dimensions are present.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("unmarshal layout: %w", err)
	}
	if l.Width <= 0 || l.Height <= 0 {
		return Layout{}, fmt.Errorf("layout must carry positive frame dimensions")
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
