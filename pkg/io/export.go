package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mkessel/trendmap/pkg/board"
)

// FormatVersion is the current envelope version.
const FormatVersion = 1

type envelope struct {
	Version    int           `json:"version"`
	ExportedAt time.Time     `json:"exported_at"`
	Trends     []board.Trend `json:"trends"`
}

// WriteJSON encodes a trend collection as JSON and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip
// processing.
func WriteJSON(trends []board.Trend, w io.Writer) error {
	out := envelope{
		Version:    FormatVersion,
		ExportedAt: time.Now().UTC(),
		Trends:     trends,
	}
	if out.Trends == nil {
		out.Trends = []board.Trend{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode trends: %w", err)
	}
	return nil
}

// ExportJSON writes a trend collection to a file at path.
// The file is created with mode 0644, truncating any existing content.
func ExportJSON(trends []board.Trend, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteJSON(trends, f); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
