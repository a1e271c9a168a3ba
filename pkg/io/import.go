package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/errors"
)

// ReadJSON decodes a trend collection from r.
//
// The input must be an envelope produced by [WriteJSON]. ReadJSON
// returns an error if:
//   - The JSON is malformed
//   - The envelope version is newer than this build understands
//   - A trend is missing a name or has a non-positive size
//
// Errors are wrapped with the index of the offending trend. The
// returned slice is independent of r; ReadJSON does not close r.
func ReadJSON(r io.Reader) ([]board.Trend, error) {
	var data envelope
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	if data.Version > FormatVersion {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"trend file version %d is newer than supported version %d", data.Version, FormatVersion)
	}

	for i, t := range data.Trends {
		if err := errors.ValidateTrendName(t.Name); err != nil {
			return nil, fmt.Errorf("trend %d: %w", i, err)
		}
		if err := errors.ValidateTrendSize(t.Size); err != nil {
			return nil, fmt.Errorf("trend %d (%s): %w", i, t.Name, err)
		}
	}
	return data.Trends, nil
}

// ImportJSON reads a trend file at path and returns the decoded trends.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes
// the file. Errors wrap the underlying cause with the file path for
// context.
func ImportJSON(path string) ([]board.Trend, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
