package io

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/mkessel/trendmap/pkg/board"
)

func sampleTrends() []board.Trend {
	return []board.Trend{
		{ID: "t1", Name: "amapiano", Category: "music", Size: 60, Source: "spotify"},
		{ID: "t2", Name: "quiet luxury", Category: "fashion", Size: 30},
	}
}

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trends.json")

	if err := ExportJSON(sampleTrends(), path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(got))
	}
	if got[0].ID != "t1" || got[0].Name != "amapiano" || got[0].Size != 60 {
		t.Errorf("round trip lost data: %+v", got[0])
	}
	if got[1].Category != "fashion" {
		t.Errorf("round trip lost category: %+v", got[1])
	}
}

func TestExportJSON_EmptyCollection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")

	if err := ExportJSON(nil, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	got, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d trends", len(got))
	}
}

func TestReadJSON_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"malformed", `{"version": 1, "trends": [`},
		{"future version", `{"version": 99, "trends": []}`},
		{"missing name", `{"version": 1, "trends": [{"size": 10}]}`},
		{"zero size", `{"version": 1, "trends": [{"name": "x", "size": 0}]}`},
		{"negative size", `{"version": 1, "trends": [{"name": "x", "size": -3}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ReadJSON(strings.NewReader(tt.input)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestReadJSON_IgnoresUnknownFields(t *testing.T) {
	input := `{"version": 1, "future_field": true, "trends": [{"name": "x", "size": 1, "brand_new": "y"}]}`
	got, err := ReadJSON(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got) != 1 || got[0].Name != "x" {
		t.Errorf("unexpected result %+v", got)
	}
}

func TestImportJSON_MissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
