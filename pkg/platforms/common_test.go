package platforms

import (
	"errors"
	"net/http"
	"testing"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
)

func TestToTrend(t *testing.T) {
	c := Candidate{
		Name:     "Tyler ICU - Mnike",
		Category: "music",
		Size:     88,
		Image:    "https://img.example/a.jpg",
		Source:   "spotify",
		Metrics:  board.Metrics{Plays: 1000},
	}

	trend := ToTrend(c)

	if trend.ID == "" {
		t.Error("expected generated ID")
	}
	if trend.Name != c.Name || trend.Category != c.Category || trend.Source != c.Source {
		t.Errorf("fields not carried over: %+v", trend)
	}
	if trend.Size != 88 {
		t.Errorf("explicit size should be kept, got %v", trend.Size)
	}
	if trend.CreatedAt.IsZero() || trend.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}
}

func TestToTrend_DerivesSizeFromMetrics(t *testing.T) {
	c := Candidate{
		Name:    "trend roundup",
		Source:  "youtube",
		Metrics: board.Metrics{Views: 1_200_000},
	}

	trend := ToTrend(c)
	if trend.Size < 1 || trend.Size > 100 {
		t.Errorf("derived size %v outside [1, 100]", trend.Size)
	}
}

func TestToTrends_UniqueIDs(t *testing.T) {
	trends := ToTrends([]Candidate{
		{Name: "a", Size: 1},
		{Name: "b", Size: 2},
	})
	if len(trends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(trends))
	}
	if trends[0].ID == trends[1].ID {
		t.Error("trends should get distinct IDs")
	}
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Amapiano", "amapiano"},
		{"  UK   Drill ", "uk drill"},
		{"JERSEY\tCLUB", "jersey club"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeName(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDedupe(t *testing.T) {
	in := []Candidate{
		{Name: "Amapiano", Size: 10},
		{Name: "amapiano ", Size: 5},
		{Name: "Drill", Size: 3},
		{Name: ""},
	}

	got := Dedupe(in)
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	if got[0].Size != 10 {
		t.Error("first occurrence should win")
	}
}

func TestCheckStatus(t *testing.T) {
	tests := []struct {
		code      int
		wantErr   error
		retryable bool
	}{
		{http.StatusOK, nil, false},
		{http.StatusNotFound, ErrNotFound, false},
		{http.StatusTooManyRequests, ErrNetwork, true},
		{http.StatusInternalServerError, ErrNetwork, true},
		{http.StatusBadRequest, ErrNetwork, false},
	}

	for _, tt := range tests {
		err := checkStatus(tt.code)
		if tt.wantErr == nil {
			if err != nil {
				t.Errorf("status %d: unexpected error %v", tt.code, err)
			}
			continue
		}
		if !errors.Is(err, tt.wantErr) {
			t.Errorf("status %d: got %v, want %v", tt.code, err, tt.wantErr)
		}
		var re *httputil.RetryableError
		if got := errors.As(err, &re); got != tt.retryable {
			t.Errorf("status %d: retryable = %v, want %v", tt.code, got, tt.retryable)
		}
	}
}
