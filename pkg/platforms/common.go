package platforms

import (
	"errors"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/scoring"
)

const httpTimeout = 10 * time.Second

var (
	// ErrNotFound is returned when a chart or resource doesn't exist on the platform.
	ErrNotFound = errors.New("resource not found")

	// ErrNetwork is returned for HTTP failures (timeouts, connection errors, 5xx responses).
	ErrNetwork = errors.New("network error")
)

// Candidate is a raw trend fetched from a platform, before curation.
// Clients normalize their API responses into this shape; [ToTrend]
// converts accepted candidates into board trends.
type Candidate struct {
	Name     string        `json:"name"`               // Display name (track, artist, hashtag, query)
	Category string        `json:"category,omitempty"` // Platform-suggested category slug (may be empty)
	Size     float64       `json:"size,omitempty"`     // Explicit weight; 0 means derive from Metrics
	Image    string        `json:"image,omitempty"`    // Artwork or thumbnail URL (may be empty)
	Source   string        `json:"source"`             // Platform identifier (e.g. "spotify")
	Metrics  board.Metrics `json:"metrics"`            // Raw counters reported by the platform
}

// ToTrend converts a candidate into a curated board trend.
// It assigns a fresh UUID and, when the candidate carries no explicit
// size, derives one from its metrics via the attention score.
func ToTrend(c Candidate) board.Trend {
	size := c.Size
	if size <= 0 {
		size = scoring.Attention(c.Metrics)
	}
	now := time.Now().UTC()
	return board.Trend{
		ID:        uuid.NewString(),
		Name:      c.Name,
		Category:  c.Category,
		Size:      size,
		Image:     c.Image,
		Source:    c.Source,
		Metrics:   c.Metrics,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ToTrends converts a candidate slice, preserving order.
func ToTrends(candidates []Candidate) []board.Trend {
	trends := make([]board.Trend, 0, len(candidates))
	for _, c := range candidates {
		trends = append(trends, ToTrend(c))
	}
	return trends
}

// NewHTTPClient creates an HTTP client with a standard timeout for platform requests.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// NewCache creates a file-based cache with the given TTL in the default cache directory.
// See [httputil.NewCache] for details on cache location and behavior.
func NewCache(ttl time.Duration) (*httputil.Cache, error) {
	return httputil.NewCache("", ttl)
}

// NormalizeName canonicalizes a candidate name for deduplication:
// trimmed, lowercased, inner whitespace collapsed to single spaces.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// Dedupe removes candidates whose normalized names repeat, keeping the
// first (highest-ranked) occurrence.
func Dedupe(candidates []Candidate) []Candidate {
	seen := make(map[string]bool, len(candidates))
	out := candidates[:0:0]
	for _, c := range candidates {
		key := NormalizeName(c.Name)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, c)
	}
	return out
}

// URLEncode percent-encodes a string for use in URLs.
// This is a convenience wrapper around [url.QueryEscape].
func URLEncode(s string) string { return url.QueryEscape(s) }
