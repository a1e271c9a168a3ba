package gtrends

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Source is the platform identifier stamped on candidates.
const Source = "gtrends"

// Defaults for the scraping server.
const (
	DefaultBaseURL = "http://localhost:8090"
	DefaultGeo     = "US"
)

// Client provides access to a Google Trends scraping server.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*platforms.Client
	baseURL string
}

// NewClient creates a trends client for the scraping server at baseURL.
// An empty baseURL falls back to [DefaultBaseURL].
func NewClient(cache *httputil.Cache, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		Client:  platforms.NewClient(cache.Namespace("gtrends:"), nil),
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// FetchDaily retrieves the daily trending searches for a geo code.
// Approximate search traffic becomes the view metric.
func (c *Client) FetchDaily(ctx context.Context, geo string, refresh bool) ([]platforms.Candidate, error) {
	if geo == "" {
		geo = DefaultGeo
	}

	var candidates []platforms.Candidate
	err := c.Cached(ctx, "daily:"+geo, refresh, &candidates, func() error {
		url := fmt.Sprintf("%s/daily?geo=%s", c.baseURL, platforms.URLEncode(geo))

		var data apiResponse
		if err := c.Get(ctx, url, &data); err != nil {
			return err
		}

		candidates = candidates[:0]
		for _, tr := range data.Trends {
			if tr.Query == "" {
				continue
			}
			candidates = append(candidates, platforms.Candidate{
				Name:   tr.Query,
				Image:  tr.Image,
				Source: Source,
				Metrics: board.Metrics{
					Views: tr.Traffic,
				},
			})
		}
		candidates = platforms.Dedupe(candidates)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

type apiResponse struct {
	Trends []apiTrend `json:"trends"`
}

type apiTrend struct {
	Query   string `json:"query"`
	Traffic int64  `json:"traffic"` // approximate daily searches
	Image   string `json:"image"`
}
