package youtube

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Source is the platform identifier stamped on candidates.
const Source = "youtube"

// Defaults for trending queries.
const (
	DefaultRegion = "US"
	DefaultLimit  = 25
	maxLimit      = 50 // API cap for maxResults
)

// Client provides access to the YouTube Data API v3 mostPopular chart.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*platforms.Client
	baseURL string
	apiKey  string
}

// NewClient creates a YouTube client with the given cache and API key.
func NewClient(cache *httputil.Cache, apiKey string) *Client {
	return &Client{
		Client:  platforms.NewClient(cache.Namespace("youtube:"), nil),
		baseURL: "https://www.googleapis.com/youtube/v3",
		apiKey:  apiKey,
	}
}

// FetchTrending retrieves the mostPopular videos for a region.
//
// An empty region defaults to [DefaultRegion]; limit is clamped to the
// API maximum of 50 and defaults to [DefaultLimit] when non-positive.
// If refresh is true, the cache is bypassed.
//
// Candidates carry view counts in their metrics; their weight is
// derived later by the scoring step.
func (c *Client) FetchTrending(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
	if region == "" {
		region = DefaultRegion
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, maxLimit)

	key := fmt.Sprintf("trending:%s:%d", region, limit)
	var candidates []platforms.Candidate
	err := c.Cached(ctx, key, refresh, &candidates, func() error {
		return c.fetch(ctx, region, limit, &candidates)
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *Client) fetch(ctx context.Context, region string, limit int, out *[]platforms.Candidate) error {
	url := fmt.Sprintf("%s/videos?part=snippet,statistics&chart=mostPopular&regionCode=%s&maxResults=%d&key=%s",
		c.baseURL, platforms.URLEncode(region), limit, platforms.URLEncode(c.apiKey))

	var data apiResponse
	if err := c.Get(ctx, url, &data); err != nil {
		return err
	}

	candidates := make([]platforms.Candidate, 0, len(data.Items))
	for _, item := range data.Items {
		if item.Snippet.Title == "" {
			continue
		}
		candidates = append(candidates, platforms.Candidate{
			Name:   item.Snippet.Title,
			Image:  item.Snippet.Thumbnails.High.URL,
			Source: Source,
			Metrics: board.Metrics{
				Views: parseCount(item.Statistics.ViewCount),
			},
		})
	}
	*out = platforms.Dedupe(candidates)
	return nil
}

// parseCount converts the API's string counters; malformed values
// count as zero.
func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type apiResponse struct {
	Items []apiVideo `json:"items"`
}

type apiVideo struct {
	Snippet    apiSnippet    `json:"snippet"`
	Statistics apiStatistics `json:"statistics"`
}

type apiSnippet struct {
	Title      string        `json:"title"`
	Thumbnails apiThumbnails `json:"thumbnails"`
}

type apiThumbnails struct {
	High apiThumbnail `json:"high"`
}

type apiThumbnail struct {
	URL string `json:"url"`
}

type apiStatistics struct {
	ViewCount string `json:"viewCount"`
}
