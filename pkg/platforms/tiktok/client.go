package tiktok

import (
	"context"
	"fmt"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Source is the platform identifier stamped on candidates.
const Source = "tiktok"

// Host is the RapidAPI host serving the trending feed.
const Host = "tiktok-api23.p.rapidapi.com"

// DefaultRegion is used when no region is given.
const DefaultRegion = "US"

// Client provides access to TikTok trending posts via RapidAPI.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*platforms.Client
	baseURL string
}

// NewClient creates a TikTok client with the given cache and RapidAPI key.
func NewClient(cache *httputil.Cache, rapidAPIKey string) *Client {
	return &Client{
		Client: platforms.NewClient(cache.Namespace("tiktok:"), map[string]string{
			"X-RapidAPI-Key":  rapidAPIKey,
			"X-RapidAPI-Host": Host,
		}),
		baseURL: "https://" + Host,
	}
}

// FetchTrending retrieves the trending feed for a region.
// Candidates carry play and like counts in their metrics.
func (c *Client) FetchTrending(ctx context.Context, region string, refresh bool) ([]platforms.Candidate, error) {
	if region == "" {
		region = DefaultRegion
	}

	var candidates []platforms.Candidate
	err := c.Cached(ctx, "trending:"+region, refresh, &candidates, func() error {
		url := fmt.Sprintf("%s/api/post/trending?region=%s", c.baseURL, platforms.URLEncode(region))

		var data apiResponse
		if err := c.Get(ctx, url, &data); err != nil {
			return err
		}

		candidates = candidates[:0]
		for _, item := range data.ItemList {
			name := item.Desc
			if name == "" {
				continue
			}
			candidates = append(candidates, platforms.Candidate{
				Name:   name,
				Image:  item.Video.Cover,
				Source: Source,
				Metrics: board.Metrics{
					Plays: item.Stats.PlayCount,
					Views: item.Stats.DiggCount,
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
	ItemList []apiItem `json:"itemList"`
}

type apiItem struct {
	Desc  string   `json:"desc"`
	Video apiVideo `json:"video"`
	Stats apiStats `json:"stats"`
}

type apiVideo struct {
	Cover string `json:"cover"`
}

type apiStats struct {
	PlayCount int64 `json:"playCount"`
	DiggCount int64 `json:"diggCount"`
}
