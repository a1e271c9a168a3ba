package lastfm

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Source is the platform identifier stamped on candidates.
const Source = "lastfm"

// DefaultLimit is the number of chart entries fetched per call.
const DefaultLimit = 50

// Client provides access to the Last.fm chart endpoints.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*platforms.Client
	baseURL string
	apiKey  string
}

// NewClient creates a Last.fm client with the given cache and API key.
func NewClient(cache *httputil.Cache, apiKey string) *Client {
	return &Client{
		Client:  platforms.NewClient(cache.Namespace("lastfm:"), nil),
		baseURL: "https://ws.audioscrobbler.com/2.0/",
		apiKey:  apiKey,
	}
}

// FetchTopArtists retrieves the global top artists chart.
// Candidates carry play and listener counts in their metrics.
func (c *Client) FetchTopArtists(ctx context.Context, limit int, refresh bool) ([]platforms.Candidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := fmt.Sprintf("topartists:%d", limit)
	var candidates []platforms.Candidate
	err := c.Cached(ctx, key, refresh, &candidates, func() error {
		var data topArtistsResponse
		if err := c.Get(ctx, c.chartURL("chart.gettopartists", limit), &data); err != nil {
			return err
		}
		candidates = candidates[:0]
		for _, a := range data.Artists.Artist {
			if a.Name == "" {
				continue
			}
			candidates = append(candidates, platforms.Candidate{
				Name:     a.Name,
				Category: "music",
				Source:   Source,
				Metrics: board.Metrics{
					Plays:     parseCount(a.Playcount),
					Followers: parseCount(a.Listeners),
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

// FetchTopTracks retrieves the global top tracks chart.
func (c *Client) FetchTopTracks(ctx context.Context, limit int, refresh bool) ([]platforms.Candidate, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	key := fmt.Sprintf("toptracks:%d", limit)
	var candidates []platforms.Candidate
	err := c.Cached(ctx, key, refresh, &candidates, func() error {
		var data topTracksResponse
		if err := c.Get(ctx, c.chartURL("chart.gettoptracks", limit), &data); err != nil {
			return err
		}
		candidates = candidates[:0]
		for _, t := range data.Tracks.Track {
			if t.Name == "" {
				continue
			}
			name := t.Name
			if t.Artist.Name != "" {
				name = t.Artist.Name + " - " + t.Name
			}
			candidates = append(candidates, platforms.Candidate{
				Name:     name,
				Category: "music",
				Source:   Source,
				Metrics: board.Metrics{
					Plays:     parseCount(t.Playcount),
					Followers: parseCount(t.Listeners),
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

func (c *Client) chartURL(method string, limit int) string {
	return fmt.Sprintf("%s?method=%s&format=json&limit=%d&api_key=%s",
		c.baseURL, method, limit, platforms.URLEncode(c.apiKey))
}

func parseCount(s string) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0
	}
	return n
}

type topArtistsResponse struct {
	Artists struct {
		Artist []apiArtist `json:"artist"`
	} `json:"artists"`
}

type apiArtist struct {
	Name      string `json:"name"`
	Playcount string `json:"playcount"`
	Listeners string `json:"listeners"`
}

type topTracksResponse struct {
	Tracks struct {
		Track []apiTrack `json:"track"`
	} `json:"tracks"`
}

type apiTrack struct {
	Name      string `json:"name"`
	Playcount string `json:"playcount"`
	Listeners string `json:"listeners"`
	Artist    struct {
		Name string `json:"name"`
	} `json:"artist"`
}
