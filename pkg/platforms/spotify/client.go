package spotify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Source is the platform identifier stamped on candidates.
const Source = "spotify"

// Editorial chart playlists.
const (
	ChartViral50 = "37i9dQZEVXbLiRSasKsNU9" // Viral 50 - Global
	ChartTop50   = "37i9dQZEVXbMDoHDwVN2tF" // Top 50 - Global
)

// Client provides access to Spotify chart playlists.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*platforms.Client
	baseURL string
}

// NewClient creates a Spotify client with the given cache and bearer token.
// The token must carry at least the playlist-read scope.
func NewClient(cache *httputil.Cache, token string) *Client {
	return &Client{
		Client: platforms.NewClient(cache.Namespace("spotify:"), map[string]string{
			"Authorization": "Bearer " + token,
		}),
		baseURL: "https://api.spotify.com/v1",
	}
}

// FetchChart retrieves the tracks of a chart playlist as candidates.
//
// The playlist parameter is a Spotify playlist ID such as [ChartViral50].
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - Candidates ordered by chart position on success
//   - [platforms.ErrNotFound] if the playlist doesn't exist
//   - [platforms.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
func (c *Client) FetchChart(ctx context.Context, playlist string, refresh bool) ([]platforms.Candidate, error) {
	playlist = strings.TrimSpace(playlist)
	if playlist == "" {
		playlist = ChartViral50
	}

	var candidates []platforms.Candidate
	err := c.Cached(ctx, "chart:"+playlist, refresh, &candidates, func() error {
		return c.fetch(ctx, playlist, &candidates)
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

func (c *Client) fetch(ctx context.Context, playlist string, out *[]platforms.Candidate) error {
	url := fmt.Sprintf("%s/playlists/%s/tracks?fields=items(track(name,popularity,artists(name),album(images)))", c.baseURL, playlist)

	var data apiResponse
	if err := c.Get(ctx, url, &data); err != nil {
		if errors.Is(err, platforms.ErrNotFound) {
			return fmt.Errorf("%w: spotify playlist %s", err, playlist)
		}
		return err
	}

	candidates := make([]platforms.Candidate, 0, len(data.Items))
	for _, item := range data.Items {
		t := item.Track
		if t.Name == "" {
			continue
		}
		candidates = append(candidates, platforms.Candidate{
			Name:     displayName(t),
			Category: "music",
			Size:     float64(t.Popularity),
			Image:    firstImage(t.Album.Images),
			Source:   Source,
		})
	}
	*out = platforms.Dedupe(candidates)
	return nil
}

// displayName joins the primary artist and track title.
func displayName(t apiTrack) string {
	if len(t.Artists) == 0 {
		return t.Name
	}
	return t.Artists[0].Name + " - " + t.Name
}

// firstImage returns the largest artwork URL; Spotify orders images
// widest first.
func firstImage(images []apiImage) string {
	if len(images) == 0 {
		return ""
	}
	return images[0].URL
}

type apiResponse struct {
	Items []apiItem `json:"items"`
}

type apiItem struct {
	Track apiTrack `json:"track"`
}

type apiTrack struct {
	Name       string      `json:"name"`
	Popularity int         `json:"popularity"`
	Artists    []apiArtist `json:"artists"`
	Album      apiAlbum    `json:"album"`
}

type apiArtist struct {
	Name string `json:"name"`
}

type apiAlbum struct {
	Images []apiImage `json:"images"`
}

type apiImage struct {
	URL string `json:"url"`
}
