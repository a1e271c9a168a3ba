package instagram

import (
	"context"
	"fmt"
	"strings"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/httputil"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Source is the platform identifier stamped on candidates.
const Source = "instagram"

// Host is the RapidAPI host serving hashtag data.
const Host = "instagram-scraper-api2.p.rapidapi.com"

// Client provides access to Instagram hashtag trends via RapidAPI.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*platforms.Client
	baseURL string
}

// NewClient creates an Instagram client with the given cache and RapidAPI key.
func NewClient(cache *httputil.Cache, rapidAPIKey string) *Client {
	return &Client{
		Client: platforms.NewClient(cache.Namespace("instagram:"), map[string]string{
			"X-RapidAPI-Key":  rapidAPIKey,
			"X-RapidAPI-Host": Host,
		}),
		baseURL: "https://" + Host,
	}
}

// FetchHashtag retrieves metadata for a hashtag as a single candidate.
// The leading # is optional; "#amapiano" and "amapiano" are the same tag.
// Returns [platforms.ErrNotFound] if the hashtag doesn't exist.
func (c *Client) FetchHashtag(ctx context.Context, tag string, refresh bool) ([]platforms.Candidate, error) {
	tag = strings.TrimPrefix(strings.TrimSpace(tag), "#")
	if tag == "" {
		return nil, fmt.Errorf("%w: empty hashtag", platforms.ErrNotFound)
	}

	var candidates []platforms.Candidate
	err := c.Cached(ctx, "hashtag:"+platforms.NormalizeName(tag), refresh, &candidates, func() error {
		url := fmt.Sprintf("%s/v1/hashtag?hashtag=%s", c.baseURL, platforms.URLEncode(tag))

		var data apiResponse
		if err := c.Get(ctx, url, &data); err != nil {
			return err
		}
		if data.Data.Name == "" {
			return fmt.Errorf("%w: instagram hashtag %s", platforms.ErrNotFound, tag)
		}

		candidates = []platforms.Candidate{{
			Name:   "#" + data.Data.Name,
			Image:  data.Data.ProfilePicURL,
			Source: Source,
			Metrics: board.Metrics{
				Followers: data.Data.MediaCount,
			},
		}}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// FetchHashtags fetches several hashtags, skipping ones that don't
// exist. It fails only when every tag errors for another reason.
func (c *Client) FetchHashtags(ctx context.Context, tags []string, refresh bool) ([]platforms.Candidate, error) {
	var all []platforms.Candidate
	var lastErr error
	for _, tag := range tags {
		found, err := c.FetchHashtag(ctx, tag, refresh)
		if err != nil {
			lastErr = err
			continue
		}
		all = append(all, found...)
	}
	if len(all) == 0 && lastErr != nil {
		return nil, lastErr
	}
	return platforms.Dedupe(all), nil
}

type apiResponse struct {
	Data apiHashtag `json:"data"`
}

type apiHashtag struct {
	Name          string `json:"name"`
	MediaCount    int64  `json:"media_count"`
	ProfilePicURL string `json:"profile_pic_url"`
}
