package cli

import (
	"context"
	"time"

	"github.com/mkessel/trendmap/pkg/config"
	"github.com/mkessel/trendmap/pkg/pipeline"
	"github.com/mkessel/trendmap/pkg/platforms"
	"github.com/mkessel/trendmap/pkg/platforms/gtrends"
	"github.com/mkessel/trendmap/pkg/platforms/instagram"
	"github.com/mkessel/trendmap/pkg/platforms/lastfm"
	"github.com/mkessel/trendmap/pkg/platforms/spotify"
	"github.com/mkessel/trendmap/pkg/platforms/tiktok"
	"github.com/mkessel/trendmap/pkg/platforms/youtube"
)

// httpCacheTTL is how long raw platform responses stay fresh.
const httpCacheTTL = 6 * time.Hour

// buildFetchers wires up a fetcher for every platform whose credentials
// are present in the config. Platforms without credentials are simply
// absent from the map; the pipeline reports them as unconfigured.
func buildFetchers(cfg *config.Config) map[string]pipeline.Fetcher {
	httpCache, err := platforms.NewCache(httpCacheTTL)
	if err != nil {
		// A nil cache disables response caching but keeps clients working.
		httpCache = nil
	}

	fetchers := make(map[string]pipeline.Fetcher)

	if cfg.Spotify.Token != "" {
		client := spotify.NewClient(httpCache, cfg.Spotify.Token)
		fetchers[pipeline.PlatformSpotify] = func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
			return client.FetchChart(ctx, spotify.ChartViral50, refresh)
		}
	}

	if cfg.YouTube.APIKey != "" {
		client := youtube.NewClient(httpCache, cfg.YouTube.APIKey)
		fetchers[pipeline.PlatformYouTube] = func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
			return client.FetchTrending(ctx, region, limit, refresh)
		}
	}

	if cfg.LastFM.APIKey != "" {
		client := lastfm.NewClient(httpCache, cfg.LastFM.APIKey)
		fetchers[pipeline.PlatformLastFM] = func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
			return client.FetchTopTracks(ctx, limit, refresh)
		}
	}

	if cfg.RapidAPI.Key != "" {
		tk := tiktok.NewClient(httpCache, cfg.RapidAPI.Key)
		fetchers[pipeline.PlatformTikTok] = func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
			return tk.FetchTrending(ctx, region, refresh)
		}

		ig := instagram.NewClient(httpCache, cfg.RapidAPI.Key)
		keywords := cfg.Watchlist.Keywords
		fetchers[pipeline.PlatformInstagram] = func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
			return ig.FetchHashtags(ctx, keywords, refresh)
		}
	}

	if cfg.GTrends.BaseURL != "" {
		client := gtrends.NewClient(httpCache, cfg.GTrends.BaseURL)
		geo := cfg.GTrends.Geo
		fetchers[pipeline.PlatformGTrends] = func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
			return client.FetchDaily(ctx, geo, refresh)
		}
	}

	return fetchers
}
