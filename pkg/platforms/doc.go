// Package platforms provides HTTP clients for trend-source APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching trend
// candidates from streaming and social platforms. Each platform has its
// own subpackage:
//
//   - [spotify]: Spotify Web API playlist charts
//   - [youtube]: YouTube Data API v3 trending videos
//   - [lastfm]: Last.fm chart endpoints
//   - [tiktok]: TikTok trending via RapidAPI
//   - [instagram]: Instagram hashtag trends via RapidAPI
//   - [gtrends]: Google Trends via a local scraping server
//
// # Client Pattern
//
// All platform clients follow a consistent pattern:
//
//	client := spotify.NewClient(cache, token)
//	candidates, err := client.FetchChart(ctx, spotify.ChartViral50, false)  // false = use cache
//
// Clients handle:
//   - HTTP requests with retry for transient failures
//   - Response caching (file-based, configurable TTL)
//   - API-specific parsing into the shared [Candidate] type
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all
// platform clients, including response caching via [httputil.Cache].
// [Candidate] values convert to curated board trends with [ToTrend].
//
// # Adding a New Platform
//
// To add support for a new trend source:
//
//  1. Create a subpackage: pkg/platforms/<platform>/
//  2. Define response structs matching the API schema
//  3. Implement a Client returning []platforms.Candidate
//  4. Use [NewClient] for HTTP with caching
//  5. Wire into the pipeline's platform registry
//
// [spotify]: github.com/mkessel/trendmap/pkg/platforms/spotify
// [youtube]: github.com/mkessel/trendmap/pkg/platforms/youtube
// [lastfm]: github.com/mkessel/trendmap/pkg/platforms/lastfm
// [tiktok]: github.com/mkessel/trendmap/pkg/platforms/tiktok
// [instagram]: github.com/mkessel/trendmap/pkg/platforms/instagram
// [gtrends]: github.com/mkessel/trendmap/pkg/platforms/gtrends
// [httputil.Cache]: github.com/mkessel/trendmap/pkg/httputil.Cache
package platforms
