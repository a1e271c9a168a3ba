// Package httputil provides HTTP utilities for platform API clients.
//
// # Overview
//
// This package provides infrastructure shared by all trend-source clients:
//
//   - [Cache]: File-based HTTP response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores HTTP responses in the filesystem (~/.cache/trendmap/)
// with configurable TTL. Chart endpoints change slowly, so caching
// repeated fetches keeps the pipeline fast and stays well inside
// vendor rate limits.
//
// Usage:
//
//	cache, err := httputil.NewCache("", 6*time.Hour)
//	ok, err := cache.Get("spotify:viral-50", &payload)
//	if !ok {
//	    payload = fetchFromAPI()
//	    cache.Set("spotify:viral-50", payload)
//	}
//
// Cache keys should be namespaced by platform to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Only errors wrapped with [RetryableError] are retried; client errors
// such as 404 fail immediately.
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/trendmap/
//   - Max retries: 3
//   - Base backoff: 1 second
//
// The cache can be cleared via `trendmap cache clear` or by deleting
// the cache directory.
package httputil
