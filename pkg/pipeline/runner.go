package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/cache"
	"github.com/mkessel/trendmap/pkg/errors"
	"github.com/mkessel/trendmap/pkg/observability"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete fetch → curate → compose → export pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	candidates, fetchHits, err := r.FetchAllWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Candidates = candidates
	result.Stats.FetchTime = time.Since(fetchStart)
	result.Stats.CandidateCount = len(candidates)
	result.CacheInfo.FetchHits = fetchHits

	r.Logger.Info("fetched candidates",
		"platforms", opts.Platforms,
		"candidates", len(candidates),
		"duration", result.Stats.FetchTime)

	// Stage 2: Curate
	trends := Curate(candidates, opts)
	result.Trends = trends
	result.Stats.TrendCount = len(trends)
	if data, err := json.Marshal(trends); err == nil {
		result.TrendsHash = cache.Hash(data)
	}

	// Stage 3: Compose
	composeStart := time.Now()
	layout, composeHit, err := r.ComposeWithCacheInfo(ctx, trends, opts)
	if err != nil {
		return nil, fmt.Errorf("compose: %w", err)
	}
	result.Layout = layout
	result.Stats.ComposeTime = time.Since(composeStart)
	result.Stats.TileCount = len(layout.Tiles)
	result.CacheInfo.ComposeHit = composeHit

	r.Logger.Info("composed board",
		"canvas", opts.Canvas,
		"tiles", len(layout.Tiles),
		"duration", result.Stats.ComposeTime)

	// Stage 4: Export
	exportStart := time.Now()
	artifacts, exportHit, err := r.ExportWithCacheInfo(ctx, layout, opts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.ExportTime = time.Since(exportStart)
	result.CacheInfo.ExportHit = exportHit

	r.Logger.Info("exported board",
		"formats", opts.Formats,
		"duration", result.Stats.ExportTime)

	return result, nil
}

// FetchWithCacheInfo fetches one platform's candidates with caching and
// returns cache hit info.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, platform string, opts Options) ([]platforms.Candidate, bool, error) {
	if err := ValidatePlatform(platform); err != nil {
		return nil, false, err
	}
	fetcher, ok := opts.Fetchers[platform]
	if !ok || fetcher == nil {
		return nil, false, errors.New(errors.ErrCodeMissingCreds, "platform %s is not configured", platform)
	}

	cacheKey := r.Keyer.CandidateKey(platform, opts.CandidateKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var candidates []platforms.Candidate
			if err := json.Unmarshal(data, &candidates); err == nil {
				observability.Cache().OnCacheHit(ctx, "candidates")
				return candidates, true, nil // Cache hit
			}
		}
		observability.Cache().OnCacheMiss(ctx, "candidates")
	}

	// Fetch
	start := time.Now()
	observability.Pipeline().OnFetchStart(ctx, platform)
	candidates, err := fetcher(ctx, opts.Region, opts.Limit, opts.Refresh)
	observability.Pipeline().OnFetchComplete(ctx, platform, len(candidates), time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache the result
	if data, err := json.Marshal(candidates); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLCandidates)
		observability.Cache().OnCacheSet(ctx, "candidates", len(data))
	}

	return candidates, false, nil // Cache miss
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, platform string, opts Options) ([]platforms.Candidate, error) {
	candidates, _, err := r.FetchWithCacheInfo(ctx, platform, opts)
	return candidates, err
}

// FetchAllWithCacheInfo fetches all configured platforms, concatenates
// and deduplicates their candidates, and reports per-platform cache hits.
func (r *Runner) FetchAllWithCacheInfo(ctx context.Context, opts Options) ([]platforms.Candidate, map[string]bool, error) {
	if err := opts.ValidateForFetch(); err != nil {
		return nil, nil, err
	}
	r.applyLogger(&opts)

	hits := make(map[string]bool, len(opts.Platforms))
	var all []platforms.Candidate
	for _, platform := range opts.Platforms {
		candidates, hit, err := r.FetchWithCacheInfo(ctx, platform, opts)
		if err != nil {
			return nil, nil, fmt.Errorf("%s: %w", platform, err)
		}
		hits[platform] = hit
		all = append(all, candidates...)
	}
	return platforms.Dedupe(all), hits, nil
}

// FetchAll is a convenience wrapper that calls FetchAllWithCacheInfo and discards the cache hit info.
func (r *Runner) FetchAll(ctx context.Context, opts Options) ([]platforms.Candidate, error) {
	candidates, _, err := r.FetchAllWithCacheInfo(ctx, opts)
	return candidates, err
}

// ComposeWithCacheInfo composes a board layout with caching and returns cache hit info.
func (r *Runner) ComposeWithCacheInfo(ctx context.Context, trends []board.Trend, opts Options) (board.Layout, bool, error) {
	if err := opts.ValidateForCompose(); err != nil {
		return board.Layout{}, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from the trend content
	trendsData, _ := json.Marshal(trends)
	trendsHash := cache.Hash(trendsData)
	cacheKey := r.Keyer.BoardKey(trendsHash, opts.BoardKeyOpts())

	// Try cache first
	if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
		cached, err := board.UnmarshalLayout(data)
		if err == nil {
			observability.Cache().OnCacheHit(ctx, "board")
			return cached, true, nil // Cache hit
		}
		// If deserialization fails, fall through to recompute
	}
	observability.Cache().OnCacheMiss(ctx, "board")

	// Compose
	start := time.Now()
	observability.Pipeline().OnComposeStart(ctx, opts.Canvas, len(trends))
	layout := board.Compose(trends, opts.ResolveCanvas(), opts.Padding)
	observability.Pipeline().OnComposeComplete(ctx, opts.Canvas, len(layout.Tiles), time.Since(start), nil)

	// Cache the result
	if data, err := board.MarshalLayout(layout); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLBoard)
		observability.Cache().OnCacheSet(ctx, "board", len(data))
	}

	return layout, false, nil // Cache miss
}

// Compose is a convenience wrapper that calls ComposeWithCacheInfo and discards the cache hit info.
func (r *Runner) Compose(ctx context.Context, trends []board.Trend, opts Options) (board.Layout, error) {
	layout, _, err := r.ComposeWithCacheInfo(ctx, trends, opts)
	return layout, err
}

// ExportWithCacheInfo serializes the board with caching and returns cache hit info.
func (r *Runner) ExportWithCacheInfo(ctx context.Context, layout board.Layout, opts Options) (map[string][]byte, bool, error) {
	opts.SetExportDefaults()
	if err := ValidateFormats(opts.Formats); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	// Compute cache key from layout data
	layoutData, err := board.MarshalLayout(layout)
	if err != nil {
		return nil, false, fmt.Errorf("serialize layout for cache key: %w", err)
	}
	layoutHash := cache.Hash(layoutData)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil // All artifacts from cache
	}
	observability.Cache().OnCacheMiss(ctx, "artifact")

	// Export all formats
	rendered := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		start := time.Now()
		observability.Pipeline().OnExportStart(ctx, format)
		data, err := exportFormat(layout, format)
		observability.Pipeline().OnExportComplete(ctx, format, time.Since(start), err)
		if err != nil {
			return nil, false, err
		}
		rendered[format] = data
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(layoutHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil // Cache miss
}

// Export is a convenience wrapper that calls ExportWithCacheInfo and discards the cache hit info.
func (r *Runner) Export(ctx context.Context, layout board.Layout, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.ExportWithCacheInfo(ctx, layout, opts)
	return artifacts, err
}

func exportFormat(layout board.Layout, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return board.MarshalLayout(layout)
	default:
		return nil, errors.New(errors.ErrCodeUnsupported, "invalid format: %q", format)
	}
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
