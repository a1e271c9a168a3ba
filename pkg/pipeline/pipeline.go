// Package pipeline provides the core board pipeline for Trendmap.
//
// This package implements the complete fetch → curate → compose → export
// pipeline that can be used by CLI, API, and worker components. By
// centralizing this logic, we ensure consistent behavior across all entry
// points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Fetch: Pull trend candidates from platform APIs
//  2. Curate: Score candidates and apply the watchlist filter
//  3. Compose: Lay the curated trends out on a canvas
//  4. Export: Serialize the board layout (JSON)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Platforms: []string{"spotify", "youtube"},
//	    Canvas:    "feed",
//	    Fetchers:  fetchers,
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	artifact := result.Artifacts["json"]
//
// Run individual stages:
//
//	// Fetch only
//	candidates, err := runner.FetchAll(ctx, opts)
//
//	// Compose with existing trends
//	layout, err := runner.Compose(ctx, trends, opts)
package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/cache"
	"github.com/mkessel/trendmap/pkg/errors"
	"github.com/mkessel/trendmap/pkg/platforms"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultCanvas is the default canvas preset.
	DefaultCanvas = board.CanvasFeed

	// DefaultLimit is the default number of candidates fetched per platform.
	DefaultLimit = 25

	// DefaultRegion is the default chart region.
	DefaultRegion = "US"
)

// Format constants for export formats.
const (
	FormatJSON = "json"
)

// ValidFormats is the set of supported export formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
}

// Platform name constants.
const (
	PlatformSpotify   = "spotify"
	PlatformYouTube   = "youtube"
	PlatformLastFM    = "lastfm"
	PlatformTikTok    = "tiktok"
	PlatformInstagram = "instagram"
	PlatformGTrends   = "gtrends"
)

// ValidPlatforms is the set of supported platform names.
var ValidPlatforms = map[string]bool{
	PlatformSpotify:   true,
	PlatformYouTube:   true,
	PlatformLastFM:    true,
	PlatformTikTok:    true,
	PlatformInstagram: true,
	PlatformGTrends:   true,
}

// Fetcher pulls trend candidates from one platform. The refresh flag
// asks the underlying client to bypass its own HTTP cache.
type Fetcher func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the board pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Fetch options
	Platforms []string `json:"platforms"`
	Region    string   `json:"region,omitempty"`
	Limit     int      `json:"limit,omitempty"`
	Refresh   bool     `json:"refresh,omitempty"`

	// Curate options
	Keywords      []string `json:"keywords,omitempty"`       // watchlist keywords
	WatchlistOnly bool     `json:"watchlist_only,omitempty"` // drop candidates off the watchlist

	// Compose options
	Canvas  string  `json:"canvas,omitempty"`
	Padding float64 `json:"padding,omitempty"` // 0 means the canvas default

	// Export options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-"`
	Fetchers map[string]Fetcher `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Candidates are the raw fetched candidates, after deduplication.
	Candidates []platforms.Candidate

	// Trends are the curated trends that went onto the board.
	Trends []board.Trend

	// TrendsHash is the content hash of the curated trends.
	TrendsHash string

	// Layout is the composed board.
	Layout board.Layout

	// Artifacts contains exported outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CandidateCount int
	TrendCount     int
	TileCount      int
	FetchTime      time.Duration
	ComposeTime    time.Duration
	ExportTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHits  map[string]bool // Per-platform candidate cache hits
	ComposeHit bool            // Whether the board layout came from cache
	ExportHit  bool            // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that an export format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeUnsupported, "invalid format: %q (must be: json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidatePlatform checks that a platform name is valid.
func ValidatePlatform(platform string) error {
	if !ValidPlatforms[platform] {
		return errors.New(errors.ErrCodeInvalidPlatform,
			"unknown platform: %q (must be one of: spotify, youtube, lastfm, tiktok, instagram, gtrends)", platform)
	}
	return nil
}

// ValidateCanvas checks that a canvas preset name is valid.
func ValidateCanvas(canvas string) error {
	if !board.ValidCanvases[canvas] {
		return errors.New(errors.ErrCodeInvalidCanvas, "unknown canvas: %q (must be one of: feed, story)", canvas)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if err := o.ValidateForCompose(); err != nil {
		return err
	}
	o.SetExportDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks required fields for fetching.
func (o *Options) ValidateForFetch() error {
	if len(o.Platforms) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "at least one platform is required")
	}
	for _, p := range o.Platforms {
		if err := ValidatePlatform(p); err != nil {
			return err
		}
	}

	// Fetch defaults
	if o.Region == "" {
		o.Region = DefaultRegion
	}
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	return nil
}

// SetComposeDefaults sets default values for board composition.
func (o *Options) SetComposeDefaults() {
	if o.Canvas == "" {
		o.Canvas = DefaultCanvas
	}
	if o.Padding == 0 {
		o.Padding = board.DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForCompose validates and sets defaults for board composition.
func (o *Options) ValidateForCompose() error {
	o.SetComposeDefaults()
	return ValidateCanvas(o.Canvas)
}

// SetExportDefaults sets default values for exporting.
func (o *Options) SetExportDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ResolveCanvas returns the configured canvas preset.
func (o *Options) ResolveCanvas() board.Canvas {
	if c, ok := board.CanvasByName(o.Canvas); ok {
		return c
	}
	return board.Feed
}

// CandidateKeyOpts returns cache key options for candidate fetching.
func (o *Options) CandidateKeyOpts() cache.CandidateKeyOpts {
	return cache.CandidateKeyOpts{
		Region: o.Region,
		Limit:  o.Limit,
	}
}

// BoardKeyOpts returns cache key options for board composition.
func (o *Options) BoardKeyOpts() cache.BoardKeyOpts {
	return cache.BoardKeyOpts{
		Canvas:  o.Canvas,
		Padding: o.Padding,
	}
}

// ArtifactKeyOpts returns cache key options for artifact export.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: format,
	}
}
