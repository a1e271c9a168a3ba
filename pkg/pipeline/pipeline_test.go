package pipeline

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/cache"
	"github.com/mkessel/trendmap/pkg/errors"
	"github.com/mkessel/trendmap/pkg/platforms"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{})
}

func stubFetcher(candidates []platforms.Candidate, calls *int) Fetcher {
	return func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
		if calls != nil {
			*calls++
		}
		return candidates, nil
	}
}

func sampleCandidates() []platforms.Candidate {
	return []platforms.Candidate{
		{Name: "amapiano", Source: "spotify", Metrics: board.Metrics{Plays: 5_000_000}},
		{Name: "jersey club", Source: "spotify", Metrics: board.Metrics{Plays: 2_000_000}},
		{Name: "Amapiano", Source: "spotify", Metrics: board.Metrics{Plays: 100}}, // duplicate
	}
}

// =============================================================================
// Validation Tests
// =============================================================================

func TestValidatePlatform(t *testing.T) {
	tests := []struct {
		platform string
		wantErr  bool
	}{
		{"spotify", false},
		{"youtube", false},
		{"lastfm", false},
		{"tiktok", false},
		{"instagram", false},
		{"gtrends", false},
		{"myspace", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.platform, func(t *testing.T) {
			err := ValidatePlatform(tt.platform)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePlatform(%q) error = %v, wantErr %v", tt.platform, err, tt.wantErr)
			}
			if tt.wantErr && errors.GetCode(err) != errors.ErrCodeInvalidPlatform {
				t.Errorf("expected INVALID_PLATFORM code, got %s", errors.GetCode(err))
			}
		})
	}
}

func TestValidateFormat(t *testing.T) {
	if err := ValidateFormat("json"); err != nil {
		t.Errorf("json should be valid: %v", err)
	}
	if err := ValidateFormat("png"); err == nil {
		t.Error("png should be invalid")
	} else if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("expected UNSUPPORTED code, got %s", errors.GetCode(err))
	}
}

func TestOptions_ValidateAndSetDefaults(t *testing.T) {
	opts := Options{Platforms: []string{"spotify"}}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}

	if opts.Region != DefaultRegion {
		t.Errorf("Region = %q, want %q", opts.Region, DefaultRegion)
	}
	if opts.Limit != DefaultLimit {
		t.Errorf("Limit = %d, want %d", opts.Limit, DefaultLimit)
	}
	if opts.Canvas != DefaultCanvas {
		t.Errorf("Canvas = %q, want %q", opts.Canvas, DefaultCanvas)
	}
	if opts.Padding != board.DefaultPadding {
		t.Errorf("Padding = %v, want %v", opts.Padding, board.DefaultPadding)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
		t.Errorf("Formats = %v, want [json]", opts.Formats)
	}

	// Idempotent
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Errorf("second call should succeed: %v", err)
	}
}

func TestOptions_ValidateAndSetDefaults_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"no platforms", Options{}, errors.ErrCodeInvalidInput},
		{"bad platform", Options{Platforms: []string{"myspace"}}, errors.ErrCodeInvalidPlatform},
		{"bad canvas", Options{Platforms: []string{"spotify"}, Canvas: "billboard"}, errors.ErrCodeInvalidCanvas},
		{"bad format", Options{Platforms: []string{"spotify"}, Formats: []string{"png"}}, errors.ErrCodeUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if err == nil {
				t.Fatal("expected error")
			}
			if errors.GetCode(err) != tt.code {
				t.Errorf("code = %s, want %s", errors.GetCode(err), tt.code)
			}
		})
	}
}

// =============================================================================
// Curate Tests
// =============================================================================

func TestCurate_Dedupes(t *testing.T) {
	trends := Curate(sampleCandidates(), Options{})
	if len(trends) != 2 {
		t.Fatalf("expected 2 trends after dedup, got %d", len(trends))
	}
	if trends[0].Name != "amapiano" || trends[1].Name != "jersey club" {
		t.Errorf("unexpected trend order: %+v", trends)
	}
	for _, tr := range trends {
		if tr.ID == "" {
			t.Errorf("trend %q missing ID", tr.Name)
		}
		if tr.Size <= 0 {
			t.Errorf("trend %q has non-positive size %v", tr.Name, tr.Size)
		}
	}
}

func TestCurate_WatchlistTagsMatches(t *testing.T) {
	opts := Options{Keywords: []string{"amapiano"}}
	trends := Curate(sampleCandidates(), opts)
	if len(trends) != 2 {
		t.Fatalf("expected 2 trends, got %d", len(trends))
	}
	if trends[0].Category != WatchlistCategory {
		t.Errorf("matched trend category = %q, want %q", trends[0].Category, WatchlistCategory)
	}
	if trends[1].Category != "" {
		t.Errorf("unmatched trend should keep empty category, got %q", trends[1].Category)
	}
}

func TestCurate_WatchlistOnly(t *testing.T) {
	opts := Options{Keywords: []string{"amapiano"}, WatchlistOnly: true}
	trends := Curate(sampleCandidates(), opts)
	if len(trends) != 1 {
		t.Fatalf("expected 1 trend, got %d", len(trends))
	}
	if trends[0].Name != "amapiano" {
		t.Errorf("unexpected survivor: %q", trends[0].Name)
	}
}

func TestCurate_KeepsPlatformCategory(t *testing.T) {
	candidates := []platforms.Candidate{
		{Name: "amapiano", Category: "music", Source: "spotify", Size: 50},
	}
	trends := Curate(candidates, Options{Keywords: []string{"amapiano"}})
	if trends[0].Category != "music" {
		t.Errorf("platform category should win, got %q", trends[0].Category)
	}
}

// =============================================================================
// Runner Tests
// =============================================================================

func TestRunner_Execute(t *testing.T) {
	var calls int
	runner := NewRunner(cache.NewNullCache(), nil, quietLogger())
	defer runner.Close()

	opts := Options{
		Platforms: []string{"spotify"},
		Fetchers:  map[string]Fetcher{"spotify": stubFetcher(sampleCandidates(), &calls)},
		Logger:    quietLogger(),
	}

	result, err := runner.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if calls != 1 {
		t.Errorf("fetcher called %d times, want 1", calls)
	}
	if result.Stats.CandidateCount != 2 {
		t.Errorf("CandidateCount = %d, want 2", result.Stats.CandidateCount)
	}
	if result.Stats.TrendCount != 2 {
		t.Errorf("TrendCount = %d, want 2", result.Stats.TrendCount)
	}
	if result.Stats.TileCount != 2 {
		t.Errorf("TileCount = %d, want 2", result.Stats.TileCount)
	}
	if len(result.TrendsHash) != 64 {
		t.Errorf("TrendsHash length = %d, want 64", len(result.TrendsHash))
	}
	if len(result.Artifacts[FormatJSON]) == 0 {
		t.Error("expected json artifact")
	}
	if result.CacheInfo.FetchHits["spotify"] {
		t.Error("first run should not hit the fetch cache")
	}
}

func TestRunner_FetchWithCacheInfo(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, quietLogger())
	defer runner.Close()

	var calls int
	opts := Options{
		Platforms: []string{"spotify"},
		Fetchers:  map[string]Fetcher{"spotify": stubFetcher(sampleCandidates(), &calls)},
		Logger:    quietLogger(),
	}

	// First call hits the platform
	candidates, hit, err := runner.FetchWithCacheInfo(context.Background(), "spotify", opts)
	if err != nil {
		t.Fatalf("FetchWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first fetch should be a cache miss")
	}
	if len(candidates) != 3 {
		t.Errorf("expected 3 raw candidates, got %d", len(candidates))
	}

	// Second call is served from cache
	_, hit, err = runner.FetchWithCacheInfo(context.Background(), "spotify", opts)
	if err != nil {
		t.Fatalf("FetchWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second fetch should be a cache hit")
	}
	if calls != 1 {
		t.Errorf("fetcher called %d times, want 1", calls)
	}

	// Refresh bypasses the cache
	opts.Refresh = true
	_, hit, err = runner.FetchWithCacheInfo(context.Background(), "spotify", opts)
	if err != nil {
		t.Fatalf("FetchWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("refresh should bypass the cache")
	}
	if calls != 2 {
		t.Errorf("fetcher called %d times, want 2", calls)
	}
}

func TestRunner_FetchUnconfiguredPlatform(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	opts := Options{
		Platforms: []string{"spotify"},
		Fetchers:  map[string]Fetcher{},
		Logger:    quietLogger(),
	}

	_, _, err := runner.FetchWithCacheInfo(context.Background(), "spotify", opts)
	if err == nil {
		t.Fatal("expected error for unconfigured platform")
	}
	if errors.GetCode(err) != errors.ErrCodeMissingCreds {
		t.Errorf("code = %s, want MISSING_CREDENTIALS", errors.GetCode(err))
	}
}

func TestRunner_ComposeWithCacheInfo(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, quietLogger())
	defer runner.Close()

	trends := []board.Trend{
		{ID: "t1", Name: "amapiano", Size: 60},
		{ID: "t2", Name: "jersey club", Size: 40},
	}
	opts := Options{Logger: quietLogger()}

	layout, hit, err := runner.ComposeWithCacheInfo(context.Background(), trends, opts)
	if err != nil {
		t.Fatalf("ComposeWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first compose should be a cache miss")
	}
	if len(layout.Tiles) != 2 {
		t.Errorf("expected 2 tiles, got %d", len(layout.Tiles))
	}

	cached, hit, err := runner.ComposeWithCacheInfo(context.Background(), trends, opts)
	if err != nil {
		t.Fatalf("ComposeWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second compose should be a cache hit")
	}
	if len(cached.Tiles) != len(layout.Tiles) {
		t.Errorf("cached layout has %d tiles, want %d", len(cached.Tiles), len(layout.Tiles))
	}

	// Different canvas, different key
	opts.Canvas = board.CanvasStory
	_, hit, err = runner.ComposeWithCacheInfo(context.Background(), trends, opts)
	if err != nil {
		t.Fatalf("ComposeWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("different canvas should not hit the cache")
	}
}

func TestRunner_ExportWithCacheInfo(t *testing.T) {
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, quietLogger())
	defer runner.Close()

	trends := []board.Trend{{ID: "t1", Name: "amapiano", Size: 60}}
	layout := board.Compose(trends, board.Feed, board.DefaultPadding)
	opts := Options{Logger: quietLogger()}

	artifacts, hit, err := runner.ExportWithCacheInfo(context.Background(), layout, opts)
	if err != nil {
		t.Fatalf("ExportWithCacheInfo: %v", err)
	}
	if hit {
		t.Error("first export should be a cache miss")
	}
	data := artifacts[FormatJSON]
	if len(data) == 0 {
		t.Fatal("expected json artifact")
	}

	parsed, err := board.UnmarshalLayout(data)
	if err != nil {
		t.Fatalf("artifact is not a valid layout: %v", err)
	}
	if len(parsed.Tiles) != len(layout.Tiles) {
		t.Errorf("artifact has %d tiles, want %d", len(parsed.Tiles), len(layout.Tiles))
	}

	_, hit, err = runner.ExportWithCacheInfo(context.Background(), layout, opts)
	if err != nil {
		t.Fatalf("ExportWithCacheInfo: %v", err)
	}
	if !hit {
		t.Error("second export should be a cache hit")
	}
}

func TestRunner_ExportInvalidFormat(t *testing.T) {
	runner := NewRunner(nil, nil, quietLogger())
	opts := Options{Formats: []string{"png"}, Logger: quietLogger()}

	_, _, err := runner.ExportWithCacheInfo(context.Background(), board.Layout{}, opts)
	if err == nil {
		t.Fatal("expected error for invalid format")
	}
	if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("code = %s, want UNSUPPORTED", errors.GetCode(err))
	}
}
