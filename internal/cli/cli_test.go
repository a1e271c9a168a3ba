package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/mkessel/trendmap/pkg/config"
	"github.com/mkessel/trendmap/pkg/pipeline"
	"github.com/mkessel/trendmap/pkg/platforms"
)

func TestRootCommandRegistersSubcommands(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)
	root := c.RootCommand()

	want := []string{"fetch", "trends", "layout", "serve", "cache", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command missing subcommand %q", name)
		}
	}
}

func TestParsePlatforms(t *testing.T) {
	stub := func(ctx context.Context, region string, limit int, refresh bool) ([]platforms.Candidate, error) {
		return nil, nil
	}
	fetchers := map[string]pipeline.Fetcher{
		pipeline.PlatformSpotify: stub,
		pipeline.PlatformLastFM:  stub,
	}

	tests := []struct {
		name string
		args []string
		want []string
	}{
		{"explicit single", []string{"spotify"}, []string{"spotify"}},
		{"explicit list", []string{"spotify,youtube"}, []string{"spotify", "youtube"}},
		{"list with spaces", []string{"spotify, youtube"}, []string{"spotify", "youtube"}},
		{"defaults to configured", nil, []string{"spotify", "lastfm"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parsePlatforms(tt.args, fetchers)
			if len(got) != len(tt.want) {
				t.Fatalf("parsePlatforms() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parsePlatforms()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuildFetchers(t *testing.T) {
	cfg, err := config.Load("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Defaults carry no credentials except the gtrends base URL.
	fetchers := buildFetchers(cfg)
	if _, ok := fetchers[pipeline.PlatformSpotify]; ok {
		t.Error("spotify should not be configured without a token")
	}
	if _, ok := fetchers[pipeline.PlatformGTrends]; !ok {
		t.Error("gtrends should be configured by default")
	}

	cfg.Spotify.Token = "token"
	cfg.YouTube.APIKey = "key"
	cfg.LastFM.APIKey = "key"
	cfg.RapidAPI.Key = "key"

	fetchers = buildFetchers(cfg)
	for _, p := range []string{
		pipeline.PlatformSpotify, pipeline.PlatformYouTube, pipeline.PlatformLastFM,
		pipeline.PlatformTikTok, pipeline.PlatformInstagram, pipeline.PlatformGTrends,
	} {
		if _, ok := fetchers[p]; !ok {
			t.Errorf("platform %q should be configured", p)
		}
	}
}

func TestPipelineOptionsFromConfig(t *testing.T) {
	var buf bytes.Buffer
	c := New(&buf, log.InfoLevel)

	cfg, err := config.Load("/nonexistent/config.toml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.Watchlist.Keywords = []string{"amapiano"}

	opts := c.pipelineOptions(cfg)
	if opts.Canvas != "feed" {
		t.Errorf("Canvas = %q, want feed", opts.Canvas)
	}
	if opts.Region != "US" {
		t.Errorf("Region = %q, want US", opts.Region)
	}
	if opts.Limit != 25 {
		t.Errorf("Limit = %d, want 25", opts.Limit)
	}
	if len(opts.Keywords) != 1 || opts.Keywords[0] != "amapiano" {
		t.Errorf("Keywords = %v, want [amapiano]", opts.Keywords)
	}
	if opts.Logger == nil {
		t.Error("Logger should be set")
	}
}
