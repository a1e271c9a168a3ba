package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mkessel/trendmap/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.Canvas != "feed" {
		t.Errorf("default canvas = %q, want feed", cfg.Board.Canvas)
	}
	if cfg.Board.Padding != 3 {
		t.Errorf("default padding = %v, want 3", cfg.Board.Padding)
	}
	if cfg.Store.Backend != BackendFile {
		t.Errorf("default backend = %q, want file", cfg.Store.Backend)
	}
	if cfg.YouTube.Region != "US" || cfg.YouTube.Limit != 25 {
		t.Errorf("unexpected youtube defaults %+v", cfg.YouTube)
	}
}

func TestLoad_ParsesSettings(t *testing.T) {
	path := writeConfig(t, `
[board]
canvas = "story"
padding = 6.0

[store]
backend = "redis"

[store.redis]
addr = "redis.internal:6379"
db = 2

[spotify]
token = "abc123"

[watchlist]
keywords = ["amapiano", "jersey club"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.Canvas != "story" || cfg.Board.Padding != 6 {
		t.Errorf("unexpected board settings %+v", cfg.Board)
	}
	if cfg.Store.Backend != BackendRedis {
		t.Errorf("backend = %q, want redis", cfg.Store.Backend)
	}
	if cfg.Store.Redis.Addr != "redis.internal:6379" || cfg.Store.Redis.DB != 2 {
		t.Errorf("unexpected redis settings %+v", cfg.Store.Redis)
	}
	if cfg.Spotify.Token != "abc123" {
		t.Errorf("spotify token = %q", cfg.Spotify.Token)
	}
	if len(cfg.Watchlist.Keywords) != 2 {
		t.Errorf("watchlist keywords = %v", cfg.Watchlist.Keywords)
	}
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[spotify]
token = "abc123"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Board.Canvas != "feed" {
		t.Errorf("partial config should keep default canvas, got %q", cfg.Board.Canvas)
	}
	if cfg.GTrends.BaseURL != "http://localhost:8090" {
		t.Errorf("partial config should keep default gtrends url, got %q", cfg.GTrends.BaseURL)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		wantCode errors.Code
	}{
		{
			"bad canvas",
			"[board]\ncanvas = \"square\"\n",
			errors.ErrCodeInvalidCanvas,
		},
		{
			"negative padding",
			"[board]\ncanvas = \"feed\"\npadding = -1.0\n",
			errors.ErrCodeInvalidConfig,
		},
		{
			"bad backend",
			"[store]\nbackend = \"dynamo\"\n",
			errors.ErrCodeInvalidConfig,
		},
		{
			"malformed toml",
			"[board\ncanvas=",
			errors.ErrCodeInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("code = %v, want %v", got, tt.wantCode)
			}
		})
	}
}
