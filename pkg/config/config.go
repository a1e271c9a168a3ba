// Package config loads trendmap settings and platform credentials from
// a TOML file.
//
// The default location is ~/.config/trendmap/config.toml. A missing
// file is not an error; every field has a usable default so the CLI
// works out of the box and platform sections only matter once their
// credentials are filled in.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/errors"
)

// Store backend names.
const (
	BackendFile  = "file"
	BackendRedis = "redis"
	BackendMongo = "mongo"
)

// Config holds all trendmap settings.
type Config struct {
	Board     Board     `toml:"board"`
	Store     Stores    `toml:"store"`
	Watchlist Watchlist `toml:"watchlist"`

	Spotify  Spotify  `toml:"spotify"`
	YouTube  YouTube  `toml:"youtube"`
	LastFM   LastFM   `toml:"lastfm"`
	RapidAPI RapidAPI `toml:"rapidapi"`
	GTrends  GTrends  `toml:"gtrends"`
}

// Board holds compose defaults.
type Board struct {
	Canvas  string  `toml:"canvas"`  // preset name, "feed" or "story"
	Padding float64 `toml:"padding"` // tile gutter in pixels
}

// Stores selects and configures the curation backend.
type Stores struct {
	Backend string `toml:"backend"` // "file", "redis", or "mongo"
	Dir     string `toml:"dir"`     // file backend directory ("" = default)

	Redis Redis `toml:"redis"`
	Mongo Mongo `toml:"mongo"`
}

// Redis holds redis backend settings.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Mongo holds mongo backend settings.
type Mongo struct {
	URI      string `toml:"uri"`
	Database string `toml:"database"`
}

// Watchlist holds curator keywords for flagging fetched candidates.
type Watchlist struct {
	Keywords []string `toml:"keywords"`
}

// Spotify holds Spotify Web API credentials.
type Spotify struct {
	Token string `toml:"token"` // bearer token with playlist-read scope
}

// YouTube holds YouTube Data API settings.
type YouTube struct {
	APIKey string `toml:"api_key"`
	Region string `toml:"region"`
	Limit  int    `toml:"limit"`
}

// LastFM holds Last.fm API credentials.
type LastFM struct {
	APIKey string `toml:"api_key"`
}

// RapidAPI holds the shared marketplace key used by the TikTok and
// Instagram clients.
type RapidAPI struct {
	Key string `toml:"key"`
}

// GTrends points at the Google Trends scraping server.
type GTrends struct {
	BaseURL string `toml:"base_url"`
	Geo     string `toml:"geo"`
}

// DefaultPath returns the default config file location
// (~/.config/trendmap/config.toml).
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "trendmap", "config.toml"), nil
}

// Load reads the config file at path, or the default location when
// path is empty. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return nil, err
		}
	}

	cfg := defaults()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the settings that have a closed value set.
func (c *Config) Validate() error {
	if !board.ValidCanvases[c.Board.Canvas] {
		return errors.New(errors.ErrCodeInvalidCanvas, "unknown canvas %q (valid: feed, story)", c.Board.Canvas)
	}
	if c.Board.Padding < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "padding must not be negative")
	}
	switch c.Store.Backend {
	case BackendFile, BackendRedis, BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q (valid: file, redis, mongo)", c.Store.Backend)
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Board: Board{
			Canvas:  board.CanvasFeed,
			Padding: board.DefaultPadding,
		},
		Store: Stores{
			Backend: BackendFile,
			Redis:   Redis{Addr: "localhost:6379"},
			Mongo:   Mongo{URI: "mongodb://localhost:27017", Database: "trendmap"},
		},
		YouTube: YouTube{Region: "US", Limit: 25},
		GTrends: GTrends{BaseURL: "http://localhost:8090", Geo: "US"},
	}
}
