// Package cli implements the trendmap command-line interface.
//
// This package provides commands for fetching trend candidates from
// platform APIs, managing the curated working set, composing board
// layouts, serving the curation API, and managing the local caches.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - fetch: Pull trend candidates from one or more platforms
//   - trends: Manage the curated trend collection
//   - layout: Compose a board layout from the stored trends
//   - serve: Run the curation API server
//   - cache: Manage the local response caches
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/mkessel/trendmap/pkg/buildinfo"
	"github.com/mkessel/trendmap/pkg/cache"
	"github.com/mkessel/trendmap/pkg/config"
	"github.com/mkessel/trendmap/pkg/pipeline"
	"github.com/mkessel/trendmap/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "trendmap"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Trendmap composes trend heatmap boards",
		Long:         `Trendmap pulls trending songs, videos, and hashtags from platform APIs, lets curators manage the working set, and composes squarified heatmap boards ready for posting.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/trendmap/config.toml)")

	// Register all subcommands
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.trendsCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config
// =============================================================================

// loadConfig reads the config file once and memoizes it.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner and Store Factories
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(noCache bool) (*pipeline.Runner, error) {
	cache, err := newCache(noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, nil, c.Logger), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(filepath.Join(dir, "pipeline"))
}

// newStore opens the curation store selected by the config.
func (c *CLI) newStore(cmd *cobra.Command) (store.Store, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case config.BackendRedis:
		return store.NewRedisStore(cmd.Context(), store.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
	case config.BackendMongo:
		return store.NewMongoStore(cmd.Context(), store.MongoConfig{
			URI:      cfg.Store.Mongo.URI,
			Database: cfg.Store.Mongo.Database,
		})
	default:
		return store.NewFileStore(cfg.Store.Dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/trendmap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// pipelineOptions builds pipeline options from the config and registers
// the configured platform fetchers.
func (c *CLI) pipelineOptions(cfg *config.Config) pipeline.Options {
	opts := pipeline.Options{
		Region:   cfg.YouTube.Region,
		Limit:    cfg.YouTube.Limit,
		Keywords: cfg.Watchlist.Keywords,
		Canvas:   cfg.Board.Canvas,
		Padding:  cfg.Board.Padding,
		Logger:   c.Logger,
		Fetchers: buildFetchers(cfg),
	}
	return opts
}

// parsePlatforms parses a comma-separated platform list, defaulting to
// every platform with configured credentials.
func parsePlatforms(args []string, fetchers map[string]pipeline.Fetcher) []string {
	if len(args) > 0 {
		var out []string
		for _, a := range args {
			for _, p := range strings.Split(a, ",") {
				if p = strings.TrimSpace(p); p != "" {
					out = append(out, p)
				}
			}
		}
		return out
	}
	var out []string
	for _, p := range []string{
		pipeline.PlatformSpotify, pipeline.PlatformYouTube, pipeline.PlatformLastFM,
		pipeline.PlatformTikTok, pipeline.PlatformInstagram, pipeline.PlatformGTrends,
	} {
		if _, ok := fetchers[p]; ok {
			out = append(out, p)
		}
	}
	return out
}

// summarizePlatforms formats a platform list for status output.
func summarizePlatforms(platforms []string) string {
	if len(platforms) == 0 {
		return "none"
	}
	return strings.Join(platforms, ", ")
}
