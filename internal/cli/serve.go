package cli

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/mkessel/trendmap/internal/server"
	"github.com/mkessel/trendmap/pkg/cache"
	"github.com/mkessel/trendmap/pkg/config"
	"github.com/mkessel/trendmap/pkg/pipeline"
)

// serveCommand creates the serve command for running the curation API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		port     int
		allowAll bool
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the curation API server",
		Long: `Run the curation API server.

The server exposes the trend collection, board composition, and platform
fetching over a JSON API for the dashboard frontend. The store backend
(file, redis, or mongo) comes from the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd, port, allowAll, noCache)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8080, "listen port")
	cmd.Flags().BoolVar(&allowAll, "allow-all-origins", false, "allow all CORS origins (dev mode)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable pipeline caching")

	return cmd
}

// runServe starts the API server and blocks until the context is cancelled.
func (c *CLI) runServe(cmd *cobra.Command, port int, allowAll, noCache bool) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	st, err := c.newStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	pipelineCache, err := newServeCache(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(pipelineCache, nil, c.Logger)
	defer runner.Close()

	srv := server.New(server.Config{
		Port:     port,
		AllowAll: allowAll,
	}, st, runner, buildFetchers(cfg), c.Logger)

	printNewline()
	fmt.Println(StyleTitle.Render("Trendmap API"))
	printKeyValue("Address", StyleLink.Render(fmt.Sprintf("http://localhost:%d", port)))
	printKeyValue("Store", cfg.Store.Backend)
	printNewline()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	return waitForShutdown(ctx, srv, errCh, c)
}

// newServeCache picks the pipeline cache for server deployments. With a
// Redis store backend the cache lives in the same Redis instance;
// otherwise the local file cache is used.
func newServeCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if cfg.Store.Backend == config.BackendRedis {
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Store.Redis.Addr,
			Password: cfg.Store.Redis.Password,
			DB:       cfg.Store.Redis.DB,
		})
	}
	return newCache(false)
}

// waitForShutdown blocks until the server fails or the context is cancelled.
func waitForShutdown(ctx context.Context, srv *server.Server, errCh <-chan error, c *CLI) error {
	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		c.Logger.Info("server stopped")
		return nil
	}
}
