package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkessel/trendmap/pkg/board"
	trendio "github.com/mkessel/trendmap/pkg/io"
	"github.com/mkessel/trendmap/pkg/pipeline"
)

// fetchCommand creates the fetch command for pulling platform candidates.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		region        string
		limit         int
		refresh       bool
		noCache       bool
		watchlistOnly bool
		replace       bool
		output        string
	)

	cmd := &cobra.Command{
		Use:   "fetch [platforms]",
		Short: "Pull trend candidates from platform APIs",
		Long: `Pull trend candidates from platform APIs.

Platforms are given as a comma-separated list (spotify, youtube, lastfm,
tiktok, instagram, gtrends). Without arguments, every platform with
configured credentials is fetched.

Fetched candidates are deduplicated, matched against the watchlist, and
scored into curated trends. Use --replace to make the result the new
working set, or -o to write it to a JSON file instead.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFetch(cmd, args, fetchFlags{
				region:        region,
				limit:         limit,
				refresh:       refresh,
				noCache:       noCache,
				watchlistOnly: watchlistOnly,
				replace:       replace,
				output:        output,
			})
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "chart region code (default from config)")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "candidates per platform (default from config)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass caches and hit the platform APIs")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&watchlistOnly, "watchlist-only", false, "keep only candidates on the watchlist")
	cmd.Flags().BoolVar(&replace, "replace", false, "replace the stored working set with the result")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write curated trends to a JSON file")

	return cmd
}

type fetchFlags struct {
	region        string
	limit         int
	refresh       bool
	noCache       bool
	watchlistOnly bool
	replace       bool
	output        string
}

// runFetch fetches candidates, curates them, and stores or writes the result.
func (c *CLI) runFetch(cmd *cobra.Command, args []string, flags fetchFlags) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	opts := c.pipelineOptions(cfg)
	opts.Platforms = parsePlatforms(args, opts.Fetchers)
	opts.Refresh = flags.refresh
	opts.WatchlistOnly = flags.watchlistOnly
	if flags.region != "" {
		opts.Region = flags.region
	}
	if flags.limit > 0 {
		opts.Limit = flags.limit
	}
	if len(opts.Platforms) == 0 {
		printWarning("No platforms configured")
		printDetail("Add credentials to your config file to enable platforms")
		return nil
	}

	runner, err := c.newRunner(flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Fetching from %s...", summarizePlatforms(opts.Platforms)))
	spinner.Start()

	candidates, hits, err := runner.FetchAllWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch candidates: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	trends := pipeline.Curate(candidates, opts)

	if flags.replace {
		if err := c.replaceTrends(cmd, trends); err != nil {
			return err
		}
	}
	if flags.output != "" {
		if err := trendio.ExportJSON(trends, flags.output); err != nil {
			return fmt.Errorf("write output %s: %w", flags.output, err)
		}
		printFile(flags.output)
	}

	allCached := len(hits) > 0
	for _, hit := range hits {
		if !hit {
			allCached = false
		}
	}

	printSuccess("Fetched %d candidates, curated %d trends", len(candidates), len(trends))
	printStats(len(trends), 0, allCached)
	printNewline()
	printNextStep("Compose", "trendmap layout")

	return nil
}

// replaceTrends swaps the stored working set for the curated result.
func (c *CLI) replaceTrends(cmd *cobra.Command, trends []board.Trend) error {
	st, err := c.newStore(cmd)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	if err := st.ReplaceTrends(cmd.Context(), trends); err != nil {
		return fmt.Errorf("replace trends: %w", err)
	}
	printInfo("Replaced working set with %d trends", len(trends))
	return nil
}
