package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkessel/trendmap/pkg/board"
	trendio "github.com/mkessel/trendmap/pkg/io"
)

// layoutCommand creates the layout command for composing boards.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		canvas  string
		padding float64
		input   string
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compose a board layout from the curated trends",
		Long: `Compose a board layout from the curated trends.

The layout command reads the stored working set (or a trends JSON file
via --input), groups trends into category bands, and places the tiles
with the squarified treemap engine. The output is a layout.json that a
renderer turns into the final image.

Results are cached locally for faster subsequent runs.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd, canvas, padding, input, output, noCache)
		},
	}

	cmd.Flags().StringVarP(&canvas, "canvas", "t", "", "canvas preset: feed (default), story")
	cmd.Flags().Float64Var(&padding, "padding", 0, "tile gutter in pixels (default from config)")
	cmd.Flags().StringVarP(&input, "input", "i", "", "trends JSON file (default: stored working set)")
	cmd.Flags().StringVarP(&output, "output", "o", "layout.json", "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runLayout loads the trends, composes the board, and writes output.
func (c *CLI) runLayout(cmd *cobra.Command, canvas string, padding float64, input, output string, noCache bool) error {
	ctx := cmd.Context()

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	var trends []board.Trend
	if input != "" {
		trends, err = trendio.ImportJSON(input)
		if err != nil {
			return fmt.Errorf("load trends %s: %w", input, err)
		}
	} else {
		st, err := c.newStore(cmd)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()
		trends, err = st.ListTrends(ctx)
		if err != nil {
			return fmt.Errorf("list trends: %w", err)
		}
	}
	if len(trends) == 0 {
		printWarning("No trends to compose")
		printNextStep("Fetch", "trendmap fetch --replace")
		return nil
	}

	opts := c.pipelineOptions(cfg)
	if canvas != "" {
		opts.Canvas = canvas
	}
	if padding > 0 {
		opts.Padding = padding
	}

	runner, err := c.newRunner(noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Composing %s board...", opts.Canvas))
	spinner.Start()

	layout, cacheHit, err := runner.ComposeWithCacheInfo(ctx, trends, opts)
	if err != nil {
		spinner.StopWithError("Compose failed")
		return fmt.Errorf("compose board: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := board.WriteLayoutFile(layout, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Board composed")
	printFile(output)
	printStats(len(trends), len(layout.Tiles), cacheHit)

	return nil
}
