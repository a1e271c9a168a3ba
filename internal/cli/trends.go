package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mkessel/trendmap/pkg/board"
	"github.com/mkessel/trendmap/pkg/errors"
	trendio "github.com/mkessel/trendmap/pkg/io"
)

// trendsCommand creates the trends command for managing the working set.
func (c *CLI) trendsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Manage the curated trend collection",
	}

	cmd.AddCommand(c.trendsListCommand())
	cmd.AddCommand(c.trendsAddCommand())
	cmd.AddCommand(c.trendsRemoveCommand())
	cmd.AddCommand(c.trendsExportCommand())
	cmd.AddCommand(c.trendsImportCommand())

	return cmd
}

// trendsListCommand creates the "trends list" subcommand.
func (c *CLI) trendsListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored trends",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			trends, err := st.ListTrends(cmd.Context())
			if err != nil {
				return fmt.Errorf("list trends: %w", err)
			}
			if len(trends) == 0 {
				printInfo("No trends stored")
				printNextStep("Fetch", "trendmap fetch --replace")
				return nil
			}

			for _, t := range trends {
				name := StyleHighlight.Render(fmt.Sprintf("%-32s", t.Name))
				printKeyValue(t.DisplayCategory(), fmt.Sprintf("%s %6.1f  %s", name, t.Size, StyleDim.Render(t.ID)))
			}
			printNewline()
			printDetail("%d trends", len(trends))
			return nil
		},
	}
}

// trendsAddCommand creates the "trends add" subcommand.
func (c *CLI) trendsAddCommand() *cobra.Command {
	var (
		category string
		size     float64
		color    string
	)

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a trend to the working set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			trend := board.Trend{
				Name:     args[0],
				Category: category,
				Size:     size,
				Color:    color,
			}
			if err := errors.ValidateTrendName(trend.Name); err != nil {
				return err
			}
			if err := errors.ValidateTrendSize(trend.Size); err != nil {
				return err
			}
			if err := errors.ValidateCategory(trend.Category); err != nil {
				return err
			}
			if err := errors.ValidateHexColor(trend.Color); err != nil {
				return err
			}

			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := st.SaveTrend(cmd.Context(), &trend); err != nil {
				return fmt.Errorf("save trend: %w", err)
			}
			printSuccess("Added %q", trend.Name)
			printDetail("ID: %s", trend.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "category slug (e.g. music)")
	cmd.Flags().Float64VarP(&size, "size", "s", 10, "layout weight")
	cmd.Flags().StringVar(&color, "color", "", "hex tile color (e.g. #e63946)")

	return cmd
}

// trendsRemoveCommand creates the "trends rm" subcommand.
func (c *CLI) trendsRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"remove"},
		Short:   "Remove a trend by ID",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if err := st.DeleteTrend(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete trend: %w", err)
			}
			printSuccess("Removed %s", args[0])
			return nil
		},
	}
}

// trendsExportCommand creates the "trends export" subcommand.
func (c *CLI) trendsExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export <file.json>",
		Short: "Export stored trends to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			trends, err := st.ListTrends(cmd.Context())
			if err != nil {
				return fmt.Errorf("list trends: %w", err)
			}
			if err := trendio.ExportJSON(trends, args[0]); err != nil {
				return fmt.Errorf("export: %w", err)
			}
			printSuccess("Exported %d trends", len(trends))
			printFile(args[0])
			return nil
		},
	}
}

// trendsImportCommand creates the "trends import" subcommand.
func (c *CLI) trendsImportCommand() *cobra.Command {
	var replace bool

	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Import trends from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog := newProgress(c.Logger)

			trends, err := trendio.ImportJSON(args[0])
			if err != nil {
				return fmt.Errorf("import: %w", err)
			}

			st, err := c.newStore(cmd)
			if err != nil {
				return fmt.Errorf("open store: %w", err)
			}
			defer st.Close()

			if replace {
				if err := st.ReplaceTrends(cmd.Context(), trends); err != nil {
					return fmt.Errorf("replace trends: %w", err)
				}
			} else {
				for i := range trends {
					if err := st.SaveTrend(cmd.Context(), &trends[i]); err != nil {
						return fmt.Errorf("save trend %q: %w", trends[i].Name, err)
					}
				}
			}
			prog.done("Import finished")
			printSuccess("Imported %d trends", len(trends))
			return nil
		},
	}

	cmd.Flags().BoolVar(&replace, "replace", false, "replace the working set instead of merging")

	return cmd
}
