package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// filtersCommand creates the filters command listing the filter options of a page.
func (c *CLI) filtersCommand() *cobra.Command {
	var (
		page, limit int
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "filters",
		Short: "Show the Type and Created By filter options",
		Long: `Show the distinct types and creators found on one page of categories.

These are the values accepted by 'cattree list --type' and '--created-by'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilters(cmd.Context(), cmd.OutOrStdout(), page, limit, asJSON)
		},
	}

	cmd.Flags().IntVarP(&page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "root categories per page (default from config, max 100)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the filter columns as JSON")

	return cmd
}

func (c *CLI) runFilters(ctx context.Context, w io.Writer, page, limit int, asJSON bool) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if limit <= 0 {
		limit = s.cfg.PageLimit
	}
	cols, err := s.runner.Filters(ctx, page, limit)
	if err != nil {
		return err
	}
	if asJSON {
		return writeJSON(w, cols)
	}

	for _, col := range cols {
		values := make([]string, len(col.Options))
		for i, o := range col.Options {
			values[i] = o.Label
		}
		value := StyleDim.Render("none")
		if len(values) > 0 {
			value = strings.Join(values, ", ")
		}
		printKeyValue(w, col.Title, value)
	}
	return nil
}
