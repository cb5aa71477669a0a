package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/dashboard"
	"github.com/matzehuels/cattree/pkg/render/table"
)

// listOpts holds the command-line flags for the list command.
type listOpts struct {
	page      int
	limit     int
	search    string
	types     []string
	createdBy []string
	compact   bool
	refresh   bool
	asJSON    bool
}

// listCommand creates the list command for printing one page as a table.
func (c *CLI) listCommand() *cobra.Command {
	var opts listOpts

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List categories as an indented table",
		Long: `List one page of the category hierarchy as a table.

Each root category is followed by its descendants, indented by depth. The
search and filter flags narrow the rows of the fetched page; the page and
limit flags select which roots are fetched.`,
		Example: `  cattree list
  cattree list --page 2 --limit 20
  cattree list --type physical --type digital --search phone`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runList(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.page, "page", "p", 1, "page number")
	cmd.Flags().IntVarP(&opts.limit, "limit", "l", 0, "root categories per page (default from config, max 100)")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "show only categories whose name contains this text")
	cmd.Flags().StringSliceVarP(&opts.types, "type", "t", nil, "show only these types (repeatable)")
	cmd.Flags().StringSliceVar(&opts.createdBy, "created-by", nil, "show only categories created by these users (repeatable)")
	cmd.Flags().BoolVar(&opts.compact, "compact", false, "one line per category")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached pages")
	cmd.Flags().BoolVar(&opts.asJSON, "json", false, "print the table view as JSON")

	return cmd
}

func (c *CLI) runList(ctx context.Context, w io.Writer, opts listOpts) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	if opts.limit <= 0 {
		opts.limit = s.cfg.PageLimit
	}
	view, err := s.runner.Table(ctx, dashboard.TableOptions{
		Page:    opts.page,
		Limit:   opts.limit,
		Refresh: opts.refresh,
		Query: category.Query{
			Search:    opts.search,
			Types:     opts.types,
			CreatedBy: opts.createdBy,
		},
	})
	if opts.asJSON {
		if jerr := writeJSON(w, view); jerr != nil {
			return jerr
		}
		return err
	}
	if err != nil {
		printError(w, "%s", view.Message)
		return err
	}

	printTableView(w, view, opts.compact)
	if view.Pagination.HasNext() {
		printNextStep(w, "Next page", fmt.Sprintf("%s list --page %d --limit %d", appName, view.Pagination.Page+1, view.Pagination.Limit))
	}
	return nil
}

// printTableView prints the rows and a summary line.
func printTableView(w io.Writer, view *dashboard.TableView, compact bool) {
	if len(view.Rows) == 0 {
		msg := "No categories"
		if !view.Query.IsZero() {
			msg = "No categories match the filters"
		}
		fmt.Fprintln(w, table.Empty(msg))
	} else {
		fmt.Fprintln(w, table.Render(view.Rows, table.Options{Cursor: -1, Compact: compact}))
	}

	p := view.Pagination
	shown := ""
	if len(view.Rows) != view.Total {
		shown = fmt.Sprintf("%d of %d rows", len(view.Rows), view.Total)
	}
	printStats(w, view.Cached,
		fmt.Sprintf("page %d of %d", p.Page, max(p.Pages, 1)),
		plural(p.Total, "root category"),
		shown)
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
