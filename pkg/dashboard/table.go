package dashboard

import (
	"context"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/integrations/catalog"
)

// FetchFailedMessage is shown in place of the table when the page could not
// be fetched.
const FetchFailedMessage = "Failed to fetch categories"

// TableOptions selects the page and rows of a [TableView].
type TableOptions struct {
	Page    int
	Limit   int
	Query   category.Query
	Refresh bool // bypass cached pages
}

// TableView is the flattened list view of one page.
type TableView struct {
	Rows       []category.FlatCategory `json:"rows"`
	Filters    []category.FilterColumn `json:"filters"`
	Pagination category.Pagination     `json:"pagination"`
	Query      category.Query          `json:"query"`
	// Total is the number of rows on the page before the query is applied.
	Total   int    `json:"total"`
	Cached  bool   `json:"cached"`
	Failed  bool   `json:"failed"`
	Message string `json:"message,omitempty"`
}

// Table fetches one page and flattens it. Filter options are derived from
// all rows of the page, so they do not shrink as the query narrows.
//
// On failure the returned view is still usable: it has Failed set, no rows
// and [FetchFailedMessage]. The error is returned alongside it.
func (r *Runner) Table(ctx context.Context, opts TableOptions) (*TableView, error) {
	page, limit := catalog.ClampPage(opts.Page, opts.Limit)
	view := &TableView{
		Rows:       []category.FlatCategory{},
		Filters:    category.FilterColumns(nil),
		Pagination: category.Pagination{Page: page, Limit: limit},
		Query:      opts.Query,
	}

	p, cached, err := r.Fetch(ctx, page, limit, opts.Refresh)
	if err != nil {
		r.Logger.Error("fetch categories", "page", page, "error", err)
		view.Failed = true
		view.Message = FetchFailedMessage
		return view, err
	}

	rows := category.Flatten(p.Categories)
	view.Total = len(rows)
	view.Filters = category.FilterColumns(rows)
	if filtered := opts.Query.Apply(rows); filtered != nil {
		view.Rows = filtered
	}
	view.Pagination = p.Pagination
	view.Cached = cached
	return view, nil
}

// Filters returns the filter columns of one page.
func (r *Runner) Filters(ctx context.Context, page, limit int) ([]category.FilterColumn, error) {
	p, _, err := r.Fetch(ctx, page, limit, false)
	if err != nil {
		return nil, err
	}
	return category.FilterColumns(category.Flatten(p.Categories)), nil
}
