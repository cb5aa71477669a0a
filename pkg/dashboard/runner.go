package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/integrations/catalog"
	"github.com/matzehuels/cattree/pkg/observability"
)

// DefaultConcurrency bounds the page requests in flight during [Runner.FetchAll].
const DefaultConcurrency = 4

// MaxPages caps the pages [Runner.FetchAll] requests, whatever page count
// the backend reports.
const MaxPages = 100

// Runner builds views from the category backend.
//
// The Runner is stateless except for the client and logger - it doesn't
// store views. Multiple goroutines can safely use the same Runner.
type Runner struct {
	Catalog     *catalog.Client
	Logger      *log.Logger
	Concurrency int
}

// NewRunner creates a runner on top of a catalog client.
// If logger is nil, the default logger is used.
func NewRunner(c *catalog.Client, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Catalog:     c,
		Logger:      logger,
		Concurrency: DefaultConcurrency,
	}
}

// Fetch returns one page of the forest and whether it came from the cache.
func (r *Runner) Fetch(ctx context.Context, page, limit int, refresh bool) (*catalog.Page, bool, error) {
	start := time.Now()
	p, cached, err := r.Catalog.List(ctx, page, limit, refresh)
	n := 0
	if p != nil {
		n = category.Count(p.Categories)
	}
	observability.Dashboard().OnFetch(ctx, 1, n, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}
	r.Logger.Debug("fetched page",
		"page", p.Pagination.Page,
		"categories", n,
		"cached", cached,
		"duration", time.Since(start))
	return p, cached, nil
}

// FetchAll returns the whole forest, fetching every page with at most
// [Runner.Concurrency] requests in flight. Roots are concatenated in page
// order. The combined forest is checked again, since ids may collide
// across pages.
func (r *Runner) FetchAll(ctx context.Context, limit int, refresh bool) ([]category.Category, category.Pagination, error) {
	start := time.Now()
	forest, pagination, err := r.fetchAll(ctx, limit, refresh)
	observability.Dashboard().OnFetch(ctx, pagination.Pages, category.Count(forest), time.Since(start), err)
	if err != nil {
		return nil, category.Pagination{}, err
	}
	r.Logger.Info("fetched categories",
		"pages", pagination.Pages,
		"categories", category.Count(forest),
		"duration", time.Since(start))
	return forest, pagination, nil
}

func (r *Runner) fetchAll(ctx context.Context, limit int, refresh bool) ([]category.Category, category.Pagination, error) {
	_, limit = catalog.ClampPage(1, limit)
	first, _, err := r.Catalog.List(ctx, 1, limit, refresh)
	if err != nil {
		return nil, category.Pagination{}, err
	}
	pagination := first.Pagination
	// Every page is requested with the limit page 1 was cut with. The
	// backend's echo is not trusted for that.
	pagination.Limit = limit
	n := pageCount(pagination)
	if n < pagination.Pages {
		r.Logger.Warn("backend reports more pages than the forest holds",
			"pages", pagination.Pages,
			"total", pagination.Total,
			"fetching", n)
	}
	pagination.Pages = n
	if n <= 1 {
		return first.Categories, pagination, nil
	}

	pages := make([][]category.Category, n)
	pages[0] = first.Categories

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(r.Concurrency, 1))
	for i := 1; i < len(pages); i++ {
		g.Go(func() error {
			p, _, err := r.Catalog.List(ctx, i+1, limit, refresh)
			if err != nil {
				return err
			}
			pages[i] = p.Categories
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, category.Pagination{}, err
	}

	var forest []category.Category
	for _, p := range pages {
		forest = append(forest, p...)
	}
	if err := category.CheckForest(forest, category.DefaultMaxDepth); err != nil {
		return nil, category.Pagination{}, err
	}
	pagination.Page = 1
	return forest, pagination, nil
}

// pageCount is the number of pages to request: the reported page count,
// bounded by what the reported total needs and by [MaxPages].
func pageCount(p category.Pagination) int {
	n := p.Pages
	if p.Total > 0 && p.Limit > 0 {
		n = min(n, (p.Total+p.Limit-1)/p.Limit)
	}
	return min(n, MaxPages)
}
