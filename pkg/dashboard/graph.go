package dashboard

import (
	"context"
	"time"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/graph"
	"github.com/matzehuels/cattree/pkg/integrations/catalog"
	"github.com/matzehuels/cattree/pkg/layout"
	"github.com/matzehuels/cattree/pkg/observability"
)

// GraphLimit is the page size used for the tree view.
const GraphLimit = catalog.MaxLimit

// GraphOptions configures [Runner.Graph].
type GraphOptions struct {
	Direction layout.Direction
	// All fetches every page instead of the first one.
	All     bool
	Refresh bool
	// Layout overrides node sizes and spacing; its Direction is ignored.
	Layout layout.Options
}

// GraphView is the laid-out tree view.
type GraphView struct {
	Graph      graph.Graph         `json:"graph"`
	Direction  layout.Direction    `json:"direction"`
	Pagination category.Pagination `json:"pagination"`
	Width      float64             `json:"width"`
	Height     float64             `json:"height"`
	Cached     bool                `json:"cached"`

	opts layout.Options
}

// Graph fetches the forest, builds its graph and lays it out.
// Only the first page of [GraphLimit] roots is fetched unless opts.All is set.
func (r *Runner) Graph(ctx context.Context, opts GraphOptions) (*GraphView, error) {
	var (
		forest     []category.Category
		pagination category.Pagination
		cached     bool
	)
	if opts.All {
		var err error
		if forest, pagination, err = r.FetchAll(ctx, GraphLimit, opts.Refresh); err != nil {
			return nil, err
		}
	} else {
		p, hit, err := r.Fetch(ctx, 1, GraphLimit, opts.Refresh)
		if err != nil {
			return nil, err
		}
		forest, pagination, cached = p.Categories, p.Pagination, hit
	}

	view := r.layout(ctx, graph.Build(forest), opts.Direction, opts.Layout)
	view.Pagination = pagination
	view.Cached = cached
	return view, nil
}

// FromGraph lays out a graph that did not come from the backend, such as
// one read with [graph.ReadGraphFile].
func (r *Runner) FromGraph(ctx context.Context, g graph.Graph, opts GraphOptions) (*GraphView, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return r.layout(ctx, g, opts.Direction, opts.Layout), nil
}

// Relayout returns a copy of view laid out in direction. Nothing is
// refetched and view is left unchanged.
func (r *Runner) Relayout(ctx context.Context, view *GraphView, direction layout.Direction) *GraphView {
	next := r.layout(ctx, view.Graph, direction, view.opts)
	next.Pagination = view.Pagination
	next.Cached = view.Cached
	return next
}

func (r *Runner) layout(ctx context.Context, g graph.Graph, direction layout.Direction, opts layout.Options) *GraphView {
	if direction == "" {
		direction = layout.TopBottom
	}
	opts.Direction = direction

	start := time.Now()
	laid := layout.Apply(g, opts)
	width, height := layout.Size(laid, opts)
	observability.Dashboard().OnLayout(ctx, direction.String(), len(laid.Nodes), time.Since(start))

	r.Logger.Debug("computed layout",
		"direction", direction,
		"nodes", len(laid.Nodes),
		"edges", len(laid.Edges),
		"duration", time.Since(start))

	return &GraphView{
		Graph:     laid,
		Direction: direction,
		Width:     width,
		Height:    height,
		opts:      opts,
	}
}
