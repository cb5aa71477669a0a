package dashboard

import (
	"context"
	"time"

	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/graph"
	"github.com/matzehuels/cattree/pkg/observability"
	"github.com/matzehuels/cattree/pkg/render/nodelink"
)

// Output formats for graph views.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatDOT, FormatSVG}

// ContentTypes maps each format to its MIME type.
var ContentTypes = map[string]string{
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	FormatSVG:  "image/svg+xml",
}

// ValidateFormat checks that format is one of [Formats].
func ValidateFormat(format string) error {
	return errs.ValidateFormat(format, Formats...)
}

// RenderOptions configures [Runner.Render].
type RenderOptions struct {
	Format string
	// Engine selects the Graphviz engine for DOT and SVG output. The zero
	// value is [nodelink.EnginePinned], which keeps the computed layout.
	Engine nodelink.Engine
}

// Render encodes a graph view. JSON is the laid-out graph itself; DOT and
// SVG go through Graphviz.
func (r *Runner) Render(ctx context.Context, view *GraphView, opts RenderOptions) ([]byte, error) {
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, err
	}
	if opts.Engine == "" {
		opts.Engine = nodelink.EnginePinned
	}

	start := time.Now()
	data, err := render(ctx, view, opts)
	observability.Dashboard().OnRender(ctx, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeInternal, err, "render %s", opts.Format)
	}

	r.Logger.Debug("rendered graph",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))
	return data, nil
}

func render(ctx context.Context, view *GraphView, opts RenderOptions) ([]byte, error) {
	if opts.Format == FormatJSON {
		return graph.MarshalGraph(view.Graph)
	}
	dot := nodelink.ToDOT(view.Graph, nodelink.Options{
		Direction:  view.Direction,
		Pinned:     opts.Engine == nodelink.EnginePinned,
		NodeWidth:  view.opts.NodeWidth,
		NodeHeight: view.opts.NodeHeight,
	})
	if opts.Format == FormatDOT {
		return []byte(dot), nil
	}
	return nodelink.RenderSVG(ctx, dot, opts.Engine)
}
