package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/cattree/pkg/graph"
	"github.com/matzehuels/cattree/pkg/layout"
)

// Graphviz works in points; the layout works in pixels at 72 dpi.
const pointsPerInch = 72.0

// Engine selects how Graphviz positions nodes.
type Engine string

const (
	// EngineDot lets Graphviz rank the graph with the requested direction.
	EngineDot Engine = "dot"
	// EnginePinned draws nodes at their precomputed positions.
	EnginePinned Engine = "pinned"
)

// Options configures node-link diagram generation.
type Options struct {
	Direction layout.Direction
	// Pinned emits node positions so [EnginePinned] can honor them.
	Pinned bool
	// NodeWidth and NodeHeight default to the layout engine's box size.
	NodeWidth  float64
	NodeHeight float64
}

// ToDOT converts a graph to Graphviz DOT format.
func ToDOT(g graph.Graph, opts Options) string {
	if opts.Direction == "" {
		opts.Direction = layout.TopBottom
	}
	if opts.NodeWidth <= 0 {
		opts.NodeWidth = layout.DefaultNodeWidth
	}
	if opts.NodeHeight <= 0 {
		opts.NodeHeight = layout.DefaultNodeHeight
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", opts.Direction)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=ortho;\n")
	fmt.Fprintf(&buf, "  ranksep=%s;\n", inches(layout.DefaultRankSep))
	fmt.Fprintf(&buf, "  nodesep=%s;\n", inches(layout.DefaultNodeSep))
	fmt.Fprintf(&buf, "  node [shape=box, style=\"rounded,filled\", fillcolor=white, color=\"#d4d4d8\", fontname=\"Helvetica\", fontsize=12, fixedsize=true, width=%s, height=%s];\n",
		inches(opts.NodeWidth), inches(opts.NodeHeight))
	buf.WriteString("  edge [color=\"#a1a1aa\", arrowsize=0.6];\n")
	buf.WriteString("\n")

	for _, n := range g.Nodes {
		attrs := fmtAttrs(n, opts)
		fmt.Fprintf(&buf, "  %s [%s];\n", quote(n.ID), strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %s -> %s [id=%s];\n", quote(e.Source), quote(e.Target), quote(e.ID))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n graph.Node, opts Options) []string {
	attrs := []string{"label=" + quote(n.DisplayLabel())}
	if n.IsInput() {
		attrs = append(attrs, "fillcolor=\"#18181b\"", "fontcolor=white", "color=\"#18181b\"")
	}
	if opts.Pinned {
		// Graphviz y grows upward and pos names the node center.
		x := n.Position.X + opts.NodeWidth/2
		y := -(n.Position.Y + opts.NodeHeight/2)
		attrs = append(attrs, fmt.Sprintf("pos=\"%s,%s!\"", num(x), num(y)))
	}
	return attrs
}

// dotEscaper escapes the two characters that are special inside a DOT
// quoted string. Everything else, including non-ASCII text, passes through.
var dotEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

// quote returns s as a DOT quoted string.
func quote(s string) string { return `"` + dotEscaper.Replace(s) + `"` }

func inches(px float64) string { return num(px / pointsPerInch) }

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string, engine Engine) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	if engine == EnginePinned {
		gv.SetLayout(graphviz.NEATO)
	}

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
