package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/dashboard"
	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/graph"
	"github.com/matzehuels/cattree/pkg/layout"
	"github.com/matzehuels/cattree/pkg/render/nodelink"
)

// treeOpts holds the command-line flags for the tree command.
type treeOpts struct {
	direction string // TB or LR; empty uses the config default
	all       bool   // fetch every page instead of the first
	format    string // json, dot or svg; empty infers from output
	output    string // output file; empty writes to stdout
	input     string // graph JSON to lay out instead of fetching
	engine    string // dot or pinned
	refresh   bool
}

// treeCommand creates the tree command for rendering the hierarchy graph.
func (c *CLI) treeCommand() *cobra.Command {
	var opts treeOpts

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Render the category hierarchy as a graph",
		Long: `Render the category hierarchy as a node-link graph.

Every category becomes a box and every parent/child pair an edge. Root
categories are drawn as entry points. Boxes are positioned by a tidy tree
layout flowing top to bottom (TB) or left to right (LR).

By default the first 100 root categories are fetched; --all fetches every
page. With --input, a graph JSON file (as written by -f json) is laid out
instead of fetching from the backend.

Formats:
  json  the laid-out graph (nodes with positions, edges)
  dot   Graphviz source
  svg   rendered through Graphviz`,
		Example: `  cattree tree -o tree.svg
  cattree tree --direction LR -f dot > tree.dot
  cattree tree --all -f json -o tree.json
  cattree tree --input tree.json --direction LR -o tree.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.format == "" {
				opts.format = inferFormat(opts.output)
			}
			if err := dashboard.ValidateFormat(opts.format); err != nil {
				return err
			}
			if err := errs.ValidateFormat(opts.engine, string(nodelink.EngineDot), string(nodelink.EnginePinned)); err != nil {
				return err
			}
			return c.runTree(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.direction, "direction", "d", "", "layout direction: TB (vertical) or LR (horizontal)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "fetch every page of root categories")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: svg (default), dot, json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.input, "input", "", "lay out a graph JSON file instead of fetching")
	cmd.Flags().StringVar(&opts.engine, "engine", string(nodelink.EnginePinned), "graphviz engine: pinned (keep computed layout) or dot")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cached pages")
	registerTreeCompletions(cmd)

	return cmd
}

// inferFormat picks the format from the output file extension.
func inferFormat(output string) string {
	switch strings.ToLower(filepath.Ext(output)) {
	case ".json":
		return dashboard.FormatJSON
	case ".dot", ".gv":
		return dashboard.FormatDOT
	}
	return dashboard.FormatSVG
}

func (c *CLI) runTree(ctx context.Context, w io.Writer, opts treeOpts) error {
	s, err := c.open(ctx)
	if err != nil {
		return err
	}
	defer s.Close()

	direction := s.cfg.Direction()
	if opts.direction != "" {
		if direction, err = layout.ParseDirection(opts.direction); err != nil {
			return err
		}
	}

	prog := newProgress(c.Logger)
	gopts := dashboard.GraphOptions{Direction: direction, All: opts.all, Refresh: opts.refresh}

	var view *dashboard.GraphView
	if opts.input != "" {
		g, rerr := graph.ReadGraphFile(opts.input)
		if rerr != nil {
			return fmt.Errorf("load graph %s: %w", opts.input, rerr)
		}
		view, err = s.runner.FromGraph(ctx, g, gopts)
	} else {
		view, err = s.runner.Graph(ctx, gopts)
	}
	if err != nil {
		return err
	}

	data, err := s.runner.Render(ctx, view, dashboard.RenderOptions{
		Format: opts.format,
		Engine: nodelink.Engine(opts.engine),
	})
	if err != nil {
		return err
	}

	if opts.output == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", opts.output, err)
	}
	prog.done(fmt.Sprintf("Rendered %s", plural(len(view.Graph.Nodes), "category")))

	printSuccess(w, "Tree written (%s, %s)", direction.Label(), opts.format)
	printFile(w, opts.output)
	printStats(w, view.Cached,
		plural(len(view.Graph.Nodes), "node"),
		plural(len(view.Graph.Edges), "edge"),
		fmt.Sprintf("%.0fx%.0f px", view.Width, view.Height))
	return nil
}
