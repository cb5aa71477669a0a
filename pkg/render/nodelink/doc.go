// Package nodelink renders category graphs as node-link diagrams.
//
// # Overview
//
// Categories appear as fixed-size rounded boxes connected by orthogonal
// arrows from parent to child. Entry-point nodes (roots of the forest) are
// filled with the accent color so they stand out from their descendants.
//
// # Usage
//
// Convert a graph to DOT, then render to SVG:
//
//	dot := nodelink.ToDOT(g, nodelink.Options{Direction: layout.LeftRight})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineDot)
//
// # Engines
//
// With [EngineDot], Graphviz ranks the graph itself using the requested
// rankdir. With [EnginePinned], ToDOT emits the positions computed by
// pkg/layout as pinned node coordinates and neato draws the boxes exactly
// where the layout engine put them.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
