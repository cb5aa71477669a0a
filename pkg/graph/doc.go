// Package graph provides the node/edge representation of a category forest.
//
// The graph is a projection built fresh on every refresh: [Build] walks the
// forest in pre-order and emits one [Node] per category and one [Edge] per
// parent-child relation. Positions start at the origin and are assigned by
// pkg/layout.
//
// # Wire Format
//
// Graphs use a node-link JSON format close to what browser graph widgets
// consume:
//
//	{
//	  "nodes": [
//	    {"id": "1", "label": "Electronics", "kind": "input", "position": {"x": 0, "y": 0}},
//	    {"id": "2", "label": "Phones", "position": {"x": 0, "y": 0}}
//	  ],
//	  "edges": [{"id": "1-2", "source": "1", "target": "2"}]
//	}
//
// Common operations:
//
//	g := graph.Build(categories)              // Forest → Graph
//	graph.WriteGraphFile(g, "tree.json")      // Graph → File
//	g, _ = graph.ReadGraphFile("tree.json")   // File → Graph (validated)
//
// # Concurrency
//
// Graph values are plain data. Functions never mutate their inputs and are
// safe for concurrent use.
package graph
