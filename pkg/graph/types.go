package graph

import (
	"fmt"
)

// KindInput marks entry-point nodes, the visual roots of the tree.
const KindInput = "input"

// Graph is the node-link projection of a category forest.
type Graph struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Position is the top-left corner of a node box.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is one category in the graph.
type Node struct {
	ID       string   `json:"id"`
	Label    string   `json:"label"`
	Kind     string   `json:"kind,omitempty"` // "input" for roots, empty otherwise
	Position Position `json:"position"`
}

// IsInput reports whether the node is an entry point.
func (n Node) IsInput() bool { return n.Kind == KindInput }

// DisplayLabel returns the label if set, otherwise the ID.
func (n Node) DisplayLabel() string {
	if n.Label != "" {
		return n.Label
	}
	return n.ID
}

// Edge is a directed parent → child relation.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// EdgeID returns the identifier of the edge from parent to child.
func EdgeID(parent, child string) string { return parent + "-" + child }

// Clone returns a deep copy of the graph.
func (g Graph) Clone() Graph {
	out := Graph{
		Nodes: make([]Node, len(g.Nodes)),
		Edges: make([]Edge, len(g.Edges)),
	}
	copy(out.Nodes, g.Nodes)
	copy(out.Edges, g.Edges)
	return out
}

// Roots returns the IDs of nodes without an incoming edge, in node order.
func (g Graph) Roots() []string {
	hasParent := make(map[string]bool, len(g.Edges))
	for _, e := range g.Edges {
		hasParent[e.Target] = true
	}
	var roots []string
	for _, n := range g.Nodes {
		if !hasParent[n.ID] {
			roots = append(roots, n.ID)
		}
	}
	return roots
}

// Children returns the adjacency list of the graph, keyed by source ID.
// Targets keep edge order.
func (g Graph) Children() map[string][]string {
	out := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		out[e.Source] = append(out[e.Source], e.Target)
	}
	return out
}

// Validate checks that node IDs are unique and non-empty and that every
// edge references existing nodes.
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return fmt.Errorf("node %d: empty id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return fmt.Errorf("node %s: duplicate id", n.ID)
		}
		seen[n.ID] = struct{}{}
	}
	for _, e := range g.Edges {
		if _, ok := seen[e.Source]; !ok {
			return fmt.Errorf("edge %s: unknown source %s", e.ID, e.Source)
		}
		if _, ok := seen[e.Target]; !ok {
			return fmt.Errorf("edge %s: unknown target %s", e.ID, e.Target)
		}
	}
	return nil
}
