package graph

import "github.com/matzehuels/cattree/pkg/category"

// Build converts a category forest into a graph.
//
// Categories are visited in pre-order with siblings in input order. Every
// category becomes a node labelled with its name at the origin; roots are
// marked [KindInput]. Every non-root category contributes one edge from its
// parent, so a forest of n categories and r roots yields n nodes and n-r
// edges.
//
// Build does not check id uniqueness; see category.CheckForest.
func Build(categories []category.Category) Graph {
	n := category.Count(categories)
	g := Graph{
		Nodes: make([]Node, 0, n),
		Edges: make([]Edge, 0, n),
	}
	build(&g, categories, nil)
	return g
}

func build(g *Graph, categories []category.Category, parent *category.Category) {
	for i := range categories {
		c := &categories[i]
		node := Node{ID: c.ID, Label: c.Name}
		if parent == nil {
			node.Kind = KindInput
		} else {
			g.Edges = append(g.Edges, Edge{
				ID:     EdgeID(parent.ID, c.ID),
				Source: parent.ID,
				Target: c.ID,
			})
		}
		g.Nodes = append(g.Nodes, node)
		build(g, c.Children, c)
	}
}
