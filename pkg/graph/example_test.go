package graph_test

import (
	"fmt"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/graph"
)

func ExampleBuild() {
	g := graph.Build([]category.Category{
		{ID: "1", Name: "Root", Children: []category.Category{{ID: "2", Name: "Child"}}},
	})

	for _, n := range g.Nodes {
		fmt.Printf("node %s %q kind=%q\n", n.ID, n.Label, n.Kind)
	}
	for _, e := range g.Edges {
		fmt.Printf("edge %s: %s -> %s\n", e.ID, e.Source, e.Target)
	}
	// Output:
	// node 1 "Root" kind="input"
	// node 2 "Child" kind=""
	// edge 1-2: 1 -> 2
}
