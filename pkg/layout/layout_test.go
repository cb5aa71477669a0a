package layout

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/graph"
)

func sampleGraph() graph.Graph {
	return graph.Build([]category.Category{
		{ID: "1", Name: "Electronics", Children: []category.Category{
			{ID: "2", Name: "Phones", Children: []category.Category{
				{ID: "3", Name: "Android"},
				{ID: "4", Name: "iOS"},
			}},
			{ID: "5", Name: "Laptops"},
		}},
		{ID: "6", Name: "Garden"},
	})
}

func positions(g graph.Graph) map[string]graph.Position {
	out := make(map[string]graph.Position, len(g.Nodes))
	for _, n := range g.Nodes {
		out[n.ID] = n.Position
	}
	return out
}

func TestApplyRootAndChild(t *testing.T) {
	g := graph.Build([]category.Category{
		{ID: "1", Name: "Root", Children: []category.Category{{ID: "2", Name: "Child"}}},
	})

	got := positions(Apply(g, Options{}))

	assert.Equal(t, graph.Position{X: 0, Y: 0}, got["1"])
	assert.Equal(t, graph.Position{X: 0, Y: 86}, got["2"])
}

func TestApplyTopBottom(t *testing.T) {
	got := positions(Apply(sampleGraph(), Options{Direction: TopBottom}))

	want := map[string]graph.Position{
		"1": {X: 277.5, Y: 0},
		"2": {X: 111, Y: 86},
		"3": {X: 0, Y: 172},
		"4": {X: 222, Y: 172},
		"5": {X: 444, Y: 86},
		"6": {X: 666, Y: 0},
	}
	assert.Equal(t, want, got)
}

func TestApplyLeftRight(t *testing.T) {
	got := positions(Apply(sampleGraph(), Options{Direction: LeftRight}))

	want := map[string]graph.Position{
		"1": {X: 0, Y: 107.5},
		"2": {X: 222, Y: 43},
		"3": {X: 444, Y: 0},
		"4": {X: 444, Y: 86},
		"5": {X: 222, Y: 172},
		"6": {X: 0, Y: 258},
	}
	assert.Equal(t, want, got)
}

func TestApplyProperties(t *testing.T) {
	for _, dir := range []Direction{TopBottom, LeftRight} {
		t.Run(dir.String(), func(t *testing.T) {
			opts := Options{Direction: dir}.withDefaults()
			g := Apply(sampleGraph(), opts)
			pos := positions(g)

			for _, e := range g.Edges {
				parent, child := pos[e.Source], pos[e.Target]
				if dir == TopBottom {
					assert.Greater(t, child.Y, parent.Y, "edge %s must flow downward", e.ID)
				} else {
					assert.Greater(t, child.X, parent.X, "edge %s must flow rightward", e.ID)
				}
			}

			for parent, children := range g.Children() {
				var lo, hi float64 = math.Inf(1), math.Inf(-1)
				for _, c := range children {
					v := breadthOf(pos[c], dir)
					lo, hi = min(lo, v), max(hi, v)
				}
				assert.InDelta(t, (lo+hi)/2, breadthOf(pos[parent], dir), 1e-9, "parent %s not centered", parent)
			}

			for i, a := range g.Nodes {
				for _, b := range g.Nodes[i+1:] {
					assert.False(t, overlaps(a.Position, b.Position, opts), "%s overlaps %s", a.ID, b.ID)
				}
			}
		})
	}
}

func breadthOf(p graph.Position, dir Direction) float64 {
	if dir == LeftRight {
		return p.Y
	}
	return p.X
}

func overlaps(a, b graph.Position, o Options) bool {
	return a.X < b.X+o.NodeWidth && b.X < a.X+o.NodeWidth &&
		a.Y < b.Y+o.NodeHeight && b.Y < a.Y+o.NodeHeight
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	g := sampleGraph()

	out := Apply(g, Options{})

	for _, n := range g.Nodes {
		assert.Zero(t, n.Position, "input node %s was moved", n.ID)
	}
	assert.Equal(t, g.Edges, out.Edges)
	require.Len(t, out.Nodes, len(g.Nodes))
}

func TestApplyCustomSizes(t *testing.T) {
	g := graph.Graph{Nodes: []graph.Node{{ID: "a"}, {ID: "b"}}}

	got := positions(Apply(g, Options{NodeWidth: 100, NodeHeight: 20, NodeSep: 10, RankSep: 5}))

	assert.Equal(t, graph.Position{X: 110, Y: 0}, got["b"])
}

func TestApplyCycle(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.Edge{
			{ID: "a-b", Source: "a", Target: "b"},
			{ID: "b-a", Source: "b", Target: "a"},
			{ID: "b-c", Source: "b", Target: "c"},
		},
	}

	got := positions(Apply(g, Options{}))

	require.Len(t, got, 3)
	assert.Equal(t, 0.0, got["a"].Y)
	assert.Equal(t, 86.0, got["b"].Y)
	assert.Equal(t, 172.0, got["c"].Y)
}

func TestApplySharedChild(t *testing.T) {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.Edge{
			{ID: "a-c", Source: "a", Target: "c"},
			{ID: "b-c", Source: "b", Target: "c"},
		},
	}

	got := positions(Apply(g, Options{}))

	assert.Equal(t, graph.Position{X: 0, Y: 86}, got["c"])
	assert.Equal(t, graph.Position{X: 0, Y: 0}, got["a"])
	assert.Equal(t, graph.Position{X: 222, Y: 0}, got["b"])
}

func TestApplyEmpty(t *testing.T) {
	out := Apply(graph.Graph{}, Options{})
	assert.Empty(t, out.Nodes)
}

func TestSize(t *testing.T) {
	g := Apply(sampleGraph(), Options{})

	w, h := Size(g, Options{})

	assert.Equal(t, 838.0, w)
	assert.Equal(t, 208.0, h)
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"TB", TopBottom, false},
		{"tb", TopBottom, false},
		{" LR ", LeftRight, false},
		{"lr", LeftRight, false},
		{"horizontal", LeftRight, false},
		{"Vertical", TopBottom, false},
		{"", "", true},
		{"BT", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDirectionToggle(t *testing.T) {
	assert.Equal(t, LeftRight, TopBottom.Toggle())
	assert.Equal(t, TopBottom, LeftRight.Toggle())
	assert.Equal(t, "Horizontal", LeftRight.Label())
	assert.Equal(t, "Vertical", Direction("").Label())
}
