package layout

import (
	"github.com/matzehuels/cattree/pkg/graph"
)

// Default node box and spacing, in pixels.
const (
	DefaultNodeWidth  = 172.0
	DefaultNodeHeight = 36.0
	DefaultRankSep    = 50.0
	DefaultNodeSep    = 50.0
)

// Options configures [Apply]. Zero fields take their defaults.
type Options struct {
	Direction  Direction
	NodeWidth  float64
	NodeHeight float64
	RankSep    float64 // gap between ranks
	NodeSep    float64 // gap between neighbours on a rank
}

func (o Options) withDefaults() Options {
	if o.Direction == "" {
		o.Direction = TopBottom
	}
	if o.NodeWidth <= 0 {
		o.NodeWidth = DefaultNodeWidth
	}
	if o.NodeHeight <= 0 {
		o.NodeHeight = DefaultNodeHeight
	}
	if o.RankSep <= 0 {
		o.RankSep = DefaultRankSep
	}
	if o.NodeSep <= 0 {
		o.NodeSep = DefaultNodeSep
	}
	return o
}

// Apply returns a copy of g with every node position overwritten.
// Edges are copied unchanged and the input graph is not modified.
func Apply(g graph.Graph, opts Options) graph.Graph {
	opts = opts.withDefaults()
	out := g.Clone()
	if len(out.Nodes) == 0 {
		return out
	}

	breadth, depth := opts.NodeWidth, opts.NodeHeight
	if opts.Direction == LeftRight {
		breadth, depth = opts.NodeHeight, opts.NodeWidth
	}

	t := &tidy{
		ids:      make([]string, len(out.Nodes)),
		index:    make(map[string]int, len(out.Nodes)),
		children: g.Children(),
		placed:   make([]bool, len(out.Nodes)),
		centers:  make([]float64, len(out.Nodes)),
		ranks:    make([]int, len(out.Nodes)),
		breadth:  breadth,
		step:     breadth + opts.NodeSep,
	}
	for i, n := range out.Nodes {
		t.ids[i] = n.ID
		if _, dup := t.index[n.ID]; !dup {
			t.index[n.ID] = i
		}
	}

	for _, id := range g.Roots() {
		if i := t.index[id]; !t.placed[i] {
			t.place(i, 0)
		}
	}
	// Whatever is left is only reachable through a cycle.
	for i := range out.Nodes {
		if !t.placed[i] {
			t.place(i, 0)
		}
	}

	rankStep := depth + opts.RankSep
	for i := range out.Nodes {
		b := t.centers[i] - breadth/2
		d := float64(t.ranks[i]) * rankStep
		if opts.Direction == LeftRight {
			out.Nodes[i].Position = graph.Position{X: d, Y: b}
		} else {
			out.Nodes[i].Position = graph.Position{X: b, Y: d}
		}
	}
	return out
}

// Size returns the extent of a laid-out graph: the bottom-right corner of
// the furthest box.
func Size(g graph.Graph, opts Options) (width, height float64) {
	opts = opts.withDefaults()
	for _, n := range g.Nodes {
		width = max(width, n.Position.X+opts.NodeWidth)
		height = max(height, n.Position.Y+opts.NodeHeight)
	}
	return width, height
}

// tidy holds the state of one layout pass. Coordinates are along the
// breadth axis (across ranks); cursor is the next free leaf slot.
type tidy struct {
	ids      []string
	index    map[string]int
	children map[string][]string
	placed   []bool
	centers  []float64
	ranks    []int
	breadth  float64
	step     float64
	cursor   float64
}

// place lays out the subtree rooted at node i and returns its center.
func (t *tidy) place(i, rank int) float64 {
	t.placed[i] = true
	t.ranks[i] = rank

	var first, last float64
	n := 0
	for _, id := range t.children[t.ids[i]] {
		c, ok := t.index[id]
		if !ok || t.placed[c] {
			continue
		}
		center := t.place(c, rank+1)
		if n == 0 {
			first = center
		}
		last = center
		n++
	}

	if n == 0 {
		t.centers[i] = t.cursor + t.breadth/2
		t.cursor += t.step
	} else {
		t.centers[i] = (first + last) / 2
	}
	return t.centers[i]
}
