package nodelink

import (
	"math"
	"strings"

	"github.com/matzehuels/cattree/pkg/graph"
	"github.com/matzehuels/cattree/pkg/layout"
)

// Terminal cell size in layout pixels, used by [Text].
const (
	CellWidth  = 8.0
	CellHeight = 18.0
)

// DefaultMaxLabel is the label length [Text] truncates to.
const DefaultMaxLabel = 18

// TextOptions configures [Text].
type TextOptions struct {
	Direction layout.Direction
	// MaxLabel truncates labels to this many runes, including the ellipsis.
	MaxLabel int
	// NodeWidth and NodeHeight default to the layout engine's box size.
	NodeWidth  float64
	NodeHeight float64
}

// textBox is a node label placed on the character grid.
type textBox struct {
	row, col int
	text     []rune
}

func (b textBox) center() int { return b.col + len(b.text)/2 }
func (b textBox) end() int    { return b.col + len(b.text) }

// Text draws a laid-out graph on a character grid, for terminals.
//
// Each node is drawn as its bracketed label, centered in its box at the
// position computed by the layout engine. Edges are drawn as orthogonal
// connectors in the flow direction. Trailing spaces are trimmed.
func Text(g graph.Graph, opts TextOptions) string {
	if len(g.Nodes) == 0 {
		return ""
	}
	if opts.MaxLabel <= 1 {
		opts.MaxLabel = DefaultMaxLabel
	}
	if opts.NodeWidth <= 0 {
		opts.NodeWidth = layout.DefaultNodeWidth
	}
	if opts.NodeHeight <= 0 {
		opts.NodeHeight = layout.DefaultNodeHeight
	}
	boxCols := int(math.Round(opts.NodeWidth / CellWidth))
	boxRows := int(math.Round(opts.NodeHeight / CellHeight))

	boxes := make(map[string]textBox, len(g.Nodes))
	rows, cols := 0, 0
	for _, n := range g.Nodes {
		text := []rune("[" + truncate(n.DisplayLabel(), opts.MaxLabel) + "]")
		b := textBox{
			row:  int(math.Round(n.Position.Y/CellHeight)) + boxRows/2,
			col:  int(math.Round(n.Position.X/CellWidth)) + max((boxCols-len(text))/2, 0),
			text: text,
		}
		if b.row < 0 || b.col < 0 {
			continue
		}
		if _, dup := boxes[n.ID]; !dup {
			boxes[n.ID] = b
		}
		rows = max(rows, b.row+1)
		cols = max(cols, b.end())
	}

	grid := make([][]rune, rows)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", cols))
	}
	for _, b := range boxes {
		copy(grid[b.row][b.col:], b.text)
	}

	for _, e := range g.Edges {
		from, ok1 := boxes[e.Source]
		to, ok2 := boxes[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		if opts.Direction == layout.LeftRight {
			connectLR(grid, from, to)
		} else {
			connectTB(grid, from, to)
		}
	}

	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

// connectTB draws parent -> child as down, across, down.
func connectTB(grid [][]rune, from, to textBox) {
	if to.row <= from.row+1 {
		return
	}
	if from.center() == to.center() {
		vline(grid, from.center(), from.row+1, to.row-1)
		return
	}
	mid := (from.row + to.row) / 2
	vline(grid, from.center(), from.row+1, mid)
	hline(grid, mid, from.center(), to.center())
	vline(grid, to.center(), mid, to.row-1)
}

// connectLR draws parent -> child as right, down or up, right.
func connectLR(grid [][]rune, from, to textBox) {
	if to.col <= from.end()+1 {
		return
	}
	if from.row == to.row {
		hline(grid, from.row, from.end(), to.col-1)
		return
	}
	mid := (from.end() + to.col) / 2
	hline(grid, from.row, from.end(), mid)
	vline(grid, mid, from.row, to.row)
	hline(grid, to.row, mid, to.col-1)
}

// vline draws a vertical segment on blank cells and crossings.
func vline(grid [][]rune, col, r0, r1 int) {
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	for r := r0; r <= r1; r++ {
		set(grid, r, col, '│')
	}
}

// hline draws a horizontal segment on blank cells and crossings.
func hline(grid [][]rune, row, c0, c1 int) {
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	for c := c0; c <= c1; c++ {
		set(grid, row, c, '─')
	}
}

func set(grid [][]rune, row, col int, r rune) {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return
	}
	switch cur := grid[row][col]; {
	case cur == ' ':
		grid[row][col] = r
	case (cur == '│' && r == '─') || (cur == '─' && r == '│'):
		grid[row][col] = '┼'
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
