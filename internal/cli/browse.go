package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/dashboard"
	"github.com/matzehuels/cattree/pkg/layout"
	"github.com/matzehuels/cattree/pkg/render/nodelink"
	"github.com/matzehuels/cattree/pkg/render/table"
)

// pageSizes are the limits cycled by + and -.
var pageSizes = []int{10, 20, 50, 100}

// treePanStep is how far the arrow keys move the tree pane, in columns.
// Rows move by half as much.
const treePanStep = 8

// pane selects what browse shows.
type pane int

const (
	paneTable pane = iota
	paneTree
)

var (
	browseDimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browseSearchStyle = lipgloss.NewStyle().Foreground(colorCyan)
	browseErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// browseCommand creates the interactive table browser.
func (c *CLI) browseCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse categories interactively",
		Long: `Browse the category table page by page in the terminal.

Keys:
  ↑/↓ j/k   move the cursor
  ←/→ h/l   previous / next page
  + / -     larger / smaller pages (back to page 1)
  /         search by name (enter to apply, esc to cancel)
  c         toggle compact rows
  r         refresh from the backend
  t         switch between the table and the tree
  q         quit

In the tree:
  d         switch between vertical and horizontal layout
  ←↑↓→      pan`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := c.open(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()

			if limit <= 0 {
				limit = s.cfg.PageLimit
			}
			m := newBrowseModel(cmd.Context(), s.runner, limit)
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "root categories per page (default from config)")

	return cmd
}

// =============================================================================
// browseModel - Interactive category table
// =============================================================================

// tableMsg delivers a fetched table view.
type tableMsg struct {
	view *dashboard.TableView
	err  error
}

// graphMsg delivers a fetched and laid-out tree view.
type graphMsg struct {
	view *dashboard.GraphView
	err  error
}

// browseModel is the bubbletea model for the category table.
type browseModel struct {
	ctx    context.Context
	runner *dashboard.Runner

	page    int
	limit   int
	query   category.Query
	compact bool

	view    *dashboard.TableView
	err     error
	loading bool

	cursor int
	offset int
	height int

	searching bool
	input     string

	pane       pane
	tree       *dashboard.GraphView
	treeErr    error
	panX, panY int
	width      int
	screen     int
}

func newBrowseModel(ctx context.Context, runner *dashboard.Runner, limit int) browseModel {
	return browseModel{
		ctx:     ctx,
		runner:  runner,
		page:    1,
		limit:   limit,
		height:  10,
		loading: true,
		width:   120,
		screen:  30,
	}
}

// fetch loads the current page with the current query.
func (m browseModel) fetch(refresh bool) tea.Cmd {
	opts := dashboard.TableOptions{Page: m.page, Limit: m.limit, Query: m.query, Refresh: refresh}
	return func() tea.Msg {
		view, err := m.runner.Table(m.ctx, opts)
		return tableMsg{view: view, err: err}
	}
}

// fetchTree loads the tree view. The layout direction of the current tree
// is kept across refreshes.
func (m browseModel) fetchTree(refresh bool) tea.Cmd {
	direction := layout.TopBottom
	if m.tree != nil {
		direction = m.tree.Direction
	}
	opts := dashboard.GraphOptions{Direction: direction, Refresh: refresh}
	return func() tea.Msg {
		view, err := m.runner.Graph(m.ctx, opts)
		return graphMsg{view: view, err: err}
	}
}

func (m browseModel) Init() tea.Cmd {
	return m.fetch(false)
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tableMsg:
		m.loading = false
		m.view, m.err = msg.view, msg.err
		m.cursor, m.offset = 0, 0
		return m, nil
	case graphMsg:
		m.loading = false
		m.treeErr = msg.err
		if msg.err == nil {
			m.tree = msg.view
			m.panX, m.panY = 0, 0
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.height = max(msg.Height/3-2, 3)
		m.width, m.screen = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		if m.pane == paneTree {
			return m.updateTreeKeys(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m browseModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searching = false
		m.input = m.query.Search
	case tea.KeyEnter:
		m.searching = false
		m.query.Search = strings.TrimSpace(m.input)
		m.loading = true
		return m, m.fetch(false)
	case tea.KeyBackspace:
		if r := []rune(m.input); len(r) > 0 {
			m.input = string(r[:len(r)-1])
		}
	case tea.KeyCtrlC:
		return m, tea.Quit
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(msg.Runes)
	}
	return m, nil
}

func (m browseModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
			if m.cursor < m.offset {
				m.offset = m.cursor
			}
		}
	case "down", "j":
		if m.cursor < m.rowCount()-1 {
			m.cursor++
			if m.cursor >= m.offset+m.height {
				m.offset = m.cursor - m.height + 1
			}
		}
	case "right", "l", "n":
		if m.view != nil && m.view.Pagination.HasNext() && !m.loading {
			m.page++
			m.loading = true
			return m, m.fetch(false)
		}
	case "left", "h", "p":
		if m.page > 1 && !m.loading {
			m.page--
			m.loading = true
			return m, m.fetch(false)
		}
	case "+", "=":
		return m.resize(1)
	case "-":
		return m.resize(-1)
	case "c":
		m.compact = !m.compact
	case "r":
		m.loading = true
		return m, m.fetch(true)
	case "/":
		m.searching = true
		m.input = m.query.Search
	case "t":
		m.pane = paneTree
		if m.tree == nil && !m.loading {
			m.loading = true
			return m, m.fetchTree(false)
		}
	}
	return m, nil
}

// updateTreeKeys handles keys while the tree pane is shown.
func (m browseModel) updateTreeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "t", "esc":
		m.pane = paneTable
	case "d":
		// The graph is already built; only the layout changes.
		if m.tree != nil {
			m.tree = m.runner.Relayout(m.ctx, m.tree, m.tree.Direction.Toggle())
			m.panX, m.panY = 0, 0
		}
	case "r":
		if !m.loading {
			m.loading = true
			return m, m.fetchTree(true)
		}
	case "up", "k":
		m.panY = max(m.panY-treePanStep/2, 0)
	case "down", "j":
		m.panY += treePanStep / 2
	case "left", "h":
		m.panX = max(m.panX-treePanStep, 0)
	case "right", "l":
		m.panX += treePanStep
	}
	return m, nil
}

// resize moves to the next larger (step 1) or smaller (step -1) page size
// and returns to page 1.
func (m browseModel) resize(step int) (tea.Model, tea.Cmd) {
	i, found := slices.BinarySearch(pageSizes, m.limit)
	switch {
	case step > 0 && found:
		i++
	case step < 0:
		i--
	}
	if i < 0 || i >= len(pageSizes) || pageSizes[i] == m.limit {
		return m, nil
	}
	m.limit = pageSizes[i]
	m.page = 1
	m.loading = true
	return m, m.fetch(false)
}

func (m browseModel) rowCount() int {
	if m.view == nil {
		return 0
	}
	return len(m.view.Rows)
}

func (m browseModel) View() string {
	if m.pane == paneTree {
		return m.treeView()
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Categories"))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("↑/↓ navigate  ←/→ page  +/- page size  / search  c compact  r refresh  t tree  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.view == nil:
		b.WriteString(browseDimStyle.Render("Loading..."))
		return b.String()
	case m.view.Failed:
		b.WriteString(browseErrorStyle.Render(m.view.Message))
		if m.err != nil {
			b.WriteString("\n" + browseDimStyle.Render(m.err.Error()))
		}
		return b.String()
	case len(m.view.Rows) == 0:
		b.WriteString(table.Empty("No categories"))
	default:
		end := min(m.offset+m.height, len(m.view.Rows))
		b.WriteString(table.Render(m.view.Rows[m.offset:end], table.Options{
			Cursor:  m.cursor - m.offset,
			Compact: m.compact,
		}))
	}
	b.WriteString("\n\n")

	p := m.view.Pagination
	status := fmt.Sprintf("  page %d of %d · %d per page · %s", p.Page, max(p.Pages, 1), m.limit, plural(p.Total, "root category"))
	if m.loading {
		status += " · loading..."
	}
	b.WriteString(browseDimStyle.Render(status))

	if m.searching {
		b.WriteString("\n" + browseSearchStyle.Render("/"+m.input+"█"))
	} else if m.query.Search != "" {
		b.WriteString("\n" + browseDimStyle.Render(fmt.Sprintf("  search: %q", m.query.Search)))
	}
	return b.String()
}

// treeView draws the laid-out tree, cropped to the terminal and panned.
func (m browseModel) treeView() string {
	var b strings.Builder

	title := "Tree"
	if m.tree != nil {
		title += " · " + m.tree.Direction.Label()
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(browseDimStyle.Render("d vertical/horizontal  ←↑↓→ pan  r refresh  t table  q quit"))
	b.WriteString("\n\n")

	switch {
	case m.tree == nil && m.treeErr != nil:
		b.WriteString(browseErrorStyle.Render(dashboard.FetchFailedMessage))
		b.WriteString("\n" + browseDimStyle.Render(m.treeErr.Error()))
		return b.String()
	case m.tree == nil:
		b.WriteString(browseDimStyle.Render("Loading..."))
		return b.String()
	case len(m.tree.Graph.Nodes) == 0:
		b.WriteString(table.Empty("No categories"))
		return b.String()
	}

	canvas := nodelink.Text(m.tree.Graph, nodelink.TextOptions{Direction: m.tree.Direction})
	b.WriteString(crop(canvas, m.panX, m.panY, max(m.width, 20), max(m.screen-6, 5)))
	b.WriteString("\n\n")

	status := fmt.Sprintf("  %s · %s · %.0fx%.0f px",
		plural(len(m.tree.Graph.Nodes), "node"),
		plural(len(m.tree.Graph.Edges), "edge"),
		m.tree.Width, m.tree.Height)
	if m.loading {
		status += " · loading..."
	}
	b.WriteString(browseDimStyle.Render(status))
	return b.String()
}

// crop returns the w x h window of text starting at column x and line y.
func crop(text string, x, y, w, h int) string {
	lines := strings.Split(text, "\n")
	y = min(y, len(lines))
	lines = lines[y:min(y+h, len(lines))]
	for i, l := range lines {
		r := []rune(l)
		start := min(x, len(r))
		lines[i] = string(r[start:min(start+w, len(r))])
	}
	return strings.Join(lines, "\n")
}
