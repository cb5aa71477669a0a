// Package table renders flattened category rows as a terminal table.
package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/cattree/pkg/category"
)

// Placeholders for missing values.
const (
	NoType  = "N/A"
	NoValue = "—"
)

// Headers are the column titles, in cell order.
var Headers = []string{"Category", "Type", "Subcategories", "Created By", "Created At"}

var (
	colorAccent = lipgloss.Color("36")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")

	headerStyle = lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cursorStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	rootStyle   = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(colorDim)
	avatarStyle = lipgloss.NewStyle().Foreground(colorAccent)
)

// Options configures [Render].
type Options struct {
	// Cursor is the highlighted row index, or -1 for none.
	Cursor int
	// Compact drops the parent and email lines.
	Compact bool
}

// Cells returns the plain-text cells of one row, in [Headers] order.
// Multi-line cells separate lines with "\n".
func Cells(row category.FlatCategory, compact bool) []string {
	name := strings.Repeat("  ", row.Level) + "[" + row.Initials() + "] " + row.Name
	if !compact && row.ParentName != nil && *row.ParentName != "" {
		name += "\n" + strings.Repeat("  ", row.Level) + "     Parent: " + *row.ParentName
	}

	typ := row.Type
	if typ == "" {
		typ = NoType
	}

	creator := row.CreatorName()
	if creator == "" {
		creator = NoValue
	} else if email := row.CreatorEmail(); email != "" && !compact {
		creator += "\n" + email
	}

	return []string{name, typ, strconv.Itoa(len(row.Children)), creator, FormatDate(row.CreatedAt)}
}

// FormatDate formats an ISO 8601 timestamp as a short date, or [NoValue]
// when it is absent or malformed.
func FormatDate(s string) string {
	t, ok := category.Category{CreatedAt: s}.Created()
	if !ok {
		return NoValue
	}
	return t.Format("Jan 2, 2006")
}

// Render draws rows as a bordered table.
func Render(rows []category.FlatCategory, opts Options) string {
	cells := make([][]string, len(rows))
	for i, r := range rows {
		cells[i] = Cells(r, opts.Compact)
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		BorderRow(!opts.Compact).
		Headers(Headers...).
		Rows(cells...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if row < 0 || row >= len(rows) {
				return base
			}
			switch {
			case row == opts.Cursor:
				return cursorStyle.Padding(0, 1)
			case col == 0 && rows[row].IsRoot():
				return rootStyle.Padding(0, 1)
			case col > 0:
				return base.Foreground(colorGray)
			}
			return base
		})

	return t.Render()
}

// Empty renders the placeholder shown when no row matches.
func Empty(msg string) string {
	return dimStyle.Render(msg)
}

// Avatar renders a category's initials badge.
func Avatar(c category.Category) string {
	return avatarStyle.Render("[" + c.Initials() + "]")
}
