package category

import (
	"slices"
	"strings"
)

// Query selects rows of the flattened table view.
//
// Search matches Name case-insensitively as a substring. Types and CreatedBy
// are multi-select filters: when non-empty, a row must match one of the
// listed values. The zero Query matches every row.
type Query struct {
	Search    string   `json:"search,omitempty"`
	Types     []string `json:"types,omitempty"`
	CreatedBy []string `json:"createdBy,omitempty"`
}

// IsZero reports whether the query selects every row.
func (q Query) IsZero() bool {
	return strings.TrimSpace(q.Search) == "" && len(q.Types) == 0 && len(q.CreatedBy) == 0
}

// Match reports whether a row satisfies the query.
func (q Query) Match(row FlatCategory) bool {
	if s := strings.TrimSpace(q.Search); s != "" {
		if !strings.Contains(strings.ToLower(row.Name), strings.ToLower(s)) {
			return false
		}
	}
	if len(q.Types) > 0 && !slices.Contains(q.Types, row.Type) {
		return false
	}
	if len(q.CreatedBy) > 0 && !slices.Contains(q.CreatedBy, row.CreatorName()) {
		return false
	}
	return true
}

// Apply returns the rows matching the query, in their original order.
// Levels and parent names are left untouched, so a matching child keeps its
// indentation even when its parent is filtered out.
func (q Query) Apply(rows []FlatCategory) []FlatCategory {
	if q.IsZero() {
		return slices.Clone(rows)
	}
	out := make([]FlatCategory, 0, len(rows))
	for _, r := range rows {
		if q.Match(r) {
			out = append(out, r)
		}
	}
	return out
}
