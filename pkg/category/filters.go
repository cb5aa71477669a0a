package category

// Filter column identifiers, matching the row fields they filter on.
const (
	ColumnType      = "type"
	ColumnCreatedBy = "createdBy"
)

// Option icons understood by renderers.
const (
	IconFolderTree = "folder-tree"
	IconUser       = "user"
)

// FilterOption is one selectable value of a filter control.
type FilterOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Icon  string `json:"icon,omitempty"`
}

// FilterColumn describes a filter control over one column.
type FilterColumn struct {
	Column   string         `json:"column"`
	Title    string         `json:"title"`
	Multiple bool           `json:"multiple"`
	Options  []FilterOption `json:"options"`
}

// FilterColumns derives the type and creator filter controls from rows.
// See [FilterColumnsOf].
func FilterColumns(rows []FlatCategory) []FilterColumn {
	categories := make([]Category, len(rows))
	for i, r := range rows {
		categories[i] = r.Category
	}
	return FilterColumnsOf(categories)
}

// FilterColumnsOf derives the distinct, non-empty Type values and creator
// names of categories as two multi-select filter columns. Only the given
// categories are inspected, not their children; pass flattened rows to cover
// a whole forest. Options keep first-seen order.
func FilterColumnsOf(categories []Category) []FilterColumn {
	types := distinct(categories, func(c Category) string { return c.Type })
	creators := distinct(categories, Category.CreatorName)

	return []FilterColumn{
		{
			Column:   ColumnType,
			Title:    "Type",
			Multiple: true,
			Options:  options(types, IconFolderTree),
		},
		{
			Column:   ColumnCreatedBy,
			Title:    "Created By",
			Multiple: true,
			Options:  options(creators, IconUser),
		},
	}
}

func distinct(categories []Category, value func(Category) string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, c := range categories {
		v := value(c)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func options(values []string, icon string) []FilterOption {
	opts := make([]FilterOption, len(values))
	for i, v := range values {
		opts[i] = FilterOption{Label: v, Value: v, Icon: icon}
	}
	return opts
}
