package category

// Flatten projects a forest into rows in pre-order: every category appears
// before its descendants, its children follow it contiguously in sibling
// order, and the whole subtree precedes the next sibling.
//
// Roots get Level 0 and a nil ParentName. Descendants of a category with an
// empty Name receive a non-nil, empty ParentName.
//
// Each level returns a fresh slice that the caller concatenates, so no
// accumulator is shared between calls and the input is never modified.
func Flatten(categories []Category) []FlatCategory {
	return flatten(categories, 0, nil)
}

func flatten(categories []Category, level int, parentName *string) []FlatCategory {
	rows := make([]FlatCategory, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, FlatCategory{
			Category:   c,
			Level:      level,
			ParentName: parentName,
		})
		name := c.Name
		rows = append(rows, flatten(c.Children, level+1, &name)...)
	}
	return rows
}

// Count returns the number of categories across all levels of the forest.
func Count(categories []Category) int {
	n := len(categories)
	for _, c := range categories {
		n += Count(c.Children)
	}
	return n
}

// Depth returns the number of levels in the forest (0 for an empty forest).
func Depth(categories []Category) int {
	depth := 0
	for _, c := range categories {
		depth = max(depth, 1+Depth(c.Children))
	}
	return depth
}
