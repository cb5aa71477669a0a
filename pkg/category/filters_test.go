package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func optionValues(col FilterColumn) []string {
	out := make([]string, len(col.Options))
	for i, o := range col.Options {
		out[i] = o.Value
	}
	return out
}

func TestFilterColumnsDistinctTypes(t *testing.T) {
	categories := []Category{
		{ID: "1", Type: "A"},
		{ID: "2", Type: "B"},
		{ID: "3", Type: "A"},
		{ID: "4", Type: ""},
	}

	cols := FilterColumnsOf(categories)

	require.Len(t, cols, 2)
	assert.Equal(t, ColumnType, cols[0].Column)
	assert.Equal(t, "Type", cols[0].Title)
	assert.True(t, cols[0].Multiple)
	assert.ElementsMatch(t, []string{"A", "B"}, optionValues(cols[0]))
	for _, o := range cols[0].Options {
		assert.Equal(t, o.Value, o.Label)
		assert.Equal(t, IconFolderTree, o.Icon)
	}
}

func TestFilterColumnsCreators(t *testing.T) {
	categories := []Category{
		{ID: "1", CreatedBy: &Author{Name: "Ada", Email: "ada@example.com"}},
		{ID: "2", CreatedBy: &Author{Name: "Grace"}},
		{ID: "3", CreatedBy: &Author{Name: "Ada"}},
		{ID: "4", CreatedBy: &Author{ID: "u-9"}},
		{ID: "5"},
	}

	cols := FilterColumnsOf(categories)

	require.Len(t, cols, 2)
	assert.Equal(t, ColumnCreatedBy, cols[1].Column)
	assert.Equal(t, "Created By", cols[1].Title)
	assert.Equal(t, []string{"Ada", "Grace"}, optionValues(cols[1]))
	assert.Equal(t, IconUser, cols[1].Options[0].Icon)
}

func TestFilterColumnsOverFlattenedRows(t *testing.T) {
	rows := Flatten(sampleForest())

	cols := FilterColumns(rows)

	// "physical" appears on a root and a nested row; "seasonal" only on a root.
	assert.ElementsMatch(t, []string{"physical", "seasonal"}, optionValues(cols[0]))
	assert.Empty(t, cols[1].Options)
}

func TestFilterColumnsEmpty(t *testing.T) {
	cols := FilterColumnsOf(nil)

	require.Len(t, cols, 2)
	assert.Empty(t, cols[0].Options)
	assert.Empty(t, cols[1].Options)
}
