package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/cattree/pkg/category"
)

func testRows() []category.FlatCategory {
	return category.Flatten([]category.Category{
		{
			ID: "1", Name: "Home Garden", Type: "physical",
			CreatedBy: &category.Author{Name: "Ada", Email: "ada@example.com"},
			CreatedAt: "2025-03-04T10:00:00.000Z",
			Children: []category.Category{
				{ID: "2", Name: "Tools"},
				{ID: "3", Name: "Plants"},
			},
		},
	})
}

func TestCells(t *testing.T) {
	rows := testRows()

	tests := []struct {
		name    string
		row     category.FlatCategory
		compact bool
		want    []string
	}{
		{
			name: "Root",
			row:  rows[0],
			want: []string{"[HG] Home Garden", "physical", "2", "Ada\nada@example.com", "Mar 4, 2025"},
		},
		{
			name: "Child",
			row:  rows[1],
			want: []string{"  [T] Tools\n       Parent: Home Garden", NoType, "0", NoValue, NoValue},
		},
		{
			name:    "CompactChild",
			row:     rows[2],
			compact: true,
			want:    []string{"  [P] Plants", NoType, "0", NoValue, NoValue},
		},
		{
			name: "UnnamedParent",
			row: category.FlatCategory{
				Category:   category.Category{ID: "9", Name: "Orphan"},
				Level:      1,
				ParentName: new(string),
			},
			want: []string{"  [O] Orphan", NoType, "0", NoValue, NoValue},
		},
		{
			name:    "CompactRoot",
			row:     rows[0],
			compact: true,
			want:    []string{"[HG] Home Garden", "physical", "2", "Ada", "Mar 4, 2025"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cells(tt.row, tt.compact)
			require.Len(t, got, len(Headers))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"2024-12-31T23:59:59Z", "Dec 31, 2024"},
		{"", NoValue},
		{"yesterday", NoValue},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDate(tt.in), tt.in)
	}
}

func TestRender(t *testing.T) {
	out := Render(testRows(), Options{Cursor: -1})

	for _, want := range append(Headers, "Home Garden", "Parent: Home Garden", "ada@example.com") {
		assert.Contains(t, out, want)
	}
}

func TestRenderEmpty(t *testing.T) {
	out := Render(nil, Options{Cursor: -1})
	assert.Contains(t, out, "Category", "empty table still renders headers")
}
