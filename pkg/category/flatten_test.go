package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleForest has two roots with mixed depths:
//
//	1 Electronics
//	  2 Phones
//	    3 Android
//	    4 iOS
//	  5 Laptops
//	6 Garden
func sampleForest() []Category {
	return []Category{
		{
			ID: "1", Name: "Electronics", Type: "physical",
			Children: []Category{
				{
					ID: "2", Name: "Phones", Type: "physical",
					Children: []Category{
						{ID: "3", Name: "Android"},
						{ID: "4", Name: "iOS"},
					},
				},
				{ID: "5", Name: "Laptops"},
			},
		},
		{ID: "6", Name: "Garden", Type: "seasonal"},
	}
}

func ids(rows []FlatCategory) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestFlattenRootAndChild(t *testing.T) {
	forest := []Category{
		{ID: "1", Name: "Root", Children: []Category{{ID: "2", Name: "Child", Children: []Category{}}}},
	}

	rows := Flatten(forest)

	require.Len(t, rows, 2)
	assert.Equal(t, "1", rows[0].ID)
	assert.Equal(t, 0, rows[0].Level)
	assert.Nil(t, rows[0].ParentName)
	assert.True(t, rows[0].IsRoot())

	assert.Equal(t, "2", rows[1].ID)
	assert.Equal(t, 1, rows[1].Level)
	require.NotNil(t, rows[1].ParentName)
	assert.Equal(t, "Root", *rows[1].ParentName)
}

func TestFlattenIndependentRoots(t *testing.T) {
	rows := Flatten([]Category{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}})

	require.Len(t, rows, 2)
	assert.Equal(t, []string{"a", "b"}, ids(rows))
	for _, r := range rows {
		assert.Equal(t, 0, r.Level)
		assert.Nil(t, r.ParentName)
	}
}

func TestFlattenPreOrder(t *testing.T) {
	rows := Flatten(sampleForest())

	assert.Equal(t, []string{"1", "2", "3", "4", "5", "6"}, ids(rows))
	assert.Equal(t, []int{0, 1, 2, 2, 1, 0}, []int{
		rows[0].Level, rows[1].Level, rows[2].Level, rows[3].Level, rows[4].Level, rows[5].Level,
	})
}

func TestFlattenParentNamesAndLevels(t *testing.T) {
	forest := sampleForest()
	rows := Flatten(forest)

	// Build the true parent/depth maps independently of Flatten.
	parent := map[string]string{}
	depth := map[string]int{}
	var walk func(cs []Category, level int, p *Category)
	walk = func(cs []Category, level int, p *Category) {
		for i := range cs {
			depth[cs[i].ID] = level
			if p != nil {
				parent[cs[i].ID] = p.Name
			}
			walk(cs[i].Children, level+1, &cs[i])
		}
	}
	walk(forest, 0, nil)

	require.Len(t, rows, Count(forest))
	for _, r := range rows {
		assert.Equal(t, depth[r.ID], r.Level, "level of %s", r.ID)
		want, hasParent := parent[r.ID]
		if !hasParent {
			assert.Nil(t, r.ParentName, "parent of root %s", r.ID)
			continue
		}
		require.NotNil(t, r.ParentName, "parent of %s", r.ID)
		assert.Equal(t, want, *r.ParentName, "parent of %s", r.ID)
	}
}

func TestFlattenSubtreesAreContiguous(t *testing.T) {
	rows := Flatten(sampleForest())

	// Every row's descendants are exactly the following rows with a greater level.
	for i, r := range rows {
		end := i + 1
		for end < len(rows) && rows[end].Level > r.Level {
			end++
		}
		assert.Equal(t, Count(r.Children), end-i-1, "subtree size of %s", r.ID)
	}
}

func TestFlattenUnnamedParent(t *testing.T) {
	rows := Flatten([]Category{{ID: "1", Children: []Category{{ID: "2", Name: "Child"}}}})

	require.Len(t, rows, 2)
	require.NotNil(t, rows[1].ParentName)
	assert.Equal(t, "", *rows[1].ParentName)
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil))
	assert.Empty(t, Flatten([]Category{}))
}

func TestFlattenDoesNotMutateInput(t *testing.T) {
	forest := sampleForest()
	before := Count(forest)

	first := Flatten(forest)
	second := Flatten(forest)

	assert.Equal(t, before, Count(forest))
	assert.Equal(t, ids(first), ids(second))
	assert.Equal(t, "Electronics", forest[0].Name)
}

func TestCountAndDepth(t *testing.T) {
	tests := []struct {
		name      string
		forest    []Category
		wantCount int
		wantDepth int
	}{
		{"empty", nil, 0, 0},
		{"single", []Category{{ID: "1"}}, 1, 1},
		{"sample", sampleForest(), 6, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantCount, Count(tt.forest))
			assert.Equal(t, tt.wantDepth, Depth(tt.forest))
		})
	}
}
