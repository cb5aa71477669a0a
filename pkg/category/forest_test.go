package category

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	errs "github.com/matzehuels/cattree/pkg/errors"
)

func chain(depth int) []Category {
	var node *Category
	for i := depth; i > 0; i-- {
		c := Category{ID: strconv.Itoa(i)}
		if node != nil {
			c.Children = []Category{*node}
		}
		node = &c
	}
	return []Category{*node}
}

func TestCheckForestValid(t *testing.T) {
	require.NoError(t, CheckForest(sampleForest(), 0))
	require.NoError(t, CheckForest(nil, 0))
}

func TestCheckForestDuplicateID(t *testing.T) {
	forest := []Category{
		{ID: "1", Children: []Category{{ID: "2"}}},
		{ID: "2"},
	}

	err := CheckForest(forest, 0)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeDuplicateID), "code = %s", errs.GetCode(err))
}

func TestCheckForestEmptyID(t *testing.T) {
	err := CheckForest([]Category{{ID: "1", Children: []Category{{Name: "orphan"}}}}, 0)

	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidForest))
}

func TestCheckForestDepth(t *testing.T) {
	forest := chain(5)
	require.Equal(t, 5, Depth(forest))

	assert.NoError(t, CheckForest(forest, 5))

	err := CheckForest(forest, 4)
	require.Error(t, err)
	assert.True(t, errs.Is(err, errs.ErrCodeForestTooDeep))
}

func TestFind(t *testing.T) {
	forest := sampleForest()

	c, ok := Find(forest, "4")
	require.True(t, ok)
	assert.Equal(t, "iOS", c.Name)

	_, ok = Find(forest, "missing")
	assert.False(t, ok)
}
