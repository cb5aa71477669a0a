package category

import (
	errs "github.com/matzehuels/cattree/pkg/errors"
)

// DefaultMaxDepth bounds forest depth accepted by [CheckForest].
const DefaultMaxDepth = 64

// CheckForest validates a forest received from the backend.
//
// It rejects forests where a category has an empty id (ErrCodeInvalidForest),
// where two categories share an id (ErrCodeDuplicateID), or where nesting is
// deeper than maxDepth levels (ErrCodeForestTooDeep). A maxDepth <= 0 selects
// [DefaultMaxDepth].
//
// The walk uses an explicit stack so arbitrarily deep input cannot exhaust the
// goroutine stack before the depth check fires.
func CheckForest(categories []Category, maxDepth int) error {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	type frame struct {
		c     *Category
		level int
	}

	stack := make([]frame, 0, len(categories))
	for i := len(categories) - 1; i >= 0; i-- {
		stack = append(stack, frame{c: &categories[i]})
	}

	seen := make(map[string]struct{})
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.level >= maxDepth {
			return errs.New(errs.ErrCodeForestTooDeep, "category %q is nested deeper than %d levels", f.c.ID, maxDepth)
		}
		if f.c.ID == "" {
			return errs.New(errs.ErrCodeInvalidForest, "category %q has an empty id", f.c.Name)
		}
		if _, dup := seen[f.c.ID]; dup {
			return errs.New(errs.ErrCodeDuplicateID, "duplicate category id %q", f.c.ID)
		}
		seen[f.c.ID] = struct{}{}

		for i := len(f.c.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{c: &f.c.Children[i], level: f.level + 1})
		}
	}
	return nil
}

// Find returns the category with the given id anywhere in the forest.
func Find(categories []Category, id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
		if found, ok := Find(c.Children, id); ok {
			return found, true
		}
	}
	return Category{}, false
}
