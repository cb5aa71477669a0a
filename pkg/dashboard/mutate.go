package dashboard

import (
	"context"

	"github.com/matzehuels/cattree/pkg/category"
)

// Action names a category mutation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Notice holds the status lines shown while a mutation runs and after it
// settles.
type Notice struct {
	Loading string
	Success string
	Failure string
}

var notices = map[Action]Notice{
	ActionCreate: {"Creating category...", "Category created successfully!", "Failed to create category"},
	ActionUpdate: {"Updating category...", "Category updated successfully!", "Failed to update category"},
	ActionDelete: {"Deleting category...", "Category deleted successfully!", "Failed to delete category"},
}

// Notices returns the status lines of an action.
func Notices(a Action) Notice { return notices[a] }

// MutationError reports a failed mutation. It unwraps to the backend or
// validation error, so error codes survive.
type MutationError struct {
	Action Action
	Err    error
}

func (e *MutationError) Error() string {
	return Notices(e.Action).Failure + ": " + e.Err.Error()
}

func (e *MutationError) Unwrap() error { return e.Err }

// Result is a settled mutation.
type Result struct {
	Action   Action             `json:"action"`
	Message  string             `json:"message"`
	Category *category.Category `json:"category,omitempty"`
}

// Create adds a category.
func (r *Runner) Create(ctx context.Context, req category.CreateRequest) (*Result, error) {
	return r.mutate(ActionCreate, func() (*category.Category, error) {
		return r.Catalog.Create(ctx, req)
	})
}

// Update changes a category.
func (r *Runner) Update(ctx context.Context, id string, req category.UpdateRequest) (*Result, error) {
	return r.mutate(ActionUpdate, func() (*category.Category, error) {
		return r.Catalog.Update(ctx, id, req)
	}, "id", id)
}

// Delete removes a category and its subtree.
func (r *Runner) Delete(ctx context.Context, id string) (*Result, error) {
	return r.mutate(ActionDelete, func() (*category.Category, error) {
		return nil, r.Catalog.Delete(ctx, id)
	}, "id", id)
}

func (r *Runner) mutate(action Action, fn func() (*category.Category, error), keyvals ...any) (*Result, error) {
	n := Notices(action)
	r.Logger.Debug(n.Loading, keyvals...)

	c, err := fn()
	if err != nil {
		r.Logger.Debug(n.Failure, append(keyvals, "error", err)...)
		return nil, &MutationError{Action: action, Err: err}
	}
	if c != nil {
		keyvals = append(keyvals, "name", c.Name)
	}
	r.Logger.Info(n.Success, keyvals...)
	return &Result{Action: action, Message: n.Success, Category: c}, nil
}
