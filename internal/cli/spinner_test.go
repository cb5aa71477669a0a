package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerBasic(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Creating category...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	assert.False(t, s.Cancelled(), "Stop does not count as cancellation")
	assert.Contains(t, buf.String(), "Creating category...")
}

func TestSpinnerWithContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, &bytes.Buffer{}, "Testing with context...")
	s.Start()

	cancel()

	// Give goroutine time to notice cancellation
	time.Sleep(100 * time.Millisecond)

	assert.True(t, s.Cancelled(), "cancelled after context cancellation")
}

func TestSpinnerWithTimeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := newSpinner(ctx, &bytes.Buffer{}, "Testing with timeout...")
	s.Start()

	time.Sleep(100 * time.Millisecond)

	assert.True(t, s.Cancelled(), "cancelled after context timeout")
}

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), &bytes.Buffer{}, "Testing idempotent stop...")
	s.Start()

	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
		s.Stop()
	})
}

func TestSpinnerStopWithSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Deleting category...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithSuccess("Category deleted successfully!")

	assert.Contains(t, buf.String(), "Category deleted successfully!")
}

func TestSpinnerStopWithError(t *testing.T) {
	var buf bytes.Buffer
	s := newSpinner(context.Background(), &buf, "Updating category...")
	s.Start()
	time.Sleep(50 * time.Millisecond)
	s.StopWithError("Failed to update category")

	assert.Contains(t, buf.String(), "Failed to update category")
}
