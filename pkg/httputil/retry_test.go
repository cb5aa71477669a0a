package httputil

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTransient = errors.New("transient")

func TestRetryable(t *testing.T) {
	assert.Nil(t, Retryable(nil))

	err := Retryable(errTransient)
	assert.True(t, IsRetryable(err))
	assert.ErrorIs(t, err, errTransient)
	assert.EqualError(t, err, errTransient.Error(), "message is preserved")
	assert.False(t, IsRetryable(errTransient))
}

func TestRetry(t *testing.T) {
	fast := Policy{Attempts: 3, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		retryable bool
		wantCalls int
		wantErr   bool
	}{
		{"SucceedsFirstTry", 0, true, 1, false},
		{"SucceedsAfterRetry", 1, true, 2, false},
		{"ExhaustsAttempts", 5, true, 3, true},
		{"PermanentStopsImmediately", 5, false, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), fast, func() error {
				calls++
				if calls > tt.failures {
					return nil
				}
				if tt.retryable {
					return Retryable(errTransient)
				}
				return errTransient
			})
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestRetryZeroAttempts(t *testing.T) {
	calls := 0
	_ = Retry(context.Background(), Policy{}, func() error {
		calls++
		return Retryable(errTransient)
	})
	assert.Equal(t, 1, calls)
}

func TestRetryHonorsAfterWithCap(t *testing.T) {
	p := Policy{Attempts: 2, Delay: time.Hour, MaxDelay: 5 * time.Millisecond}

	start := time.Now()
	calls := 0
	err := Retry(context.Background(), p, func() error {
		calls++
		if calls == 1 {
			return &RetryableError{Err: errTransient, After: time.Hour}
		}
		return nil
	})
	require.NoError(t, err)
	assert.Less(t, time.Since(start), time.Second, "wait is capped")
}

func TestRetryContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := RetryWithBackoff(ctx, func() error {
		return Retryable(errTransient)
	})
	assert.ErrorIs(t, err, context.Canceled)
}
