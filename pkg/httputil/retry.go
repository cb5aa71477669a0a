package httputil

import (
	"context"
	"errors"
	"time"
)

// RetryableError wraps an error to indicate it should trigger a retry.
// Wrap transient failures (network timeouts, 5xx responses) with this type
// so that [Retry] knows to attempt the operation again.
//
// After, when positive, is the server-requested wait (from a Retry-After
// header) and replaces the backoff delay for the next attempt.
type RetryableError struct {
	Err   error
	After time.Duration
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// Retryable wraps err as a [RetryableError]. It returns nil for a nil err.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

// IsRetryable reports whether err is, or wraps, a [RetryableError].
func IsRetryable(err error) bool {
	return errors.As(err, new(*RetryableError))
}

// Policy controls [Retry].
type Policy struct {
	Attempts int           // total attempts, at least 1
	Delay    time.Duration // first backoff delay, doubled after each failure
	MaxDelay time.Duration // cap on any single wait; 0 means uncapped
}

// DefaultPolicy is 3 attempts with a 1 second initial delay, capped at 10s.
var DefaultPolicy = Policy{Attempts: 3, Delay: time.Second, MaxDelay: 10 * time.Second}

// Retry executes fn according to p.
// It only retries errors wrapped with [RetryableError]; other errors are
// returned immediately. Returns the last error if all attempts fail, or
// ctx.Err() if cancelled while waiting.
func Retry(ctx context.Context, p Policy, fn func() error) error {
	attempts := max(p.Attempts, 1)
	delay := p.Delay
	var lastErr error

	for i := range attempts {
		err := fn()
		if err == nil {
			return nil
		}
		lastErr = err

		var re *RetryableError
		if !errors.As(err, &re) {
			return err
		}
		if i == attempts-1 {
			break
		}

		wait := delay
		if re.After > 0 {
			wait = re.After
		}
		if p.MaxDelay > 0 {
			wait = min(wait, p.MaxDelay)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
			delay *= 2
		}
	}
	return lastErr
}

// RetryWithBackoff is [Retry] with [DefaultPolicy].
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return Retry(ctx, DefaultPolicy, fn)
}
