// Package httputil provides retry helpers for the backend REST client.
//
// # Retry
//
// [Retry] re-runs an operation when it fails with a [RetryableError]. The
// client wraps transient failures that way:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses (honoring Retry-After)
//
// Any other error stops immediately. Waits double after each failure and
// are capped by [Policy.MaxDelay]:
//
//	err := httputil.Retry(ctx, httputil.DefaultPolicy, func() error {
//	    return client.Do(ctx, req)
//	})
//
// # Configuration
//
// [DefaultPolicy] makes 3 attempts with a 1 second initial delay.
package httputil
