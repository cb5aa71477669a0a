// Package integrations provides the HTTP client used to talk to the
// category backend.
//
// # Overview
//
// [Client] is the shared transport: it joins paths onto the base URL,
// encodes JSON bodies, maps status codes to coded errors from pkg/errors and
// retries transient failures with backoff. The [catalog] subpackage builds
// the typed category API on top of it.
//
// # Client Behavior
//
// Every request carries a fresh X-Request-ID so backend logs can be
// correlated with ours. GET, PUT and DELETE are retried on network errors,
// 5xx and 429 responses (honoring Retry-After). POST is retried only when
// it carries an Idempotency-Key header, which [Client.Post] always sets.
//
// An optional token-bucket limiter ([Options.RateLimit]) spaces out
// requests, which matters when the tree view fans out page requests.
//
// Outgoing requests are reported to the hooks registered in
// pkg/observability.
//
// [catalog]: github.com/matzehuels/cattree/pkg/integrations/catalog
package integrations
