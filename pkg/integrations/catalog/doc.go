// Package catalog is the typed client for the category backend.
//
// It exposes the four operations of the REST contract:
//
//	GET    /categories?page={n}&limit={m}
//	POST   /categories
//	PUT    /categories/{id}
//	DELETE /categories/{id}
//
// Responses are wrapped in the backend envelope
// {"status", "message", "data"}; [Client] unwraps it and reports a
// "status": "error" envelope as a failure even when the HTTP status was 2xx.
//
// # Caching
//
// List pages are cached under keys that embed the collection generation.
// Every successful mutation stores a new generation, so the next List
// observes the change regardless of the cache backend and without deleting
// entries one by one.
//
// # Validation
//
// Forests returned by List are checked with category.CheckForest before
// they reach the transformers; ids are checked with errors.ValidateID
// before they are placed in a URL path.
package catalog
