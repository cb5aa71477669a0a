// Package category defines the category entity served by the catalog backend
// and the pure transformations the dashboard views are built from.
//
// # Overview
//
// A category forest is an ordered slice of root [Category] values, each owning
// its subtree through Children. The forest is a plain value tree: decoding it
// from JSON cannot produce cycles, and none of the functions in this package
// mutate their input.
//
// # Transformations
//
//   - [Flatten]: pre-order projection into [FlatCategory] rows carrying the
//     depth (Level) and the parent's display name (ParentName).
//   - [FilterColumns]: distinct type and creator options for filter controls.
//   - [Query.Apply]: name search plus type/creator filtering over flat rows.
//
// The graph projection of the same forest lives in the graph package.
//
// # Boundary checks
//
// [CheckForest] validates a forest received from the backend (unique, non-empty
// ids and a bounded depth). The transformations themselves stay total and do
// not repeat these checks.
//
// # Requests
//
// [CreateRequest] and [UpdateRequest] are the typed mutation payloads. Call
// Validate before sending them; validation uses go-playground/validator tags.
package category
