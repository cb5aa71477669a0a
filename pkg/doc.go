// Package pkg provides the core libraries for cattree, a client for a
// hierarchical product category backend.
//
// # Overview
//
// cattree reads a forest of categories from a REST backend and presents it
// two ways: as an indented table with search and filters, and as a laid-out
// node-link tree. The pkg directory is organized into these areas:
//
//  1. Domain: [category] (types, flattening, filters) and [graph]
//     (node-link graph built from the forest)
//  2. Layout and rendering: [layout] (tidy tree positions), [render/table]
//     and [render/nodelink]
//  3. Integrations: [integrations] (HTTP client with retries and rate
//     limiting) and [integrations/catalog] (the category REST contract)
//  4. Orchestration: [dashboard] (fetch, flatten, lay out and render, used by
//     both the CLI and the HTTP server)
//  5. Infrastructure: [cache], [config], [errors], [observability]
//
// # Architecture
//
// The typical data flow:
//
//	REST backend (GET /categories?page=&limit=)
//	         ↓
//	    [integrations/catalog] (fetch page, validate forest, cache)
//	         ↓
//	    [category] Flatten ──→ table rows + filter options
//	         ↓
//	    [graph] Build ──→ [layout] Apply ──→ JSON/DOT/SVG
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/cattree/pkg/dashboard"
//	    "github.com/matzehuels/cattree/pkg/integrations"
//	    "github.com/matzehuels/cattree/pkg/integrations/catalog"
//	)
//
//	api := integrations.NewClient("http://localhost:5000/api", integrations.Options{})
//	runner := dashboard.NewRunner(catalog.NewClient(api), logger)
//
//	view, err := runner.Table(ctx, dashboard.TableOptions{Page: 1, Limit: 10})
//	tree, err := runner.Graph(ctx, dashboard.GraphOptions{Direction: layout.TB})
//	svg, err := runner.Render(ctx, tree, dashboard.RenderOptions{Format: dashboard.FormatSVG})
//
// # Testing
//
//	go test ./pkg/...
//
// Backend-facing tests run against [integrations/catalog/catalogtest], an
// in-memory implementation of the REST contract.
//
// [category]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/category
// [graph]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/graph
// [layout]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/layout
// [render/table]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/render/table
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/render/nodelink
// [integrations]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/integrations
// [integrations/catalog]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/integrations/catalog
// [integrations/catalog/catalogtest]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/integrations/catalog/catalogtest
// [dashboard]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/dashboard
// [cache]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/cattree/pkg/observability
package pkg
