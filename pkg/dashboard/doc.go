// Package dashboard builds the category views shared by the CLI and the
// HTTP server.
//
// A [Runner] fetches category pages through a cached catalog client and
// routes the forest to one of two views:
//
//  1. Table: the forest flattened into indented rows, with the filter
//     columns derived from the same rows and an optional [category.Query]
//     applied on top.
//  2. Graph: the forest turned into nodes and edges by [graph.Build] and
//     positioned by [layout.Apply].
//
// Graph views can be re-laid out in the other direction without
// refetching ([Runner.Relayout]) and rendered to JSON, DOT or SVG
// ([Runner.Render]).
//
// # Usage
//
//	runner := dashboard.NewRunner(client, logger)
//	view, err := runner.Table(ctx, dashboard.TableOptions{Page: 1, Limit: 10})
//	if err != nil {
//	    fmt.Println(view.Message) // "Failed to fetch categories"
//	}
//
//	gv, err := runner.Graph(ctx, dashboard.GraphOptions{Direction: layout.LeftRight})
//	svg, err := runner.Render(ctx, gv, dashboard.RenderOptions{Format: dashboard.FormatSVG})
//
// Mutations go through [Runner.Create], [Runner.Update] and [Runner.Delete].
// Each reports the status lines the user sees ([Notices]); a successful
// mutation invalidates every cached page.
package dashboard
