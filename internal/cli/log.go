// Package cli implements the cattree command-line interface.
//
// This package provides commands for listing and filtering the category
// hierarchy, rendering it as a laid-out tree, browsing it interactively,
// creating, updating and deleting categories, serving the views over HTTP,
// and managing the response cache. The CLI is built using cobra and logs
// through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - list: Print one page of categories as an indented table
//   - filters: Print the Type and Created By filter options
//   - tree: Render the hierarchy as JSON, DOT or SVG
//   - browse: Page through the table interactively
//   - create, update, delete: Change categories on the backend
//   - serve: Expose the views as a JSON/SVG HTTP API
//   - cache: Manage the response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every backend request, cache lookup and layout pass.
//
// # Example
//
//	import "github.com/matzehuels/cattree/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 42 categories (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
