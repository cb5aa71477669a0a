// Package server exposes the category views over HTTP for `cattree serve`.
//
// Routes:
//
//	GET    /health
//	GET    /api/categories/table?page&limit&q&type&createdBy
//	GET    /api/categories/filters?page&limit
//	GET    /api/categories/graph?direction&all&refresh&format&engine
//	POST   /api/categories
//	PUT    /api/categories/{id}
//	DELETE /api/categories/{id}
//
// Errors are JSON objects {"error": {"code", "message"}} with the status
// chosen by errors.HTTPStatus.
package server

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cattree/pkg/dashboard"
)

// maxBodyBytes bounds mutation request bodies.
const maxBodyBytes = 1 << 20

// Server serves dashboard views. It holds no state besides the runner.
type Server struct {
	runner *dashboard.Runner
	logger *log.Logger
}

// New creates a server backed by runner. If logger is nil, the default
// logger is used.
func New(runner *dashboard.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the router with all routes and middleware wired up.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(s.recoverer)
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/health", healthHandler)

	r.Route("/api/categories", func(r chi.Router) {
		r.Get("/table", s.table)
		r.Get("/filters", s.filters)
		r.Get("/graph", s.graph)
		r.Post("/", s.create)
		r.Put("/{id}", s.update)
		r.Delete("/{id}", s.delete)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "no route for "+r.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", r.Method+" not allowed on "+r.URL.Path)
	})
	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
