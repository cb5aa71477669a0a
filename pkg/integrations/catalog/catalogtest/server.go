// Package catalogtest provides an in-memory category backend for tests.
package catalogtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cattree/pkg/category"
)

// Server is a fake backend speaking the category REST contract. Pages are
// cut over root categories, as the real backend does.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	forest   []category.Category
	nextID   int
	paginate func(*category.Pagination)

	// ListCalls counts GET /categories requests.
	ListCalls atomic.Int32
	// FailList makes GET /categories answer 500 while set.
	FailList atomic.Bool

	lastHeaders atomic.Pointer[http.Header]
}

// NewServer starts a backend serving a copy of forest.
func NewServer(forest []category.Category) *Server {
	s := &Server{forest: clone(forest), nextID: 1000}

	r := chi.NewRouter()
	r.Use(s.recordHeaders)
	r.Get("/categories", s.list)
	r.Post("/categories", s.create)
	r.Put("/categories/{id}", s.update)
	r.Delete("/categories/{id}", s.delete)

	s.Server = httptest.NewServer(r)
	return s
}

// Forest returns a copy of the current forest.
func (s *Server) Forest() []category.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clone(s.forest)
}

// EditPagination makes GET /categories pass its pagination block through
// fn before answering, to imitate a misreporting backend.
func (s *Server) EditPagination(fn func(*category.Pagination)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paginate = fn
}

// LastHeaders returns the headers of the most recent request.
func (s *Server) LastHeaders() http.Header {
	if h := s.lastHeaders.Load(); h != nil {
		return *h
	}
	return nil
}

func (s *Server) recordHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := r.Header.Clone()
		s.lastHeaders.Store(&h)
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	s.ListCalls.Add(1)
	if s.FailList.Load() {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"status": "error", "message": "database unavailable"})
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	page = max(page, 1)
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	total := len(s.forest)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)
	roots := clone(s.forest[start:end])
	pagination := category.Pagination{
		Total: total,
		Page:  page,
		Pages: (total + limit - 1) / limit,
		Limit: limit,
	}
	if s.paginate != nil {
		s.paginate(&pagination)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"status": "success",
		"data": map[string]any{
			"categories": roots,
			"pagination": pagination,
		},
	})
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req category.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "Name is required"})
		return
	}

	s.mu.Lock()
	s.nextID++
	c := category.Category{
		ID:          strconv.Itoa(s.nextID),
		Name:        req.Name,
		Slug:        req.Name,
		Type:        req.Type,
		Description: req.Description,
	}
	s.forest = append(s.forest, c)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "data": c})
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var req category.UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "Invalid body"})
		return
	}

	s.mu.Lock()
	c := find(s.forest, chi.URLParam(r, "id"))
	if c != nil {
		if req.Name != nil {
			c.Name = *req.Name
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		if req.Type != nil {
			c.Type = *req.Type
		}
	}
	var out category.Category
	if c != nil {
		out = *c
	}
	s.mu.Unlock()

	if c == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": "Category not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": map[string]any{"category": out}})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	var ok bool
	s.forest, ok = remove(s.forest, chi.URLParam(r, "id"))
	s.mu.Unlock()

	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"status": "error", "message": "Category not found"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "message": "Category deleted"})
}

func find(cs []category.Category, id string) *category.Category {
	for i := range cs {
		if cs[i].ID == id {
			return &cs[i]
		}
		if c := find(cs[i].Children, id); c != nil {
			return c
		}
	}
	return nil
}

func remove(cs []category.Category, id string) ([]category.Category, bool) {
	for i := range cs {
		if cs[i].ID == id {
			return append(cs[:i:i], cs[i+1:]...), true
		}
		if children, ok := remove(cs[i].Children, id); ok {
			cs[i].Children = children
			return cs, true
		}
	}
	return cs, false
}

func clone(cs []category.Category) []category.Category {
	if cs == nil {
		return []category.Category{}
	}
	out := make([]category.Category, len(cs))
	for i, c := range cs {
		out[i] = c
		if c.Children != nil {
			out[i].Children = clone(c.Children)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
