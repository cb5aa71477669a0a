package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/cattree/pkg/category"
	"github.com/matzehuels/cattree/pkg/dashboard"
	errs "github.com/matzehuels/cattree/pkg/errors"
	"github.com/matzehuels/cattree/pkg/layout"
	"github.com/matzehuels/cattree/pkg/render/nodelink"
)

func (s *Server) table(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, limit, err := pageParams(q)
	if err != nil {
		s.fail(w, err)
		return
	}
	view, err := s.runner.Table(r.Context(), dashboard.TableOptions{
		Page:    page,
		Limit:   limit,
		Refresh: boolParam(q, "refresh"),
		Query: category.Query{
			Search:    q.Get("q"),
			Types:     listParam(q, "type"),
			CreatedBy: listParam(q, "createdBy"),
		},
	})
	if err != nil {
		// The failed view carries the message the table shows.
		writeJSON(w, errs.HTTPStatus(err), view)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	page, limit, err := pageParams(r.URL.Query())
	if err != nil {
		s.fail(w, err)
		return
	}
	cols, err := s.runner.Filters(r.Context(), page, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cols)
}

func (s *Server) graph(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	direction := layout.TopBottom
	if v := q.Get("direction"); v != "" {
		d, err := layout.ParseDirection(v)
		if err != nil {
			s.fail(w, err)
			return
		}
		direction = d
	}
	format := q.Get("format")
	if format == "" {
		format = dashboard.FormatJSON
	}
	if err := dashboard.ValidateFormat(format); err != nil {
		s.fail(w, err)
		return
	}
	engine := nodelink.Engine(q.Get("engine"))
	if engine != "" && engine != nodelink.EngineDot && engine != nodelink.EnginePinned {
		s.fail(w, errs.New(errs.ErrCodeInvalidInput, "invalid engine: %s (must be dot or pinned)", engine))
		return
	}

	view, err := s.runner.Graph(r.Context(), dashboard.GraphOptions{
		Direction: direction,
		All:       boolParam(q, "all"),
		Refresh:   boolParam(q, "refresh"),
	})
	if err != nil {
		s.fail(w, err)
		return
	}
	if format == dashboard.FormatJSON {
		writeJSON(w, http.StatusOK, view)
		return
	}

	data, err := s.runner.Render(r.Context(), view, dashboard.RenderOptions{Format: format, Engine: engine})
	if err != nil {
		s.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", dashboard.ContentTypes[format])
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var req category.CreateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.runner.Create(r.Context(), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, res)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	var req category.UpdateRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	res, err := s.runner.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	res, err := s.runner.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// fail writes err as a JSON error. Server-side failures are logged.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := errs.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "status", status, "error", err)
	}
	code := string(errs.GetCode(err))
	if code == "" {
		code = string(errs.ErrCodeInternal)
	}
	writeError(w, status, code, err.Error())
}

type errorBody struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	var body errorBody
	body.Error.Code = code
	body.Error.Message = message
	writeJSON(w, status, body)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

func pageParams(q url.Values) (page, limit int, err error) {
	if page, err = intParam(q, "page"); err != nil {
		return 0, 0, err
	}
	if limit, err = intParam(q, "limit"); err != nil {
		return 0, 0, err
	}
	return page, limit, nil
}

func intParam(q url.Values, name string) (int, error) {
	v := q.Get(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

func boolParam(q url.Values, name string) bool {
	b, _ := strconv.ParseBool(q.Get(name))
	return b
}

// listParam accepts both repeated (?type=a&type=b) and comma-separated
// (?type=a,b) values.
func listParam(q url.Values, name string) []string {
	var out []string
	for _, v := range q[name] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
