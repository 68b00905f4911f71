package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/liblens/liblens/pkg/errors"
	"github.com/liblens/liblens/pkg/integrations/pypi"
	"github.com/liblens/liblens/pkg/introspect"
	"github.com/liblens/liblens/pkg/render"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "API is running"})
}

// handleSearch lists installed distributions matching ?q.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"packages": s.env.Search(query),
	})
}

func (s *Server) handleLibrary(w http.ResponseWriter, r *http.Request) {
	info, err := s.introspector.ListMembers(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "success",
		"metadata":  info.Metadata,
		"classes":   info.Classes,
		"functions": info.Functions,
		"constants": info.Constants,
	})
}

func (s *Server) handleSource(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	elemType := q.Get("type")
	elemName := q.Get("name")
	if elemType == "" || elemName == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("Missing parameters: 'type' and 'name' are required."))
		return
	}
	kind, err := introspect.ParseKind(elemType)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid element type or missing parent class for method."))
		return
	}

	source, err := s.introspector.GetSource(r.Context(), chi.URLParam(r, "name"), introspect.SourceRequest{
		Kind:   kind,
		Name:   elemName,
		Parent: q.Get("parent"),
	})
	if errors.Is(err, errors.ErrCodeSourceUnavailable) {
		// A resolvable element without source text succeeds: the
		// explanation ships in place of the source body.
		source, err = errors.UserMessage(err), nil
	}
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "success",
		"source_code": source,
	})
}

func (s *Server) handleExamples(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	examples, err := s.introspector.Examples(r.Context(), name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "success",
		"library_name": name,
		"examples":     examples,
	})
}

// handleGraph returns a structure diagram as DOT text, or SVG when
// ?format=svg is given.
func (s *Server) handleGraph(w http.ResponseWriter, r *http.Request) {
	info, err := s.introspector.ListMembers(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		writeError(w, err)
		return
	}

	q := r.URL.Query()
	dot := render.ToDOT(info, render.Options{
		ShowMethods:  q.Get("methods") == "true",
		MaxConstants: 10,
	})

	switch q.Get("format") {
	case "", "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(dot))
	case "svg":
		svg, err := render.RenderSVG(r.Context(), dot)
		if err != nil {
			writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "render diagram"))
			return
		}
		w.Header().Set("Content-Type", "image/svg+xml")
		_, _ = w.Write(svg)
	default:
		writeError(w, errors.New(errors.ErrCodeInvalidRequest, "format must be 'dot' or 'svg'"))
	}
}

func (s *Server) handleAssistant(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidRequest, "invalid JSON body"))
		return
	}

	resp, err := s.assistant.Answer(r.Context(), req.Query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handlePyPISearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := pypi.Query{
		Query:      q.Get("q"),
		SortBy:     q.Get("sort_by"),
		ExactMatch: q.Get("exact_match") == "true",
	}
	var err error
	if query.Page, err = intParam(q.Get("page")); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidRequest, "page must be a positive integer"))
		return
	}
	if query.PerPage, err = intParam(q.Get("per_page")); err != nil {
		writeError(w, errors.New(errors.ErrCodeInvalidRequest, "per_page must be a positive integer"))
		return
	}

	result, err := s.pypi.Search(r.Context(), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"packages": result.Packages,
		"total":    result.Total,
		"page":     result.Page,
		"pages":    result.Pages,
	})
}

func (s *Server) handlePyPIPackage(w http.ResponseWriter, r *http.Request) {
	refresh := r.URL.Query().Get("refresh") == "true"
	pkg, err := s.pypi.FetchPackage(r.Context(), chi.URLParam(r, "name"), refresh)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "success",
		"info":     pkg.Info,
		"releases": pkg.Releases,
	})
}

func intParam(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "invalid integer %q", raw)
	}
	return n, nil
}
