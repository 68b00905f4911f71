// Package server exposes the library explorer over HTTP.
//
// The API mirrors a small REST surface: installed-library search and
// introspection under /api/library and /api/search, a package-index
// proxy under /api/pypi, and the natural-language assistant under
// /api/assistant. All responses are JSON except the structure diagram,
// which returns DOT text or SVG.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/liblens/liblens/pkg/assistant"
	"github.com/liblens/liblens/pkg/integrations/pypi"
	"github.com/liblens/liblens/pkg/introspect"
	"github.com/liblens/liblens/pkg/pydist"
)

const shutdownTimeout = 10 * time.Second

// Server wires the service components behind a chi router.
type Server struct {
	env          *pydist.Env
	introspector *introspect.Introspector
	pypi         *pypi.Client
	assistant    *assistant.Assistant
	logger       *log.Logger
	corsOrigins  []string
}

// Options carries the dependencies for a Server.
type Options struct {
	Env          *pydist.Env
	Introspector *introspect.Introspector
	PyPI         *pypi.Client
	Assistant    *assistant.Assistant
	Logger       *log.Logger
	CORSOrigins  []string
}

// New assembles a Server. A nil logger falls back to log.Default();
// empty CORS origins allow every origin.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return &Server{
		env:          opts.Env,
		introspector: opts.Introspector,
		pypi:         opts.PyPI,
		assistant:    opts.Assistant,
		logger:       logger,
		corsOrigins:  origins,
	}
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.cors)
	r.Use(s.recoverer)

	r.Get("/", s.handleIndex)
	r.Route("/api", func(r chi.Router) {
		r.Get("/search", s.handleSearch)
		r.Route("/library/{name}", func(r chi.Router) {
			r.Get("/", s.handleLibrary)
			r.Get("/source", s.handleSource)
			r.Get("/examples", s.handleExamples)
			r.Get("/graph", s.handleGraph)
		})
		r.Post("/assistant/query", s.handleAssistant)
		r.Get("/pypi/search", s.handlePyPISearch)
		r.Get("/pypi/package/{name}", s.handlePyPIPackage)
	})
	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
