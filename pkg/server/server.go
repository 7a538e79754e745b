// Package server exposes pipeline validation over HTTP.
//
// The transport is deliberately thin: it parses the request payload, hands
// the node/edge description to the validator, and renders the summary. All
// domain logic lives in pkg/dag and pkg/pipeline; this package only adds
// routing, CORS for the browser-based editor, request IDs, and an optional
// verdict cache in front of the computation.
//
// Each request gets an independent validator call with call-local state, so
// no synchronization is needed across in-flight requests.
package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/pipecheck/pipecheck/pkg/cache"
	"github.com/pipecheck/pipecheck/pkg/config"
)

// Server is the pipecheck HTTP service.
type Server struct {
	cfg     config.Config
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
	httpSrv *http.Server
}

// New creates a server. The cache may be a NullCache when caching is
// disabled; logger must not be nil.
func New(cfg config.Config, c cache.Cache, logger *log.Logger) *Server {
	if c == nil {
		c = cache.NewNullCache()
	}
	return &Server{
		cfg:    cfg,
		cache:  c,
		keyer:  cache.NewDefaultKeyer(),
		logger: logger,
	}
}

// Router builds the chi handler tree. Exposed separately from Start so tests
// can drive the full middleware stack through httptest.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.Server.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Get("/", s.handleHealth)
	r.Get("/health", s.handleHealth)
	r.Post("/pipelines/parse", s.handleParse)

	return r
}

// Start listens on the configured address until Shutdown or a listener
// error. http.ErrServerClosed is swallowed as the normal shutdown path.
func (s *Server) Start() error {
	s.httpSrv = &http.Server{
		Addr:         s.cfg.Server.Addr,
		Handler:      s.Router(),
		ReadTimeout:  s.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: s.cfg.Server.WriteTimeout.Duration,
	}

	s.logger.Info("listening", "addr", s.cfg.Server.Addr, "cache", s.cfg.Cache.Backend)

	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listen on %s: %w", s.cfg.Server.Addr, err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	s.logger.Info("shutting down")
	if err := s.httpSrv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
