// Package server exposes the curation API over HTTP.
//
// The server wraps a [store.Store] and a [pipeline.Runner] behind a
// JSON API used by the dashboard frontend:
//
//	GET    /healthz              liveness probe
//	GET    /api/version          build information
//	GET    /api/trends           list stored trends
//	POST   /api/trends           create or update a trend
//	GET    /api/trends/{id}      fetch one trend
//	DELETE /api/trends/{id}      delete a trend
//	GET    /api/layout           compose a board from stored trends
//	POST   /api/fetch/{platform} pull fresh candidates from a platform
//	GET    /api/categories       list category bands
//	PUT    /api/categories       replace category bands
//	GET    /api/branding         fetch board branding
//	PUT    /api/branding         replace board branding
//
// Errors are returned as {"error": "...", "code": "..."} with the
// machine-readable codes from the errors package.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mkessel/trendmap/pkg/pipeline"
	"github.com/mkessel/trendmap/pkg/store"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the curation API server.
type Server struct {
	cfg        Config
	store      store.Store
	runner     *pipeline.Runner
	fetchers   map[string]pipeline.Fetcher
	logger     *log.Logger
	router     chi.Router
	httpServer *http.Server
}

// New creates a server with all dependencies. A nil fetchers map
// disables the fetch endpoint (it answers MISSING_CREDENTIALS).
func New(cfg Config, st store.Store, runner *pipeline.Runner, fetchers map[string]pipeline.Fetcher, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{
		cfg:      cfg,
		store:    st,
		runner:   runner,
		fetchers: fetchers,
		logger:   logger,
	}
	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/version", s.handleVersion)

		r.Route("/trends", func(r chi.Router) {
			r.Get("/", s.handleListTrends)
			r.Post("/", s.handleSaveTrend)
			r.Get("/{id}", s.handleGetTrend)
			r.Delete("/{id}", s.handleDeleteTrend)
		})

		r.Get("/layout", s.handleLayout)
		r.Post("/fetch/{platform}", s.handleFetch)

		r.Get("/categories", s.handleListCategories)
		r.Put("/categories", s.handleSaveCategories)

		r.Get("/branding", s.handleGetBranding)
		r.Put("/branding", s.handleSaveBranding)
	})

	return r
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info("trendmap server listening", "addr", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
