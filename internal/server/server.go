// Package server exposes a sampling engine over HTTP.
//
// The server wraps one engine instance configured from a scenario file at
// startup. Clients drive the same workflow the CLI does: start a design,
// edit points manually, export the snapshot, reset. Workflow violations
// map to 409, constraint rejections to 422.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/plotsample/plotsample/pkg/sample"
)

// Config is the scenario a server instance operates on. The server keeps
// it so a reset can restore the configured state instead of stranding the
// engine idle.
type Config struct {
	Regions     []sample.Region
	Exclusions  []sample.ExclusionZone
	Constraints sample.Constraints
	Grid        sample.GridSpec
}

// Server routes HTTP requests onto a sampling engine.
type Server struct {
	engine *sample.Engine
	config Config
	logger *log.Logger
	router chi.Router
}

// New creates a server around an engine and configures it from cfg.
func New(engine *sample.Engine, cfg Config, logger *log.Logger) (*Server, error) {
	if err := engine.Configure(cfg.Regions, cfg.Exclusions, cfg.Constraints); err != nil {
		return nil, err
	}
	s := &Server{
		engine: engine,
		config: cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe runs the server on addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// routes builds the chi router with all endpoints registered.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/state", s.handleState)
	r.Post("/runs/random", s.handleRandomRun)
	r.Post("/runs/grid", s.handleGridRun)
	r.Get("/points", s.handlePoints)
	r.Post("/points", s.handleAddPoint)
	r.Delete("/points/nearest", s.handleRemovePoint)
	r.Post("/reset", s.handleReset)

	return r
}

// logRequests logs one line per request with method, path and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).Round(time.Microsecond),
		)
	})
}

// statusForError maps engine errors onto HTTP status codes.
func statusForError(err error) int {
	var rej *sample.RejectionError
	switch {
	case errors.As(err, &rej):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sample.ErrRunInProgress),
		errors.Is(err, sample.ErrSamplesExist),
		errors.Is(err, sample.ErrNotConfigured),
		errors.Is(err, sample.ErrNoGrid),
		errors.Is(err, sample.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, sample.ErrInvalidTarget),
		errors.Is(err, sample.ErrInvalidSpacing),
		errors.Is(err, sample.ErrNoRegions):
		return http.StatusBadRequest
	case errors.Is(err, sample.ErrCancelled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}
