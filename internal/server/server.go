// Package server exposes the chart over HTTP: the interactive page, the figure
// and color APIs the slider calls on every move, and a PNG rendering.
//
// Every request is an independent recomputation over immutable state, so
// handlers share the Storage and Engine without synchronization.
package server

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rewired-gh/probebar/internal/engine"
	"github.com/rewired-gh/probebar/internal/figure"
	"github.com/rewired-gh/probebar/internal/logger"
	"github.com/rewired-gh/probebar/internal/models"
	"github.com/rewired-gh/probebar/internal/storage"
)

// Options configures a Server.
type Options struct {
	Address         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	Probe  models.ProbeRange
	Marks  int
	Figure figure.Options
}

// Server holds handler dependencies.
type Server struct {
	store     *storage.Storage
	engine    *engine.Engine
	opts      Options
	templates *template.Template
	router    chi.Router
}

// New wires the routes. The figure options inherit the probe range, and the
// PNG rendering shares their geometry.
func New(store *storage.Storage, eng *engine.Engine, opts Options) *Server {
	opts.Figure.Probe = opts.Probe
	opts.Figure = opts.Figure.WithDefaults()
	if opts.Marks < 2 {
		opts.Marks = 9
	}

	s := &Server{
		store:     store,
		engine:    eng,
		opts:      opts,
		templates: parseTemplates(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Get("/chart.png", s.handleChartPNG)
	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/figure", s.handleFigure)
		r.Get("/colors", s.handleColors)
		r.Get("/categories", s.handleCategories)
	})
	return r
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.opts.Address,
		Handler:      s.router,
		ReadTimeout:  s.opts.ReadTimeout,
		WriteTimeout: s.opts.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening on %s", s.opts.Address)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.opts.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) pageTitle() string {
	return strings.ReplaceAll(s.opts.Figure.Title, "<br>", " ")
}
