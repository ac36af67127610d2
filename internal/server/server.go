// Package server exposes the pipeline operations over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-playground/validator/v10"

	"github.com/sant0-9/mindppt/internal/config"
	"github.com/sant0-9/mindppt/internal/llm"
	"github.com/sant0-9/mindppt/internal/logger"
	"github.com/sant0-9/mindppt/internal/pipeline"
	"github.com/sant0-9/mindppt/internal/style"
)

// Options wires a Server. Config and Pipeline are required.
type Options struct {
	Config   *config.Config
	Pipeline *pipeline.Pipeline
	Logger   *logger.Logger
	Metrics  *Metrics
	Guard    *llm.Guard
	Now      func() time.Time
}

// Server serves the JSON API.
type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	log      *logger.Logger
	metrics  *Metrics
	guard    *llm.Guard
	validate *validator.Validate
	now      func() time.Time
}

func New(opts Options) *Server {
	s := &Server{
		cfg:      opts.Config,
		pipeline: opts.Pipeline,
		log:      opts.Logger,
		metrics:  opts.Metrics,
		guard:    opts.Guard,
		validate: newValidator(),
		now:      opts.Now,
	}
	if s.log == nil {
		s.log = logger.Nop()
	}
	if s.metrics == nil {
		s.metrics = NewMetrics("mindppt")
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// newValidator reports fields by their JSON names and knows the "style" tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	_ = v.RegisterValidation("style", func(fl validator.FieldLevel) bool {
		return style.Valid(fl.Field().String())
	})
	return v
}

// Handler configures all routes and middleware
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(chimiddleware.Recoverer)
	r.Use(instrument(s.metrics))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", s.metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze-text", s.analyzeText)
		r.Post("/generate-outline", s.generateOutline)
		r.Post("/generate-ppt", s.generatePPT)
		r.Get("/styles", s.listStyles)
		r.Get("/test-env", s.testEnv)
	})

	return r
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      5 * time.Minute, // outline generation may take minutes
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("starting server", "addr", addr, "provider", s.cfg.Provider, "mode", s.cfg.LogMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	s.log.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
