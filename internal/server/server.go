// Package server exposes the studio workflows over HTTP.
package server

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/core"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/knowledge"
	"github.com/Lyzr-Apps/prd-ai-amazing-zone-8xq5/internal/studio"
)

// Config holds the HTTP settings.
type Config struct {
	Addr string

	// MaxUploadBytes caps the multipart body of an upload. The validator
	// applies the real file size limit.
	MaxUploadBytes int64

	// Defaults fills generation fields a request leaves out.
	Defaults core.GenerateRequest
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: knowledge.DefaultMaxBytes + 1<<20,
		Defaults:       core.DefaultGenerateRequest(),
	}
}

// Server serves one studio session. At most one upload and one generation
// run at a time; a second request of the same kind gets 409.
type Server struct {
	svc *studio.Service
	cfg Config
	log *slog.Logger

	uploading  atomic.Bool
	generating atomic.Bool
}

// New creates a server. log may be nil.
func New(svc *studio.Service, cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = DefaultConfig().MaxUploadBytes
	}
	return &Server{svc: svc, cfg: cfg, log: log}
}

// Routes builds the router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(chiMiddleware.Recoverer)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", s.handleListDocuments)
			r.Post("/", s.handleUpload)
			r.Get("/{id}", s.handleGetDocument)
			r.Delete("/{id}", s.handleDeleteDocument)
			r.Post("/{id}/star", s.handleToggleStar)
			r.Post("/{id}/tags", s.handleAddTag)
			r.Delete("/{id}/tags/{tag}", s.handleRemoveTag)
		})

		r.Route("/prds", func(r chi.Router) {
			r.Get("/", s.handleListPRDs)
			r.Post("/", s.handleGenerate)
			r.Get("/{id}", s.handleGetPRD)
			r.Delete("/{id}", s.handleDeletePRD)
			r.Get("/{id}/export", s.handleExport)
			r.Get("/{id}/preview", s.handlePreview)
		})

		r.Post("/render", s.handleRender)
		r.Get("/activity", s.handleActivity)
		r.Get("/dashboard", s.handleDashboard)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.Routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // generation can take minutes
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", "addr", srv.Addr)
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

	s.log.Info("shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start),
			"request_id", chiMiddleware.GetReqID(r.Context()),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
