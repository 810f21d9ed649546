// Package server implements the local preview server: it serves the rendered
// site, rebuilds on source changes, and exposes health, status, and metrics.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"git.home.luguber.info/inful/docpress/internal/build"
	"git.home.luguber.info/inful/docpress/internal/config"
	derrors "git.home.luguber.info/inful/docpress/internal/errors"
	"git.home.luguber.info/inful/docpress/internal/history"
	"git.home.luguber.info/inful/docpress/internal/logfields"
	"git.home.luguber.info/inful/docpress/internal/metrics"
)

// Server serves a rendered site and keeps it fresh.
type Server struct {
	cfg       *config.Config
	docsRoot  string
	outputDir string
	builder   *build.Builder
	store     *history.Store // may be nil
	registry  *prom.Registry

	mu      sync.RWMutex
	last    *build.Result
	lastErr error
}

// New creates a preview server. store may be nil when no history database is
// configured.
func New(cfg *config.Config, docsRoot, outputDir string, store *history.Store) *Server {
	registry := prom.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	recorder := metrics.NewPrometheusRecorder(registry)

	return &Server{
		cfg:       cfg,
		docsRoot:  docsRoot,
		outputDir: outputDir,
		builder:   build.NewBuilder(cfg).WithRecorder(recorder),
		store:     store,
		registry:  registry,
	}
}

// Run performs the initial build, starts the watcher and optional rebuild
// schedule, and serves until ctx is canceled.
func (s *Server) Run(ctx context.Context) error {
	// Initial build. A failed first build keeps the server up so the status
	// endpoint can report the problem; the watcher retries on the next change.
	s.rebuild(ctx)

	stopWatch, err := s.startWatcher(ctx)
	if err != nil {
		return err
	}
	defer stopWatch()

	stopSchedule, err := s.startSchedule(ctx)
	if err != nil {
		return err
	}
	defer stopSchedule()

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Serve.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Preview server listening", logfields.Port(s.cfg.Serve.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return derrors.WrapError(err, derrors.CategoryServe, "failed to shut down preview server")
		}
		return nil
	case err := <-errCh:
		return derrors.WrapError(err, derrors.CategoryServe, "preview server failed")
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)

	r.Get("/healthz", s.handleHealth)
	r.Get("/status", s.handleStatus)
	r.Method(http.MethodGet, "/metrics", metrics.HTTPHandler(s.registry))
	r.Handle("/*", http.FileServer(http.Dir(s.outputDir)))
	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

// statusResponse is the JSON body of the /status endpoint.
type statusResponse struct {
	BuildID     string    `json:"build_id,omitempty"`
	Finished    time.Time `json:"finished,omitempty"`
	Documents   int       `json:"documents"`
	Failures    int       `json:"failures"`
	BrokenLinks int       `json:"broken_links"`
	LastError   string    `json:"last_error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	last, lastErr := s.last, s.lastErr
	s.mu.RUnlock()

	resp := statusResponse{}
	if last != nil {
		resp.BuildID = last.BuildID
		resp.Finished = last.Finished
		resp.Documents = last.Documents
		resp.Failures = len(last.Failures)
		resp.BrokenLinks = len(last.BrokenLinks)
	}
	if lastErr != nil {
		resp.LastError = lastErr.Error()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Warn("Failed to encode status response", logfields.Error(err))
	}
}

// rebuild runs one build and records the outcome.
func (s *Server) rebuild(ctx context.Context) {
	result, err := s.builder.Run(ctx, s.outputDir)

	s.mu.Lock()
	if err != nil {
		s.lastErr = err
	} else {
		s.last = result
		s.lastErr = nil
	}
	s.mu.Unlock()

	if err != nil {
		slog.Error("Rebuild failed", logfields.Error(err))
		return
	}
	if s.store != nil {
		if err := s.store.Record(ctx, result); err != nil {
			slog.Warn("Failed to record build history", logfields.Error(err))
		}
	}
}

// LastResult returns the most recent successful build result, if any.
func (s *Server) LastResult() *build.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}
