// Package web serves the control API, the rendered chart and the live page.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"pingclock/internal/monitor"
)

// Controller is the sampler as seen by the HTTP layer
type Controller interface {
	Start(host string, interval time.Duration) error
	Stop()
	Snapshot() monitor.Snapshot
	Subscribe() (<-chan monitor.Snapshot, func())
}

// Defaults prefill the start form while no session is running
type Defaults struct {
	Host     string
	Interval time.Duration
}

// Server handles web requests
type Server struct {
	ctl         Controller
	addr        string
	staticFiles fs.FS
	metrics     http.Handler
	router      *mux.Router

	mu       sync.RWMutex
	defaults Defaults
}

// New creates a new web server. staticFS must hold a static/ directory;
// metrics may be nil.
func New(ctl Controller, addr string, defaults Defaults, staticFS fs.FS, metrics http.Handler) *Server {
	s := &Server{
		ctl:         ctl,
		addr:        addr,
		staticFiles: staticFS,
		metrics:     metrics,
		defaults:    defaults,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/state", s.handleState).Methods(http.MethodGet)
	api.HandleFunc("/start", s.handleStart).Methods(http.MethodPost)
	api.HandleFunc("/stop", s.handleStop).Methods(http.MethodPost)
	api.HandleFunc("/chart.{format:png|svg}", s.handleChart).Methods(http.MethodGet)
	api.HandleFunc("/live", s.handleLive).Methods(http.MethodGet)

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics).Methods(http.MethodGet)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	// Static files - serve embedded static/ directory as webroot
	if s.staticFiles != nil {
		if staticFS, err := fs.Sub(s.staticFiles, "static"); err == nil {
			r.PathPrefix("/").Handler(http.FileServer(http.FS(staticFS)))
		}
	}

	return r
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// SetDefaults replaces the start form defaults
func (s *Server) SetDefaults(d Defaults) {
	s.mu.Lock()
	s.defaults = d
	s.mu.Unlock()
}

func (s *Server) currentDefaults() Defaults {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaults
}

// Run serves until ctx is done, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Web server listening on %s", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web server shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	log.Info("Web server stopped")
	return nil
}
