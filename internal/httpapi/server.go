// Package httpapi implements the optional read-only diagnostics surface
// described in SPEC_FULL.md section 6.3: a small HTTP server exposing the
// most recent report tree and diagnostics list for an external renderer to
// poll. It never mutates engine state and never renders Markdown itself.
package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/xerproject/xersched/internal/diagnostics"
	"github.com/xerproject/xersched/internal/logging"
	"github.com/xerproject/xersched/internal/reporting"
)

// Config controls how the diagnostics surface binds and identifies itself
// in health responses.
type Config struct {
	ListenAddr string
	Version    string
}

// Server is the embedded HTTP server backing the diagnostics surface. Its
// zero value is not usable; construct one with New.
type Server struct {
	cfg    Config
	router *mux.Router
	http   *http.Server
	log    *logging.Logger

	mu          sync.RWMutex
	startTime   time.Time
	report      *reporting.ScheduleReport
	windowRep   *reporting.WindowReport
	diagnostics []diagnostics.Diagnostic
}

// New builds a Server bound to cfg.ListenAddr. Call SetReport/SetWindowReport
// after each engine run to publish fresh data; the server answers requests
// from whatever was last published, or 404s until the first run completes.
func New(cfg Config, log *logging.Logger) *Server {
	s := &Server{
		cfg:       cfg,
		log:       log.With("httpapi"),
		startTime: time.Now(),
	}
	s.router = mux.NewRouter()
	s.router.HandleFunc("/healthz", s.handleHealthz).Methods(http.MethodGet)
	s.router.HandleFunc("/report", s.handleReport).Methods(http.MethodGet)
	s.router.HandleFunc("/diagnostics", s.handleDiagnostics).Methods(http.MethodGet)
	s.http = &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: s.router,
	}
	return s
}

// SetReport publishes a schedule report and its diagnostics for subsequent
// requests to /report and /diagnostics.
func (s *Server) SetReport(r *reporting.ScheduleReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = r
	if r != nil {
		s.diagnostics = r.Diagnostics
	}
}

// SetWindowReport publishes a window analysis report for /report requests
// made while the engine is running in window mode.
func (s *Server) SetWindowReport(r *reporting.WindowReport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.windowRep = r
}

// ListenAndServe starts serving and blocks until the server stops for any
// reason other than a graceful Shutdown, matching http.Server.ListenAndServe.
func (s *Server) ListenAndServe() error {
	s.log.Info("diagnostics surface listening", "addr", s.cfg.ListenAddr)
	err := s.http.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown gracefully stops the server, waiting for in-flight requests to
// finish until ctx is done.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("diagnostics surface shutting down")
	return s.http.Shutdown(ctx)
}

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
	UptimeS int64  `json:"uptime_seconds"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Version: s.cfg.Version,
		UptimeS: int64(time.Since(s.startTime).Seconds()),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch {
	case s.report != nil:
		writeJSON(w, http.StatusOK, s.report)
	case s.windowRep != nil:
		writeJSON(w, http.StatusOK, s.windowRep)
	default:
		http.Error(w, "no report available yet", http.StatusNotFound)
	}
}

func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.diagnostics == nil {
		writeJSON(w, http.StatusOK, []diagnostics.Diagnostic{})
		return
	}
	writeJSON(w, http.StatusOK, s.diagnostics)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
