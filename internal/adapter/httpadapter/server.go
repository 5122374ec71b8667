// Package httpadapter exposes the latest aggregation snapshot plus health,
// readiness, and metrics endpoints.
package httpadapter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/crisismap/signal-aggregator/internal/store"
)

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// SnapshotReader hands out the most recent completed snapshot.
type SnapshotReader interface {
	Latest() (store.Snapshot, bool)
}

// Server serves the read API alongside /healthz, /readyz, and /metrics.
type Server struct {
	httpServer *http.Server
	snapshots  SnapshotReader
	logger     *slog.Logger
}

// NewServer creates the HTTP server and wires all routes.
func NewServer(addr string, snapshots SnapshotReader, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		snapshots: snapshots,
		logger:    logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /v1/outages", s.handleOutages)
	mux.HandleFunc("GET /v1/conflicts", s.handleConflicts)
	mux.HandleFunc("GET /v1/snapshot", s.handleSnapshot)

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

// handleOutages returns the outage layer of the latest snapshot. Before the
// first run completes it serves an empty list rather than an error, so map
// clients can poll from startup.
func (s *Server) handleOutages(w http.ResponseWriter, _ *http.Request) {
	snap, _ := s.snapshots.Latest()
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":       snap.RunID,
		"generated_at": snap.GeneratedAt,
		"outages":      emptyIfNil(snap.Outages),
	})
}

// handleConflicts returns the conflict hotspots and arcs of the latest
// snapshot, with the same empty-list behavior as handleOutages.
func (s *Server) handleConflicts(w http.ResponseWriter, _ *http.Request) {
	snap, _ := s.snapshots.Latest()
	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":       snap.RunID,
		"generated_at": snap.GeneratedAt,
		"hotspots":     emptyIfNil(snap.Hotspots),
		"arcs":         emptyIfNil(snap.Arcs),
	})
}

// handleSnapshot returns the full latest snapshot, or 404 before the first
// run completes.
func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshots.Latest()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no snapshot available"})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
