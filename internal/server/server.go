// Package server is a development server for the hiring API. It serves the
// load and move endpoints the board talks to from a SQLite database.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/thenoetrevino/hirepipe/internal/database"
	"github.com/thenoetrevino/hirepipe/internal/models"
)

// Store is the data the server exposes
type Store interface {
	ListApplications(ctx context.Context, practiceID, jobPostingID string) ([]models.Application, error)
	ListCandidates(ctx context.Context, practiceID string, excludeArchived bool) ([]models.Candidate, error)
	ListStages(ctx context.Context, practiceID, jobPostingID string) ([]models.StageDefinition, error)
	ListJobPostings(ctx context.Context, practiceID string) ([]models.JobPosting, error)
	UpdateApplicationStage(ctx context.Context, id, stage string) error
	UpdateCandidateStatus(ctx context.Context, id, status string) error
	Ping(ctx context.Context) error
}

// Server handles the hiring endpoints
type Server struct {
	store   Store
	token   string
	latency time.Duration
	metrics *Metrics
}

// Option configures a Server
type Option func(*Server)

// WithToken requires "Authorization: Bearer <token>" on every hiring endpoint
func WithToken(token string) Option {
	return func(s *Server) {
		s.token = token
	}
}

// WithLatency delays every write, which makes optimistic updates visible
func WithLatency(d time.Duration) Option {
	return func(s *Server) {
		s.latency = d
	}
}

// New creates a server over store
func New(store Store, opts ...Option) *Server {
	s := &Server{store: store, metrics: NewMetrics()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Metrics returns the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return http.HandlerFunc(s.handle)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
// ready, when non-nil, receives the bound address once listening.
func (s *Server) Run(ctx context.Context, addr string, ready chan<- string) error {
	lc := net.ListenConfig{}
	listener, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(listener)
	}()

	slog.Info("server listening", "addr", listener.Addr().String())
	if ready != nil {
		ready <- listener.Addr().String()
	}

	select {
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	slog.Info("server stopped")
	return nil
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.metrics.Requests.Add(1)

	if r.Method == http.MethodGet && r.URL.Path == "/api/health" {
		s.handleHealth(w, r)
		return
	}

	parts := splitPath(r.URL.Path)
	if len(parts) < 3 || parts[0] != "api" || parts[1] != "hiring" {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	if s.token != "" && bearerToken(r) != s.token {
		s.metrics.Unauthorized.Add(1)
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	resource, id := parts[2], ""
	if len(parts) == 4 {
		id = parts[3]
	} else if len(parts) > 4 {
		writeError(w, http.StatusNotFound, "Not found")
		return
	}

	switch {
	case r.Method == http.MethodGet && id == "":
		s.handleList(w, r, resource)
	case r.Method == http.MethodPut && resource == "applications" && id != "":
		s.handleUpdateApplication(w, r, id)
	case r.Method == http.MethodPatch && resource == "candidates" && id != "":
		s.handleUpdateCandidate(w, r, id)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	status, code := "ready", http.StatusOK
	if err := s.store.Ping(ctx); err != nil {
		status, code = "not_ready", http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]any{
		"ok":      code == http.StatusOK,
		"status":  status,
		"metrics": s.metrics.Snapshot(),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request, resource string) {
	q := r.URL.Query()
	practiceID := q.Get("practiceId")
	if practiceID == "" {
		writeError(w, http.StatusBadRequest, "practiceId is required")
		return
	}
	jobPostingID := q.Get("jobPostingId")
	needsJob := resource == "applications" || resource == "pipeline-stages"
	if needsJob && jobPostingID == "" {
		writeError(w, http.StatusBadRequest, "jobPostingId is required")
		return
	}

	ctx := r.Context()
	var (
		result any
		err    error
	)
	switch resource {
	case "applications":
		result, err = s.store.ListApplications(ctx, practiceID, jobPostingID)
	case "candidates":
		result, err = s.store.ListCandidates(ctx, practiceID, q.Get("excludeArchived") == "true")
	case "pipeline-stages":
		result, err = s.store.ListStages(ctx, practiceID, jobPostingID)
	case "job-postings":
		result, err = s.store.ListJobPostings(ctx, practiceID)
	default:
		writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		slog.Error("failed to load", "resource", resource, "practice", practiceID, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load "+resource)
		return
	}

	s.metrics.Loads.Add(1)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleUpdateApplication(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Stage string `json:"stage"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.delay(r.Context()) {
		return
	}

	err := s.store.UpdateApplicationStage(r.Context(), id, body.Stage)
	s.finishWrite(w, err, "application", id)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request, id string) {
	var body struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.delay(r.Context()) {
		return
	}

	err := s.store.UpdateCandidateStatus(r.Context(), id, body.Status)
	s.finishWrite(w, err, "candidate", id)
}

// delay waits for the configured latency; false means the client went away
func (s *Server) delay(ctx context.Context) bool {
	if s.latency <= 0 {
		return true
	}
	timer := time.NewTimer(s.latency)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *Server) finishWrite(w http.ResponseWriter, err error, kind, id string) {
	switch {
	case err == nil:
		s.metrics.Writes.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
		return
	case errors.Is(err, database.ErrNotFound):
		writeError(w, http.StatusNotFound, capitalize(kind)+" not found")
	case errors.Is(err, database.ErrUnknownStage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, database.ErrEmptyValue):
		writeError(w, http.StatusBadRequest, "stage or status is required")
	default:
		slog.Error("failed to update", "kind", kind, "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update "+kind)
	}
	s.metrics.FailedWrites.Add(1)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func decodeBody(r *http.Request, target any) error {
	if r.Body == nil {
		return errors.New("request body is required")
	}
	defer func() { _ = r.Body.Close() }()
	if err := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)).Decode(target); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

func splitPath(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
