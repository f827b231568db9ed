// Package server exposes a loaded session over a small JSON API so
// collaborators can read statements, cash positions, and aging without the
// CLI. It serves data only; rendering is the client's problem.
package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/finboard-dev/finboard/internal/aging"
	"github.com/finboard-dev/finboard/internal/cashpos"
	"github.com/finboard-dev/finboard/internal/jobs"
	"github.com/finboard-dev/finboard/internal/model"
	"github.com/finboard-dev/finboard/internal/statement"
)

// Server holds everything one running instance serves: the statement
// session, the reconstructed cash table, and precomputed invoice metrics.
// Toggles mutate session visibility, so handlers serialize through mu.
type Server struct {
	mu       sync.Mutex
	session  *statement.Session
	accounts []model.CashAccount
	cash     *cashpos.Table
	ar       []aging.ARMetrics
	ap       []aging.APMetrics
	jobs     []jobs.Metrics
	excluded []string // managers excluded from the per-manager rollup
	now      func() time.Time
}

// Option configures a Server beyond its session.
type Option func(*Server)

// WithCash attaches cash accounts and their reconstructed balance table.
func WithCash(accounts []model.CashAccount, table *cashpos.Table) Option {
	return func(s *Server) {
		s.accounts = accounts
		s.cash = table
	}
}

// WithAging attaches computed AR and AP invoice metrics.
func WithAging(ar []aging.ARMetrics, ap []aging.APMetrics) Option {
	return func(s *Server) {
		s.ar = ar
		s.ap = ap
	}
}

// WithJobs attaches computed job cost metrics and the excluded-manager list.
func WithJobs(metrics []jobs.Metrics, excludedManagers []string) Option {
	return func(s *Server) {
		s.jobs = metrics
		s.excluded = excludedManagers
	}
}

// WithClock overrides the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New builds a Server around a session.
func New(session *statement.Session, opts ...Option) *Server {
	s := &Server{session: session, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Router wires the API routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/statement/{type}", s.handleStatement).Methods("GET")
	r.HandleFunc("/api/statement/{type}/matrix", s.handleMatrix).Methods("GET")
	r.HandleFunc("/api/cash/positions", s.handleCashPositions).Methods("GET")
	r.HandleFunc("/api/aging/{side}", s.handleAging).Methods("GET")
	r.HandleFunc("/api/jobs", s.handleJobs).Methods("GET")
	r.HandleFunc("/api/rows/{type}/{id}/toggle", s.handleToggle).Methods("POST")
	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")
	return r
}

// ListenAndServe blocks serving the API on addr.
func (s *Server) ListenAndServe(addr string) error {
	log.Printf("listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
