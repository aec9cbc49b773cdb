// Package api provides the HTTP server for the ledger daemon.
// It exposes the REST surface the web dashboard consumes.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/forgeledger/forgeledger/internal/app/ledger"
	"github.com/forgeledger/forgeledger/internal/health"
)

// Server is the ledger HTTP API server.
type Server struct {
	ledger         *ledger.Service
	health         *health.Checker
	log            *zap.Logger
	metricsEnabled bool
	corsOrigin     string
}

// NewServer creates a new API server.
func NewServer(svc *ledger.Service, hc *health.Checker, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{ledger: svc, health: hc, log: log, corsOrigin: "*"}
}

// EnableMetrics enables the /metrics Prometheus endpoint.
func (s *Server) EnableMetrics() { s.metricsEnabled = true }

// SetCORSOrigin sets the allowed origin for browser clients.
func (s *Server) SetCORSOrigin(origin string) {
	if origin != "" {
		s.corsOrigin = origin
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))
	r.Use(s.corsMiddleware)

	r.Get("/healthz", s.handleHealthz)

	r.Get("/api/version", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"version": "0.1.0",
		})
	})

	// Ledger API — the contract the dashboard widgets render from.
	r.Route("/api/ledger", func(r chi.Router) {
		r.Get("/summary", s.handleSummary)
		r.Get("/level", s.handleLevel)
		r.Get("/streak", s.handleStreak)
		r.Get("/badges", s.handleListBadges)
		r.Post("/badges", s.handleEarnBadge)
		r.Get("/achievements", s.handleListAchievements)
		r.Post("/achievements", s.handleRecordAchievement)
		r.Post("/points", s.handleAddPoints)
		r.Post("/checkin", s.handleCheckIn)
		r.Get("/stats/weekly", s.handleWeeklyStats)
		r.Get("/stats/categories", s.handleCategoryBreakdown)
		r.Get("/events", s.handleListEvents)
		r.Post("/events/{id}/shown", s.handleEventShown)
	})

	// Prometheus metrics endpoint
	if s.metricsEnabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	return r
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.health == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		return
	}

	status := "ok"
	code := http.StatusOK
	if !s.health.IsHealthy() {
		status = "degraded"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, map[string]interface{}{
		"status": status,
		"checks": s.health.Statuses(),
	})
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]interface{}{
		"error": map[string]interface{}{
			"message": msg,
			"type":    "error",
		},
	})
}

// corsMiddleware adds CORS headers for the browser dashboard.
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.corsOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
