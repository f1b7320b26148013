// Package api exposes the ledger over HTTP: users, expenses and balances
// as plain JSON resources, plus health and metrics endpoints.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tallyhq/tally/internal/service"
)

// Server holds the handlers' dependencies.
type Server struct {
	ledger *service.Ledger
}

// NewRouter constructs the HTTP router over the given ledger.
func NewRouter(ledger *service.Ledger) http.Handler {
	s := &Server{ledger: ledger}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(corsMiddleware)
	r.Use(metricsMiddleware)

	// Health endpoint for infra checks.
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Post("/users", s.handleCreateUser)
	r.Get("/users", s.handleListUsers)
	r.Get("/users/{userID}", s.handleGetUser)

	r.Post("/expenses", s.handleCreateExpense)
	r.Get("/expenses", s.handleListExpenses)

	r.Get("/balances", s.handleListBalances)

	return r
}
