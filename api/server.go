/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the frontend

ROUTE GROUPS:
  /api/employees/*   Scored roster, feedback, ledger access
  /api/leaderboard   Ranked population per period
  /api/rewards       Reward catalog
  /api/admin/*       Weight configuration, award issuance
  /metrics           Prometheus exposition

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", h.ListEmployees)
			r.Get("/{id}", h.GetEmployee)
			r.Put("/{id}/metrics", h.UpdateMetrics)
			r.Get("/{id}/feedback", h.GetFeedback)
			r.Get("/{id}/transactions", h.GetTransactions)
			r.Get("/{id}/notifications", h.GetNotifications)
			r.Post("/{id}/notifications/{nid}/read", h.MarkNotificationRead)
			r.Post("/{id}/redeem", h.Redeem)
		})

		r.Get("/leaderboard", h.GetLeaderboard)
		r.Get("/rewards", h.ListRewards)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/weights", h.GetWeights)
			r.Put("/weights", h.UpdateWeights)
			r.Post("/awards", h.IssueAwards)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
