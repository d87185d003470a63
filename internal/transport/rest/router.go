// Package rest wires the practice engine into a JSON-over-HTTP surface.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/vodexapp/vodex-backend/internal/transport/middleware"
)

// NewRouter assembles the HTTP routes. Health probes are served bare;
// gym endpoints go through the full middleware chain.
func NewRouter(gymHandler *GymHandler, healthHandler *HealthHandler, logger *slog.Logger) http.Handler {
	api := middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Identity,
	)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.Handle("POST /gym/sessions", api(http.HandlerFunc(gymHandler.GenerateSession)))
	mux.Handle("POST /gym/sessions/{id}/results", api(http.HandlerFunc(gymHandler.SubmitResult)))
	mux.Handle("GET /gym/sessions/{id}/results", api(http.HandlerFunc(gymHandler.SessionResults)))
	mux.Handle("POST /gym/sessions/{id}/complete", api(http.HandlerFunc(gymHandler.CompleteSession)))
	mux.Handle("GET /gym/stats", api(http.HandlerFunc(gymHandler.Stats)))
	mux.Handle("GET /gym/due", api(http.HandlerFunc(gymHandler.DueCount)))
	mux.Handle("POST /gym/words", api(http.HandlerFunc(gymHandler.TrackWord)))

	return mux
}
