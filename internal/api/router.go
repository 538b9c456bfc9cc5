package api

import (
	"eld-log-service/internal/api/handlers"
	"eld-log-service/internal/ports"
	"net/http"
	"time"
)

type RouterOptions struct {
	AllowedOrigin string
	// Clock for trips without a start time. Defaults to time.Now.
	Now func() time.Time
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// Handlers stay unaware of concrete adapters.
func NewRouter(provider ports.RouteProvider, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	tripHandler := &handlers.TripHandler{Provider: provider, Now: now}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/api/trips/plan", tripHandler.Plan)
	mux.HandleFunc("/api/calculate-route", tripHandler.Plan)
	mux.HandleFunc("/api/hos/check", handlers.CheckHOS)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(opts.AllowedOrigin)(mux)))
}
