package rest

import (
	"net/http"
)

// NewRouter registers all endpoints on a new ServeMux.
func NewRouter(words *WordHandler, health *HealthHandler, metrics http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/words/{word}", words.Get)
	mux.HandleFunc("GET /api/v1/history", words.History)

	mux.HandleFunc("GET /health/live", health.Live)
	mux.HandleFunc("GET /health/ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}

	return mux
}
