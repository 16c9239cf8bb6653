package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/sileo/pkg/observability"
)

// metricsRouter exposes the notifier collectors and a health check.
func metricsRouter(m *observability.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})
	return r
}
