// Package api provides the keep-alive HTTP surface. Hosting platforms probe
// it to keep the daemon warm; the status endpoints expose monitor counters
// for dashboards. It owns no bot functionality.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	corslib "github.com/rs/cors"

	"github.com/tornsuite/consigliere/internal/config"
	"github.com/tornsuite/consigliere/internal/monitor"
)

// StatusSource exposes the monitor's counters.
type StatusSource interface {
	Status() monitor.Status
}

// HealthChecker verifies a dependency is usable.
type HealthChecker interface {
	HealthCheck() error
}

// NewRouter creates and configures the Chi router with all middleware and
// routes.
func NewRouter(mon StatusSource, store HealthChecker, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		ExposedHeaders:   []string{"X-Process-Time"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	h := &handler{mon: mon, store: store, started: time.Now()}

	// --- Routes ---
	r.Get("/", h.Root)
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/state", h.HealthCheckState)
	})
	r.Get("/status", h.GetStatus)

	return r
}

// TimingMiddleware adds X-Process-Time header to all responses.
func TimingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		w.Header().Set("X-Process-Time", fmt.Sprintf("%.2fms", float64(elapsed.Microseconds())/1000.0))
	})
}
