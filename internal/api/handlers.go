package api

import (
	"net/http"
	"time"
)

// handler holds shared dependencies for all endpoint handlers.
type handler struct {
	mon     StatusSource
	store   HealthChecker
	started time.Time
}

// Root serves the keep-alive liveness line at /.
func (h *handler) Root(w http.ResponseWriter, r *http.Request) {
	writeJSONObject(w, http.StatusOK, map[string]any{
		"name":    "Consigliere",
		"status":  "alive",
		"uptime":  time.Since(h.started).Round(time.Second).String(),
		"version": "1.0.0",
	})
}

// HealthCheck reports process liveness.
func (h *handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSONObject(w, http.StatusOK, map[string]string{"status": "ok"})
}

// HealthCheckState verifies the state store round-trips.
func (h *handler) HealthCheckState(w http.ResponseWriter, r *http.Request) {
	if err := h.store.HealthCheck(); err != nil {
		writeError(w, http.StatusServiceUnavailable, "STATE_UNAVAILABLE", err.Error())
		return
	}
	writeJSONObject(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetStatus exposes monitor counters.
func (h *handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	writeJSONObject(w, http.StatusOK, h.mon.Status())
}
