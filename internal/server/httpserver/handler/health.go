package handler

import (
	"net/http"
	"time"
)

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, HealthStatus{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}

// Ready handles GET /ready.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if err := h.ready(); err != nil {
		h.writeError(w, r, http.StatusServiceUnavailable, "NOT_READY", err.Error())
		return
	}
	h.writeJSON(w, r, http.StatusOK, HealthStatus{
		Status: "ready",
		Time:   time.Now().UTC().Format(time.RFC3339),
	})
}
