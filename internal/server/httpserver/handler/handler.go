package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Handler serves health, readiness and stats.
type Handler struct {
	ready  func() error
	stats  func() Stats
	logger *slog.Logger
}

// New creates a Handler. A nil ready func always reports ready; a nil stats
// func serves an empty snapshot.
func New(ready func() error, stats func() Stats, logger *slog.Logger) *Handler {
	if ready == nil {
		ready = func() error { return nil }
	}
	if stats == nil {
		stats = func() Stats { return Stats{} }
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{ready: ready, stats: stats, logger: logger}
}

// Stats handles GET /stats.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, h.stats())
}

func (h *Handler) writeJSON(w http.ResponseWriter, r *http.Request, status int, data any) {
	h.write(w, status, NewResponse(logger.RequestIDFromContext(r.Context()), data))
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, status int, code, message string) {
	h.write(w, status, NewErrorResponse(logger.RequestIDFromContext(r.Context()), code, message))
}

func (h *Handler) write(w http.ResponseWriter, status int, body *Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", "error", err)
	}
}
