package httpserver

import (
	"net/http"

	"github.com/yndnr/respkv/internal/server/httpserver/handler"
	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// RouterConfig holds the dependencies of the HTTP routes.
type RouterConfig struct {
	// Ready reports nil when the server can take RESP traffic.
	Ready func() error

	// Stats returns a runtime snapshot for /stats.
	Stats func() handler.Stats

	// Metrics serves /metrics. Nil disables the route.
	Metrics http.Handler

	Logger logger.Logger
}

// NewRouter builds the mux and wraps it in the middleware chain.
func NewRouter(cfg *RouterConfig) http.Handler {
	l := cfg.Logger
	if l == nil {
		l = logger.Default()
	}

	h := handler.New(cfg.Ready, cfg.Stats, l.Slog())

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", h.Health)
	mux.HandleFunc("GET /ready", h.Ready)
	mux.HandleFunc("GET /stats", h.Stats)
	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", cfg.Metrics)
	}

	return Chain(mux,
		Recover(l.Slog()),
		RequestID(),
		AccessLog(l),
	)
}
