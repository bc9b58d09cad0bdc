package metric

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "respkv"

// Registry holds all application metrics.
type Registry struct {
	reg *prometheus.Registry

	connectionsActive prometheus.Gauge
	connectionsTotal  prometheus.Counter
	commandsTotal     *prometheus.CounterVec
	decodeErrors      prometheus.Counter
	rateLimited       prometheus.Counter

	queueDepth       prometheus.Gauge
	dispatchDuration *prometheus.HistogramVec
	keys             prometheus.Gauge
}

// NewRegistry creates a registry with the application metrics, the build
// info collector and the Go runtime and process collectors.
func NewRegistry() *Registry {
	r := &Registry{
		reg: prometheus.NewRegistry(),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of open client connections.",
		}),
		connectionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "connections_total",
			Help:      "Total number of accepted client connections.",
		}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Commands received, by command name.",
		}, []string{"command"}),
		decodeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "decode_errors_total",
			Help:      "Requests that could not be decoded.",
		}),
		rateLimited: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limited_total",
			Help:      "Commands rejected by the per-IP rate limiter.",
		}),
		queueDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dispatch_queue_depth",
			Help:      "Requests waiting for the dispatcher.",
		}),
		dispatchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "dispatch_duration_seconds",
			Help:      "Time spent executing a command in the dispatcher.",
			Buckets:   []float64{.000001, .000005, .00001, .00005, .0001, .0005, .001, .005, .01},
		}, []string{"command"}),
		keys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "keys",
			Help:      "Number of keys in the store.",
		}),
	}

	r.reg.MustRegister(
		r.connectionsActive,
		r.connectionsTotal,
		r.commandsTotal,
		r.decodeErrors,
		r.rateLimited,
		r.queueDepth,
		r.dispatchDuration,
		r.keys,
		NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Handler returns an HTTP handler for the /metrics endpoint.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{Registry: r.reg})
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ConnOpened records an accepted connection.
func (r *Registry) ConnOpened() {
	r.connectionsActive.Inc()
	r.connectionsTotal.Inc()
}

// ConnClosed records a closed connection.
func (r *Registry) ConnClosed() {
	r.connectionsActive.Dec()
}

// CommandReceived counts a parsed command.
func (r *Registry) CommandReceived(name string) {
	r.commandsTotal.WithLabelValues(name).Inc()
}

// DecodeError counts a request that failed to decode.
func (r *Registry) DecodeError() {
	r.decodeErrors.Inc()
}

// RateLimited counts a rejected command.
func (r *Registry) RateLimited() {
	r.rateLimited.Inc()
}

// ObserveCommand records how long the dispatcher spent on a command.
func (r *Registry) ObserveCommand(name string, elapsed time.Duration) {
	r.dispatchDuration.WithLabelValues(name).Observe(elapsed.Seconds())
}

// SetQueueDepth records the dispatcher backlog.
func (r *Registry) SetQueueDepth(n int) {
	r.queueDepth.Set(float64(n))
}

// SetKeys records the store size.
func (r *Registry) SetKeys(n int) {
	r.keys.Set(float64(n))
}
