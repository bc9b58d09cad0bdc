// Package handler implements the operational HTTP endpoints.
//
// JSON responses share the Response envelope; /metrics is served by the
// Prometheus handler directly.
package handler
