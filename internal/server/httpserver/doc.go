// Package httpserver serves the operational HTTP endpoints next to the RESP
// listener:
//
//   - GET /health: liveness
//   - GET /ready: readiness of the dispatcher and RESP listener
//   - GET /stats: connection count, queue depth and build info as JSON
//   - GET /metrics: Prometheus exposition
//
// Every request passes through Recover, RequestID and AccessLog.
package httpserver
