// Package metric exposes Prometheus metrics for respkv.
//
//   - prometheus.go: the registry, the metric set and the /metrics handler
//   - collector.go: collectors evaluated at scrape time
//
// Registry satisfies the metrics interfaces of the RESP server and the
// dispatcher, so both report into one registry.
package metric
