// Command respkv-server runs the in-memory key-value store behind a RESP
// listener, with an HTTP endpoint for health checks, stats and metrics.
//
// Usage:
//
//	respkv-server [--config respkv.yaml] [--addr 127.0.0.1:6379]
//
// Configuration is read from defaults, the YAML file, RESPKV_* environment
// variables (also from .env files) and flags, in increasing priority.
// Changing log.level in the configuration file takes effect without a
// restart.
package main
