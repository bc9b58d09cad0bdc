// Package logger provides structured logging for respkv.
//
// It wraps log/slog:
//
//   - logger.go: configuration, the process-wide level and default logger
//   - context.go: request and connection ids carried in a context
//   - redact.go: rewriting of sensitive and oversized attributes
//
// The level is held in a shared slog.LevelVar, so SetLevel changes the
// verbosity of every logger built by this package at runtime.
package logger
