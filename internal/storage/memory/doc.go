// Package memory provides the in-memory key-value store.
//
// A Store is a plain map with no internal locking. It must be owned by a
// single goroutine: the dispatcher in internal/core/dispatch is the only
// caller of Execute, and nothing else holds a reference to the store.
//
// Execute never fails. Every outcome, including an unrecognized command,
// is an ordinary reply value.
package memory
