// Package cmap provides a concurrent map sharded by key hash.
//
// Keys are strings and are spread across shards with murmur3, so
// goroutines touching different keys rarely contend on the same lock.
// The server uses it as its registry of live connections.
//
// Usage:
//
//	m := cmap.New[string, net.Conn]()
//	m.Set(id, conn)
//	conn, ok := m.Get(id)
package cmap
