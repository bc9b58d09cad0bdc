// Package redisserver accepts RESP connections and feeds their commands to
// the dispatcher.
//
// Each accepted connection is served by its own goroutine. The goroutine
// decodes one request at a time, parses it into a command, submits it to
// the dispatcher and writes the reply before reading the next request.
// Pipelined requests already buffered are processed in order.
//
// Supported commands:
//   - PING
//   - SET key value
//   - GET key
//
// Anything else is answered with an error reply and the connection stays
// open. Malformed input is answered the same way without reaching the
// dispatcher.
package redisserver
