// Package command defines the closed set of commands the server understands
// and the replies it can produce.
//
// Parse turns a decoded protocol value into a Command and never fails:
// anything that does not match a known command shape becomes a Raw command
// carrying the original value and a description of what was received.
// Execution then answers Raw with an ordinary error reply, so an unknown
// command is reported to the client without a separate error path.
//
//   - Ping: PING
//   - Set:  SET key value
//   - Get:  GET key
//   - Raw:  everything else
package command
