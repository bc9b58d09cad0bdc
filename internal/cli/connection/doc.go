// Package connection is the client side of the RESP protocol.
//
// Client sends one command at a time over TCP or a Unix socket and parses
// the reply with the same codec and command model the server uses.
// Manager holds the client the interactive shell is currently using.
package connection
