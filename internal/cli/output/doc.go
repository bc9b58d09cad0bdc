// Package output renders replies for respkv-cli.
//
// Text output mirrors redis-cli: PONG, OK, "hello", (nil), (error) msg.
// JSON and YAML render a Document of the form {type, value} so scripts
// can tell a missing key from an empty string.
package output
