// Command respkv-cli is the command-line client for respkv-server.
//
// Usage:
//
//	respkv-cli [-s host:port] ping
//	respkv-cli set mykey hello
//	respkv-cli -o json get mykey
//	respkv-cli raw SET k v
//	respkv-cli demo
//	respkv-cli                  # interactive shell
//
// The server address may also be a Unix socket given as unix:/path.
package main
