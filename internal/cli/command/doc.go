// Package command defines the respkv-cli command line.
//
// One-shot subcommands (ping, set, get, raw, demo) send a single request
// or a fixed script; without a subcommand the interactive shell starts.
package command
