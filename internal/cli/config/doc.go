// Package config provides the respkv-cli configuration file
// (~/.respkv/cli.yaml).
//
// The file holds the default server and output format plus named
// connections, so that "respkv-cli -s local" or "connect staging" in the
// shell can refer to a saved address.
package config
