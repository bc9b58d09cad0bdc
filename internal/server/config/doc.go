// Package config defines the respkv-server configuration.
//
//   - spec.go: ServerConfig and its sections
//   - default.go: default values
//   - verify.go: validation after loading
//
// Configuration is loaded through internal/infra/confloader from defaults,
// a YAML file, RESPKV_ environment variables and command-line flags, in
// that order of precedence.
package config
