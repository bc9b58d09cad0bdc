// Package buildinfo reports the version of the running binary.
//
// Version, Commit and BuildTime are set at link time:
//
//	go build -ldflags "-X github.com/yndnr/respkv/internal/infra/buildinfo.Version=v0.1.0"
//
// When they are not set, the commit and build time recorded by the Go
// toolchain's VCS stamping are used instead.
package buildinfo
