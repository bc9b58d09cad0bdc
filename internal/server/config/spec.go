package config

import (
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// ServerConfig is the root configuration for respkv-server.
type ServerConfig struct {
	Server ServerSection `koanf:"server" yaml:"server"`
	Limits resp.Limits   `koanf:"limits" yaml:"limits"`
	Log    LogSection    `koanf:"log" yaml:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	Redis RedisConfig `koanf:"redis" yaml:"redis"`
	HTTP  HTTPConfig  `koanf:"http" yaml:"http"`

	// ShutdownTimeout bounds the graceful shutdown after a signal.
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" yaml:"shutdown_timeout"`
}

// RedisConfig configures the RESP listener.
type RedisConfig struct {
	Addr           string        `koanf:"addr" yaml:"addr"`
	UnixSocket     string        `koanf:"unix_socket" yaml:"unix_socket"`
	ReadBufferSize int           `koanf:"read_buffer_size" yaml:"read_buffer_size"`
	IdleTimeout    time.Duration `koanf:"idle_timeout" yaml:"idle_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout" yaml:"write_timeout"`
	// RateLimit is commands per second per client IP; 0 disables it.
	RateLimit int `koanf:"rate_limit" yaml:"rate_limit"`
}

// HTTPConfig configures the admin HTTP server. An empty Addr disables it.
type HTTPConfig struct {
	Addr string `koanf:"addr" yaml:"addr"`
}

// LogSection configures logging.
type LogSection struct {
	Level     string `koanf:"level" yaml:"level"`
	Format    string `koanf:"format" yaml:"format"`
	AddSource bool   `koanf:"add_source" yaml:"add_source"`
}
