package config

import (
	"time"

	"github.com/yndnr/respkv/pkg/resp"
)

// Default configuration values.
const (
	DefaultRedisAddr       = "127.0.0.1:6379"
	DefaultHTTPAddr        = "127.0.0.1:6380"
	DefaultReadBufferSize  = 4096
	DefaultShutdownTimeout = 10 * time.Second

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			Redis: RedisConfig{
				Addr:           DefaultRedisAddr,
				ReadBufferSize: DefaultReadBufferSize,
			},
			HTTP: HTTPConfig{
				Addr: DefaultHTTPAddr,
			},
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Limits: resp.DefaultLimits(),
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
