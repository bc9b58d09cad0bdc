package config

import (
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Redis.Addr != DefaultRedisAddr {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Server.Redis.Addr, DefaultRedisAddr)
	}
	if cfg.Server.HTTP.Addr != DefaultHTTPAddr {
		t.Errorf("HTTP.Addr = %q, want %q", cfg.Server.HTTP.Addr, DefaultHTTPAddr)
	}
	if cfg.Server.Redis.RateLimit != 0 || cfg.Server.Redis.IdleTimeout != 0 {
		t.Error("rate limit and idle timeout should be disabled by default")
	}
	if cfg.Limits.MaxDepth == 0 {
		t.Error("default limits are empty")
	}
	if err := Verify(cfg); err != nil {
		t.Errorf("Verify(Default()) error = %v", err)
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr string
	}{
		{
			name:    "no listener",
			mutate:  func(c *ServerConfig) { c.Server.Redis.Addr = "" },
			wantErr: "addr or unix_socket is required",
		},
		{
			name: "unix socket only",
			mutate: func(c *ServerConfig) {
				c.Server.Redis.Addr = ""
				c.Server.Redis.UnixSocket = "/tmp/respkv.sock"
			},
		},
		{
			name:    "bad redis addr",
			mutate:  func(c *ServerConfig) { c.Server.Redis.Addr = "localhost" },
			wantErr: "server.redis.addr",
		},
		{
			name:    "same addr twice",
			mutate:  func(c *ServerConfig) { c.Server.HTTP.Addr = c.Server.Redis.Addr },
			wantErr: "are both",
		},
		{
			name:   "http disabled",
			mutate: func(c *ServerConfig) { c.Server.HTTP.Addr = "" },
		},
		{
			name:    "negative rate limit",
			mutate:  func(c *ServerConfig) { c.Server.Redis.RateLimit = -1 },
			wantErr: "rate_limit",
		},
		{
			name:    "negative limit",
			mutate:  func(c *ServerConfig) { c.Limits.MaxDepth = -1 },
			wantErr: "limits",
		},
		{
			name:    "bad log level",
			mutate:  func(c *ServerConfig) { c.Log.Level = "verbose" },
			wantErr: "log.level",
		},
		{
			name:    "bad log format",
			mutate:  func(c *ServerConfig) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := Verify(cfg)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Verify() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Verify() error = %v, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestVerify_ReportsAllProblems(t *testing.T) {
	cfg := Default()
	cfg.Server.Redis.RateLimit = -1
	cfg.Log.Level = "verbose"

	err := Verify(cfg)
	if err == nil {
		t.Fatal("Verify() succeeded")
	}
	if !strings.Contains(err.Error(), "rate_limit") || !strings.Contains(err.Error(), "log.level") {
		t.Errorf("Verify() error = %v, want both problems", err)
	}
}
