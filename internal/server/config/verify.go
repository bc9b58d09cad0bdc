package config

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/yndnr/respkv/internal/telemetry/logger"
)

// Verify validates the configuration and reports every problem found.
func Verify(cfg *ServerConfig) error {
	var errs []error
	errs = append(errs, verifyServer(&cfg.Server)...)
	errs = append(errs, verifyLimits(cfg)...)
	errs = append(errs, verifyLog(&cfg.Log)...)
	return errors.Join(errs...)
}

func verifyServer(s *ServerSection) []error {
	var errs []error

	r := &s.Redis
	if r.Addr == "" && r.UnixSocket == "" {
		errs = append(errs, errors.New("server.redis: addr or unix_socket is required"))
	}
	if r.Addr != "" {
		if err := verifyAddr(r.Addr); err != nil {
			errs = append(errs, fmt.Errorf("server.redis.addr: %w", err))
		}
	}
	if r.ReadBufferSize < 0 {
		errs = append(errs, errors.New("server.redis.read_buffer_size must not be negative"))
	}
	if r.IdleTimeout < 0 || r.WriteTimeout < 0 {
		errs = append(errs, errors.New("server.redis timeouts must not be negative"))
	}
	if r.RateLimit < 0 {
		errs = append(errs, errors.New("server.redis.rate_limit must not be negative"))
	}

	if s.HTTP.Addr != "" {
		if err := verifyAddr(s.HTTP.Addr); err != nil {
			errs = append(errs, fmt.Errorf("server.http.addr: %w", err))
		}
		if s.HTTP.Addr == r.Addr {
			errs = append(errs, fmt.Errorf("server.http.addr and server.redis.addr are both %s", r.Addr))
		}
	}
	if s.ShutdownTimeout < 0 {
		errs = append(errs, errors.New("server.shutdown_timeout must not be negative"))
	}
	return errs
}

func verifyLimits(cfg *ServerConfig) []error {
	l := cfg.Limits
	if l.MaxBulkLen < 0 || l.MaxArrayLen < 0 || l.MaxDepth < 0 || l.MaxLineLen < 0 {
		return []error{errors.New("limits must not be negative")}
	}
	return nil
}

func verifyLog(l *LogSection) []error {
	var errs []error
	if _, err := logger.ParseLevel(l.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(l.Format) {
	case "", "json", "text", "console":
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", l.Format))
	}
	return errs
}

func verifyAddr(addr string) error {
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return err
	}
	if port == "" {
		return errors.New("missing port")
	}
	return nil
}
