package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/respkv/internal/core/dispatch"
	"github.com/yndnr/respkv/internal/infra/buildinfo"
	"github.com/yndnr/respkv/internal/infra/confloader"
	"github.com/yndnr/respkv/internal/infra/shutdown"
	"github.com/yndnr/respkv/internal/server/config"
	"github.com/yndnr/respkv/internal/server/httpserver"
	"github.com/yndnr/respkv/internal/server/httpserver/handler"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// flagKeys maps command-line flags to configuration keys.
var flagKeys = map[string]string{
	"addr":        "server.redis.addr",
	"unix-socket": "server.redis.unix_socket",
	"http-addr":   "server.http.addr",
	"rate-limit":  "server.redis.rate_limit",
	"log-level":   "log.level",
	"log-format":  "log.format",
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "respkv-server",
		Usage:   "in-memory key-value server speaking RESP",
		Version: buildinfo.String(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the YAML configuration file",
				EnvVars: []string{"RESPKV_CONFIG"},
			},
			&cli.StringFlag{Name: "addr", Usage: "RESP TCP listen address"},
			&cli.StringFlag{Name: "unix-socket", Usage: "RESP Unix socket path"},
			&cli.StringFlag{Name: "http-addr", Usage: "HTTP listen address, empty to disable"},
			&cli.IntFlag{Name: "rate-limit", Usage: "commands per second per client IP, 0 to disable"},
			&cli.StringFlag{Name: "log-level", Usage: "debug, info, warn or error"},
			&cli.StringFlag{Name: "log-format", Usage: "json or text"},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if err := confloader.LoadDotEnv(); err != nil {
		return fmt.Errorf("load .env: %w", err)
	}

	loader := confloader.NewLoader(
		confloader.WithConfigFile(c.String("config")),
		confloader.WithFlags(flagOverrides(c)),
	)
	cfg, err := loadConfig(loader)
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		AddSource: cfg.Log.AddSource,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	info := buildinfo.Get()
	log.Info("starting respkv-server",
		"version", info.Version,
		"commit", info.Commit,
		"config", loader.FilePath(),
	)

	metrics := metric.NewRegistry()

	dispatcher := dispatch.New(memory.New(),
		dispatch.WithLogger(log.With("component", "dispatcher").Slog()),
		dispatch.WithMetrics(metrics),
	)
	dispatcher.Start()

	redis := redisserver.New(redisConfig(cfg), dispatcher, log.With("component", "redis").Slog(), metrics)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := redis.Start(ctx); err != nil {
		dispatcher.Close()
		return fmt.Errorf("start RESP server: %w", err)
	}

	startedAt := time.Now()
	var httpSrv *httpserver.Server
	if cfg.Server.HTTP.Addr != "" {
		router := httpserver.NewRouter(&httpserver.RouterConfig{
			Ready: func() error {
				if dispatcher.State() == dispatch.StateShutdown {
					return errors.New("dispatcher stopped")
				}
				if redis.Addr() == nil {
					return errors.New("RESP listener not bound")
				}
				return nil
			},
			Stats: func() handler.Stats {
				s := handler.Stats{
					Build:           info,
					StartedAt:       startedAt,
					Uptime:          time.Since(startedAt).Round(time.Second).String(),
					Connections:     redis.ConnCount(),
					QueueDepth:      dispatcher.QueueDepth(),
					DispatcherState: dispatcher.State().String(),
				}
				if addr := redis.Addr(); addr != nil {
					s.RESPAddress = addr.String()
				}
				return s
			},
			Metrics: metrics.Handler(),
			Logger:  log.With("component", "http"),
		})
		httpSrv = httpserver.New(cfg.Server.HTTP.Addr, router, log.With("component", "http").Slog())
		if err := httpSrv.Start(); err != nil {
			redis.Shutdown(context.Background())
			dispatcher.Close()
			return fmt.Errorf("start HTTP server: %w", err)
		}
	}

	watcher := watchConfig(loader, log)

	sd := shutdown.NewHandler(cfg.Server.ShutdownTimeout, log.Slog())
	sd.OnShutdown("dispatcher", func(ctx context.Context) error {
		dispatcher.Close()
		select {
		case <-dispatcher.Done():
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	sd.OnShutdown("redis", redis.Shutdown)
	if httpSrv != nil {
		sd.OnShutdown("http", httpSrv.Shutdown)
	}
	if watcher != nil {
		sd.OnShutdown("config-watcher", func(context.Context) error {
			return watcher.Stop()
		})
	}

	log.Info("server started", "resp", redis.Addr(), "http", cfg.Server.HTTP.Addr)
	if err := sd.Wait(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}

func loadConfig(loader *confloader.Loader) (*config.ServerConfig, error) {
	return load(loader.Load)
}

func reloadConfig(loader *confloader.Loader) (*config.ServerConfig, error) {
	return load(loader.Reload)
}

func load(fn func(any) error) (*config.ServerConfig, error) {
	cfg := config.Default()
	if err := fn(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := config.Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// flagOverrides returns the explicitly set flags as configuration keys.
func flagOverrides(c *cli.Context) map[string]any {
	out := make(map[string]any)
	for name, key := range flagKeys {
		if !c.IsSet(name) {
			continue
		}
		if name == "rate-limit" {
			out[key] = c.Int(name)
			continue
		}
		out[key] = c.String(name)
	}
	return out
}

func redisConfig(cfg *config.ServerConfig) *redisserver.Config {
	r := cfg.Server.Redis
	return &redisserver.Config{
		Address:        r.Addr,
		UnixSocket:     r.UnixSocket,
		ReadBufferSize: r.ReadBufferSize,
		IdleTimeout:    r.IdleTimeout,
		WriteTimeout:   r.WriteTimeout,
		RateLimit:      r.RateLimit,
		Limits:         cfg.Limits,
	}
}

// watchConfig re-reads the configuration file on change and applies the
// settings that can change at runtime. Only the log level qualifies.
func watchConfig(loader *confloader.Loader, log logger.Logger) *confloader.Watcher {
	if loader.FilePath() == "" {
		return nil
	}
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(log.Slog()))
	if err != nil {
		log.Warn("config watcher disabled", "error", err)
		return nil
	}
	if err := w.Watch(loader.FilePath()); err != nil {
		log.Warn("config watcher disabled", "error", err)
		w.Stop()
		return nil
	}
	w.OnChange(func(path string) {
		cfg, err := reloadConfig(loader)
		if err != nil {
			log.Warn("ignoring invalid config change", "file", path, "error", err)
			return
		}
		if cfg.Log.Level != logger.GetLevel() {
			logger.SetLevel(cfg.Log.Level)
			log.Info("log level changed", "level", cfg.Log.Level)
		}
	})
	w.StartAsync()
	return w
}
