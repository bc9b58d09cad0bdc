package command

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/core/dispatch"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
)

func startServer(t *testing.T) string {
	t.Helper()

	d := dispatch.New(memory.New())
	d.Start()

	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := redisserver.New(cfg, d, nil, nil)
	if err := srv.Start(context.Background()); err != nil {
		t.Fatalf("start server: %v", err)
	}
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
		d.Close()
		<-d.Done()
	})
	return srv.Addr().String()
}

// runApp runs the CLI with args and stdin, returning what it printed. No
// configuration file or history file is used.
func runApp(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cfgPath := filepath.Join(t.TempDir(), "cli.yaml")
	return runAppWithConfig(t, cfgPath, stdin, args...)
}

func runAppWithConfig(t *testing.T, cfgPath, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := App()
	app.Writer = &out
	app.ErrWriter = &out
	app.Reader = strings.NewReader(stdin)
	err := app.Run(append([]string{"respkv-cli", "--config", cfgPath, "--history-file", ""}, args...))
	return out.String(), err
}
