package connection

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/core/dispatch"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// startServer runs a real server and returns its TCP and Unix addresses.
func startServer(t *testing.T) (tcpAddr, unixAddr string) {
	t.Helper()

	d := dispatch.New(memory.New())
	d.Start()

	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.UnixSocket = filepath.Join(t.TempDir(), "respkv.sock")

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
	return srv.Addr().String(), UnixPrefix + cfg.UnixSocket
}

func dial(t *testing.T, addr string) *Client {
	t.Helper()
	c, err := Dial(context.Background(), addr, WithTimeout(5*time.Second))
	if err != nil {
		t.Fatalf("Dial(%s) error = %v", addr, err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}
