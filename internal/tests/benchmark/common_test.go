package benchmark

import (
	"context"
	"crypto/rand"
	"fmt"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/core/dispatch"
	"github.com/yndnr/respkv/internal/server/redisserver"
	"github.com/yndnr/respkv/internal/storage/memory"
)

// KeyCounts defines the store sizes for benchmarking.
var KeyCounts = []int{5000, 10000, 50000, 100000, 500000}

// SmallKeyCounts for quick benchmarks.
var SmallKeyCounts = []int{1000, 10000, 100000}

// ValueSizes defines the value sizes in bytes.
var ValueSizes = []int{16, 256, 4096}

// newKey generates a unique key.
func newKey() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, _ := ulid.New(ulid.Timestamp(time.Now()), entropy)
	return "key:" + strings.ToLower(id.String())
}

func newValue(size int) []byte {
	v := make([]byte, size)
	for i := range v {
		v[i] = byte('a' + i%26)
	}
	return v
}

// prefillStore stores count keys and returns them.
func prefillStore(store *memory.Store, count, valueSize int) []string {
	keys := make([]string, count)
	value := newValue(valueSize)
	for i := range keys {
		keys[i] = newKey()
		store.Execute(command.Set{Key: keys[i], Value: value})
	}
	return keys
}

// startDispatcher runs a dispatcher until the benchmark ends.
func startDispatcher(b *testing.B, store *memory.Store) *dispatch.Dispatcher {
	b.Helper()
	d := dispatch.New(store)
	d.Start()
	b.Cleanup(func() {
		d.Close()
		<-d.Done()
	})
	return d
}

// startServer runs a full server on a loopback port and returns its address.
func startServer(b *testing.B, store *memory.Store) string {
	b.Helper()
	d := startDispatcher(b, store)

	cfg := redisserver.DefaultConfig()
	cfg.Address = "127.0.0.1:0"
	srv := redisserver.New(cfg, d, nil, nil)
	if err := srv.Start(context.Background()); err != nil {
		b.Fatalf("start server: %v", err)
	}
	b.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	})
	return srv.Addr().String()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithKeyCounts runs a benchmark function with various store sizes.
func runWithKeyCounts(b *testing.B, counts []int, benchFn func(b *testing.B, count int)) {
	for _, count := range counts {
		b.Run(fmt.Sprintf("keys_%d", count), func(b *testing.B) {
			benchFn(b, count)
		})
	}
}
