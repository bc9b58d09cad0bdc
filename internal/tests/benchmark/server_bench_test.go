package benchmark

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/yndnr/respkv/internal/cli/connection"
	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/internal/storage/memory"
	"github.com/yndnr/respkv/pkg/resp"
)

func dial(b *testing.B, addr string) *connection.Client {
	b.Helper()
	c, err := connection.Dial(context.Background(), addr, connection.WithTimeout(10*time.Second))
	if err != nil {
		b.Fatalf("dial: %v", err)
	}
	b.Cleanup(func() { c.Close() })
	return c
}

// BenchmarkServerPing measures one request per round trip over TCP.
func BenchmarkServerPing(b *testing.B) {
	c := dial(b, startServer(b, memory.New()))

	b.ResetTimer()
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		if err := c.Ping(); err != nil {
			b.Fatalf("Ping failed: %v", err)
		}
	}
}

// BenchmarkServerSetGet alternates Set and Get with various value sizes.
func BenchmarkServerSetGet(b *testing.B) {
	for _, size := range ValueSizes {
		b.Run(fmt.Sprintf("value_%dB", size), func(b *testing.B) {
			c := dial(b, startServer(b, memory.New()))
			value := newValue(size)

			b.SetBytes(int64(size))
			b.ResetTimer()
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				key := fmt.Sprintf("k%d", i%1024)
				if err := c.Set(key, value); err != nil {
					b.Fatalf("Set failed: %v", err)
				}
				if _, ok, err := c.Get(key); err != nil || !ok {
					b.Fatalf("Get failed: ok=%v err=%v", ok, err)
				}
			}
		})
	}
}

// BenchmarkServerParallelClients runs one connection per goroutine against
// a prefilled store.
func BenchmarkServerParallelClients(b *testing.B) {
	runWithKeyCounts(b, []int{10000}, func(b *testing.B, count int) {
		store := memory.New()
		keys := prefillStore(store, count, 64)
		addr := startServer(b, store)

		b.ResetTimer()
		b.ReportAllocs()

		b.RunParallel(func(pb *testing.PB) {
			c, err := connection.Dial(context.Background(), addr)
			if err != nil {
				b.Errorf("dial: %v", err)
				return
			}
			defer c.Close()

			i := 0
			for pb.Next() {
				if _, _, err := c.Get(keys[i%len(keys)]); err != nil {
					b.Errorf("Get failed: %v", err)
					return
				}
				i++
			}
		})
	})
}

// BenchmarkCodec measures encoding and decoding a SET request.
func BenchmarkCodec(b *testing.B) {
	for _, size := range ValueSizes {
		req := command.Set{Key: "mykey", Value: newValue(size)}.ToValue()
		wire := resp.Encode(req)

		b.Run(fmt.Sprintf("encode_%dB", size), func(b *testing.B) {
			buf := make([]byte, 0, len(wire))
			b.SetBytes(int64(len(wire)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				buf = resp.AppendEncode(buf[:0], req)
			}
		})

		b.Run(fmt.Sprintf("decode_%dB", size), func(b *testing.B) {
			b.SetBytes(int64(len(wire)))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, n, err := resp.Decode(wire); err != nil || n != len(wire) {
					b.Fatalf("Decode: n=%d err=%v", n, err)
				}
			}
		})
	}
}
