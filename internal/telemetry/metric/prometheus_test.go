package metric

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegistry_Counters(t *testing.T) {
	r := NewRegistry()

	r.ConnOpened()
	r.ConnOpened()
	r.ConnClosed()
	r.CommandReceived("GET")
	r.CommandReceived("GET")
	r.CommandReceived("RAW")
	r.DecodeError()
	r.RateLimited()
	r.SetKeys(7)
	r.SetQueueDepth(3)
	r.ObserveCommand("GET", 2*time.Microsecond)

	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"connections_active", testutil.ToFloat64(r.connectionsActive), 1},
		{"connections_total", testutil.ToFloat64(r.connectionsTotal), 2},
		{"commands_total GET", testutil.ToFloat64(r.commandsTotal.WithLabelValues("GET")), 2},
		{"commands_total RAW", testutil.ToFloat64(r.commandsTotal.WithLabelValues("RAW")), 1},
		{"decode_errors_total", testutil.ToFloat64(r.decodeErrors), 1},
		{"rate_limited_total", testutil.ToFloat64(r.rateLimited), 1},
		{"keys", testutil.ToFloat64(r.keys), 7},
		{"dispatch_queue_depth", testutil.ToFloat64(r.queueDepth), 3},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}

	if n := testutil.CollectAndCount(r.dispatchDuration); n != 1 {
		t.Errorf("dispatch_duration_seconds series = %d, want 1", n)
	}
}

func TestRegistry_Handler(t *testing.T) {
	r := NewRegistry()
	r.CommandReceived("PING")

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	for _, want := range []string{
		`respkv_commands_total{command="PING"} 1`,
		"respkv_build_info{",
		"go_goroutines",
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics output missing %q", want)
		}
	}
}
