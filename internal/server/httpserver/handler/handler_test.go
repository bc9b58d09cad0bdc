package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rec.Body.String())
	}
	return resp
}

func TestHandler_Health(t *testing.T) {
	h := New(nil, nil, nil)

	rec := httptest.NewRecorder()
	h.Health(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}
	resp := decode(t, rec)
	if resp.Code != "OK" {
		t.Errorf("code = %q, want OK", resp.Code)
	}
	data, _ := resp.Data.(map[string]any)
	if data["status"] != "healthy" {
		t.Errorf("status = %v, want healthy", data["status"])
	}
}

func TestHandler_Ready(t *testing.T) {
	tests := []struct {
		name     string
		ready    func() error
		wantCode int
		wantBody string
	}{
		{"ready", func() error { return nil }, http.StatusOK, "OK"},
		{"not ready", func() error { return errors.New("dispatcher stopped") }, http.StatusServiceUnavailable, "NOT_READY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := New(tt.ready, nil, nil)
			rec := httptest.NewRecorder()
			h.Ready(rec, httptest.NewRequest("GET", "/ready", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			resp := decode(t, rec)
			if resp.Code != tt.wantBody {
				t.Errorf("code = %q, want %q", resp.Code, tt.wantBody)
			}
			if tt.wantCode != http.StatusOK && resp.Message != "dispatcher stopped" {
				t.Errorf("message = %q", resp.Message)
			}
		})
	}
}

func TestHandler_Stats(t *testing.T) {
	h := New(nil, func() Stats {
		return Stats{Connections: 3, QueueDepth: 7, DispatcherState: "idle"}
	}, nil)

	rec := httptest.NewRecorder()
	h.Stats(rec, httptest.NewRequest("GET", "/stats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Data Stats `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Data.Connections != 3 || body.Data.QueueDepth != 7 || body.Data.DispatcherState != "idle" {
		t.Errorf("stats = %+v", body.Data)
	}
}
