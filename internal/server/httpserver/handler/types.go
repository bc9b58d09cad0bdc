package handler

import (
	"time"

	"github.com/yndnr/respkv/internal/infra/buildinfo"
)

// Response is the JSON response envelope.
type Response struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data,omitempty"`
}

// NewResponse creates a success response.
func NewResponse(requestID string, data any) *Response {
	return &Response{
		Code:      "OK",
		Message:   "Success",
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
		Data:      data,
	}
}

// NewErrorResponse creates an error response.
func NewErrorResponse(requestID, code, message string) *Response {
	return &Response{
		Code:      code,
		Message:   message,
		RequestID: requestID,
		Timestamp: time.Now().UnixMilli(),
	}
}

// Stats is the body of GET /stats.
type Stats struct {
	Build           buildinfo.Info `json:"build"`
	StartedAt       time.Time      `json:"started_at"`
	Uptime          string         `json:"uptime"`
	Connections     int            `json:"connections"`
	QueueDepth      int            `json:"queue_depth"`
	DispatcherState string         `json:"dispatcher_state"`
	RESPAddress     string         `json:"resp_address,omitempty"`
}

// HealthStatus is the body of GET /health and GET /ready.
type HealthStatus struct {
	Status string `json:"status"`
	Time   string `json:"time"`
	Reason string `json:"reason,omitempty"`
}
