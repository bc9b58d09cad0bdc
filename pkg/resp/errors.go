package resp

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete means the buffer ends before the value does. It is not a
	// protocol violation; the caller should read more bytes and decode again.
	ErrIncomplete = errors.New("resp: incomplete value")

	// ErrProtocol marks malformed input.
	ErrProtocol = errors.New("resp: protocol error")

	// ErrLimitExceeded marks input that is well formed so far but exceeds a
	// configured resource limit.
	ErrLimitExceeded = errors.New("resp: limit exceeded")
)

// ParseError describes why a byte stream could not be decoded.
type ParseError struct {
	// Offset is the position in the decoded buffer where the problem starts.
	Offset int
	// Reason is a short human readable description.
	Reason string
	// Err is ErrProtocol or ErrLimitExceeded.
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at offset %d", e.Reason, e.Offset)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func protocolError(offset int, format string, args ...any) error {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...), Err: ErrProtocol}
}

func limitError(offset int, format string, args ...any) error {
	return &ParseError{Offset: offset, Reason: fmt.Sprintf(format, args...), Err: ErrLimitExceeded}
}
