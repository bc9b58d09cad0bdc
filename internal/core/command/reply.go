package command

import (
	"errors"
	"fmt"

	"github.com/yndnr/respkv/pkg/resp"
)

// ErrorPrefix starts every error reply produced for input the server could
// not interpret, whether at the wire or the command level.
const ErrorPrefix = "error parsing RESP"

// ErrUnexpectedReply is returned by ParseReply for values no command produces.
var ErrUnexpectedReply = errors.New("command: unexpected reply")

// Reply is the result of executing a command. The set of implementations is
// closed.
type Reply interface {
	// ToValue renders the reply for the wire.
	ToValue() resp.Value
	isReply()
}

// Pong answers Ping.
type Pong struct{}

// OK answers Set.
type OK struct{}

// ErrorReply carries a failure back to the client as an ordinary value.
type ErrorReply struct {
	Message string
}

// BulkReply answers Get. Found is false for a missing key.
type BulkReply struct {
	Value []byte
	Found bool
}

func (Pong) isReply()       {}
func (OK) isReply()         {}
func (ErrorReply) isReply() {}
func (BulkReply) isReply()  {}

// ToValue returns +PONG.
func (Pong) ToValue() resp.Value { return resp.SimpleString("PONG") }

// ToValue returns +OK.
func (OK) ToValue() resp.Value { return resp.SimpleString("OK") }

// ToValue returns the message as an error value.
func (r ErrorReply) ToValue() resp.Value {
	return resp.Error(r.Message)
}

// ToValue returns the value as a bulk string, or the null bulk string when
// the key was not found.
func (r BulkReply) ToValue() resp.Value {
	if !r.Found {
		return resp.NullBulkString()
	}
	return resp.BulkString(r.Value)
}

// Error returns the message, so an ErrorReply can be returned as an error.
func (r ErrorReply) Error() string {
	return r.Message
}

// Bulk returns a found BulkReply.
func Bulk(b []byte) BulkReply {
	return BulkReply{Value: b, Found: true}
}

// NullBulk returns the reply for a missing key.
func NullBulk() BulkReply {
	return BulkReply{}
}

// Errorf builds an ErrorReply with the given message.
func Errorf(format string, args ...any) ErrorReply {
	return ErrorReply{Message: fmt.Sprintf(format, args...)}
}

// UnknownCommand is the reply to a Raw command.
func UnknownCommand(c Raw) ErrorReply {
	return Errorf("%s: unknown command: %s", ErrorPrefix, c.Description())
}

// ParseReply maps a value received from a server back to a Reply.
func ParseReply(v resp.Value) (Reply, error) {
	switch v.Kind() {
	case resp.KindSimpleString:
		switch v.Text() {
		case "PONG":
			return Pong{}, nil
		case "OK":
			return OK{}, nil
		}
	case resp.KindError:
		return ErrorReply{Message: v.Text()}, nil
	case resp.KindBulkString:
		if v.IsNull() {
			return NullBulk(), nil
		}
		return Bulk(v.Bytes()), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnexpectedReply, v)
}
