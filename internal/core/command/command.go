package command

import (
	"fmt"
	"strings"

	"github.com/yndnr/respkv/pkg/resp"
)

// Canonical command names.
const (
	NamePing = "PING"
	NameSet  = "SET"
	NameGet  = "GET"
	NameRaw  = "RAW"
)

// Command is one parsed request. The set of implementations is closed.
type Command interface {
	// Name returns the canonical uppercase name, used for logs and metrics.
	Name() string

	// ToValue renders the command as a request array.
	ToValue() resp.Value

	isCommand()
}

// Ping checks liveness.
type Ping struct{}

// Set stores Value under Key, replacing any previous value.
type Set struct {
	Key   string
	Value []byte
}

// Get looks up Key.
type Get struct {
	Key string
}

// Raw is any request that did not match a known command shape. It is never
// executed against the store.
type Raw struct {
	Value resp.Value
	desc  string
}

func (Ping) isCommand() {}
func (Set) isCommand()  {}
func (Get) isCommand()  {}
func (Raw) isCommand()  {}

// Name returns "PING".
func (Ping) Name() string { return NamePing }

// Name returns "SET".
func (Set) Name() string { return NameSet }

// Name returns "GET".
func (Get) Name() string { return NameGet }

// Name returns "RAW". The verb actually sent is in Description.
func (Raw) Name() string { return NameRaw }

// ToValue returns the request *1 $4 PING.
func (Ping) ToValue() resp.Value {
	return resp.Array(resp.BulkStringFromString(NamePing))
}

// ToValue returns the request SET key value as an array of bulk strings.
func (c Set) ToValue() resp.Value {
	return resp.Array(
		resp.BulkStringFromString(NameSet),
		resp.BulkStringFromString(c.Key),
		resp.BulkString(c.Value),
	)
}

// ToValue returns the request GET key as an array of bulk strings.
func (c Get) ToValue() resp.Value {
	return resp.Array(resp.BulkStringFromString(NameGet), resp.BulkStringFromString(c.Key))
}

// ToValue returns the value the command was parsed from.
func (c Raw) ToValue() resp.Value {
	return c.Value
}

// Description says what was received, e.g. the unknown verb as sent.
func (c Raw) Description() string {
	return c.desc
}

// NewRaw wraps v as an unrecognized command with the given description.
func NewRaw(v resp.Value, description string) Raw {
	return Raw{Value: v, desc: description}
}

// Parse interprets v as a command. It accepts only a non-null array of
// non-null bulk strings; the verb is matched case-insensitively and the
// argument count must match. Anything else yields Raw.
func Parse(v resp.Value) Command {
	if v.Kind() != resp.KindArray || v.IsNull() {
		return NewRaw(v, "expected array of bulk strings, got "+describe(v))
	}

	elems := v.Elems()
	if len(elems) == 0 {
		return NewRaw(v, "empty command")
	}

	args := make([][]byte, len(elems))
	for i, e := range elems {
		if e.Kind() != resp.KindBulkString || e.IsNull() {
			return NewRaw(v, fmt.Sprintf("expected array of bulk strings, got %s at position %d", describe(e), i))
		}
		args[i] = e.Bytes()
	}

	verb := string(args[0])
	nargs := len(args) - 1

	switch normalizeName(verb) {
	case NamePing:
		if nargs == 0 {
			return Ping{}
		}
	case NameSet:
		if nargs == 2 {
			return Set{Key: string(args[1]), Value: args[2]}
		}
	case NameGet:
		if nargs == 1 {
			return Get{Key: string(args[1])}
		}
	default:
		return NewRaw(v, verb)
	}

	return NewRaw(v, fmt.Sprintf("%s (wrong number of arguments: %d)", verb, nargs))
}

// FromArgs builds a command from already tokenized words, as typed into a
// shell. Unknown input still produces a Raw whose value is the request
// array, so it can be sent to a server as is.
func FromArgs(args []string) Command {
	elems := make([]resp.Value, len(args))
	for i, a := range args {
		elems[i] = resp.BulkStringFromString(a)
	}
	return Parse(resp.Array(elems...))
}

func normalizeName(name string) string {
	return strings.ToUpper(name)
}

func describe(v resp.Value) string {
	if v.IsNull() {
		return "null " + v.Kind().String()
	}
	return v.Kind().String()
}
