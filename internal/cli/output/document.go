package output

import (
	"github.com/yndnr/respkv/internal/core/command"
	"github.com/yndnr/respkv/pkg/resp"
)

// Document type names.
const (
	TypeSimpleString = "simple_string"
	TypeError        = "error"
	TypeInteger      = "integer"
	TypeBulkString   = "bulk_string"
	TypeNull         = "null"
	TypeArray        = "array"
)

// Document is the structured form of a reply. Value is a string, an int64,
// nil or a []Document depending on Type.
type Document struct {
	Type  string `json:"type" yaml:"type"`
	Value any    `json:"value" yaml:"value"`
}

// FromValue converts a protocol value.
func FromValue(v resp.Value) Document {
	if v.IsNull() {
		return Document{Type: TypeNull}
	}
	switch v.Kind() {
	case resp.KindSimpleString:
		return Document{Type: TypeSimpleString, Value: v.Text()}
	case resp.KindError:
		return Document{Type: TypeError, Value: v.Text()}
	case resp.KindInteger:
		return Document{Type: TypeInteger, Value: v.Int()}
	case resp.KindArray:
		elems := make([]Document, len(v.Elems()))
		for i, e := range v.Elems() {
			elems[i] = FromValue(e)
		}
		return Document{Type: TypeArray, Value: elems}
	default:
		return Document{Type: TypeBulkString, Value: v.Text()}
	}
}

// FromReply converts a command reply.
func FromReply(r command.Reply) Document {
	return FromValue(r.ToValue())
}

// Exchange is one command and the reply it received.
type Exchange struct {
	Command string   `json:"command" yaml:"command"`
	Reply   Document `json:"reply" yaml:"reply"`
}
