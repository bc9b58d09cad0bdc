package resp

import (
	"bytes"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindBulkString is first so that the zero Value is the null bulk string.
	KindBulkString Kind = iota
	KindSimpleString
	KindError
	KindInteger
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindBulkString:
		return "bulk string"
	case KindSimpleString:
		return "simple string"
	case KindError:
		return "error"
	case KindInteger:
		return "integer"
	case KindArray:
		return "array"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one protocol value. Values are immutable once built; use the
// constructors below. The zero Value is the null bulk string.
type Value struct {
	kind    Kind
	present bool // bulk strings and arrays only; false is the null sentinel
	text    []byte
	num     int64
	elems   []Value
}

var lineBreaks = strings.NewReplacer("\r", " ", "\n", " ")

// SimpleString returns a simple string value. CR and LF cannot be carried by
// a simple string and are replaced with spaces.
func SimpleString(s string) Value {
	return Value{kind: KindSimpleString, text: []byte(lineBreaks.Replace(s))}
}

// Error returns an error value. CR and LF are replaced with spaces.
func Error(s string) Value {
	return Value{kind: KindError, text: []byte(lineBreaks.Replace(s))}
}

// Integer returns an integer value.
func Integer(n int64) Value {
	return Value{kind: KindInteger, num: n}
}

// BulkString returns a present bulk string. A nil or empty b is the empty
// string, never the null sentinel.
func BulkString(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{kind: KindBulkString, present: true, text: b}
}

// BulkStringFromString is BulkString for text.
func BulkStringFromString(s string) Value {
	return BulkString([]byte(s))
}

// NullBulkString returns the null bulk string ($-1).
func NullBulkString() Value {
	return Value{kind: KindBulkString}
}

// Array returns a present array holding elems. No elements is the empty
// array, never the null sentinel.
func Array(elems ...Value) Value {
	if elems == nil {
		elems = []Value{}
	}
	return Value{kind: KindArray, present: true, elems: elems}
}

// NullArray returns the null array (*-1).
func NullArray() Value {
	return Value{kind: KindArray}
}

// Kind reports the variant of v.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null bulk string or the null array.
func (v Value) IsNull() bool {
	return (v.kind == KindBulkString || v.kind == KindArray) && !v.present
}

// Bytes returns the payload of a simple string, error or bulk string.
// It returns nil for a null bulk string and for other kinds.
func (v Value) Bytes() []byte {
	switch v.kind {
	case KindSimpleString, KindError, KindBulkString:
		return v.text
	}
	return nil
}

// Text returns Bytes as a string.
func (v Value) Text() string {
	return string(v.Bytes())
}

// Int returns the integer payload, or 0 for other kinds.
func (v Value) Int() int64 {
	return v.num
}

// Elems returns the elements of an array, nil for the null array and for
// other kinds.
func (v Value) Elems() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.elems
}

// Equal reports whether v and o are structurally identical.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindSimpleString, KindError:
		return bytes.Equal(v.text, o.text)
	case KindInteger:
		return v.num == o.num
	case KindBulkString:
		return v.present == o.present && bytes.Equal(v.text, o.text)
	case KindArray:
		if v.present != o.present || len(v.elems) != len(o.elems) {
			return false
		}
		for i := range v.elems {
			if !v.elems[i].Equal(o.elems[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// String renders v for logs and debugging. It is not the wire encoding.
func (v Value) String() string {
	var sb strings.Builder
	v.render(&sb)
	return sb.String()
}

func (v Value) render(sb *strings.Builder) {
	switch v.kind {
	case KindSimpleString:
		sb.WriteByte('+')
		sb.Write(v.text)
	case KindError:
		sb.WriteByte('-')
		sb.Write(v.text)
	case KindInteger:
		sb.WriteByte(':')
		sb.WriteString(strconv.FormatInt(v.num, 10))
	case KindBulkString:
		if !v.present {
			sb.WriteString("(nil)")
			return
		}
		sb.WriteString(strconv.Quote(string(v.text)))
	case KindArray:
		if !v.present {
			sb.WriteString("(nil array)")
			return
		}
		sb.WriteByte('[')
		for i, e := range v.elems {
			if i > 0 {
				sb.WriteString(", ")
			}
			e.render(sb)
		}
		sb.WriteByte(']')
	}
}
