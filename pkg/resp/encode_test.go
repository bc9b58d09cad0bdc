package resp

import (
	"math"
	"testing"
)

func TestEncode(t *testing.T) {
	tests := []struct {
		name  string
		value Value
		want  string
	}{
		{name: "pong", value: SimpleString("PONG"), want: "+PONG\r\n"},
		{name: "ok", value: SimpleString("OK"), want: "+OK\r\n"},
		{name: "error", value: Error("error parsing RESP: unknown command: nonsense"), want: "-error parsing RESP: unknown command: nonsense\r\n"},
		{name: "integer", value: Integer(1000), want: ":1000\r\n"},
		{name: "min integer", value: Integer(math.MinInt64), want: ":-9223372036854775808\r\n"},
		{name: "bulk", value: BulkStringFromString("hello"), want: "$5\r\nhello\r\n"},
		{name: "empty bulk", value: BulkString(nil), want: "$0\r\n\r\n"},
		{name: "null bulk", value: NullBulkString(), want: "$-1\r\n"},
		{name: "zero value is null bulk", value: Value{}, want: "$-1\r\n"},
		{name: "empty array", value: Array(), want: "*0\r\n"},
		{name: "null array", value: NullArray(), want: "*-1\r\n"},
		{
			name:  "GET command",
			value: Array(BulkStringFromString("GET"), BulkStringFromString("mykey")),
			want:  "*2\r\n$3\r\nGET\r\n$5\r\nmykey\r\n",
		},
		{name: "simple string with line break is sanitized", value: SimpleString("a\r\nb"), want: "+a  b\r\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := string(Encode(tt.value)); got != tt.want {
				t.Errorf("Encode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAppendEncode_KeepsPrefix(t *testing.T) {
	got := AppendEncode([]byte("+OK\r\n"), Integer(3))
	if string(got) != "+OK\r\n:3\r\n" {
		t.Errorf("AppendEncode() = %q", got)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []Value{
		SimpleString(""),
		SimpleString("PONG"),
		Error("ERR boom"),
		Integer(0),
		Integer(math.MaxInt64),
		Integer(math.MinInt64),
		BulkString(nil),
		BulkString([]byte{0, 1, 2, '\r', '\n', 255}),
		NullBulkString(),
		Array(),
		NullArray(),
		Array(Array(Array(Integer(1)), NullArray()), BulkStringFromString("x"), Error("e")),
	}

	for _, v := range values {
		t.Run(v.String(), func(t *testing.T) {
			encoded := Encode(v)
			got, n, err := Decode(encoded)
			if err != nil {
				t.Fatalf("Decode(Encode(%v)) error = %v", v, err)
			}
			if n != len(encoded) {
				t.Errorf("consumed %d of %d bytes", n, len(encoded))
			}
			if !got.Equal(v) {
				t.Errorf("Decode(Encode(v)) = %v, want %v", got, v)
			}
		})
	}
}
