package command

import (
	"testing"

	"github.com/yndnr/respkv/pkg/resp"
)

func bulkArray(words ...string) resp.Value {
	elems := make([]resp.Value, len(words))
	for i, w := range words {
		elems[i] = resp.BulkStringFromString(w)
	}
	return resp.Array(elems...)
}

func TestParse_KnownCommands(t *testing.T) {
	tests := []struct {
		name  string
		input resp.Value
		want  Command
	}{
		{name: "PING", input: bulkArray("PING"), want: Ping{}},
		{name: "ping", input: bulkArray("ping"), want: Ping{}},
		{name: "Ping", input: bulkArray("Ping"), want: Ping{}},
		{name: "get", input: bulkArray("get", "mykey"), want: Get{Key: "mykey"}},
		{name: "gEt", input: bulkArray("gEt", "k"), want: Get{Key: "k"}},
		{name: "set", input: bulkArray("set", "mykey", "hello"), want: Set{Key: "mykey", Value: []byte("hello")}},
		{name: "SET empty value", input: bulkArray("SET", "k", ""), want: Set{Key: "k", Value: []byte{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			switch want := tt.want.(type) {
			case Ping:
				if _, ok := got.(Ping); !ok {
					t.Fatalf("Parse() = %#v, want Ping", got)
				}
			case Get:
				g, ok := got.(Get)
				if !ok || g.Key != want.Key {
					t.Fatalf("Parse() = %#v, want %#v", got, want)
				}
			case Set:
				s, ok := got.(Set)
				if !ok || s.Key != want.Key || string(s.Value) != string(want.Value) {
					t.Fatalf("Parse() = %#v, want %#v", got, want)
				}
			}
		})
	}
}

func TestParse_Raw(t *testing.T) {
	tests := []struct {
		name     string
		input    resp.Value
		wantDesc string
	}{
		{name: "unknown verb", input: bulkArray("nonsense"), wantDesc: "nonsense"},
		{name: "unknown verb keeps case", input: bulkArray("FlushAll", "x"), wantDesc: "FlushAll"},
		{name: "ping with argument", input: bulkArray("ping", "hi"), wantDesc: "ping (wrong number of arguments: 1)"},
		{name: "get without key", input: bulkArray("GET"), wantDesc: "GET (wrong number of arguments: 0)"},
		{name: "set with one argument", input: bulkArray("SET", "k"), wantDesc: "SET (wrong number of arguments: 1)"},
		{name: "set with three arguments", input: bulkArray("SET", "k", "v", "EX"), wantDesc: "SET (wrong number of arguments: 3)"},
		{name: "empty array", input: resp.Array(), wantDesc: "empty command"},
		{name: "null array", input: resp.NullArray(), wantDesc: "expected array of bulk strings, got null array"},
		{name: "simple string", input: resp.SimpleString("PING"), wantDesc: "expected array of bulk strings, got simple string"},
		{name: "integer", input: resp.Integer(1), wantDesc: "expected array of bulk strings, got integer"},
		{
			name:     "integer element",
			input:    resp.Array(resp.BulkStringFromString("GET"), resp.Integer(1)),
			wantDesc: "expected array of bulk strings, got integer at position 1",
		},
		{
			name:     "null bulk element",
			input:    resp.Array(resp.BulkStringFromString("GET"), resp.NullBulkString()),
			wantDesc: "expected array of bulk strings, got null bulk string at position 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			raw, ok := got.(Raw)
			if !ok {
				t.Fatalf("Parse() = %#v, want Raw", got)
			}
			if raw.Description() != tt.wantDesc {
				t.Errorf("Description() = %q, want %q", raw.Description(), tt.wantDesc)
			}
			if !raw.ToValue().Equal(tt.input) {
				t.Errorf("ToValue() = %v, want original %v", raw.ToValue(), tt.input)
			}
			if raw.Name() != NameRaw {
				t.Errorf("Name() = %q", raw.Name())
			}
		})
	}
}

func TestCommand_ToValueParsesBack(t *testing.T) {
	cmds := []Command{
		Ping{},
		Get{Key: "mykey"},
		Set{Key: "mykey", Value: []byte("hello world")},
	}
	for _, c := range cmds {
		t.Run(c.Name(), func(t *testing.T) {
			got := Parse(c.ToValue())
			if got.Name() != c.Name() {
				t.Errorf("Parse(ToValue()) = %#v, want %#v", got, c)
			}
		})
	}
}

func TestFromArgs(t *testing.T) {
	if _, ok := FromArgs([]string{"ping"}).(Ping); !ok {
		t.Error("FromArgs(ping) is not Ping")
	}
	s, ok := FromArgs([]string{"SET", "mykey", "hello"}).(Set)
	if !ok || s.Key != "mykey" || string(s.Value) != "hello" {
		t.Errorf("FromArgs(SET) = %#v", s)
	}

	raw, ok := FromArgs([]string{"nonsense"}).(Raw)
	if !ok {
		t.Fatal("FromArgs(nonsense) is not Raw")
	}
	want := "*1\r\n$8\r\nnonsense\r\n"
	if got := string(resp.Encode(raw.ToValue())); got != want {
		t.Errorf("wire form = %q, want %q", got, want)
	}
}
