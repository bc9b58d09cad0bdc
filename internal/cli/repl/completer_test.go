package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter("demo")

	tests := []struct {
		prefix string
		want   []string
	}{
		{"g", []string{"GET"}},
		{"SE", []string{"SET"}},
		{"h", []string{"help", "history"}},
		{"de", []string{"demo"}},
		{"zzz", nil},
	}
	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %v, want %v", tt.prefix, got, tt.want)
			}
		})
	}

	if got := c.Complete(""); len(got) != len(c.commands) {
		t.Errorf("Complete(\"\") returned %d of %d commands", len(got), len(c.commands))
	}
}
