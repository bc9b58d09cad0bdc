package repl

import (
	"sort"
	"strings"
)

// Completer suggests command names for a typed prefix.
type Completer struct {
	commands []string
}

// NewCompleter creates a Completer over the server and shell commands.
func NewCompleter(extra ...string) *Completer {
	cmds := append([]string{"PING", "SET", "GET", "connect", "help", "history", "exit", "quit"}, extra...)
	sort.Strings(cmds)
	return &Completer{commands: cmds}
}

// Complete returns the commands starting with prefix, ignoring case.
func (c *Completer) Complete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(strings.ToLower(cmd), prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
