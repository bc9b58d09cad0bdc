package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultPrompt is shown before each line.
const DefaultPrompt = "respkv> "

// EvalFunc runs one tokenized line.
type EvalFunc func(ctx context.Context, args []string) error

// REPL represents the Read-Eval-Print Loop.
type REPL struct {
	input     io.Reader
	output    io.Writer
	prompt    string
	eval      EvalFunc
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithHistory sets the history store.
func WithHistory(h *History) Option {
	return func(r *REPL) {
		r.history = h
	}
}

// WithPrompt sets the prompt.
func WithPrompt(p string) Option {
	return func(r *REPL) {
		r.prompt = p
	}
}

// New creates a REPL that passes lines to eval.
func New(eval EvalFunc, in io.Reader, out io.Writer, opts ...Option) *REPL {
	r := &REPL{
		input:     in,
		output:    out,
		prompt:    DefaultPrompt,
		eval:      eval,
		completer: NewCompleter(),
		history:   NewHistory(""),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run reads lines until exit, quit, EOF or ctx is done. History is loaded
// before the first prompt and saved on return.
func (r *REPL) Run(ctx context.Context) error {
	if err := r.history.Load(); err != nil {
		fmt.Fprintf(r.output, "warning: load history: %v\n", err)
	}
	defer func() {
		if err := r.history.Save(); err != nil {
			fmt.Fprintf(r.output, "warning: save history: %v\n", err)
		}
	}()

	scanner := bufio.NewScanner(r.input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		fmt.Fprint(r.output, r.prompt)
		if !scanner.Scan() {
			fmt.Fprintln(r.output)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		r.history.Add(line)

		if done := r.handle(ctx, line); done {
			return nil
		}
	}
}

// handle runs one line and reports whether the session should end.
func (r *REPL) handle(ctx context.Context, line string) bool {
	args, err := Tokenize(line)
	if err != nil {
		fmt.Fprintf(r.output, "(error) %v\n", err)
		return false
	}

	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		return true
	case "help":
		r.printHelp(args[1:])
		return false
	case "history":
		for i, e := range r.history.Entries() {
			fmt.Fprintf(r.output, "%4d  %s\n", i+1, e)
		}
		return false
	}

	if err := r.eval(ctx, args); err != nil {
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.output, "(error) connection closed by server")
			return false
		}
		fmt.Fprintf(r.output, "(error) %v\n", err)
	}
	return false
}

var helpText = map[string]string{
	"ping":    "PING                 check that the server is alive",
	"set":     "SET key value        store value under key",
	"get":     "GET key              fetch the value stored under key",
	"connect": "connect addr         switch to another server (host:port or unix:/path)",
	"history": "history              list previous lines",
	"exit":    "exit | quit          leave the shell",
}

var helpOrder = []string{"ping", "set", "get", "connect", "history", "exit"}

func (r *REPL) printHelp(topics []string) {
	if len(topics) == 0 {
		for _, k := range helpOrder {
			fmt.Fprintln(r.output, helpText[k])
		}
		fmt.Fprintln(r.output, `Other input is sent to the server as is. Use "double quotes" for values with spaces.`)
		return
	}
	for _, t := range topics {
		if s, ok := helpText[strings.ToLower(t)]; ok {
			fmt.Fprintln(r.output, s)
			continue
		}
		if matches := r.completer.Complete(t); len(matches) > 0 {
			fmt.Fprintf(r.output, "unknown topic %q, did you mean: %s\n", t, strings.Join(matches, ", "))
			continue
		}
		fmt.Fprintf(r.output, "unknown topic %q\n", t)
	}
}
