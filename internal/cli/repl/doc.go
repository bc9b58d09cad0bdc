// Package repl is the interactive shell of respkv-cli.
//
// Lines are split on whitespace with double quotes grouping words, so
// `set greeting "hello world"` sends three arguments. help, history and
// exit/quit are handled locally; everything else goes to the evaluator.
// History is kept in ~/.respkv/history between sessions.
package repl
