package repl

import (
	"errors"
	"strings"
	"unicode"
)

// ErrUnterminatedQuote is returned for a line with an open double quote.
var ErrUnterminatedQuote = errors.New("unterminated quote")

// Tokenize splits line into words. Double quotes group words and may
// contain the escapes \" \\ \n \r and \t; "" is an empty word.
func Tokenize(line string) ([]string, error) {
	var (
		words   []string
		cur     strings.Builder
		inWord  bool
		inQuote bool
		escape  bool
	)

	for _, r := range line {
		switch {
		case escape:
			switch r {
			case 'n':
				cur.WriteRune('\n')
			case 'r':
				cur.WriteRune('\r')
			case 't':
				cur.WriteRune('\t')
			default:
				cur.WriteRune(r)
			}
			escape = false
		case inQuote && r == '\\':
			escape = true
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case !inQuote && unicode.IsSpace(r):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if inQuote || escape {
		return nil, ErrUnterminatedQuote
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
