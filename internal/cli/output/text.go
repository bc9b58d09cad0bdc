package output

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// exchangeWidth bounds the cells of an exchange table.
const exchangeWidth = 72

// TextFormatter writes human-readable output in the style of redis-cli.
// It accepts Document, []Exchange and *Table; anything else is printed
// with %v.
type TextFormatter struct{}

// Format writes data followed by a newline.
func (f *TextFormatter) Format(w io.Writer, data any) error {
	switch d := data.(type) {
	case Document:
		_, err := io.WriteString(w, Text(d)+"\n")
		return err
	case []Exchange:
		t := &Table{MaxWidth: exchangeWidth}
		t.SetHeaders("COMMAND", "REPLY")
		for _, e := range d {
			t.AddRow(e.Command, Inline(e.Reply))
		}
		return t.Render(w)
	case *Table:
		return d.Render(w)
	default:
		_, err := fmt.Fprintln(w, data)
		return err
	}
}

// Text renders d as redis-cli does. Array elements are numbered, one per
// line.
func Text(d Document) string {
	var sb strings.Builder
	writeText(&sb, d, "")
	return sb.String()
}

func writeText(sb *strings.Builder, d Document, indent string) {
	if d.Type != TypeArray {
		sb.WriteString(Inline(d))
		return
	}
	elems, _ := d.Value.([]Document)
	if len(elems) == 0 {
		sb.WriteString("(empty array)")
		return
	}
	width := len(strconv.Itoa(len(elems)))
	for i, e := range elems {
		if i > 0 {
			sb.WriteString("\n" + indent)
		}
		label := fmt.Sprintf("%*d) ", width, i+1)
		sb.WriteString(label)
		writeText(sb, e, indent+strings.Repeat(" ", len(label)))
	}
}

// Inline renders d on a single line.
func Inline(d Document) string {
	switch d.Type {
	case TypeNull:
		return "(nil)"
	case TypeError:
		return fmt.Sprintf("(error) %v", d.Value)
	case TypeInteger:
		return fmt.Sprintf("(integer) %v", d.Value)
	case TypeBulkString:
		s, _ := d.Value.(string)
		return strconv.Quote(s)
	case TypeArray:
		elems, _ := d.Value.([]Document)
		parts := make([]string, len(elems))
		for i, e := range elems {
			parts[i] = Inline(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(d.Value)
	}
}
