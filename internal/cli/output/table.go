package output

import (
	"io"
	"strings"
	"text/tabwriter"
	"unicode/utf8"
)

// Table is a set of rows printed with aligned columns.
type Table struct {
	Headers []string
	Rows    [][]string

	// MaxWidth truncates longer cells, marking them with "...". Zero keeps
	// cells whole.
	MaxWidth int
}

// Render writes the table with columns aligned by tabwriter.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		if err := t.writeRow(tw, t.Headers); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := t.writeRow(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func (t *Table) writeRow(w io.Writer, cells []string) error {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = t.clip(strings.ReplaceAll(c, "\t", " "))
	}
	_, err := io.WriteString(w, strings.Join(out, "\t")+"\n")
	return err
}

func (t *Table) clip(s string) string {
	if t.MaxWidth <= 3 || utf8.RuneCountInString(s) <= t.MaxWidth {
		return s
	}
	r := []rune(s)
	return string(r[:t.MaxWidth-3]) + "..."
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...string) {
	t.Rows = append(t.Rows, cells)
}

// SetHeaders sets the table headers.
func (t *Table) SetHeaders(headers ...string) {
	t.Headers = headers
}
