// Package output renders CLI results as aligned text on a terminal and as
// JSON when piped.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"
)

// Printer writes either human-readable tables or JSON.
type Printer struct {
	w    io.Writer
	json bool
}

// New picks the mode from w: JSON unless w is a terminal. forceJSON
// overrides the detection.
func New(w io.Writer, forceJSON bool) *Printer {
	return &Printer{w: w, json: forceJSON || !isTerminal(w)}
}

// Stdout returns a printer for os.Stdout.
func Stdout(forceJSON bool) *Printer {
	return New(os.Stdout, forceJSON)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Human returns a printer that always writes text.
func Human(w io.Writer) *Printer {
	return &Printer{w: w}
}

// JSON reports whether the printer emits JSON.
func (p *Printer) JSON() bool {
	return p.json
}

// Value prints v as indented JSON in JSON mode, or calls human otherwise.
func (p *Printer) Value(v any, human func(w io.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	human(p.w)
	return nil
}

// Table prints rows under headers in human mode, and v as JSON otherwise.
func (p *Printer) Table(v any, headers []string, rows [][]string) error {
	return p.Value(v, func(w io.Writer) {
		if len(rows) == 0 {
			fmt.Fprintln(w, "No results")
			return
		}
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, strings.Join(headers, "\t"))
		for _, r := range rows {
			fmt.Fprintln(tw, strings.Join(r, "\t"))
		}
		tw.Flush()
	})
}

// Money formats dollars with thousands separators and no cents when whole.
func Money(v float64) string {
	if v == float64(int64(v)) {
		return "$" + humanize.Comma(int64(v))
	}
	return "$" + humanize.CommafWithDigits(v, 2)
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

// Dash replaces empty strings for table cells.
func Dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// SplitList splits a comma-separated flag value, dropping blanks.
func SplitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
