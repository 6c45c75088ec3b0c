package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "$0"},
		{5000, "$5,000"},
		{1234567, "$1,234,567"},
		{1999.5, "$1,999.5"},
	}
	for _, tt := range tests {
		if got := Money(tt.in); got != tt.want {
			t.Errorf("Money(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(150); got != "150.0%" {
		t.Errorf("Percent(150) = %q", got)
	}
}

func TestBufferIsNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	if !New(&buf, false).JSON() {
		t.Error("buffer output should default to JSON")
	}
}

func TestTableJSON(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf, true)
	rows := []map[string]string{{"name": "DB1"}}
	if err := p.Table(rows, []string{"NAME"}, [][]string{{"DB1"}}); err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	var got []map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if got[0]["name"] != "DB1" {
		t.Errorf("got %v", got)
	}
}

func TestTableHuman(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{w: &buf}
	if err := p.Table(nil, []string{"NAME", "COST"}, [][]string{{"DB1", "$5,000"}, {"Web", "$10"}}); err != nil {
		t.Fatalf("Table() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "DB1  ") {
		t.Errorf("row not aligned: %q", lines[1])
	}
}

func TestTableHumanEmpty(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{w: &buf}
	p.Table(nil, []string{"NAME"}, nil)
	if strings.TrimSpace(buf.String()) != "No results" {
		t.Errorf("got %q", buf.String())
	}
}

func TestValueHuman(t *testing.T) {
	var buf bytes.Buffer
	p := &Printer{w: &buf}
	p.Value(42, func(w io.Writer) { io.WriteString(w, "forty-two") })
	if buf.String() != "forty-two" {
		t.Errorf("got %q", buf.String())
	}
}

func TestDash(t *testing.T) {
	if Dash("") != "-" || Dash("x") != "x" {
		t.Error("Dash")
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", []string{}},
		{"db", []string{"db"}},
		{" db , cache,, queue ", []string{"db", "cache", "queue"}},
	}
	for _, tt := range tests {
		if diff := cmp.Diff(tt.want, SplitList(tt.in)); diff != "" {
			t.Errorf("SplitList(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}
