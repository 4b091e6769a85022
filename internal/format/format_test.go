package format_test

import (
	"bytes"
	"strings"
	"testing"

	"patina/internal/format"
	"patina/internal/morphospace"
)

func TestASCII_BasicTable(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Header("ID", "Nearest", "Distance")
	tb.Row("fresh_pristine", "pristine_surface", 0.0866)
	tb.Row("deep_rust", "active_corrosion", 0.1)
	out := tb.String()

	for _, want := range []string{"ID", "fresh_pristine", "0.0866"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	// StyleLight draws box characters.
	if !strings.Contains(out, "───") {
		t.Errorf("expected box-drawing characters in ASCII output:\n%s", out)
	}
}

func TestMarkdown_BasicTable(t *testing.T) {
	tb := format.NewTable(format.Markdown)
	tb.Header("Preset", "Period")
	tb.Row("aging_cycle", 16)
	out := tb.String()

	if !strings.Contains(out, "| Preset") {
		t.Errorf("expected markdown header with '| Preset':\n%s", out)
	}
	if !strings.Contains(out, "---") {
		t.Errorf("expected markdown separator '---':\n%s", out)
	}
}

func TestFooterAndTitle(t *testing.T) {
	tb := format.NewTable(format.ASCII)
	tb.Title("Presets")
	tb.Header("Preset", "Period")
	tb.Row("aging_cycle", 16)
	tb.Footer("TOTAL", 1)
	tb.Columns(format.ColumnConfig{Number: 2, Align: format.AlignRight})

	var buf bytes.Buffer
	if _, err := tb.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Presets", "TOTAL", "16"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "\n") {
		t.Error("WriteTo should end with a newline")
	}
}

func TestParseMode(t *testing.T) {
	if m, err := format.ParseMode("markdown"); err != nil || m != format.Markdown {
		t.Errorf("ParseMode(markdown) = %v, %v", m, err)
	}
	if m, err := format.ParseMode(""); err != nil || m != format.ASCII {
		t.Errorf("ParseMode(\"\") = %v, %v", m, err)
	}
	if _, err := format.ParseMode("html"); err == nil {
		t.Error("expected error for html")
	}
}

func TestFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{0.5, "0.5"},
		{0.14644660940672624, "0.1464"},
		{0.30000000000000004, "0.3"},
	}
	for _, tc := range tests {
		if got := format.Float(tc.in); got != tc.want {
			t.Errorf("Float(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCoordinate(t *testing.T) {
	c := morphospace.NewCoordinate(0, 0, 0.5, 0, 0.5)
	if got, want := format.Coordinate(c), "0/0/0.5/0/0.5"; got != want {
		t.Errorf("Coordinate = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is..."},
		{"abc", 2, "ab"},
		{"granular disaggregation — surface", 14, "granular di..."},
	}
	for _, tc := range tests {
		if got := format.Truncate(tc.in, tc.maxLen); got != tc.want {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tc.in, tc.maxLen, got, tc.want)
		}
	}
}
