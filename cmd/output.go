package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	apperrors "github.com/lepinkainen/tmdbkit/internal/errors"
	"github.com/lepinkainen/tmdbkit/tmdb"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

// Printer writes command results in the selected format.
type Printer struct {
	w      io.Writer
	format string
}

// NewPrinter creates a printer. An empty format picks table output for a
// terminal and JSON otherwise.
func NewPrinter(w io.Writer, format string) (*Printer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = detectFormat(w)
	}
	switch format {
	case FormatTable, FormatJSON, FormatYAML:
	default:
		return nil, apperrors.NewConfigError("output.format", fmt.Sprintf("unknown format %q", format))
	}
	return &Printer{w: w, format: format}, nil
}

func detectFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return FormatTable
	}
	return FormatJSON
}

// Format returns the selected format.
func (p *Printer) Format() string {
	return p.format
}

// table is a header plus rows of cells.
type table struct {
	header []string
	rows   [][]string
}

func (t *table) add(cells ...any) {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	t.rows = append(t.rows, row)
}

// Print writes v as JSON or YAML, or renders tbl for table output. A nil
// table falls back to YAML.
func (p *Printer) Print(v any, tbl *table) error {
	switch p.format {
	case FormatJSON:
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		return p.yaml(v)
	}
	if tbl == nil {
		return p.yaml(v)
	}
	return p.table(tbl)
}

func (p *Printer) yaml(v any) error {
	enc := yaml.NewEncoder(p.w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func (p *Printer) table(t *table) error {
	if len(t.rows) == 0 {
		_, err := fmt.Fprintln(p.w, "No results")
		return err
	}
	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	header := make([]string, len(t.header))
	for i, h := range t.header {
		header[i] = headerStyle.Render(h)
	}
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range t.rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func yearCell(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprint(year)
}

func resourceTable(results []tmdb.Resource) *table {
	t := &table{header: []string{"KIND", "ID", "TITLE", "YEAR"}}
	for _, r := range results {
		t.add(r.MediaType, r.ID(), r.Title(), yearCell(r.Year()))
	}
	return t
}
