package output

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// fieldEscaper keeps each field on one line and free of the tab delimiter.
var fieldEscaper = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)

// TextFormatter writes each table as tab-separated rows. Backslash, tab,
// newline and carriage return inside a field are written as \\, \t, \n
// and \r; use the JSON format for raw values.
type TextFormatter struct {
	opts FormatOptions
}

// NewTextFormatter creates a new text formatter with the given options.
func NewTextFormatter(opts FormatOptions) *TextFormatter {
	return &TextFormatter{opts: opts}
}

// Name returns the format name.
func (f *TextFormatter) Name() string {
	return "text"
}

// Format renders the report as text.
func (f *TextFormatter) Format(_ context.Context, report *Report, w io.Writer) error {
	if !f.opts.Quiet {
		multi := len(report.Tables) > 1
		for i, t := range report.Tables {
			if multi && i > 0 {
				fmt.Fprintln(w)
			}
			f.formatTable(t, multi, w)
		}
	}

	// Summary goes out last so that rows can be piped without it in the
	// common single-file case.
	if f.opts.Quiet || f.opts.Verbose || report.HasErrors() {
		f.formatSummary(report, w)
	}
	return nil
}

func (f *TextFormatter) formatTable(t *Table, withTitle bool, w io.Writer) {
	if withTitle || f.opts.Verbose {
		title := t.Source
		if t.Layout != "" {
			title = fmt.Sprintf("%s (%s)", t.Source, t.Layout)
		}
		fmt.Fprintf(w, "# %s\n", title)
	}
	if f.opts.Verbose && len(t.Breaks) > 0 {
		fmt.Fprintf(w, "# breaks: %s\n", joinInts(t.Breaks))
	}
	if f.opts.Header && len(t.Columns) > 0 {
		if f.opts.Verbose {
			fmt.Fprint(w, "line\t")
		}
		fmt.Fprintln(w, joinFields(t.Columns))
	}

	for _, row := range t.Rows {
		if f.opts.Verbose {
			fmt.Fprintf(w, "%d\t", row.LineNum)
		}
		fmt.Fprintln(w, joinFields(row.Fields))
	}

	for _, e := range t.Errors {
		fmt.Fprintf(w, "# error %s:%d: %s\n", t.Source, e.LineNum, e.Error)
	}
}

func joinFields(fields []string) string {
	escaped := make([]string, len(fields))
	for i, v := range fields {
		escaped[i] = fieldEscaper.Replace(v)
	}
	return strings.Join(escaped, "\t")
}

func (f *TextFormatter) formatSummary(report *Report, w io.Writer) {
	fmt.Fprintf(w, "colsplit: %d file(s), %d row(s), %d failed\n",
		report.Summary.Files,
		report.Summary.Rows,
		report.Summary.FailedRows)
	if f.opts.Verbose {
		fmt.Fprintf(w, "Duration: %s\n", report.Metadata.Duration.Round(1e6))
	}
}

func joinInts(v []int) string {
	s := make([]string, len(v))
	for i, n := range v {
		s[i] = fmt.Sprint(n)
	}
	return strings.Join(s, " ")
}
