// Package output provides formatting for split report tables.
package output

import (
	"strconv"
	"time"
)

// Report is the complete result of splitting one or more files.
type Report struct {
	Summary  Summary  `json:"summary"`
	Tables   []*Table `json:"tables"`
	Metadata Metadata `json:"metadata"`
}

// Summary provides aggregate statistics.
type Summary struct {
	Files      int `json:"files"`
	Rows       int `json:"rows"`
	FailedRows int `json:"failed_rows"`
}

// Metadata provides context about the run.
type Metadata struct {
	ConfigFile  string        `json:"config_file,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// Table holds the rows split from one source file.
type Table struct {
	Source string `json:"source"`
	Layout string `json:"layout,omitempty"`

	// Breaks are the column start indices used for an inferred split.
	Breaks []int `json:"breaks,omitempty"`

	// Columns names the fields of every row, in order.
	Columns []string `json:"columns"`

	Rows   []Row      `json:"rows"`
	Errors []RowError `json:"errors,omitempty"`
}

// Row is one split line.
type Row struct {
	LineNum int      `json:"line"`
	Fields  []string `json:"fields"`
}

// RowError records a line that could not be split.
type RowError struct {
	LineNum int    `json:"line"`
	Text    string `json:"text"`
	Error   string `json:"error"`
}

// NewReport builds a report over tables and computes its summary.
func NewReport(tables []*Table, configFile string, started time.Time) *Report {
	now := time.Now()
	report := &Report{
		Tables: tables,
		Metadata: Metadata{
			ConfigFile:  configFile,
			GeneratedAt: now,
			Duration:    now.Sub(started),
		},
	}
	report.Summary.Files = len(tables)
	for _, t := range tables {
		report.Summary.Rows += len(t.Rows)
		report.Summary.FailedRows += len(t.Errors)
	}
	return report
}

// HasErrors returns true if any line failed to split.
func (r *Report) HasErrors() bool {
	return r.Summary.FailedRows > 0
}

// ColumnNames returns generic names col1..coln.
func ColumnNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = "col" + strconv.Itoa(i+1)
	}
	return names
}
