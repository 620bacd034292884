// Package detector samples a report and proposes a column layout for it.
package detector

import (
	"context"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/ccollicutt/colsplit/pkg/columns"
	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// DefaultSampleSize is the number of lines sampled when no size is given.
const DefaultSampleSize = 100

// DetectionResult holds the layout inferred from a sample of lines.
type DetectionResult struct {
	Breaks       []int         // Inferred column start indices
	Width        int           // Widest sampled line, in characters
	FileWidth    int           // Widest line in the whole file; 0 for DetectFromLines
	SampledLines int           // Number of lines sampled
	Columns      []ColumnStats // One entry per break
	BoundaryMode columns.BoundaryMode
}

// ColumnStats describes one inferred column.
type ColumnStats struct {
	Index     int
	Start     int
	Width     int
	Filled    int     // Sampled lines with a non-empty value
	FillRatio float64 // Filled / SampledLines
	Sample    string  // First non-empty value
}

// Detector infers column layouts from report samples.
type Detector struct {
	sampleSize int
	colOpts    []columns.Option
	readOpts   reader.Options
	mode       columns.BoundaryMode
}

// Option configures the Detector.
type Option func(*Detector)

// WithSampleSize sets the number of lines to sample.
func WithSampleSize(n int) Option {
	return func(d *Detector) {
		if n > 0 {
			d.sampleSize = n
		}
	}
}

// WithMinRun sets the separator run length used for inference.
func WithMinRun(n int) Option {
	return func(d *Detector) {
		d.colOpts = append(d.colOpts, columns.WithMinRun(n))
	}
}

// WithBoundaryMode sets how index 0 is treated.
func WithBoundaryMode(m columns.BoundaryMode) Option {
	return func(d *Detector) {
		d.mode = m
	}
}

// WithReaderOptions sets which lines of a file are sampled.
func WithReaderOptions(o reader.Options) Option {
	return func(d *Detector) {
		d.readOpts = o
	}
}

// New creates a Detector. By default blank lines are not sampled.
func New(opts ...Option) *Detector {
	d := &Detector{
		sampleSize: DefaultSampleSize,
		readOpts:   reader.Options{SkipBlank: true},
		mode:       columns.LeadingEdge,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFromFile samples the head of a report and infers its layout.
func (d *Detector) DetectFromFile(ctx context.Context, path string) (*DetectionResult, error) {
	lines, fileWidth, err := d.sampleFile(ctx, path)
	if err != nil {
		return nil, err
	}
	result := d.DetectFromLines(lines)
	result.FileWidth = fileWidth
	return result, nil
}

// DetectFromLines infers a layout from lines. Only the first sample-size
// lines are used.
func (d *Detector) DetectFromLines(lines []string) *DetectionResult {
	if len(lines) > d.sampleSize {
		lines = lines[:d.sampleSize]
	}

	opts := append([]columns.Option{columns.WithBoundaryMode(d.mode)}, d.colOpts...)
	result := &DetectionResult{
		SampledLines: len(lines),
		BoundaryMode: d.mode,
		Breaks:       columns.InferBreaks(lines, opts...),
	}
	for _, line := range lines {
		result.Width = max(result.Width, utf8.RuneCountInString(line))
	}

	if len(result.Breaks) == 0 {
		return result
	}

	widths := columns.Widths(result.Breaks, result.Width)
	result.Columns = make([]ColumnStats, len(result.Breaks))
	for i, b := range result.Breaks {
		result.Columns[i] = ColumnStats{Index: i, Start: b, Width: widths[i]}
	}

	// Breaks are known valid here, so SplitRows cannot fail.
	rows, _ := columns.SplitRows(lines, result.Breaks)
	for _, row := range rows {
		for i, v := range row {
			if v == "" {
				continue
			}
			col := &result.Columns[i]
			if col.Filled == 0 {
				col.Sample = v
			}
			col.Filled++
		}
	}
	for i := range result.Columns {
		result.Columns[i].FillRatio = float64(result.Columns[i].Filled) / float64(len(lines))
	}

	return result
}

// HasColumns returns true if at least one column was inferred.
func (r *DetectionResult) HasColumns() bool {
	return len(r.Breaks) > 0
}

// Widths returns the width of each inferred column. The last column ends
// at the widest sampled line.
func (r *DetectionResult) Widths() []int {
	return columns.Widths(r.Breaks, r.Width)
}

// InferredLayout returns a layout configuration that re-infers breaks for
// every file it is applied to.
func (r *DetectionResult) InferredLayout(name string) config.LayoutConfig {
	return config.LayoutConfig{
		Name:            name,
		Mode:            config.ModeInferred,
		SkipBlank:       true,
		MinSeparatorRun: config.DefaultMinSeparatorRun,
		BoundaryMode:    r.BoundaryMode.String(),
	}
}

// FixedLayout returns a layout configuration that freezes the detected
// breaks as fixed widths. Columns are named col1, col2, and so on.
// Columns that start at or past the widest line are dropped. If the first
// break is not 0, the leading characters are kept as column "lead".
// The last column extends to the widest line of the file when that line
// lies past the sample.
func (r *DetectionResult) FixedLayout(name string) (config.LayoutConfig, error) {
	if !r.HasColumns() {
		return config.LayoutConfig{}, errors.New("no columns detected")
	}

	var fields []fixedwidth.Field
	if r.Breaks[0] > 0 {
		fields = append(fields, fixedwidth.Field{Name: "lead", Width: r.Breaks[0]})
	}
	for i, w := range columns.Widths(r.Breaks, max(r.Width, r.FileWidth)) {
		if w <= 0 {
			continue
		}
		fields = append(fields, fixedwidth.Field{Name: fmt.Sprintf("col%d", i+1), Width: w})
	}

	return config.LayoutConfig{
		Name:      name,
		Mode:      config.ModeFixed,
		SkipBlank: true,
		Fields:    fields,
	}, nil
}

// sampleFile reads up to sampleSize lines from the head of a file and
// measures the widest line of the whole file.
func (d *Detector) sampleFile(ctx context.Context, path string) ([]string, int, error) {
	src := reader.NewFileSource([]string{path}, d.readOpts)
	defer src.Close()

	var lines []string
	width := 0
	for {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		width = max(width, utf8.RuneCountInString(line.Text))
		if len(lines) < d.sampleSize {
			lines = append(lines, line.Text)
		}
	}
	return lines, width, nil
}
