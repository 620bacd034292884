// Package runner applies configured layouts to report files and collects
// the resulting tables.
package runner

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/colsplit/pkg/columns"
	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
	"github.com/ccollicutt/colsplit/pkg/output"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// Job pairs a file with the layout used to split it.
type Job struct {
	Path   string
	Layout *config.LayoutConfig
}

// Runner splits files, several at a time.
type Runner struct {
	logger *zap.Logger
	jobs   int
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger used for per-file progress.
func WithLogger(l *zap.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithJobs bounds the number of files processed at once.
func WithJobs(n int) Option {
	return func(r *Runner) {
		if n > 0 {
			r.jobs = n
		}
	}
}

// New creates a Runner. By default it runs one file per CPU and does not log.
func New(opts ...Option) *Runner {
	r := &Runner{
		logger: zap.NewNop(),
		jobs:   runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Jobs builds one job per file matched by the layout's sources.
func Jobs(cfg *config.Config, layout *config.LayoutConfig) ([]Job, error) {
	files, err := reader.ExpandGlobs(layout.SourcePatterns(cfg))
	if err != nil {
		return nil, fmt.Errorf("expanding sources for layout %s: %w", layout.Name, err)
	}
	jobs := make([]Job, len(files))
	for i, f := range files {
		jobs[i] = Job{Path: f, Layout: layout}
	}
	return jobs, nil
}

// Run splits every job and returns the tables in job order. A file that
// cannot be read aborts the run; lines that cannot be split are recorded
// on their table.
func (r *Runner) Run(ctx context.Context, jobs []Job) ([]*output.Table, error) {
	tables := make([]*output.Table, len(jobs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			t, err := SplitFile(ctx, job.Path, job.Layout)
			if err != nil {
				return err
			}
			r.logger.Debug("split file",
				zap.String("source", job.Path),
				zap.String("layout", job.Layout.Name),
				zap.Ints("breaks", t.Breaks),
				zap.Int("rows", len(t.Rows)),
				zap.Int("failed", len(t.Errors)))
			for _, e := range t.Errors {
				r.logger.Warn("row not split",
					zap.String("source", job.Path),
					zap.Int("line", e.LineNum),
					zap.String("error", e.Error))
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return tables, nil
}

// SplitFile reads path and splits its lines according to layout.
func SplitFile(ctx context.Context, path string, layout *config.LayoutConfig) (*output.Table, error) {
	lines, err := reader.ReadFile(ctx, path, layout.ReaderOptions())
	if err != nil {
		return nil, err
	}

	table := &output.Table{
		Source: path,
		Layout: layout.Name,
		Rows:   make([]output.Row, 0, len(lines)),
	}

	if fixed := layout.FixedLayout(); fixed != nil {
		splitFixed(table, lines, fixed)
		return table, nil
	}

	splitInferred(table, lines, layout.ColumnOptions())
	return table, nil
}

func splitFixed(table *output.Table, lines []reader.Line, layout *fixedwidth.Layout) {
	table.Columns = layout.Names()
	widths := layout.Widths()
	for _, l := range lines {
		fields, err := fixedwidth.Slice(widths, l.Text)
		if err != nil {
			table.Errors = append(table.Errors, output.RowError{LineNum: l.LineNum, Text: l.Text, Error: err.Error()})
			continue
		}
		table.Rows = append(table.Rows, output.Row{LineNum: l.LineNum, Fields: fields})
	}
}

func splitInferred(table *output.Table, lines []reader.Line, opts []columns.Option) {
	if len(lines) == 0 {
		return
	}

	texts := reader.Texts(lines)
	table.Breaks = columns.InferBreaks(texts, opts...)

	rows, err := columns.SplitRows(texts, table.Breaks)
	if err != nil {
		table.Errors = append(table.Errors, output.RowError{Error: err.Error()})
		return
	}

	table.Columns = output.ColumnNames(len(table.Breaks))
	for i, fields := range rows {
		table.Rows = append(table.Rows, output.Row{LineNum: lines[i].LineNum, Fields: fields})
	}
}
