package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
	"github.com/ccollicutt/colsplit/pkg/output"
	"github.com/ccollicutt/colsplit/pkg/runner"
)

// ExitCode is set by commands to indicate the result
var ExitCode = 0

var logger = zap.NewNop()

// SetLogger sets the logger used by all commands. A nil logger disables logging.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

// SyncLogger flushes any buffered log entries.
func SyncLogger() {
	// Sync on stderr returns EINVAL on some platforms.
	_ = logger.Sync()
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// layoutFlags holds the flags used to describe a layout on the command line.
type layoutFlags struct {
	Widths        []int
	MinRun        int
	BoundaryMode  string
	SkipBlank     bool
	CommentPrefix string
}

func (f *layoutFlags) register(cmd *cobra.Command, withWidths bool) {
	if withWidths {
		cmd.Flags().IntSliceVar(&f.Widths, "widths", nil, "Slice lines with fixed field widths instead of inferring breaks (e.g. 10,8,5)")
	}
	cmd.Flags().IntVar(&f.MinRun, "min-run", config.DefaultMinSeparatorRun, "Whitespace run length that separates columns")
	cmd.Flags().StringVar(&f.BoundaryMode, "boundary-mode", config.DefaultBoundaryMode, "Column 0 handling (leading_edge|wraparound)")
	cmd.Flags().BoolVar(&f.SkipBlank, "skip-blank", false, "Ignore blank lines")
	cmd.Flags().StringVar(&f.CommentPrefix, "comment-prefix", "", "Ignore lines starting with this prefix (bare flag uses \""+config.DefaultCommentPrefix+"\")")
	cmd.Flags().Lookup("comment-prefix").NoOptDefVal = config.DefaultCommentPrefix
}

// config builds and validates a single-layout configuration over files.
func (f *layoutFlags) config(name string, files []string) (*config.Config, error) {
	layout := config.LayoutConfig{
		Name:          name,
		SkipBlank:     f.SkipBlank,
		CommentPrefix: f.CommentPrefix,
	}
	if len(f.Widths) > 0 {
		layout.Mode = config.ModeFixed
		layout.Fields = make([]fixedwidth.Field, len(f.Widths))
		for i, w := range f.Widths {
			layout.Fields[i] = fixedwidth.Field{Name: fmt.Sprintf("col%d", i+1), Width: w}
		}
	} else {
		layout.Mode = config.ModeInferred
		layout.MinSeparatorRun = f.MinRun
		layout.BoundaryMode = f.BoundaryMode
	}

	cfg := &config.Config{Sources: files, Layouts: []config.LayoutConfig{layout}}
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

// splitConfig runs every layout in cfg over its sources. If only is
// non-empty, other layouts are skipped.
func splitConfig(ctx context.Context, cfg *config.Config, jobs int, only []string) ([]*output.Table, error) {
	var all []runner.Job
	for i := range cfg.Layouts {
		layout := &cfg.Layouts[i]
		if len(only) > 0 && !slices.Contains(only, layout.Name) {
			continue
		}
		js, err := runner.Jobs(cfg, layout)
		if err != nil {
			return nil, err
		}
		logger.Debug("expanded sources",
			zap.String("layout", layout.Name),
			zap.Strings("sources", layout.SourcePatterns(cfg)),
			zap.Int("files", len(js)))
		all = append(all, js...)
	}
	if len(all) == 0 {
		return nil, errors.New("no files matched sources")
	}

	return runner.New(runner.WithLogger(logger), runner.WithJobs(jobs)).Run(ctx, all)
}

// writeReport formats tables to w and sets ExitCode when rows failed.
func writeReport(ctx context.Context, w io.Writer, tables []*output.Table, configFile string, started time.Time, format string, opts output.FormatOptions) error {
	formatter, err := output.NewFormatter(format, opts)
	if err != nil {
		return err
	}

	report := output.NewReport(tables, configFile, started)
	if err := formatter.Format(ctx, report, w); err != nil {
		return fmt.Errorf("formatting output: %w", err)
	}

	if report.HasErrors() {
		ExitCode = 1
	}
	return nil
}
