package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ccollicutt/colsplit/pkg/columns"
	"github.com/ccollicutt/colsplit/pkg/detector"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// BreaksOptions holds command-line options for the breaks command.
type BreaksOptions struct {
	layoutFlags
	Output string
	Jobs   int
}

// FileBreaks is the breaks command result for one file.
type FileBreaks struct {
	File   string `json:"file"`
	Breaks []int  `json:"breaks"`
	Widths []int  `json:"widths"`
	Lines  int    `json:"lines"`
}

// NewBreaksCommand creates the breaks command.
func NewBreaksCommand() *cobra.Command {
	opts := &BreaksOptions{}

	cmd := &cobra.Command{
		Use:   "breaks <file>...",
		Short: "Print the inferred column breaks of report files",
		Long: `Infer the column start indices of each file from the whitespace runs
shared by all of its lines, and print them.

Indices count characters, not bytes. A file whose lines share no separator
has no breaks.

Example:
  colsplit breaks precincts.txt
  colsplit breaks --boundary-mode wraparound -o json reports/*.txt`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBreaks(cmd, args, opts)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files processed at once (default: number of CPUs)")

	return cmd
}

func runBreaks(cmd *cobra.Command, args []string, opts *BreaksOptions) error {
	ctx := commandContext(cmd)

	mode, err := columns.ParseBoundaryMode(opts.BoundaryMode)
	if err != nil {
		return err
	}
	if opts.MinRun < 1 {
		return fmt.Errorf("--min-run must be >= 1, got %d", opts.MinRun)
	}
	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	files, err := reader.ExpandGlobs(args)
	if err != nil {
		return err
	}

	d := detector.New(
		detector.WithSampleSize(math.MaxInt),
		detector.WithMinRun(opts.MinRun),
		detector.WithBoundaryMode(mode),
		detector.WithReaderOptions(reader.Options{SkipBlank: opts.SkipBlank, CommentPrefix: opts.CommentPrefix}),
	)

	results := make([]FileBreaks, len(files))
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			r, err := d.DetectFromFile(ctx, file)
			if err != nil {
				return err
			}
			results[i] = FileBreaks{File: file, Breaks: r.Breaks, Widths: r.Widths(), Lines: r.SampledLines}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if opts.Output == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(results)
	}
	return writeBreaksText(cmd.OutOrStdout(), results)
}

func writeBreaksText(w io.Writer, results []FileBreaks) error {
	for _, r := range results {
		breaks := "(none)"
		if len(r.Breaks) > 0 {
			breaks = joinInts(r.Breaks)
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\n", r.File, breaks); err != nil {
			return err
		}
	}
	return nil
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ",")
}
