package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/colsplit/pkg/output"
)

// SplitOptions holds command-line options for the split command.
type SplitOptions struct {
	layoutFlags
	Output  string
	Jobs    int
	Header  bool
	Verbose bool
	Quiet   bool
}

// NewSplitCommand creates the split command.
func NewSplitCommand() *cobra.Command {
	opts := &SplitOptions{}

	cmd := &cobra.Command{
		Use:   "split <file>...",
		Short: "Split whitespace-aligned report files into fields",
		Long: `Split report files into tab-separated fields without a configuration file.

By default the column breaks of each file are inferred from runs of two or
more whitespace characters shared by all of its lines. With --widths every
line is sliced with the given field widths instead.

Example:
  colsplit split precincts.txt
  colsplit split --skip-blank --comment-prefix -o json reports/*.txt
  colsplit split --widths 12,8,5 --header county.dat`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSplit(cmd, args, opts)
		},
	}

	opts.register(cmd, true)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files processed at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.Header, "header", false, "Print column names above each table")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show breaks, line numbers and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no rows")

	return cmd
}

func runSplit(cmd *cobra.Command, args []string, opts *SplitOptions) error {
	ctx := commandContext(cmd)
	started := time.Now()

	cfg, err := opts.config("split", args)
	if err != nil {
		return err
	}

	tables, err := splitConfig(ctx, cfg, opts.Jobs, nil)
	if err != nil {
		return err
	}

	return writeReport(ctx, cmd.OutOrStdout(), tables, "", started, opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Header:  opts.Header,
	})
}
