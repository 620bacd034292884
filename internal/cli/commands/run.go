package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/output"
)

// RunOptions holds command-line options for the run command.
type RunOptions struct {
	Output  string
	Layouts []string
	Jobs    int
	Header  bool
	Verbose bool
	Quiet   bool
}

// NewRunCommand creates the run command.
func NewRunCommand() *cobra.Command {
	opts := &RunOptions{}

	cmd := &cobra.Command{
		Use:   "run <config-file>",
		Short: "Split report files using a configuration",
		Long: `Split report files according to the layouts defined in the configuration file.

Each layout is applied to the files matched by its sources. Inferred layouts
derive column breaks from each whole file; fixed layouts slice every line with
the configured field widths.

Exit codes:
  0 - All lines split
  1 - One or more lines could not be split
  2 - Configuration or runtime error`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().StringSliceVar(&opts.Layouts, "layout", nil, "Run specific layout(s) only (can be repeated)")
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 0, "Files processed at once (default: number of CPUs)")
	cmd.Flags().BoolVar(&opts.Header, "header", false, "Print column names above each table")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show breaks, line numbers and timing")
	cmd.Flags().BoolVarP(&opts.Quiet, "quiet", "q", false, "Summary only, no rows")

	return cmd
}

func runRun(cmd *cobra.Command, args []string, opts *RunOptions) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	started := time.Now()

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	for _, name := range opts.Layouts {
		if cfg.Layout(name) == nil {
			return fmt.Errorf("unknown layout %q", name)
		}
	}

	tables, err := splitConfig(ctx, cfg, opts.Jobs, opts.Layouts)
	if err != nil {
		return fmt.Errorf("splitting files: %w", err)
	}

	return writeReport(ctx, cmd.OutOrStdout(), tables, configPath, started, opts.Output, output.FormatOptions{
		Verbose: opts.Verbose,
		Quiet:   opts.Quiet,
		Header:  opts.Header,
	})
}
