package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/detector"
	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// DiagnoseOptions holds options for the diagnose command
type DiagnoseOptions struct {
	Verbose    bool
	SampleSize int
}

// DiagnosticResult represents the result of a single diagnostic check
type DiagnosticResult struct {
	Check    string
	Status   string // "ok", "warning", "error"
	Message  string
	Details  []string
	Suggests []string
}

// NewDiagnoseCommand creates the diagnose command
func NewDiagnoseCommand() *cobra.Command {
	opts := &DiagnoseOptions{}

	cmd := &cobra.Command{
		Use:   "diagnose <config-file>",
		Short: "Diagnose common configuration issues",
		Long: `Diagnose common configuration issues.

This command checks your configuration file for common problems:
- Config file syntax and structure
- Source file existence and accessibility
- Layouts against a sample of each layout's first file

Example:
  colsplit diagnose colsplit.yaml
  colsplit diagnose -v colsplit.yaml  # verbose output`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiagnose(commandContext(cmd), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show detailed diagnostic output")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample per layout")

	return cmd
}

func runDiagnose(ctx context.Context, w io.Writer, configPath string, opts *DiagnoseOptions) error {
	results := []DiagnosticResult{}

	result := checkConfigExists(configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	cfg, result := checkConfigParseable(ctx, configPath)
	results = append(results, result)
	if result.Status == "error" {
		printDiagnostics(w, results, opts)
		return nil
	}

	for i := range cfg.Layouts {
		layout := &cfg.Layouts[i]
		sourceResult, files := checkSources(cfg, layout)
		results = append(results, sourceResult)
		if len(files) > 0 {
			results = append(results, checkLayoutSample(ctx, layout, files[0], opts))
		}
	}

	printDiagnostics(w, results, opts)
	return nil
}

func checkConfigExists(path string) DiagnosticResult {
	result := DiagnosticResult{
		Check: "Config File",
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file not found: %s", path)
		result.Suggests = []string{
			"Check the file path is correct",
			"Use 'colsplit detect <report-file> --write-config colsplit.yaml' to generate a starter config",
		}
		return result
	}
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot access config file: %v", err)
		result.Suggests = []string{"Check file permissions"}
		return result
	}
	if info.IsDir() {
		result.Status = "error"
		result.Message = "Path is a directory, not a file"
		return result
	}
	if info.Size() == 0 {
		result.Status = "error"
		result.Message = "Config file is empty"
		result.Suggests = []string{
			"Use 'colsplit detect <report-file> --write-config colsplit.yaml' to generate a starter config",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("Found: %s (%d bytes)", path, info.Size())
	return result
}

func checkConfigParseable(ctx context.Context, path string) (*config.Config, DiagnosticResult) {
	result := DiagnosticResult{
		Check: "Config Syntax",
	}

	cfg, err := config.Load(ctx, path)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Failed to parse config: %v", err)
		if strings.Contains(err.Error(), "yaml") {
			result.Suggests = []string{
				"Check YAML syntax - ensure proper indentation (use spaces, not tabs)",
			}
		}
		return nil, result
	}

	result.Status = "ok"
	result.Message = "Config file parsed successfully"
	result.Details = []string{
		fmt.Sprintf("Sources: %d", len(cfg.Sources)),
		fmt.Sprintf("Layouts: %d", len(cfg.Layouts)),
	}
	return cfg, result
}

// checkSources reports which of a layout's sources exist and returns the
// readable files among them.
func checkSources(cfg *config.Config, layout *config.LayoutConfig) (DiagnosticResult, []string) {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Sources: %s", layout.Name),
	}

	matches, err := reader.ExpandGlobs(layout.SourcePatterns(cfg))
	if err != nil {
		result.Status = "error"
		result.Message = err.Error()
		result.Suggests = []string{"Verify the glob pattern syntax"}
		return result, nil
	}

	var files, missing []string
	for _, m := range matches {
		info, err := os.Stat(m)
		switch {
		case err != nil:
			missing = append(missing, fmt.Sprintf("%s: %v", m, err))
		case info.Size() == 0:
			result.Details = append(result.Details, fmt.Sprintf("%s (empty)", m))
		default:
			files = append(files, m)
			result.Details = append(result.Details, m)
		}
	}

	switch {
	case len(files) == 0:
		result.Status = "error"
		result.Message = "No readable report files found"
		result.Details = append(missing, result.Details...)
		result.Suggests = []string{
			"Check if the report files exist at this path",
			"Verify the glob pattern syntax",
		}
	case len(missing) > 0:
		result.Status = "warning"
		result.Message = fmt.Sprintf("%d file(s) found, %d missing", len(files), len(missing))
		result.Details = append(missing, result.Details...)
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("Matches %d file(s)", len(files))
	}
	return result, files
}

// checkLayoutSample applies a layout to the head of one of its files.
func checkLayoutSample(ctx context.Context, layout *config.LayoutConfig, file string, opts *DiagnoseOptions) DiagnosticResult {
	result := DiagnosticResult{
		Check: fmt.Sprintf("Layout: %s (%s)", layout.Name, layout.Mode),
	}

	if fixed := layout.FixedLayout(); fixed != nil {
		return checkFixedSample(ctx, result, fixed, layout, file, opts)
	}

	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithMinRun(layout.MinSeparatorRun),
		detector.WithBoundaryMode(layout.Boundary()),
		detector.WithReaderOptions(layout.ReaderOptions()),
	)
	detected, err := d.DetectFromFile(ctx, file)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Cannot read %s: %v", file, err)
		return result
	}

	switch len(detected.Breaks) {
	case 0:
		result.Status = "error"
		result.Message = fmt.Sprintf("No columns found in %d sampled line(s) of %s", detected.SampledLines, file)
		result.Suggests = []string{
			"Set skip_blank: true if the report has blank lines",
			"Set comment_prefix to skip header or footer lines",
			"Use a fixed layout if the columns are not separated by whitespace runs",
		}
	case 1:
		result.Status = "warning"
		result.Message = fmt.Sprintf("Only one column found in %s", file)
		result.Suggests = []string{"A row that does not line up with the others merges columns; check for titles or totals lines"}
	default:
		result.Status = "ok"
		result.Message = fmt.Sprintf("%d columns, breaks %s", len(detected.Breaks), joinInts(detected.Breaks))
	}
	for _, c := range detected.Columns {
		result.Details = append(result.Details, fmt.Sprintf("col%d at %d: %.0f%% filled, sample %q",
			c.Index+1, c.Start, c.FillRatio*100, truncate(c.Sample, 30)))
	}
	return result
}

func checkFixedSample(ctx context.Context, result DiagnosticResult, fixed *fixedwidth.Layout, layout *config.LayoutConfig, file string, opts *DiagnoseOptions) DiagnosticResult {
	src := reader.NewFileSource([]string{file}, layout.ReaderOptions())
	defer src.Close()

	total, _ := fixedwidth.Total(fixed.Widths())
	sampled, tooLong := 0, 0
	for sampled < opts.SampleSize {
		line, err := src.Next(ctx)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Status = "error"
			result.Message = fmt.Sprintf("Cannot read %s: %v", file, err)
			return result
		}
		sampled++
		if n := utf8.RuneCountInString(line.Text); n > total {
			tooLong++
			if len(result.Details) < 5 {
				result.Details = append(result.Details, fmt.Sprintf("line %d has %d characters: %q", line.LineNum, n, truncate(line.Text, 40)))
			}
		}
	}

	if tooLong > 0 {
		result.Status = "error"
		result.Message = fmt.Sprintf("%d of %d sampled line(s) are longer than the %d characters the fields cover", tooLong, sampled, total)
		result.Suggests = []string{
			"Widen the last field or add a field for the trailing text",
			"Use 'colsplit detect <report-file>' to propose widths",
		}
		return result
	}

	result.Status = "ok"
	result.Message = fmt.Sprintf("%d sampled line(s) fit %d field(s) covering %d characters", sampled, len(fixed.Fields), total)
	return result
}

func printDiagnostics(w io.Writer, results []DiagnosticResult, opts *DiagnoseOptions) {
	fmt.Fprintln(w, "=== colsplit Configuration Diagnostics ===")
	fmt.Fprintln(w)

	okCount := 0
	warnCount := 0
	errCount := 0

	for _, r := range results {
		var icon string
		switch r.Status {
		case "ok":
			icon = "PASS"
			okCount++
		case "warning":
			icon = "WARN"
			warnCount++
		case "error":
			icon = "FAIL"
			errCount++
		}

		fmt.Fprintf(w, "[%s] %s\n", icon, r.Check)
		fmt.Fprintf(w, "    %s\n", r.Message)

		if opts.Verbose || r.Status != "ok" {
			for _, d := range r.Details {
				fmt.Fprintf(w, "      - %s\n", d)
			}
		}

		for _, s := range r.Suggests {
			fmt.Fprintf(w, "      Hint: %s\n", s)
		}

		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "---")
	fmt.Fprintf(w, "Summary: %d passed, %d warnings, %d errors\n", okCount, warnCount, errCount)

	if errCount > 0 {
		fmt.Fprintln(w, "\nFix the errors above before running colsplit run.")
	} else if warnCount > 0 {
		fmt.Fprintln(w, "\nConfiguration is usable but has warnings.")
	} else {
		fmt.Fprintln(w, "\nConfiguration looks good!")
	}
}

func truncate(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	return string([]rune(s)[:maxLen-3]) + "..."
}
