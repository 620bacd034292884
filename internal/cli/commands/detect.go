package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ccollicutt/colsplit/pkg/columns"
	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/detector"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// DetectOptions holds command-line options for the detect command.
type DetectOptions struct {
	layoutFlags
	Output      string
	SampleSize  int
	WriteConfig string
	Name        string
	Inferred    bool
}

// NewDetectCommand creates the detect command.
func NewDetectCommand() *cobra.Command {
	opts := &DetectOptions{}

	cmd := &cobra.Command{
		Use:   "detect <report-file>",
		Short: "Detect the column layout of a report file",
		Long: `Sample the head of a report file and infer its column layout.

Reports the column breaks, the width of each column, how many sampled lines
fill it, and a ready-to-use YAML layout. By default the layout freezes the
detected breaks as fixed widths, and its last column reaches the widest line
of the whole file, sampled or not; with --inferred it re-infers breaks for every
file it is applied to.

Optionally generates a starter config file with --write-config.

Example:
  colsplit detect precincts.txt
  colsplit detect --sample 500 --skip-blank precincts.txt
  colsplit detect -w colsplit.yaml --name precinct precincts.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDetect(cmd, args, opts)
		},
	}

	opts.register(cmd, false)
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "text", "Output format (text|json)")
	cmd.Flags().IntVarP(&opts.SampleSize, "sample", "n", detector.DefaultSampleSize, "Number of lines to sample")
	cmd.Flags().StringVarP(&opts.WriteConfig, "write-config", "w", "", "Write starter config to file (will not overwrite)")
	cmd.Flags().StringVar(&opts.Name, "name", "", "Layout name (default: file name without extension)")
	cmd.Flags().BoolVar(&opts.Inferred, "inferred", false, "Propose an inferred layout instead of fixed widths")

	return cmd
}

func runDetect(cmd *cobra.Command, args []string, opts *DetectOptions) error {
	reportFile := args[0]
	ctx := commandContext(cmd)

	if _, err := os.Stat(reportFile); os.IsNotExist(err) {
		return fmt.Errorf("report file not found: %s", reportFile)
	}
	if opts.Output != "text" && opts.Output != "json" {
		return fmt.Errorf("unknown output format %q (use text or json)", opts.Output)
	}

	mode, err := columns.ParseBoundaryMode(opts.BoundaryMode)
	if err != nil {
		return err
	}

	d := detector.New(
		detector.WithSampleSize(opts.SampleSize),
		detector.WithMinRun(opts.MinRun),
		detector.WithBoundaryMode(mode),
		detector.WithReaderOptions(reader.Options{SkipBlank: opts.SkipBlank, CommentPrefix: opts.CommentPrefix}),
	)

	result, err := d.DetectFromFile(ctx, reportFile)
	if err != nil {
		return fmt.Errorf("detection failed: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = layoutName(reportFile)
	}
	layout, layoutErr := proposeLayout(result, name, opts)

	if opts.WriteConfig != "" {
		if layoutErr != nil {
			return fmt.Errorf("cannot generate config: %w", layoutErr)
		}
		if err := writeStarterConfig(cmd.OutOrStdout(), layout, reportFile, opts.WriteConfig); err != nil {
			return err
		}
	}

	if opts.Output == "json" {
		return outputDetectJSON(cmd.OutOrStdout(), result, reportFile, layout, layoutErr)
	}
	return outputDetectText(cmd.OutOrStdout(), result, reportFile, layout, layoutErr)
}

// proposeLayout builds the layout suggested for a detection result.
func proposeLayout(result *detector.DetectionResult, name string, opts *DetectOptions) (config.LayoutConfig, error) {
	if !result.HasColumns() {
		return config.LayoutConfig{}, errors.New("no columns detected")
	}

	var layout config.LayoutConfig
	if opts.Inferred {
		layout = result.InferredLayout(name)
		layout.MinSeparatorRun = opts.MinRun
	} else {
		var err error
		if layout, err = result.FixedLayout(name); err != nil {
			return config.LayoutConfig{}, err
		}
	}
	layout.SkipBlank = opts.SkipBlank
	layout.CommentPrefix = opts.CommentPrefix
	return layout, nil
}

func outputDetectText(w io.Writer, result *detector.DetectionResult, reportFile string, layout config.LayoutConfig, layoutErr error) error {
	fmt.Fprintln(w, "=== Column Detection ===")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "File: %s\n", reportFile)
	fmt.Fprintf(w, "Lines sampled: %d\n", result.SampledLines)
	fmt.Fprintf(w, "Widest line: %d\n", result.Width)
	if result.FileWidth > result.Width {
		fmt.Fprintf(w, "Widest line past the sample: %d\n", result.FileWidth)
	}
	fmt.Fprintf(w, "Boundary mode: %s\n", result.BoundaryMode)
	fmt.Fprintln(w)

	if layoutErr != nil {
		fmt.Fprintln(w, "No columns detected.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Tip: The sampled lines share no run of separator whitespace.")
		fmt.Fprintln(w, "Try a larger --sample, --skip-blank, or a smaller --min-run.")
		return nil
	}

	fmt.Fprintf(w, "Breaks: %s\n", joinInts(result.Breaks))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-4s %-6s %-6s %-7s %s\n", "COL", "START", "WIDTH", "FILLED", "SAMPLE")
	for _, c := range result.Columns {
		fmt.Fprintf(w, "%-4d %-6d %-6d %-7s %s\n", c.Index+1, c.Start, c.Width,
			fmt.Sprintf("%.0f%%", c.FillRatio*100), c.Sample)
	}
	fmt.Fprintln(w)

	snippet, err := yaml.Marshal(config.Config{Layouts: []config.LayoutConfig{layout}})
	if err != nil {
		return fmt.Errorf("encoding layout: %w", err)
	}
	fmt.Fprintln(w, "--- Configuration snippet (copy to your config file) ---")
	fmt.Fprintln(w)
	_, err = w.Write(snippet)
	return err
}

// JSONColumn represents a detected column in JSON output.
type JSONColumn struct {
	Start     int     `json:"start"`
	Width     int     `json:"width"`
	Filled    int     `json:"filled"`
	FillRatio float64 `json:"fill_ratio"`
	Sample    string  `json:"sample,omitempty"`
}

// JSONOutput represents the full JSON output.
type JSONOutput struct {
	File         string               `json:"file"`
	SampledLines int                  `json:"sampled_lines"`
	Width        int                  `json:"width"`
	BoundaryMode string               `json:"boundary_mode"`
	Breaks       []int                `json:"breaks"`
	Columns      []JSONColumn         `json:"columns"`
	Layout       *config.LayoutConfig `json:"layout,omitempty"`
}

func outputDetectJSON(w io.Writer, result *detector.DetectionResult, reportFile string, layout config.LayoutConfig, layoutErr error) error {
	out := JSONOutput{
		File:         reportFile,
		SampledLines: result.SampledLines,
		Width:        result.Width,
		BoundaryMode: result.BoundaryMode.String(),
		Breaks:       result.Breaks,
		Columns:      make([]JSONColumn, 0, len(result.Columns)),
	}
	if out.Breaks == nil {
		out.Breaks = []int{}
	}
	for _, c := range result.Columns {
		out.Columns = append(out.Columns, JSONColumn{
			Start:     c.Start,
			Width:     c.Width,
			Filled:    c.Filled,
			FillRatio: c.FillRatio,
			Sample:    c.Sample,
		})
	}
	if layoutErr == nil {
		out.Layout = &layout
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}

// writeStarterConfig writes a config holding layout with reportFile as its source.
func writeStarterConfig(w io.Writer, layout config.LayoutConfig, reportFile, configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s (will not overwrite)", configPath)
	}

	content, err := generateStarterConfig(layout, reportFile)
	if err != nil {
		return err
	}

	// #nosec G306 - config file doesn't need restrictive permissions
	if err := os.WriteFile(configPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(w, "Wrote starter config to: %s\n\n", configPath)
	return nil
}

// generateStarterConfig renders a validated YAML config for layout.
func generateStarterConfig(layout config.LayoutConfig, reportFile string) ([]byte, error) {
	absReportFile := reportFile
	if abs, err := filepath.Abs(reportFile); err == nil {
		absReportFile = abs
	}

	cfg := config.Config{
		Sources: []string{absReportFile},
		Layouts: []config.LayoutConfig{layout},
	}
	check := cfg
	check.Layouts = []config.LayoutConfig{layout}
	if err := config.Validate(&check); err != nil {
		return nil, fmt.Errorf("generated layout is invalid: %w", err)
	}

	body, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# colsplit configuration\n")
	sb.WriteString("# Generated by: colsplit detect\n")
	fmt.Fprintf(&sb, "# Detected from: %s\n\n", reportFile)
	sb.Write(body)
	return []byte(sb.String()), nil
}

// layoutName derives a layout name from a file path.
func layoutName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
