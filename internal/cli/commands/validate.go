package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/colsplit/pkg/config"
	"github.com/ccollicutt/colsplit/pkg/reader"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a configuration file",
		Long: `Validate a colsplit configuration file without splitting anything.

Checks:
  - YAML syntax
  - Required fields
  - Layout mode-specific requirements
  - Field widths and names of fixed layouts
  - Source file existence (warning only)`,
		Args: cobra.ExactArgs(1),
		RunE: runValidate,
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	configPath := args[0]
	ctx := commandContext(cmd)
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Validating %s...\n", configPath)

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	fmt.Fprintf(w, "\nConfiguration valid!\n")
	fmt.Fprintf(w, "  Sources: %d pattern(s)\n", len(cfg.Sources))
	fmt.Fprintf(w, "  Layouts: %d\n", len(cfg.Layouts))

	fmt.Fprintf(w, "\nLayouts:\n")
	for i := range cfg.Layouts {
		layout := &cfg.Layouts[i]
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, layout.Mode, layout.Name)
		if layout.Description != "" {
			fmt.Fprintf(w, "     %s\n", layout.Description)
		}

		files, err := reader.ExpandGlobs(layout.SourcePatterns(cfg))
		switch {
		case err != nil:
			fmt.Fprintf(w, "     Warning: Error expanding source patterns: %v\n", err)
		case len(files) == 0:
			fmt.Fprintf(w, "     Warning: No files match source patterns\n")
		default:
			fmt.Fprintf(w, "     Files matched: %d\n", len(files))
			for _, f := range files {
				if _, err := os.Stat(f); err != nil {
					fmt.Fprintf(w, "       - %s (warning: not found)\n", f)
					continue
				}
				fmt.Fprintf(w, "       - %s\n", f)
			}
		}
	}

	return nil
}
