package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/colsplit/pkg/fixedwidth"
)

// NewFixedCommand creates the fixed command.
func NewFixedCommand() *cobra.Command {
	var widths []int

	cmd := &cobra.Command{
		Use:   "fixed --widths <w1,w2,...> <line>...",
		Short: "Slice lines by fixed field widths",
		Long: `Slice each argument into consecutive fields of the given widths and print
the trimmed fields tab-separated, one line per argument.

Lines shorter than the total width are padded. A line longer than the total
width cannot be sliced; it is reported on stderr and the exit code is 1.

Example:
  colsplit fixed --widths 3,4 "ab cdef" "ab"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(widths) == 0 {
				return errors.New("--widths is required")
			}
			if _, err := fixedwidth.Total(widths); err != nil {
				return err
			}

			for _, line := range args {
				fields, err := fixedwidth.Slice(widths, line)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%q: %v\n", line, err)
					ExitCode = 1
					continue
				}
				fmt.Fprintln(cmd.OutOrStdout(), strings.Join(fields, "\t"))
			}
			return nil
		},
	}

	cmd.Flags().IntSliceVar(&widths, "widths", nil, "Field widths in characters (e.g. 3,4)")

	return cmd
}
