package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ccollicutt/colsplit/pkg/numwords"
)

// NewWordsCommand creates the words command.
func NewWordsCommand() *cobra.Command {
	var sep string

	cmd := &cobra.Command{
		Use:   "words <phrase>...",
		Short: "Resolve English number words to integers",
		Long: `Resolve compound English number words such as "twenty-first" or "forty-two"
to their integer value, one result per argument.

Cardinals and ordinals from zero to nineteen and the tens from twenty to
ninety are recognized, case-insensitively. A phrase containing any other word
is reported on stderr and the exit code is 1.

Example:
  colsplit words three twenty-first Forty-Two
  colsplit words --sep " " "twenty one"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, phrase := range args {
				n, err := numwords.ResolveSep(phrase, sep)
				if err != nil {
					var unknown *numwords.UnknownWordError
					if !errors.As(err, &unknown) {
						return err
					}
					fmt.Fprintf(cmd.ErrOrStderr(), "%v\n", err)
					ExitCode = 1
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d\n", phrase, n)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sep, "sep", numwords.DefaultSeparator, "Separator between words")

	return cmd
}
