// Package cli provides the command-line interface for colsplit.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ccollicutt/colsplit/internal/cli/commands"
	"github.com/ccollicutt/colsplit/internal/cli/plugins"
)

// Execute runs the root command and returns the exit code.
func Execute() int {
	return execute(os.Args[1:])
}

// buildLogger constructs the logger for a --log-level value.
var buildLogger = newLogger

func execute(args []string) int {
	// Runs on every path; cobra skips post-run hooks when a command fails.
	defer commands.SyncLogger()

	rootCmd := NewRootCommand()
	rootCmd.SetArgs(args)

	// An unknown first word may be a plugin.
	if len(args) > 0 && isCommandWord(args[0]) && !isBuiltinCommand(rootCmd, args[0]) {
		if pluginPath, err := plugins.FindPlugin(args[0]); err == nil {
			return plugins.Execute(pluginPath, args[1:])
		}
	}

	if err := rootCmd.Execute(); err != nil {
		if len(args) > 0 && isCommandWord(args[0]) && !isBuiltinCommand(rootCmd, args[0]) {
			_, _ = fmt.Fprintln(os.Stderr, plugins.FormatNotFoundError(args[0]))
			return 2
		}
		// SilenceErrors is set, so cobra has not printed it.
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return commands.ExitCode
}

func isCommandWord(arg string) bool {
	return arg != "" && arg[0] != '-'
}

// isBuiltinCommand checks if a command name is a built-in cobra command.
func isBuiltinCommand(rootCmd *cobra.Command, name string) bool {
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name || cmd.HasAlias(name) {
			return true
		}
	}
	return name == "help" || name == "completion"
}

// newLogger builds the stderr logger used by commands.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true

	return cfg.Build()
}

// NewRootCommand creates the root cobra command.
func NewRootCommand() *cobra.Command {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "colsplit",
		Short: "Split whitespace-aligned text reports into columns",
		Long: `colsplit turns plain-text tabular reports into fields.

It can:
  - Infer column breaks from whitespace runs shared by every line
  - Split rows by inferred or configured breaks
  - Slice lines by fixed field widths
  - Resolve English number words such as "twenty-first"

Describe report families in a YAML config and split them in batch with
'colsplit run', or work on single files with 'split' and 'breaks'.

PLUGINS:
  colsplit supports plugins for extended functionality. Plugins are standalone
  binaries named colsplit-<command> that are automatically discovered and invoked.

  Plugin locations (searched in order):
    1. Same directory as the colsplit binary
    2. ~/.colsplit/plugins/
    3. Anywhere in PATH`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := buildLogger(logLevel)
			if err != nil {
				return err
			}
			commands.SetLogger(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level for diagnostics on stderr (debug|info|warn|error)")

	rootCmd.AddCommand(commands.NewBreaksCommand())
	rootCmd.AddCommand(commands.NewSplitCommand())
	rootCmd.AddCommand(commands.NewFixedCommand())
	rootCmd.AddCommand(commands.NewWordsCommand())
	rootCmd.AddCommand(commands.NewRunCommand())
	rootCmd.AddCommand(commands.NewDetectCommand())
	rootCmd.AddCommand(commands.NewDiagnoseCommand())
	rootCmd.AddCommand(commands.NewValidateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd
}
