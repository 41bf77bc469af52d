package commands

import (
	"errors"
	"github.com/fatih/color"
	"github.com/go-gum/textual"
	"github.com/go-gum/textual/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"runtime"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
)

// rootOptions is shared by all commands. The logger is available once the
// command line has been parsed.
type rootOptions struct {
	logFlags   *logging.Flags
	configPath string

	logger  *zap.Logger
	cleanup func() error
}

// parser creates a parser logging to the shared logger.
func (o *rootOptions) parser() *textual.Parser {
	return textual.NewParser(o.logger.Named("parser"))
}

// mainLogger logs into the log file only.
func (o *rootOptions) mainLogger() *zap.Logger {
	return o.logger.Named(logging.MainLogger)
}

// close releases the logger. It is safe to call more than once.
func (o *rootOptions) close() error {
	if o.cleanup == nil {
		return nil
	}

	cleanup := o.cleanup
	o.cleanup = nil
	return cleanup()
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd, _ := newRootCommand()
	return rootCmd
}

func newRootCommand() (*cobra.Command, *rootOptions) {
	opts := &rootOptions{logger: zap.NewNop()}

	rootCmd := &cobra.Command{
		Use:   "textual",
		Short: "Load typed values from delimited text and relaxed JSON",
		Long: `textual loads delimited text files and JSON documents with comments.

Rows of a delimited file are printed as JSON lines or YAML documents, with column
names optionally converted into a naming style.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logOpts := opts.logFlags.Options()
			logOpts.Console = cmd.ErrOrStderr()

			logger, cleanup, err := logging.New(logOpts)
			if err != nil {
				return err
			}

			opts.logger = logger
			opts.cleanup = cleanup
			return nil
		},

		// not called if the command fails, see run
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return opts.close()
		},
	}

	opts.logFlags = logging.AddFlags(rootCmd.PersistentFlags())
	rootCmd.MarkFlagsMutuallyExclusive(logging.VerbosityFlags...)

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "",
		"Path to a config file (yaml, json, toml or json5).")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newCSVCommand(opts))
	rootCmd.AddCommand(newJSON5Command(opts))
	rootCmd.AddCommand(NewCaseCommand())

	return rootCmd, opts
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			titleColor := color.New(color.FgCyan, color.Bold)
			valueColor := color.New(color.FgWhite)

			out := cmd.OutOrStdout()

			titleColor.Fprint(out, "textual version: ")
			valueColor.Fprintln(out, Version)

			titleColor.Fprint(out, "Git commit: ")
			valueColor.Fprintln(out, GitCommit)

			titleColor.Fprint(out, "Go version: ")
			valueColor.Fprintln(out, runtime.Version())
		},
	}
}

// Execute runs the root command
func Execute() error {
	return run(newRootCommand())
}

// run executes rootCmd and releases the logger, even if the command failed.
func run(rootCmd *cobra.Command, opts *rootOptions) error {
	err := rootCmd.Execute()
	err = errors.Join(err, opts.close())

	if err != nil {
		errorColor := color.New(color.FgRed, color.Bold)
		errorColor.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return err
	}

	return nil
}
