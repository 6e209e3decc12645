package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/getmockd/logcapture/pkg/cli/internal/output"
	"github.com/getmockd/logcapture/pkg/logging"
)

var (
	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// EnvPrefix prefixes the environment variables logcheck reads.
const EnvPrefix = "LOGCHECK"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	jsonOutput bool
	logLevel   string
	logFormat  string

	log *slog.Logger
}

// printResult writes data as JSON when --json is set, and calls textFn
// otherwise.
func (o *rootOptions) printResult(w io.Writer, data any, textFn func()) error {
	if o.jsonOutput {
		return output.JSON(w, data)
	}
	textFn()
	return nil
}

// NewRootCommand builds the logcheck command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{log: logging.Nop()}

	cmd := &cobra.Command{
		Use:   "logcheck",
		Short: "logcheck verifies structured log output against expectation suites",
		Long: `logcheck reads JSON-lines logs written by log/slog, zerolog or logrus and
checks them against a suite of expected entries using one of five matching
strategies: isEmpty, contains, containsOnly, containsExactly, containsInOrder.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			cfg := logging.FromEnv(EnvPrefix)
			if cmd.Flags().Changed("log-level") {
				cfg.Level = logging.ParseLevel(opts.logLevel)
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Format = logging.ParseFormat(opts.logFormat)
			}
			cfg.Output = cmd.ErrOrStderr()
			opts.log = logging.Named(logging.New(cfg), "logcheck")
		},
	}

	cmd.PersistentFlags().BoolVar(&opts.jsonOutput, "json", false, "Output command results in JSON format")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Diagnostic log level (trace, debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "text", "Diagnostic log format (text, json)")

	cmd.AddCommand(
		newVerifyCommand(opts),
		newShowCommand(opts),
		newValidateCommand(opts),
		newSchemaCommand(),
	)
	return cmd
}

// Execute runs the root command with the process arguments and exits with
// status 1 on error.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
