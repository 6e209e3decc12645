package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/logcapture/internal/matching"
	"github.com/getmockd/logcapture/pkg/cli/internal/flags"
	"github.com/getmockd/logcapture/pkg/config"
)

// verifyResult is the --json output of verify.
type verifyResult struct {
	Passed   bool     `json:"passed"`
	Strategy string   `json:"strategy"`
	Summary  string   `json:"summary"`
	Suite    string   `json:"suite"`
	Files    []string `json:"files"`
	Entries  int      `json:"entries"`
	Expected int      `json:"expected"`
	Matched  int      `json:"matched"`
	Message  string   `json:"message,omitempty"`
}

func newVerifyCommand(opts *rootOptions) *cobra.Command {
	var (
		logs         flags.StringSlice
		suitePath    string
		strategyName string
	)

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check log files against an expectation suite",
		Long: `Decode the given JSON-lines log files and check the entries against an
expectation suite. Returns exit code 0 on pass and exit code 1 on failure,
printing which expectations matched and every entry that was considered.`,
		Example: `  logcheck verify --logs app.jsonl --suite checkout.yaml
  logcheck verify --logs 'logs/**/*.jsonl' --strategy containsInOrder
  ./app 2>&1 | logcheck verify --logs -`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if suitePath == "" {
				discovered, err := config.DiscoverSuite(".")
				if err != nil {
					return err
				}
				suitePath = discovered
			}

			suite, err := config.LoadFile(suitePath)
			if err != nil {
				return err
			}
			opts.log.Debug("loaded suite", "path", suitePath, "expectations", len(suite.Expect))

			strategy, err := suite.MatchStrategy()
			if err != nil {
				return err
			}
			if strategyName != "" {
				if strategy, err = matching.ParseStrategy(strategyName); err != nil {
					return err
				}
			}

			expectations, err := suite.Expectations()
			if err != nil {
				return err
			}

			files, err := resolveLogFiles(logs)
			if err != nil {
				return err
			}
			entries, err := readEntries(files, cmd.InOrStdin(), suite.CaptureFilter(), opts.log)
			if err != nil {
				return err
			}

			report, err := matching.Run(strategy, entries, expectations)
			if err != nil {
				return err
			}
			opts.log.Debug("verification finished", "strategy", strategy, "passed", report.Passed(),
				"entries", len(entries), "matched", report.MatchedCount())

			result := verifyResult{
				Passed:   report.Passed(),
				Strategy: string(strategy),
				Summary:  report.Summary(),
				Suite:    suitePath,
				Files:    files,
				Entries:  len(entries),
				Expected: len(expectations),
				Matched:  report.MatchedCount(),
				Message:  report.Message(),
			}

			out := cmd.OutOrStdout()
			if err := opts.printResult(out, result, func() {
				if result.Passed {
					fmt.Fprintf(out, "PASS: %s (%s, %d entries)\n", result.Summary, result.Strategy, result.Entries)
				} else {
					fmt.Fprintf(out, "FAIL: %s\n", result.Message)
				}
			}); err != nil {
				return err
			}

			if !result.Passed {
				return ErrVerificationFailed
			}
			return nil
		},
	}

	cmd.Flags().VarP(&logs, "logs", "l", "Log file or glob to read, \"-\" for stdin (repeatable)")
	cmd.Flags().StringVarP(&suitePath, "suite", "s", "", "Expectation suite file (default: discovered)")
	cmd.Flags().StringVar(&strategyName, "strategy", "", "Override the suite's matching strategy")
	_ = cmd.MarkFlagRequired("logs")
	return cmd
}
