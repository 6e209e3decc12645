package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/logcapture/pkg/config"
)

// validateResult is the --json output of validate.
type validateResult struct {
	Valid        bool   `json:"valid"`
	Suite        string `json:"suite"`
	Strategy     string `json:"strategy,omitempty"`
	Expectations int    `json:"expectations"`
	Error        string `json:"error,omitempty"`
}

func newValidateCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [suite]",
		Short: "Check an expectation suite without reading logs",
		Long: `Validate an expectation suite file. This command checks:
  - YAML/JSON syntax
  - Schema validation (known fields, value types)
  - Strategy and level names
  - Regular expressions, expr expressions and JSONPath paths

Without an argument the suite is discovered as for verify.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			} else {
				discovered, err := config.DiscoverSuite(".")
				if err != nil {
					return err
				}
				path = discovered
			}

			result := validateResult{Suite: path}
			suite, loadErr := config.LoadFile(path)
			if loadErr == nil {
				strategy, _ := suite.MatchStrategy()
				result.Valid = true
				result.Strategy = string(strategy)
				result.Expectations = len(suite.Expect)
			} else {
				result.Error = loadErr.Error()
			}
			opts.log.Debug("validated suite", "path", path, "valid", result.Valid)

			out := cmd.OutOrStdout()
			if err := opts.printResult(out, result, func() {
				if result.Valid {
					fmt.Fprintf(out, "%s: valid (%s, %d expectations)\n", path, result.Strategy, result.Expectations)
				}
			}); err != nil {
				return err
			}
			return loadErr
		},
	}
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema for suite files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write(config.SuiteSchema())
			return err
		},
	}
}
