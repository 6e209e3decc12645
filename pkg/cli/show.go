package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/cli/internal/flags"
	"github.com/getmockd/logcapture/pkg/cli/internal/output"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// shownEntry is the --json form of a decoded entry.
type shownEntry struct {
	Level      logentry.Level    `json:"level"`
	Logger     string            `json:"logger,omitempty"`
	Message    string            `json:"message"`
	Marker     string            `json:"marker,omitempty"`
	Properties map[string]string `json:"properties,omitempty"`
	Error      string            `json:"error,omitempty"`
}

func newShowCommand(opts *rootOptions) *cobra.Command {
	var (
		logs   flags.StringSlice
		filter capture.Filter
		level  flags.Level
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print decoded log entries",
		Long: `Decode JSON-lines log files and print the entries the way verify sees
them. Use the filter flags to narrow the output.`,
		Example: `  logcheck show --logs app.jsonl --level error
  logcheck show --logs app.jsonl --logger-glob 'orders.*' --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter.Level = level.Value

			files, err := resolveLogFiles(logs)
			if err != nil {
				return err
			}
			entries, err := readEntries(files, cmd.InOrStdin(), &filter, opts.log)
			if err != nil {
				return err
			}

			shown := make([]shownEntry, len(entries))
			for i, e := range entries {
				shown[i] = shownEntry{
					Level:      e.Level,
					Logger:     e.Logger,
					Message:    e.Message,
					Marker:     e.Marker,
					Properties: e.Properties,
				}
				if e.Err != nil {
					shown[i].Error = e.Err.Error()
				}
			}

			out := cmd.OutOrStdout()
			return opts.printResult(out, shown, func() {
				if len(shown) == 0 {
					fmt.Fprintln(out, "No log entries.")
					return
				}
				tw := output.Table(out)
				fmt.Fprintln(tw, "LEVEL\tLOGGER\tMESSAGE\tMARKER\tPROPERTIES\tERROR")
				for _, e := range shown {
					props := "-"
					if len(e.Properties) > 0 {
						props = logentry.FormatProperties(e.Properties)
					}
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
						e.Level, dash(e.Logger), e.Message, dash(e.Marker), props, dash(e.Error))
				}
				_ = tw.Flush()
			})
		},
	}

	cmd.Flags().VarP(&logs, "logs", "l", "Log file or glob to read, \"-\" for stdin (repeatable)")
	cmd.Flags().StringVar(&filter.Logger, "logger", "", "Only entries from this logger")
	cmd.Flags().StringVar(&filter.LoggerGlob, "logger-glob", "", "Only entries whose logger matches this glob")
	cmd.Flags().Var(&level, "level", "Only entries at this level")
	_ = cmd.MarkFlagRequired("logs")
	return cmd
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
