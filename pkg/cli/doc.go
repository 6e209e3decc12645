// Package cli provides the command-line interface for logcheck.
//
// logcheck checks JSON-lines log files, as written by log/slog, zerolog or
// logrus, against expectation suites:
//   - verify: Run a suite against one or more log files; exits 1 on failure
//   - show: Print decoded log entries, optionally filtered
//   - validate: Check a suite file without reading any logs
//   - schema: Print the JSON Schema for suite files
//
// Log files are given with --logs, which accepts doublestar globs
// ("logs/**/*.jsonl") and "-" for standard input. Without --suite, verify
// uses $LOGCHECK_SUITE or the first of logcheck.yaml, logcheck.yml and
// logcheck.json in the current directory.
//
// Diagnostics are written to stderr. LOGCHECK_LOG_LEVEL and
// LOGCHECK_LOG_FORMAT set their level and format; the --log-level and
// --log-format flags override them.
package cli
