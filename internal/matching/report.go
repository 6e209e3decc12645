package matching

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/getmockd/logcapture/pkg/expect"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// Markers used in rendered diagnostics.
const (
	MarkMatched  = "[✓]"
	MarkMismatch = "[✗]"
)

// maxMessageLen bounds each rendered entry so one huge log line does not
// drown the rest of the diagnostic.
const maxMessageLen = 500

// Report is the outcome of one strategy run.
type Report struct {
	Strategy Strategy
	Entries  []logentry.Entry
	Expected []expect.Entry
	Results  []Result

	// SizeMismatch is set when a strategy with a size precondition found a
	// different number of entries than expectations. No Results are produced.
	SizeMismatch bool
}

// Passed reports whether the run succeeded.
func (r *Report) Passed() bool {
	if r.Strategy == StrategyIsEmpty {
		return len(r.Entries) == 0
	}
	if r.SizeMismatch {
		return false
	}
	for _, res := range r.Results {
		if !res.Matched {
			return false
		}
	}
	return true
}

// MatchedCount returns how many expectations matched.
func (r *Report) MatchedCount() int {
	n := 0
	for _, res := range r.Results {
		if res.Matched {
			n++
		}
	}
	return n
}

// Summary returns a one-line description of the outcome.
func (r *Report) Summary() string {
	switch {
	case r.Strategy == StrategyIsEmpty && r.Passed():
		return "no log entries captured"
	case r.Strategy == StrategyIsEmpty:
		return fmt.Sprintf("expected no log entries, but found %d", len(r.Entries))
	case r.SizeMismatch:
		return fmt.Sprintf("expected %d log entries, but found %d", len(r.Expected), len(r.Entries))
	case r.Passed():
		return fmt.Sprintf("all %d expectations matched", len(r.Results))
	default:
		return fmt.Sprintf("%d of %d expectations matched", r.MatchedCount(), len(r.Results))
	}
}

// Message renders the full diagnostic. It is empty when the run passed.
func (r *Report) Message() string {
	if r.Passed() {
		return ""
	}

	var sb strings.Builder
	switch {
	case r.Strategy == StrategyIsEmpty:
		fmt.Fprintf(&sb, "Expected no log entries, but found %d:\n", len(r.Entries))
		writeEntries(&sb, r.Entries)
		return strings.TrimRight(sb.String(), "\n")

	case r.SizeMismatch:
		fmt.Fprintf(&sb, "Expected %d log entries, but found %d (%s).\n\n",
			len(r.Expected), len(r.Entries), r.Strategy)
		sb.WriteString("Expected:\n")
		if len(r.Expected) == 0 {
			sb.WriteString("  (none)\n")
		}
		for _, exp := range r.Expected {
			sb.WriteString("  ")
			sb.WriteString(truncate(exp.Describe(), maxMessageLen))
			sb.WriteString("\n")
		}

	default:
		fmt.Fprintf(&sb, "Log entries did not match (%s): %s.\n\n", r.Strategy, r.Summary())
		sb.WriteString("Expected:\n")
		for _, res := range r.Results {
			sb.WriteString("  ")
			sb.WriteString(formatResult(res))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\nActual:\n")
	writeEntries(&sb, r.Entries)
	return strings.TrimRight(sb.String(), "\n")
}

// Err returns nil when the run passed and an *AssertionError otherwise.
func (r *Report) Err() error {
	if r.Passed() {
		return nil
	}
	return &AssertionError{Message: r.Message()}
}

// AssertionError is returned when captured entries do not satisfy the
// expectations. Callers only need its message.
type AssertionError struct {
	Message string
}

func (e *AssertionError) Error() string {
	return e.Message
}

// formatResult renders a single expectation outcome.
func formatResult(res Result) string {
	switch {
	case res.Matched && res.Actual != nil:
		return MarkMatched + " " + truncate(res.Actual.String(), maxMessageLen)
	case res.Matched:
		return MarkMatched + " " + truncate(res.Expected.Describe(), maxMessageLen)
	case res.Actual != nil:
		return fmt.Sprintf("%s expected %s but was %s", MarkMismatch,
			truncate(res.Expected.Describe(), maxMessageLen),
			truncate(res.Actual.String(), maxMessageLen))
	default:
		return MarkMismatch + " did not find entry matching " + truncate(res.Expected.Describe(), maxMessageLen)
	}
}

func writeEntries(sb *strings.Builder, entries []logentry.Entry) {
	if len(entries) == 0 {
		sb.WriteString("  (none)\n")
		return
	}
	for _, e := range entries {
		sb.WriteString("  ")
		sb.WriteString(truncate(e.String(), maxMessageLen))
		sb.WriteString("\n")
	}
}

// truncate shortens a string to at most maxLen bytes, appending "..." if
// truncated. The cut never splits a multi-byte rune.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	n := maxLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
