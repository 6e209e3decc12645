// Package flags provides reusable flag types for CLI commands.
package flags

import (
	"fmt"
	"strings"

	"github.com/getmockd/logcapture/pkg/logentry"
)

// StringSlice implements flag.Value for repeatable string flags.
type StringSlice []string

// String returns the string representation of the flag value.
func (s *StringSlice) String() string {
	return strings.Join(*s, ",")
}

// Set appends a value to the slice.
func (s *StringSlice) Set(value string) error {
	*s = append(*s, value)
	return nil
}

// Type specifies the type label for Cobra flags.
func (s *StringSlice) Type() string {
	return "stringSlice"
}

// Level implements flag.Value for a log entry level. The zero value is unset.
type Level struct {
	Value *logentry.Level
}

// String returns the level name, or "" when unset.
func (l *Level) String() string {
	if l.Value == nil {
		return ""
	}
	return l.Value.String()
}

// Set parses a level name.
func (l *Level) Set(value string) error {
	lvl := logentry.ParseLevel(value)
	if lvl == logentry.LevelUnknown && !strings.EqualFold(value, "unknown") {
		return fmt.Errorf("unknown level %q", value)
	}
	l.Value = &lvl
	return nil
}

// Type specifies the type label for Cobra flags.
func (l *Level) Type() string {
	return "level"
}
