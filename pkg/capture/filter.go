package capture

import (
	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/logcapture/pkg/logentry"
)

// Filter selects entries. Zero-valued fields are ignored; set fields combine
// with AND.
type Filter struct {
	// Logger selects entries from exactly this logger.
	Logger string

	// LoggerGlob selects entries whose logger name matches a doublestar glob,
	// using "/" as the separator ("app/**", "app/*/db").
	// An invalid pattern matches nothing.
	LoggerGlob string

	// Level selects entries at exactly this level.
	Level *logentry.Level
}

// Level returns a pointer to l, for use in Filter.Level.
func Level(l logentry.Level) *logentry.Level {
	return &l
}

// Matches reports whether e passes the filter. A nil filter matches everything.
func (f *Filter) Matches(e logentry.Entry) bool {
	if f == nil {
		return true
	}
	if f.Logger != "" && e.Logger != f.Logger {
		return false
	}
	if f.LoggerGlob != "" {
		ok, err := doublestar.Match(f.LoggerGlob, e.Logger)
		if err != nil || !ok {
			return false
		}
	}
	if f.Level != nil && e.Level != *f.Level {
		return false
	}
	return true
}

func (f *Filter) isEmpty() bool {
	return f == nil || (f.Logger == "" && f.LoggerGlob == "" && f.Level == nil)
}
