package logentry

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"
)

// Entry is one captured log event. It is treated as immutable once recorded:
// build it with New and never modify Properties afterwards.
type Entry struct {
	// Logger is the name of the logger that emitted the event.
	Logger string `json:"logger,omitempty"`

	// Level is the canonical severity.
	Level Level `json:"level"`

	// Message is the formatted message, after interpolation.
	Message string `json:"message"`

	// Marker is an optional tag attached to the event. Empty means no marker.
	Marker string `json:"marker,omitempty"`

	// Properties are the contextual key/value pairs at the time of the event.
	Properties map[string]string `json:"properties,omitempty"`

	// Err is the error associated with the event, if any.
	Err error `json:"-"`
}

// Option configures an Entry built by New.
type Option func(*Entry)

// WithLogger sets the logger name.
func WithLogger(name string) Option {
	return func(e *Entry) {
		e.Logger = name
	}
}

// WithMarker sets the marker.
func WithMarker(marker string) Option {
	return func(e *Entry) {
		e.Marker = marker
	}
}

// WithProperties merges the given properties into the entry.
func WithProperties(props map[string]string) Option {
	return func(e *Entry) {
		if len(props) == 0 {
			return
		}
		if e.Properties == nil {
			e.Properties = make(map[string]string, len(props))
		}
		maps.Copy(e.Properties, props)
	}
}

// WithProperty adds a single property.
func WithProperty(key, value string) Option {
	return WithProperties(map[string]string{key: value})
}

// WithError attaches an error.
func WithError(err error) Option {
	return func(e *Entry) {
		e.Err = err
	}
}

// New builds an Entry. Property maps passed through options are copied, so
// later changes by the caller are not visible in the entry.
func New(level Level, message string, opts ...Option) Entry {
	e := Entry{Level: level, Message: message}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}

// Equal reports whether two entries are value-equal. Properties compare as
// unordered maps with nil equal to empty; errors compare by identity.
func (e Entry) Equal(other Entry) bool {
	if e.Logger != other.Logger || e.Level != other.Level || e.Message != other.Message || e.Marker != other.Marker {
		return false
	}
	if !maps.Equal(e.Properties, other.Properties) {
		return false
	}
	return SameError(e.Err, other.Err)
}

// SameError reports whether a and b are the same error value.
// Errors whose dynamic type is not comparable are only the same when both are nil.
func SameError(a, b error) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}

// String renders the entry as "LEVEL | message" followed by any marker,
// properties and error.
func (e Entry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Level.String())
	sb.WriteString(" | ")
	sb.WriteString(e.Message)
	if e.Marker != "" {
		sb.WriteString(" | marker=")
		sb.WriteString(e.Marker)
	}
	if len(e.Properties) > 0 {
		sb.WriteString(" | ")
		sb.WriteString(FormatProperties(e.Properties))
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, " | error: %v", e.Err)
	}
	return sb.String()
}

// FormatProperties renders properties as "{k1=v1, k2=v2}" with sorted keys.
func FormatProperties(props map[string]string) string {
	keys := slices.Sorted(maps.Keys(props))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+props[k])
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
