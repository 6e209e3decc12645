package expect

import (
	"fmt"
	"slices"
	"strings"

	"github.com/getmockd/logcapture/pkg/logentry"
)

// Entry describes one expected log line: the conjunction of its matchers.
// A nil Level and empty matcher lists always match.
type Entry struct {
	Level      LevelMatcher
	Messages   []MessageMatcher
	Properties []PropertyMatcher
	Errors     []ExceptionMatcher
}

// Matches reports whether actual satisfies every matcher.
func (e Entry) Matches(actual logentry.Entry) bool {
	if e.Level != nil && !e.Level.Matches(actual.Level) {
		return false
	}
	for _, m := range e.Messages {
		if !m.Matches(actual.Message) {
			return false
		}
	}
	for _, m := range e.Properties {
		if !m.Matches(actual.Properties) {
			return false
		}
	}
	for _, m := range e.Errors {
		if !m.Matches(actual.Err) {
			return false
		}
	}
	return true
}

// Describe renders the expectation for diagnostics, e.g.
// `INFO | message equal to "a" | property user="bob"`.
func (e Entry) Describe() string {
	level := AnyLevel()
	if e.Level != nil {
		level = e.Level
	}

	parts := []string{level.Describe()}
	if len(e.Messages) == 0 {
		parts = append(parts, "any message")
	} else {
		msgs := make([]string, len(e.Messages))
		for i, m := range e.Messages {
			msgs[i] = m.Describe()
		}
		parts = append(parts, strings.Join(msgs, " and "))
	}
	for _, m := range e.Properties {
		parts = append(parts, m.Describe())
	}
	for _, m := range e.Errors {
		parts = append(parts, m.Describe())
	}
	return strings.Join(parts, " | ")
}

// String implements fmt.Stringer.
func (e Entry) String() string { return e.Describe() }

// WithMessages returns a copy of e with additional message matchers.
func (e Entry) WithMessages(ms ...MessageMatcher) Entry {
	e.Messages = append(slices.Clip(e.Messages), ms...)
	return e
}

// WithProperties returns a copy of e with additional property matchers.
func (e Entry) WithProperties(ms ...PropertyMatcher) Entry {
	e.Properties = append(slices.Clip(e.Properties), ms...)
	return e
}

// WithErrors returns a copy of e with additional error matchers.
func (e Entry) WithErrors(ms ...ExceptionMatcher) Entry {
	e.Errors = append(slices.Clip(e.Errors), ms...)
	return e
}

// Expect builds an expectation for the given level matcher. Each arg is one of:
//
//   - string: sugar for EqualTo
//   - MessageMatcher, PropertyMatcher or ExceptionMatcher
//   - []MessageMatcher, []PropertyMatcher or []ExceptionMatcher
//
// Any other argument type panics.
func Expect(level LevelMatcher, args ...any) Entry {
	e := Entry{Level: level}
	for _, arg := range args {
		switch v := arg.(type) {
		case string:
			e.Messages = append(e.Messages, EqualTo(v))
		case MessageMatcher:
			e.Messages = append(e.Messages, v)
		case []MessageMatcher:
			e.Messages = append(e.Messages, v...)
		case PropertyMatcher:
			e.Properties = append(e.Properties, v)
		case []PropertyMatcher:
			e.Properties = append(e.Properties, v...)
		case ExceptionMatcher:
			e.Errors = append(e.Errors, v)
		case []ExceptionMatcher:
			e.Errors = append(e.Errors, v...)
		default:
			panic(fmt.Sprintf("expect: unsupported argument of type %T", arg))
		}
	}
	return e
}

// Trace expects a TRACE entry.
func Trace(args ...any) Entry { return Expect(LevelEqualTo(logentry.LevelTrace), args...) }

// Debug expects a DEBUG entry.
func Debug(args ...any) Entry { return Expect(LevelEqualTo(logentry.LevelDebug), args...) }

// Info expects an INFO entry.
func Info(args ...any) Entry { return Expect(LevelEqualTo(logentry.LevelInfo), args...) }

// Warn expects a WARN entry.
func Warn(args ...any) Entry { return Expect(LevelEqualTo(logentry.LevelWarn), args...) }

// Error expects an ERROR entry.
func Error(args ...any) Entry { return Expect(LevelEqualTo(logentry.LevelError), args...) }

// Any expects an entry at any level.
func Any(args ...any) Entry { return Expect(AnyLevel(), args...) }
