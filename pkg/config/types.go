package config

import (
	"github.com/getmockd/logcapture/internal/matching"
	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/expect"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// CurrentVersion is the only supported suite version.
const CurrentVersion = "1"

// Error expectations.
const (
	ErrorNone = "none"
	ErrorAny  = "any"
)

// LevelAny matches entries of every level.
const LevelAny = "ANY"

// Suite is the root structure of an expectation suite file.
type Suite struct {
	// Version is the suite format version (required, currently "1")
	Version string `json:"version" yaml:"version"`

	// Strategy is the matching strategy name (default "contains")
	Strategy string `json:"strategy,omitempty" yaml:"strategy,omitempty"`

	// Filter narrows the entries the strategy sees
	Filter *FilterConfig `json:"filter,omitempty" yaml:"filter,omitempty"`

	// Expect lists the expected entries
	Expect []ExpectationConfig `json:"expect,omitempty" yaml:"expect,omitempty"`
}

// FilterConfig selects entries by logger and level.
type FilterConfig struct {
	Logger     string `json:"logger,omitempty" yaml:"logger,omitempty"`
	LoggerGlob string `json:"loggerGlob,omitempty" yaml:"loggerGlob,omitempty"`
	Level      string `json:"level,omitempty" yaml:"level,omitempty"`
}

// ExpectationConfig describes one expected entry. All set fields must match.
type ExpectationConfig struct {
	// Level is a level name or "ANY" (default "ANY")
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Message is shorthand for a single equalTo message matcher
	Message *string `json:"message,omitempty" yaml:"message,omitempty"`

	Messages   []MessageConfig  `json:"messages,omitempty" yaml:"messages,omitempty"`
	Properties []PropertyConfig `json:"properties,omitempty" yaml:"properties,omitempty"`

	// Error is "none" or "any"
	Error string `json:"error,omitempty" yaml:"error,omitempty"`

	// ErrorMessage matches the text of the entry's error
	ErrorMessage *MessageConfig `json:"errorMessage,omitempty" yaml:"errorMessage,omitempty"`
}

// MessageConfig is a single message matcher. Exactly one field is set.
type MessageConfig struct {
	EqualTo         *string         `json:"equalTo,omitempty" yaml:"equalTo,omitempty"`
	Matches         string          `json:"matches,omitempty" yaml:"matches,omitempty"`
	Contains        []string        `json:"contains,omitempty" yaml:"contains,omitempty"`
	ContainsInOrder []string        `json:"containsInOrder,omitempty" yaml:"containsInOrder,omitempty"`
	StartsWith      string          `json:"startsWith,omitempty" yaml:"startsWith,omitempty"`
	EndsWith        string          `json:"endsWith,omitempty" yaml:"endsWith,omitempty"`
	NotContains     []string        `json:"notContains,omitempty" yaml:"notContains,omitempty"`
	Expr            string          `json:"expr,omitempty" yaml:"expr,omitempty"`
	JSONPath        *JSONPathConfig `json:"jsonPath,omitempty" yaml:"jsonPath,omitempty"`
}

// JSONPathConfig matches a value inside a JSON message.
type JSONPathConfig struct {
	Path  string `json:"path" yaml:"path"`
	Value any    `json:"value" yaml:"value"`
}

// PropertyConfig is either a key/value requirement or a lacksKey requirement.
type PropertyConfig struct {
	Key      string  `json:"key,omitempty" yaml:"key,omitempty"`
	Value    *string `json:"value,omitempty" yaml:"value,omitempty"`
	LacksKey string  `json:"lacksKey,omitempty" yaml:"lacksKey,omitempty"`
}

// MatchStrategy returns the parsed strategy, defaulting to contains.
func (s *Suite) MatchStrategy() (matching.Strategy, error) {
	if s.Strategy == "" {
		return matching.StrategyContains, nil
	}
	return matching.ParseStrategy(s.Strategy)
}

// CaptureFilter converts the suite filter. It returns nil when no filter is
// set.
func (s *Suite) CaptureFilter() *capture.Filter {
	if s.Filter == nil {
		return nil
	}
	f := &capture.Filter{
		Logger:     s.Filter.Logger,
		LoggerGlob: s.Filter.LoggerGlob,
	}
	if s.Filter.Level != "" {
		f.Level = capture.Level(logentry.ParseLevel(s.Filter.Level))
	}
	return f
}

// Expectations builds the expected entries. It fails if the suite does not
// pass Validate.
func (s *Suite) Expectations() ([]expect.Entry, error) {
	if result := Validate(s); !result.IsValid() {
		return nil, result
	}
	out := make([]expect.Entry, 0, len(s.Expect))
	for _, ec := range s.Expect {
		out = append(out, ec.build())
	}
	return out, nil
}

func (ec ExpectationConfig) build() expect.Entry {
	level := expect.AnyLevel()
	if ec.Level != "" && !isAnyLevel(ec.Level) {
		level = expect.LevelEqualTo(logentry.ParseLevel(ec.Level))
	}
	e := expect.Entry{Level: level}

	if ec.Message != nil {
		e.Messages = append(e.Messages, expect.EqualTo(*ec.Message))
	}
	for _, mc := range ec.Messages {
		e.Messages = append(e.Messages, mc.build())
	}
	for _, pc := range ec.Properties {
		if pc.LacksKey != "" {
			e.Properties = append(e.Properties, expect.LacksKey(pc.LacksKey))
			continue
		}
		e.Properties = append(e.Properties, expect.HasProperty(pc.Key, *pc.Value))
	}
	switch ec.Error {
	case ErrorNone:
		e.Errors = append(e.Errors, expect.NoError())
	case ErrorAny:
		e.Errors = append(e.Errors, expect.ErrorMessage(expect.AnyMessage()))
	}
	if ec.ErrorMessage != nil {
		e.Errors = append(e.Errors, expect.ErrorMessage(ec.ErrorMessage.build()))
	}
	return e
}

func (mc MessageConfig) build() expect.MessageMatcher {
	switch {
	case mc.EqualTo != nil:
		return expect.EqualTo(*mc.EqualTo)
	case mc.Matches != "":
		return expect.Matches(mc.Matches)
	case len(mc.Contains) > 0:
		return expect.Contains(mc.Contains...)
	case len(mc.ContainsInOrder) > 0:
		return expect.ContainsInOrder(mc.ContainsInOrder...)
	case mc.StartsWith != "":
		return expect.StartsWith(mc.StartsWith)
	case mc.EndsWith != "":
		return expect.EndsWith(mc.EndsWith)
	case len(mc.NotContains) > 0:
		return expect.NotContains(mc.NotContains...)
	case mc.Expr != "":
		return expect.Satisfies(mc.Expr)
	case mc.JSONPath != nil:
		return expect.JSONPath(mc.JSONPath.Path, mc.JSONPath.Value)
	default:
		return expect.AnyMessage()
	}
}

// setCount reports how many matcher fields are set.
func (mc MessageConfig) setCount() int {
	n := 0
	for _, set := range []bool{
		mc.EqualTo != nil,
		mc.Matches != "",
		len(mc.Contains) > 0,
		len(mc.ContainsInOrder) > 0,
		mc.StartsWith != "",
		mc.EndsWith != "",
		len(mc.NotContains) > 0,
		mc.Expr != "",
		mc.JSONPath != nil,
	} {
		if set {
			n++
		}
	}
	return n
}
