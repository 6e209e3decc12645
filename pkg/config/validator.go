package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/getmockd/logcapture/internal/matching"
	"github.com/getmockd/logcapture/pkg/expect"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// ValidationError represents a single suite validation error.
type ValidationError struct {
	Path    string // Suite path, e.g., "expect[0].messages[1]"
	Message string
}

func (e ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Message)
	}
	return e.Message
}

// ValidationResult contains all validation errors for a suite.
type ValidationResult struct {
	Errors []ValidationError
}

// IsValid returns true if there are no validation errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// Error returns a combined error message.
func (r *ValidationResult) Error() string {
	if r.IsValid() {
		return ""
	}
	msgs := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "\n")
}

// AddError adds a validation error.
func (r *ValidationResult) AddError(path, message string) {
	r.Errors = append(r.Errors, ValidationError{Path: path, Message: message})
}

// Validate checks the parts of a suite the schema cannot: names, patterns,
// expressions and combinations.
func Validate(s *Suite) *ValidationResult {
	result := &ValidationResult{}

	if s.Version == "" {
		result.AddError("version", "required")
	} else if s.Version != CurrentVersion {
		result.AddError("version", fmt.Sprintf("unsupported version %q, expected %q", s.Version, CurrentVersion))
	}

	strategy, err := s.MatchStrategy()
	if err != nil {
		result.AddError("strategy", err.Error())
	}
	if err == nil && strategy == matching.StrategyIsEmpty && len(s.Expect) > 0 {
		result.AddError("expect", "must be empty for strategy isEmpty")
	}

	if s.Filter != nil {
		validateFilter(s.Filter, result)
	}

	for i, ec := range s.Expect {
		validateExpectation(&ec, fmt.Sprintf("expect[%d]", i), result)
	}
	return result
}

func validateFilter(f *FilterConfig, result *ValidationResult) {
	if f.LoggerGlob != "" && !doublestar.ValidatePattern(f.LoggerGlob) {
		result.AddError("filter.loggerGlob", fmt.Sprintf("invalid glob pattern %q", f.LoggerGlob))
	}
	if f.Level != "" && !validLevel(f.Level) {
		result.AddError("filter.level", fmt.Sprintf("unknown level %q", f.Level))
	}
}

func validateExpectation(ec *ExpectationConfig, path string, result *ValidationResult) {
	if ec.Level != "" && !isAnyLevel(ec.Level) && !validLevel(ec.Level) {
		result.AddError(path+".level", fmt.Sprintf("unknown level %q", ec.Level))
	}

	for i, mc := range ec.Messages {
		validateMessage(mc, fmt.Sprintf("%s.messages[%d]", path, i), result)
	}
	if ec.ErrorMessage != nil {
		validateMessage(*ec.ErrorMessage, path+".errorMessage", result)
	}

	for i, pc := range ec.Properties {
		ppath := fmt.Sprintf("%s.properties[%d]", path, i)
		switch {
		case pc.LacksKey != "" && (pc.Key != "" || pc.Value != nil):
			result.AddError(ppath, "lacksKey cannot be combined with key or value")
		case pc.LacksKey == "" && (pc.Key == "" || pc.Value == nil):
			result.AddError(ppath, "requires key and value, or lacksKey")
		}
	}

	switch ec.Error {
	case "", ErrorNone, ErrorAny:
	default:
		result.AddError(path+".error", fmt.Sprintf("must be %q or %q", ErrorNone, ErrorAny))
	}
	if ec.Error == ErrorNone && ec.ErrorMessage != nil {
		result.AddError(path+".errorMessage", `cannot be combined with error "none"`)
	}
}

func validateMessage(mc MessageConfig, path string, result *ValidationResult) {
	if n := mc.setCount(); n != 1 {
		result.AddError(path, fmt.Sprintf("exactly one matcher must be set, found %d", n))
		return
	}

	var err error
	switch {
	case mc.Matches != "":
		_, err = expect.CompileMatches(mc.Matches)
	case mc.Expr != "":
		_, err = expect.CompileSatisfies(mc.Expr)
	case mc.JSONPath != nil:
		_, err = expect.CompileJSONPath(mc.JSONPath.Path, mc.JSONPath.Value)
	}
	if err != nil {
		result.AddError(path, err.Error())
	}
}

func validLevel(s string) bool {
	return logentry.ParseLevel(s) != logentry.LevelUnknown || strings.EqualFold(s, logentry.LevelUnknown.String())
}

func isAnyLevel(s string) bool {
	return strings.EqualFold(s, LevelAny)
}
