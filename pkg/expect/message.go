package expect

import (
	"encoding/json"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/ohler55/ojg/jp"
)

// MessageMatcher is a predicate over an entry's message.
type MessageMatcher interface {
	Matches(message string) bool
	Describe() string
	messageMatcher()
}

type equalTo struct{ expected string }

// EqualTo matches a message equal to expected.
func EqualTo(expected string) MessageMatcher { return equalTo{expected: expected} }

func (m equalTo) Matches(message string) bool { return message == m.expected }
func (m equalTo) Describe() string            { return fmt.Sprintf("message equal to %q", m.expected) }
func (equalTo) messageMatcher()               {}

type regexMatch struct{ re *regexp.Regexp }

// Matches matches a message against a regular expression. The whole message
// must match. An invalid pattern panics.
func Matches(pattern string) MessageMatcher {
	m, err := CompileMatches(pattern)
	if err != nil {
		panic("expect: " + err.Error())
	}
	return m
}

// CompileMatches is Matches returning an error for an invalid pattern.
func CompileMatches(pattern string) (MessageMatcher, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)$`)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %q: %w", pattern, err)
	}
	return regexMatch{re: re}, nil
}

func (m regexMatch) Matches(message string) bool { return m.re.MatchString(message) }
func (m regexMatch) Describe() string {
	pattern := strings.TrimSuffix(strings.TrimPrefix(m.re.String(), `^(?:`), `)$`)
	return fmt.Sprintf("message matching %q", pattern)
}
func (regexMatch) messageMatcher() {}

type containsAll struct{ parts []string }

// Contains matches a message containing every substring, in any order.
func Contains(parts ...string) MessageMatcher {
	return containsAll{parts: append([]string(nil), parts...)}
}

func (m containsAll) Matches(message string) bool {
	for _, p := range m.parts {
		if !strings.Contains(message, p) {
			return false
		}
	}
	return true
}
func (m containsAll) Describe() string { return "message containing " + quoteAll(m.parts) }
func (containsAll) messageMatcher()    {}

type containsInOrder struct{ parts []string }

// ContainsInOrder matches a message containing every substring where each
// substring starts no earlier than the previous one. Overlapping occurrences
// are allowed, so ContainsInOrder("a", "a") matches "a".
func ContainsInOrder(parts ...string) MessageMatcher {
	return containsInOrder{parts: append([]string(nil), parts...)}
}

func (m containsInOrder) Matches(message string) bool {
	pos := 0
	for _, p := range m.parts {
		idx := strings.Index(message[pos:], p)
		if idx == -1 {
			return false
		}
		pos += idx
	}
	return true
}
func (m containsInOrder) Describe() string {
	return "message containing in order " + quoteAll(m.parts)
}
func (containsInOrder) messageMatcher() {}

type startsWith struct{ prefix string }

// StartsWith matches a message with the given prefix.
func StartsWith(prefix string) MessageMatcher { return startsWith{prefix: prefix} }

func (m startsWith) Matches(message string) bool { return strings.HasPrefix(message, m.prefix) }
func (m startsWith) Describe() string            { return fmt.Sprintf("message starting with %q", m.prefix) }
func (startsWith) messageMatcher()               {}

type endsWith struct{ suffix string }

// EndsWith matches a message with the given suffix.
func EndsWith(suffix string) MessageMatcher { return endsWith{suffix: suffix} }

func (m endsWith) Matches(message string) bool { return strings.HasSuffix(message, m.suffix) }
func (m endsWith) Describe() string            { return fmt.Sprintf("message ending with %q", m.suffix) }
func (endsWith) messageMatcher()               {}

type notContains struct{ parts []string }

// NotContains matches a message containing none of the substrings.
func NotContains(parts ...string) MessageMatcher {
	return notContains{parts: append([]string(nil), parts...)}
}

func (m notContains) Matches(message string) bool {
	for _, p := range m.parts {
		if strings.Contains(message, p) {
			return false
		}
	}
	return true
}
func (m notContains) Describe() string { return "message not containing " + quoteAll(m.parts) }
func (notContains) messageMatcher()    {}

type anyMessage struct{}

// AnyMessage matches every message.
func AnyMessage() MessageMatcher { return anyMessage{} }

func (anyMessage) Matches(string) bool { return true }
func (anyMessage) Describe() string    { return "any message" }
func (anyMessage) messageMatcher()     {}

type satisfies struct {
	expression string
	program    *vm.Program
}

// Satisfies matches a message for which the boolean expr-lang expression
// evaluates to true. The message is bound to the variable "message":
//
//	expect.Satisfies(`len(message) < 80 && message contains "id="`)
//
// An expression that does not compile panics.
func Satisfies(expression string) MessageMatcher {
	m, err := CompileSatisfies(expression)
	if err != nil {
		panic("expect: " + err.Error())
	}
	return m
}

// CompileSatisfies is Satisfies returning an error for an invalid expression.
func CompileSatisfies(expression string) (MessageMatcher, error) {
	program, err := expr.Compile(expression, expr.Env(map[string]any{"message": ""}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile expression %q: %w", expression, err)
	}
	return satisfies{expression: expression, program: program}, nil
}

func (m satisfies) Matches(message string) bool {
	out, err := expr.Run(m.program, map[string]any{"message": message})
	if err != nil {
		return false
	}
	ok, _ := out.(bool)
	return ok
}
func (m satisfies) Describe() string { return fmt.Sprintf("message satisfying %q", m.expression) }
func (satisfies) messageMatcher()    {}

type jsonPath struct {
	path     string
	expr     jp.Expr
	expected any
}

// JSONPath matches a JSON-encoded message where the path yields a value equal
// to expected. Numbers compare by value, so 42 matches 42.0. An invalid path
// panics.
func JSONPath(path string, expected any) MessageMatcher {
	m, err := CompileJSONPath(path, expected)
	if err != nil {
		panic("expect: " + err.Error())
	}
	return m
}

// CompileJSONPath is JSONPath returning an error for an invalid path.
func CompileJSONPath(path string, expected any) (MessageMatcher, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("parse JSONPath %q: %w", path, err)
	}
	return jsonPath{path: path, expr: x, expected: normalizeJSON(expected)}, nil
}

func (m jsonPath) Matches(message string) bool {
	var data any
	if err := json.Unmarshal([]byte(message), &data); err != nil {
		return false
	}
	for _, v := range m.expr.Get(data) {
		if reflect.DeepEqual(v, m.expected) {
			return true
		}
	}
	return false
}
func (m jsonPath) Describe() string {
	return fmt.Sprintf("message with %s equal to %v", m.path, m.expected)
}
func (jsonPath) messageMatcher() {}

// normalizeJSON converts v to the shape encoding/json produces when decoding,
// so that Go ints compare equal to decoded float64 values.
func normalizeJSON(v any) any {
	data, err := json.Marshal(v)
	if err != nil {
		return v
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return v
	}
	return out
}

func quoteAll(parts []string) string {
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = fmt.Sprintf("%q", p)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
