package expect

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/getmockd/logcapture/pkg/logentry"
)

// ExceptionMatcher is a predicate over an entry's error.
type ExceptionMatcher interface {
	Matches(err error) bool
	Describe() string
	exceptionMatcher()
}

type errorIs struct{ target error }

// ErrorIs matches when the entry's error is the very same error value as
// target. Wrapped errors and structurally equal errors do not match.
func ErrorIs(target error) ExceptionMatcher { return errorIs{target: target} }

func (m errorIs) Matches(err error) bool { return err != nil && logentry.SameError(err, m.target) }
func (m errorIs) Describe() string       { return fmt.Sprintf("error identical to %q", errText(m.target)) }
func (errorIs) exceptionMatcher()        {}

type errorAs struct {
	typ reflect.Type
	as  func(error) bool
}

// ErrorAs matches when the entry's error, or any error it wraps, has type T.
func ErrorAs[T error]() ExceptionMatcher {
	return errorAs{
		typ: reflect.TypeFor[T](),
		as: func(err error) bool {
			var target T
			return errors.As(err, &target)
		},
	}
}

func (m errorAs) Matches(err error) bool { return err != nil && m.as(err) }
func (m errorAs) Describe() string       { return "error of type " + m.typ.String() }
func (errorAs) exceptionMatcher()        {}

type noError struct{}

// NoError matches entries without an error.
func NoError() ExceptionMatcher { return noError{} }

func (noError) Matches(err error) bool { return err == nil }
func (noError) Describe() string       { return "no error" }
func (noError) exceptionMatcher()      {}

type errorMessage struct{ message MessageMatcher }

// ErrorMessage matches when the entry has an error whose text satisfies m.
func ErrorMessage(m MessageMatcher) ExceptionMatcher { return errorMessage{message: m} }

func (m errorMessage) Matches(err error) bool { return err != nil && m.message.Matches(err.Error()) }
func (m errorMessage) Describe() string       { return "error with " + m.message.Describe() }
func (errorMessage) exceptionMatcher()        {}

func errText(err error) string {
	if err == nil {
		return "<nil>"
	}
	return err.Error()
}
