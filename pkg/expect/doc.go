// Package expect provides the matcher DSL used to describe expected log entries.
//
// An expectation is an Entry: a conjunction of one level matcher and any number
// of message, property and error matchers. Empty matcher lists always match.
//
//	expect.Info("user created")                        // level INFO, message equal to "user created"
//	expect.Warn(expect.StartsWith("retry"))            // level WARN, message prefix
//	expect.Any(expect.Contains("id=", "name="))        // any level, both substrings
//	expect.Error("save failed",
//	    expect.HasProperty("table", "users"),
//	    expect.ErrorAs[*os.PathError]())
//
// Matching is always exact and case-sensitive.
//
// Each matcher family is a closed set: the interfaces carry an unexported
// method, so variants can only be built through the constructors in this
// package.
package expect
