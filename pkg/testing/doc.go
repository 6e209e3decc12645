// Package testing provides a testing SDK for capturing and asserting on log
// output in Go tests.
//
// Capture opens a capture window over one or more log sources and closes it
// automatically when the test finishes, restoring every logging framework it
// touched.
//
// # Basic Usage
//
//	func TestCheckout(t *testing.T) {
//	    logs := logtesting.Capture(t, slogsource.New())
//
//	    checkout(ctx, cart)
//
//	    logs.AssertContains(t,
//	        expect.Info("order placed"),
//	        expect.Warn(expect.StartsWith("stock low"), expect.HasProperty("sku", "A-1")),
//	    )
//	}
//
// # Strategies
//
// Each assertion applies one matching strategy to every entry captured so far:
//
//	logs.AssertEmpty(t)                // nothing was logged
//	logs.AssertContains(t, exps...)    // each expectation matches a distinct entry
//	logs.AssertContainsOnly(t, ...)    // as Contains, and nothing else was logged
//	logs.AssertContainsExactly(t, ...) // entry i matches expectation i
//	logs.AssertContainsInOrder(t, ...) // expectations match in order, gaps allowed
//
// Failed assertions report through t.Errorf with a message listing every
// expectation, whether it matched, and all captured entries. Misuse, such as
// a source that fails to start, stops the test with t.Fatalf.
//
// # Reading Entries
//
// Entries, Messages and Markers return what was captured, optionally narrowed
// by a capture.Filter:
//
//	errs := logs.Messages(&capture.Filter{Level: capture.Level(logentry.LevelError)})
//
// # Multiple Frameworks
//
// Pass one source per framework the code under test logs through:
//
//	zl := zerologsource.New()
//	logs := logtesting.Capture(t, slogsource.New(), logrussource.New(nil), zl)
//	svc := NewService(zl.Logger())
package testing
