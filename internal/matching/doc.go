// Package matching implements the strategies that compare captured log
// entries against an ordered list of expectations.
//
// Every strategy is a pure function over a snapshot of entries:
//
//   - IsEmpty: passes only when nothing was captured
//   - Contains: each expectation consumes the first unconsumed entry it matches
//   - ContainsOnly: Contains, after checking that both sequences have the same length
//   - ContainsExactly: entries and expectations are paired by index
//   - ContainsInOrder: expectations match a strictly increasing subsequence of entries
//
// Strategies return a Report holding one Result per expectation. A Report
// renders itself into a multi-line diagnostic message: a check or cross per
// expectation, the best-available actual entry on a mismatch, and the full
// list of captured entries.
//
// Key types:
//
//   - Report: the outcome of one strategy run
//   - Result: the outcome for a single expectation
//   - AssertionError: the generic failure carrying the rendered message
package matching
