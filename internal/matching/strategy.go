package matching

import (
	"fmt"
	"strings"

	"github.com/getmockd/logcapture/pkg/expect"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// Strategy names a matching algorithm.
type Strategy string

// Matching strategies.
const (
	StrategyIsEmpty         Strategy = "isEmpty"
	StrategyContains        Strategy = "contains"
	StrategyContainsOnly    Strategy = "containsOnly"
	StrategyContainsExactly Strategy = "containsExactly"
	StrategyContainsInOrder Strategy = "containsInOrder"
)

// Strategies lists every strategy.
var Strategies = []Strategy{
	StrategyIsEmpty,
	StrategyContains,
	StrategyContainsOnly,
	StrategyContainsExactly,
	StrategyContainsInOrder,
}

// ParseStrategy parses a strategy name, ignoring case, dashes and underscores
// ("contains-in-order" and "containsInOrder" are the same).
func ParseStrategy(s string) (Strategy, error) {
	norm := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	for _, st := range Strategies {
		if strings.ToLower(string(st)) == norm {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Result is the outcome of matching one expectation.
type Result struct {
	// Expected is the expectation that was evaluated.
	Expected expect.Entry

	// Actual is the entry the expectation was compared against: the matched
	// entry for search strategies, or the entry at the same index for
	// ContainsExactly. Nil when a search found nothing.
	Actual *logentry.Entry

	// Matched reports whether the expectation was satisfied.
	Matched bool
}

// Run dispatches to the named strategy.
func Run(strategy Strategy, entries []logentry.Entry, expectations []expect.Entry) (*Report, error) {
	switch strategy {
	case StrategyIsEmpty:
		return IsEmpty(entries), nil
	case StrategyContains:
		return Contains(entries, expectations), nil
	case StrategyContainsOnly:
		return ContainsOnly(entries, expectations), nil
	case StrategyContainsExactly:
		return ContainsExactly(entries, expectations), nil
	case StrategyContainsInOrder:
		return ContainsInOrder(entries, expectations), nil
	default:
		return nil, fmt.Errorf("unknown strategy %q", strategy)
	}
}

// IsEmpty passes iff no entries were captured.
func IsEmpty(entries []logentry.Entry) *Report {
	return &Report{Strategy: StrategyIsEmpty, Entries: entries}
}

// Contains matches each expectation, in order, against the first entry in a
// shrinking pool of unconsumed entries. A matched entry leaves the pool, so N
// identical expectations need N matching entries. A miss is recorded and the
// scan continues with the unchanged pool. Entries left in the pool are not an
// error.
func Contains(entries []logentry.Entry, expectations []expect.Entry) *Report {
	return &Report{
		Strategy: StrategyContains,
		Entries:  entries,
		Expected: expectations,
		Results:  consume(entries, expectations),
	}
}

// ContainsOnly is Contains with the precondition that there are exactly as
// many entries as expectations. A size mismatch fails before any entry is
// inspected.
func ContainsOnly(entries []logentry.Entry, expectations []expect.Entry) *Report {
	r := &Report{Strategy: StrategyContainsOnly, Entries: entries, Expected: expectations}
	if len(entries) != len(expectations) {
		r.SizeMismatch = true
		return r
	}
	r.Results = consume(entries, expectations)
	return r
}

// ContainsExactly pairs entries[i] with expectations[i]. Both sequences must
// have the same length; a mismatch fails before any entry is inspected.
func ContainsExactly(entries []logentry.Entry, expectations []expect.Entry) *Report {
	r := &Report{Strategy: StrategyContainsExactly, Entries: entries, Expected: expectations}
	if len(entries) != len(expectations) {
		r.SizeMismatch = true
		return r
	}
	r.Results = make([]Result, len(expectations))
	for i, exp := range expectations {
		actual := entries[i]
		r.Results[i] = Result{Expected: exp, Actual: &actual, Matched: exp.Matches(actual)}
	}
	return r
}

// ContainsInOrder matches expectations against a strictly increasing
// subsequence of entries. Each expectation searches after the last matched
// index; a miss leaves that floor unchanged so later expectations can still
// match. Unmatched entries anywhere are not an error.
func ContainsInOrder(entries []logentry.Entry, expectations []expect.Entry) *Report {
	results := make([]Result, 0, len(expectations))
	lastMatch := -1
	for _, exp := range expectations {
		res := Result{Expected: exp}
		for i := lastMatch + 1; i < len(entries); i++ {
			if exp.Matches(entries[i]) {
				actual := entries[i]
				res.Actual = &actual
				res.Matched = true
				lastMatch = i
				break
			}
		}
		results = append(results, res)
	}
	return &Report{
		Strategy: StrategyContainsInOrder,
		Entries:  entries,
		Expected: expectations,
		Results:  results,
	}
}

// consume runs the pool-consumption algorithm shared by Contains and
// ContainsOnly. The pool preserves the original entry order.
func consume(entries []logentry.Entry, expectations []expect.Entry) []Result {
	pool := make([]logentry.Entry, len(entries))
	copy(pool, entries)

	results := make([]Result, 0, len(expectations))
	for _, exp := range expectations {
		res := Result{Expected: exp}
		for i, candidate := range pool {
			if exp.Matches(candidate) {
				actual := candidate
				res.Actual = &actual
				res.Matched = true
				pool = append(pool[:i], pool[i+1:]...)
				break
			}
		}
		results = append(results, res)
	}
	return results
}
