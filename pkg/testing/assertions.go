package testing

import (
	"testing"

	"github.com/getmockd/logcapture/internal/matching"
	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/expect"
)

// AssertEmpty asserts that nothing was captured.
func (c *LogCapture) AssertEmpty(t testing.TB) bool {
	t.Helper()
	return c.assert(t, matching.StrategyIsEmpty, nil)
}

// AssertContains asserts that every expectation matches a distinct captured
// entry. Other entries are ignored.
func (c *LogCapture) AssertContains(t testing.TB, expectations ...expect.Entry) bool {
	t.Helper()
	return c.assert(t, matching.StrategyContains, expectations)
}

// AssertContainsOnly asserts that the captured entries and the expectations
// pair up one to one, in any order.
func (c *LogCapture) AssertContainsOnly(t testing.TB, expectations ...expect.Entry) bool {
	t.Helper()
	return c.assert(t, matching.StrategyContainsOnly, expectations)
}

// AssertContainsExactly asserts that entry i matches expectation i for every
// i, with no extra entries.
func (c *LogCapture) AssertContainsExactly(t testing.TB, expectations ...expect.Entry) bool {
	t.Helper()
	return c.assert(t, matching.StrategyContainsExactly, expectations)
}

// AssertContainsInOrder asserts that the expectations match captured entries
// in order. Unmatched entries may appear between them.
func (c *LogCapture) AssertContainsInOrder(t testing.TB, expectations ...expect.Entry) bool {
	t.Helper()
	return c.assert(t, matching.StrategyContainsInOrder, expectations)
}

// AssertCount asserts how many captured entries match filter.
func (c *LogCapture) AssertCount(t testing.TB, filter *capture.Filter, want int) bool {
	t.Helper()

	if got := len(c.Entries(filter)); got != want {
		t.Errorf("expected %d log entries, got %d", want, got)
		return false
	}
	return true
}

func (c *LogCapture) assert(t testing.TB, strategy matching.Strategy, expectations []expect.Entry) bool {
	t.Helper()

	report, err := c.Buffer().Match(strategy, expectations)
	if err != nil {
		t.Fatalf("cannot match captured logs: %v", err)
		return false
	}
	if !report.Passed() {
		t.Errorf("%s", report.Message())
		return false
	}
	return true
}
