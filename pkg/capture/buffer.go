package capture

import (
	"maps"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/getmockd/logcapture/internal/matching"
	"github.com/getmockd/logcapture/pkg/expect"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// Recorder receives entries from log sources.
type Recorder interface {
	Record(entry logentry.Entry)
}

// Buffer is an append-only, goroutine-safe, insertion-ordered list of entries.
type Buffer struct {
	id      string
	mu      sync.RWMutex
	entries []logentry.Entry
	started atomic.Bool
}

// NewBuffer creates an empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{id: uuid.NewString()}
}

// ID returns the buffer's unique identifier.
func (b *Buffer) ID() string {
	return b.id
}

// Record appends an entry. Safe for concurrent use. The entry's properties
// are copied, so later changes to the caller's map are not seen.
func (b *Buffer) Record(entry logentry.Entry) {
	entry.Properties = maps.Clone(entry.Properties)
	b.mu.Lock()
	b.entries = append(b.entries, entry)
	b.mu.Unlock()
}

// Snapshot returns an independent copy of the entries recorded so far.
// Property maps are copied too; editing a snapshot never changes the buffer.
func (b *Buffer) Snapshot() []logentry.Entry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make([]logentry.Entry, len(b.entries))
	for i, e := range b.entries {
		e.Properties = maps.Clone(e.Properties)
		out[i] = e
	}
	return out
}

// Len returns the number of recorded entries.
func (b *Buffer) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.entries)
}

// Entries returns the recorded entries in order, optionally filtered.
// A nil filter returns everything.
func (b *Buffer) Entries(filter *Filter) []logentry.Entry {
	snapshot := b.Snapshot()
	if filter.isEmpty() {
		return snapshot
	}
	out := make([]logentry.Entry, 0, len(snapshot))
	for _, e := range snapshot {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Messages returns the message of every (filtered) entry, in order.
func (b *Buffer) Messages(filter *Filter) []string {
	entries := b.Entries(filter)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Message
	}
	return out
}

// Markers returns the marker of every (filtered) entry, in order. Entries
// without a marker contribute an empty string, so the result lines up with
// Entries.
func (b *Buffer) Markers(filter *Filter) []string {
	entries := b.Entries(filter)
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Marker
	}
	return out
}

// IsEmpty fails unless no entries were captured.
func (b *Buffer) IsEmpty() error {
	return b.check(matching.StrategyIsEmpty, nil)
}

// Contains checks that every expectation matches a distinct entry.
func (b *Buffer) Contains(expectations ...expect.Entry) error {
	return b.check(matching.StrategyContains, expectations)
}

// ContainsOnly checks that the entries are exactly the expectations, in any order.
func (b *Buffer) ContainsOnly(expectations ...expect.Entry) error {
	return b.check(matching.StrategyContainsOnly, expectations)
}

// ContainsExactly checks that entry i matches expectation i for every i.
func (b *Buffer) ContainsExactly(expectations ...expect.Entry) error {
	return b.check(matching.StrategyContainsExactly, expectations)
}

// ContainsInOrder checks that the expectations match entries in increasing order.
func (b *Buffer) ContainsInOrder(expectations ...expect.Entry) error {
	return b.check(matching.StrategyContainsInOrder, expectations)
}

// Match runs a strategy against a snapshot and returns the full report.
// It returns ErrNoCapture when no capture window was ever opened on b.
// Once a window has opened, matching stays allowed after it closes, so
// assertions can run on what the window recorded.
func (b *Buffer) Match(strategy matching.Strategy, expectations []expect.Entry) (*matching.Report, error) {
	if b == nil || !b.started.Load() {
		return nil, ErrNoCapture
	}
	return matching.Run(strategy, b.Snapshot(), expectations)
}

func (b *Buffer) check(strategy matching.Strategy, expectations []expect.Entry) error {
	report, err := b.Match(strategy, expectations)
	if err != nil {
		return err
	}
	return report.Err()
}

// markStarted is called when a window opens on the buffer.
func (b *Buffer) markStarted() {
	b.started.Store(true)
}

// Ensure Buffer implements Recorder.
var _ Recorder = (*Buffer)(nil)
