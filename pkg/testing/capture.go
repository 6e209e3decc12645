package testing

import (
	"testing"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// LogCapture is a test helper wrapping a capture window.
type LogCapture struct {
	t      testing.TB
	window *capture.Window
}

// Capture opens a capture window over sources. The window is closed when the
// test and all its subtests complete.
func Capture(t testing.TB, sources ...capture.Source) *LogCapture {
	t.Helper()

	w := capture.NewWindow(sources)
	if err := w.Open(); err != nil {
		t.Fatalf("failed to open capture window: %v", err)
	}
	c := &LogCapture{t: t, window: w}
	t.Cleanup(c.Stop)
	return c
}

// Stop closes the capture window early. Entries captured so far remain
// available for assertions. Stop is safe to call more than once.
func (c *LogCapture) Stop() {
	c.t.Helper()

	if err := c.window.Close(); err != nil {
		c.t.Errorf("failed to close capture window: %v", err)
	}
}

// Buffer returns the underlying capture buffer.
func (c *LogCapture) Buffer() *capture.Buffer {
	return c.window.Buffer()
}

// Entries returns captured entries matching filter, in capture order.
func (c *LogCapture) Entries(filter *capture.Filter) []logentry.Entry {
	return c.Buffer().Entries(filter)
}

// Messages returns the messages of captured entries matching filter.
func (c *LogCapture) Messages(filter *capture.Filter) []string {
	return c.Buffer().Messages(filter)
}

// Markers returns the marker of every captured entry matching filter, in
// order. Entries without a marker contribute an empty string.
func (c *LogCapture) Markers(filter *capture.Filter) []string {
	return c.Buffer().Markers(filter)
}
