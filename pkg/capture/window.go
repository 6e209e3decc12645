package capture

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/getmockd/logcapture/pkg/logging"
)

// Source is a log-source adapter. Start attaches it to its logging framework
// so that every event is recorded into rec, remembering whatever framework
// configuration it changes. Stop detaches it and restores that configuration.
// A window calls Start and Stop exactly once each.
type Source interface {
	Name() string
	Start(rec Recorder) error
	Stop() error
}

type windowState int

const (
	stateIdle windowState = iota
	stateOpen
	stateClosed
)

// Window is the scoped capture resource: the interval between Open and Close
// during which sources record into the buffer.
type Window struct {
	buf     *Buffer
	sources []Source
	log     *slog.Logger

	mu      sync.Mutex
	state   windowState
	started []Source
}

// WindowOption configures a Window.
type WindowOption func(*Window)

// WithLogger sets the logger used for window lifecycle messages.
func WithLogger(log *slog.Logger) WindowOption {
	return func(w *Window) {
		if log != nil {
			w.log = log
		}
	}
}

// WithBuffer makes the window record into an existing buffer.
func WithBuffer(buf *Buffer) WindowOption {
	return func(w *Window) {
		if buf != nil {
			w.buf = buf
		}
	}
}

// NewWindow creates a window over the given sources. It records into a new
// buffer unless WithBuffer is given.
func NewWindow(sources []Source, opts ...WindowOption) *Window {
	w := &Window{
		sources: append([]Source(nil), sources...),
		log:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.buf == nil {
		w.buf = NewBuffer()
	}
	return w
}

// Start creates a window over sources and opens it.
func Start(sources ...Source) (*Window, error) {
	w := NewWindow(sources)
	if err := w.Open(); err != nil {
		return nil, err
	}
	return w, nil
}

// Buffer returns the buffer the window records into.
func (w *Window) Buffer() *Buffer {
	return w.buf
}

// Open starts every source in order. If a source fails to start, the sources
// already started are stopped again and the error is returned.
func (w *Window) Open() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case stateOpen:
		return ErrWindowOpen
	case stateClosed:
		return ErrWindowClosed
	}

	for _, src := range w.sources {
		if err := src.Start(w.buf); err != nil {
			stopErr := w.stopStarted()
			w.state = stateClosed
			return errors.Join(fmt.Errorf("start source %s: %w", src.Name(), err), stopErr)
		}
		w.started = append(w.started, src)
	}

	w.buf.markStarted()
	w.state = stateOpen
	w.log.Debug("capture window opened", "buffer", w.buf.ID(), "sources", w.sourceNames())
	return nil
}

// Close stops every started source in reverse order and restores their
// configuration. Calling Close again is a no-op. All stop errors are joined.
func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.state {
	case stateIdle:
		return ErrWindowNotOpen
	case stateClosed:
		return nil
	}

	err := w.stopStarted()
	w.state = stateClosed
	w.log.Debug("capture window closed", "buffer", w.buf.ID(), "entries", w.buf.Len())
	return err
}

// IsOpen reports whether the window is between Open and Close.
func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state == stateOpen
}

// stopStarted stops started sources in reverse order. Caller holds w.mu.
func (w *Window) stopStarted() error {
	var errs []error
	for i := len(w.started) - 1; i >= 0; i-- {
		src := w.started[i]
		if err := src.Stop(); err != nil {
			w.log.Warn("failed to stop log source", "source", src.Name(), "error", err)
			errs = append(errs, fmt.Errorf("stop source %s: %w", src.Name(), err))
		}
	}
	w.started = nil
	return errors.Join(errs...)
}

func (w *Window) sourceNames() []string {
	names := make([]string, len(w.sources))
	for i, src := range w.sources {
		names[i] = src.Name()
	}
	return names
}
