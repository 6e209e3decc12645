// Package zerologsource captures zerolog output into a capture buffer.
//
// A Source is an io.Writer: loggers built with Logger, or any zerolog.Logger
// writing to the source, are decoded line by line while a capture window is
// open. Output written outside a window is forwarded to the fallback writer,
// if any, and otherwise dropped.
package zerologsource

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logfile"
)

// ErrStarted is returned when Start is called on a running source.
var ErrStarted = errors.New("zerolog source already started")

// Source decodes zerolog JSON output into captured entries.
type Source struct {
	fallback io.Writer
	decoder  *logfile.Decoder

	mu        sync.RWMutex
	rec       capture.Recorder
	prevLevel zerolog.Level
}

// Option configures a Source.
type Option func(*Source)

// WithFallback forwards every write to w as well, whether or not a window is
// open.
func WithFallback(w io.Writer) Option {
	return func(s *Source) {
		s.fallback = w
	}
}

// New creates a zerolog source. The zerolog field-name globals are read once,
// here.
func New(opts ...Option) *Source {
	s := &Source{
		decoder: logfile.NewDecoder(
			logfile.WithOptionalMessage(),
			logfile.WithKeys(logfile.Keys{
				Level:   []string{zerolog.LevelFieldName},
				Message: []string{zerolog.MessageFieldName},
				Logger:  []string{"logger"},
				Marker:  []string{"marker"},
				Error:   []string{zerolog.ErrorFieldName},
				Ignore: []string{
					zerolog.TimestampFieldName,
					zerolog.CallerFieldName,
					zerolog.ErrorStackFieldName,
				},
			}),
		),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Logger returns a logger writing to the source.
func (s *Source) Logger() zerolog.Logger {
	return zerolog.New(s)
}

// Name implements capture.Source.
func (s *Source) Name() string {
	return "zerolog"
}

// Start begins recording into rec and lowers the global level to Trace.
func (s *Source) Start(rec capture.Recorder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec != nil {
		return ErrStarted
	}
	s.rec = rec
	s.prevLevel = zerolog.GlobalLevel()
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
	return nil
}

// Stop stops recording and restores the global level.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec == nil {
		return nil
	}
	s.rec = nil
	zerolog.SetGlobalLevel(s.prevLevel)
	return nil
}

// Write decodes one zerolog event.
func (s *Source) Write(p []byte) (int, error) {
	if s.fallback != nil {
		if _, err := s.fallback.Write(p); err != nil {
			return 0, fmt.Errorf("write fallback: %w", err)
		}
	}

	s.mu.RLock()
	rec := s.rec
	s.mu.RUnlock()
	if rec == nil {
		return len(p), nil
	}

	e, err := s.decoder.Decode(p)
	if err != nil {
		return 0, fmt.Errorf("decode zerolog event: %w", err)
	}
	rec.Record(e)
	return len(p), nil
}

var (
	_ capture.Source = (*Source)(nil)
	_ io.Writer      = (*Source)(nil)
)
