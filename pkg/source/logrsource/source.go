// Package logrsource captures logr output into a capture buffer.
//
// Names added with WithName are joined with "/" to form the logger name.
// Verbosity maps to levels: V(0) is INFO, V(1) is DEBUG and V(2) or more is
// TRACE. Error calls are ERROR with the given error attached.
package logrsource

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-logr/logr"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// MarkerKey is the key whose value becomes the entry's marker.
const MarkerKey = "marker"

// ErrStarted is returned when Start is called on a running source.
var ErrStarted = errors.New("logr source already started")

// Source hands out logr loggers that record while a capture window is open
// and are disabled otherwise.
type Source struct {
	mu  sync.RWMutex
	rec capture.Recorder
}

// New creates a logr source.
func New() *Source {
	return &Source{}
}

// Logger returns a logger backed by the source.
func (s *Source) Logger() logr.Logger {
	return logr.New(&sink{src: s})
}

// Name implements capture.Source.
func (s *Source) Name() string {
	return "logr"
}

// Start enables every verbosity level and records into rec.
func (s *Source) Start(rec capture.Recorder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rec != nil {
		return ErrStarted
	}
	s.rec = rec
	return nil
}

// Stop disables the source's loggers.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rec = nil
	return nil
}

func (s *Source) recorder() capture.Recorder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rec
}

type sink struct {
	src    *Source
	name   string
	values []any
}

func (k *sink) Init(logr.RuntimeInfo) {}

func (k *sink) Enabled(int) bool {
	return k.src.recorder() != nil
}

func (k *sink) Info(level int, msg string, keysAndValues ...any) {
	k.record(MapVerbosity(level), msg, nil, keysAndValues)
}

func (k *sink) Error(err error, msg string, keysAndValues ...any) {
	k.record(logentry.LevelError, msg, err, keysAndValues)
}

func (k *sink) WithValues(keysAndValues ...any) logr.LogSink {
	c := *k
	c.values = append(append([]any(nil), k.values...), keysAndValues...)
	return &c
}

func (k *sink) WithName(name string) logr.LogSink {
	c := *k
	if k.name == "" {
		c.name = name
	} else {
		c.name = k.name + "/" + name
	}
	return &c
}

func (k *sink) record(level logentry.Level, msg string, err error, keysAndValues []any) {
	rec := k.src.recorder()
	if rec == nil {
		return
	}

	e := logentry.Entry{
		Logger:  k.name,
		Level:   level,
		Message: msg,
		Err:     err,
	}
	props := make(map[string]string)
	k.apply(&e, props, k.values)
	k.apply(&e, props, keysAndValues)
	if len(props) > 0 {
		e.Properties = props
	}
	rec.Record(e)
}

func (k *sink) apply(e *logentry.Entry, props map[string]string, kvs []any) {
	for i := 0; i < len(kvs); i += 2 {
		key := fmt.Sprint(kvs[i])
		if i+1 >= len(kvs) {
			props[key] = "(MISSING)"
			break
		}
		val := kvs[i+1]
		if err, ok := val.(error); ok && e.Err == nil {
			e.Err = err
			continue
		}
		if key == MarkerKey {
			e.Marker = fmt.Sprint(val)
			continue
		}
		props[key] = fmt.Sprint(val)
	}
}

// MapVerbosity maps a logr verbosity onto the canonical levels.
func MapVerbosity(v int) logentry.Level {
	switch {
	case v <= 0:
		return logentry.LevelInfo
	case v == 1:
		return logentry.LevelDebug
	default:
		return logentry.LevelTrace
	}
}

var (
	_ capture.Source = (*Source)(nil)
	_ logr.LogSink   = (*sink)(nil)
)
