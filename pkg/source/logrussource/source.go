// Package logrussource captures logrus entries into a capture buffer.
//
// Fields named "logger" and "marker" set the entry's logger name and marker,
// the error stored under logrus.ErrorKey becomes the entry's error, and all
// other fields are stored as properties.
package logrussource

import (
	"errors"
	"fmt"
	"maps"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// Field names with special meaning.
const (
	LoggerField = "logger"
	MarkerField = "marker"
)

// ErrStarted is returned when Start is called on a running source.
var ErrStarted = errors.New("logrus source already started")

// Source attaches a capturing hook to a logrus logger for the duration of a
// capture window.
type Source struct {
	logger *logrus.Logger

	mu        sync.Mutex
	running   bool
	prevHooks logrus.LevelHooks
	prevLevel logrus.Level
}

// New creates a source for logger, or for the standard logger if nil.
func New(logger *logrus.Logger) *Source {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Source{logger: logger}
}

// Name implements capture.Source.
func (s *Source) Name() string {
	return "logrus"
}

// Start adds the hook and lowers the logger's level to Trace.
func (s *Source) Start(rec capture.Recorder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrStarted
	}

	hooks := make(logrus.LevelHooks, len(s.logger.Hooks))
	for lvl, hs := range s.logger.Hooks {
		hooks[lvl] = append([]logrus.Hook(nil), hs...)
	}
	hooks.Add(&hook{rec: rec})

	s.prevHooks = s.logger.ReplaceHooks(hooks)
	s.prevLevel = s.logger.GetLevel()
	s.logger.SetLevel(logrus.TraceLevel)
	s.running = true
	return nil
}

// Stop restores the previous hooks and level.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.logger.ReplaceHooks(s.prevHooks)
	s.logger.SetLevel(s.prevLevel)
	s.prevHooks = nil
	s.running = false
	return nil
}

type hook struct {
	rec capture.Recorder
}

func (h *hook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *hook) Fire(entry *logrus.Entry) error {
	h.rec.Record(Convert(entry))
	return nil
}

// Convert maps a logrus entry onto a captured entry.
func Convert(entry *logrus.Entry) logentry.Entry {
	e := logentry.Entry{
		Level:   MapLevel(entry.Level),
		Message: entry.Message,
	}
	props := make(map[string]string)
	if entry.Context != nil {
		maps.Copy(props, capture.PropertiesFromContext(entry.Context))
	}
	for k, v := range entry.Data {
		switch k {
		case LoggerField:
			e.Logger = fmt.Sprint(v)
			continue
		case MarkerField:
			e.Marker = fmt.Sprint(v)
			continue
		case logrus.ErrorKey:
			if err, ok := v.(error); ok {
				e.Err = err
				continue
			}
		}
		props[k] = fmt.Sprint(v)
	}
	if len(props) > 0 {
		e.Properties = props
	}
	return e
}

// MapLevel maps logrus levels onto the canonical levels. Panic and fatal have
// no canonical equivalent.
func MapLevel(l logrus.Level) logentry.Level {
	switch l {
	case logrus.TraceLevel:
		return logentry.LevelTrace
	case logrus.DebugLevel:
		return logentry.LevelDebug
	case logrus.InfoLevel:
		return logentry.LevelInfo
	case logrus.WarnLevel:
		return logentry.LevelWarn
	case logrus.ErrorLevel:
		return logentry.LevelError
	default:
		return logentry.LevelUnknown
	}
}

var _ capture.Source = (*Source)(nil)
