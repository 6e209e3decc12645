package slogsource

import (
	"errors"
	"io"
	"log"
	"log/slog"
	"sync"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logging"
)

// ErrStarted is returned when Start is called on a running source.
var ErrStarted = errors.New("slog source already started")

// Source installs a capturing handler as the slog default logger for the
// duration of a capture window.
type Source struct {
	level       slog.Leveler
	passthrough bool

	mu        sync.Mutex
	running   bool
	prev      *slog.Logger
	prevOut   io.Writer
	prevFlags int
}

// Option configures a Source.
type Option func(*Source)

// WithLevel sets the minimum captured level. The default captures everything.
func WithLevel(level slog.Leveler) Option {
	return func(s *Source) {
		s.level = level
	}
}

// WithPassthrough keeps writing records to the previous default handler
// while capturing.
func WithPassthrough() Option {
	return func(s *Source) {
		s.passthrough = true
	}
}

// New creates a slog source.
func New(opts ...Option) *Source {
	s := &Source{level: LevelTrace}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements capture.Source.
func (s *Source) Name() string {
	return "slog"
}

// Start remembers the current default logger and replaces it with one that
// records into rec. Output of the standard log package is captured too,
// except in passthrough mode where it keeps its previous destination.
func (s *Source) Start(rec capture.Recorder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return ErrStarted
	}

	s.prev = slog.Default()
	s.prevOut = log.Writer()
	s.prevFlags = log.Flags()

	var h slog.Handler = NewHandler(rec, s.level)
	if s.passthrough {
		h = logging.NewMultiHandler(h, s.prev.Handler())
	}
	slog.SetDefault(slog.New(h))
	if s.passthrough {
		// The previous handler may write through the log package itself.
		log.SetOutput(s.prevOut)
		log.SetFlags(s.prevFlags)
	}
	s.running = true
	return nil
}

// Stop restores the default logger and the standard log package output.
func (s *Source) Stop() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	slog.SetDefault(s.prev)
	// SetDefault leaves the log package redirected when prev is the
	// built-in default logger.
	log.SetOutput(s.prevOut)
	log.SetFlags(s.prevFlags)

	s.prev = nil
	s.prevOut = nil
	s.running = false
	return nil
}

var _ capture.Source = (*Source)(nil)
