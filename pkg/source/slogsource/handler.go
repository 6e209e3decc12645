// Package slogsource captures log/slog records into a capture buffer.
//
// The handler recognizes three attribute keys at the top level: "logger" sets
// the entry's logger name, "marker" its marker, and the first error-valued
// attribute at any depth becomes the entry's error. Every other attribute is
// stored as a property, with group names joined by dots. Properties attached
// to the context with capture.WithProperties are copied onto every entry.
package slogsource

import (
	"context"
	"log/slog"
	"maps"

	"github.com/getmockd/logcapture/pkg/capture"
	"github.com/getmockd/logcapture/pkg/logentry"
)

// Attribute keys with special meaning.
const (
	LoggerKey = "logger"
	MarkerKey = "marker"
)

// LevelTrace is the slog level that maps to logentry.LevelTrace.
const LevelTrace = slog.LevelDebug - 4

type field struct {
	key   string
	value slog.Value
}

// Handler is a slog.Handler that records into a capture.Recorder.
type Handler struct {
	rec    capture.Recorder
	level  slog.Leveler
	fields []field
	prefix string
}

// NewHandler returns a handler recording every record at or above level into
// rec. A nil level records everything.
func NewHandler(rec capture.Recorder, level slog.Leveler) *Handler {
	if level == nil {
		level = LevelTrace
	}
	return &Handler{rec: rec, level: level}
}

// Enabled reports whether the level is captured.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle converts the record into an entry and records it.
func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	e := logentry.Entry{
		Level:   MapLevel(r.Level),
		Message: r.Message,
	}
	props := make(map[string]string)
	maps.Copy(props, capture.PropertiesFromContext(ctx))

	for _, f := range h.fields {
		h.apply(&e, props, f.key, f.value)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.addAttr(&e, props, h.prefix, a)
		return true
	})

	if len(props) > 0 {
		e.Properties = props
	}
	h.rec.Record(e)
	return nil
}

// WithAttrs returns a handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	h2 := h.clone()
	for _, a := range attrs {
		h2.collect(h.prefix, a)
	}
	return h2
}

// WithGroup returns a handler that qualifies later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := h.clone()
	h2.prefix = h.prefix + name + "."
	return h2
}

func (h *Handler) clone() *Handler {
	return &Handler{
		rec:    h.rec,
		level:  h.level,
		fields: append([]field(nil), h.fields...),
		prefix: h.prefix,
	}
}

// collect flattens a into h.fields.
func (h *Handler) collect(prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.collect(p, ga)
		}
		return
	}
	h.fields = append(h.fields, field{key: prefix + a.Key, value: a.Value})
}

func (h *Handler) addAttr(e *logentry.Entry, props map[string]string, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		p := prefix
		if a.Key != "" {
			p = prefix + a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			h.addAttr(e, props, p, ga)
		}
		return
	}
	h.apply(e, props, prefix+a.Key, a.Value)
}

func (h *Handler) apply(e *logentry.Entry, props map[string]string, key string, v slog.Value) {
	if v.Kind() == slog.KindAny {
		if err, ok := v.Any().(error); ok && e.Err == nil {
			e.Err = err
			return
		}
	}
	switch key {
	case LoggerKey:
		e.Logger = v.String()
	case MarkerKey:
		e.Marker = v.String()
	default:
		props[key] = v.String()
	}
}

// MapLevel maps a slog level onto the canonical levels. Levels between the
// named slog levels round down.
func MapLevel(l slog.Level) logentry.Level {
	switch {
	case l < slog.LevelDebug:
		return logentry.LevelTrace
	case l < slog.LevelInfo:
		return logentry.LevelDebug
	case l < slog.LevelWarn:
		return logentry.LevelInfo
	case l < slog.LevelError:
		return logentry.LevelWarn
	default:
		return logentry.LevelError
	}
}

var _ slog.Handler = (*Handler)(nil)
