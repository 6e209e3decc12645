package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		// Lowercase
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"warning", LevelWarn},
		{"error", LevelError},

		// Uppercase
		{"DEBUG", LevelDebug},
		{"INFO", LevelInfo},
		{"WARN", LevelWarn},
		{"WARNING", LevelWarn},
		{"ERROR", LevelError},

		// Mixed case (the fix: these should all work now)
		{"Debug", LevelDebug},
		{"Info", LevelInfo},
		{"Warn", LevelWarn},
		{"Warning", LevelWarn},
		{"Error", LevelError},
		{"dEbUg", LevelDebug},

		{"trace", LevelTrace},
		{"TRACE", LevelTrace},

		// Empty string defaults to Info
		{"", LevelInfo},

		// Unrecognized defaults to Info
		{"verbose", LevelInfo},
		{"fatal", LevelInfo},
		{"unknown", LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"Json", FormatJSON},
		{"text", FormatText},
		{"TEXT", FormatText},
		{"", FormatText},
		{"yaml", FormatText}, // unrecognized defaults to text
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOGCHECK_LOG_LEVEL", "debug")
	t.Setenv("LOGCHECK_LOG_FORMAT", "json")

	cfg := FromEnv("LOGCHECK")
	if cfg.Level != LevelDebug {
		t.Errorf("Level = %v, want %v", cfg.Level, LevelDebug)
	}
	if cfg.Format != FormatJSON {
		t.Errorf("Format = %v, want %v", cfg.Format, FormatJSON)
	}
}

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LOGCHECK_LOG_LEVEL", "")
	t.Setenv("LOGCHECK_LOG_FORMAT", "")

	cfg := FromEnv("LOGCHECK")
	if cfg.Level != LevelInfo || cfg.Format != FormatText {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestNew_WritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelDebug, Format: FormatJSON, Output: &buf})
	logger.Debug("hello", "k", "v")

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) || !strings.Contains(out, `"k":"v"`) {
		t.Errorf("unexpected JSON output: %s", out)
	}
}

func TestNop_Discards(t *testing.T) {
	if Nop().Enabled(context.Background(), LevelError) {
		t.Error("Nop logger should not be enabled")
	}
}

func TestMultiHandler_FansOut(t *testing.T) {
	var a, b bytes.Buffer
	h := NewMultiHandler(
		slog.NewTextHandler(&a, &slog.HandlerOptions{Level: LevelDebug}),
		slog.NewTextHandler(&b, &slog.HandlerOptions{Level: LevelWarn}),
	)
	logger := slog.New(h).With("component", "test")

	logger.Info("info line")
	logger.Warn("warn line")

	if !strings.Contains(a.String(), "info line") || !strings.Contains(a.String(), "warn line") {
		t.Errorf("debug handler missed records: %s", a.String())
	}
	if strings.Contains(b.String(), "info line") || !strings.Contains(b.String(), "warn line") {
		t.Errorf("warn handler got wrong records: %s", b.String())
	}
	if !strings.Contains(b.String(), "component=test") {
		t.Errorf("attrs not propagated: %s", b.String())
	}
}

type failingHandler struct{ err error }

func (f failingHandler) Enabled(context.Context, slog.Level) bool { return true }
func (f failingHandler) Handle(context.Context, slog.Record) error { return f.err }
func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }
func (f failingHandler) WithGroup(string) slog.Handler { return f }

func TestMultiHandler_JoinsErrorsAndKeepsDelivering(t *testing.T) {
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	var out bytes.Buffer
	h := NewMultiHandler(
		failingHandler{err: errA},
		nil,
		slog.NewTextHandler(&out, nil),
		failingHandler{err: errB},
	)

	r := slog.NewRecord(time.Now(), LevelInfo, "still delivered", 0)
	err := h.Handle(context.Background(), r)

	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Errorf("Handle error = %v, want both failures", err)
	}
	if !strings.Contains(out.String(), "still delivered") {
		t.Errorf("healthy handler skipped: %q", out.String())
	}
}

func TestMultiHandler_EmptyAttrsAndGroupReuseHandler(t *testing.T) {
	h := NewMultiHandler(slog.NewTextHandler(&bytes.Buffer{}, nil))
	if h.WithAttrs(nil) != slog.Handler(h) {
		t.Error("WithAttrs(nil) should return the same handler")
	}
	if h.WithGroup("") != slog.Handler(h) {
		t.Error(`WithGroup("") should return the same handler`)
	}
}

func TestNew_PrintsTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: LevelTrace, Output: &buf})
	logger.Log(context.Background(), LevelTrace, "deep")

	if !strings.Contains(buf.String(), "level=TRACE") {
		t.Errorf("trace level not renamed: %s", buf.String())
	}
}

func TestNamed(t *testing.T) {
	var buf bytes.Buffer
	Named(New(Config{Format: FormatJSON, Output: &buf}), "capture").Info("opened")

	if !strings.Contains(buf.String(), `"logger":"capture"`) {
		t.Errorf("logger attribute missing: %s", buf.String())
	}
	if Named(nil, "x").Enabled(context.Background(), LevelError) {
		t.Error("Named(nil) should discard")
	}
}
