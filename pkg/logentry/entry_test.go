package logentry

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"trace", LevelTrace},
		{"DEBUG", LevelDebug},
		{"Info", LevelInfo},
		{"warn", LevelWarn},
		{"WARNING", LevelWarn},
		{"error", LevelError},
		{"fatal", LevelUnknown},
		{"", LevelUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestLevel_String(t *testing.T) {
	names := make(map[string]bool)
	for _, l := range Levels {
		name := l.String()
		if names[name] {
			t.Fatalf("duplicate level name %q", name)
		}
		names[name] = true
		if l != LevelUnknown && ParseLevel(name) != l {
			t.Errorf("ParseLevel(%q) did not round-trip", name)
		}
	}
	assert.Equal(t, "UNKNOWN", Level(42).String())
}

func TestNew_CopiesProperties(t *testing.T) {
	props := map[string]string{"user": "alice"}
	e := New(LevelInfo, "hello", WithProperties(props))
	props["user"] = "mallory"

	assert.Equal(t, "alice", e.Properties["user"])
}

func TestEntry_Equal(t *testing.T) {
	errBoom := errors.New("boom")

	base := New(LevelInfo, "a", WithLogger("svc"), WithMarker("audit"),
		WithProperty("k", "v"), WithError(errBoom))

	tests := []struct {
		name  string
		other Entry
		want  bool
	}{
		{"identical", New(LevelInfo, "a", WithLogger("svc"), WithMarker("audit"), WithProperty("k", "v"), WithError(errBoom)), true},
		{"different level", New(LevelWarn, "a", WithLogger("svc"), WithMarker("audit"), WithProperty("k", "v"), WithError(errBoom)), false},
		{"different message", New(LevelInfo, "b", WithLogger("svc"), WithMarker("audit"), WithProperty("k", "v"), WithError(errBoom)), false},
		{"different logger", New(LevelInfo, "a", WithLogger("other"), WithMarker("audit"), WithProperty("k", "v"), WithError(errBoom)), false},
		{"missing marker", New(LevelInfo, "a", WithLogger("svc"), WithProperty("k", "v"), WithError(errBoom)), false},
		{"different property", New(LevelInfo, "a", WithLogger("svc"), WithMarker("audit"), WithProperty("k", "x"), WithError(errBoom)), false},
		{"structurally equal error", New(LevelInfo, "a", WithLogger("svc"), WithMarker("audit"), WithProperty("k", "v"), WithError(errors.New("boom"))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestEntry_EqualNilAndEmptyProperties(t *testing.T) {
	a := Entry{Level: LevelInfo, Message: "x"}
	b := Entry{Level: LevelInfo, Message: "x", Properties: map[string]string{}}
	assert.True(t, a.Equal(b))
}

type sliceError []string

func (s sliceError) Error() string { return "slice" }

func TestSameError_NonComparable(t *testing.T) {
	err := sliceError{"a"}
	assert.False(t, SameError(err, err))
	assert.True(t, SameError(nil, nil))
	assert.False(t, SameError(nil, errors.New("x")))
}

func TestEntry_String(t *testing.T) {
	assert.Equal(t, "INFO | a", New(LevelInfo, "a").String())

	e := New(LevelError, "failed", WithMarker("db"),
		WithProperties(map[string]string{"b": "2", "a": "1"}),
		WithError(errors.New("timeout")))
	assert.Equal(t, "ERROR | failed | marker=db | {a=1, b=2} | error: timeout", e.String())
}
