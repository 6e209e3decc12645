package capture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/logcapture/pkg/logentry"
)

// fakeSource records lifecycle calls into a shared journal.
type fakeSource struct {
	name     string
	journal  *[]string
	startErr error
	stopErr  error
	rec      Recorder
}

func (s *fakeSource) Name() string { return s.name }

func (s *fakeSource) Start(rec Recorder) error {
	*s.journal = append(*s.journal, "start "+s.name)
	if s.startErr != nil {
		return s.startErr
	}
	s.rec = rec
	return nil
}

func (s *fakeSource) Stop() error {
	*s.journal = append(*s.journal, "stop "+s.name)
	s.rec = nil
	return s.stopErr
}

func (s *fakeSource) emit(msg string) {
	if s.rec != nil {
		s.rec.Record(logentry.New(logentry.LevelInfo, msg))
	}
}

func TestWindow_Lifecycle(t *testing.T) {
	var journal []string
	a := &fakeSource{name: "a", journal: &journal}
	b := &fakeSource{name: "b", journal: &journal}

	w := NewWindow([]Source{a, b})
	require.NoError(t, w.Open())
	assert.True(t, w.IsOpen())

	a.emit("from a")
	b.emit("from b")

	require.NoError(t, w.Close())
	assert.False(t, w.IsOpen())

	a.emit("after close")

	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, journal)
	assert.Equal(t, []string{"from a", "from b"}, w.Buffer().Messages(nil))
}

func TestWindow_Misuse(t *testing.T) {
	w := NewWindow(nil)
	assert.ErrorIs(t, w.Close(), ErrWindowNotOpen)

	require.NoError(t, w.Open())
	assert.ErrorIs(t, w.Open(), ErrWindowOpen)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close(), "second close is a no-op")
	assert.ErrorIs(t, w.Open(), ErrWindowClosed)
}

func TestWindow_StartFailureRollsBack(t *testing.T) {
	var journal []string
	boom := errors.New("boom")
	a := &fakeSource{name: "a", journal: &journal}
	b := &fakeSource{name: "b", journal: &journal, startErr: boom}
	c := &fakeSource{name: "c", journal: &journal}

	w := NewWindow([]Source{a, b, c})
	err := w.Open()
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "start source b")

	assert.Equal(t, []string{"start a", "start b", "stop a"}, journal)
	assert.False(t, w.IsOpen())
	assert.ErrorIs(t, w.Buffer().IsEmpty(), ErrNoCapture)
}

func TestWindow_StopErrorsAreJoined(t *testing.T) {
	var journal []string
	errA := errors.New("a failed")
	errB := errors.New("b failed")
	a := &fakeSource{name: "a", journal: &journal, stopErr: errA}
	b := &fakeSource{name: "b", journal: &journal, stopErr: errB}

	w := NewWindow([]Source{a, b})
	require.NoError(t, w.Open())

	err := w.Close()
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Equal(t, []string{"start a", "start b", "stop b", "stop a"}, journal, "every source is stopped despite errors")
}

func TestWindow_WithBuffer(t *testing.T) {
	buf := NewBuffer()
	w := NewWindow(nil, WithBuffer(buf))
	assert.Same(t, buf, w.Buffer())

	require.NoError(t, w.Open())
	defer w.Close()
	assert.NoError(t, buf.IsEmpty())
}

func TestWindow_ClosedBufferStillAssertable(t *testing.T) {
	w, err := Start()
	require.NoError(t, err)
	w.Buffer().Record(logentry.New(logentry.LevelWarn, "late"))
	require.NoError(t, w.Close())

	assert.Error(t, w.Buffer().IsEmpty())
}
