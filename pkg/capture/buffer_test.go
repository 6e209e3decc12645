package capture

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/logcapture/pkg/expect"
	"github.com/getmockd/logcapture/pkg/logentry"
)

func startedBuffer(t *testing.T) *Buffer {
	t.Helper()
	w, err := Start()
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w.Buffer()
}

func TestBuffer_PreservesInsertionOrder(t *testing.T) {
	buf := NewBuffer()
	for _, msg := range []string{"c", "a", "b"} {
		buf.Record(logentry.New(logentry.LevelInfo, msg))
	}
	assert.Equal(t, []string{"c", "a", "b"}, buf.Messages(nil))
	assert.Equal(t, 3, buf.Len())
}

func TestBuffer_SnapshotIsIndependent(t *testing.T) {
	buf := NewBuffer()
	buf.Record(logentry.New(logentry.LevelInfo, "first"))

	snap := buf.Snapshot()
	buf.Record(logentry.New(logentry.LevelInfo, "second"))
	snap[0].Message = "changed"

	assert.Len(t, snap, 1, "snapshot must not see later appends")
	assert.Equal(t, "first", buf.Snapshot()[0].Message, "snapshot edits must not leak into the buffer")
}

func TestBuffer_PropertiesAreNotShared(t *testing.T) {
	buf := NewBuffer()
	props := map[string]string{"k": "v"}
	buf.Record(logentry.Entry{Level: logentry.LevelInfo, Message: "m", Properties: props})

	props["k"] = "changed-after-record"
	props["extra"] = "x"

	snap := buf.Snapshot()
	snap[0].Properties["k"] = "changed-in-snapshot"

	assert.Equal(t, map[string]string{"k": "v"}, buf.Snapshot()[0].Properties)
	assert.Equal(t, map[string]string{"k": "v"}, buf.Entries(nil)[0].Properties)
}

func TestBuffer_NilPropertiesStayNil(t *testing.T) {
	buf := NewBuffer()
	buf.Record(logentry.Entry{Level: logentry.LevelInfo, Message: "m"})
	assert.Nil(t, buf.Snapshot()[0].Properties)
}

func TestBuffer_ConcurrentRecord(t *testing.T) {
	buf := NewBuffer()

	const goroutines = 50
	const perGoroutine = 200

	var wg sync.WaitGroup
	stop := make(chan struct{})
	readerDone := make(chan struct{})

	// Reader snapshots continuously while producers append.
	go func() {
		defer close(readerDone)
		last := 0
		for {
			select {
			case <-stop:
				return
			default:
			}
			n := len(buf.Snapshot())
			if n < last {
				t.Errorf("snapshot shrank from %d to %d", last, n)
				return
			}
			last = n
		}
	}()

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < perGoroutine; i++ {
				buf.Record(logentry.New(logentry.LevelInfo, fmt.Sprintf("%d-%d", g, i)))
			}
		}(g)
	}
	wg.Wait()
	close(stop)
	<-readerDone

	msgs := buf.Messages(nil)
	require.Len(t, msgs, goroutines*perGoroutine)

	seen := make(map[string]bool, len(msgs))
	lastPerProducer := make(map[int]int)
	for _, m := range msgs {
		require.False(t, seen[m], "duplicate entry %s", m)
		seen[m] = true

		var g, i int
		_, err := fmt.Sscanf(m, "%d-%d", &g, &i)
		require.NoError(t, err)
		if prev, ok := lastPerProducer[g]; ok {
			require.Greater(t, i, prev, "per-producer order must be preserved")
		}
		lastPerProducer[g] = i
	}
}

func TestBuffer_Filters(t *testing.T) {
	buf := NewBuffer()
	buf.Record(logentry.New(logentry.LevelInfo, "a", logentry.WithLogger("app/db"), logentry.WithMarker("sql")))
	buf.Record(logentry.New(logentry.LevelDebug, "b", logentry.WithLogger("app/db")))
	buf.Record(logentry.New(logentry.LevelInfo, "c", logentry.WithLogger("app/http")))
	buf.Record(logentry.New(logentry.LevelInfo, "d", logentry.WithLogger("app/db"), logentry.WithMarker("audit")))

	tests := []struct {
		name    string
		filter  *Filter
		want    []string
		markers []string
	}{
		{"nil filter", nil, []string{"a", "b", "c", "d"}, []string{"sql", "", "", "audit"}},
		{"empty filter", &Filter{}, []string{"a", "b", "c", "d"}, []string{"sql", "", "", "audit"}},
		{"by logger", &Filter{Logger: "app/db"}, []string{"a", "b", "d"}, []string{"sql", "", "audit"}},
		{"by level", &Filter{Level: Level(logentry.LevelInfo)}, []string{"a", "c", "d"}, []string{"sql", "", "audit"}},
		{"logger and level", &Filter{Logger: "app/db", Level: Level(logentry.LevelInfo)}, []string{"a", "d"}, []string{"sql", "audit"}},
		{"glob", &Filter{LoggerGlob: "app/*"}, []string{"a", "b", "c", "d"}, []string{"sql", "", "", "audit"}},
		{"glob narrow", &Filter{LoggerGlob: "app/h*"}, []string{"c"}, []string{""}},
		{"no match", &Filter{Logger: "other"}, []string{}, []string{}},
		{"bad glob", &Filter{LoggerGlob: "app/["}, []string{}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buf.Messages(tt.filter))
			assert.Equal(t, tt.markers, buf.Markers(tt.filter))
		})
	}
}

func TestBuffer_FilterRoundTrip(t *testing.T) {
	buf := NewBuffer()
	loggers := []string{"a", "b", "c"}
	for i := 0; i < 60; i++ {
		buf.Record(logentry.New(logentry.Levels[i%len(logentry.Levels)], fmt.Sprint(i),
			logentry.WithLogger(loggers[i%len(loggers)])))
	}

	for _, logger := range loggers {
		for _, level := range logentry.Levels {
			var want []logentry.Entry
			for _, e := range buf.Entries(nil) {
				if e.Logger == logger && e.Level == level {
					want = append(want, e)
				}
			}
			got := buf.Entries(&Filter{Logger: logger, Level: Level(level)})
			require.Len(t, got, len(want))
			for i := range want {
				assert.True(t, want[i].Equal(got[i]))
			}
		}
	}
}

func TestBuffer_StrategiesRequireCapture(t *testing.T) {
	buf := NewBuffer()
	assert.ErrorIs(t, buf.IsEmpty(), ErrNoCapture)
	assert.ErrorIs(t, buf.Contains(expect.Info("a")), ErrNoCapture)

	var nilBuf *Buffer
	_, err := nilBuf.Match("contains", nil)
	assert.ErrorIs(t, err, ErrNoCapture)
}

func TestBuffer_Strategies(t *testing.T) {
	buf := startedBuffer(t)
	require.NoError(t, buf.IsEmpty())

	buf.Record(logentry.New(logentry.LevelInfo, "a"))
	buf.Record(logentry.New(logentry.LevelDebug, "b"))

	assert.Error(t, buf.IsEmpty())
	assert.NoError(t, buf.Contains(expect.Debug("b")))
	assert.NoError(t, buf.ContainsOnly(expect.Debug("b"), expect.Info("a")))
	assert.NoError(t, buf.ContainsExactly(expect.Info("a"), expect.Debug("b")))
	assert.NoError(t, buf.ContainsInOrder(expect.Info("a"), expect.Debug("b")))

	err := buf.ContainsInOrder(expect.Debug("b"), expect.Info("a"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `[✗] did not find entry matching INFO | message equal to "a"`)
}

func TestBuffer_UniqueIDs(t *testing.T) {
	assert.NotEqual(t, NewBuffer().ID(), NewBuffer().ID())
	assert.NotEmpty(t, NewBuffer().ID())
}
