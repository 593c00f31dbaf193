package log

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/retrolex/internal/pubsub"
)

func fixedClock() time.Time {
	return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)
}

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var out bytes.Buffer
	InitWriter(&out)
	std.now = fixedClock
	t.Cleanup(func() { std = nil })
	return &out
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{in: "debug", want: LevelDebug},
		{in: "INFO", want: LevelInfo},
		{in: " Warn ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "trace", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "UNKNOWN", Level(9).String())
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		fields []any
		want   string
	}{
		{name: "no fields", want: "2026-01-02T15:04:05 [INFO] [scan] hello\n"},
		{name: "pairs", fields: []any{"line", 3, "mode", "ecb"}, want: "2026-01-02T15:04:05 [INFO] [scan] hello line=3 mode=ecb\n"},
		{name: "orphan key", fields: []any{"line", 3, "mode"}, want: "2026-01-02T15:04:05 [INFO] [scan] hello line=3 mode=<missing>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, format(fixedClock(), LevelInfo, CatScan, "hello", tt.fields))
		})
	}
}

func TestLevelsAndEnabled(t *testing.T) {
	out := capture(t)

	Debug(CatCache, "miss")
	SetMinLevel(LevelWarn)
	Info(CatCache, "dropped")
	Warn(CatStore, "slow", "ms", 12)
	ErrorErr(CatStore, "open", errors.New("locked"))
	ErrorErr(CatStore, "nil error", nil)
	SetEnabled(false)
	Error(CatStore, "silenced")

	assert.Equal(t,
		"2026-01-02T15:04:05 [DEBUG] [cache] miss\n"+
			"2026-01-02T15:04:05 [WARN] [store] slow ms=12\n"+
			"2026-01-02T15:04:05 [ERROR] [store] open error=locked\n"+
			"2026-01-02T15:04:05 [ERROR] [store] nil error error=<nil>\n",
		out.String())
}

func TestUninitializedIsSilent(t *testing.T) {
	std = nil
	require.NotPanics(t, func() {
		Info(CatUI, "nobody listening")
		SetMinLevel(LevelError)
		SetEnabled(true)
	})
	require.Nil(t, NewListener(context.Background(), LevelDebug))
}

func TestListenerFiltersByLevel(t *testing.T) {
	capture(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewListener(ctx, LevelWarn)
	require.NotNil(t, listener)

	Info(CatWatcher, "change")
	Warn(CatWatcher, "debounce overflow", "pending", 4)

	msg := listener.Listen()()
	event, ok := msg.(pubsub.Event[string])
	require.True(t, ok)
	assert.Equal(t, pubsub.LoggedEvent, event.Type)
	assert.Equal(t, "2026-01-02T15:04:05 [WARN] [watcher] debounce overflow pending=4\n", event.Payload)
}

func TestEntryLevel(t *testing.T) {
	assert.Equal(t, LevelError, entryLevel(format(fixedClock(), LevelError, CatUI, "x", nil)))
	assert.Equal(t, LevelDebug, entryLevel("short"))
	assert.Equal(t, LevelDebug, entryLevel("2026-01-02T15:04:05 [BOGUS] [ui] x"))
}
