// Package log is retrolex's debug log. Nothing is written unless --debug or
// RETROLEX_DEBUG turns it on; entries then go to a file as one key=value line
// each and are republished on a broker for in-process listeners.
package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/zjrosen/retrolex/internal/pubsub"
)

// Level is an entry's severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return "UNKNOWN"
	}
	return levelNames[l]
}

// ParseLevel accepts a level name in any case. "warning" is an alias for
// WARN.
func ParseLevel(s string) (Level, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	if name == "WARNING" {
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if n == name {
			return Level(i), nil
		}
	}
	return LevelDebug, fmt.Errorf("unknown log level %q", s)
}

// Category tags the subsystem an entry came from.
type Category string

const (
	CatScan    Category = "scan"
	CatDialect Category = "dialect"
	CatSession Category = "session"
	CatConfig  Category = "config"
	CatWatcher Category = "watcher"
	CatUI      Category = "ui"
	CatStore   Category = "store"
	CatCache   Category = "cache"
	CatTrace   Category = "trace"
)

const (
	// EnvDebug enables logging when non-empty.
	EnvDebug = "RETROLEX_DEBUG"
	// EnvLevel sets the minimum level, see ParseLevel.
	EnvLevel = "RETROLEX_LOG_LEVEL"
)

const timeLayout = "2006-01-02T15:04:05"

type logger struct {
	mu       sync.Mutex
	out      io.Writer
	closer   io.Closer
	enabled  bool
	minLevel Level
	broker   *pubsub.Broker[string]
	now      func() time.Time
}

var (
	std     *logger
	stdOnce sync.Once
)

// Init opens path for appending and installs it as the log destination. The
// minimum level comes from RETROLEX_LOG_LEVEL when set. Only the first call
// opens a file; later calls reuse it. The returned func closes the file.
func Init(path string) (func(), error) {
	var err error
	stdOnce.Do(func() {
		var f *os.File
		f, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // G304: debug log path is chosen by the user
		if err != nil {
			return
		}
		std = newLogger(f)
		std.closer = f
	})
	if err != nil {
		return nil, err
	}
	if std == nil {
		return nil, fmt.Errorf("log: earlier initialization failed")
	}
	if env := os.Getenv(EnvLevel); env != "" {
		lvl, perr := ParseLevel(env)
		if perr != nil {
			return nil, fmt.Errorf("%s: %w", EnvLevel, perr)
		}
		SetMinLevel(lvl)
	}
	l := std
	return func() {
		if l.closer != nil {
			_ = l.closer.Close()
		}
	}, nil
}

// InitWriter replaces the destination with w at debug level.
func InitWriter(w io.Writer) {
	std = newLogger(w)
}

func newLogger(w io.Writer) *logger {
	return &logger{
		out:     w,
		enabled: true,
		broker:  pubsub.NewBroker[string](),
		now:     time.Now,
	}
}

// SetEnabled turns logging on or off without dropping the destination.
func SetEnabled(enabled bool) {
	if l := std; l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel drops entries below level.
func SetMinLevel(level Level) {
	if l := std; l != nil {
		l.mu.Lock()
		l.minLevel = level
		l.mu.Unlock()
	}
}

func Debug(cat Category, msg string, fields ...any) { write(LevelDebug, cat, msg, fields) }
func Info(cat Category, msg string, fields ...any)  { write(LevelInfo, cat, msg, fields) }
func Warn(cat Category, msg string, fields ...any)  { write(LevelWarn, cat, msg, fields) }
func Error(cat Category, msg string, fields ...any) { write(LevelError, cat, msg, fields) }

// ErrorErr logs at error level with err appended as the "error" field.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	text := "<nil>"
	if err != nil {
		text = err.Error()
	}
	write(LevelError, cat, msg, append(fields, "error", text))
}

// format renders one entry:
//
//	2026-01-02T15:04:05 [WARN] [dialect] message key=value key2=value2
//
// A trailing key without a value is written as key=<missing>.
func format(ts time.Time, level Level, cat Category, msg string, fields []any) string {
	var b strings.Builder
	b.WriteString(ts.Format(timeLayout))
	fmt.Fprintf(&b, " [%s] [%s] %s", level, cat, msg)
	for i := 0; i < len(fields); i += 2 {
		if i+1 == len(fields) {
			fmt.Fprintf(&b, " %v=<missing>", fields[i])
			break
		}
		fmt.Fprintf(&b, " %v=%v", fields[i], fields[i+1])
	}
	b.WriteByte('\n')
	return b.String()
}

func write(level Level, cat Category, msg string, fields []any) {
	l := std
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.enabled || level < l.minLevel {
		return
	}

	entry := format(l.now(), level, cat, msg, fields)
	if l.out != nil {
		_, _ = io.WriteString(l.out, entry)
	}
	l.broker.Publish(pubsub.LoggedEvent, entry)
}

// Listener delivers formatted entries to a Bubble Tea model.
type Listener = pubsub.ContinuousListener[string]

// NewListener subscribes to entries at or above minLevel until ctx is done. It
// returns nil when logging was never initialized.
func NewListener(ctx context.Context, minLevel Level) *Listener {
	l := std
	if l == nil {
		return nil
	}
	return pubsub.NewFilteredListener(ctx, l.broker, func(e pubsub.Event[string]) bool {
		return entryLevel(e.Payload) >= minLevel
	})
}

// entryLevel reads the level back out of a formatted entry.
func entryLevel(entry string) Level {
	start := len(timeLayout) + 2
	if len(entry) <= start {
		return LevelDebug
	}
	end := strings.IndexByte(entry[start:], ']')
	if end < 0 {
		return LevelDebug
	}
	lvl, err := ParseLevel(entry[start : start+end])
	if err != nil {
		return LevelDebug
	}
	return lvl
}
