// Package session keeps the per-buffer scan state chain. A Buffer owns the
// lines of one document and one dialect, remembers the entry state of every
// line it has scanned (checkpoints), and re-derives the state of any line by
// replaying from the nearest checkpoint. Hosts ask only for the lines they
// display.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/retrolex/internal/cachemanager"
	"github.com/zjrosen/retrolex/internal/dialect"
	"github.com/zjrosen/retrolex/internal/log"
	"github.com/zjrosen/retrolex/internal/pubsub"
	"github.com/zjrosen/retrolex/internal/scan"
	"github.com/zjrosen/retrolex/internal/tracing"
)

// ErrLineOutOfRange is returned for line indexes outside the buffer.
var ErrLineOutOfRange = errors.New("line out of range")

// DefaultCacheTTL is how long an unused line result stays cached.
const DefaultCacheTTL = 5 * time.Minute

// LineResult is the classification of one line.
type LineResult struct {
	Index int         `json:"line" yaml:"line"`
	Text  string      `json:"text" yaml:"text"`
	Spans []scan.Span `json:"spans" yaml:"spans"`
	Entry scan.State  `json:"entry" yaml:"entry"`
	Exit  scan.State  `json:"exit" yaml:"exit"`
}

// Event is published whenever checkpoints are dropped. FromLine is the first
// line whose result may have changed.
type Event struct {
	BufferID string
	FromLine int
	Dialect  string
}

// Buffer is one document under incremental scanning. It is safe for
// concurrent use; callers are serialized.
type Buffer struct {
	mu sync.Mutex

	id    string
	lines []string
	d     *dialect.Dialect

	// entries[i] is the entry state of line i for i < known.
	entries []scan.State
	known   int

	ttl        time.Duration
	store      *cachemanager.InMemoryCacheManager[string, scanned]
	cache      *cachemanager.ReadThroughCache[string, scanned, scanInput]
	broker     *pubsub.Broker[Event]
	ownsBroker bool
	tracer     trace.Tracer
}

type scanned struct {
	spans []scan.Span
	exit  scan.State
}

type scanInput struct {
	line  string
	state scan.State
	d     *dialect.Dialect
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithCacheTTL sets the lifetime of cached line results. A zero ttl disables
// the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(b *Buffer) { b.ttl = ttl }
}

// WithBroker publishes invalidation events on broker instead of a private
// one.
func WithBroker(broker *pubsub.Broker[Event]) Option {
	return func(b *Buffer) { b.broker = broker }
}

// WithTracer overrides the tracer used for range spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(b *Buffer) { b.tracer = tracer }
}

// New creates a buffer for text under dialect d.
func New(text string, d *dialect.Dialect, opts ...Option) *Buffer {
	b := &Buffer{
		id:  uuid.NewString(),
		d:   d,
		ttl: DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.broker == nil {
		b.broker = pubsub.NewBroker[Event]()
		b.ownsBroker = true
	}
	if b.tracer == nil {
		b.tracer = tracing.Tracer("retrolex/session")
	}

	b.store = cachemanager.NewInMemoryCacheManager[string, scanned]("lines", b.ttl, cachemanager.DefaultCleanupInterval)
	b.cache = cachemanager.NewReadThroughCache[string, scanned, scanInput](b.store, tokenize, b.ttl <= 0)

	b.setLines(SplitLines(text))
	b.resetCheckpoints()

	log.Debug(log.CatSession, "Buffer created", "id", b.id, "dialect", d.ID, "lines", len(b.lines))
	return b
}

func tokenize(_ context.Context, in scanInput) (scanned, error) {
	spans, exit := scan.TokenizeLine(in.line, in.state, in.d)
	return scanned{spans: spans, exit: exit}, nil
}

// SplitLines splits text on "\n", dropping a "\r" before each break.
func SplitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// ID returns the buffer's unique id.
func (b *Buffer) ID() string {
	return b.id
}

// Dialect returns the current dialect.
func (b *Buffer) Dialect() *dialect.Dialect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.d
}

// Len returns the number of lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Text returns the buffer contents joined with "\n".
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return strings.Join(b.lines, "\n")
}

// Events returns the broker invalidations are published on.
func (b *Buffer) Events() *pubsub.Broker[Event] {
	return b.broker
}

// CacheStats reports line cache hits and misses.
func (b *Buffer) CacheStats() cachemanager.Stats {
	return b.cache.Stats()
}

// Checkpoints returns how many lines currently have a known entry state.
func (b *Buffer) Checkpoints() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.known
}

// Close drops cached results and closes the buffer's own event broker. A
// broker passed in with WithBroker is left open.
func (b *Buffer) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	_ = b.store.Flush(context.Background())
	if b.ownsBroker {
		b.broker.Close()
	}
}

// Line classifies line i.
func (b *Buffer) Line(ctx context.Context, i int) (LineResult, error) {
	res, err := b.Range(ctx, i, i+1)
	if err != nil {
		return LineResult{}, err
	}
	return res[0], nil
}

// Range classifies lines [start, end). Lines before start are replayed only
// as far as needed to learn the entry state of start.
func (b *Buffer) Range(ctx context.Context, start, end int) ([]LineResult, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if start < 0 || end > len(b.lines) || start >= end {
		return nil, fmt.Errorf("%w: [%d, %d) of %d lines", ErrLineOutOfRange, start, end, len(b.lines))
	}

	ctx, span := b.tracer.Start(ctx, tracing.SpanSessionRange, trace.WithAttributes(
		attribute.String(tracing.AttrBufferID, b.id),
		attribute.String(tracing.AttrDialect, b.d.ID),
		attribute.Int(tracing.AttrRangeStart, start),
		attribute.Int(tracing.AttrRangeEnd, end),
	))
	defer span.End()

	if err := b.replayTo(ctx, start); err != nil {
		return nil, err
	}

	out := make([]LineResult, 0, end-start)
	for i := start; i < end; i++ {
		entry := b.entries[i]
		res, err := b.scanLine(ctx, i, entry)
		if err != nil {
			return nil, err
		}
		b.record(i+1, res.exit)
		out = append(out, LineResult{
			Index: i,
			Text:  b.lines[i],
			Spans: res.spans,
			Entry: entry,
			Exit:  res.exit,
		})
	}

	stats := b.cache.Stats()
	span.SetAttributes(
		attribute.Int64(tracing.AttrCacheHits, int64(stats.Hits)),
		attribute.Int64(tracing.AttrCacheMiss, int64(stats.Misses)),
	)
	return out, nil
}

// StateAt returns the entry state of line i. i may equal Len(), which yields
// the state after the last line.
func (b *Buffer) StateAt(ctx context.Context, i int) (scan.State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if i < 0 || i > len(b.lines) {
		return scan.State{}, fmt.Errorf("%w: %d of %d lines", ErrLineOutOfRange, i, len(b.lines))
	}
	if err := b.replayTo(ctx, i); err != nil {
		return scan.State{}, err
	}
	return b.entries[i], nil
}

// replayTo makes entries[target] known by scanning forward from the last
// checkpoint.
func (b *Buffer) replayTo(ctx context.Context, target int) error {
	if target < b.known {
		return nil
	}

	from := b.known - 1
	ctx, span := b.tracer.Start(ctx, tracing.SpanSessionReplay, trace.WithAttributes(
		attribute.Int(tracing.AttrReplayFrom, from),
		attribute.Int(tracing.AttrReplayTo, target),
	))
	defer span.End()

	for i := from; i < target; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := b.scanLine(ctx, i, b.entries[i])
		if err != nil {
			return err
		}
		b.record(i+1, res.exit)
	}

	log.Debug(log.CatSession, "Replayed scan state", "id", b.id, "from", from, "to", target)
	return nil
}

func (b *Buffer) scanLine(ctx context.Context, i int, entry scan.State) (scanned, error) {
	in := scanInput{line: b.lines[i], state: entry, d: b.d}
	return b.cache.GetWithRefresh(ctx, cacheKey(in), in, b.ttl)
}

// record stores the entry state of line i once line i-1 has been scanned.
func (b *Buffer) record(i int, st scan.State) {
	if i == b.known && i < len(b.entries) {
		b.entries[i] = st
		b.known++
	}
}

func cacheKey(in scanInput) string {
	var sb strings.Builder
	sb.Grow(len(in.d.ID) + len(in.line) + 8)
	sb.WriteString(in.d.ID)
	sb.WriteByte(0)
	switch {
	case in.state.InString:
		sb.WriteByte('s')
		sb.WriteByte(in.state.Delimiter)
	case in.state.AtLineStart:
		sb.WriteByte('l')
	default:
		sb.WriteByte('-')
	}
	sb.WriteByte(0)
	sb.WriteString(in.line)
	return sb.String()
}
