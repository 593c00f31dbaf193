package pubsub

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultBufferSize is the per-subscriber channel capacity of NewBroker.
const DefaultBufferSize = 64

// Broker fans events out to any number of subscribers. Publish never blocks:
// a subscriber whose buffer is full misses the event and Dropped counts it.
type Broker[T any] struct {
	mu      sync.RWMutex
	subs    map[uint64]chan Event[T]
	nextID  uint64
	closed  bool
	size    int
	dropped atomic.Uint64
}

// NewBroker returns a broker with DefaultBufferSize per subscriber.
func NewBroker[T any]() *Broker[T] {
	return NewBrokerWithBuffer[T](DefaultBufferSize)
}

// NewBrokerWithBuffer returns a broker with size slots per subscriber.
func NewBrokerWithBuffer[T any](size int) *Broker[T] {
	if size < 0 {
		size = 0
	}
	return &Broker[T]{subs: make(map[uint64]chan Event[T]), size: size}
}

// Subscribe returns a channel of events published from now on. It is closed
// when ctx ends or the broker closes; after Close it is returned closed.
func (b *Broker[T]) Subscribe(ctx context.Context) <-chan Event[T] {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event[T], b.size)
	if b.closed {
		close(ch)
		return ch
	}
	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	context.AfterFunc(ctx, func() { b.unsubscribe(id) })
	return ch
}

func (b *Broker[T]) unsubscribe(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ch, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(ch)
	}
}

// Publish delivers an event of type typ to every current subscriber.
func (b *Broker[T]) Publish(typ EventType, payload T) {
	ev := Event[T]{Type: typ, Payload: payload, Timestamp: time.Now()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
			b.dropped.Add(1)
		}
	}
}

// Close closes every subscriber channel. Later calls do nothing.
func (b *Broker[T]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}

// Closed reports whether Close has been called.
func (b *Broker[T]) Closed() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.closed
}

// SubscriberCount is the number of open subscriptions.
func (b *Broker[T]) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Dropped is the number of deliveries skipped because a buffer was full.
func (b *Broker[T]) Dropped() uint64 {
	return b.dropped.Load()
}
