// Package pubsub provides a generic publish/subscribe event system.
package pubsub

import (
	"context"
	"time"
)

// EventType represents the type of event being published.
type EventType string

const (
	// LoggedEvent carries a formatted log entry.
	LoggedEvent EventType = "logged"
	// InvalidatedEvent reports that cached scan states from some line on
	// are no longer valid (an edit, a reload).
	InvalidatedEvent EventType = "invalidated"
	// DialectChangedEvent reports that a buffer switched dialect and reset
	// every scan state.
	DialectChangedEvent EventType = "dialect_changed"
	// ReloadedEvent reports that a watched file changed on disk.
	ReloadedEvent EventType = "reloaded"
)

// Event represents a published event with a typed payload.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T)
}
