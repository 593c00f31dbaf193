package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ListenCmd returns a command that yields the next event from ch as a
// tea.Msg, or nil once ctx is done or ch is closed.
func ListenCmd[T any](ctx context.Context, ch <-chan Event[T]) tea.Cmd {
	return listen(ctx, ch, nil)
}

func listen[T any](ctx context.Context, ch <-chan Event[T], keep func(Event[T]) bool) tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case <-ctx.Done():
				return nil
			case event, ok := <-ch:
				if !ok {
					return nil
				}
				if keep == nil || keep(event) {
					return event
				}
			}
		}
	}
}

// ContinuousListener feeds one broker subscription into a Bubble Tea update
// loop. Update must call Listen again after handling each event.
type ContinuousListener[T any] struct {
	ctx  context.Context
	ch   <-chan Event[T]
	keep func(Event[T]) bool
}

// NewContinuousListener subscribes to broker for as long as ctx lives.
func NewContinuousListener[T any](ctx context.Context, broker *Broker[T]) *ContinuousListener[T] {
	return NewFilteredListener(ctx, broker, nil)
}

// NewFilteredListener is NewContinuousListener that silently drops events
// for which keep returns false. A nil keep passes everything.
func NewFilteredListener[T any](ctx context.Context, broker *Broker[T], keep func(Event[T]) bool) *ContinuousListener[T] {
	return &ContinuousListener[T]{
		ctx:  ctx,
		ch:   broker.Subscribe(ctx),
		keep: keep,
	}
}

// Listen returns a command that waits for the next kept event.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return listen(l.ctx, l.ch, l.keep)
}
