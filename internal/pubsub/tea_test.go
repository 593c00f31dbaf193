package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReturnsEventAsMsg(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(ReloadedEvent, "demo.asm")

	msg := ListenCmd(ctx, ch)()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "demo.asm", event.Payload)
	require.Equal(t, ReloadedEvent, event.Type)
}

func TestListenCmd_NilWhenDone(t *testing.T) {
	t.Run("context cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		require.Nil(t, ListenCmd(ctx, make(chan Event[int]))())
	})

	t.Run("channel closed", func(t *testing.T) {
		ch := make(chan Event[int])
		close(ch)
		require.Nil(t, ListenCmd(context.Background(), ch)())
	})
}

func TestContinuousListener_PreservesOrder(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(InvalidatedEvent, 4)
	broker.Publish(DialectChangedEvent, 0)
	broker.Publish(InvalidatedEvent, 9)

	want := []Event[int]{
		{Type: InvalidatedEvent, Payload: 4},
		{Type: DialectChangedEvent, Payload: 0},
		{Type: InvalidatedEvent, Payload: 9},
	}
	for _, w := range want {
		event, ok := listener.Listen()().(Event[int])
		require.True(t, ok)
		require.Equal(t, w.Type, event.Type)
		require.Equal(t, w.Payload, event.Payload)
	}
}

func TestFilteredListener_SkipsRejected(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewFilteredListener(ctx, broker, func(e Event[string]) bool {
		return e.Type == ReloadedEvent
	})

	broker.Publish(LoggedEvent, "noise")
	broker.Publish(InvalidatedEvent, "noise")
	broker.Publish(ReloadedEvent, "boot.s")

	event, ok := listener.Listen()().(Event[string])
	require.True(t, ok)
	require.Equal(t, "boot.s", event.Payload)
}

func TestFilteredListener_NilWhenCancelled(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	listener := NewFilteredListener(ctx, broker, func(Event[string]) bool { return false })

	broker.Publish(ReloadedEvent, "dropped")
	cancel()
	require.Nil(t, listener.Listen()())
}
