package eventbus

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type createdEvent struct {
	Name string
}

func TestEventBus_DeliversToMatchingSubscriber(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	var got []string
	bus.Subscribe(func(ev createdEvent) {
		got = append(got, ev.Name)
	})
	bus.Subscribe(func(other int) {
		t.Fatal("mismatched subscriber should not fire")
	})

	bus.Publish(createdEvent{Name: "a"})
	bus.Publish(createdEvent{Name: "b"})

	require.Equal(t, []string{"a", "b"}, got)
}

func TestEventBus_UnsubscribeAndClear(t *testing.T) {
	bus := NewEventPublisher(logrus.New())

	calls := 0
	handler := func(ev createdEvent) { calls++ }
	bus.Subscribe(handler)
	require.Equal(t, 1, bus.SubscribersCount())

	bus.Publish(createdEvent{})
	bus.Unsubscribe(handler)
	bus.Publish(createdEvent{})
	require.Equal(t, 1, calls)

	bus.Subscribe(handler)
	bus.Clear()
	require.Equal(t, 0, bus.SubscribersCount())
}

func TestEventBus_RecoversFromHandlerPanic(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	bus := NewEventPublisher(logger)

	fired := false
	bus.Subscribe(func(ev createdEvent) { panic("boom") })
	bus.Subscribe(func(ev createdEvent) { fired = true })

	require.NotPanics(t, func() { bus.Publish(createdEvent{}) })
	require.True(t, fired)
}
