package event_bus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPublish_DeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()
	var got []string

	bus.Subscribe("test.event", func(e Event) error {
		got = append(got, "first")
		return nil
	})
	bus.Subscribe("test.event", func(e Event) error {
		got = append(got, "second")
		return nil
	})
	bus.Subscribe("other.event", func(e Event) error {
		got = append(got, "other")
		return nil
	})

	err := bus.Publish(NewEvent("test.event", nil))

	assert.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, got)
}

func TestPublish_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	assert.NoError(t, bus.Publish(NewEvent("nobody.listens", nil)))
}

func TestPublish_CollectsHandlerErrors(t *testing.T) {
	bus := NewEventBus()
	var secondRan bool

	bus.Subscribe("test.event", func(e Event) error {
		return errors.New("boom")
	})
	bus.Subscribe("test.event", func(e Event) error {
		secondRan = true
		return nil
	})

	err := bus.Publish(NewEvent("test.event", nil))

	assert.Error(t, err)
	assert.True(t, secondRan)
}

func TestPublish_RecoversPanics(t *testing.T) {
	bus := NewEventBus()

	bus.Subscribe("test.event", func(e Event) error {
		panic("handler exploded")
	})

	err := bus.Publish(NewEvent("test.event", nil))

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panic")
}

func TestPublish_PassesData(t *testing.T) {
	bus := NewEventBus()
	var got any

	bus.Subscribe(FeedLoaded, func(e Event) error {
		got = e.Data
		return nil
	})

	data := FeedLoadedData{Source: "src", EventCount: 3}
	assert.NoError(t, bus.Publish(NewEvent(FeedLoaded, data)))
	assert.Equal(t, data, got)
}
