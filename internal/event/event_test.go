package event_test

import (
	"errors"
	"testing"

	"github.com/robgonnella/wisp/internal/event"
	"github.com/stretchr/testify/assert"
)

func TestEventManager(t *testing.T) {
	t.Run("registers event listener and sends event", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		eventManager.RegisterListener("test-event", listener)

		eventManager.Send(event.Event{
			Type:    "a-different-type",
			Payload: struct{}{},
		})

		eventManager.Send(event.Event{
			Type:    "test-event",
			Payload: true,
		})

		result := <-listener

		assert.Equal(st, event.EventType("test-event"), result.Type)
		assert.Equal(st, true, result.Payload)
	})

	t.Run("removes event listener", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		id := eventManager.RegisterListener("test-event", listener)

		removedID := eventManager.RemoveListener(id)

		assert.Equal(st, id, removedID)

		eventManager.Send(event.Event{Type: "test-event"})

		assert.Len(st, listener, 0)
	})

	t.Run("does not block on a full listener", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		eventManager.RegisterListener("test-event", listener)

		eventManager.Send(event.Event{Type: "test-event", Payload: 1})
		eventManager.Send(event.Event{Type: "test-event", Payload: 2})

		result := <-listener

		assert.Equal(st, 1, result.Payload)
		assert.Len(st, listener, 0)
	})

	t.Run("reports fatal error event", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		eventManager.RegisterListener(event.FatalErrorEventType, listener)

		eventManager.Send(event.Event{
			Type:    "a-different-type",
			Payload: struct{}{},
		})

		eventManager.ReportFatalError(errors.New("fatal test error"))

		result := <-listener

		assert.Equal(st, event.FatalErrorEventType, result.Type)
	})

	t.Run("reports error event", func(st *testing.T) {
		eventManager := event.NewEventManager()

		listener := make(chan event.Event, 1)

		eventManager.RegisterListener(event.ErrorEventType, listener)

		eventManager.ReportError(errors.New("test error"))

		result := <-listener

		assert.Equal(st, event.ErrorEventType, result.Type)
	})
}
