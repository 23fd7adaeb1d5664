package event

import (
	"sync"

	"github.com/robgonnella/wisp/internal/logger"
)

type listener struct {
	id        int
	eventType EventType
	channel   chan Event
}

// EventManager fans events out to registered listeners. Delivery never
// blocks the sender: a listener whose buffer is full misses the event.
type EventManager struct {
	listeners      []*listener
	nextListenerID int
	mux            sync.RWMutex
	log            logger.Logger
}

// NewEventManager returns a new instance of EventManager
func NewEventManager() *EventManager {
	return &EventManager{
		listeners:      []*listener{},
		nextListenerID: 1,
		log:            logger.New(),
	}
}

// RegisterListener registers channel to receive events of eventType and
// returns the listener id
func (m *EventManager) RegisterListener(eventType EventType, channel chan Event) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	l := &listener{
		id:        m.nextListenerID,
		eventType: eventType,
		channel:   channel,
	}

	m.listeners = append(m.listeners, l)
	m.nextListenerID++

	return l.id
}

// RemoveListener unregisters the listener with id and returns that id
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	listeners := []*listener{}

	for _, l := range m.listeners {
		if l.id != id {
			listeners = append(listeners, l)
		}
	}

	m.listeners = listeners

	return id
}

// Send delivers evt to every listener registered for its type
func (m *EventManager) Send(evt Event) {
	m.mux.RLock()
	defer m.mux.RUnlock()

	for _, l := range m.listeners {
		if l.eventType != evt.Type {
			continue
		}

		select {
		case l.channel <- evt:
		default:
			m.log.Warn().
				Str("type", string(evt.Type)).
				Int("listener", l.id).
				Msg("listener not ready, dropping event")
		}
	}
}

// ReportError sends a non-fatal error event
func (m *EventManager) ReportError(err error) {
	m.Send(Event{Type: ErrorEventType, Payload: err})
}

// ReportFatalError sends a fatal error event
func (m *EventManager) ReportFatalError(err error) {
	m.Send(Event{Type: FatalErrorEventType, Payload: err})
}
