package event

type EventType string

const (
	// RunStartedEventType payload is RunStarted
	RunStartedEventType EventType = "run-started"
	// RecordCompletedEventType payload is *device.Record
	RecordCompletedEventType EventType = "record-completed"
	// RunFinishedEventType payload is RunFinished
	RunFinishedEventType EventType = "run-finished"
	ErrorEventType       EventType = "error"
	FatalErrorEventType  EventType = "fatal-error"
)

// Event data structure representing any event we may want to react to
type Event struct {
	Type    EventType
	Payload any
}

// RunStarted payload announcing the number of unique addresses in a run
type RunStarted struct {
	Total int
}

// RunFinished payload summarizing a completed run
type RunFinished struct {
	Total  int
	OK     int
	Failed int
}
