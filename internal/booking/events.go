package booking

import "log"

// Event is the save/delete outcome pushed to the UI layer as a toast.
type Event struct {
	Kind    string `json:"kind"` // "success" or "failure"
	Message string `json:"message"`
}

// EventSink receives booking outcome events.
type EventSink interface {
	Publish(event Event)
}

// LogSink is the default sink; the HTTP response already carries the outcome,
// so server-side the event trail only needs to be logged.
type LogSink struct{}

func (LogSink) Publish(event Event) {
	log.Printf("booking %s: %s", event.Kind, event.Message)
}
