package events

import (
	"time"
)

// Event is the base interface for everything published on the bus.
type Event interface {
	// Type returns the event type as a string for filtering and logging
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// RunID returns the ID of the evaluation run this event belongs to
	RunID() string
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Run       string    `json:"run_id"`
}

// Type implements Event
func (e BaseEvent) Type() string { return e.EventType }

// Timestamp implements Event
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// RunID implements Event
func (e BaseEvent) RunID() string { return e.Run }

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber represents an entity that can receive events
type Subscriber interface {
	// ID returns a unique identifier for this subscriber
	ID() string
	// HandleEvent processes an event
	HandleEvent(Event)
	// InterestedIn returns true if the subscriber wants this event type
	InterestedIn(eventType string) bool
}

// Publisher is the interface the episode runner holds: it can only emit.
type Publisher interface {
	Publish(Event)
}

// Bus is the full event bus interface
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
