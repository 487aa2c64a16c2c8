package ecs

// EventType identifies an event payload.
type EventType string

const (
	EventKnockbackComplete EventType = "knockback_complete"
	EventLanded            EventType = "landed"
	EventAirborne          EventType = "airborne"
)

// Event is a generic ECS event payload.
type Event struct {
	Type EventType
	Data any
}

// KnockbackCompleted is the payload of EventKnockbackComplete.
type KnockbackCompleted struct {
	Entity Entity
}

// ContactChanged is the payload of EventLanded and EventAirborne.
type ContactChanged struct {
	Entity Entity
}

// EventQueue is a simple FIFO queue. Events pushed during a tick stay queued
// until a subscriber drains them.
type EventQueue struct {
	items []Event
}

// Push adds an event.
func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
