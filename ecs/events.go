package ecs

import "github.com/milk9111/vitals/health"

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// EventTypeHealth tags events whose Data is a HealthEvent.
const EventTypeHealth = "health"

// HealthEvent is a health.Event attributed to the entity that owns the state.
type HealthEvent struct {
	Entity Entity
	health.Event
}

// EventQueue is a simple FIFO queue.
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

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// HealthEvents returns the queued health events, in emission order.
func (q *EventQueue) HealthEvents() []HealthEvent {
	if q == nil {
		return nil
	}
	var out []HealthEvent
	for _, evt := range q.items {
		if evt.Type != EventTypeHealth {
			continue
		}
		if he, ok := evt.Data.(HealthEvent); ok {
			out = append(out, he)
		}
	}
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
