package health

// ActorRef is an opaque reference to the actor that caused a health change.
// The State never interprets it; it is only forwarded in events.
type ActorRef uint64

// NoActor is the source of kills that have no originating actor (kill
// volumes, falling out of the level, scripted events).
const NoActor ActorRef = 0

// EventType identifies a health notification.
type EventType string

const (
	EventDamageTaken EventType = "damage_taken"
	EventHealApplied EventType = "heal_applied"
	EventDeath       EventType = "death"
)

// Event is emitted synchronously from the call that caused the transition.
// Amount is the applied (post-clamp) delta, never the requested one.
type Event struct {
	Type    EventType
	Amount  float64
	Source  ActorRef
	Current float64
}

// Handler receives health events.
type Handler func(s *State, evt Event)

// Emitter fans an event out to every subscribed handler in subscription order.
type Emitter struct {
	handlers []subscription
	nextID   int
}

type subscription struct {
	id int
	fn Handler
}

// Subscribe registers h and returns a function that removes it again.
func (e *Emitter) Subscribe(h Handler) (unsubscribe func()) {
	if e == nil || h == nil {
		return func() {}
	}
	e.nextID++
	id := e.nextID
	e.handlers = append(e.handlers, subscription{id: id, fn: h})
	return func() { e.remove(id) }
}

// Len returns the number of subscribed handlers.
func (e *Emitter) Len() int {
	if e == nil {
		return 0
	}
	return len(e.handlers)
}

// Emit sends evt to all handlers.
func (e *Emitter) Emit(s *State, evt Event) {
	if e == nil || len(e.handlers) == 0 {
		return
	}
	// Handlers may unsubscribe while we iterate.
	subs := append([]subscription(nil), e.handlers...)
	for _, sub := range subs {
		sub.fn(s, evt)
	}
}

func (e *Emitter) remove(id int) {
	for i, sub := range e.handlers {
		if sub.id == id {
			e.handlers = append(e.handlers[:i], e.handlers[i+1:]...)
			return
		}
	}
}
