package event

// Handler reacts to a published event.
type Handler func(Event)

// Hub dispatches events synchronously to the handlers registered for their type.
// It is owned by a single simulation and is not safe for concurrent use.
type Hub struct {
	handlers map[Type][]Handler
}

// NewHub creates a hub with no handlers.
func NewHub() *Hub {
	return &Hub{handlers: make(map[Type][]Handler)}
}

// On registers h for events of type t. Handlers run in registration order.
func (h *Hub) On(t Type, fn Handler) {
	h.handlers[t] = append(h.handlers[t], fn)
}

// Emit runs every handler registered for e's type before returning.
// Events nobody listens to are dropped.
func (h *Hub) Emit(e Event) {
	if e == nil {
		return
	}
	for _, fn := range h.handlers[e.Type()] {
		fn(e)
	}
}

// Queue collects events to publish later, in the order they were raised.
type Queue struct {
	events []Event
}

// Push appends an event.
func (q *Queue) Push(e Event) {
	q.events = append(q.events, e)
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	return len(q.events)
}

// Flush emits every pending event through hub and empties the queue.
// Events pushed by handlers during the flush are emitted in the same call.
func (q *Queue) Flush(hub *Hub) int {
	n := 0
	for len(q.events) > 0 {
		e := q.events[0]
		q.events = q.events[1:]
		hub.Emit(e)
		n++
	}
	q.events = nil
	return n
}
