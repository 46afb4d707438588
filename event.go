package rsim

// EventID uniquely identifies an Event. The manager mints ids strictly
// monotonically via RequestEventID; ids are never reused within a run.
// A uint64 counter cannot wrap before 2^64 events have been minted,
// which at one event per nanosecond is more than five centuries of
// continuous operation.
type EventID uint64

// Cycle is the global simulated clock. It starts at zero, increases by at
// most one per call to SimManager.RunCycle, and never decreases.
type Cycle uint64

// Event is an opaque, time-stamped message with a unique identifier and a
// payload retrievable by the component that knows its concrete type. The
// kernel never inspects Payload(); it exists purely for components to
// exchange domain data over links.
type Event interface {
	// EventID returns the globally unique identifier assigned at creation.
	EventID() EventID

	// ScheduledTime returns the cycle at which this event must be
	// delivered. It is never in the past relative to the cycle at which
	// it was released from the heap.
	ScheduledTime() Cycle

	// SetScheduledTime rewrites the delivery time. It is used only before
	// the event is handed to SimManager.Enqueue; once released into the
	// heap an event is otherwise immutable.
	SetScheduledTime(t Cycle)

	// IsClockEvent reports whether this event is a clock tick minted by
	// the manager itself, as opposed to a component-emitted payload
	// event.
	IsClockEvent() bool

	// Payload returns the opaque event payload. Clock events return nil.
	Payload() any
}

// payloadEvent is the concrete Event implementation used for ordinary,
// component-emitted events carrying a typed payload.
type payloadEvent struct {
	id      EventID
	time    Cycle
	payload any
}

// NewEvent constructs an Event carrying payload, scheduled for delivery at
// scheduledTime. id must come from SimManager.RequestEventID so that the
// global monotonic-id invariant holds.
func NewEvent(id EventID, scheduledTime Cycle, payload any) Event {
	return &payloadEvent{id: id, time: scheduledTime, payload: payload}
}

func (e *payloadEvent) EventID() EventID         { return e.id }
func (e *payloadEvent) ScheduledTime() Cycle     { return e.time }
func (e *payloadEvent) SetScheduledTime(t Cycle) { e.time = t }
func (e *payloadEvent) IsClockEvent() bool       { return false }
func (e *payloadEvent) Payload() any             { return e.payload }

// clockEvent is the zero-payload tick notification SimManager mints once
// per cycle for every registered clock-tick subscriber.
type clockEvent struct {
	id   EventID
	time Cycle
}

// NewClockEvent constructs a clock tick event. Embedders never call this
// directly; SimManager creates one per subscriber per cycle during the
// tick phase of RunCycle.
func NewClockEvent(id EventID, scheduledTime Cycle) Event {
	return &clockEvent{id: id, time: scheduledTime}
}

func (e *clockEvent) EventID() EventID         { return e.id }
func (e *clockEvent) ScheduledTime() Cycle     { return e.time }
func (e *clockEvent) SetScheduledTime(t Cycle) { e.time = t }
func (e *clockEvent) IsClockEvent() bool       { return true }
func (e *clockEvent) Payload() any             { return nil }

// PayloadAs retrieves ev's payload as T. It returns ok == false if ev
// carries no payload of type T (including clock events, whose Payload is
// nil).
func PayloadAs[T any](ev Event) (T, bool) {
	v, ok := ev.Payload().(T)
	return v, ok
}
