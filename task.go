package rsim

// Destination is the channel an event is delivered on. It is a
// single-producer/multi-consumer FIFO in the sense that exactly one Task
// holds a given Event at a time (move semantics across the channel send),
// while several components may share one underlying channel as fan-in
// consumers in test harnesses. Sends are always non-blocking (select with
// a default case) so the manager's drain loop never stalls on a full or
// abandoned destination.
type Destination chan<- Event

// Task bundles an Event with its Destination. Tasks are heap-ordered by
// (ScheduledTime, EventID): earliest time first, ties broken by event id
// so that the ordering is total and therefore reproducible across runs
// given identical inputs.
type Task struct {
	Event       Event
	Destination Destination
}

// NewTask constructs a Task for ev, to be delivered on dst.
func NewTask(ev Event, dst Destination) *Task {
	return &Task{Event: ev, Destination: dst}
}

// Less reports whether t sorts before other in the event heap: earlier
// ScheduledTime first, ties broken by the (monotonically assigned, hence
// order-preserving) EventID.
func (t *Task) Less(other *Task) bool {
	if t.Event.ScheduledTime() != other.Event.ScheduledTime() {
		return t.Event.ScheduledTime() < other.Event.ScheduledTime()
	}
	return t.Event.EventID() < other.Event.EventID()
}
