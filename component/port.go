package component

import (
	"github.com/rsim-go/rsim"
	"github.com/rsim-go/rsim/manager"
	"github.com/rsim-go/rsim/simerr"
)

// ackSend delivers id on ackTx without ever parking the calling
// dispatcher goroutine: it spins on a non-blocking send, the same idiom
// SimManager's drain loop uses to consume acks. The manager is always
// draining this channel in its own spin, so the send succeeds on one of
// the first few attempts in practice.
func ackSend(ackTx chan<- rsim.EventID, id rsim.EventID) {
	for {
		select {
		case ackTx <- id:
			return
		default:
		}
	}
}

// InputPort is the reusable receiver-handle + current-value +
// previous-value + ack-on-poll boilerplate every ordinary (non-clock)
// component input needs. T is the port's payload type; a payload that
// cannot be asserted to T is a wiring mistake between sender and
// receiver, and panics as simerr.ErrPayloadMismatch rather than silently
// zero-valuing the port.
type InputPort[T comparable] struct {
	recv  <-chan rsim.Event
	ackTx chan<- rsim.EventID

	current T
	prev    T
	hasPrev bool

	pending    rsim.EventID
	hasPending bool
}

// NewInputPort constructs an InputPort reading events from recv and
// acknowledging them on ackTx.
func NewInputPort[T comparable](recv <-chan rsim.Event, ackTx chan<- rsim.EventID) *InputPort[T] {
	return &InputPort[T]{recv: recv, ackTx: ackTx}
}

// Poll attempts a single non-blocking receive. received is false if
// nothing was waiting. When received is true, changed reports whether
// the decoded value differs from the value observed on the previous
// successful poll; the very first received value always counts as
// changed, since there is no prior value to compare against.
//
// Poll does not itself acknowledge the event: the caller must invoke its
// combinational callback (when changed) and then call Ack, in that
// order. Acking early would let the manager believe the cycle has
// settled while the callback's own same-cycle emissions are still
// unsent, which can turn into a spurious time fault once they land on
// the heap.
func (p *InputPort[T]) Poll() (changed, received bool) {
	select {
	case ev := <-p.recv:
		v, ok := rsim.PayloadAs[T](ev)
		if !ok {
			panic(simerr.Tag(
				simerr.ErrPayloadMismatch,
				simerr.WithEventID(ev.EventID()),
			))
		}
		changed = !p.hasPrev || v != p.prev
		p.current = v
		p.prev = v
		p.hasPrev = true
		p.pending = ev.EventID()
		p.hasPending = true
		return changed, true
	default:
		return false, false
	}
}

// Ack acknowledges the event most recently returned by Poll. Callers
// must call it exactly once per Poll that returned received == true,
// after any on_comb callback triggered by that poll has completed.
func (p *InputPort[T]) Ack() {
	if !p.hasPending {
		return
	}
	ackSend(p.ackTx, p.pending)
	p.hasPending = false
}

// Value returns the most recently received payload.
func (p *InputPort[T]) Value() T { return p.current }

// ClockPort is the clock-tick analogue of InputPort: it carries no
// payload and never participates in change detection, since a clock
// event's only meaning is "a tick occurred".
type ClockPort struct {
	recv  <-chan rsim.Event
	ackTx chan<- rsim.EventID

	pending    rsim.EventID
	hasPending bool
}

// NewClockPort constructs a ClockPort reading tick events from recv.
func NewClockPort(recv <-chan rsim.Event, ackTx chan<- rsim.EventID) *ClockPort {
	return &ClockPort{recv: recv, ackTx: ackTx}
}

// Poll attempts a single non-blocking receive, returning true if a tick
// was consumed this call. As with InputPort.Poll, the tick is not acked
// here: the caller must run its clock callback, then any combinational
// callback the tick also triggers, then call Ack.
func (p *ClockPort) Poll() bool {
	select {
	case ev := <-p.recv:
		p.pending = ev.EventID()
		p.hasPending = true
		return true
	default:
		return false
	}
}

// Ack acknowledges the tick most recently consumed by Poll.
func (p *ClockPort) Ack() {
	if !p.hasPending {
		return
	}
	ackSend(p.ackTx, p.pending)
	p.hasPending = false
}

// OutputPort bundles a destination channel with the manager handle
// needed to mint event ids and read the current cycle, so a component
// can emit an event with one call instead of hand-assembling an
// rsim.Event and rsim.Task every time.
type OutputPort struct {
	dest rsim.Destination
	m    *manager.SimManager
}

// NewOutputPort constructs an OutputPort that emits onto dest using m to
// mint event ids and timestamps.
func NewOutputPort(m *manager.SimManager, dest rsim.Destination) *OutputPort {
	return &OutputPort{dest: dest, m: m}
}

// Emit schedules payload for delivery at the current cycle, the
// ordinary combinational output case.
func (p *OutputPort) Emit(payload any) {
	p.EmitAt(payload, p.m.CurrentCycle())
}

// EmitAt schedules payload for delivery at an explicit future cycle
// (e.g. a fixed-latency link scheduling current_cycle + N).
func (p *OutputPort) EmitAt(payload any, at rsim.Cycle) {
	id := p.m.RequestEventID()
	ev := rsim.NewEvent(id, at, payload)
	p.m.Enqueue(rsim.NewTask(ev, p.dest))
}
