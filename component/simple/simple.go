// Package simple provides a small set of reference components (Sender,
// Link, Receiver, and Loopback) used by the integration tests and the
// cmd/rsim-example driver to exercise a full clocked producer/consumer
// pipeline end to end. The kernel itself never depends on this package.
package simple

import (
	"github.com/rsim-go/rsim"
	"github.com/rsim-go/rsim/component"
	"github.com/rsim-go/rsim/manager"
)

// Packet is the payload every component in this package sends and
// receives: a packet sequence number and whether it is the last packet
// in the stream.
type Packet struct {
	ID     uint64
	IsLast bool
}

// clockTickBuffer sizes the internal clock channel every self-clocked
// component in this package allocates. One slot is enough: the manager
// never releases a second clock tick to a subscriber before the first has
// been polled and acked, since doing so would require the cycle to have
// advanced twice without the drain phase completing.
const clockTickBuffer = 1

// Sender emits one Packet per clock tick for NumPackets ticks, then
// votes to let the simulation end. It is a primary component: it
// registers a do-not-end vote at Init and withdraws it once its last
// packet has been sent. The clock channel is allocated internally since
// no other component ever needs to share it.
type Sender struct {
	id         rsim.ComponentID
	NumPackets uint64
	Output     *component.OutputPort

	clockCh chan rsim.Event
	clock   *component.ClockPort

	sentCount uint64
}

// NewSender constructs a Sender with the given identity, emitting onto
// dest, acknowledging received clock ticks via ackTx.
func NewSender(id rsim.ComponentID, m *manager.SimManager, numPackets uint64, dest rsim.Destination, ackTx chan<- rsim.EventID) *Sender {
	clockCh := make(chan rsim.Event, clockTickBuffer)
	return &Sender{
		id:         id,
		NumPackets: numPackets,
		Output:     component.NewOutputPort(m, dest),
		clockCh:    clockCh,
		clock:      component.NewClockPort(clockCh, ackTx),
	}
}

func (s *Sender) ComponentID() rsim.ComponentID { return s.id }

func (s *Sender) Init(m *manager.SimManager) {
	m.RegisterClockTick(s.clockCh)
	m.RegisterDoNotEnd(s.id)
}

func (s *Sender) Reset() { s.sentCount = 0 }

func (s *Sender) PollRecv(m *manager.SimManager) {
	if s.clock.Poll() {
		s.onClock(m)
		s.clock.Ack()
	}
}

// onClock emits a 10-cycle-latency packet on every tick until NumPackets
// have been sent, after which the sender withdraws its do-not-end vote.
// sentCount increments on every tick regardless, including the tick
// immediately after the last packet, which only registers the vote.
func (s *Sender) onClock(m *manager.SimManager) {
	if s.sentCount < s.NumPackets {
		isLast := s.sentCount == s.NumPackets-1
		s.Output.EmitAt(Packet{ID: s.sentCount, IsLast: isLast}, m.CurrentCycle()+10)
	} else {
		m.RegisterCanEnd(s.id)
	}
	s.sentCount++
}

// Link forwards whatever it last received on Input to Output at the
// current cycle, unchanged. It has no clock and no termination vote: it
// exists purely to relay.
type Link struct {
	id     rsim.ComponentID
	Input  *component.InputPort[Packet]
	Output *component.OutputPort
}

// NewLink constructs a Link relaying recv to dest.
func NewLink(id rsim.ComponentID, m *manager.SimManager, recv <-chan rsim.Event, dest rsim.Destination, ackTx chan<- rsim.EventID) *Link {
	return &Link{
		id:     id,
		Input:  component.NewInputPort[Packet](recv, ackTx),
		Output: component.NewOutputPort(m, dest),
	}
}

func (l *Link) ComponentID() rsim.ComponentID { return l.id }
func (l *Link) Init(*manager.SimManager)      {}
func (l *Link) Reset()                        {}

func (l *Link) PollRecv(m *manager.SimManager) {
	changed, received := l.Input.Poll()
	if !received {
		return
	}
	if changed {
		l.onComb(m)
	}
	l.Input.Ack()
}

func (l *Link) onComb(*manager.SimManager) {
	l.Output.Emit(l.Input.Value())
}

// Receiver consumes Packets and votes to let the simulation end once it
// observes IsLast. It is a primary component.
type Receiver struct {
	id    rsim.ComponentID
	Input *component.InputPort[Packet]

	// Received accumulates, in arrival order, the id of every packet whose
	// arrival changed the input value, for assertions in tests.
	Received []uint64
}

// NewReceiver constructs a Receiver reading from recv.
func NewReceiver(id rsim.ComponentID, recv <-chan rsim.Event, ackTx chan<- rsim.EventID) *Receiver {
	return &Receiver{id: id, Input: component.NewInputPort[Packet](recv, ackTx)}
}

func (r *Receiver) ComponentID() rsim.ComponentID { return r.id }

func (r *Receiver) Init(m *manager.SimManager) { m.RegisterDoNotEnd(r.id) }
func (r *Receiver) Reset()                     { r.Received = nil }

func (r *Receiver) PollRecv(m *manager.SimManager) {
	changed, received := r.Input.Poll()
	if !received {
		return
	}
	if changed {
		r.onComb(m)
	}
	r.Input.Ack()
}

func (r *Receiver) onComb(m *manager.SimManager) {
	p := r.Input.Value()
	r.Received = append(r.Received, p.ID)
	if p.IsLast {
		m.RegisterCanEnd(r.id)
	}
}

// Loopback both receives and emits Packets on its own clock. It is used
// to exercise a feedback-capable wiring, the topology the edge-triggered
// "fire only on change" rule exists to keep from storming: whatever
// Input is wired to, this component will only re-run its combinational
// callback when the observed value changes.
type Loopback struct {
	id         rsim.ComponentID
	NumPackets uint64
	Input      *component.InputPort[Packet]
	Output     *component.OutputPort

	clockCh chan rsim.Event
	clock   *component.ClockPort

	sentCount uint64
}

// NewLoopback constructs a Loopback relaying inputRecv to dest, emitting
// on its own clock for numPackets ticks.
func NewLoopback(id rsim.ComponentID, m *manager.SimManager, numPackets uint64, inputRecv <-chan rsim.Event, dest rsim.Destination, ackTx chan<- rsim.EventID) *Loopback {
	clockCh := make(chan rsim.Event, clockTickBuffer)
	return &Loopback{
		id:         id,
		NumPackets: numPackets,
		Input:      component.NewInputPort[Packet](inputRecv, ackTx),
		Output:     component.NewOutputPort(m, dest),
		clockCh:    clockCh,
		clock:      component.NewClockPort(clockCh, ackTx),
	}
}

func (lb *Loopback) ComponentID() rsim.ComponentID { return lb.id }

func (lb *Loopback) Init(m *manager.SimManager) {
	m.RegisterClockTick(lb.clockCh)
	m.RegisterDoNotEnd(lb.id)
}

func (lb *Loopback) Reset() { lb.sentCount = 0 }

func (lb *Loopback) PollRecv(m *manager.SimManager) {
	if lb.clock.Poll() {
		lb.onClock(m)
		lb.clock.Ack()
	}
	changed, received := lb.Input.Poll()
	if received {
		if changed {
			lb.onComb(m)
		}
		lb.Input.Ack()
	}
}

func (lb *Loopback) onClock(m *manager.SimManager) {
	if lb.sentCount < lb.NumPackets {
		isLast := lb.sentCount == lb.NumPackets-1
		lb.Output.EmitAt(Packet{ID: lb.sentCount, IsLast: isLast}, m.CurrentCycle()+1)
	} else {
		m.RegisterCanEnd(lb.id)
	}
	lb.sentCount++
}

func (lb *Loopback) onComb(*manager.SimManager) {
	// Deliberately empty: receiving is the observable effect. Not
	// re-emitting here keeps the feedback path from storming while the
	// edge-triggered dispatch above still exercises change detection.
}
