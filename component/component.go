// Package component defines the contract every simulated component must
// satisfy to be hosted by a SimDispatcher, plus the small set of reusable
// port abstractions (port.go) that every concrete component is built
// from.
//
// The receiver-handle + current-value + previous-value + ack-on-poll
// boilerplate is identical for every input port of every component, so
// it lives in InputPort[T]/ClockPort/OutputPort rather than being
// duplicated per component: a component embeds the ports it needs and
// calls their Poll/Emit methods directly from its own PollRecv.
package component

import (
	"github.com/rsim-go/rsim"
	"github.com/rsim-go/rsim/manager"
)

// Component is the contract SimDispatcher requires of every component it
// hosts: a stable identity, a one-time setup/reset lifecycle, and a
// per-tick poll that drains input ports and fires whatever callbacks
// those ports' changes warrant.
type Component interface {
	// ComponentID returns the component's stable, embedder-assigned
	// identity, used for termination voting and error correlation.
	ComponentID() rsim.ComponentID

	// Init performs one-time setup: registering for clock ticks and/or
	// casting a do-not-end vote, if applicable. Called once per
	// component before any dispatcher begins polling it.
	Init(m *manager.SimManager)

	// Reset returns internal state to its default value. Called once,
	// immediately after Init, before the first poll.
	Reset()

	// PollRecv is the per-tick work function: for every input port,
	// attempt a non-blocking receive, decode/compare/ack as described
	// in InputPort.Poll, and invoke whatever on-change or on-clock
	// callback the component defines. Must not block.
	PollRecv(m *manager.SimManager)
}
