// Package rsim implements the core of a parallel, cycle-accurate
// discrete-event simulation kernel for hardware-style systems-on-chip
// built from small components that exchange typed events over directed
// links.
//
// The kernel is organized as four cooperating pieces, in dependency
// order:
//
//   - Event and Task (this package): an opaque, time-stamped message
//     and its destination.
//   - SimManager (package manager): the global clock, event heap,
//     pending-ack reorder buffer, clock-tick subscribers, and
//     termination registry.
//   - SimDispatcher (package dispatcher): a worker that owns a disjoint
//     partition of components and drains them every cycle.
//   - Component (package component): the contract every hosted
//     component implements.
//
// This package only carries the data types shared by all of them; see
// the subpackages for behavior.
package rsim
