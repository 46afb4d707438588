// Package simerr defines the kernel's fatal-error taxonomy.
//
// The kernel recognizes a small set of programming-error conditions that
// indicate the simulation's invariants have been violated: a time fault
// (an event scheduled into the past), a phantom ack (an ack for an event
// id the reorder buffer never released), and a poisoned internal lock
// (a mutex left locked by a panicking goroutine). All three are fatal:
// this is a simulator, and reproducibility under failure means crashing
// loudly rather than masking a corrupted run.
package simerr

import "errors"

// Namespace prefixes every sentinel error's message.
const Namespace = "rsim"

var (
	// ErrTimeFault is raised when the event at the heap's head has a
	// ScheduledTime strictly before the current cycle: a component
	// emitted an event into the past.
	ErrTimeFault = errors.New(Namespace + ": time fault: event scheduled before current cycle")

	// ErrPhantomAck is raised when an ack arrives for an event id that is
	// not present in the reorder buffer: either a duplicate ack or a
	// corrupted id path.
	ErrPhantomAck = errors.New(Namespace + ": phantom ack: event id not in reorder buffer")

	// ErrLockPoisoned names the condition of an internal mutex left in an
	// inconsistent state by a panicking component callback. Nothing in
	// this module raises it: Go's sync.Mutex has no poisoned state to
	// detect, and no manager lock is held while a component callback runs.
	ErrLockPoisoned = errors.New(Namespace + ": internal lock poisoned by panicking component")

	// ErrPayloadMismatch is raised when a component's input port receives
	// an event whose payload cannot be asserted to the port's declared
	// type.
	ErrPayloadMismatch = errors.New(Namespace + ": event payload does not match port type")

	// ErrAckChannelClosed is terminal: the manager's ack source channel
	// has closed while a run was still in progress.
	ErrAckChannelClosed = errors.New(Namespace + ": ack channel closed")

	// ErrComponentPanic wraps a recovered panic from inside a component
	// callback. It is never swallowed and converted into an error return:
	// it always terminates the simulation.
	ErrComponentPanic = errors.New(Namespace + ": component callback panicked")

	// ErrProxyDeliveryFailed is raised when SimManager.ProxyEvent cannot
	// deliver its event, whether the destination was full or closed.
	// Unlike an ordinary heap-released event (which retries on full, or
	// drops on closed), a proxy injection is a deliberate, caller-driven
	// stimulus where the destination is expected to be ready, so any
	// failure is treated as a caller error.
	ErrProxyDeliveryFailed = errors.New(Namespace + ": proxy_event delivery failed")
)
