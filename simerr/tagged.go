package simerr

import (
	"errors"
	"fmt"

	"github.com/rsim-go/rsim"
)

// KernelError decorates a fatal error with the correlation data needed to
// diagnose it: which event, which component, and at which cycle the
// invariant violation was observed.
type KernelError interface {
	error
	Unwrap() error
	EventID() (rsim.EventID, bool)
	ComponentID() (rsim.ComponentID, bool)
	Cycle() (rsim.Cycle, bool)
}

type kernelError struct {
	err         error
	eventID     rsim.EventID
	hasEventID  bool
	componentID rsim.ComponentID
	hasComp     bool
	cycle       rsim.Cycle
	hasCycle    bool
}

// Tag wraps err with correlation metadata. With no options applied it
// still wraps err: Error, errors.Is and errors.As behave as for err, and
// the Extract* helpers report no metadata. Callers build up correlation
// with the With* option funcs.
func Tag(err error, opts ...TagOption) error {
	if err == nil {
		return nil
	}
	ke := &kernelError{err: err}
	for _, opt := range opts {
		opt(ke)
	}
	return ke
}

// TagOption attaches one piece of correlation metadata to a KernelError.
type TagOption func(*kernelError)

// WithEventID attaches the offending event's id.
func WithEventID(id rsim.EventID) TagOption {
	return func(ke *kernelError) { ke.eventID, ke.hasEventID = id, true }
}

// WithComponentID attaches the offending component's id.
func WithComponentID(id rsim.ComponentID) TagOption {
	return func(ke *kernelError) { ke.componentID, ke.hasComp = id, true }
}

// WithCycle attaches the cycle at which the error was observed.
func WithCycle(c rsim.Cycle) TagOption {
	return func(ke *kernelError) { ke.cycle, ke.hasCycle = c, true }
}

func (e *kernelError) Error() string { return e.err.Error() }
func (e *kernelError) Unwrap() error { return e.err }

func (e *kernelError) EventID() (rsim.EventID, bool) { return e.eventID, e.hasEventID }

func (e *kernelError) ComponentID() (rsim.ComponentID, bool) { return e.componentID, e.hasComp }

func (e *kernelError) Cycle() (rsim.Cycle, bool) { return e.cycle, e.hasCycle }

func (e *kernelError) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = fmt.Fprintf(s, "kernel error")
			if e.hasCycle {
				_, _ = fmt.Fprintf(s, " @cycle=%d", e.cycle)
			}
			if e.hasComp {
				_, _ = fmt.Fprintf(s, " component=%s", e.componentID)
			}
			if e.hasEventID {
				_, _ = fmt.Fprintf(s, " event=%d", e.eventID)
			}
			_, _ = fmt.Fprintf(s, ": %+v", e.err)
			return
		}
		fallthrough
	case 's':
		_, _ = fmt.Fprint(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// ExtractEventID returns the event id carried by err, if any KernelError
// in its chain has one.
func ExtractEventID(err error) (rsim.EventID, bool) {
	var ke KernelError
	if errors.As(err, &ke) {
		return ke.EventID()
	}
	return 0, false
}

// ExtractComponentID returns the component id carried by err, if any.
func ExtractComponentID(err error) (rsim.ComponentID, bool) {
	var ke KernelError
	if errors.As(err, &ke) {
		return ke.ComponentID()
	}
	return "", false
}

// ExtractCycle returns the cycle carried by err, if any.
func ExtractCycle(err error) (rsim.Cycle, bool) {
	var ke KernelError
	if errors.As(err, &ke) {
		return ke.Cycle()
	}
	return 0, false
}
