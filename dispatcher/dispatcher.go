// Package dispatcher implements SimDispatcher, the worker that owns a
// disjoint partition of components, polls their inputs, and fires their
// callbacks on one worker goroutine. A dispatcher's units of work (its
// components) are assigned once at startup rather than streamed in, so
// the run loop is a plain round-robin over a fixed slice.
package dispatcher

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/rsim-go/rsim/component"
	"github.com/rsim-go/rsim/manager"
	"github.com/rsim-go/rsim/simerr"
)

// SimDispatcher owns a disjoint subset of components and a handle to the
// shared SimManager. One SimDispatcher runs on one worker goroutine,
// with GOMAXPROCS governing actual parallelism across dispatchers.
type SimDispatcher struct {
	m          *manager.SimManager
	components []component.Component
	logger     zerolog.Logger
}

// New constructs a SimDispatcher hosting components, sharing m with every
// other dispatcher in the simulation.
func New(m *manager.SimManager, components []component.Component, opts ...Option) *SimDispatcher {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &SimDispatcher{m: m, components: components, logger: cfg.Logger}
}

// Components returns the partition of components this dispatcher owns.
// The slice is the dispatcher's own backing array; callers must treat it
// as read-only.
func (d *SimDispatcher) Components() []component.Component {
	return d.components
}

// Init calls Init then Reset on every owned component, once, before any
// dispatcher begins polling. Callers must invoke Init on every
// SimDispatcher in a simulation before calling Run on any of them, since
// a component's Init is where it registers clock subscriptions and
// termination votes the manager needs from cycle zero.
func (d *SimDispatcher) Init() {
	for _, c := range d.components {
		c.Init(d.m)
		c.Reset()
	}
}

// Run polls every owned component once per iteration, round-robin, until
// either ctx is canceled or the manager's termination vote set becomes
// empty. It never blocks: a component with nothing to do simply returns
// immediately from PollRecv, and Run yields the processor between
// rounds (runtime.Gosched) so other goroutines can run. It never sleeps,
// so an idle dispatcher still keeps a CPU busy.
func (d *SimDispatcher) Run(ctx context.Context) {
	for !d.m.SimCanEnd() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		for _, c := range d.components {
			d.pollOne(c)
		}

		runtime.Gosched()
	}
}

// pollOne invokes c.PollRecv, decorating any panic escaping it with the
// offending component's id and the cycle at which it occurred before
// letting it continue to propagate. It never recovers the panic into a
// returned error: a component callback panic is fatal for the whole
// simulation, and converting it into an error value here would silently
// mask a corrupted run.
func (d *SimDispatcher) pollOne(c component.Component) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		cause, ok := r.(error)
		if !ok {
			cause = fmt.Errorf("%v", r)
		}
		d.logger.Error().
			Str("component_id", string(c.ComponentID())).
			Uint64("cycle", uint64(d.m.CurrentCycle())).
			Err(cause).
			Msg("component callback panicked; terminating simulation")
		panic(simerr.Tag(
			fmt.Errorf("%w: %v", simerr.ErrComponentPanic, cause),
			simerr.WithComponentID(c.ComponentID()),
			simerr.WithCycle(d.m.CurrentCycle()),
		))
	}()
	c.PollRecv(d.m)
}
