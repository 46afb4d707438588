package dispatcher

import (
	"github.com/rsim-go/rsim/component"
	"github.com/rsim-go/rsim/manager"
)

// NewPartitioned splits components evenly across n SimDispatchers and
// constructs one SimDispatcher per partition, for embedders that want to
// size the dispatcher count independently of the component count instead
// of wiring each dispatcher by hand.
//
// Each component is assigned to exactly one dispatcher (round-robin by
// index), preserving the ownership invariant that no component is
// scheduled on more than one dispatcher. n must be at least 1; a
// partition that would otherwise be empty simply hosts zero components
// and its Run loop becomes a pure termination-vote poll.
func NewPartitioned(m *manager.SimManager, components []component.Component, n int, opts ...Option) []*SimDispatcher {
	if n < 1 {
		n = 1
	}
	partitions := make([][]component.Component, n)
	for i, c := range components {
		partitions[i%n] = append(partitions[i%n], c)
	}
	dispatchers := make([]*SimDispatcher, n)
	for i, p := range partitions {
		dispatchers[i] = New(m, p, opts...)
	}
	return dispatchers
}
