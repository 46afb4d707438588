package pool

import "sync"

// dynamic is backed by sync.Pool. Per-cycle event volume is
// unpredictable: a burst of combinational settling can emit thousands of
// same-cycle events, then taper to near zero. There is no natural upper
// bound to size a fixed free-list against, and sync.Pool already
// discards entries under memory pressure, so the dynamic pool is the
// only implementation provided.
type dynamic[T any] struct {
	p sync.Pool
}

// NewDynamic constructs a Pool that calls factory whenever it is empty.
func NewDynamic[T any](factory func() T) Pool[T] {
	return &dynamic[T]{p: sync.Pool{New: func() any { return factory() }}}
}

func (d *dynamic[T]) Get() T  { return d.p.Get().(T) }
func (d *dynamic[T]) Put(v T) { d.p.Put(v) }
