package metrics

import (
	"sync"
	"sync/atomic"
)

// BasicProvider is an in-memory Provider. It keeps one instrument per
// name and exposes snapshot accessors, so a test or an example driver
// can read the kernel's counters (cycles advanced, events acknowledged,
// ROB depth) without standing up a real metrics backend.
type BasicProvider struct {
	mu         sync.Mutex
	counters   map[string]*BasicCounter
	updowns    map[string]*BasicUpDownCounter
	histograms map[string]*BasicHistogram
	configs    map[string]InstrumentConfig
}

// NewBasicProvider constructs an empty BasicProvider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{
		counters:   make(map[string]*BasicCounter),
		updowns:    make(map[string]*BasicUpDownCounter),
		histograms: make(map[string]*BasicHistogram),
		configs:    make(map[string]InstrumentConfig),
	}
}

// getOrCreate returns m[name], building and registering the instrument
// on first use. Instrument creation happens a handful of times at
// SimManager construction, so a single mutex is plenty; the hot path is
// the instruments' own atomic Add/Record calls, not the lookup.
func getOrCreate[T any](p *BasicProvider, m map[string]T, name string, opts []InstrumentOption, build func() T) T {
	p.mu.Lock()
	defer p.mu.Unlock()
	if inst, ok := m[name]; ok {
		return inst
	}
	var cfg InstrumentConfig
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	p.configs[name] = cfg
	inst := build()
	m[name] = inst
	return inst
}

// Counter returns the monotonic counter registered under name, creating
// it on first use.
func (p *BasicProvider) Counter(name string, opts ...InstrumentOption) Counter {
	return getOrCreate(p, p.counters, name, opts, func() *BasicCounter { return &BasicCounter{} })
}

// UpDownCounter returns the up/down counter registered under name,
// creating it on first use.
func (p *BasicProvider) UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter {
	return getOrCreate(p, p.updowns, name, opts, func() *BasicUpDownCounter { return &BasicUpDownCounter{} })
}

// Histogram returns the histogram registered under name, creating it on
// first use.
func (p *BasicProvider) Histogram(name string, opts ...InstrumentOption) Histogram {
	return getOrCreate(p, p.histograms, name, opts, func() *BasicHistogram { return &BasicHistogram{} })
}

// Config returns the advisory metadata recorded when the named
// instrument was first created.
func (p *BasicProvider) Config(name string) (InstrumentConfig, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	cfg, ok := p.configs[name]
	return cfg, ok
}

// CounterValue returns the current value of the named counter, or zero
// if no such counter has been created.
func (p *BasicProvider) CounterValue(name string) int64 {
	p.mu.Lock()
	c, ok := p.counters[name]
	p.mu.Unlock()
	if !ok {
		return 0
	}
	return c.Snapshot()
}

// UpDownValue returns the current value of the named up/down counter, or
// zero if no such instrument has been created.
func (p *BasicProvider) UpDownValue(name string) int64 {
	p.mu.Lock()
	u, ok := p.updowns[name]
	p.mu.Unlock()
	if !ok {
		return 0
	}
	return u.Snapshot()
}

// BasicCounter is an atomic monotonic counter.
type BasicCounter struct {
	val atomic.Int64
}

// Add increments the counter by n.
func (c *BasicCounter) Add(n int64) { c.val.Add(n) }

// Snapshot returns the current value.
func (c *BasicCounter) Snapshot() int64 { return c.val.Load() }

// BasicUpDownCounter is an atomic counter that moves both ways.
type BasicUpDownCounter struct {
	val atomic.Int64
}

// Add adds n (positive or negative) to the current value.
func (u *BasicUpDownCounter) Add(n int64) { u.val.Add(n) }

// Snapshot returns the current value.
func (u *BasicUpDownCounter) Snapshot() int64 { return u.val.Load() }

// BasicHistogram tracks count, sum, min, and max of recorded
// measurements. It keeps no buckets: for the kernel's use (settle-time
// distributions observed in tests) the aggregate statistics are enough,
// and anything finer belongs in a real backend behind a custom Provider.
type BasicHistogram struct {
	mu    sync.Mutex
	count int64
	sum   float64
	min   float64
	max   float64
}

// Record adds one measurement.
func (h *BasicHistogram) Record(v float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.count == 0 || v < h.min {
		h.min = v
	}
	if h.count == 0 || v > h.max {
		h.max = v
	}
	h.count++
	h.sum += v
}

// HistSnapshot is an immutable view of a BasicHistogram.
type HistSnapshot struct {
	Count int64
	Sum   float64
	Min   float64
	Max   float64
	Mean  float64
}

// Snapshot returns the histogram's aggregate statistics at the time of
// the call. Min, Max, and Mean are zero while Count is zero.
func (h *BasicHistogram) Snapshot() HistSnapshot {
	h.mu.Lock()
	s := HistSnapshot{Count: h.count, Sum: h.sum, Min: h.min, Max: h.max}
	h.mu.Unlock()
	if s.Count > 0 {
		s.Mean = s.Sum / float64(s.Count)
	}
	return s
}
