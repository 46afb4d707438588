// Package metrics gives SimManager a small,
// provider-agnostic way to record cycle counts, reorder-buffer depth,
// and event throughput without committing the kernel to any particular
// metrics backend. An embedder that already runs OpenTelemetry or
// Prometheus implements Provider over its own client; everyone else uses
// BasicProvider (tests, examples) or the no-op default.
package metrics

// Provider constructs instruments. Implementations must be safe for
// concurrent use and must return the same instrument for the same name.
type Provider interface {
	Counter(name string, opts ...InstrumentOption) Counter
	UpDownCounter(name string, opts ...InstrumentOption) UpDownCounter
	Histogram(name string, opts ...InstrumentOption) Histogram
}

// Counter records monotonic counts, e.g. cycles advanced or events
// acknowledged. Methods must be safe for concurrent use.
type Counter interface {
	Add(n int64)
}

// UpDownCounter records values that move both ways, e.g. the number of
// released-but-unacknowledged events currently in the reorder buffer.
// Methods must be safe for concurrent use.
type UpDownCounter interface {
	Add(n int64)
}

// Histogram records a distribution of float64 measurements, e.g. the
// wall-clock seconds a cycle took to settle. Methods must be safe for
// concurrent use.
type Histogram interface {
	Record(v float64)
}

// InstrumentConfig carries advisory instrument metadata. Providers may
// surface it to their backend or ignore it entirely.
type InstrumentConfig struct {
	Description string
	Unit        string
}

// InstrumentOption mutates InstrumentConfig.
type InstrumentOption func(*InstrumentConfig)

// WithDescription sets an advisory description for the instrument.
func WithDescription(desc string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Description = desc }
}

// WithUnit sets an advisory unit for the instrument (e.g. "1",
// "seconds").
func WithUnit(unit string) InstrumentOption {
	return func(c *InstrumentConfig) { c.Unit = unit }
}
