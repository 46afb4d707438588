package manager

import (
	"github.com/rs/zerolog"

	"github.com/rsim-go/rsim/metrics"
)

// Option configures a SimManager; pass options to New(ackRx, opts...).
type Option func(*config)

// WithHeapCapacityHint preallocates the event heap's backing array.
func WithHeapCapacityHint(n int) Option {
	return func(c *config) { c.HeapCapacityHint = n }
}

// WithLogger sets the structured logger that receives warnings for
// events dropped on closed destinations.
func WithLogger(l zerolog.Logger) Option {
	return func(c *config) { c.Logger = l }
}

// WithMetricsProvider sets the metrics.Provider used to record cycle
// counts, ROB depth, and event throughput.
func WithMetricsProvider(p metrics.Provider) Option {
	return func(c *config) { c.Metrics = p }
}

// WithTracer registers a Tracer to be notified of every ack and every
// cycle settle, for deterministic commit-log replay. See package
// tracelog.
func WithTracer(t Tracer) Option {
	return func(c *config) { c.Tracer = t }
}
