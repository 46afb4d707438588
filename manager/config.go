package manager

import (
	"github.com/rs/zerolog"

	"github.com/rsim-go/rsim/metrics"
)

// config holds SimManager construction parameters, populated by the
// functional options in options.go.
type config struct {
	// HeapCapacityHint preallocates the event heap's backing slice. Zero
	// (default) lets it grow naturally. Set this when the embedder knows
	// roughly how many events will be in flight at once, to avoid heap
	// growth reallocation churn during the first few cycles.
	HeapCapacityHint int

	// Logger receives a warn-level entry for every event dropped because
	// its destination was closed. The manager logs nothing else: fatal
	// kernel errors are raised as panics and cycle transitions are not
	// logged. Defaults to a no-op logger.
	Logger zerolog.Logger

	// Metrics receives cycle-count, ROB-depth, and event-throughput
	// instruments. Defaults to metrics.NoopProvider.
	Metrics metrics.Provider

	// Tracer, if set, is notified every time an event is acknowledged and
	// at the end of every RunCycle, for the cycle just run (RunCycleEnd
	// sends no settle notification), so that a
	// tracelog.Recorder can replay acks in deterministic
	// (ScheduledTime, EventID) order despite concurrent dispatcher
	// goroutines acking out of order. Defaults to nil (disabled).
	Tracer Tracer
}

// Tracer receives ack and cycle-settle notifications from SimManager. See
// package tracelog for the reference implementation that turns these
// notifications into a deterministically ordered commit log.
type Tracer interface {
	RecordAck(cycle uint64, eventID uint64)
	SettleCycle(cycle uint64)
}

// defaultConfig centralizes default values, applied both by New (when no
// options narrow them) and by the options builder's starting point.
func defaultConfig() config {
	return config{
		HeapCapacityHint: 0,
		Logger:           zerolog.Nop(),
		Metrics:          metrics.NewNoopProvider(),
		Tracer:           nil,
	}
}
