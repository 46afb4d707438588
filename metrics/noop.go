package metrics

// NoopProvider discards every measurement. It is the default provider,
// so constructing a SimManager without WithMetricsProvider costs nothing
// per cycle beyond a handful of no-op method calls.
type NoopProvider struct{}

// NewNoopProvider constructs a Provider that discards all metrics.
func NewNoopProvider() NoopProvider { return NoopProvider{} }

func (NoopProvider) Counter(string, ...InstrumentOption) Counter             { return noop{} }
func (NoopProvider) UpDownCounter(string, ...InstrumentOption) UpDownCounter { return noop{} }
func (NoopProvider) Histogram(string, ...InstrumentOption) Histogram         { return noop{} }

// noop satisfies all three instrument interfaces.
type noop struct{}

func (noop) Add(int64)      {}
func (noop) Record(float64) {}
