package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Provider conformance for both implementations.
var (
	_ Provider = (*BasicProvider)(nil)
	_ Provider = NoopProvider{}
)

func TestBasicProvider_ReturnsSameInstrumentForSameName(t *testing.T) {
	p := NewBasicProvider()

	a := p.Counter("rsim_cycles_total")
	b := p.Counter("rsim_cycles_total")
	require.Same(t, a, b)

	a.Add(2)
	b.Add(3)
	require.Equal(t, int64(5), p.CounterValue("rsim_cycles_total"))
}

func TestBasicProvider_DistinctNamesAreIndependent(t *testing.T) {
	p := NewBasicProvider()

	p.Counter("rsim_cycles_total").Add(7)
	p.Counter("rsim_events_processed_total").Add(1)

	require.Equal(t, int64(7), p.CounterValue("rsim_cycles_total"))
	require.Equal(t, int64(1), p.CounterValue("rsim_events_processed_total"))
	require.Equal(t, int64(0), p.CounterValue("never_created"))
}

func TestBasicProvider_UpDownCounterTracksROBStyleDepth(t *testing.T) {
	p := NewBasicProvider()
	g := p.UpDownCounter("rsim_rob_depth")

	// Release three events, ack two.
	g.Add(1)
	g.Add(1)
	g.Add(1)
	g.Add(-1)
	g.Add(-1)

	require.Equal(t, int64(1), p.UpDownValue("rsim_rob_depth"))
}

func TestBasicProvider_RecordsInstrumentConfigOnFirstUse(t *testing.T) {
	p := NewBasicProvider()

	p.Histogram("rsim_cycle_settle_seconds",
		WithUnit("seconds"),
		WithDescription("wall-clock time to settle one cycle"))

	cfg, ok := p.Config("rsim_cycle_settle_seconds")
	require.True(t, ok)
	require.Equal(t, "seconds", cfg.Unit)
	require.Equal(t, "wall-clock time to settle one cycle", cfg.Description)

	_, ok = p.Config("never_created")
	require.False(t, ok)
}

func TestBasicHistogram_SnapshotAggregates(t *testing.T) {
	h := &BasicHistogram{}

	require.Equal(t, HistSnapshot{}, h.Snapshot())

	h.Record(2.0)
	h.Record(6.0)
	h.Record(4.0)

	s := h.Snapshot()
	require.Equal(t, int64(3), s.Count)
	require.Equal(t, 12.0, s.Sum)
	require.Equal(t, 2.0, s.Min)
	require.Equal(t, 6.0, s.Max)
	require.Equal(t, 4.0, s.Mean)
}

// TestBasicProvider_ConcurrentUse hammers one counter from many
// goroutines, the same shape as every dispatcher acking into the
// manager's event counter at once.
func TestBasicProvider_ConcurrentUse(t *testing.T) {
	p := NewBasicProvider()

	const workers = 16
	const perWorker = 1000

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			c := p.Counter("rsim_events_processed_total")
			for j := 0; j < perWorker; j++ {
				c.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(workers*perWorker), p.CounterValue("rsim_events_processed_total"))
}
