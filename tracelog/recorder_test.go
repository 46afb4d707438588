package tracelog

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecorder_FlushesInEventIDOrderRegardlessOfArrivalOrder(t *testing.T) {
	r := NewRecorder()

	r.RecordAck(1, 7)
	r.RecordAck(1, 2)
	r.RecordAck(1, 5)
	r.SettleCycle(1)

	require.Equal(t, []Entry{
		{Cycle: 1, EventID: 2},
		{Cycle: 1, EventID: 5},
		{Cycle: 1, EventID: 7},
	}, r.Log())
}

func TestRecorder_SettlingACycleTwiceIsANoOpTheSecondTime(t *testing.T) {
	r := NewRecorder()
	r.RecordAck(0, 1)
	r.SettleCycle(0)
	r.SettleCycle(0)

	require.Len(t, r.Log(), 1)
}

func TestRecorder_MultipleCyclesStayInCycleOrder(t *testing.T) {
	r := NewRecorder()
	r.RecordAck(0, 3)
	r.SettleCycle(0)
	r.RecordAck(1, 1)
	r.SettleCycle(1)

	require.Equal(t, []Entry{
		{Cycle: 0, EventID: 3},
		{Cycle: 1, EventID: 1},
	}, r.Log())
}

// TestRecorder_CommitLogIsDeterministicAcrossConcurrentAckers replays
// 10,000 events, acked across ten cycles by several goroutines in
// whatever order the scheduler produces, and asserts the committed log
// comes out in exactly (cycle, event id) order every time.
func TestRecorder_CommitLogIsDeterministicAcrossConcurrentAckers(t *testing.T) {
	r := NewRecorder()

	const cycles = 10
	const perCycle = 1000
	const ackers = 4

	for c := uint64(0); c < cycles; c++ {
		var wg sync.WaitGroup
		wg.Add(ackers)
		for w := 0; w < ackers; w++ {
			w := w
			go func() {
				defer wg.Done()
				for i := w; i < perCycle; i += ackers {
					r.RecordAck(c, c*perCycle+uint64(i))
				}
			}()
		}
		wg.Wait()
		r.SettleCycle(c)
	}

	log := r.Log()
	require.Len(t, log, cycles*perCycle)
	for i, e := range log {
		require.Equal(t, uint64(i/perCycle), e.Cycle)
		require.Equal(t, uint64(i), e.EventID)
	}
}

func TestRecorder_ConcurrentAcksAreNeverLost(t *testing.T) {
	r := NewRecorder()

	const n = 500
	var wg sync.WaitGroup
	wg.Add(n)
	for i := 0; i < n; i++ {
		i := i
		go func() {
			defer wg.Done()
			r.RecordAck(0, uint64(i))
		}()
	}
	wg.Wait()
	r.SettleCycle(0)

	log := r.Log()
	require.Len(t, log, n)
	for i, e := range log {
		require.Equal(t, uint64(i), e.EventID)
	}
}
