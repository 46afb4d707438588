// Package tracelog implements Recorder, a deterministic commit-log
// builder that satisfies manager.Tracer. The kernel itself persists
// nothing; Recorder is the embedder-side piece that turns the manager's
// ack notifications into a replayable trace.
//
// Acks arrive at the manager from however many SimDispatcher goroutines
// are running concurrently, so within a single cycle they can be
// observed in any order even though the simulation itself is
// deterministic. Recorder buffers each cycle's acks until SettleCycle
// reports that cycle is done, then flushes them sorted by event id,
// turning "deterministic up to observation order" into a literally
// deterministic, replayable log.
package tracelog

import (
	"fmt"
	"sort"
	"sync"
)

// Entry is one committed line of the trace: an event acknowledged at a
// given cycle.
type Entry struct {
	Cycle   uint64
	EventID uint64
}

// Recorder accumulates Entry values in deterministic (cycle, event id)
// order. It implements manager.Tracer; pass it to a SimManager via
// manager.WithTracer.
type Recorder struct {
	mu      sync.Mutex
	pending map[uint64][]uint64 // cycle -> unsorted event ids acked this cycle
	log     []Entry
}

// NewRecorder constructs an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{pending: make(map[uint64][]uint64)}
}

// RecordAck buffers eventID as acked during cycle. Safe for concurrent
// use by multiple dispatcher goroutines acking independently.
func (r *Recorder) RecordAck(cycle uint64, eventID uint64) {
	r.mu.Lock()
	r.pending[cycle] = append(r.pending[cycle], eventID)
	r.mu.Unlock()
}

// SettleCycle flushes every ack buffered for cycle into the committed
// log, sorted by event id, then discards the buffer for that cycle.
// Calling SettleCycle twice for the same cycle (which SimManager never
// does, but a test harness driving Recorder directly might) simply
// flushes nothing the second time.
func (r *Recorder) SettleCycle(cycle uint64) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := r.pending[cycle]
	if len(ids) == 0 {
		return
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		r.log = append(r.log, Entry{Cycle: cycle, EventID: id})
	}
	delete(r.pending, cycle)
}

// Log returns a snapshot of every committed entry, in commit order
// (which is also (cycle, event id) order, since SimManager calls
// SettleCycle once per RunCycle, for the cycle just run, in increasing
// cycle order).
func (r *Recorder) Log() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Entry, len(r.log))
	copy(out, r.log)
	return out
}

// Lines renders the committed log as human-readable "cycle=%d event=%d"
// strings, one per entry, suitable for writing to a commit-log file.
func (r *Recorder) Lines() []string {
	entries := r.Log()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = fmt.Sprintf("cycle=%d event=%d", e.Cycle, e.EventID)
	}
	return lines
}
