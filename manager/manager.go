// Package manager implements SimManager, the global clock, event heap,
// pending-ack reorder buffer (ROB), clock-tick subscriber list, and
// termination registry. It is the central authority the rest of the
// kernel defers to for time and ordering: events are released from the
// heap only at their scheduled cycle, and the clock advances only once
// every released event has been acknowledged.
package manager

import (
	"container/heap"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/rsim-go/rsim"
	"github.com/rsim-go/rsim/internal/pool"
	"github.com/rsim-go/rsim/metrics"
	"github.com/rsim-go/rsim/simerr"
)

// SimManager is the kernel's global clock, event heap, reorder buffer,
// clock-tick subscriber list, and termination registry. A SimManager
// outlives every SimDispatcher that holds a reference to it; dispatchers
// never close or otherwise tear it down. Every independently-varying
// piece of state is guarded by its own short-lived mutex, and no lock is
// ever held across a channel send.
type SimManager struct {
	logger  zerolog.Logger
	metrics metrics.Provider
	tracer  Tracer

	taskPool pool.Pool[*rsim.Task]

	curCycle atomic.Uint64

	heapMu sync.Mutex
	evHeap taskHeap

	robMu sync.Mutex
	rob   map[rsim.EventID]struct{}

	clockMu          sync.Mutex
	clockSubscribers []rsim.Destination

	termMu   sync.Mutex
	doNotEnd map[rsim.ComponentID]struct{}

	nextEventID     atomic.Uint64
	eventsProcessed atomic.Uint64

	ackRx <-chan rsim.EventID

	cycleCounter metrics.Counter
	eventCounter metrics.Counter
	robGauge     metrics.UpDownCounter
	cycleHist    metrics.Histogram
}

// New constructs a SimManager reading acks from ackRx. ackRx is owned by
// the manager for the lifetime of the run: every component's ack sends
// must ultimately reach this channel, directly or (more commonly)
// fanned-in by the embedder.
func New(ackRx <-chan rsim.EventID, opts ...Option) *SimManager {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	m := &SimManager{
		logger:   cfg.Logger,
		metrics:  cfg.Metrics,
		tracer:   cfg.Tracer,
		evHeap:   make(taskHeap, 0, cfg.HeapCapacityHint),
		rob:      make(map[rsim.EventID]struct{}),
		doNotEnd: make(map[rsim.ComponentID]struct{}),
		ackRx:    ackRx,
	}
	m.taskPool = pool.NewDynamic(func() *rsim.Task { return new(rsim.Task) })

	m.cycleCounter = m.metrics.Counter("rsim_cycles_total", metrics.WithDescription("cycles advanced by the clock"))
	m.eventCounter = m.metrics.Counter("rsim_events_processed_total", metrics.WithDescription("events acknowledged end-to-end"))
	m.robGauge = m.metrics.UpDownCounter("rsim_rob_depth", metrics.WithDescription("events released but not yet acknowledged"))
	m.cycleHist = m.metrics.Histogram("rsim_cycle_settle_seconds", metrics.WithUnit("seconds"), metrics.WithDescription("wall-clock time to settle one RunCycle"))

	return m
}

// acquireTask borrows a *rsim.Task wrapper from the internal pool instead
// of allocating one, since the event heap can see millions of pushes
// across a long run (every component-emitted event and every clock tick
// passes through one).
func (m *SimManager) acquireTask(ev rsim.Event, dest rsim.Destination) *rsim.Task {
	t := m.taskPool.Get()
	t.Event = ev
	t.Destination = dest
	return t
}

// releaseTask returns t to the internal pool. It must only be called
// once the manager has fully finished with t (the wrapped event has
// either been delivered or dropped), since the manager is the sole
// owner of Task wrappers once Enqueue has been called.
func (m *SimManager) releaseTask(t *rsim.Task) {
	t.Event = nil
	t.Destination = nil
	m.taskPool.Put(t)
}

// Enqueue schedules task for future release. task.Event.ScheduledTime()
// must not be in the past relative to the cycle at which it will be
// examined. A violation is not detected here (the heap may not even be
// examined again for many cycles); it surfaces as simerr.ErrTimeFault the
// next time the drain phase reaches the offending task.
func (m *SimManager) Enqueue(task *rsim.Task) {
	m.heapMu.Lock()
	heap.Push(&m.evHeap, task)
	m.heapMu.Unlock()
}

// RequestEventID mints the next globally unique, strictly monotonically
// increasing event id.
func (m *SimManager) RequestEventID() rsim.EventID {
	return rsim.EventID(m.nextEventID.Add(1) - 1)
}

// RegisterClockTick subscribes dest to receive one fresh clock event
// every cycle.
func (m *SimManager) RegisterClockTick(dest rsim.Destination) {
	m.clockMu.Lock()
	m.clockSubscribers = append(m.clockSubscribers, dest)
	m.clockMu.Unlock()
}

// RegisterDoNotEnd casts componentID's "do not end the simulation yet"
// vote.
func (m *SimManager) RegisterDoNotEnd(componentID rsim.ComponentID) {
	m.termMu.Lock()
	m.doNotEnd[componentID] = struct{}{}
	m.termMu.Unlock()
}

// RegisterCanEnd withdraws componentID's "do not end" vote.
func (m *SimManager) RegisterCanEnd(componentID rsim.ComponentID) {
	m.termMu.Lock()
	delete(m.doNotEnd, componentID)
	m.termMu.Unlock()
}

// SimCanEnd reports whether the termination-vote set is empty.
func (m *SimManager) SimCanEnd() bool {
	m.termMu.Lock()
	defer m.termMu.Unlock()
	return len(m.doNotEnd) == 0
}

// CurrentCycle returns the current value of the global clock.
func (m *SimManager) CurrentCycle() rsim.Cycle {
	return rsim.Cycle(m.curCycle.Load())
}

// EventsProcessed returns the cumulative number of events acknowledged
// end-to-end since the manager was constructed.
func (m *SimManager) EventsProcessed() uint64 {
	return m.eventsProcessed.Load()
}

// ROBSize reports the current number of released-but-unacknowledged
// events. It exists for introspection and tests; the kernel's own control
// flow only ever needs to know whether it is zero.
func (m *SimManager) ROBSize() int {
	m.robMu.Lock()
	defer m.robMu.Unlock()
	return len(m.rob)
}

// HeapLen reports the current number of pending tasks in the event heap.
func (m *SimManager) HeapLen() int {
	m.heapMu.Lock()
	defer m.heapMu.Unlock()
	return len(m.evHeap)
}

// ProxyEvent injects ev directly into dest, bypassing the heap: ev's id
// is pre-inserted into the ROB and the event is sent immediately. This is
// the stimulus-injection path used by tests and bootstrap code.
// Unlike an ordinary enqueued event, a proxy-injected event that cannot be
// delivered is a caller error, not an expected race with a slow consumer,
// so delivery failure panics rather than silently retrying.
func (m *SimManager) ProxyEvent(ev rsim.Event, dest rsim.Destination) {
	m.robMu.Lock()
	m.rob[ev.EventID()] = struct{}{}
	m.robMu.Unlock()
	m.robGauge.Add(1)

	t := m.acquireTask(ev, dest)
	delivered, closed := m.trySend(t)
	m.releaseTask(t)

	if !delivered {
		reason := "destination channel full"
		if closed {
			reason = "destination channel closed"
		}
		m.robMu.Lock()
		delete(m.rob, ev.EventID())
		m.robMu.Unlock()
		m.robGauge.Add(-1)
		panic(simerr.Tag(
			fmt.Errorf("%w: %s", simerr.ErrProxyDeliveryFailed, reason),
			simerr.WithEventID(ev.EventID()),
			simerr.WithCycle(m.CurrentCycle()),
		))
	}
}

// trySend attempts a non-blocking delivery of t.Event on t.Destination.
// delivered is true on success. closed is true if the destination channel
// had been closed by its owner: a send on a closed channel panics, so the
// panic is recovered here and translated into a non-fatal drop, since a
// closed destination means the receiver has already torn down. A
// full-but-open channel is reported as !delivered && !closed so the
// caller can retry later rather than drop an event that a live receiver
// is still expecting.
func (m *SimManager) trySend(t *rsim.Task) (delivered, closed bool) {
	defer func() {
		if r := recover(); r != nil {
			delivered = false
			closed = true
		}
	}()

	select {
	case t.Destination <- t.Event:
		delivered = true
	default:
	}
	return
}

// sendEvents releases every heap task whose ScheduledTime has come due
// (== current cycle), inserting each into the ROB and forwarding it on
// its destination. A task whose ScheduledTime is strictly before the
// current cycle is a time fault and is fatal. No lock is held across a
// channel send: tasks due this cycle are first collected under heapMu,
// then heapMu is released before any sends are attempted.
func (m *SimManager) sendEvents() {
	cur := m.CurrentCycle()

	var ready []*rsim.Task
	m.heapMu.Lock()
	for len(m.evHeap) > 0 {
		top := m.evHeap[0]
		st := top.Event.ScheduledTime()
		if st > cur {
			break
		}
		if st < cur {
			m.heapMu.Unlock()
			panic(simerr.Tag(
				simerr.ErrTimeFault,
				simerr.WithEventID(top.Event.EventID()),
				simerr.WithCycle(cur),
			))
		}
		ready = append(ready, heap.Pop(&m.evHeap).(*rsim.Task))
	}
	m.heapMu.Unlock()

	for _, t := range ready {
		delivered, closed := m.trySend(t)
		switch {
		case delivered:
			m.robMu.Lock()
			m.rob[t.Event.EventID()] = struct{}{}
			m.robMu.Unlock()
			m.robGauge.Add(1)
			m.releaseTask(t)
		case closed:
			m.logger.Warn().
				Uint64("event_id", uint64(t.Event.EventID())).
				Uint64("cycle", uint64(cur)).
				Msg("destination channel closed; dropping event")
			m.releaseTask(t)
		default:
			// Destination is open but full: requeue at the same
			// scheduled time so the drain loop retries it rather than
			// dropping it.
			m.heapMu.Lock()
			heap.Push(&m.evHeap, t)
			m.heapMu.Unlock()
		}
	}
}

// scheduleClockTasks mints one fresh clock event per subscriber, stamped
// with the new current cycle, and pushes each as a task onto the heap.
func (m *SimManager) scheduleClockTasks() {
	m.clockMu.Lock()
	subs := make([]rsim.Destination, len(m.clockSubscribers))
	copy(subs, m.clockSubscribers)
	m.clockMu.Unlock()

	cur := m.CurrentCycle()
	for _, dest := range subs {
		id := m.RequestEventID()
		ev := rsim.NewClockEvent(id, cur)
		t := m.acquireTask(ev, dest)
		m.heapMu.Lock()
		heap.Push(&m.evHeap, t)
		m.heapMu.Unlock()
	}
	m.cycleCounter.Add(1)
}

// drainAcks non-blockingly consumes every pending ack, removing each from
// the ROB. An ack for an id not present in the ROB is a phantom ack and
// is fatal. A closed ack channel is reported to the caller as
// simerr.ErrAckChannelClosed so Run/RunCycle can stop the simulation
// instead of panicking.
func (m *SimManager) drainAcks() error {
	for {
		select {
		case id, ok := <-m.ackRx:
			if !ok {
				return simerr.ErrAckChannelClosed
			}

			m.robMu.Lock()
			_, present := m.rob[id]
			if present {
				delete(m.rob, id)
			}
			m.robMu.Unlock()

			if !present {
				panic(simerr.Tag(
					simerr.ErrPhantomAck,
					simerr.WithEventID(id),
					simerr.WithCycle(m.CurrentCycle()),
				))
			}

			m.eventsProcessed.Add(1)
			m.eventCounter.Add(1)
			m.robGauge.Add(-1)
			if m.tracer != nil {
				m.tracer.RecordAck(uint64(m.CurrentCycle()), uint64(id))
			}
		default:
			return nil
		}
	}
}

func (m *SimManager) robEmpty() bool {
	m.robMu.Lock()
	defer m.robMu.Unlock()
	return len(m.rob) == 0
}

// canIncreaseCycle reports whether the drain phase has reached
// quiescence: the ROB is empty and either the heap is empty or its
// minimum is strictly in the future.
func (m *SimManager) canIncreaseCycle() bool {
	if !m.robEmpty() {
		return false
	}
	m.heapMu.Lock()
	defer m.heapMu.Unlock()
	if len(m.evHeap) == 0 {
		return true
	}
	return m.evHeap[0].Event.ScheduledTime() > m.CurrentCycle()
}

// RunCycleEnd settles combinational activity at the current cycle without
// advancing the clock: it repeats the drain phase (drain acks, release
// due tasks) until quiescence. This exists so tests can inject stimulus
// via ProxyEvent, let it propagate, and inspect results without crossing
// a clock edge.
func (m *SimManager) RunCycleEnd() error {
	for {
		if err := m.drainAcks(); err != nil {
			return err
		}
		m.sendEvents()
		if m.canIncreaseCycle() {
			return nil
		}
	}
}

// RunCycle advances the clock by exactly one cycle: it drains the
// current cycle to quiescence, increments the clock, fans a clock event
// out to every subscriber, then repeats the drain phase (drain acks,
// release due tasks) until either the new cycle is quiescent again or the
// termination vote empties. The second disjunct is a termination
// safety valve: once every primary component has voted to end, their
// senders may have already exited, and waiting forever on acks that will
// never arrive would hang the driver.
func (m *SimManager) RunCycle() error {
	start := time.Now()
	defer func() { m.cycleHist.Record(time.Since(start).Seconds()) }()

	for {
		if err := m.drainAcks(); err != nil {
			return err
		}
		m.sendEvents()

		if m.canIncreaseCycle() {
			m.curCycle.Add(1)
			m.scheduleClockTasks()

			for {
				if err := m.drainAcks(); err != nil {
					return err
				}
				m.sendEvents()
				if m.canIncreaseCycle() || m.SimCanEnd() {
					break
				}
			}

			if m.tracer != nil {
				m.tracer.SettleCycle(uint64(m.CurrentCycle()))
			}
			return nil
		}
	}
}

// Run drives the simulation by repeating RunCycle until the
// termination-vote set is empty. Run checks SimCanEnd before every
// RunCycle, including the first: a simulation with no primary components
// returns immediately without advancing the clock at all.
func (m *SimManager) Run() error {
	for !m.SimCanEnd() {
		if err := m.RunCycle(); err != nil {
			return err
		}
	}
	return nil
}
