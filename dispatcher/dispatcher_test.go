package dispatcher

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rsim-go/rsim"
	"github.com/rsim-go/rsim/component"
	"github.com/rsim-go/rsim/manager"
	"github.com/rsim-go/rsim/simerr"
)

// countingComponent registers a do-not-end vote at Init, counts how many
// times PollRecv is called, and withdraws its vote once a target poll
// count is reached.
type countingComponent struct {
	id     rsim.ComponentID
	target int
	polls  int
}

func (c *countingComponent) ComponentID() rsim.ComponentID { return c.id }
func (c *countingComponent) Init(m *manager.SimManager)    { m.RegisterDoNotEnd(c.id) }
func (c *countingComponent) Reset()                        { c.polls = 0 }

func (c *countingComponent) PollRecv(m *manager.SimManager) {
	c.polls++
	if c.polls >= c.target {
		m.RegisterCanEnd(c.id)
	}
}

func TestSimDispatcher_RunTerminatesWhenVotesWithdrawn(t *testing.T) {
	ackRx := make(chan rsim.EventID, 1)
	m := manager.New(ackRx)

	c := &countingComponent{id: "counter", target: 5}
	d := New(m, []component.Component{c})
	d.Init()

	done := make(chan struct{})
	go func() {
		d.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not terminate after the only component withdrew its vote")
	}

	require.GreaterOrEqual(t, c.polls, 5)
}

func TestSimDispatcher_RunStopsOnContextCancellation(t *testing.T) {
	ackRx := make(chan rsim.EventID, 1)
	m := manager.New(ackRx)
	m.RegisterDoNotEnd("external")

	c := &countingComponent{id: "counter", target: 1 << 30}
	d := New(m, []component.Component{c})
	d.Init()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		d.Run(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not stop promptly after context cancellation")
	}
}

// panickingComponent panics the first time it is polled.
type panickingComponent struct {
	id rsim.ComponentID
}

func (p *panickingComponent) ComponentID() rsim.ComponentID { return p.id }
func (p *panickingComponent) Init(m *manager.SimManager)    { m.RegisterDoNotEnd(p.id) }
func (p *panickingComponent) Reset()                        {}
func (p *panickingComponent) PollRecv(*manager.SimManager) {
	panic("boom")
}

func TestSimDispatcher_ComponentPanicIsDecoratedAndReraised(t *testing.T) {
	ackRx := make(chan rsim.EventID, 1)
	m := manager.New(ackRx)

	c := &panickingComponent{id: "boomer"}
	d := New(m, []component.Component{c})
	d.Init()

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok, "recovered value must be an error")
		require.ErrorIs(t, err, simerr.ErrComponentPanic)
		id, has := simerr.ExtractComponentID(err)
		require.True(t, has)
		require.Equal(t, rsim.ComponentID("boomer"), id)
	}()

	d.Run(context.Background())
}
