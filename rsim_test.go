package rsim

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEvent_RoundTripsIdentityTimeAndPayload(t *testing.T) {
	ev := NewEvent(EventID(7), Cycle(3), "hello")

	require.Equal(t, EventID(7), ev.EventID())
	require.Equal(t, Cycle(3), ev.ScheduledTime())
	require.False(t, ev.IsClockEvent())
	require.Equal(t, "hello", ev.Payload())
}

func TestEvent_SetScheduledTime(t *testing.T) {
	ev := NewEvent(EventID(1), Cycle(0), nil)
	ev.SetScheduledTime(Cycle(42))
	require.Equal(t, Cycle(42), ev.ScheduledTime())
}

func TestNewClockEvent_CarriesNoPayload(t *testing.T) {
	ev := NewClockEvent(EventID(2), Cycle(5))

	require.True(t, ev.IsClockEvent())
	require.Nil(t, ev.Payload())
	require.Equal(t, Cycle(5), ev.ScheduledTime())
}

func TestPayloadAs_SucceedsForMatchingType(t *testing.T) {
	ev := NewEvent(EventID(1), Cycle(0), 123)

	v, ok := PayloadAs[int](ev)
	require.True(t, ok)
	require.Equal(t, 123, v)
}

func TestPayloadAs_FailsForMismatchedType(t *testing.T) {
	ev := NewEvent(EventID(1), Cycle(0), 123)

	_, ok := PayloadAs[string](ev)
	require.False(t, ok)
}

func TestPayloadAs_FailsForClockEvent(t *testing.T) {
	ev := NewClockEvent(EventID(1), Cycle(0))

	_, ok := PayloadAs[int](ev)
	require.False(t, ok)
}

func TestNewComponentID_ProducesDistinctIDs(t *testing.T) {
	a := NewComponentID()
	b := NewComponentID()

	require.NotEmpty(t, a)
	require.NotEqual(t, a, b)
}

func TestTask_Less_OrdersByScheduledTimeThenEventID(t *testing.T) {
	dest := make(chan Event, 1)

	earlier := NewTask(NewEvent(EventID(5), Cycle(10), nil), dest)
	later := NewTask(NewEvent(EventID(1), Cycle(11), nil), dest)
	require.True(t, earlier.Less(later))
	require.False(t, later.Less(earlier))

	tieLow := NewTask(NewEvent(EventID(1), Cycle(10), nil), dest)
	tieHigh := NewTask(NewEvent(EventID(2), Cycle(10), nil), dest)
	require.True(t, tieLow.Less(tieHigh))
	require.False(t, tieHigh.Less(tieLow))
}
