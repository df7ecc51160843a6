package event

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/parameter"
)

func TestEventQueue_FIFO(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 5; i++ {
		q.Push(GameEvent{Type: EventHitLanded, Frame: int64(i)})
	}
	assert.Equal(t, 5, q.Len())

	events := q.Consume()
	require.Len(t, events, 5)
	for i, ev := range events {
		assert.Equal(t, int64(i), ev.Frame)
	}
	assert.Nil(t, q.Consume())
	assert.Zero(t, q.Len())
}

func TestEventQueue_OverflowKeepsNewest(t *testing.T) {
	q := NewEventQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(GameEvent{Frame: int64(i)})
	}

	events := q.Consume()
	require.Len(t, events, parameter.EventQueueSize)
	assert.Equal(t, int64(10), events[0].Frame)
	assert.Equal(t, int64(total-1), events[len(events)-1].Frame)
	assert.NotZero(t, q.Dropped())
}

func TestEventQueue_ConcurrentPush(t *testing.T) {
	q := NewEventQueue()
	var wg sync.WaitGroup
	for p := 0; p < 4; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				q.Push(GameEvent{Type: EventSystemToggle})
			}
		}()
	}
	wg.Wait()
	assert.Len(t, q.Consume(), 400)
}

func TestRegistry_NamesAndPayloads(t *testing.T) {
	assert.Equal(t, "EventCharacterKilled", GetEventName(EventCharacterKilled))
	assert.Equal(t, "EventUnknown", GetEventName(EventType(999)))

	et, ok := GetEventType("EventMatchOver")
	require.True(t, ok)
	assert.Equal(t, EventMatchOver, et)

	_, ok = NewPayloadStruct(EventHitLanded).(*HitLandedPayload)
	assert.True(t, ok)
	assert.Nil(t, NewPayloadStruct(EventNone))
}

func TestEventQueue_StatsTrackBacklogPeak(t *testing.T) {
	q := NewEventQueue()
	for i := 0; i < 7; i++ {
		q.Push(GameEvent{Type: EventHitLanded})
	}
	q.Consume()
	q.Push(GameEvent{Type: EventHitLanded})

	st := q.Stats()
	assert.Equal(t, 1, st.Pending)
	assert.Equal(t, 7, st.Peak, "peak survives the drain")
	assert.Zero(t, st.Dropped)
}
