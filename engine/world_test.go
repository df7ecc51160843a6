package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

type orderRecorder struct {
	name     string
	priority int
	log      *[]string
	world    *World
	emit     bool
}

func (p *orderRecorder) Name() string { return p.name }
func (p *orderRecorder) Priority() int { return p.priority }
func (p *orderRecorder) EventTypes() []event.EventType { return []event.EventType{event.EventHitLanded} }

func (p *orderRecorder) Update() {
	*p.log = append(*p.log, "update:"+p.name)
	if p.emit {
		p.world.PushEvent(event.EventHitLanded, &event.HitLandedPayload{Damage: 1})
	}
}

func (p *orderRecorder) HandleEvent(ev event.GameEvent) {
	*p.log = append(*p.log, "event:"+p.name)
}

func TestWorld_StepRunsByPriorityThenDispatches(t *testing.T) {
	w, _ := NewTestWorld()
	var log []string

	w.AddSystem(&orderRecorder{name: "late", priority: 50, log: &log, world: w})
	w.AddSystem(&orderRecorder{name: "early", priority: 10, log: &log, world: w, emit: true})

	w.Step(10 * time.Millisecond)

	assert.Equal(t, []string{"update:early", "update:late", "event:late", "event:early"}, log)
	assert.Equal(t, 10*time.Millisecond, w.Now())
	assert.Equal(t, int64(1), w.Resources.Time.FrameNumber)
}

func TestWorld_PushEventStampsTime(t *testing.T) {
	w, _ := NewTestWorld()
	w.Resources.Time.Now = 3 * time.Second

	w.PushEvent(event.EventMatchOver, &event.MatchOverPayload{})
	events := w.Resources.Event.Queue.Consume()
	require.Len(t, events, 1)
	assert.Equal(t, 3*time.Second, events[0].Time)
}

func TestWorld_StepPublishesQueuePressure(t *testing.T) {
	w, _ := NewTestWorld()
	for i := 0; i < parameter.EventQueueSize+5; i++ {
		w.PushEvent(event.EventHitLanded, &event.HitLandedPayload{Damage: 1})
	}

	w.Step(10 * time.Millisecond)

	ints := w.Resources.Status.IntSnapshot()
	assert.Equal(t, int64(5), ints["event.dropped"])
	assert.Equal(t, int64(parameter.EventQueueSize), ints["event.backlog_peak"])
	assert.Zero(t, w.Resources.Event.Queue.Len(), "dispatched after publishing")
}
