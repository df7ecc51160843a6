package engine

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/status"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// World ties the physics engine, the entity registry and the ordered system pipeline
type World struct {
	Physics   physics.Engine
	Registry  *Registry
	Resources *Resource

	systems []System
	router  *EventRouter

	queueDropped *atomic.Int64
	queuePeak    *atomic.Int64

	// updateMutex serializes Step against snapshot readers on other goroutines
	updateMutex sync.Mutex
}

// NewWorld creates a world over the given engine with default resources
func NewWorld(phys physics.Engine, tuning parameter.Tuning, log zerolog.Logger, seed uint64) *World {
	queue := event.NewEventQueue()
	event.InitRegistry()

	w := &World{
		Physics:  phys,
		Registry: NewRegistry(),
		Resources: &Resource{
			Time:   &TimeResource{},
			Tuning: &tuning,
			Event:  &EventQueueResource{Queue: queue},
			Fx:     NewFxBuffer(),
			Rand:   vmath.NewFastRand(seed),
			Log:    log,
			Status: status.NewRegistry(),
			Audio:  NopAudio{},
		},
		systems: make([]System, 0, 16),
		router:  NewEventRouter(queue),
	}
	w.queueDropped = w.Resources.Status.Ints.Get("event.dropped")
	w.queuePeak = w.Resources.Status.Ints.Get("event.backlog_peak")
	return w
}

// AddSystem adds a system, keeps the pipeline sorted by priority and routes its events
func (w *World) AddSystem(system System) {
	w.systems = append(w.systems, system)
	sort.SliceStable(w.systems, func(i, j int) bool {
		return w.systems[i].Priority() < w.systems[j].Priority()
	})
	w.router.Register(system)
}

// AddHandler registers an outer event consumer
func (w *World) AddHandler(h EventHandler) {
	w.router.Register(h)
}

// Systems returns a copy of the pipeline in run order
func (w *World) Systems() []System {
	out := make([]System, len(w.systems))
	copy(out, w.systems)
	return out
}

// Step advances the simulation clock and runs one full pipeline pass
// Queued events are dispatched after every system ran
func (w *World) Step(dt time.Duration) {
	w.updateMutex.Lock()
	w.Resources.Time.Advance(dt)
	for _, s := range w.systems {
		s.Update()
	}
	w.updateMutex.Unlock()

	st := w.Resources.Event.Queue.Stats()
	w.queueDropped.Store(int64(st.Dropped))
	w.queuePeak.Store(int64(st.Peak))

	w.router.DispatchAll()
}

// RunSafe executes fn while holding the step lock
func (w *World) RunSafe(fn func()) {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()
	fn()
}

// Now returns the current simulation time
func (w *World) Now() time.Duration {
	return w.Resources.Time.Now
}

// PushEvent emits a game event stamped with the current frame and sim time
func (w *World) PushEvent(eventType event.EventType, payload any) {
	w.Resources.Event.Queue.Push(event.GameEvent{
		Type:    eventType,
		Payload: payload,
		Frame:   w.Resources.Time.FrameNumber,
		Time:    w.Resources.Time.Now,
	})
}

// DispatchEvents routes pending events outside of Step; used after a rebuild at startup
func (w *World) DispatchEvents() int {
	return w.router.DispatchAll()
}

// IsFrozen reports whether the body has an active freeze record
func (w *World) IsFrozen(body core.BodyID) bool {
	return w.Registry.Freezes.Has(body)
}
