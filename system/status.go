package system

import (
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

// AddStatus starts or refreshes a damage-over-time accumulator on a victim
// An existing accumulator keeps its cadence and takes the larger remaining count
func AddStatus(w *engine.World, victim core.BodyID, kind component.StatusKind, source core.BodyID, extraTicks int) {
	if !w.Registry.Characters.Has(victim) {
		return
	}
	_, _, ticks := w.Resources.Tuning.StatusCadence(kind)
	ticks += extraTicks

	key := component.StatusKey{Victim: victim, Kind: kind}
	if acc := w.Registry.Statuses.Ptr(key); acc != nil {
		acc.Remaining = max(acc.Remaining, ticks)
		acc.Source = source
		return
	}
	w.Registry.Statuses.Set(key, component.StatusAccumulator{
		LastTick:  w.Now(),
		Remaining: ticks,
		Source:    source,
	})
}

// StatusSystem ticks poison and slash accumulators and expires hit flashes
type StatusSystem struct {
	world *engine.World

	statTicks  *atomic.Int64
	statActive *atomic.Int64

	enabled bool
}

func NewStatusSystem(world *engine.World) engine.System {
	s := &StatusSystem{
		world: world,
	}

	s.statTicks = world.Resources.Status.Ints.Get("status.ticks")
	s.statActive = world.Resources.Status.Ints.Get("status.active")

	s.Init()
	return s
}

func (s *StatusSystem) Init() {
	s.statTicks.Store(0)
	s.statActive.Store(0)
	s.enabled = true
}

func (s *StatusSystem) Name() string {
	return "status"
}

func (s *StatusSystem) Priority() int {
	return parameter.PriorityStatus
}

func (s *StatusSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *StatusSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventWorldReset {
		s.Init()
		return
	}

	if ev.Type == event.EventSystemToggle {
		if payload, ok := ev.Payload.(*event.SystemTogglePayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}
}

func (s *StatusSystem) Update() {
	if !s.enabled {
		return
	}
	s.tickStatuses()
	s.expireFlashes()
	s.statActive.Store(int64(s.world.Registry.Statuses.Len()))
}

// tickStatuses consumes one tick per elapsed interval, catching up if a step spans several
func (s *StatusSystem) tickStatuses() {
	reg := s.world.Registry
	now := s.world.Now()

	for _, key := range reg.Statuses.Keys() {
		acc := reg.Statuses.Ptr(key)
		c, ok := reg.Characters.Get(key.Victim)
		if !ok || c.HP == 0 || !s.world.Physics.BodyValid(key.Victim) {
			reg.Statuses.Remove(key)
			continue
		}

		interval, damage, _ := s.world.Resources.Tuning.StatusCadence(key.Kind)
		for acc.Remaining > 0 && now-acc.LastTick >= interval {
			acc.LastTick += interval
			acc.Remaining--
			s.statTicks.Add(1)
			ApplyDamage(s.world, key.Victim, damage, DamageSource{
				Owner: acc.Source,
				Cause: key.Kind.String(),
				Point: s.world.Physics.Position(key.Victim),
			})
		}

		if acc.Remaining <= 0 {
			reg.Statuses.Remove(key)
			continue
		}
		if c, _ := reg.Characters.Get(key.Victim); c.HP == 0 {
			reg.Statuses.Remove(key)
		}
	}
}

// expireFlashes restores skin colors once the flash window passed
func (s *StatusSystem) expireFlashes() {
	reg := s.world.Registry
	now := s.world.Now()
	window := s.world.Resources.Tuning.HitFlash

	for _, body := range reg.Characters.Keys() {
		c := reg.Characters.Ptr(body)
		if !c.HitFlash || now-c.HitFlashAt < window {
			continue
		}
		c.HitFlash = false
		restoreShape(s.world, c.Skin)
	}
}
