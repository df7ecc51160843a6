package system

import (
	"slices"
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

// DeathSystem is the single point where characters are destroyed
// Kill requests queue during the step and are flushed here, after the projectile schedule
type DeathSystem struct {
	world *engine.World

	statKilled *atomic.Int64

	enabled bool
}

func NewDeathSystem(world *engine.World) engine.System {
	s := &DeathSystem{
		world: world,
	}

	s.statKilled = world.Resources.Status.Ints.Get("death.count")

	s.Init()
	return s
}

// Init resets session state for a new match
func (s *DeathSystem) Init() {
	s.statKilled.Store(0)
	s.enabled = true
}

func (s *DeathSystem) Name() string {
	return "death"
}

func (s *DeathSystem) Priority() int {
	return parameter.PriorityDeath
}

func (s *DeathSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *DeathSystem) HandleEvent(ev event.GameEvent) {
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

func (s *DeathSystem) Update() {
	if !s.enabled {
		return
	}
	kills := s.world.Registry.DrainKills()
	if len(kills) == 0 {
		return
	}
	slices.Sort(kills)
	kills = slices.Compact(kills)

	for _, body := range kills {
		if KillCharacterNow(s.world, body) {
			s.statKilled.Add(1)
		}
	}
}

// KillCharacterNow removes a character, its weapon and everything they own
// Order matters: effects first while handles are valid, registry purge, then engine destroy
func KillCharacterNow(w *engine.World, body core.BodyID) bool {
	reg := w.Registry
	phys := w.Physics
	defer reg.Forget(body)

	c, ok := reg.Characters.Get(body)
	if !ok {
		reg.PurgeBody(body, nil)
		return false
	}
	weapon := c.Weapon

	// 1. Death FX while body and color are valid
	if phys.BodyValid(body) {
		pos := phys.Position(body)
		w.Resources.Fx.Add(engine.FxRecord{Kind: engine.FxDeathBurst, From: pos, Radius: c.Radius * 2, Color: c.BaseColor, At: w.Now()})
		w.Resources.Audio.Play(core.SoundDeath, pos, 1)
	}

	// 2. Freeze records of body and weapon, no restore
	reg.Freezes.Remove(body)
	reg.Freezes.Remove(weapon)

	// 3. Owned turrets go with their owner
	for _, t := range reg.Turrets.Keys() {
		if tc, _ := reg.Turrets.Get(t); tc.Owner == body {
			destroyNow(w, t)
		}
	}

	// 4. Owned projectiles are rescheduled, never destroyed inline
	for _, p := range reg.Projectiles.Keys() {
		if pc, _ := reg.Projectiles.Get(p); pc.Owner == body {
			RequestDestroy(w, p, w.Now())
		}
	}

	// 5. Purge shape maps, pairs, statuses and slots of both bodies, weapon first
	if !weapon.IsNull() {
		destroyNow(w, weapon)
	}
	destroyNow(w, body)

	killer := c.LastAttacker
	payload := &event.CharacterKilledPayload{
		Victim:       body,
		VictimName:   c.Name,
		VictimWeapon: c.WeaponKind.String(),
		Killer:       killer,
		Cause:        c.LastCause,
	}
	if k := reg.Characters.Ptr(killer); k != nil {
		k.Kills++
		payload.KillerName = k.Name
		payload.KillerWeapon = k.WeaponKind.String()
	}
	w.PushEvent(event.EventCharacterKilled, payload)

	w.Resources.Log.Debug().
		Str("victim", c.Name).
		Str("cause", c.LastCause).
		Msg("character killed")
	return true
}
