package system

import (
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// BeginClash records a weapon/weapon touch and parries on the first touch of an episode
// Both drive motors invert unless the pair already inverted within the clash window
func BeginClash(w *engine.World, a, b core.BodyID, point vmath.Vec2) bool {
	reg := w.Registry
	if a == b || !reg.Weapons.Has(a) || !reg.Weapons.Has(b) {
		return false
	}
	now := w.Now()
	key := component.MakeWeaponPair(a, b)

	st, seen := reg.Clashes.Get(key)
	st.Touching++
	if st.Touching > 1 {
		reg.Clashes.Set(key, st)
		return false
	}
	st.Since = now

	inverted := false
	if !seen || now-st.LastInvert >= parameter.ClashWindow {
		invertMotor(w, a)
		invertMotor(w, b)
		st.LastInvert = now
		inverted = true
		w.Resources.Audio.Play(core.SoundClash, point, 0.7)
		w.Resources.Fx.Add(engine.FxRecord{Kind: engine.FxHitRing, From: point, Radius: 0.3, Color: core.RGB{R: 255, G: 255, B: 160}, At: now})
	}
	reg.Clashes.Set(key, st)
	return inverted
}

// EndClash decrements the touch count; the entry stays to throttle a quick re-touch
func EndClash(w *engine.World, a, b core.BodyID) {
	st := w.Registry.Clashes.Ptr(component.MakeWeaponPair(a, b))
	if st != nil && st.Touching > 0 {
		st.Touching--
	}
}

// invertMotor reverses a weapon's drive; a frozen weapon has its saved motor reversed instead
func invertMotor(w *engine.World, weapon core.BodyID) {
	wpn, ok := w.Registry.Weapons.Get(weapon)
	if !ok || !w.Physics.JointValid(wpn.Joint) {
		return
	}
	if rec := w.Registry.Freezes.Ptr(weapon); rec != nil && rec.HasMotor {
		rec.Motor.Speed = -rec.Motor.Speed
		return
	}
	m := w.Physics.Motor(wpn.Joint)
	m.Speed = -m.Speed
	w.Physics.SetMotor(wpn.Joint, m)
	w.Physics.SetAngularVelocity(weapon, m.Speed)
}

// ClashSystem pushes apart weapon pairs that stay locked after this step's motion
type ClashSystem struct {
	world *engine.World

	statNudges *atomic.Int64

	enabled bool
}

func NewClashSystem(world *engine.World) engine.System {
	s := &ClashSystem{
		world: world,
	}

	s.statNudges = world.Resources.Status.Ints.Get("clash.nudges")

	s.Init()
	return s
}

func (s *ClashSystem) Init() {
	s.statNudges.Store(0)
	s.enabled = true
}

func (s *ClashSystem) Name() string {
	return "clash"
}

func (s *ClashSystem) Priority() int {
	return parameter.PriorityClash
}

func (s *ClashSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *ClashSystem) HandleEvent(ev event.GameEvent) {
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

func (s *ClashSystem) Update() {
	if !s.enabled {
		return
	}
	reg := s.world.Registry
	now := s.world.Now()

	for _, key := range reg.Clashes.Keys() {
		st := reg.Clashes.Ptr(key)
		if st.Touching == 0 {
			if now-st.LastInvert >= parameter.ClashWindow {
				reg.Clashes.Remove(key)
			}
			continue
		}
		if now-st.Since < parameter.ClashStuckThreshold {
			continue
		}
		st.Since = now
		s.nudge(key)
	}
}

// nudge pushes the two owners apart along the line between them
func (s *ClashSystem) nudge(key component.WeaponPair) {
	reg := s.world.Registry
	phys := s.world.Physics
	wa, okA := reg.Weapons.Get(key.A)
	wb, okB := reg.Weapons.Get(key.B)
	if !okA || !okB || !phys.BodyValid(wa.Owner) || !phys.BodyValid(wb.Owner) {
		return
	}

	axis := phys.Position(wa.Owner).Sub(phys.Position(wb.Owner)).Normalize()
	if axis.IsZero() {
		axis = vmath.V(1, 0)
	}
	if !s.world.IsFrozen(wa.Owner) {
		phys.ApplyLinearImpulse(wa.Owner, axis.Scale(parameter.ClashNudgeImpulse))
	}
	if !s.world.IsFrozen(wb.Owner) {
		phys.ApplyLinearImpulse(wb.Owner, axis.Scale(-parameter.ClashNudgeImpulse))
	}
	s.statNudges.Add(1)
}
