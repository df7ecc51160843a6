package system

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// FreezeBodyAndJoint immobilizes a body until now+d, saving its motion for restore
// An already frozen body only has its expiry extended, never shortened
// joint may be NullJoint; a valid joint has its motor saved and disabled
func FreezeBodyAndJoint(w *engine.World, body core.BodyID, joint core.JointID, d time.Duration) {
	phys := w.Physics
	if d <= 0 || !phys.BodyValid(body) {
		return
	}
	expiry := w.Now() + d

	rec := w.Registry.Freezes.Ptr(body)
	if rec != nil {
		rec.Expiry = max(rec.Expiry, expiry)
		if !rec.HasMotor && phys.JointValid(joint) {
			rec.Joint = joint
			rec.Motor = phys.Motor(joint)
			rec.HasMotor = true
		}
	} else {
		fresh := component.FreezeRecord{
			Joint:           joint,
			Velocity:        phys.LinearVelocity(body),
			AngularVelocity: phys.AngularVelocity(body),
			SleepThreshold:  phys.SleepThreshold(body),
			Expiry:          expiry,
		}
		if phys.JointValid(joint) {
			fresh.Motor = phys.Motor(joint)
			fresh.HasMotor = true
		}
		w.Registry.Freezes.Set(body, fresh)
		rec = w.Registry.Freezes.Ptr(body)
	}

	if rec.HasMotor && phys.JointValid(rec.Joint) {
		disableMotor(phys, rec.Joint)
	}
	holdStill(phys, body)
}

// Unfreeze drops a freeze immediately, restoring the saved motion
func Unfreeze(w *engine.World, body core.BodyID) {
	rec, ok := w.Registry.Freezes.Get(body)
	if !ok {
		return
	}
	w.Registry.Freezes.Remove(body)
	restore(w, body, rec)
}

func holdStill(phys physics.Engine, body core.BodyID) {
	phys.SetLinearVelocity(body, vmath.Vec2{})
	phys.SetAngularVelocity(body, 0)
	phys.SetSleepThreshold(body, parameter.FrozenSleepThreshold)
	phys.SetAwake(body, false)
}

func disableMotor(phys physics.Engine, joint core.JointID) {
	m := phys.Motor(joint)
	if !m.Enabled {
		return
	}
	m.Enabled = false
	phys.SetMotor(joint, m)
}

// restore releases a body with its saved velocity clamped, so impulses taken while frozen are not released as a kick
func restore(w *engine.World, body core.BodyID, rec component.FreezeRecord) {
	phys := w.Physics
	if !phys.BodyValid(body) {
		return
	}
	tuning := w.Resources.Tuning

	phys.SetSleepThreshold(body, rec.SleepThreshold)
	phys.SetLinearVelocity(body, rec.Velocity.ClampMagnitude(tuning.MaxUnfreezeSpeed))
	maxAng := tuning.MaxUnfreezeAngularSpeed
	phys.SetAngularVelocity(body, math.Max(-maxAng, math.Min(maxAng, rec.AngularVelocity)))
	if rec.HasMotor && phys.JointValid(rec.Joint) {
		phys.SetMotor(rec.Joint, rec.Motor)
	}
	phys.SetAwake(body, true)
}

// FreezeSystem enforces active freezes before the physics step and releases expired ones
type FreezeSystem struct {
	world *engine.World

	statActive   *atomic.Int64
	statReleased *atomic.Int64

	enabled bool
}

func NewFreezeSystem(world *engine.World) engine.System {
	s := &FreezeSystem{
		world: world,
	}

	s.statActive = world.Resources.Status.Ints.Get("freeze.active")
	s.statReleased = world.Resources.Status.Ints.Get("freeze.released")

	s.Init()
	return s
}

func (s *FreezeSystem) Init() {
	s.statActive.Store(0)
	s.statReleased.Store(0)
	s.enabled = true
}

func (s *FreezeSystem) Name() string {
	return "freeze"
}

func (s *FreezeSystem) Priority() int {
	return parameter.PriorityFreeze
}

func (s *FreezeSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *FreezeSystem) HandleEvent(ev event.GameEvent) {
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

// Update is the single sweep over the freeze timer table
func (s *FreezeSystem) Update() {
	if !s.enabled {
		return
	}
	reg := s.world.Registry
	phys := s.world.Physics
	now := s.world.Now()

	for _, body := range reg.Freezes.Keys() {
		rec, _ := reg.Freezes.Get(body)
		if !phys.BodyValid(body) {
			reg.Freezes.Remove(body)
			continue
		}
		if now >= rec.Expiry {
			reg.Freezes.Remove(body)
			restore(s.world, body, rec)
			s.statReleased.Add(1)
			continue
		}
		// Contacts may wake a frozen body or something may re-enable its motor
		holdStill(phys, body)
		if rec.HasMotor && phys.JointValid(rec.Joint) {
			disableMotor(phys, rec.Joint)
		}
	}
	s.statActive.Store(int64(reg.Freezes.Len()))
}

// FreezeGuardSystem re-zeroes frozen bodies after integration
// Jointed followers inherit their driver's velocity during the step
type FreezeGuardSystem struct {
	world   *engine.World
	enabled bool
}

func NewFreezeGuardSystem(world *engine.World) engine.System {
	s := &FreezeGuardSystem{world: world}
	s.Init()
	return s
}

func (s *FreezeGuardSystem) Init() {
	s.enabled = true
}

func (s *FreezeGuardSystem) Name() string {
	return "freeze_guard"
}

func (s *FreezeGuardSystem) Priority() int {
	return parameter.PriorityFreezeGuard
}

func (s *FreezeGuardSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *FreezeGuardSystem) HandleEvent(ev event.GameEvent) {
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

func (s *FreezeGuardSystem) Update() {
	if !s.enabled {
		return
	}
	phys := s.world.Physics
	for _, body := range s.world.Registry.Freezes.Keys() {
		if phys.BodyValid(body) {
			holdStill(phys, body)
		}
	}
}
