package system

import (
	"sync/atomic"
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// volleySpread is the angle between projectiles of one volley (rad)
const volleySpread = 0.15

// WeaponSystem fires ranged weapons from their tip along the weapon's facing
type WeaponSystem struct {
	world *engine.World

	statFired *atomic.Int64

	enabled bool
}

func NewWeaponSystem(world *engine.World) engine.System {
	s := &WeaponSystem{
		world: world,
	}

	s.statFired = world.Resources.Status.Ints.Get("weapon.fired")

	s.Init()
	return s
}

func (s *WeaponSystem) Init() {
	s.statFired.Store(0)
	s.enabled = true
}

func (s *WeaponSystem) Name() string {
	return "weapon"
}

func (s *WeaponSystem) Priority() int {
	return parameter.PriorityWeapon
}

func (s *WeaponSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *WeaponSystem) HandleEvent(ev event.GameEvent) {
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

func (s *WeaponSystem) Update() {
	if !s.enabled {
		return
	}
	reg := s.world.Registry
	now := s.world.Now()

	for _, body := range reg.Weapons.Keys() {
		wpn := reg.Weapons.Ptr(body)
		spec := parameter.Weapons[wpn.Kind]
		if !spec.Ranged || now < wpn.NextFire {
			continue
		}
		// Frozen shooters hold fire; the shot is not banked
		if s.world.IsFrozen(body) || s.world.IsFrozen(wpn.Owner) {
			continue
		}
		wpn.NextFire = now + spec.FireInterval
		s.fire(body, *wpn)
	}
}

// fire spawns one volley centered on the weapon axis
func (s *WeaponSystem) fire(body core.BodyID, wpn component.WeaponComponent) {
	phys := s.world.Physics
	if !phys.BodyValid(body) || !phys.BodyValid(wpn.Owner) {
		return
	}
	spec := parameter.Weapons[wpn.Kind]
	pspec := parameter.Projectiles[spec.Projectile]
	tuning := s.world.Resources.Tuning

	tmpl := component.ProjectileComponent{
		Kind:            spec.Projectile,
		Owner:           wpn.Owner,
		Source:          body,
		SourceKind:      wpn.Kind,
		Damage:          wpn.Damage,
		Rebounds:        pspec.Rebounds + wpn.Passive.Rebounds,
		Primary:         true,
		ExplosionRadius: wpn.Passive.ExplosionRadius,
		ExplosionDamage: wpn.Passive.ExplosionDamage,
	}
	if spec.Projectile == component.ProjectileFrostBolt {
		tmpl.FreezeDuration = frostDuration(tuning, wpn.Passive.FreezeBonus)
	}

	origin := phys.Position(wpn.Owner)
	angle := phys.Angle(body)
	n := max(wpn.Passive.Volley, 1)
	for i := range n {
		dir := vmath.FromAngle(angle + (float64(i)-float64(n-1)/2)*volleySpread)
		muzzle := origin.Add(dir.Scale(wpn.Length + pspec.Radius + parameter.CellSize))
		SpawnProjectile(s.world, tmpl, muzzle, dir)
		s.statFired.Add(1)
	}
	s.world.Resources.Audio.Play(core.SoundSummon, origin, 0.2)
}

// frostDuration is the victim freeze carried by a frost bolt
func frostDuration(t *parameter.Tuning, bonus time.Duration) time.Duration {
	return min(t.FrostFreeze+bonus, parameter.FrostFreezeMax)
}
