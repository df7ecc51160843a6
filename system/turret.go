package system

import (
	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

// TurretSystem fires turret bolts at the nearest enemy of each turret's owner
// Expiry is handled by the destruction schedule set at summon
type TurretSystem struct {
	world   *engine.World
	enabled bool
}

func NewTurretSystem(world *engine.World) engine.System {
	s := &TurretSystem{world: world}
	s.Init()
	return s
}

func (s *TurretSystem) Init() {
	s.enabled = true
}

func (s *TurretSystem) Name() string {
	return "turret"
}

func (s *TurretSystem) Priority() int {
	return parameter.PriorityTurret
}

func (s *TurretSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *TurretSystem) HandleEvent(ev event.GameEvent) {
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

func (s *TurretSystem) Update() {
	if !s.enabled {
		return
	}
	reg := s.world.Registry
	phys := s.world.Physics
	now := s.world.Now()

	for _, body := range reg.Turrets.Keys() {
		t := reg.Turrets.Ptr(body)
		if now < t.NextFire || now >= t.ExpiresAt || !phys.BodyValid(body) {
			continue
		}
		t.NextFire = now + parameter.TurretFireInterval

		pos := phys.Position(body)
		target := s.nearestEnemy(body, t.Owner)
		if target.IsNull() {
			continue
		}
		dir := phys.Position(target).Sub(pos).Normalize()
		if dir.IsZero() {
			continue
		}

		bolt := parameter.Projectiles[component.ProjectileTurretBolt]
		SpawnProjectile(s.world, component.ProjectileComponent{
			Kind:       component.ProjectileTurretBolt,
			Owner:      t.Owner,
			Source:     body,
			SourceKind: component.WeaponWrench,
			Damage:     t.Damage,
		}, pos.Add(dir.Scale(parameter.TurretRadius+bolt.Radius+0.05)), dir)
	}
}

func (s *TurretSystem) nearestEnemy(turret, owner core.BodyID) core.BodyID {
	phys := s.world.Physics
	from := phys.Position(turret)
	best := core.NullBody
	bestDist := 0.0
	for _, body := range s.world.Registry.Characters.Keys() {
		if body == owner || s.world.Registry.KillRequested(body) {
			continue
		}
		d := phys.Position(body).DistanceSq(from)
		if best.IsNull() || d < bestDist {
			best, bestDist = body, d
		}
	}
	return best
}
