package system

import (
	"math"
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// consumeProjectile applies the per-kind touch rule on a projectile's first touch of a body
func consumeProjectile(w *engine.World, body core.BodyID) {
	p := w.Registry.Projectiles.Ptr(body)
	if p == nil {
		return
	}
	spec := &parameter.Projectiles[p.Kind]
	switch {
	case spec.ConsumeOnTouch:
		RequestDestroy(w, body, w.Now())
	case spec.Rebounds > 0:
		p.Rebounds--
		if p.Rebounds < 0 {
			RequestDestroy(w, body, w.Now())
		}
	}
}

// destroyNow purges every table referencing the body, then invalidates it in the engine
func destroyNow(w *engine.World, body core.BodyID) {
	var shapes []core.ShapeID
	if w.Physics.BodyValid(body) {
		shapes = w.Physics.BodyShapes(body)
	}
	w.Registry.PurgeBody(body, shapes)
	if w.Physics.BodyValid(body) {
		w.Physics.DestroyBody(body)
	}
}

// detonate runs the explosion of an explosion-class projectile before its body is removed
func detonate(w *engine.World, body core.BodyID, p component.ProjectileComponent) {
	center := w.Physics.Position(body)
	weapon := core.NullBody
	if w.Registry.Weapons.Has(p.Source) {
		weapon = p.Source
	}

	TriggerExplosion(w, Blast{
		Center: center,
		Radius: p.ExplosionRadius,
		Damage: p.ExplosionDamage,
		Owner:  p.Owner,
		Weapon: weapon,
		Cause:  p.Kind.String(),
	})

	// Only primaries fan out, clones never spawn clones
	if !p.Primary || weapon.IsNull() {
		return
	}
	wpn, _ := w.Registry.Weapons.Get(weapon)
	if p.Kind != component.ProjectileFirework || wpn.Passive.Clones == 0 {
		return
	}
	n := wpn.Passive.Clones
	for i := range n {
		dir := vmath.FromAngle(2 * math.Pi * float64(i) / float64(n))
		clone := p
		clone.Primary = false
		w.Registry.SpawnQueue = append(w.Registry.SpawnQueue, component.SpawnOrder{
			Kind:      component.SpawnProjectile,
			Owner:     p.Owner,
			Position:  center.Add(dir.Scale(p.ExplosionRadius * 0.5)),
			Direction: dir,
			Template:  clone,
		})
	}
}

// DestroySystem flushes the deferred destruction schedule of projectiles and turrets
type DestroySystem struct {
	world *engine.World

	statDestroyed *atomic.Int64
	statPending   *atomic.Int64

	enabled bool
}

func NewDestroySystem(world *engine.World) engine.System {
	s := &DestroySystem{
		world: world,
	}

	s.statDestroyed = world.Resources.Status.Ints.Get("destroy.count")
	s.statPending = world.Resources.Status.Ints.Get("destroy.pending")

	s.Init()
	return s
}

func (s *DestroySystem) Init() {
	s.statDestroyed.Store(0)
	s.statPending.Store(0)
	s.enabled = true
}

func (s *DestroySystem) Name() string {
	return "destroy"
}

func (s *DestroySystem) Priority() int {
	return parameter.PriorityDestroy
}

func (s *DestroySystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *DestroySystem) HandleEvent(ev event.GameEvent) {
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

// Update pops every entry whose time has arrived
func (s *DestroySystem) Update() {
	if !s.enabled {
		return
	}
	reg := s.world.Registry
	now := s.world.Now()

	for _, body := range reg.Schedule.Keys() {
		at, ok := reg.Schedule.Get(body)
		if !ok || at > now {
			continue
		}
		reg.Schedule.Remove(body)

		// Double destroy guard: the body may have gone with its owner or a world reset
		if !s.world.Physics.BodyValid(body) {
			reg.PurgeBody(body, nil)
			continue
		}

		if p, ok := reg.Projectiles.Get(body); ok && parameter.Projectiles[p.Kind].ExplosionClass {
			detonate(s.world, body, p)
		}

		destroyNow(s.world, body)
		s.statDestroyed.Add(1)
		s.world.Resources.Log.Debug().Uint64("body", uint64(body)).Msg("destroyed")
	}
	s.statPending.Store(int64(reg.Schedule.Len()))
}
