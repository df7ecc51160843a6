package system

import (
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// ContactSystem drains the previous physics step's contact and sensor events
// and routes each by the category pair of its two shapes; it mutates nothing itself
type ContactSystem struct {
	world *engine.World

	statEvents  *atomic.Int64
	statSkipped *atomic.Int64

	enabled bool
}

func NewContactSystem(world *engine.World) engine.System {
	s := &ContactSystem{
		world: world,
	}

	s.statEvents = world.Resources.Status.Ints.Get("contact.events")
	s.statSkipped = world.Resources.Status.Ints.Get("contact.skipped")

	s.Init()
	return s
}

func (s *ContactSystem) Init() {
	s.statEvents.Store(0)
	s.statSkipped.Store(0)
	s.enabled = true
}

func (s *ContactSystem) Name() string {
	return "contact"
}

func (s *ContactSystem) Priority() int {
	return parameter.PriorityContact
}

func (s *ContactSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *ContactSystem) HandleEvent(ev event.GameEvent) {
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

func (s *ContactSystem) Update() {
	if !s.enabled {
		return
	}
	phys := s.world.Physics

	// Arrays are only valid until the next engine step, which runs later in this pipeline
	sensors := phys.SensorEvents()
	contacts := phys.ContactEvents()

	for _, ev := range sensors.Begin {
		s.sensorBegin(ev)
	}
	for _, ev := range contacts.Begin {
		s.contactBegin(ev)
	}
	for _, ev := range contacts.Hit {
		s.contactHit(ev)
	}
	for _, ev := range sensors.End {
		s.sensorEnd(ev)
	}
	for _, ev := range contacts.End {
		s.contactEnd(ev)
	}

	prunePairs(s.world.Registry, s.world.Now())
}

// classify returns the filter category of a live shape
func (s *ContactSystem) classify(shape core.ShapeID) (core.Category, bool) {
	if !s.world.Physics.ShapeValid(shape) {
		s.statSkipped.Add(1)
		return core.CategoryNone, false
	}
	return s.world.Physics.ShapeFilter(shape).Category, true
}

func (s *ContactSystem) sensorBegin(ev physics.SensorEvent) {
	sensorCat, ok := s.classify(ev.SensorShape)
	if !ok {
		return
	}
	visitorCat, ok := s.classify(ev.VisitorShape)
	if !ok {
		return
	}
	s.statEvents.Add(1)
	phys := s.world.Physics
	point := phys.Position(phys.ShapeBody(ev.SensorShape)).Add(phys.Position(phys.ShapeBody(ev.VisitorShape))).Scale(0.5)

	switch {
	case sensorCat.Has(core.CategoryKillzone):
		s.killzone(ev.VisitorShape, visitorCat)

	case sensorCat.Has(core.CategorySkin):
		// Character bodies only attack when unarmed; resolveAttacker rejects armed ones
		if visitorCat.Has(core.CategoryWeapon | core.CategoryProjectile | core.CategoryCharacter) {
			ResolveHit(s.world, ev.SensorShape, ev.VisitorShape, point)
		}

	case sensorCat.Has(core.CategoryHitbox):
		if visitorCat.Has(core.CategoryCharacter) {
			ResolveHit(s.world, ev.VisitorShape, ev.SensorShape, point)
		}
	}
}

func (s *ContactSystem) sensorEnd(ev physics.SensorEvent) {
	sensorCat, ok := s.classify(ev.SensorShape)
	if !ok {
		return
	}
	if _, ok := s.classify(ev.VisitorShape); !ok {
		return
	}
	switch {
	case sensorCat.Has(core.CategorySkin):
		EndTouch(s.world, ev.SensorShape, ev.VisitorShape)
	case sensorCat.Has(core.CategoryHitbox):
		EndTouch(s.world, ev.VisitorShape, ev.SensorShape)
	}
}

// killzone removes projectiles immediately and kill-requests characters
func (s *ContactSystem) killzone(visitor core.ShapeID, cat core.Category) {
	body := s.world.Physics.ShapeBody(visitor)
	switch {
	case cat.Has(core.CategoryProjectile):
		RequestDestroy(s.world, body, s.world.Now())
	case cat.Has(core.CategoryCharacter):
		c := s.world.Registry.Characters.Ptr(body)
		if c == nil {
			return
		}
		c.HP = 0
		c.LastCause = "killzone"
		RequestKillCharacter(s.world, body)
	}
}

func (s *ContactSystem) contactBegin(ev physics.TouchEvent) {
	catA, ok := s.classify(ev.ShapeA)
	if !ok {
		return
	}
	catB, ok := s.classify(ev.ShapeB)
	if !ok {
		return
	}
	s.statEvents.Add(1)
	phys := s.world.Physics
	bodyA, bodyB := phys.ShapeBody(ev.ShapeA), phys.ShapeBody(ev.ShapeB)

	switch {
	case catA.Has(core.CategoryWeapon) && catB.Has(core.CategoryWeapon):
		mid := phys.Position(bodyA).Add(phys.Position(bodyB)).Scale(0.5)
		BeginClash(s.world, bodyA, bodyB, mid)

	case catA.Has(core.CategoryProjectile) && catB.Has(core.CategoryWall|core.CategoryWeapon):
		s.projectileTouch(bodyA, bodyB, true)

	case catB.Has(core.CategoryProjectile) && catA.Has(core.CategoryWall|core.CategoryWeapon):
		s.projectileTouch(bodyB, bodyA, true)
	}
}

func (s *ContactSystem) contactEnd(ev physics.TouchEvent) {
	catA, ok := s.classify(ev.ShapeA)
	if !ok {
		return
	}
	catB, ok := s.classify(ev.ShapeB)
	if !ok {
		return
	}
	phys := s.world.Physics
	bodyA, bodyB := phys.ShapeBody(ev.ShapeA), phys.ShapeBody(ev.ShapeB)

	switch {
	case catA.Has(core.CategoryWeapon) && catB.Has(core.CategoryWeapon):
		EndClash(s.world, bodyA, bodyB)
	case catA.Has(core.CategoryProjectile):
		s.projectileTouch(bodyA, bodyB, false)
	case catB.Has(core.CategoryProjectile):
		s.projectileTouch(bodyB, bodyA, false)
	}
}

// projectileTouch counts shape overlaps between a projectile and an obstacle body
// so a multi-cell weapon is one touch for rebound counting
func (s *ContactSystem) projectileTouch(projectile, obstacle core.BodyID, begin bool) {
	reg := s.world.Registry
	p, ok := reg.Projectiles.Get(projectile)
	if !ok || obstacle == p.Source {
		return
	}
	key := component.PairKey{Victim: obstacle, Attacker: projectile}
	if !begin {
		endPair(reg, key, s.world.Now())
		return
	}

	pair, _ := reg.Pairs.Get(key)
	first := pair.Overlap == 0
	pair.Overlap++
	reg.Pairs.Set(key, pair)
	if first {
		consumeProjectile(s.world, projectile)
	}
}

// contactHit plays impact audio for projectiles striking walls and weapons
func (s *ContactSystem) contactHit(ev physics.HitEvent) {
	catA, ok := s.classify(ev.ShapeA)
	if !ok {
		return
	}
	catB, ok := s.classify(ev.ShapeB)
	if !ok {
		return
	}
	if !(catA | catB).Has(core.CategoryProjectile) {
		return
	}
	s.world.Resources.Audio.Play(core.SoundWallImpact, ev.Point, impactIntensity(ev.ApproachSpeed))
}

func impactIntensity(speed float64) float64 {
	return vmath.Clamp(speed/20, 0.1, 1)
}
