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

// HitInfo is the context of a successful hit handed to passive rules
type HitInfo struct {
	Victim core.BodyID
	Owner  core.BodyID

	// Projectile is the hitting projectile, NullBody for melee and blasts
	Projectile core.BodyID
	Primary    bool

	Point vmath.Vec2
}

// passiveRule mutates one weapon's progression after a successful hit
type passiveRule func(w *engine.World, weapon core.BodyID, wpn *component.WeaponComponent, hit HitInfo)

// passiveRules is indexed by weapon kind; nil entries have no progression
var passiveRules = [component.WeaponKindCount]passiveRule{
	component.WeaponSword:         ruleSword,
	component.WeaponDagger:        ruleDagger,
	component.WeaponBow:           ruleBow,
	component.WeaponKnife:         ruleKnife,
	component.WeaponShuriken:      ruleShuriken,
	component.WeaponFrostStaff:    ruleFrostStaff,
	component.WeaponBomb:          ruleBomb,
	component.WeaponElectricStaff: ruleElectricStaff,
	component.WeaponBlowgun:       ruleBlowgun,
	component.WeaponWrench:        ruleWrench,
	component.WeaponFlask:         ruleFlask,
	component.WeaponFirework:      ruleFirework,
	component.WeaponKatana:        ruleKatana,
	component.WeaponVampire:       ruleVampire,
	component.WeaponAxe:           ruleAxe,
	component.WeaponHammer:        ruleHammer,
	component.WeaponSpear:         ruleSpear,
}

// UpdateWeaponsPassives advances the progression of a weapon after a hit that decreased HP
func UpdateWeaponsPassives(w *engine.World, weapon core.BodyID, hit HitInfo) {
	wpn := w.Registry.Weapons.Ptr(weapon)
	if wpn == nil {
		return
	}
	wpn.Passive.Hits++
	if rule := passiveRules[wpn.Kind]; rule != nil {
		rule(w, weapon, wpn, hit)
	}
}

func ruleSword(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	wpn.Damage = min(wpn.Damage+1, parameter.SwordDamageMax)
}

func ruleDagger(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	scale := wpn.Passive.CooldownScale
	if scale <= 0 {
		scale = 1
	}
	wpn.Passive.CooldownScale = math.Max(scale*parameter.DaggerCooldownDecay, parameter.DaggerCooldownFloor)
}

func ruleBow(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	if wpn.Passive.Hits%parameter.BowHitsPerVolley == 0 {
		wpn.Passive.Volley = min(wpn.Passive.Volley+1, parameter.BowVolleyMax)
	}
}

// ruleKnife grows the clone count; a primary knife fans its clones out from the hit point
func ruleKnife(w *engine.World, weapon core.BodyID, wpn *component.WeaponComponent, hit HitInfo) {
	wpn.Passive.Clones = min(wpn.Passive.Clones+1, parameter.KnifeCloneMax)
	if hit.Projectile.IsNull() || !hit.Primary {
		return
	}
	p, ok := w.Registry.Projectiles.Get(hit.Projectile)
	if !ok {
		return
	}
	base := w.Physics.LinearVelocity(hit.Projectile)
	heading := math.Atan2(base.Y, base.X)
	// Clones fan forward around the throw heading and spawn past the victim's far side
	n := wpn.Passive.Clones
	reach := 2*w.Resources.Tuning.CharacterRadius + parameter.SkinMargin + 0.3
	for i := range n {
		offset := (float64(i) - float64(n-1)/2) * 0.35
		dir := vmath.FromAngle(heading + offset)
		clone := p
		clone.Primary = false
		clone.Source = weapon
		queueSpawn(w, component.SpawnOrder{
			Kind:      component.SpawnProjectile,
			Owner:     hit.Owner,
			Position:  hit.Point.Add(dir.Scale(reach)),
			Direction: dir,
			Template:  clone,
		})
	}
}

func ruleShuriken(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	wpn.Passive.Rebounds = min(wpn.Passive.Rebounds+1, parameter.ShurikenReboundMax)
}

func ruleFrostStaff(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	limit := parameter.FrostFreezeMax - w.Resources.Tuning.FrostFreeze
	wpn.Passive.FreezeBonus = min(wpn.Passive.FreezeBonus+parameter.FrostFreezeStep, max(limit, 0))
}

func ruleBomb(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	wpn.Passive.ExplosionRadius = math.Min(wpn.Passive.ExplosionRadius+parameter.BombRadiusStep, parameter.ExplosionRadiusMax)
	wpn.Passive.ExplosionDamage += parameter.BombDamageStep
}

// ruleElectricStaff arcs a bolt hit to the nearest other character in range, then grows arc damage
func ruleElectricStaff(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, hit HitInfo) {
	if !hit.Projectile.IsNull() {
		arc(w, hit, parameter.ArcDamage+wpn.Passive.ArcDamage)
	}
	wpn.Passive.ArcDamage += parameter.ElectricArcStep
}

func arc(w *engine.World, hit HitInfo, damage int) {
	reg := w.Registry
	from := w.Physics.Position(hit.Victim)

	target := core.NullBody
	best := parameter.ArcRadius * parameter.ArcRadius
	for _, body := range reg.Characters.Keys() {
		if body == hit.Victim || body == hit.Owner {
			continue
		}
		if d := w.Physics.Position(body).DistanceSq(from); d <= best {
			best = d
			target = body
		}
	}
	if target.IsNull() {
		return
	}

	to := w.Physics.Position(target)
	ApplyDamage(w, target, damage, DamageSource{Owner: hit.Owner, Cause: "arc", Point: to})
	w.Resources.Fx.Add(engine.FxRecord{Kind: engine.FxArc, From: from, To: to, Color: core.RGB{R: 255, G: 240, B: 80}, At: w.Now()})
	w.Resources.Audio.Play(core.SoundZap, to, 0.6)
}

func ruleBlowgun(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, hit HitInfo) {
	wpn.Passive.StatusStacks = min(wpn.Passive.StatusStacks+1, parameter.BlowgunStacksMax)
	AddStatus(w, hit.Victim, component.StatusPoison, hit.Owner, wpn.Passive.StatusStacks)
}

// ruleWrench summons a turret beside the owner every few hits
func ruleWrench(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, hit HitInfo) {
	if wpn.Passive.Hits%parameter.TurretHitsToSummon != 0 || wpn.Passive.Turrets >= parameter.TurretMax {
		return
	}
	wpn.Passive.Turrets++
	if !w.Physics.BodyValid(wpn.Owner) {
		return
	}
	angle := w.Resources.Rand.Range(0, 2*math.Pi)
	offset := vmath.FromAngle(angle).Scale(w.Resources.Tuning.CharacterRadius*2 + parameter.TurretRadius)
	queueSpawn(w, component.SpawnOrder{
		Kind:     component.SpawnTurret,
		Owner:    wpn.Owner,
		Position: w.Physics.Position(wpn.Owner).Add(offset),
	})
}

func ruleFlask(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	if wpn.Passive.Hits%parameter.FlaskHitsPerDamage == 0 {
		wpn.Damage = min(wpn.Damage+1, parameter.FlaskDamageMax)
	}
}

func ruleFirework(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	if wpn.Passive.Hits%parameter.FireworkHitsPerClone == 0 {
		wpn.Passive.Clones = min(wpn.Passive.Clones+1, parameter.FireworkCloneMax)
	}
}

func ruleKatana(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, hit HitInfo) {
	wpn.Passive.StatusStacks = min(wpn.Passive.StatusStacks+1, parameter.KatanaStacksMax)
	AddStatus(w, hit.Victim, component.StatusSlash, hit.Owner, wpn.Passive.StatusStacks)
	if w.Physics.BodyValid(hit.Victim) {
		pos := w.Physics.Position(hit.Victim)
		w.Resources.Fx.Add(engine.FxRecord{Kind: engine.FxSlashLine, From: hit.Point, To: pos, Color: core.RGB{R: 220, G: 220, B: 255}, At: w.Now()})
	}
}

// ruleVampire heals the owner on every hit; the heal grows every few hits
func ruleVampire(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, hit HitInfo) {
	if wpn.Passive.Hits%parameter.VampireHitsPerLifesteal == 0 {
		wpn.Passive.Lifesteal = min(wpn.Passive.Lifesteal+1, parameter.VampireLifestealMax)
	}
	Heal(w, hit.Owner, 1+wpn.Passive.Lifesteal)
}

func ruleAxe(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	wpn.Damage = min(wpn.Damage+parameter.AxeDamageStep, parameter.AxeDamageMax)
}

func ruleHammer(_ *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	grown := int(math.Ceil(float64(wpn.Damage) * parameter.HammerDamageFactor))
	wpn.Damage = min(grown, parameter.HammerDamageMax)
}

// ruleSpear grows the tip cell toward the reach cap
func ruleSpear(w *engine.World, _ core.BodyID, wpn *component.WeaponComponent, _ HitInfo) {
	if !w.Physics.ShapeValid(wpn.Tip) {
		return
	}
	base := parameter.CellSize / 2
	wpn.TipRadius = math.Min(wpn.TipRadius+parameter.SpearReachStep, base+parameter.SpearReachMax)
	w.Physics.SetShapeRadius(wpn.Tip, wpn.TipRadius)
}

func queueSpawn(w *engine.World, order component.SpawnOrder) {
	w.Registry.SpawnQueue = append(w.Registry.SpawnQueue, order)
}

// PassiveSystem creates the bodies requested by passive rules during the step
type PassiveSystem struct {
	world *engine.World

	statSpawned *atomic.Int64

	enabled bool
}

func NewPassiveSystem(world *engine.World) engine.System {
	s := &PassiveSystem{
		world: world,
	}

	s.statSpawned = world.Resources.Status.Ints.Get("passive.spawned")

	s.Init()
	return s
}

func (s *PassiveSystem) Init() {
	s.statSpawned.Store(0)
	s.enabled = true
}

func (s *PassiveSystem) Name() string {
	return "passive"
}

func (s *PassiveSystem) Priority() int {
	return parameter.PriorityPassive
}

func (s *PassiveSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *PassiveSystem) HandleEvent(ev event.GameEvent) {
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

func (s *PassiveSystem) Update() {
	if !s.enabled {
		return
	}
	reg := s.world.Registry
	orders := reg.SpawnQueue
	reg.SpawnQueue = nil

	for _, order := range orders {
		// Owner died between the hit and this phase
		if !reg.Characters.Has(order.Owner) {
			continue
		}
		var body core.BodyID
		switch order.Kind {
		case component.SpawnProjectile:
			body = SpawnProjectile(s.world, order.Template, order.Position, order.Direction)
		case component.SpawnTurret:
			body = SpawnTurret(s.world, order.Owner, order.Position)
		}
		if !body.IsNull() {
			s.statSpawned.Add(1)
			s.world.Resources.Audio.Play(core.SoundSummon, order.Position, 0.4)
		}
	}
}
