package system

import (
	"errors"
	"math"

	"github.com/lixenwraith/pixel-brawl/asset"
	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// Collision filters per body role
var (
	filterWall       = physics.Filter{Category: core.CategoryWall, Mask: core.CategoryAll}
	filterKillzone   = physics.Filter{Category: core.CategoryKillzone, Mask: core.CategoryProjectile | core.CategoryCharacter}
	filterCharacter  = physics.Filter{Category: core.CategoryCharacter, Mask: core.CategoryWall | core.CategoryCharacter | core.CategoryWeapon}
	filterSkin       = physics.Filter{Category: core.CategorySkin, Mask: core.CategoryWeapon | core.CategoryProjectile | core.CategoryCharacter}
	filterWeaponCell = physics.Filter{Category: core.CategoryWeapon, Mask: core.CategoryWeapon | core.CategoryProjectile | core.CategoryCharacter}
	filterHitbox     = physics.Filter{Category: core.CategoryHitbox, Mask: core.CategoryCharacter}
	filterProjectile = physics.Filter{Category: core.CategoryProjectile, Mask: core.CategoryWall | core.CategoryWeapon}
	filterTurret     = physics.Filter{Category: core.CategoryTurret, Mask: core.CategoryNone}
)

// BuildArena creates ground, walls and the killzone strip below the floor
func BuildArena(w *engine.World) {
	phys := w.Physics
	arena := &w.Registry.Arena
	width, height, t := w.Resources.Tuning.ArenaWidth, w.Resources.Tuning.ArenaHeight, parameter.WallThickness

	box := func(center, half vmath.Vec2, filter physics.Filter, sensor bool) core.BodyID {
		body := phys.CreateBody(physics.BodyDef{Type: physics.BodyStatic, Position: center})
		phys.CreateShape(body, physics.ShapeDef{
			Kind:        physics.ShapeBox,
			HalfExtents: half,
			Filter:      filter,
			IsSensor:    sensor,
			Color:       core.RGB{R: 90, G: 90, B: 110},
		})
		return body
	}

	arena.Ground = box(vmath.V(width/2, -t/2), vmath.V(width/2+t, t/2), filterWall, false)
	arena.Walls = []core.BodyID{
		box(vmath.V(width/2, height+t/2), vmath.V(width/2+t, t/2), filterWall, false),
		box(vmath.V(-t/2, height/2), vmath.V(t/2, height/2), filterWall, false),
		box(vmath.V(width+t/2, height/2), vmath.V(t/2, height/2), filterWall, false),
	}
	arena.Killzone = box(
		vmath.V(width/2, -parameter.KillzoneDepth),
		vmath.V(width*2, parameter.KillzoneHeight/2),
		filterKillzone, true,
	)
	arena.Built = true
}

// SpawnCharacter creates a character body with its core and skin shapes and arms it
func SpawnCharacter(w *engine.World, entry component.RosterEntry) core.BodyID {
	phys := w.Physics
	tuning := w.Resources.Tuning
	radius := tuning.CharacterRadius

	launch := vmath.FromAngle(w.Resources.Rand.Range(0, 2*math.Pi)).Scale(parameter.CharacterLaunchSpeed)
	body := phys.CreateBody(physics.BodyDef{
		Type:           physics.BodyDynamic,
		Position:       entry.Position,
		LinearVelocity: launch,
		LinearDamping:  parameter.CharacterLinearDamping,
		SleepThreshold: parameter.CharacterSleep,
	})
	coreShape := phys.CreateShape(body, physics.ShapeDef{
		Kind:        physics.ShapeCircle,
		Radius:      radius,
		Filter:      filterCharacter,
		Color:       entry.Color,
		Restitution: parameter.CharacterRestitution,
	})
	skin := phys.CreateShape(body, physics.ShapeDef{
		Kind:     physics.ShapeCircle,
		Radius:   radius + parameter.SkinMargin,
		Filter:   filterSkin,
		IsSensor: true,
		Color:    entry.Color,
	})
	w.Registry.ShapeColor.Set(skin, entry.Color)

	w.Registry.Characters.Set(body, component.CharacterComponent{
		Name:       entry.Name,
		HP:         tuning.CharacterHP,
		MaxHP:      tuning.CharacterHP,
		Radius:     radius,
		BaseColor:  entry.Color,
		Core:       coreShape,
		Skin:       skin,
		WeaponKind: component.WeaponUnarmed,
	})

	SpawnWeapon(w, body, entry.Weapon)
	return body
}

// weaponSpawner builds the weapon body of one kind; NullBody leaves the character unarmed
type weaponSpawner func(w *engine.World, character core.BodyID, kind component.WeaponKind) core.BodyID

// weaponSpawners is indexed by weapon kind
var weaponSpawners = [component.WeaponKindCount]weaponSpawner{
	component.WeaponUnarmed:       spawnUnarmed,
	component.WeaponSword:         spawnMelee,
	component.WeaponDagger:        spawnMelee,
	component.WeaponBow:           spawnRanged,
	component.WeaponKnife:         spawnRanged,
	component.WeaponShuriken:      spawnRanged,
	component.WeaponFrostStaff:    spawnRanged,
	component.WeaponBomb:          spawnRanged,
	component.WeaponElectricStaff: spawnRanged,
	component.WeaponBlowgun:       spawnRanged,
	component.WeaponWrench:        spawnMelee,
	component.WeaponFlask:         spawnRanged,
	component.WeaponFirework:      spawnRanged,
	component.WeaponKatana:        spawnMelee,
	component.WeaponVampire:       spawnMelee,
	component.WeaponAxe:           spawnMelee,
	component.WeaponHammer:        spawnMelee,
	component.WeaponSpear:         spawnMelee,
}

// SpawnWeapon arms a character through the spawn table
// A missing asset leaves the character unarmed instead of failing
func SpawnWeapon(w *engine.World, character core.BodyID, kind component.WeaponKind) core.BodyID {
	if kind < 0 || kind >= component.WeaponKindCount || !w.Registry.Characters.Has(character) {
		return core.NullBody
	}
	body := weaponSpawners[kind](w, character, kind)
	if body.IsNull() {
		return core.NullBody
	}

	c := w.Registry.Characters.Ptr(character)
	c.Weapon = body
	c.WeaponKind = kind
	w.Registry.Slots[kind] = body
	return body
}

func spawnUnarmed(*engine.World, core.BodyID, component.WeaponKind) core.BodyID {
	return core.NullBody
}

func spawnMelee(w *engine.World, character core.BodyID, kind component.WeaponKind) core.BodyID {
	return buildCellWeapon(w, character, kind)
}

// spawnRanged arms a shooter; the first shot waits one full interval
func spawnRanged(w *engine.World, character core.BodyID, kind component.WeaponKind) core.BodyID {
	body := buildCellWeapon(w, character, kind)
	if wpn := w.Registry.Weapons.Ptr(body); wpn != nil {
		wpn.NextFire = w.Now() + parameter.Weapons[kind].FireInterval
	}
	return body
}

// buildCellWeapon turns the weapon's pixel art into cell shapes on a body jointed to the character
// Contour cells are solid weapon shapes, interior cells are hitbox sensors
func buildCellWeapon(w *engine.World, character core.BodyID, kind component.WeaponKind) core.BodyID {
	phys := w.Physics
	spec := parameter.Weapons[kind]

	art, err := asset.Get(spec.Asset)
	if err != nil {
		ev := w.Resources.Log.Warn()
		if !errors.Is(err, asset.ErrNotFound) {
			ev = w.Resources.Log.Error()
		}
		ev.Err(err).Str("weapon", kind.String()).Msg("weapon not built, character stays unarmed")
		return core.NullBody
	}

	c, _ := w.Registry.Characters.Get(character)
	body := phys.CreateBody(physics.BodyDef{
		Type:           physics.BodyDynamic,
		Position:       phys.Position(character),
		AngularDamping: parameter.WeaponAngularDamping,
	})

	// Column 0 starts at the skin edge, rows are centered on the weapon axis
	grip := c.Radius + parameter.SkinMargin
	cellRadius := parameter.CellSize / 2
	wpn := component.WeaponComponent{
		Kind:      kind,
		Owner:     character,
		Damage:    spec.Damage,
		TipRadius: cellRadius,
		Length:    grip + float64(art.Width)*parameter.CellSize,
		Passive: component.PassiveState{
			CooldownScale:   1,
			Volley:          1,
			ExplosionRadius: w.Resources.Tuning.ExplosionRadius,
			ExplosionDamage: w.Resources.Tuning.ExplosionDamage,
		},
	}

	var tip vmath.Vec2
	for i, cell := range asset.ClassifyCells(art) {
		if cell == asset.CellVoid {
			continue
		}
		x, y := i%art.Width, i/art.Width
		offset := vmath.V(
			grip+(float64(x)+0.5)*parameter.CellSize,
			(float64(art.Height-1)/2-float64(y))*parameter.CellSize,
		)
		def := physics.ShapeDef{
			Kind:   physics.ShapeCircle,
			Offset: offset,
			Radius: cellRadius,
			Color:  art.Color(x, y),
		}
		if cell == asset.CellSensor {
			def.Filter = filterHitbox
			def.IsSensor = true
			wpn.Hitboxes = append(wpn.Hitboxes, phys.CreateShape(body, def))
			continue
		}
		def.Filter = filterWeaponCell
		shape := phys.CreateShape(body, def)
		wpn.Cells = append(wpn.Cells, shape)
		// Tip is the outermost solid cell, closest to the axis on ties
		if wpn.Tip.IsNull() || offset.X > tip.X || (offset.X == tip.X && math.Abs(offset.Y) < math.Abs(tip.Y)) {
			tip = offset
			wpn.Tip = shape
		}
	}

	speed := spec.MotorSpeed
	if w.Resources.Rand.Intn(2) == 0 {
		speed = -speed
	}
	wpn.Joint = phys.CreateRevoluteJoint(physics.JointDef{
		BodyA: character,
		BodyB: body,
		Motor: physics.MotorState{Enabled: true, Speed: speed, MaxTorque: parameter.WeaponMotorTorque},
	})

	w.Registry.Weapons.Set(body, wpn)
	return body
}

// SpawnProjectile fires a projectile from a template; kind, owner, source and damage come from the template
// Its TTL is scheduled into the destruction pass at spawn
func SpawnProjectile(w *engine.World, tmpl component.ProjectileComponent, pos, dir vmath.Vec2) core.BodyID {
	phys := w.Physics
	spec := parameter.Projectiles[tmpl.Kind]
	now := w.Now()

	body := phys.CreateBody(physics.BodyDef{
		Type:           physics.BodyDynamic,
		Position:       pos,
		Angle:          math.Atan2(dir.Y, dir.X),
		LinearVelocity: dir.Normalize().Scale(spec.Speed),
	})
	shape := phys.CreateShape(body, physics.ShapeDef{
		Kind:        physics.ShapeCircle,
		Radius:      spec.Radius,
		Filter:      filterProjectile,
		Color:       spec.Color,
		Restitution: spec.Restitution,
	})

	p := tmpl
	p.Shape = shape
	p.SpawnedAt = now
	p.SpawnPos = pos
	w.Registry.Projectiles.Set(body, p)
	RequestDestroy(w, body, now+spec.TTL)
	return body
}

// SpawnTurret places a static turret owned by a character; it expires through the destruction pass
func SpawnTurret(w *engine.World, owner core.BodyID, pos vmath.Vec2) core.BodyID {
	phys := w.Physics
	now := w.Now()
	color := core.RGB{R: 255, G: 150, B: 40}
	if c, ok := w.Registry.Characters.Get(owner); ok {
		color = c.BaseColor.Blend(color, 0.5)
	}

	body := phys.CreateBody(physics.BodyDef{Type: physics.BodyStatic, Position: pos})
	shape := phys.CreateShape(body, physics.ShapeDef{
		Kind:   physics.ShapeCircle,
		Radius: parameter.TurretRadius,
		Filter: filterTurret,
		Color:  color,
	})
	w.Registry.Turrets.Set(body, component.TurretComponent{
		Owner:     owner,
		Shape:     shape,
		Damage:    parameter.TurretDamage,
		NextFire:  now + parameter.TurretFireInterval,
		ExpiresAt: now + parameter.TurretLifetime,
	})
	RequestDestroy(w, body, now+parameter.TurretLifetime)
	return body
}

// StartMatch builds the arena and the roster and announces the participants
func StartMatch(w *engine.World, matchID string) {
	BuildArena(w)

	payload := &event.MatchStartPayload{MatchID: matchID}
	for _, entry := range w.Registry.Roster {
		body := SpawnCharacter(w, entry)
		c, _ := w.Registry.Characters.Get(body)
		payload.Characters = append(payload.Characters, event.ParticipantInfo{
			Body:   body,
			Name:   c.Name,
			Weapon: c.WeaponKind.String(),
		})
	}
	w.PushEvent(event.EventMatchStart, payload)

	w.Resources.Log.Info().
		Str("match", matchID).
		Int("characters", len(payload.Characters)).
		Msg("match started")
}

// RebuildWorld destroys every body the registry knows, clears all tables and starts over
func RebuildWorld(w *engine.World, matchID, reason string) {
	reg := w.Registry
	phys := w.Physics

	var bodies []core.BodyID
	bodies = append(bodies, reg.Projectiles.Keys()...)
	bodies = append(bodies, reg.Turrets.Keys()...)
	bodies = append(bodies, reg.Weapons.Keys()...)
	bodies = append(bodies, reg.Characters.Keys()...)
	if reg.Arena.Built {
		bodies = append(bodies, reg.Arena.Handles()...)
	}
	for _, body := range bodies {
		if phys.BodyValid(body) {
			phys.DestroyBody(body)
		}
	}

	reg.Clear()
	w.PushEvent(event.EventWorldReset, &event.WorldResetPayload{Reason: reason})
	StartMatch(w, matchID)
}
