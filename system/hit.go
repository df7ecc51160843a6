package system

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// attackerKind classifies the body behind an attacker shape
type attackerKind uint8

const (
	attackerNone attackerKind = iota
	attackerWeapon
	attackerProjectile
	attackerUnarmed
)

// attacker is the resolved view of an attacking body
type attacker struct {
	Body  core.BodyID
	Kind  attackerKind
	Owner core.BodyID

	// Weapon is credited with passive progression, NullBody for unarmed and turret bolts
	Weapon core.BodyID

	Damage   int
	Cooldown time.Duration
	Cause    string

	Projectile component.ProjectileComponent
}

// maxOwnerDepth bounds the ownership walk projectile -> turret -> character
const maxOwnerDepth = 4

// RootOwner walks weapon, projectile and turret ownership up to a character
// Returns NullBody when the chain ends in a destroyed or unmapped body
func RootOwner(w *engine.World, body core.BodyID) core.BodyID {
	reg := w.Registry
	for range maxOwnerDepth {
		if reg.Characters.Has(body) {
			return body
		}
		if wpn, ok := reg.Weapons.Get(body); ok {
			body = wpn.Owner
			continue
		}
		if t, ok := reg.Turrets.Get(body); ok {
			body = t.Owner
			continue
		}
		if p, ok := reg.Projectiles.Get(body); ok {
			if reg.Weapons.Has(p.Source) || reg.Turrets.Has(p.Source) {
				body = p.Source
				continue
			}
			body = p.Owner
			continue
		}
		return core.NullBody
	}
	return core.NullBody
}

// resolveAttacker classifies the owning body of an attacker shape
func resolveAttacker(w *engine.World, shape core.ShapeID) (attacker, bool) {
	reg := w.Registry
	tuning := w.Resources.Tuning
	body := w.Physics.ShapeBody(shape)
	if body.IsNull() {
		return attacker{}, false
	}

	a := attacker{Body: body, Owner: RootOwner(w, body)}

	if wpn, ok := reg.Weapons.Get(body); ok {
		a.Kind = attackerWeapon
		a.Weapon = body
		a.Damage = wpn.Damage
		a.Cooldown = weaponCooldown(tuning, wpn)
		a.Cause = wpn.Kind.String()
		return a, true
	}

	if p, ok := reg.Projectiles.Get(body); ok {
		a.Kind = attackerProjectile
		a.Projectile = p
		a.Damage = p.Damage
		if parameter.Projectiles[p.Kind].ExplosionClass {
			a.Damage = 0
		}
		a.Cooldown = tuning.ProjectileCooldown
		a.Cause = p.Kind.String()
		if reg.Weapons.Has(p.Source) {
			a.Weapon = p.Source
		}
		return a, true
	}

	if c, ok := reg.Characters.Get(body); ok && !c.Armed() {
		a.Kind = attackerUnarmed
		a.Damage = tuning.UnarmedDamage
		a.Cooldown = tuning.DefaultCooldown
		a.Cause = component.WeaponUnarmed.String()
		return a, true
	}

	return attacker{}, false
}

// weaponCooldown applies the per-kind override and the passive scale, floored at MinCooldown
func weaponCooldown(t *parameter.Tuning, wpn component.WeaponComponent) time.Duration {
	cd := parameter.Weapons[wpn.Kind].Cooldown
	if cd == 0 {
		cd = t.DefaultCooldown
	}
	if scale := wpn.Passive.CooldownScale; scale > 0 {
		cd = time.Duration(float64(cd) * scale)
	}
	return max(cd, t.MinCooldown)
}

// resolveVictim maps a skin or core shape to its character, binding the map on first sight
func resolveVictim(w *engine.World, shape core.ShapeID) (core.BodyID, bool) {
	reg := w.Registry
	if owner, ok := reg.ShapeOwner.Get(shape); ok {
		return owner, reg.Characters.Has(owner)
	}
	body := w.Physics.ShapeBody(shape)
	if !reg.Characters.Has(body) {
		return core.NullBody, false
	}
	reg.ShapeOwner.Set(shape, body)
	return body, true
}

// ResolveHit runs overlap gating, cooldown gating and damage for one victim/attacker shape touch
// Returns true when HP decreased
func ResolveHit(w *engine.World, victimShape, attackerShape core.ShapeID, point vmath.Vec2) bool {
	reg := w.Registry
	now := w.Now()

	victim, ok := resolveVictim(w, victimShape)
	if !ok {
		return false
	}
	atk, ok := resolveAttacker(w, attackerShape)
	if !ok || atk.Owner == victim || atk.Body == victim {
		return false
	}

	// Overlap counting dedups multi-cell begin noise; only the first shape pair may deal damage
	key := component.PairKey{Victim: victim, Attacker: atk.Body}
	pair, _ := reg.Pairs.Get(key)
	firstEnter := pair.Overlap == 0
	pair.Overlap++

	open := firstEnter && now >= pair.CooldownUntil
	if open {
		pair.CooldownUntil = now + atk.Cooldown
	}
	reg.Pairs.Set(key, pair)

	landed := false
	if open {
		landed = landHit(w, victim, atk, point)
		if !landed {
			w.Resources.Status.Ints.Get("hit.gated").Add(1)
		}
	} else {
		w.Resources.Status.Ints.Get("hit.gated").Add(1)
	}

	if firstEnter && atk.Kind == attackerProjectile {
		consumeProjectile(w, atk.Body)
	}
	return landed
}

// landHit applies damage and the success-branch side effects of an open gate
func landHit(w *engine.World, victim core.BodyID, atk attacker, point vmath.Vec2) bool {
	reg := w.Registry
	tuning := w.Resources.Tuning

	lost := ApplyDamage(w, victim, atk.Damage, DamageSource{
		Attacker: atk.Body,
		Owner:    atk.Owner,
		Cause:    atk.Cause,
		Point:    point,
	})
	if lost == 0 {
		return false
	}
	w.Resources.Status.Ints.Get("hit.count").Add(1)

	bank := core.SoundMelee
	if atk.Kind == attackerProjectile {
		bank = core.SoundProjectileImpact
	}
	w.Resources.Audio.Play(bank, point, hitIntensity(lost))
	w.Resources.Fx.Add(engine.FxRecord{Kind: engine.FxHitRing, From: point, Radius: 0.5, Color: core.RGBWhite, At: w.Now()})

	if !atk.Weapon.IsNull() {
		UpdateWeaponsPassives(w, atk.Weapon, HitInfo{
			Victim:     victim,
			Owner:      atk.Owner,
			Projectile: projectileBody(atk),
			Primary:    atk.Projectile.Primary,
			Point:      point,
		})
	}

	// Unarmed attackers never freeze, keeping unarmed fights from locking both sides
	if atk.Kind == attackerUnarmed {
		return true
	}

	victimFreeze := tuning.MeleeFreeze
	if atk.Kind == attackerProjectile {
		victimFreeze = tuning.ProjectileFreeze
		if atk.Projectile.FreezeDuration > 0 {
			victimFreeze = atk.Projectile.FreezeDuration
		}
	}
	freezeCharacter(w, victim, victimFreeze)

	if atk.Kind == attackerWeapon {
		if wpn, ok := reg.Weapons.Get(atk.Body); ok {
			FreezeBodyAndJoint(w, wpn.Owner, core.NullJoint, tuning.MeleeFreeze)
			FreezeBodyAndJoint(w, atk.Body, wpn.Joint, tuning.MeleeFreeze)
		}
	}
	return true
}

// freezeCharacter freezes a character and its weapon motor for the same duration
func freezeCharacter(w *engine.World, character core.BodyID, d time.Duration) {
	FreezeBodyAndJoint(w, character, core.NullJoint, d)
	if wpn, ok := w.Registry.WeaponOf(character); ok {
		c, _ := w.Registry.Characters.Get(character)
		FreezeBodyAndJoint(w, c.Weapon, wpn.Joint, d)
	}
}

func projectileBody(atk attacker) core.BodyID {
	if atk.Kind == attackerProjectile {
		return atk.Body
	}
	return core.NullBody
}

func hitIntensity(damage int) float64 {
	return min(1.0, 0.3+float64(damage)/10)
}

// EndTouch decrements the pair overlap; at 0 the pair is rearmed for first-enter detection
// The entry itself is erased once its cooldown has also passed
func EndTouch(w *engine.World, victimShape, attackerShape core.ShapeID) {
	reg := w.Registry
	victim, ok := resolveVictim(w, victimShape)
	if !ok {
		return
	}
	body := w.Physics.ShapeBody(attackerShape)
	if body.IsNull() {
		return
	}
	endPair(reg, component.PairKey{Victim: victim, Attacker: body}, w.Now())
}

func endPair(reg *engine.Registry, key component.PairKey, now time.Duration) {
	pair := reg.Pairs.Ptr(key)
	if pair == nil {
		return
	}
	if pair.Overlap > 0 {
		pair.Overlap--
	}
	if pair.Overlap == 0 && now >= pair.CooldownUntil {
		reg.Pairs.Remove(key)
	}
}

// prunePairs erases rearmed pairs whose cooldown has passed
func prunePairs(reg *engine.Registry, now time.Duration) {
	reg.Pairs.RemoveIf(func(_ component.PairKey, p component.PairState) bool {
		return p.Overlap == 0 && now >= p.CooldownUntil
	})
}
