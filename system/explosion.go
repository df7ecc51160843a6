package system

import (
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// Blast describes one detonation
type Blast struct {
	Center vmath.Vec2
	Radius float64
	Damage int
	Owner  core.BodyID
	Weapon core.BodyID // Credited with passives, may be NullBody
	Cause  string
}

// TriggerExplosion damages every character within Radius plus character radius exactly once
// The owner is excluded; returns the number of characters damaged
func TriggerExplosion(w *engine.World, b Blast) int {
	phys := w.Physics
	tuning := w.Resources.Tuning
	reach := b.Radius + tuning.CharacterRadius

	// Query wide enough to catch skin sensors, then filter on exact center distance
	shapes := phys.OverlapCircle(b.Center, reach+parameter.SkinMargin, core.CategorySkin|core.CategoryCharacter)
	seen := make(map[core.BodyID]struct{}, len(shapes))
	var victims []core.BodyID
	for _, shape := range shapes {
		victim, ok := resolveVictim(w, shape)
		if !ok || victim == b.Owner {
			continue
		}
		if _, dup := seen[victim]; dup {
			continue
		}
		seen[victim] = struct{}{}
		if phys.Position(victim).Distance(b.Center) > reach {
			continue
		}
		victims = append(victims, victim)
	}

	hits := 0
	for _, victim := range victims {
		lost := ApplyDamage(w, victim, b.Damage, DamageSource{Owner: b.Owner, Cause: b.Cause, Point: b.Center})
		if lost == 0 {
			continue
		}
		hits++
		if !w.IsFrozen(victim) {
			dir := phys.Position(victim).Sub(b.Center).Normalize()
			phys.ApplyLinearImpulse(victim, dir.Scale(parameter.ExplosionImpulse))
		}
		if !b.Weapon.IsNull() {
			UpdateWeaponsPassives(w, b.Weapon, HitInfo{Victim: victim, Owner: b.Owner, Point: b.Center})
		}
	}

	w.Resources.Fx.Add(engine.FxRecord{
		Kind:   engine.FxExplosion,
		From:   b.Center,
		Radius: b.Radius,
		Color:  core.RGB{R: 255, G: 140, B: 40},
		At:     w.Now(),
	})
	w.Resources.Audio.Play(core.SoundExplosion, b.Center, min(1.0, b.Radius/parameter.ExplosionRadiusMax+0.3))
	w.PushEvent(event.EventExplosion, &event.ExplosionPayload{
		Owner:  b.Owner,
		Center: b.Center,
		Radius: b.Radius,
		Damage: b.Damage,
		Hits:   hits,
	})
	w.Resources.Status.Ints.Get("explosion.count").Add(1)

	return hits
}
