package system

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// DamageSource describes who is credited with an HP decrease
type DamageSource struct {
	Attacker core.BodyID // Body that touched, NullBody for ticks and blasts
	Owner    core.BodyID // Character credited with the kill
	Cause    string
	Point    vmath.Vec2
}

// ApplyDamage lowers a character's HP clamped at 0 and returns the HP actually lost
// On loss it records the hit flash, emits EventHitLanded and enqueues a kill request at 0 HP
func ApplyDamage(w *engine.World, victim core.BodyID, amount int, src DamageSource) int {
	c := w.Registry.Characters.Ptr(victim)
	if c == nil || amount <= 0 || c.HP == 0 {
		return 0
	}

	before := c.HP
	c.HP = max(0, c.HP-amount)
	lost := before - c.HP

	c.HitFlashAt = w.Now()
	c.HitFlash = true
	if !src.Owner.IsNull() {
		c.LastAttacker = src.Owner
	}
	c.LastCause = src.Cause
	hp := c.HP
	skin := c.Skin

	flashShape(w, skin)

	w.PushEvent(event.EventHitLanded, &event.HitLandedPayload{
		Victim:   victim,
		Attacker: src.Attacker,
		Owner:    src.Owner,
		Cause:    src.Cause,
		Damage:   lost,
		HP:       hp,
		Point:    src.Point,
	})

	if hp == 0 {
		RequestKillCharacter(w, victim)
	}
	return lost
}

// Heal raises HP up to MaxHP; lifesteal is the only caller
func Heal(w *engine.World, character core.BodyID, amount int) int {
	c := w.Registry.Characters.Ptr(character)
	if c == nil || amount <= 0 || c.HP == 0 {
		return 0
	}
	before := c.HP
	c.HP = min(c.MaxHP, c.HP+amount)
	return c.HP - before
}

// RequestKillCharacter enqueues a character for the end-of-step kill pass
// Returns false for unknown or already queued handles
func RequestKillCharacter(w *engine.World, character core.BodyID) bool {
	if !w.Registry.Characters.Has(character) {
		return false
	}
	if !w.Registry.RequestKill(character) {
		return false
	}
	w.Resources.Log.Debug().Uint64("body", uint64(character)).Msg("kill requested")
	return true
}

// RequestDestroy schedules a projectile or turret for the destruction pass
// Repeated requests keep the earliest time
func RequestDestroy(w *engine.World, body core.BodyID, at time.Duration) {
	w.Registry.ScheduleDestroy(body, at)
}

// flashShape caches the base color once and paints the shape white
func flashShape(w *engine.World, shape core.ShapeID) {
	if !w.Physics.ShapeValid(shape) {
		return
	}
	if !w.Registry.ShapeColor.Has(shape) {
		w.Registry.ShapeColor.Set(shape, w.Physics.ShapeColor(shape))
	}
	w.Physics.SetShapeColor(shape, core.RGBWhite)
}

// restoreShape paints a shape back to its cached base color
func restoreShape(w *engine.World, shape core.ShapeID) {
	base, ok := w.Registry.ShapeColor.Get(shape)
	if !ok || !w.Physics.ShapeValid(shape) {
		return
	}
	w.Physics.SetShapeColor(shape, base)
}
