package engine

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
)

// Registry holds every gameplay table keyed by engine handles
// Every table that can reference a body is purged when that body is destroyed
type Registry struct {
	Characters  *Store[core.BodyID, component.CharacterComponent]
	Weapons     *Store[core.BodyID, component.WeaponComponent]
	Projectiles *Store[core.BodyID, component.ProjectileComponent]
	Turrets     *Store[core.BodyID, component.TurretComponent]

	// ShapeOwner maps skin and core shapes to their character, populated lazily
	ShapeOwner *Store[core.ShapeID, core.BodyID]
	// ShapeColor caches base colors for flash restore
	ShapeColor *Store[core.ShapeID, core.RGB]

	Pairs    *Store[component.PairKey, component.PairState]
	Freezes  *Store[core.BodyID, component.FreezeRecord]
	Statuses *Store[component.StatusKey, component.StatusAccumulator]
	Clashes  *Store[component.WeaponPair, component.ClashState]

	// Schedule holds deferred destruction times of projectiles and turrets
	Schedule *Store[core.BodyID, time.Duration]

	// KillQueue collects kill requests until the end-of-step pass
	KillQueue []core.BodyID
	killed    map[core.BodyID]struct{}

	// SpawnQueue holds bodies requested by passive rules, created by the passive phase
	SpawnQueue []component.SpawnOrder

	// Slots is the weapon registry indexed by kind, most recent weapon of each kind
	Slots [component.WeaponKindCount]core.BodyID

	Arena  component.ArenaComponent
	Roster []component.RosterEntry
}

// NewRegistry creates empty tables
func NewRegistry() *Registry {
	return &Registry{
		Characters:  NewStore[core.BodyID, component.CharacterComponent](),
		Weapons:     NewStore[core.BodyID, component.WeaponComponent](),
		Projectiles: NewStore[core.BodyID, component.ProjectileComponent](),
		Turrets:     NewStore[core.BodyID, component.TurretComponent](),
		ShapeOwner:  NewStore[core.ShapeID, core.BodyID](),
		ShapeColor:  NewStore[core.ShapeID, core.RGB](),
		Pairs:       NewStore[component.PairKey, component.PairState](),
		Freezes:     NewStore[core.BodyID, component.FreezeRecord](),
		Statuses:    NewStore[component.StatusKey, component.StatusAccumulator](),
		Clashes:     NewStore[component.WeaponPair, component.ClashState](),
		Schedule:    NewStore[core.BodyID, time.Duration](),
		killed:      make(map[core.BodyID]struct{}),
	}
}

// RequestKill appends a character to the kill queue once per lifetime of the handle
// Returns false if the character was already queued
func (r *Registry) RequestKill(body core.BodyID) bool {
	if _, dup := r.killed[body]; dup {
		return false
	}
	r.killed[body] = struct{}{}
	r.KillQueue = append(r.KillQueue, body)
	return true
}

// KillRequested reports whether a kill was already queued for the handle
func (r *Registry) KillRequested(body core.BodyID) bool {
	_, ok := r.killed[body]
	return ok
}

// DrainKills returns the queued kills and empties the queue
// Dedup memory is kept until Forget so a late request for a dead handle stays ignored
func (r *Registry) DrainKills() []core.BodyID {
	q := r.KillQueue
	r.KillQueue = nil
	return q
}

// Forget drops kill dedup memory for a destroyed handle
func (r *Registry) Forget(body core.BodyID) {
	delete(r.killed, body)
}

// ScheduleDestroy records a destruction time, keeping the earliest of repeated requests
func (r *Registry) ScheduleDestroy(body core.BodyID, at time.Duration) {
	if cur, ok := r.Schedule.Get(body); ok && cur <= at {
		return
	}
	r.Schedule.Set(body, at)
}

// PurgeBody removes every entry keyed by or referencing the body handle
// shapes are the body's shapes, collected before the engine invalidates them
func (r *Registry) PurgeBody(body core.BodyID, shapes []core.ShapeID) {
	r.Characters.Remove(body)
	r.Weapons.Remove(body)
	r.Projectiles.Remove(body)
	r.Turrets.Remove(body)
	r.Freezes.Remove(body)
	r.Schedule.Remove(body)

	for _, s := range shapes {
		r.ShapeOwner.Remove(s)
		r.ShapeColor.Remove(s)
	}
	r.ShapeOwner.RemoveIf(func(_ core.ShapeID, owner core.BodyID) bool {
		return owner == body
	})

	r.Pairs.RemoveIf(func(k component.PairKey, _ component.PairState) bool {
		return k.Victim == body || k.Attacker == body
	})
	r.Statuses.RemoveIf(func(k component.StatusKey, _ component.StatusAccumulator) bool {
		return k.Victim == body
	})
	r.Clashes.RemoveIf(func(k component.WeaponPair, _ component.ClashState) bool {
		return k.A == body || k.B == body
	})

	// Kill credit must never name a recycled handle
	for _, k := range r.Statuses.Keys() {
		if acc := r.Statuses.Ptr(k); acc.Source == body {
			acc.Source = core.NullBody
		}
	}
	for _, c := range r.Characters.Keys() {
		if ch := r.Characters.Ptr(c); ch.LastAttacker == body {
			ch.LastAttacker = core.NullBody
		}
	}

	for i := range r.Slots {
		if r.Slots[i] == body {
			r.Slots[i] = core.NullBody
		}
	}
}

// References reports whether any table still holds the handle; used by tests and integrity checks
func (r *Registry) References(body core.BodyID) bool {
	if r.Characters.Has(body) || r.Weapons.Has(body) || r.Projectiles.Has(body) ||
		r.Turrets.Has(body) || r.Freezes.Has(body) || r.Schedule.Has(body) {
		return true
	}
	for _, k := range r.Pairs.Keys() {
		if k.Victim == body || k.Attacker == body {
			return true
		}
	}
	for _, k := range r.Statuses.Keys() {
		if acc, _ := r.Statuses.Get(k); k.Victim == body || acc.Source == body {
			return true
		}
	}
	for _, c := range r.Characters.Keys() {
		if ch, _ := r.Characters.Get(c); ch.LastAttacker == body {
			return true
		}
	}
	for _, k := range r.Clashes.Keys() {
		if k.A == body || k.B == body {
			return true
		}
	}
	for _, s := range r.ShapeOwner.Keys() {
		if owner, _ := r.ShapeOwner.Get(s); owner == body {
			return true
		}
	}
	for _, slot := range r.Slots {
		if slot == body {
			return true
		}
	}
	return false
}

// WeaponOf returns the live weapon component of a character
func (r *Registry) WeaponOf(character core.BodyID) (component.WeaponComponent, bool) {
	c, ok := r.Characters.Get(character)
	if !ok || c.Weapon.IsNull() {
		return component.WeaponComponent{}, false
	}
	return r.Weapons.Get(c.Weapon)
}

// Clear empties every table, keeping the roster
func (r *Registry) Clear() {
	r.Characters.Clear()
	r.Weapons.Clear()
	r.Projectiles.Clear()
	r.Turrets.Clear()
	r.ShapeOwner.Clear()
	r.ShapeColor.Clear()
	r.Pairs.Clear()
	r.Freezes.Clear()
	r.Statuses.Clear()
	r.Clashes.Clear()
	r.Schedule.Clear()
	r.KillQueue = nil
	r.SpawnQueue = nil
	clear(r.killed)
	r.Slots = [component.WeaponKindCount]core.BodyID{}
	r.Arena = component.ArenaComponent{}
}
