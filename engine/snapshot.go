package engine

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
)

// CharacterView is the read-only overlay view of one character
type CharacterView struct {
	ID      uint64         `msgpack:"id"`
	Name    string         `msgpack:"name"`
	Weapon  string         `msgpack:"weapon"`
	Damage  int            `msgpack:"dmg"`
	HP      int            `msgpack:"hp"`
	MaxHP   int            `msgpack:"max"`
	Color   uint32         `msgpack:"color"`
	X       float64        `msgpack:"x"`
	Y       float64        `msgpack:"y"`
	Angle   float64        `msgpack:"a"`
	Frozen  bool           `msgpack:"frozen"`
	Flash   bool           `msgpack:"flash"`
	Kills   int            `msgpack:"kills"`
	Passive map[string]int `msgpack:"passive,omitempty"`
}

// ProjectileView is the read-only view of one projectile
type ProjectileView struct {
	ID   uint64  `msgpack:"id"`
	Kind string  `msgpack:"kind"`
	X    float64 `msgpack:"x"`
	Y    float64 `msgpack:"y"`
}

// TurretView is the read-only view of one turret
type TurretView struct {
	ID    uint64  `msgpack:"id"`
	Owner uint64  `msgpack:"owner"`
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
}

// Snapshot is a copy of everything the overlay, replay and spectators draw
type Snapshot struct {
	Frame       int64            `msgpack:"frame"`
	Time        time.Duration    `msgpack:"time"`
	Characters  []CharacterView  `msgpack:"chars"`
	Projectiles []ProjectileView `msgpack:"proj"`
	Turrets     []TurretView     `msgpack:"turrets"`
	Fx          []FxRecord       `msgpack:"fx"`
	Stats       map[string]int64 `msgpack:"stats,omitempty"`
}

// Snapshot copies the current state under the step lock and drains the FX buffer
func (w *World) Snapshot() *Snapshot {
	w.updateMutex.Lock()
	defer w.updateMutex.Unlock()

	reg := w.Registry
	now := w.Resources.Time.Now
	snap := &Snapshot{
		Frame: w.Resources.Time.FrameNumber,
		Time:  now,
		Fx:    w.Resources.Fx.Drain(),
		Stats: w.Resources.Status.IntSnapshot(),
	}

	for _, body := range reg.Characters.Keys() {
		c, _ := reg.Characters.Get(body)
		pos := w.Physics.Position(body)
		view := CharacterView{
			ID:     uint64(body),
			Name:   c.Name,
			Weapon: c.WeaponKind.String(),
			HP:     c.HP,
			MaxHP:  c.MaxHP,
			Color:  c.BaseColor.Hex(),
			X:      pos.X,
			Y:      pos.Y,
			Frozen: reg.Freezes.Has(body),
			Flash:  c.HitFlash && now-c.HitFlashAt < w.Resources.Tuning.HitFlash,
			Kills:  c.Kills,
		}
		if wpn, ok := reg.Weapons.Get(c.Weapon); ok {
			view.Damage = wpn.Damage
			view.Angle = w.Physics.Angle(c.Weapon)
			view.Passive = PassiveCounters(wpn.Passive)
		} else {
			view.Damage = w.Resources.Tuning.UnarmedDamage
		}
		snap.Characters = append(snap.Characters, view)
	}

	for _, body := range reg.Projectiles.Keys() {
		p, _ := reg.Projectiles.Get(body)
		pos := w.Physics.Position(body)
		snap.Projectiles = append(snap.Projectiles, ProjectileView{
			ID: uint64(body), Kind: p.Kind.String(), X: pos.X, Y: pos.Y,
		})
	}

	for _, body := range reg.Turrets.Keys() {
		t, _ := reg.Turrets.Get(body)
		pos := w.Physics.Position(body)
		snap.Turrets = append(snap.Turrets, TurretView{
			ID: uint64(body), Owner: uint64(t.Owner), X: pos.X, Y: pos.Y,
		})
	}

	return snap
}

// PassiveCounters flattens non-zero progression counters for overlay text
func PassiveCounters(p component.PassiveState) map[string]int {
	out := make(map[string]int)
	add := func(key string, v int) {
		if v != 0 {
			out[key] = v
		}
	}
	add("hits", p.Hits)
	add("volley", p.Volley)
	add("clones", p.Clones)
	add("rebounds", p.Rebounds)
	add("freeze_ms", int(p.FreezeBonus/time.Millisecond))
	add("blast_dmg", p.ExplosionDamage)
	add("arc", p.ArcDamage)
	add("stacks", p.StatusStacks)
	add("lifesteal", p.Lifesteal)
	add("turrets", p.Turrets)
	if p.CooldownScale > 0 && p.CooldownScale < 1 {
		out["cooldown_pct"] = int(p.CooldownScale * 100)
	}
	return out
}
