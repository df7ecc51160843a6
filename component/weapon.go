package component

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
)

// WeaponComponent is a weapon body revolute-jointed to its owner
// Owner and Joint are set together at spawn and purged together at death
type WeaponComponent struct {
	Kind   WeaponKind
	Owner  core.BodyID
	Joint  core.JointID
	Damage int

	// Cells are the solid contour shapes, Hitboxes the interior sensor cells
	Cells    []core.ShapeID
	Hitboxes []core.ShapeID

	// Tip is the outermost cell, grown by reach passives
	Tip       core.ShapeID
	TipRadius float64

	// Length from the pivot to the tip, used as projectile muzzle offset
	Length float64

	NextFire time.Duration

	Passive PassiveState
}

// PassiveState holds per-weapon progression counters
// Every field is monotonic toward its cap; rules never reset them
type PassiveState struct {
	Hits int

	CooldownScale   float64 // Multiplier on contact cooldown, shrinks toward a floor
	Volley          int     // Projectiles per shot
	Clones          int     // Secondary copies spawned by a primary projectile on hit
	Rebounds        int     // Bonus shuriken rebounds
	FreezeBonus     time.Duration
	ExplosionRadius float64
	ExplosionDamage int
	ArcDamage       int
	StatusStacks    int // Extra ticks added to the victim's status per hit
	Lifesteal       int
	Turrets         int // Turrets summoned so far
}
