package component

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
)

// CharacterComponent is one combatant, keyed by its body handle
type CharacterComponent struct {
	Name string

	// HP is clamped at 0; at 0 the character is queued for removal
	HP    int
	MaxHP int

	Radius    float64
	BaseColor core.RGB

	// Core is the solid body circle, Skin the larger sensor used for hit detection
	Core core.ShapeID
	Skin core.ShapeID

	// Weapon is NullBody when unarmed
	Weapon     core.BodyID
	WeaponKind WeaponKind

	// HitFlashAt is the sim time of the last damage, HitFlash false until first hit
	HitFlashAt time.Duration
	HitFlash   bool

	// Last damage source, reported on death
	LastAttacker core.BodyID
	LastCause    string

	Kills int
}

// Armed reports whether the character currently holds a weapon body
func (c *CharacterComponent) Armed() bool {
	return !c.Weapon.IsNull()
}
