package component

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
)

// PairKey identifies a (victim character, attacker body) damage pair
type PairKey struct {
	Victim   core.BodyID
	Attacker core.BodyID
}

// PairState tracks concurrent shape overlaps and the damage cooldown of a pair
// Overlap returning to 0 rearms first-enter detection; the entry is erased once its cooldown has also passed
type PairState struct {
	Overlap       int
	CooldownUntil time.Duration
}

// WeaponPair is an unordered pair of weapon bodies, A < B
type WeaponPair struct {
	A core.BodyID
	B core.BodyID
}

// MakeWeaponPair orders the handles so either argument order maps to the same key
func MakeWeaponPair(a, b core.BodyID) WeaponPair {
	if a > b {
		a, b = b, a
	}
	return WeaponPair{A: a, B: b}
}

// ClashState tracks a weapon pair in contact for motor inversion throttling
type ClashState struct {
	Touching   int
	Since      time.Duration
	LastInvert time.Duration
}
