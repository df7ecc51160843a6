package core

import "strings"

// Category is the collision filter bitmask carried by every shape
// Event routing is decided purely from the categories of the two shapes
type Category uint64

const (
	CategoryWall Category = 1 << iota
	CategoryCharacter
	CategoryWeapon
	CategoryProjectile
	CategorySkin
	CategoryHitbox
	CategoryTurret
	CategoryKillzone

	CategoryNone Category = 0
	CategoryAll  Category = ^Category(0)
)

var categoryNames = [...]string{
	"wall", "character", "weapon", "projectile", "skin", "hitbox", "turret", "killzone",
}

// Has reports whether any bit of mask is set
func (c Category) Has(mask Category) bool {
	return c&mask != 0
}

// String joins the names of all set bits, "none" when empty
func (c Category) String() string {
	if c == CategoryNone {
		return "none"
	}
	var parts []string
	for i, name := range categoryNames {
		if c&(1<<i) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, "|")
}
