package component

import "strings"

// WeaponKind identifies a weapon archetype; indexes every per-weapon table
type WeaponKind int

const (
	WeaponUnarmed WeaponKind = iota
	WeaponSword
	WeaponDagger
	WeaponBow
	WeaponKnife
	WeaponShuriken
	WeaponFrostStaff
	WeaponBomb
	WeaponElectricStaff
	WeaponBlowgun
	WeaponWrench
	WeaponFlask
	WeaponFirework
	WeaponKatana
	WeaponVampire
	WeaponAxe
	WeaponHammer
	WeaponSpear

	WeaponKindCount
)

var weaponNames = [WeaponKindCount]string{
	"unarmed", "sword", "dagger", "bow", "knife", "shuriken", "froststaff", "bomb",
	"electricstaff", "blowgun", "wrench", "flask", "firework", "katana", "vampire",
	"axe", "hammer", "spear",
}

func (k WeaponKind) String() string {
	if k < 0 || k >= WeaponKindCount {
		return "unknown"
	}
	return weaponNames[k]
}

// ParseWeaponKind resolves a case-insensitive weapon name
func ParseWeaponKind(name string) (WeaponKind, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range weaponNames {
		if n == name {
			return WeaponKind(i), true
		}
	}
	return WeaponUnarmed, false
}

// ProjectileKind identifies a projectile archetype
type ProjectileKind int

const (
	ProjectileArrow ProjectileKind = iota
	ProjectileKnife
	ProjectileShuriken
	ProjectileFrostBolt
	ProjectileExplosive
	ProjectileElectricBolt
	ProjectilePoisonDart
	ProjectileTurretBolt
	ProjectileFlask
	ProjectileFirework

	ProjectileKindCount
)

var projectileNames = [ProjectileKindCount]string{
	"arrow", "knife", "shuriken", "frostbolt", "explosive", "electricbolt",
	"poisondart", "turretbolt", "flask", "firework",
}

func (k ProjectileKind) String() string {
	if k < 0 || k >= ProjectileKindCount {
		return "unknown"
	}
	return projectileNames[k]
}

// StatusKind identifies a damage-over-time effect
type StatusKind int

const (
	StatusPoison StatusKind = iota
	StatusSlash

	StatusKindCount
)

func (k StatusKind) String() string {
	switch k {
	case StatusPoison:
		return "poison"
	case StatusSlash:
		return "slash"
	default:
		return "unknown"
	}
}
