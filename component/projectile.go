package component

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// ProjectileComponent is a short-lived body fired by a weapon or turret
type ProjectileComponent struct {
	Kind  ProjectileKind
	Shape core.ShapeID

	// Owner is the character credited with the projectile
	// Source is the firing weapon or turret body; ownership resolves through it
	Owner  core.BodyID
	Source core.BodyID

	// SourceKind is the weapon kind whose passives react to this projectile's hits
	SourceKind WeaponKind

	Damage int

	// Remaining touches before destruction, shuriken only
	Rebounds int

	// Primary projectiles may spawn clones, clones may not
	Primary bool

	ExplosionRadius float64
	ExplosionDamage int
	FreezeDuration  time.Duration

	SpawnedAt time.Duration
	SpawnPos  vmath.Vec2
}

// TurretComponent is a static summoned body that fires at the nearest enemy
type TurretComponent struct {
	Owner     core.BodyID
	Shape     core.ShapeID
	Damage    int
	NextFire  time.Duration
	ExpiresAt time.Duration
}
