package parameter

import "time"

// Hit Points
const (
	// CharacterHP is the starting and maximum hit points of every character
	CharacterHP = 100

	// UnarmedDamage is the contact damage of an unarmed character body
	UnarmedDamage = 1
)

// Freeze
const (
	// MeleeFreezeDuration is the default freeze after a melee hit, applied to victim and attacker
	MeleeFreezeDuration = 150 * time.Millisecond

	// ProjectileFreezeDuration is the victim freeze after a non-frost projectile hit
	ProjectileFreezeDuration = 80 * time.Millisecond

	// FrostFreezeDuration is the base victim freeze of a frost bolt
	FrostFreezeDuration = 600 * time.Millisecond

	// FrostFreezeMax caps frost freeze growth
	FrostFreezeMax = 2 * time.Second

	// MaxUnfreezeSpeed clamps the restored linear velocity (units/sec)
	MaxUnfreezeSpeed = 12.0

	// MaxUnfreezeAngularSpeed clamps the restored angular velocity (rad/sec)
	MaxUnfreezeAngularSpeed = 20.0

	// FrozenSleepThreshold forces a frozen body under the engine's sleep test
	FrozenSleepThreshold = 1e9
)

// Cooldowns
const (
	// DefaultHitCooldown gates repeated damage from the same attacker on the same victim
	DefaultHitCooldown = 400 * time.Millisecond

	// ProjectileHitCooldown applies to projectile attackers
	ProjectileHitCooldown = 100 * time.Millisecond

	// MinHitCooldown is the floor any scaled cooldown can shrink to
	MinHitCooldown = 40 * time.Millisecond

	// HitFlashDuration is how long a character renders in its flash color after damage
	HitFlashDuration = 120 * time.Millisecond
)

// Status Effects
const (
	PoisonInterval = 1 * time.Second
	PoisonDamage   = 2
	PoisonTicks    = 3

	SlashInterval = 250 * time.Millisecond
	SlashDamage   = 1
	SlashTicks    = 4
)

// Explosion
const (
	// ExplosionRadius is the base blast radius of explosion-class projectiles
	ExplosionRadius = 2.5

	// ExplosionRadiusMax caps radius growth
	ExplosionRadiusMax = 6.0

	// ExplosionDamage is the base blast damage, dealt once per character
	ExplosionDamage = 8

	// ExplosionImpulse pushes characters caught in a blast
	ExplosionImpulse = 6.0
)

// Electric Arc
const (
	ArcRadius = 6.0
	ArcDamage = 2
)

// Weapon Clash
const (
	// ClashWindow suppresses repeated motor inversion of the same pair
	ClashWindow = 200 * time.Millisecond

	// ClashStuckThreshold is how long a pair may stay in contact before being pushed apart
	ClashStuckThreshold = 500 * time.Millisecond

	// ClashNudgeImpulse is applied to each owner along the separation axis
	ClashNudgeImpulse = 4.0
)

// Turret
const (
	TurretFireInterval = 900 * time.Millisecond
	TurretLifetime     = 8 * time.Second
	TurretRadius       = 0.4
	TurretDamage       = 2
	TurretHitsToSummon = 3
	TurretMax          = 3
)
