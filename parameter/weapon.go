package parameter

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
)

// WeaponSpec is the static data of one weapon kind
type WeaponSpec struct {
	// Asset is the pixel art name of the weapon cells, empty for unarmed
	Asset string

	Damage int

	// Cooldown overrides the default contact cooldown when non-zero
	Cooldown time.Duration

	// MotorSpeed is the drive joint speed (rad/sec)
	MotorSpeed float64

	// Ranged weapons fire Projectile every FireInterval
	Ranged       bool
	Projectile   component.ProjectileKind
	FireInterval time.Duration
}

// Weapons is indexed by component.WeaponKind
var Weapons = [component.WeaponKindCount]WeaponSpec{
	component.WeaponUnarmed:       {Damage: UnarmedDamage},
	component.WeaponSword:         {Asset: "sword", Damage: 1, MotorSpeed: 4},
	component.WeaponDagger:        {Asset: "dagger", Damage: 1, Cooldown: 250 * time.Millisecond, MotorSpeed: 6},
	component.WeaponBow:           {Asset: "bow", Damage: 1, MotorSpeed: 2, Ranged: true, Projectile: component.ProjectileArrow, FireInterval: 1200 * time.Millisecond},
	component.WeaponKnife:         {Asset: "knife", Damage: 2, MotorSpeed: 3, Ranged: true, Projectile: component.ProjectileKnife, FireInterval: 1500 * time.Millisecond},
	component.WeaponShuriken:      {Asset: "shuriken", Damage: 1, MotorSpeed: 5, Ranged: true, Projectile: component.ProjectileShuriken, FireInterval: 1400 * time.Millisecond},
	component.WeaponFrostStaff:    {Asset: "froststaff", Damage: 1, MotorSpeed: 2.5, Ranged: true, Projectile: component.ProjectileFrostBolt, FireInterval: 1800 * time.Millisecond},
	component.WeaponBomb:          {Asset: "bomb", Damage: 1, MotorSpeed: 2, Ranged: true, Projectile: component.ProjectileExplosive, FireInterval: 3 * time.Second},
	component.WeaponElectricStaff: {Asset: "electricstaff", Damage: 1, MotorSpeed: 2.5, Ranged: true, Projectile: component.ProjectileElectricBolt, FireInterval: 1600 * time.Millisecond},
	component.WeaponBlowgun:       {Asset: "blowgun", Damage: 1, MotorSpeed: 2, Ranged: true, Projectile: component.ProjectilePoisonDart, FireInterval: 1300 * time.Millisecond},
	component.WeaponWrench:        {Asset: "wrench", Damage: 1, MotorSpeed: 3.5},
	component.WeaponFlask:         {Asset: "flask", Damage: 2, MotorSpeed: 2, Ranged: true, Projectile: component.ProjectileFlask, FireInterval: 2 * time.Second},
	component.WeaponFirework:      {Asset: "firework", Damage: 1, MotorSpeed: 2, Ranged: true, Projectile: component.ProjectileFirework, FireInterval: 2500 * time.Millisecond},
	component.WeaponKatana:        {Asset: "katana", Damage: 1, MotorSpeed: 5},
	component.WeaponVampire:       {Asset: "vampire", Damage: 1, MotorSpeed: 4},
	component.WeaponAxe:           {Asset: "axe", Damage: 2, Cooldown: 600 * time.Millisecond, MotorSpeed: 3},
	component.WeaponHammer:        {Asset: "hammer", Damage: 1, Cooldown: 700 * time.Millisecond, MotorSpeed: 2.5},
	component.WeaponSpear:         {Asset: "spear", Damage: 1, MotorSpeed: 3.5},
}

// ProjectileSpec is the static data of one projectile kind
type ProjectileSpec struct {
	Radius      float64
	Speed       float64
	TTL         time.Duration
	Restitution float64
	Color       core.RGB
	Sound       core.SoundBank

	// ExplosionClass projectiles deal no contact damage and detonate when destroyed
	ExplosionClass bool

	// ConsumeOnTouch projectiles are scheduled for destruction on their first touch
	ConsumeOnTouch bool

	// Rebounds is the base touch budget, shuriken only
	Rebounds int
}

// Projectiles is indexed by component.ProjectileKind
var Projectiles = [component.ProjectileKindCount]ProjectileSpec{
	component.ProjectileArrow:        {Radius: 0.15, Speed: 18, TTL: 3 * time.Second, Color: core.RGB{R: 200, G: 170, B: 120}, Sound: core.SoundProjectileImpact, ConsumeOnTouch: true},
	component.ProjectileKnife:        {Radius: 0.15, Speed: 16, TTL: 3 * time.Second, Color: core.RGB{R: 190, G: 190, B: 200}, Sound: core.SoundProjectileImpact, ConsumeOnTouch: true},
	component.ProjectileShuriken:     {Radius: 0.2, Speed: 14, TTL: 6 * time.Second, Restitution: 1, Color: core.RGB{R: 160, G: 160, B: 180}, Sound: core.SoundProjectileImpact, Rebounds: 1},
	component.ProjectileFrostBolt:    {Radius: 0.2, Speed: 12, TTL: 3 * time.Second, Color: core.RGB{R: 120, G: 200, B: 255}, Sound: core.SoundFreeze, ConsumeOnTouch: true},
	component.ProjectileExplosive:    {Radius: 0.3, Speed: 8, TTL: 2 * time.Second, Restitution: 0.6, Color: core.RGB{R: 60, G: 60, B: 60}, Sound: core.SoundExplosion, ExplosionClass: true},
	component.ProjectileElectricBolt: {Radius: 0.2, Speed: 15, TTL: 3 * time.Second, Color: core.RGB{R: 255, G: 240, B: 80}, Sound: core.SoundZap, ConsumeOnTouch: true},
	component.ProjectilePoisonDart:   {Radius: 0.1, Speed: 20, TTL: 3 * time.Second, Color: core.RGB{R: 90, G: 200, B: 60}, Sound: core.SoundProjectileImpact, ConsumeOnTouch: true},
	component.ProjectileTurretBolt:   {Radius: 0.12, Speed: 14, TTL: 2 * time.Second, Color: core.RGB{R: 255, G: 150, B: 40}, Sound: core.SoundProjectileImpact, ConsumeOnTouch: true},
	component.ProjectileFlask:        {Radius: 0.25, Speed: 10, TTL: 3 * time.Second, Color: core.RGB{R: 170, G: 80, B: 220}, Sound: core.SoundProjectileImpact, ConsumeOnTouch: true},
	component.ProjectileFirework:     {Radius: 0.2, Speed: 11, TTL: 2500 * time.Millisecond, Color: core.RGB{R: 255, G: 80, B: 120}, Sound: core.SoundExplosion, ExplosionClass: true, ConsumeOnTouch: true},
}

// Passive caps and rates
const (
	SwordDamageMax = 50

	DaggerCooldownDecay = 0.9
	DaggerCooldownFloor = 0.2

	BowHitsPerVolley = 3
	BowVolleyMax     = 5

	KnifeCloneMax = 4

	ShurikenReboundMax = 6

	FrostFreezeStep = 100 * time.Millisecond

	BombRadiusStep = 0.25
	BombDamageStep = 1

	FireworkCloneMax     = 3
	FireworkHitsPerClone = 4

	ElectricArcStep = 1

	BlowgunStacksMax = 10

	FlaskHitsPerDamage = 2
	FlaskDamageMax     = 10

	KatanaStacksMax = 8

	VampireHitsPerLifesteal = 5
	VampireLifestealMax     = 5

	AxeDamageStep = 2
	AxeDamageMax  = 30

	HammerDamageFactor = 1.5
	HammerDamageMax    = 40

	SpearReachStep = 0.05
	SpearReachMax  = 1.0
)
