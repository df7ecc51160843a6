package parameter

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/component"
)

// Tuning is the runtime numeric table read by the combat systems
// Defaults equal the package constants; config overrides individual fields
type Tuning struct {
	ArenaWidth  float64
	ArenaHeight float64

	CharacterHP     int
	CharacterRadius float64
	UnarmedDamage   int

	MeleeFreeze      time.Duration
	ProjectileFreeze time.Duration
	FrostFreeze      time.Duration
	HitFlash         time.Duration

	DefaultCooldown    time.Duration
	ProjectileCooldown time.Duration
	MinCooldown        time.Duration

	MaxUnfreezeSpeed        float64
	MaxUnfreezeAngularSpeed float64

	ExplosionRadius float64
	ExplosionDamage int

	PoisonInterval time.Duration
	PoisonDamage   int
	PoisonTicks    int
	SlashInterval  time.Duration
	SlashDamage    int
	SlashTicks     int
}

// DefaultTuning returns the constant defaults
func DefaultTuning() Tuning {
	return Tuning{
		ArenaWidth:  ArenaWidth,
		ArenaHeight: ArenaHeight,

		CharacterHP:     CharacterHP,
		CharacterRadius: CharacterRadius,
		UnarmedDamage:   UnarmedDamage,

		MeleeFreeze:      MeleeFreezeDuration,
		ProjectileFreeze: ProjectileFreezeDuration,
		FrostFreeze:      FrostFreezeDuration,
		HitFlash:         HitFlashDuration,

		DefaultCooldown:    DefaultHitCooldown,
		ProjectileCooldown: ProjectileHitCooldown,
		MinCooldown:        MinHitCooldown,

		MaxUnfreezeSpeed:        MaxUnfreezeSpeed,
		MaxUnfreezeAngularSpeed: MaxUnfreezeAngularSpeed,

		ExplosionRadius: ExplosionRadius,
		ExplosionDamage: ExplosionDamage,

		PoisonInterval: PoisonInterval,
		PoisonDamage:   PoisonDamage,
		PoisonTicks:    PoisonTicks,
		SlashInterval:  SlashInterval,
		SlashDamage:    SlashDamage,
		SlashTicks:     SlashTicks,
	}
}

// StatusCadence returns tick interval, per-tick damage and base tick count of a status kind
func (t *Tuning) StatusCadence(kind component.StatusKind) (time.Duration, int, int) {
	if kind == component.StatusPoison {
		return t.PoisonInterval, t.PoisonDamage, t.PoisonTicks
	}
	return t.SlashInterval, t.SlashDamage, t.SlashTicks
}
