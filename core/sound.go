package core

// SoundBank selects a family of one-shot sounds played by the audio collaborator
type SoundBank int

const (
	SoundMelee            SoundBank = iota // Weapon on skin
	SoundProjectileImpact                  // Projectile on skin
	SoundWallImpact                        // Projectile on wall or weapon
	SoundClash                             // Weapon on weapon parry
	SoundExplosion                         // Explosion-class detonation
	SoundFreeze                            // Frost bolt freeze
	SoundZap                               // Electric arc
	SoundDeath                             // Character removed
	SoundSummon                            // Turret or clone spawn
	SoundBankCount
)

var soundBankNames = [SoundBankCount]string{
	"melee", "projectile", "wall", "clash", "explosion", "freeze", "zap", "death", "summon",
}

func (b SoundBank) String() string {
	if b < 0 || b >= SoundBankCount {
		return "unknown"
	}
	return soundBankNames[b]
}
