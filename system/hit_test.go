package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"pgregory.net/rapid"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/engine/mocks"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func TestResolveHit_SwordOnUnarmed(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
	sword, wpn := weaponOf(t, w, b)
	w.Resources.Time.Now = 2 * time.Second

	victim := character(t, w, a)
	require.True(t, ResolveHit(w, victim.Skin, wpn.Cells[0], vmath.V(5, 0)))

	victim = character(t, w, a)
	assert.Equal(t, parameter.CharacterHP-1, victim.HP)
	assert.True(t, victim.HitFlash)
	assert.Equal(t, 2*time.Second, victim.HitFlashAt)
	assert.Equal(t, b, victim.LastAttacker)
	assert.Equal(t, "sword", victim.LastCause)
	assert.Equal(t, core.RGBWhite, mem.ShapeColor(victim.Skin))

	// Victim, attacker owner and attacker weapon all freeze
	assert.True(t, w.IsFrozen(a))
	assert.True(t, w.IsFrozen(b))
	assert.True(t, w.IsFrozen(sword))
	assert.False(t, mem.Motor(wpn.Joint).Enabled)

	rec, _ := w.Registry.Freezes.Get(a)
	assert.Equal(t, 2*time.Second+parameter.MeleeFreezeDuration, rec.Expiry)

	// Sword passive
	_, wpn = weaponOf(t, w, b)
	assert.Equal(t, 2, wpn.Damage)
	assert.Equal(t, 1, wpn.Passive.Hits)
}

func TestResolveHit_UnarmedNeverFreezes(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponUnarmed, vmath.V(2, 0))

	require.True(t, ResolveHit(w, character(t, w, a).Skin, character(t, w, b).Core, vmath.V(1, 0)))
	assert.Equal(t, parameter.CharacterHP-parameter.UnarmedDamage, character(t, w, a).HP)
	assert.Zero(t, w.Registry.Freezes.Len())
}

func TestResolveHit_ArmedBodyIsNotAnAttacker(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(2, 0))

	assert.False(t, ResolveHit(w, character(t, w, a).Skin, character(t, w, b).Core, vmath.V(1, 0)))
	assert.Equal(t, parameter.CharacterHP, character(t, w, a).HP)
}

func TestResolveHit_OwnWeaponIgnored(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	_, wpn := weaponOf(t, w, a)

	assert.False(t, ResolveHit(w, character(t, w, a).Skin, wpn.Cells[0], vmath.V(0, 0)))
	assert.Zero(t, w.Registry.Pairs.Len())
}

func TestResolveHit_OverlapAndCooldownGate(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
	_, wpn := weaponOf(t, w, b)
	require.GreaterOrEqual(t, len(wpn.Cells), 2)
	skin := character(t, w, a).Skin

	require.True(t, ResolveHit(w, skin, wpn.Cells[0], vmath.Vec2{}))
	// Second cell of the same weapon while the first still overlaps
	assert.False(t, ResolveHit(w, skin, wpn.Cells[1], vmath.Vec2{}))
	EndTouch(w, skin, wpn.Cells[1])
	EndTouch(w, skin, wpn.Cells[0])

	// Rearmed but still cooling down
	w.Resources.Time.Now = 100 * time.Millisecond
	assert.False(t, ResolveHit(w, skin, wpn.Cells[0], vmath.Vec2{}))
	EndTouch(w, skin, wpn.Cells[0])

	w.Resources.Time.Now = parameter.DefaultHitCooldown
	assert.True(t, ResolveHit(w, skin, wpn.Cells[0], vmath.Vec2{}))
	assert.Equal(t, parameter.CharacterHP-1-2, character(t, w, a).HP, "second hit uses grown sword damage")
}

func TestResolveHit_CooldownExpiryMidOverlapWaitsForSeparation(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
	_, wpn := weaponOf(t, w, b)
	require.GreaterOrEqual(t, len(wpn.Cells), 2)
	skin := character(t, w, a).Skin

	require.True(t, ResolveHit(w, skin, wpn.Cells[0], vmath.Vec2{}))
	hp := character(t, w, a).HP

	// Cooldown long gone but Cells[0] never separated
	w.Resources.Time.Now = 10 * time.Second
	assert.False(t, ResolveHit(w, skin, wpn.Cells[1], vmath.Vec2{}))
	EndTouch(w, skin, wpn.Cells[1])
	assert.False(t, ResolveHit(w, skin, wpn.Cells[1], vmath.Vec2{}))
	assert.Equal(t, hp, character(t, w, a).HP)

	EndTouch(w, skin, wpn.Cells[1])
	EndTouch(w, skin, wpn.Cells[0])
	assert.True(t, ResolveHit(w, skin, wpn.Cells[1], vmath.Vec2{}), "full separation rearms")
	assert.Less(t, character(t, w, a).HP, hp)
}

func TestResolveHit_PairErasedAfterCooldown(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
	_, wpn := weaponOf(t, w, b)
	skin := character(t, w, a).Skin

	ResolveHit(w, skin, wpn.Cells[0], vmath.Vec2{})
	EndTouch(w, skin, wpn.Cells[0])
	assert.Equal(t, 1, w.Registry.Pairs.Len(), "cooldown keeps the entry")

	prunePairs(w.Registry, parameter.DefaultHitCooldown)
	assert.Zero(t, w.Registry.Pairs.Len())
}

func TestResolveHit_SoundBanks(t *testing.T) {
	w, mem := engine.NewTestWorld()
	ctrl := gomock.NewController(t)
	audio := mocks.NewMockAudioPlayer(ctrl)
	w.Resources.Audio = audio

	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
	sword, wpn := weaponOf(t, w, b)
	skin := character(t, w, a).Skin

	audio.EXPECT().Play(core.SoundMelee, gomock.Any(), gomock.Any()).Times(1)
	require.True(t, ResolveHit(w, skin, wpn.Cells[0], vmath.Vec2{}))

	arrow := SpawnProjectile(w, component.ProjectileComponent{
		Kind:       component.ProjectileArrow,
		Owner:      b,
		Source:     sword,
		SourceKind: component.WeaponSword,
		Damage:     3,
		Primary:    true,
	}, vmath.V(1, 0), vmath.V(-1, 0))
	p, _ := w.Registry.Projectiles.Get(arrow)

	audio.EXPECT().Play(core.SoundProjectileImpact, gomock.Any(), gomock.Any()).Times(1)
	require.True(t, ResolveHit(w, skin, p.Shape, vmath.Vec2{}))
	assert.Equal(t, parameter.CharacterHP-1-3, character(t, w, a).HP)

	// Arrows are consumed on first touch
	at, ok := w.Registry.Schedule.Get(arrow)
	require.True(t, ok)
	assert.Equal(t, w.Now(), at)
}

func TestResolveHit_ProjectileFreezesVictimOnly(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponFrostStaff, vmath.V(10, 0))
	staff, _ := weaponOf(t, w, b)

	bolt := SpawnProjectile(w, component.ProjectileComponent{
		Kind:           component.ProjectileFrostBolt,
		Owner:          b,
		Source:         staff,
		SourceKind:     component.WeaponFrostStaff,
		Damage:         1,
		FreezeDuration: parameter.FrostFreezeDuration,
		Primary:        true,
	}, vmath.V(1, 0), vmath.V(-1, 0))
	p, _ := w.Registry.Projectiles.Get(bolt)

	require.True(t, ResolveHit(w, character(t, w, a).Skin, p.Shape, vmath.Vec2{}))
	rec, ok := w.Registry.Freezes.Get(a)
	require.True(t, ok)
	assert.Equal(t, parameter.FrostFreezeDuration, rec.Expiry)
	assert.False(t, w.IsFrozen(b))
	assert.False(t, w.IsFrozen(staff))
}

func TestResolveHit_ExplosionClassDealsNoContactDamage(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponBomb, vmath.V(10, 0))
	bomb, _ := weaponOf(t, w, b)

	body := SpawnProjectile(w, component.ProjectileComponent{
		Kind:    component.ProjectileExplosive,
		Owner:   b,
		Source:  bomb,
		Damage:  5,
		Primary: true,
	}, vmath.V(1, 0), vmath.V(-1, 0))
	p, _ := w.Registry.Projectiles.Get(body)

	assert.False(t, ResolveHit(w, character(t, w, a).Skin, p.Shape, vmath.Vec2{}))
	assert.Equal(t, parameter.CharacterHP, character(t, w, a).HP)
}

func TestRootOwner_TurretBolt(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponWrench, vmath.V(0, 0))
	turret := SpawnTurret(w, a, vmath.V(3, 0))
	bolt := SpawnProjectile(w, component.ProjectileComponent{
		Kind:   component.ProjectileTurretBolt,
		Owner:  a,
		Source: turret,
	}, vmath.V(4, 0), vmath.V(1, 0))

	assert.Equal(t, a, RootOwner(w, bolt))
	assert.Equal(t, a, RootOwner(w, turret))
	assert.Equal(t, core.NullBody, RootOwner(w, core.NullBody))
}

func TestEndTouch_OverlapNeverNegative(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w, mem := engine.NewTestWorld()
		a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
		b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
		sword, wpn := weaponOf(t, w, b)
		skin := character(t, w, a).Skin
		key := component.PairKey{Victim: a, Attacker: sword}

		model := 0
		began := false
		ops := rapid.SliceOfN(rapid.Bool(), 1, 40).Draw(rt, "ops")
		for i, begin := range ops {
			cell := wpn.Cells[i%len(wpn.Cells)]
			if begin {
				ResolveHit(w, skin, cell, vmath.Vec2{})
				model++
				began = true
			} else {
				EndTouch(w, skin, cell)
				if model > 0 {
					model--
				}
			}

			pair, ok := w.Registry.Pairs.Get(key)
			if ok {
				if pair.Overlap < 0 || pair.Overlap != model {
					rt.Fatalf("overlap %d, want %d", pair.Overlap, model)
				}
			} else if model != 0 {
				rt.Fatalf("pair erased with %d overlaps", model)
			}
		}

		// Clock never moved, so only the very first begin could deal damage
		want := parameter.CharacterHP
		if began {
			want--
		}
		if hp := character(t, w, a).HP; hp != want {
			rt.Fatalf("hp %d, want %d", hp, want)
		}
	})
}

func TestWeaponCooldown_ScaledAndFloored(t *testing.T) {
	tuning := parameter.DefaultTuning()
	wpn := component.WeaponComponent{Kind: component.WeaponDagger, Passive: component.PassiveState{CooldownScale: 1}}
	assert.Equal(t, 250*time.Millisecond, weaponCooldown(&tuning, wpn))

	wpn.Kind = component.WeaponSword
	wpn.Passive.CooldownScale = 0.5
	assert.Equal(t, 200*time.Millisecond, weaponCooldown(&tuning, wpn))

	wpn.Passive.CooldownScale = 0.01
	assert.Equal(t, tuning.MinCooldown, weaponCooldown(&tuning, wpn))
}
