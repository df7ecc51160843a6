package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func TestWeaponSystem_FiresOnInterval(t *testing.T) {
	w, mem := engine.NewTestWorld()
	s := NewWeaponSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponBow, vmath.V(0, 0))
	bow, _ := weaponOf(t, w, a)
	interval := parameter.Weapons[component.WeaponBow].FireInterval

	w.Resources.Time.Now = interval - time.Millisecond
	s.Update()
	assert.Zero(t, w.Registry.Projectiles.Len())

	w.Resources.Time.Now = interval
	s.Update()
	require.Equal(t, 1, w.Registry.Projectiles.Len())

	p, _ := w.Registry.Projectiles.Get(w.Registry.Projectiles.Keys()[0])
	assert.Equal(t, component.ProjectileArrow, p.Kind)
	assert.Equal(t, a, p.Owner)
	assert.Equal(t, bow, p.Source)
	assert.True(t, p.Primary)
}

func TestWeaponSystem_VolleyAndFrozenHold(t *testing.T) {
	w, mem := engine.NewTestWorld()
	s := NewWeaponSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponBow, vmath.V(0, 0))
	bow, _ := weaponOf(t, w, a)
	w.Registry.Weapons.Ptr(bow).Passive.Volley = 3
	interval := parameter.Weapons[component.WeaponBow].FireInterval

	FreezeBodyAndJoint(w, a, core.NullJoint, 10*time.Second)
	w.Resources.Time.Now = interval
	s.Update()
	assert.Zero(t, w.Registry.Projectiles.Len(), "frozen owner holds fire")

	Unfreeze(w, a)
	s.Update()
	assert.Equal(t, 3, w.Registry.Projectiles.Len())
}

func TestWeaponSystem_FrostBoltCarriesFreeze(t *testing.T) {
	w, mem := engine.NewTestWorld()
	s := NewWeaponSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponFrostStaff, vmath.V(0, 0))
	staff, _ := weaponOf(t, w, a)
	w.Registry.Weapons.Ptr(staff).Passive.FreezeBonus = 200 * time.Millisecond

	w.Resources.Time.Now = parameter.Weapons[component.WeaponFrostStaff].FireInterval
	s.Update()
	require.Equal(t, 1, w.Registry.Projectiles.Len())
	p, _ := w.Registry.Projectiles.Get(w.Registry.Projectiles.Keys()[0])
	assert.Equal(t, parameter.FrostFreezeDuration+200*time.Millisecond, p.FreezeDuration)
}

func TestTurretSystem_TargetsNearestEnemy(t *testing.T) {
	w, mem := engine.NewTestWorld()
	s := NewTurretSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponWrench, vmath.V(0, 0))
	near := spawnStill(t, w, mem, "near", component.WeaponUnarmed, vmath.V(0, 6))
	spawnStill(t, w, mem, "far", component.WeaponUnarmed, vmath.V(20, 0))
	turret := SpawnTurret(w, a, vmath.V(0, 2))

	w.Resources.Time.Now = parameter.TurretFireInterval
	s.Update()
	require.Equal(t, 1, w.Registry.Projectiles.Len())

	bolt := w.Registry.Projectiles.Keys()[0]
	p, _ := w.Registry.Projectiles.Get(bolt)
	assert.Equal(t, component.ProjectileTurretBolt, p.Kind)
	assert.Equal(t, turret, p.Source)
	assert.Equal(t, a, RootOwner(w, bolt))
	assert.Greater(t, mem.LinearVelocity(bolt).Y, 0.0, "fired toward %v", near)

	// Kill-requested characters are not targeted
	RequestKillCharacter(w, near)
	w.Resources.Time.Now += parameter.TurretFireInterval
	s.Update()
	require.Equal(t, 2, w.Registry.Projectiles.Len())
}
