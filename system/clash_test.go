package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func TestBeginClash_InvertsOncePerWindow(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponAxe, vmath.V(4, 0))
	aw, aWpn := weaponOf(t, w, a)
	bw, bWpn := weaponOf(t, w, b)
	speedA, speedB := mem.Motor(aWpn.Joint).Speed, mem.Motor(bWpn.Joint).Speed

	assert.True(t, BeginClash(w, aw, bw, vmath.V(2, 0)))
	assert.Equal(t, -speedA, mem.Motor(aWpn.Joint).Speed)
	assert.Equal(t, -speedB, mem.Motor(bWpn.Joint).Speed)

	// More cells of the same pair touching
	assert.False(t, BeginClash(w, bw, aw, vmath.V(2, 0)))
	EndClash(w, aw, bw)
	EndClash(w, aw, bw)

	// Quick re-touch within the window
	w.Resources.Time.Now = parameter.ClashWindow / 2
	assert.False(t, BeginClash(w, aw, bw, vmath.V(2, 0)))
	assert.Equal(t, -speedA, mem.Motor(aWpn.Joint).Speed)
	EndClash(w, aw, bw)

	w.Resources.Time.Now = parameter.ClashWindow
	assert.True(t, BeginClash(w, aw, bw, vmath.V(2, 0)))
	assert.Equal(t, speedA, mem.Motor(aWpn.Joint).Speed)
}

func TestBeginClash_FrozenWeaponInvertsSavedMotor(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(4, 0))
	aw, aWpn := weaponOf(t, w, a)
	bw, _ := weaponOf(t, w, b)
	speed := mem.Motor(aWpn.Joint).Speed

	freezeCharacter(w, a, time.Second)
	BeginClash(w, aw, bw, vmath.V(2, 0))
	assert.False(t, mem.Motor(aWpn.Joint).Enabled, "frozen motor stays off")

	Unfreeze(w, aw)
	m := mem.Motor(aWpn.Joint)
	assert.True(t, m.Enabled)
	assert.Equal(t, -speed, m.Speed)
}

func TestClashSystem_NudgesStuckPairs(t *testing.T) {
	w, mem := engine.NewTestWorld()
	s := NewClashSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(4, 0))
	aw, _ := weaponOf(t, w, a)
	bw, _ := weaponOf(t, w, b)

	BeginClash(w, aw, bw, vmath.V(2, 0))
	w.Resources.Time.Now = parameter.ClashStuckThreshold - time.Millisecond
	s.Update()
	assert.Equal(t, vmath.Vec2{}, mem.LinearVelocity(a))

	w.Resources.Time.Now = parameter.ClashStuckThreshold
	s.Update()
	assert.Less(t, mem.LinearVelocity(a).X, 0.0)
	assert.Greater(t, mem.LinearVelocity(b).X, 0.0)
	assert.Equal(t, int64(1), w.Resources.Status.Ints.Get("clash.nudges").Load())

	// Separated pairs are forgotten once the window passed
	EndClash(w, aw, bw)
	w.Resources.Time.Now += parameter.ClashWindow
	s.Update()
	assert.False(t, w.Registry.Clashes.Has(component.MakeWeaponPair(aw, bw)))
}

func TestBeginClash_RejectsNonWeapons(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	aw, _ := weaponOf(t, w, a)

	assert.False(t, BeginClash(w, aw, aw, vmath.Vec2{}))
	assert.False(t, BeginClash(w, aw, a, vmath.Vec2{}))
	assert.False(t, BeginClash(w, aw, core.NullBody, vmath.Vec2{}))
	assert.Zero(t, w.Registry.Clashes.Len())
}
