package system

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func TestStatusSystem_PoisonTicksOnCadence(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponBlowgun, vmath.V(10, 0))
	s := NewStatusSystem(w)

	AddStatus(w, a, component.StatusPoison, b, 0)
	key := component.StatusKey{Victim: a, Kind: component.StatusPoison}

	steps := []struct {
		now    time.Duration
		wantHP int
		active bool
	}{
		{999 * time.Millisecond, 100, true},
		{1 * time.Second, 98, true},
		{2 * time.Second, 96, true},
		{3 * time.Second, 94, false},
		{4 * time.Second, 94, false},
	}
	for _, step := range steps {
		w.Resources.Time.Now = step.now
		s.Update()
		assert.Equal(t, step.wantHP, character(t, w, a).HP, "at %v", step.now)
		assert.Equal(t, step.active, w.Registry.Statuses.Has(key), "at %v", step.now)
	}
	assert.Equal(t, b, character(t, w, a).LastAttacker)
	assert.Equal(t, "poison", character(t, w, a).LastCause)
}

func TestStatusSystem_CatchesUpMissedTicks(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	s := NewStatusSystem(w)

	AddStatus(w, a, component.StatusSlash, a, 0)
	w.Resources.Time.Now = 10 * time.Second
	s.Update()

	assert.Equal(t, parameter.CharacterHP-parameter.SlashTicks*parameter.SlashDamage, character(t, w, a).HP)
	assert.Zero(t, w.Registry.Statuses.Len())
}

func TestAddStatus_RefreshKeepsCadence(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	key := component.StatusKey{Victim: a, Kind: component.StatusPoison}

	AddStatus(w, a, component.StatusPoison, a, 0)
	w.Resources.Time.Now = 500 * time.Millisecond
	AddStatus(w, a, component.StatusPoison, a, 2)

	acc, ok := w.Registry.Statuses.Get(key)
	require.True(t, ok)
	assert.Equal(t, time.Duration(0), acc.LastTick)
	assert.Equal(t, parameter.PoisonTicks+2, acc.Remaining)

	// A smaller refresh never shortens
	AddStatus(w, a, component.StatusPoison, a, 0)
	acc, _ = w.Registry.Statuses.Get(key)
	assert.Equal(t, parameter.PoisonTicks+2, acc.Remaining)
}

func TestStatusSystem_FlashRestore(t *testing.T) {
	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))
	s := NewStatusSystem(w)
	base := mem.ShapeColor(character(t, w, a).Skin)

	ApplyDamage(w, a, 1, DamageSource{Cause: "test"})
	s.Update()
	assert.True(t, character(t, w, a).HitFlash)

	w.Resources.Time.Now = parameter.HitFlashDuration
	s.Update()
	c := character(t, w, a)
	assert.False(t, c.HitFlash)
	assert.Equal(t, base, mem.ShapeColor(c.Skin))
}
