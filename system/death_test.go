package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/lixenwraith/pixel-brawl/asset"
	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func TestApplyDamage_ClampsAndKillsOnce(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w, mem := engine.NewTestWorld()
		a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))

		hits := rapid.SliceOfN(rapid.IntRange(1, 60), 1, 12).Draw(rt, "hits")
		for _, amount := range hits {
			ApplyDamage(w, a, amount, DamageSource{Cause: "test"})

			c, _ := w.Registry.Characters.Get(a)
			queued := len(w.Registry.KillQueue)
			switch {
			case c.HP < 0:
				rt.Fatalf("hp went negative: %d", c.HP)
			case c.HP > 0 && queued != 0:
				rt.Fatalf("kill queued for a living character")
			case c.HP == 0 && queued != 1:
				rt.Fatalf("kill queued %d times", queued)
			}
		}
	})
}

func TestDeathSystem_PurgesEveryReference(t *testing.T) {
	w, mem := engine.NewTestWorld()
	rec := &eventRecorder{types: []event.EventType{event.EventCharacterKilled}}
	w.AddHandler(rec)
	death := NewDeathSystem(w)

	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))
	b := spawnStill(t, w, mem, "bravo", component.WeaponSword, vmath.V(10, 0))
	aSword, _ := weaponOf(t, w, a)
	bSword, bWpn := weaponOf(t, w, b)

	// Populate every table that can reference alpha or its weapon
	require.True(t, ResolveHit(w, character(t, w, a).Skin, bWpn.Cells[0], vmath.Vec2{}))
	AddStatus(w, a, component.StatusPoison, b, 0)
	BeginClash(w, aSword, bSword, vmath.V(5, 0))
	turret := SpawnTurret(w, a, vmath.V(-3, 0))
	dart := SpawnProjectile(w, component.ProjectileComponent{Kind: component.ProjectilePoisonDart, Owner: a, Source: aSword}, vmath.V(2, 0), vmath.V(1, 0))

	ApplyDamage(w, a, 500, DamageSource{Attacker: bSword, Owner: b, Cause: "sword"})
	require.True(t, w.Registry.KillRequested(a))
	death.Update()

	for _, body := range []core.BodyID{a, aSword, turret} {
		assert.False(t, mem.BodyValid(body))
		assert.False(t, w.Registry.References(body), "body %v still referenced", body)
	}
	assert.Equal(t, bSword, w.Registry.Slots[component.WeaponSword])

	// Owned projectiles wait for the next destruction flush
	at, ok := w.Registry.Schedule.Get(dart)
	require.True(t, ok)
	assert.Equal(t, w.Now(), at)

	assert.Equal(t, 1, character(t, w, b).Kills)
	assert.False(t, w.Registry.KillRequested(a))

	w.DispatchEvents()
	killed := rec.ofType(event.EventCharacterKilled)
	require.Len(t, killed, 1)
	payload := killed[0].Payload.(*event.CharacterKilledPayload)
	assert.Equal(t, "alpha", payload.VictimName)
	assert.Equal(t, "bravo", payload.KillerName)
	assert.Equal(t, "sword", payload.Cause)
}

func TestDeathSystem_DuplicateRequestsKillOnce(t *testing.T) {
	w, mem := engine.NewTestWorld()
	death := NewDeathSystem(w)
	a := spawnStill(t, w, mem, "alpha", component.WeaponUnarmed, vmath.V(0, 0))

	assert.True(t, RequestKillCharacter(w, a))
	assert.False(t, RequestKillCharacter(w, a))
	w.Registry.KillQueue = append(w.Registry.KillQueue, a)

	death.Update()
	assert.Equal(t, int64(1), w.Resources.Status.Ints.Get("death.count").Load())
	assert.False(t, RequestKillCharacter(w, a), "destroyed handles are unknown")
}

func TestSpawnCharacter_MissingAssetStaysUnarmed(t *testing.T) {
	art, err := asset.Get("sword")
	require.NoError(t, err)
	asset.Unregister("sword")
	t.Cleanup(func() { asset.Register(art) })

	w, mem := engine.NewTestWorld()
	a := spawnStill(t, w, mem, "alpha", component.WeaponSword, vmath.V(0, 0))

	c := character(t, w, a)
	assert.False(t, c.Armed())
	assert.Equal(t, component.WeaponUnarmed, c.WeaponKind)
	assert.Zero(t, w.Registry.Weapons.Len())
	assert.True(t, w.Registry.Slots[component.WeaponSword].IsNull())
}
