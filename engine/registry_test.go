package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
)

func TestRegistry_ScheduleKeepsEarliest(t *testing.T) {
	r := NewRegistry()
	b := core.BodyID(core.PackHandle(3, 1))

	r.ScheduleDestroy(b, 5*time.Second)
	r.ScheduleDestroy(b, 7*time.Second)
	at, _ := r.Schedule.Get(b)
	assert.Equal(t, 5*time.Second, at)

	r.ScheduleDestroy(b, 2*time.Second)
	at, _ = r.Schedule.Get(b)
	assert.Equal(t, 2*time.Second, at)
}

func TestRegistry_RequestKillOnce(t *testing.T) {
	r := NewRegistry()
	b := core.BodyID(core.PackHandle(1, 1))

	assert.True(t, r.RequestKill(b))
	assert.False(t, r.RequestKill(b))
	assert.Equal(t, []core.BodyID{b}, r.DrainKills())
	assert.Empty(t, r.DrainKills())
	assert.False(t, r.RequestKill(b), "drained handle stays deduplicated until forgotten")

	r.Forget(b)
	assert.True(t, r.RequestKill(b))
}

func TestRegistry_PurgeBodyClearsKillCredit(t *testing.T) {
	r := NewRegistry()
	victim := core.BodyID(core.PackHandle(1, 1))
	killer := core.BodyID(core.PackHandle(2, 1))
	poison := component.StatusKey{Victim: victim, Kind: component.StatusPoison}

	r.Characters.Set(victim, component.CharacterComponent{HP: 10, LastAttacker: killer})
	r.Characters.Set(killer, component.CharacterComponent{HP: 10})
	r.Statuses.Set(poison, component.StatusAccumulator{Remaining: 3, Source: killer})
	assert.True(t, r.References(killer))

	r.PurgeBody(killer, nil)

	assert.False(t, r.References(killer))
	ch, _ := r.Characters.Get(victim)
	assert.Equal(t, core.NullBody, ch.LastAttacker)
	acc, ok := r.Statuses.Get(poison)
	assert.True(t, ok, "the victim keeps ticking")
	assert.Equal(t, core.NullBody, acc.Source)
	assert.Equal(t, 3, acc.Remaining)
}

func TestRegistry_PurgeBodyRemovesEveryReference(t *testing.T) {
	r := NewRegistry()
	victim := core.BodyID(core.PackHandle(1, 1))
	weapon := core.BodyID(core.PackHandle(2, 1))
	other := core.BodyID(core.PackHandle(3, 1))
	skin := core.ShapeID(core.PackHandle(10, 1))

	r.Characters.Set(victim, component.CharacterComponent{HP: 10, Weapon: weapon})
	r.Weapons.Set(weapon, component.WeaponComponent{Owner: victim})
	r.ShapeOwner.Set(skin, victim)
	r.ShapeColor.Set(skin, core.RGBWhite)
	r.Pairs.Set(component.PairKey{Victim: victim, Attacker: other}, component.PairState{Overlap: 1})
	r.Pairs.Set(component.PairKey{Victim: other, Attacker: weapon}, component.PairState{Overlap: 1})
	r.Freezes.Set(victim, component.FreezeRecord{})
	r.Statuses.Set(component.StatusKey{Victim: victim, Kind: component.StatusPoison}, component.StatusAccumulator{Remaining: 2})
	r.Clashes.Set(component.MakeWeaponPair(weapon, other), component.ClashState{})
	r.Slots[component.WeaponSword] = weapon

	r.PurgeBody(weapon, nil)
	r.PurgeBody(victim, []core.ShapeID{skin})

	assert.False(t, r.References(victim))
	assert.False(t, r.References(weapon))
	assert.False(t, r.ShapeColor.Has(skin))
	assert.Zero(t, r.Pairs.Len())
	assert.Equal(t, core.NullBody, r.Slots[component.WeaponSword])
}
