package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

func testRoster() []component.RosterEntry {
	return []component.RosterEntry{
		{Name: "alpha", Weapon: component.WeaponSword, Color: core.RGB{R: 255}, Position: vmath.V(10, 12)},
		{Name: "bravo", Weapon: component.WeaponBow, Color: core.RGB{B: 255}, Position: vmath.V(30, 12)},
	}
}

func TestMatchSystem_DeclaresLastStanding(t *testing.T) {
	w, _ := engine.NewTestWorld()
	rec := &eventRecorder{types: []event.EventType{event.EventMatchStart, event.EventMatchOver}}
	w.AddHandler(rec)
	match := NewMatchSystem(w).(*MatchSystem)
	w.AddSystem(match)
	w.Registry.Roster = testRoster()

	StartMatch(w, "m-1")
	w.DispatchEvents()
	require.True(t, match.Running())

	match.Update()
	assert.Empty(t, rec.ofType(event.EventMatchOver))

	var loser core.BodyID
	for _, body := range w.Registry.Characters.Keys() {
		if c, _ := w.Registry.Characters.Get(body); c.Name == "bravo" {
			loser = body
		}
	}
	require.True(t, KillCharacterNow(w, loser))

	match.Update()
	match.Update()
	w.DispatchEvents()

	over := rec.ofType(event.EventMatchOver)
	require.Len(t, over, 1)
	payload := over[0].Payload.(*event.MatchOverPayload)
	assert.Equal(t, "m-1", payload.MatchID)
	assert.Equal(t, "alpha", payload.WinnerName)
	assert.Equal(t, "sword", payload.Weapon)
	assert.False(t, match.Running())
}

func TestIntegritySystem_RebuildsAfterEngineReset(t *testing.T) {
	w, mem := engine.NewTestWorld()
	rec := &eventRecorder{types: []event.EventType{event.EventWorldReset, event.EventMatchStart}}
	w.AddHandler(rec)
	s := NewIntegritySystem(w, func() string { return "m-2" })
	w.Registry.Roster = testRoster()

	StartMatch(w, "m-2")
	s.Update()
	assert.Zero(t, w.Resources.Status.Ints.Get("arena.rebuilds").Load())

	stale := w.Registry.Characters.Keys()
	mem.Reset()
	s.Update()

	assert.Equal(t, int64(1), w.Resources.Status.Ints.Get("arena.rebuilds").Load())
	require.Equal(t, 2, w.Registry.Characters.Len())
	for _, body := range w.Registry.Characters.Keys() {
		assert.True(t, mem.BodyValid(body))
		assert.NotContains(t, stale, body)
	}
	for _, body := range w.Registry.Arena.Handles() {
		assert.True(t, mem.BodyValid(body))
	}
	assert.Equal(t, 2, w.Registry.Weapons.Len())

	w.DispatchEvents()
	assert.Len(t, rec.ofType(event.EventWorldReset), 1)
	assert.Len(t, rec.ofType(event.EventMatchStart), 2)
}
