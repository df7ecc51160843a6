package system

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/pixel-brawl/component"
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// spawnStill places a character with its launch velocity cleared
func spawnStill(t testing.TB, w *engine.World, mem *physics.MemWorld, name string, kind component.WeaponKind, pos vmath.Vec2) core.BodyID {
	body := SpawnCharacter(w, component.RosterEntry{
		Name:     name,
		Weapon:   kind,
		Color:    core.RGB{R: 200, G: 60, B: 60},
		Position: pos,
	})
	require.False(t, body.IsNull())
	mem.SetLinearVelocity(body, vmath.Vec2{})
	return body
}

func character(t testing.TB, w *engine.World, body core.BodyID) component.CharacterComponent {
	c, ok := w.Registry.Characters.Get(body)
	require.True(t, ok, "character %v missing", body)
	return c
}

func weaponOf(t testing.TB, w *engine.World, owner core.BodyID) (core.BodyID, component.WeaponComponent) {
	c := character(t, w, owner)
	require.False(t, c.Weapon.IsNull(), "character is unarmed")
	wpn, ok := w.Registry.Weapons.Get(c.Weapon)
	require.True(t, ok)
	return c.Weapon, wpn
}

// eventRecorder collects routed events of the listed types
type eventRecorder struct {
	types []event.EventType
	got   []event.GameEvent
}

func (r *eventRecorder) EventTypes() []event.EventType {
	return r.types
}

func (r *eventRecorder) HandleEvent(ev event.GameEvent) {
	r.got = append(r.got, ev)
}

func (r *eventRecorder) ofType(t event.EventType) []event.GameEvent {
	var out []event.GameEvent
	for _, ev := range r.got {
		if ev.Type == t {
			out = append(out, ev)
		}
	}
	return out
}
