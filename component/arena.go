package component

import (
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// ArenaComponent holds the long-lived static bodies checked each step for world corruption
type ArenaComponent struct {
	Ground   core.BodyID
	Walls    []core.BodyID
	Killzone core.BodyID
	Built    bool
}

// Handles returns every long-lived arena body
func (a *ArenaComponent) Handles() []core.BodyID {
	out := make([]core.BodyID, 0, len(a.Walls)+2)
	out = append(out, a.Ground)
	out = append(out, a.Walls...)
	if !a.Killzone.IsNull() {
		out = append(out, a.Killzone)
	}
	return out
}

// RosterEntry is one participant to spawn at match start and on rebuild
type RosterEntry struct {
	Name     string
	Weapon   WeaponKind
	Color    core.RGB
	Position vmath.Vec2
}
