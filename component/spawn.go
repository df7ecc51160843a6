package component

import (
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// SpawnKind selects what a SpawnOrder creates
type SpawnKind uint8

const (
	SpawnProjectile SpawnKind = iota
	SpawnTurret
)

// SpawnOrder is a body creation requested by a passive rule during hit resolution
// Orders are drained by the passive phase of the same or the next step
type SpawnOrder struct {
	Kind      SpawnKind
	Owner     core.BodyID
	Position  vmath.Vec2
	Direction vmath.Vec2

	// Template carries kind, source and damage for SpawnProjectile
	Template ProjectileComponent
}
