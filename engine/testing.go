package engine

import (
	"github.com/rs/zerolog"

	"github.com/lixenwraith/pixel-brawl/parameter"
	"github.com/lixenwraith/pixel-brawl/physics"
)

// NewTestWorld builds a world over an empty in-memory engine with default tuning
// The sim clock starts at 0 and only moves through Step or direct Time writes
func NewTestWorld() (*World, *physics.MemWorld) {
	mem := physics.NewMemWorld()
	w := NewWorld(mem, parameter.DefaultTuning(), zerolog.Nop(), 1)
	return w, mem
}
