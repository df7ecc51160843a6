package system

import (
	"sync/atomic"

	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

// IntegritySystem checks the long-lived arena handles each step
// A missing handle means the engine world was reset or corrupted; the whole world is rebuilt
type IntegritySystem struct {
	world *engine.World

	// matchID returns the id for the rebuilt match
	matchID func() string

	statRebuilds *atomic.Int64

	enabled bool
}

func NewIntegritySystem(world *engine.World, matchID func() string) engine.System {
	s := &IntegritySystem{
		world:   world,
		matchID: matchID,
	}

	s.statRebuilds = world.Resources.Status.Ints.Get("arena.rebuilds")

	s.Init()
	return s
}

// Init keeps the rebuild counter across resets, it counts them
func (s *IntegritySystem) Init() {
	s.enabled = true
}

func (s *IntegritySystem) Name() string {
	return "integrity"
}

func (s *IntegritySystem) Priority() int {
	return parameter.PriorityIntegrity
}

func (s *IntegritySystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
	}
}

func (s *IntegritySystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventSystemToggle {
		if payload, ok := ev.Payload.(*event.SystemTogglePayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}
}

func (s *IntegritySystem) Update() {
	if !s.enabled || !s.world.Registry.Arena.Built {
		return
	}
	for _, body := range s.world.Registry.Arena.Handles() {
		if !s.world.Physics.BodyValid(body) {
			s.rebuild()
			return
		}
	}
}

func (s *IntegritySystem) rebuild() {
	s.statRebuilds.Add(1)
	s.world.Resources.Log.Warn().
		Int64("rebuilds", s.statRebuilds.Load()).
		Msg("arena handle invalid, rebuilding world")
	RebuildWorld(s.world, s.matchID(), "arena handle invalid")
}
