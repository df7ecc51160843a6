package system

import (
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

// PhysicsSystem advances the rigid-body engine by the step delta
type PhysicsSystem struct {
	world    *engine.World
	subSteps int
	enabled  bool
}

func NewPhysicsSystem(world *engine.World, subSteps int) engine.System {
	if subSteps < 1 {
		subSteps = parameter.SubSteps
	}
	s := &PhysicsSystem{world: world, subSteps: subSteps}
	s.Init()
	return s
}

func (s *PhysicsSystem) Init() {
	s.enabled = true
}

func (s *PhysicsSystem) Name() string {
	return "physics"
}

func (s *PhysicsSystem) Priority() int {
	return parameter.PriorityPhysics
}

func (s *PhysicsSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *PhysicsSystem) HandleEvent(ev event.GameEvent) {
	if ev.Type == event.EventWorldReset {
		s.Init()
		return
	}

	if ev.Type == event.EventSystemToggle {
		if payload, ok := ev.Payload.(*event.SystemTogglePayload); ok {
			if payload.SystemName == s.Name() {
				s.enabled = payload.Enabled
			}
		}
	}
}

func (s *PhysicsSystem) Update() {
	if !s.enabled {
		return
	}
	dt := s.world.Resources.Time.DeltaTime
	if dt <= 0 {
		return
	}
	s.world.Physics.Step(dt.Seconds(), s.subSteps)
}
