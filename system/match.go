package system

import (
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/engine"
	"github.com/lixenwraith/pixel-brawl/event"
	"github.com/lixenwraith/pixel-brawl/parameter"
)

// MatchSystem announces the end of a match once at most one character remains
type MatchSystem struct {
	world *engine.World

	matchID string
	running bool

	enabled bool
}

func NewMatchSystem(world *engine.World) engine.System {
	s := &MatchSystem{world: world}
	s.Init()
	return s
}

func (s *MatchSystem) Init() {
	s.running = false
	s.enabled = true
}

func (s *MatchSystem) Name() string {
	return "match"
}

func (s *MatchSystem) Priority() int {
	return parameter.PriorityMatch
}

func (s *MatchSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventMatchStart,
		event.EventSystemToggle,
		event.EventWorldReset,
	}
}

func (s *MatchSystem) HandleEvent(ev event.GameEvent) {
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

	if ev.Type == event.EventMatchStart {
		if payload, ok := ev.Payload.(*event.MatchStartPayload); ok {
			s.matchID = payload.MatchID
			s.running = len(payload.Characters) > 1
		}
	}
}

// Running reports whether the current match is still undecided
func (s *MatchSystem) Running() bool {
	return s.running
}

func (s *MatchSystem) Update() {
	if !s.enabled || !s.running {
		return
	}
	reg := s.world.Registry
	if reg.Characters.Len() > 1 {
		return
	}
	s.running = false

	payload := &event.MatchOverPayload{MatchID: s.matchID, Winner: core.NullBody}
	for _, body := range reg.Characters.Keys() {
		c, _ := reg.Characters.Get(body)
		payload.Winner = body
		payload.WinnerName = c.Name
		payload.Weapon = c.WeaponKind.String()
	}
	s.world.PushEvent(event.EventMatchOver, payload)

	s.world.Resources.Log.Info().
		Str("match", s.matchID).
		Str("winner", payload.WinnerName).
		Msg("match over")
}
