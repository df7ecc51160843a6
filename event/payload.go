package event

import (
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// MatchStartPayload lists the participants of a new match
type MatchStartPayload struct {
	MatchID    string
	Characters []ParticipantInfo
}

// ParticipantInfo identifies one character for outer consumers
type ParticipantInfo struct {
	Body   core.BodyID
	Name   string
	Weapon string
}

// MatchOverPayload carries the winner, NullBody on a draw
type MatchOverPayload struct {
	MatchID    string
	Winner     core.BodyID
	WinnerName string
	Weapon     string
}

// WorldResetPayload explains a rebuild
type WorldResetPayload struct {
	Reason string
}

// HitLandedPayload describes an HP decrease
type HitLandedPayload struct {
	Victim   core.BodyID
	Attacker core.BodyID // Attacker body, NullBody for status ticks
	Owner    core.BodyID // Character credited with the hit
	Cause    string      // Weapon, projectile or status name
	Damage   int
	HP       int
	Point    vmath.Vec2
}

// ExplosionPayload describes a detonation
type ExplosionPayload struct {
	Owner  core.BodyID
	Center vmath.Vec2
	Radius float64
	Damage int
	Hits   int
}

// CharacterKilledPayload describes a removed character
type CharacterKilledPayload struct {
	Victim       core.BodyID
	VictimName   string
	VictimWeapon string
	Killer       core.BodyID // NullBody when no damage source was recorded
	KillerName   string
	KillerWeapon string
	Cause        string
}

// SystemTogglePayload targets a system by Name()
type SystemTogglePayload struct {
	SystemName string
	Enabled    bool
}
