package event

import "time"

// EventType represents the type of game event
type EventType int

const (
	// EventNone is the zero value, never pushed
	EventNone EventType = iota

	// === Match Event ===

	// EventMatchStart signals a fresh arena with a new roster
	// Trigger: Spawner after arena build (initial or rebuild)
	// Consumer: Ledger, Replay | Payload: *MatchStartPayload
	EventMatchStart

	// EventMatchOver signals at most one character remains
	// Trigger: MatchSystem, once per match
	// Consumer: Ledger, Replay, CLI | Payload: *MatchOverPayload
	EventMatchOver

	// EventWorldReset signals the physics world was found corrupted and rebuilt
	// Trigger: IntegritySystem
	// Consumer: Systems (Init), Ledger | Payload: *WorldResetPayload
	EventWorldReset

	// === Combat Event ===

	// EventHitLanded reports a damage application that decreased HP
	// Trigger: Hit resolver, explosion, status ticks
	// Consumer: Ledger, Replay, logging | Payload: *HitLandedPayload
	EventHitLanded

	// EventExplosion reports a detonation before its body is removed
	// Trigger: DestroySystem
	// Consumer: Replay, logging | Payload: *ExplosionPayload
	EventExplosion

	// EventCharacterKilled reports a character removed by the kill pass
	// Trigger: DeathSystem
	// Consumer: Ledger, MatchSystem | Payload: *CharacterKilledPayload
	EventCharacterKilled

	// === Meta Event ===

	// EventSystemToggle enables or disables a system by name
	// Trigger: CLI, tests
	// Consumer: All systems | Payload: *SystemTogglePayload
	EventSystemToggle
)

// GameEvent is one queued event with the frame and sim time it was pushed at
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
	Time    time.Duration
}
