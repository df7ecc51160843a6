package engine

import "github.com/lixenwraith/pixel-brawl/event"

// System is one phase of the per-step pipeline
type System interface {
	// Name returns the identifier used by EventSystemToggle
	Name() string

	// Priority orders Update within a step, lower runs first
	Priority() int

	// Update runs once per step
	Update()

	// EventTypes lists events routed to HandleEvent after the step
	EventTypes() []event.EventType

	// HandleEvent runs during the post-step dispatch; must not destroy bodies
	HandleEvent(ev event.GameEvent)
}

// EventHandler receives routed events without taking part in the step pipeline
// Ledger, replay and logging consumers implement this
type EventHandler interface {
	EventTypes() []event.EventType
	HandleEvent(ev event.GameEvent)
}
