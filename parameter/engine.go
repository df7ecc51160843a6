package parameter

import "time"

// Simulation Timing
const (
	// StepInterval is the fixed simulation step (60 Hz)
	StepInterval = time.Second / 60

	// SubSteps is the physics substep count per step
	SubSteps = 4

	// MaxStepsPerFrame caps catch-up steps after a stall
	MaxStepsPerFrame = 5

	// FrameUpdateInterval is the overlay refresh interval (~30 FPS)
	FrameUpdateInterval = 33 * time.Millisecond
)

// ECS & Resources Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 2048

	// EventBufferMask is the bitmask for fast modulo operations (2048 - 1)
	EventBufferMask = 2047

	// FxBufferCap is the initial capacity of the per-frame FX record buffer
	FxBufferCap = 64
)
