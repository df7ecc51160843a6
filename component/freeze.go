package component

import (
	"time"

	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/physics"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// FreezeRecord is the saved pre-freeze state of a body
// Repeated freezes extend Expiry and never overwrite the snapshot
type FreezeRecord struct {
	Joint core.JointID

	Velocity        vmath.Vec2
	AngularVelocity float64
	SleepThreshold  float64

	// Motor is valid when HasMotor is set
	Motor    physics.MotorState
	HasMotor bool

	Expiry time.Duration
}

// StatusKey identifies a damage-over-time accumulator on a victim
type StatusKey struct {
	Victim core.BodyID
	Kind   StatusKind
}

// StatusAccumulator ticks at a fixed cadence until Remaining reaches 0
type StatusAccumulator struct {
	LastTick  time.Duration
	Remaining int
	Source    core.BodyID // Character credited with the kill
}
