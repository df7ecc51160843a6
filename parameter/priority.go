package parameter

// System Priorities (lower runs first)
// Order within a step is load-bearing: events from the previous step are consumed
// before the physics step, destruction is flushed last
const (
	PriorityIntegrity   = 0  // Before any event of a corrupted world is consumed
	PriorityContact     = 10 // Drains previous step's contact and sensor events
	PriorityFreeze      = 20
	PriorityPhysics     = 30
	PriorityFreezeGuard = 35 // Re-zeroes frozen bodies after integration
	PriorityClash       = 40 // Needs this step's motion
	PriorityWeapon      = 50
	PriorityTurret      = 52
	PriorityPassive     = 54
	PriorityStatus      = 60
	PriorityDestroy     = 70
	PriorityDeath       = 72 // After Destroy, owned projectiles are rescheduled for the next flush
	PriorityMatch       = 80
)
