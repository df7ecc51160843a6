package physics

import (
	"github.com/lixenwraith/pixel-brawl/core"
	"github.com/lixenwraith/pixel-brawl/vmath"
)

// BodyType selects how the engine integrates a body
type BodyType int

const (
	BodyStatic BodyType = iota
	BodyKinematic
	BodyDynamic
)

// ShapeKind selects the collision geometry
type ShapeKind int

const (
	ShapeCircle ShapeKind = iota
	// ShapeBox is axis-aligned in world space and does not rotate with its body
	ShapeBox
)

// BodyDef describes a body at creation
type BodyDef struct {
	Type            BodyType
	Position        vmath.Vec2
	Angle           float64
	LinearVelocity  vmath.Vec2
	AngularVelocity float64
	LinearDamping   float64
	AngularDamping  float64
	SleepThreshold  float64
	Mass            float64 // 0 means 1
}

// Filter is the category/mask pair used for contact and sensor routing
type Filter struct {
	Category core.Category
	Mask     core.Category
}

// Accepts reports whether two filters allow a contact in both directions
func (f Filter) Accepts(other Filter) bool {
	return f.Mask.Has(other.Category) && other.Mask.Has(f.Category)
}

// ShapeDef describes a shape at creation
type ShapeDef struct {
	Kind        ShapeKind
	Offset      vmath.Vec2 // Local offset from body origin
	Radius      float64    // ShapeCircle
	HalfExtents vmath.Vec2 // ShapeBox
	Filter      Filter
	IsSensor    bool
	Color       core.RGB
	Restitution float64
}

// MotorState is the drive motor of a revolute joint
type MotorState struct {
	Enabled   bool
	Speed     float64 // rad/s
	MaxTorque float64
}

// JointDef describes a revolute joint; AnchorA and AnchorB are local anchors
type JointDef struct {
	BodyA   core.BodyID
	BodyB   core.BodyID
	AnchorA vmath.Vec2
	AnchorB vmath.Vec2
	Motor   MotorState
}

// TouchEvent reports a begin or end touch between two solid shapes
type TouchEvent struct {
	ShapeA core.ShapeID
	ShapeB core.ShapeID
}

// HitEvent reports a begin touch above the hit speed threshold
type HitEvent struct {
	ShapeA        core.ShapeID
	ShapeB        core.ShapeID
	Point         vmath.Vec2
	ApproachSpeed float64
}

// ContactEvents are valid until the next Step
type ContactEvents struct {
	Begin []TouchEvent
	End   []TouchEvent
	Hit   []HitEvent
}

// SensorEvent reports a visitor shape entering or leaving a sensor shape
type SensorEvent struct {
	SensorShape  core.ShapeID
	VisitorShape core.ShapeID
}

// SensorEvents are valid until the next Step
type SensorEvents struct {
	Begin []SensorEvent
	End   []SensorEvent
}

// Engine is the rigid-body collaborator consumed by the gameplay core
// Handles are serialized ids; any handle may be stale and must be checked with the Valid predicates
// End events may reference shapes destroyed earlier in the same step
type Engine interface {
	CreateBody(def BodyDef) core.BodyID
	DestroyBody(id core.BodyID)
	BodyValid(id core.BodyID) bool
	BodyShapes(id core.BodyID) []core.ShapeID

	CreateShape(body core.BodyID, def ShapeDef) core.ShapeID
	ShapeValid(id core.ShapeID) bool
	ShapeBody(id core.ShapeID) core.BodyID
	ShapeFilter(id core.ShapeID) Filter
	ShapeColor(id core.ShapeID) core.RGB
	SetShapeColor(id core.ShapeID, c core.RGB)
	ShapeRadius(id core.ShapeID) float64
	SetShapeRadius(id core.ShapeID, r float64)

	CreateRevoluteJoint(def JointDef) core.JointID
	DestroyJoint(id core.JointID)
	JointValid(id core.JointID) bool
	Motor(id core.JointID) MotorState
	SetMotor(id core.JointID, m MotorState)

	Position(id core.BodyID) vmath.Vec2
	Angle(id core.BodyID) float64
	SetTransform(id core.BodyID, pos vmath.Vec2, angle float64)
	LinearVelocity(id core.BodyID) vmath.Vec2
	SetLinearVelocity(id core.BodyID, v vmath.Vec2)
	AngularVelocity(id core.BodyID) float64
	SetAngularVelocity(id core.BodyID, w float64)
	ApplyLinearImpulse(id core.BodyID, impulse vmath.Vec2)
	SleepThreshold(id core.BodyID) float64
	SetSleepThreshold(id core.BodyID, threshold float64)
	IsAwake(id core.BodyID) bool
	SetAwake(id core.BodyID, awake bool)

	// OverlapCircle returns shapes whose category intersects mask and overlap the circle
	OverlapCircle(center vmath.Vec2, radius float64, mask core.Category) []core.ShapeID

	Step(dt float64, subSteps int)
	ContactEvents() ContactEvents
	SensorEvents() SensorEvents
}
