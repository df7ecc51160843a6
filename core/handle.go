package core

// Handles are the engine's serialized 64-bit ids, never live pointers
// Layout: slot index in the low 32 bits, slot generation in the high 32 bits
// A recycled slot gets a new generation, so an old handle never aliases a new object
// Zero is never issued by an engine and is used as "none"

// BodyID identifies a physics body
type BodyID uint64

// ShapeID identifies a collision shape attached to a body
type ShapeID uint64

// JointID identifies a joint between two bodies
type JointID uint64

const (
	NullBody  BodyID  = 0
	NullShape ShapeID = 0
	NullJoint JointID = 0
)

// PackHandle combines slot index and generation into the serialized form
func PackHandle(index, generation uint32) uint64 {
	return uint64(generation)<<32 | uint64(index)
}

// UnpackHandle splits a serialized handle into slot index and generation
func UnpackHandle(h uint64) (index, generation uint32) {
	return uint32(h), uint32(h >> 32)
}

func (b BodyID) IsNull() bool { return b == NullBody }
func (s ShapeID) IsNull() bool { return s == NullShape }
func (j JointID) IsNull() bool { return j == NullJoint }

// Index returns the slot index of the body
func (b BodyID) Index() uint32 {
	idx, _ := UnpackHandle(uint64(b))
	return idx
}

// Generation returns the slot generation of the body
func (b BodyID) Generation() uint32 {
	_, gen := UnpackHandle(uint64(b))
	return gen
}
