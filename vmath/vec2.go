package vmath

import "math"

// Vec2 is a 2D vector in world units (meters)
type Vec2 struct {
	X, Y float64
}

// V constructs a Vec2
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(f float64) Vec2 { return Vec2{a.X * f, a.Y * f} }
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }
func (a Vec2) LengthSq() float64 { return a.X*a.X + a.Y*a.Y }
func (a Vec2) Length() float64 { return math.Sqrt(a.LengthSq()) }
func (a Vec2) IsZero() bool { return a.X == 0 && a.Y == 0 }
func (a Vec2) DistanceSq(b Vec2) float64 { return a.Sub(b).LengthSq() }
func (a Vec2) Distance(b Vec2) float64 { return math.Sqrt(a.DistanceSq(b)) }

// Normalize returns unit vector, zero-safe
func (a Vec2) Normalize() Vec2 {
	l := a.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{a.X / l, a.Y / l}
}

// ClampMagnitude limits vector to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func (a Vec2) ClampMagnitude(maxMag float64) Vec2 {
	if maxMag <= 0 {
		return Vec2{}
	}
	l := a.Length()
	if l <= maxMag || l == 0 {
		return a
	}
	return a.Scale(maxMag / l)
}

// Rotate rotates vector by angle radians
func (a Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{a.X*cos - a.Y*sin, a.X*sin + a.Y*cos}
}

// FromAngle returns the unit vector pointing at angle radians
func FromAngle(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{cos, sin}
}

// Reflect returns velocity reflected off surface with given unit normal
// vel' = vel - 2 * dot(vel, normal) * normal
func (a Vec2) Reflect(normal Vec2) Vec2 {
	return a.Sub(normal.Scale(2 * a.Dot(normal)))
}

// CirclesOverlap checks if two circles overlap, touching counts as overlap
func CirclesOverlap(c1 Vec2, r1 float64, c2 Vec2, r2 float64) bool {
	radSum := r1 + r2
	return c1.DistanceSq(c2) <= radSum*radSum
}

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
