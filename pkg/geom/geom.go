// Package geom provides the 2D geometric primitives used by section synthesis.
//
// All coordinates live in the point-of-focus frame: H is the horizontal
// offset away from the focus, V is the vertical offset above it. Points are
// immutable value types; vectors carry their Euclidean length, which is
// computed by the constructors and therefore never goes stale relative to
// the components.
package geom

import "math"

// Epsilon is the tolerance for near-zero and near-equality checks.
const Epsilon = 1e-9

// Point is a 2D position in the point-of-focus frame.
type Point struct {
	H float64 `json:"h" toml:"h"`
	V float64 `json:"v" toml:"v"`
}

// Pt constructs a point from horizontal and vertical offsets.
func Pt(h, v float64) Point {
	return Point{H: h, V: v}
}

// Offset returns the point translated by (dh, dv).
func (p Point) Offset(dh, dv float64) Point {
	return Point{H: p.H + dh, V: p.V + dv}
}

// DistanceTo returns the Euclidean distance to q.
func (p Point) DistanceTo(q Point) float64 {
	return math.Hypot(q.H-p.H, q.V-p.V)
}

// ApproxEqual reports whether p and q coincide within Epsilon per component.
func (p Point) ApproxEqual(q Point) bool {
	return NearZero(p.H-q.H) && NearZero(p.V-q.V)
}

// Vector is a 2D direction with a cached Euclidean length.
type Vector struct {
	H      float64 `json:"h"`
	V      float64 `json:"v"`
	Length float64 `json:"length"`
}

// NewVector constructs a vector from components, computing its length.
func NewVector(h, v float64) Vector {
	return Vector{H: h, V: v, Length: math.Hypot(h, v)}
}

// Between constructs the vector pointing from one point to another.
func Between(from, to Point) Vector {
	return NewVector(to.H-from.H, to.V-from.V)
}

// Add returns the component-wise sum of v and w with a fresh length.
func (v Vector) Add(w Vector) Vector {
	return NewVector(v.H+w.H, v.V+w.V)
}

// Scale returns v scaled by f with a fresh length.
func (v Vector) Scale(f float64) Vector {
	return NewVector(v.H*f, v.V*f)
}

// Dot returns the dot product of v and w.
func (v Vector) Dot(w Vector) float64 {
	return v.H*w.H + v.V*w.V
}

// Unit returns v normalized to length 1. The zero vector is returned
// unchanged since it has no direction.
func (v Vector) Unit() Vector {
	if NearZero(v.Length) {
		return Vector{}
	}
	return Vector{H: v.H / v.Length, V: v.V / v.Length, Length: 1}
}

// Slope returns the vertical change per unit of horizontal change.
// Returns +Inf or -Inf for vertical vectors.
func (v Vector) Slope() float64 {
	return v.V / v.H
}

// NearZero reports whether x is within Epsilon of zero.
func NearZero(x float64) bool {
	return math.Abs(x) <= Epsilon
}

// ApproxEqual reports whether a and b differ by at most Epsilon.
func ApproxEqual(a, b float64) bool {
	return NearZero(a - b)
}
