// Package vecmath provides the value-type geometry primitives shared by the
// rest of the renderer: 3-vectors, rays, axis-aligned bounding boxes, and
// 4x4 affine matrices. All operations are pure and none of these types
// carry identity; the one operation that can fail is Matrix.Inverse,
// which panics on a singular matrix.
package vecmath

import "math"

// Vector is a point or direction in 3-space, held by value.
type Vector struct {
	X, Y, Z float64
}

// V is a convenience constructor.
func V(x, y, z float64) Vector {
	return Vector{X: x, Y: y, Z: z}
}

func (a Vector) Add(b Vector) Vector {
	return Vector{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func (a Vector) Sub(b Vector) Vector {
	return Vector{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func (a Vector) Mul(s float64) Vector {
	return Vector{a.X * s, a.Y * s, a.Z * s}
}

func (a Vector) Div(s float64) Vector {
	return Vector{a.X / s, a.Y / s, a.Z / s}
}

// DivVec divides component-wise, used by the AABB slab test where b may
// have zero or infinite components for axis-parallel rays.
func (a Vector) DivVec(b Vector) Vector {
	return Vector{a.X / b.X, a.Y / b.Y, a.Z / b.Z}
}

func (a Vector) Dot(b Vector) float64 {
	return a.X*b.X + a.Y*b.Y + a.Z*b.Z
}

func (a Vector) Cross(b Vector) Vector {
	return Vector{
		a.Y*b.Z - a.Z*b.Y,
		a.Z*b.X - a.X*b.Z,
		a.X*b.Y - a.Y*b.X,
	}
}

func (a Vector) Length() float64 {
	return math.Sqrt(a.Dot(a))
}

func (a Vector) LengthSquared() float64 {
	return a.Dot(a)
}

// Normalize returns a unit-length copy of a, or the zero vector if a is
// zero. Callers that require a non-zero normal must check for that case
// themselves; this never panics.
func (a Vector) Normalize() Vector {
	l := a.Length()
	if l == 0 {
		return Vector{}
	}
	return a.Mul(1 / l)
}

func (a Vector) Min(b Vector) Vector {
	return Vector{math.Min(a.X, b.X), math.Min(a.Y, b.Y), math.Min(a.Z, b.Z)}
}

func (a Vector) Max(b Vector) Vector {
	return Vector{math.Max(a.X, b.X), math.Max(a.Y, b.Y), math.Max(a.Z, b.Z)}
}

func (a Vector) Abs() Vector {
	return Vector{math.Abs(a.X), math.Abs(a.Y), math.Abs(a.Z)}
}

// MinAxis returns the unit basis vector along the axis of smallest absolute
// component of a. It is used to construct a vector known not to be
// parallel to a, e.g. for building an orthonormal frame.
func (a Vector) MinAxis() Vector {
	abs := a.Abs()
	if abs.X <= abs.Y && abs.X <= abs.Z {
		return Vector{1, 0, 0}
	}
	if abs.Y <= abs.Z {
		return Vector{0, 1, 0}
	}
	return Vector{0, 0, 1}
}

// Reflect reflects a across the plane with the given normal.
func (a Vector) Reflect(normal Vector) Vector {
	return a.Sub(normal.Mul(2 * a.Dot(normal)))
}

func (a Vector) Distance(b Vector) float64 {
	return a.Sub(b).Length()
}

func (a Vector) DistanceSquared(b Vector) float64 {
	return a.Sub(b).LengthSquared()
}

// SegmentDistance returns the shortest distance from a to the segment v0-v1.
func (a Vector) SegmentDistance(v0, v1 Vector) float64 {
	seg := v1.Sub(v0)
	segLenSq := seg.LengthSquared()
	if segLenSq == 0 {
		return a.Distance(v0)
	}
	t := a.Sub(v0).Dot(seg) / segLenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	proj := v0.Add(seg.Mul(t))
	return a.Distance(proj)
}

// RandomUnitVector draws a uniformly-distributed point on the unit sphere
// using r. Callers supply their own *rand.Rand so texture generation stays
// reproducible per the seed given by the caller.
func RandomUnitVector(r interface{ Float64() float64 }) Vector {
	// Marsaglia's method for a uniform point on S^2.
	for {
		x := 2*r.Float64() - 1
		y := 2*r.Float64() - 1
		d := x*x + y*y
		if d >= 1 {
			continue
		}
		s := math.Sqrt(1 - d)
		return Vector{2 * x * s, 2 * y * s, 1 - 2*d}
	}
}
