package vecmath

import "math"

// Box is an axis-aligned bounding box, held as a min/max corner pair. A
// degenerate box (Min.k > Max.k on some axis) represents "empty": Contains
// and Intersect both report false/no-hit for it.
type Box struct {
	Min, Max Vector
}

// NewBox builds a box from two opposite corners, given in either order.
func NewBox(a, b Vector) Box {
	return Box{Min: a.Min(b), Max: a.Max(b)}
}

// EmptyBox returns a canonical degenerate box.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{Min: Vector{inf, inf, inf}, Max: Vector{-inf, -inf, -inf}}
}

// Empty reports whether the box is degenerate on any axis.
func (b Box) Empty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// Anchor and Size give the alternate anchor/size box representation.
func (b Box) Anchor() Vector { return b.Min }
func (b Box) Size() Vector   { return b.Max.Sub(b.Min) }

// Center returns the midpoint of the box; meaningless if Empty.
func (b Box) Center() Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Contains reports whether p lies within the closed box.
func (b Box) Contains(p Vector) bool {
	if b.Empty() {
		return false
	}
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Diagonal returns the length of the box's diagonal, used as an iteration
// bound for marching routines.
func (b Box) Diagonal() float64 {
	return b.Max.Sub(b.Min).Length()
}

// Intersect implements the slab method: it returns (tEnter, tExit) with
// tEnter <= tExit, or NoHit-style tEnter > tExit if the ray misses. Both
// values may be negative, which is required for a ray whose origin is
// inside the box (tEnter < 0 < tExit).
func (b Box) Intersect(r Ray) (tEnter, tExit float64) {
	if b.Empty() {
		return math.Inf(1), math.Inf(-1)
	}
	n := b.Min.Sub(r.Origin).DivVec(r.Direction)
	f := b.Max.Sub(r.Origin).DivVec(r.Direction)
	n, f = n.Min(f), n.Max(f)
	tEnter = math.Max(n.X, math.Max(n.Y, n.Z))
	tExit = math.Min(f.X, math.Min(f.Y, f.Z))
	return tEnter, tExit
}

// Hits reports whether the ray intersects the box at all.
func (b Box) Hits(r Ray) bool {
	tEnter, tExit := b.Intersect(r)
	return tEnter <= tExit && tExit >= 0
}

// Corners returns the eight corners of the box, used by Matrix.TransformBox.
func (b Box) Corners() [8]Vector {
	return [8]Vector{
		{b.Min.X, b.Min.Y, b.Min.Z},
		{b.Max.X, b.Min.Y, b.Min.Z},
		{b.Min.X, b.Max.Y, b.Min.Z},
		{b.Max.X, b.Max.Y, b.Min.Z},
		{b.Min.X, b.Min.Y, b.Max.Z},
		{b.Max.X, b.Min.Y, b.Max.Z},
		{b.Min.X, b.Max.Y, b.Max.Z},
		{b.Max.X, b.Max.Y, b.Max.Z},
	}
}
