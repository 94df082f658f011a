// Package shape defines the polymorphic solid contract — compile, bounding
// box, containment, ray intersection, and surface paths — implemented by
// every primitive, transform, mesh, and CSG node in the renderer.
package shape

import (
	"math"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Epsilon is the default positive-t floor used by ray intersection to
// avoid re-hitting the surface a ray just left.
const Epsilon = 1e-9

// Shape is satisfied by every primitive, transform, mesh, and CSG node.
type Shape interface {
	// Compile performs idempotent preparation (building internal trees,
	// precomputing inverses). It is safe to call more than once.
	Compile()

	// BoundingBox returns a finite enclosing box.
	BoundingBox() vecmath.Box

	// Contains reports whether p lies within the closed solid, within
	// tolerance eps.
	Contains(p vecmath.Vector, eps float64) bool

	// Intersect returns the nearest surface intersection with t > epsilon,
	// or NoHit.
	Intersect(r vecmath.Ray) Hit

	// Paths returns the polylines that depict this shape's surface
	// features.
	Paths() paths.Paths
}

// Hit is either NoHit or a positive distance paired with the shape that
// produced it.
type Hit struct {
	T     float64
	Shape Shape
}

// NoHit is the sentinel "nothing was hit" value.
var NoHit = Hit{T: math.Inf(1)}

// IsHit reports whether h represents an actual intersection.
func (h Hit) IsHit() bool {
	return !math.IsInf(h.T, 1)
}

// MinHit returns whichever of a, b has the smaller T (NoHit sorts last).
func MinHit(a, b Hit) Hit {
	if b.T < a.T {
		return b
	}
	return a
}

// PointOn returns the world point at the hit's distance along r.
func (h Hit) PointOn(r vecmath.Ray) vecmath.Vector {
	return r.Position(h.T)
}
