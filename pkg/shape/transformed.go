package shape

import (
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Transformed wraps a child shape with an affine matrix, forwarding all
// four Shape operations through the matrix (and its precomputed inverse).
type Transformed struct {
	Child  Shape
	Matrix vecmath.Matrix

	inverse vecmath.Matrix
}

// NewTransformed validates that Matrix is invertible up front; a matrix
// that later becomes singular is impossible since Matrix is a value, so
// this check is sufficient for the lifetime of the shape.
func NewTransformed(child Shape, m vecmath.Matrix) (*Transformed, error) {
	if absDet := m.Determinant(); absDet < vecmath.SingularThreshold && absDet > -vecmath.SingularThreshold {
		return nil, newSingularTransform(absDet)
	}
	t := &Transformed{Child: child, Matrix: m}
	t.Compile()
	return t, nil
}

// Compile precomputes M^-1 and recursively compiles the child.
func (t *Transformed) Compile() {
	t.Child.Compile()
	t.inverse = t.Matrix.Inverse()
}

func (t *Transformed) BoundingBox() vecmath.Box {
	return t.Matrix.TransformBox(t.Child.BoundingBox())
}

func (t *Transformed) Contains(p vecmath.Vector, eps float64) bool {
	return t.Child.Contains(t.inverse.TransformPoint(p), eps)
}

// Intersect transforms the ray into child space, then rescales the hit
// distance back into world units by transforming the hit point back
// through M and measuring its world-space distance from the ray origin;
// this is needed because a non-rigid M changes the direction's length.
func (t *Transformed) Intersect(r vecmath.Ray) Hit {
	localOrigin := t.inverse.TransformPoint(r.Origin)
	localDir := t.inverse.TransformDirection(r.Direction)
	localRay := vecmath.Ray{Origin: localOrigin, Direction: localDir}

	hit := t.Child.Intersect(localRay)
	if !hit.IsHit() {
		return NoHit
	}
	localPoint := localRay.Position(hit.T)
	worldPoint := t.Matrix.TransformPoint(localPoint)
	worldT := worldPoint.Distance(r.Origin)
	return Hit{T: worldT, Shape: t}
}

func (t *Transformed) Paths() paths.Paths {
	return t.Child.Paths().Transform(t.Matrix)
}
