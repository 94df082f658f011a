package shape

import (
	"math"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Triangle is a flat 2-manifold shape; it never participates in CSG
// containment (Contains is always false).
type Triangle struct {
	V1, V2, V3 vecmath.Vector
}

// NewTriangle constructs a triangle without validation; degenerate
// (zero-area) triangles simply never intersect.
func NewTriangle(v1, v2, v3 vecmath.Vector) *Triangle {
	return &Triangle{V1: v1, V2: v2, V3: v3}
}

func (t *Triangle) Compile() {}

func (t *Triangle) BoundingBox() vecmath.Box {
	b := vecmath.Box{Min: t.V1, Max: t.V1}
	b = b.Union(vecmath.Box{Min: t.V2, Max: t.V2})
	b = b.Union(vecmath.Box{Min: t.V3, Max: t.V3})
	return b
}

// Contains is always false: triangles are 2-manifold and do not
// participate in CSG containment directly.
func (t *Triangle) Contains(p vecmath.Vector, eps float64) bool {
	return false
}

// Normal returns the (unnormalized winding) face normal.
func (t *Triangle) Normal() vecmath.Vector {
	return t.V2.Sub(t.V1).Cross(t.V3.Sub(t.V1))
}

// Intersect implements Moller-Trumbore, allowing backface hits.
func (t *Triangle) Intersect(r vecmath.Ray) Hit {
	const eps = 1e-12
	e1 := t.V2.Sub(t.V1)
	e2 := t.V3.Sub(t.V1)
	pvec := r.Direction.Cross(e2)
	det := e1.Dot(pvec)
	if math.Abs(det) < eps {
		return NoHit
	}
	invDet := 1 / det
	tvec := r.Origin.Sub(t.V1)
	u := tvec.Dot(pvec) * invDet
	if u < 0 || u > 1 {
		return NoHit
	}
	qvec := tvec.Cross(e1)
	v := r.Direction.Dot(qvec) * invDet
	if v < 0 || u+v > 1 {
		return NoHit
	}
	tt := e2.Dot(qvec) * invDet
	if tt <= Epsilon {
		return NoHit
	}
	return Hit{T: tt, Shape: t}
}

// Paths returns the three edges.
func (t *Triangle) Paths() paths.Paths {
	var out paths.Paths
	out.Add(paths.Path{t.V1, t.V2})
	out.Add(paths.Path{t.V2, t.V3})
	out.Add(paths.Path{t.V3, t.V1})
	return out
}
