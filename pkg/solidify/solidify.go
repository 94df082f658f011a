// Package solidify adapts the core shape.Shape contract to the
// github.com/deadsy/sdfx SDF3 interface, letting any renderer shape be
// exported through sdfx's marching-cubes mesh pipeline.
package solidify

import (
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// sampleDirections are unit vectors spread roughly evenly over the
// sphere, used to approximate a signed distance from a point that is
// only known via Contains/Intersect (shape.Shape has no native distance
// function).
var sampleDirections = buildSampleDirections(26)

func buildSampleDirections(n int) []vecmath.Vector {
	dirs := make([]vecmath.Vector, 0, n)
	for i := -1; i <= 1; i++ {
		for j := -1; j <= 1; j++ {
			for k := -1; k <= 1; k++ {
				if i == 0 && j == 0 && k == 0 {
					continue
				}
				dirs = append(dirs, vecmath.V(float64(i), float64(j), float64(k)).Normalize())
			}
		}
	}
	return dirs
}

// shapeSDF3 wraps a shape.Shape as an sdf.SDF3 by approximating the
// signed distance at a point as the nearest ray-intersection distance in
// a fixed set of sample directions, signed by Contains.
type shapeSDF3 struct {
	shape shape.Shape
	box   vecmath.Box
}

// ToSDF3 wraps s (already compiled) as an sdf.SDF3 for marching-cubes
// export. The distance field is an approximation: exact on the surface's
// containment sign, approximate in magnitude away from it. This is
// sufficient for isosurface extraction, which only needs a correct sign
// change near the boundary.
func ToSDF3(s shape.Shape) sdf.SDF3 {
	return &shapeSDF3{shape: s, box: s.BoundingBox()}
}

func (w *shapeSDF3) Evaluate(p v3.Vec) float64 {
	point := vecmath.V(p.X, p.Y, p.Z)
	inside := w.shape.Contains(point, 0)

	best := w.box.Diagonal()
	for _, dir := range sampleDirections {
		r := vecmath.NewRay(point, dir)
		if hit := w.shape.Intersect(r); hit.IsHit() && hit.T < best {
			best = hit.T
		}
		r2 := vecmath.NewRay(point, dir.Mul(-1))
		if hit := w.shape.Intersect(r2); hit.IsHit() && hit.T < best {
			best = hit.T
		}
	}
	if inside {
		return -best
	}
	return best
}

func (w *shapeSDF3) BoundingBox() sdf.Box3 {
	return sdf.Box3{
		Min: v3.Vec{X: w.box.Min.X, Y: w.box.Min.Y, Z: w.box.Min.Z},
		Max: v3.Vec{X: w.box.Max.X, Y: w.box.Max.Y, Z: w.box.Max.Z},
	}
}

// ToTriangleMesh runs sdfx's uniform marching-cubes renderer over s at
// the given cell count and returns the resulting triangle soup as world
// coordinates, grouped into (v0,v1,v2) triples.
func ToTriangleMesh(s shape.Shape, cells int) []vecmath.Vector {
	solid := ToSDF3(s)
	renderer := render.NewMarchingCubesUniform(cells)
	tris := render.ToTriangles(solid, renderer)
	out := make([]vecmath.Vector, 0, len(tris)*3)
	for _, tri := range tris {
		for _, v := range tri {
			out = append(out, vecmath.V(v.X, v.Y, v.Z))
		}
	}
	return out
}
