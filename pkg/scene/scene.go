// Package scene drives the render pipeline: gathering shape paths,
// chopping them to a target segment length, testing visibility against
// the camera through the acceleration tree, and projecting the result
// into a 2D viewport.
package scene

import (
	"github.com/chazu/larnt/pkg/accel"
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

// VisibilityEps prevents self-occlusion: a hit strictly closer than
// distance-to-eye minus this tolerance is what occludes a sample point.
const VisibilityEps = 1e-6

// Scene owns a list of shapes, a lazily-built top-level AABB tree, and a
// compiled flag.
type Scene struct {
	shapes   []shape.Shape
	tree     *accel.Tree
	compiled bool
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{}
}

// Add pushes a shape onto the scene and invalidates the compiled flag, so
// the next Render rebuilds the tree.
func (s *Scene) Add(shapes ...shape.Shape) {
	s.shapes = append(s.shapes, shapes...)
	s.compiled = false
}

// Shapes returns the scene's shape list, for diagnostics.
func (s *Scene) Shapes() []shape.Shape {
	return s.shapes
}

func (s *Scene) compile() {
	if s.compiled {
		return
	}
	for _, sh := range s.shapes {
		sh.Compile()
	}
	s.tree = accel.Build(s.shapes)
	s.compiled = true
}

// Render compiles the scene, gathers every shape's paths, chops them to
// step length, visibility-tests each endpoint against the eye, projects
// through view*projection, clips to the unit viewport, and maps the
// result into pixel space.
func (s *Scene) Render(eye, center, up vecmath.Vector, width, height float64, fovyDeg, znear, zfar, step float64) paths.Paths {
	s.compile()

	if len(s.shapes) == 0 {
		return paths.New()
	}

	view := vecmath.LookAt(eye, center, up)
	proj := vecmath.Perspective(fovyDeg, width/height, znear, zfar)
	m := proj.Mul(view)

	var gathered paths.Paths
	for _, sh := range s.shapes {
		gathered.Append(sh.Paths())
	}

	chopped := gathered.Chop(step)
	visible := s.visibilityFilter(chopped, eye)
	projected := visible.Project(m)
	clipped := projected.FilterToUnitRect()
	return clipped.Viewport(width, height)
}

// visibilityFilter splits every chopped polyline into maximal runs of
// endpoints unoccluded from eye.
func (s *Scene) visibilityFilter(ps paths.Paths, eye vecmath.Vector) paths.Paths {
	var out paths.Paths
	for _, p := range ps.P {
		var run paths.Path
		flush := func() {
			if len(run) >= 2 {
				out.Add(run)
			}
			run = nil
		}
		for _, v := range p {
			if s.isVisible(v, eye) {
				run = append(run, v)
			} else {
				flush()
			}
		}
		flush()
	}
	return out
}

func (s *Scene) isVisible(p, eye vecmath.Vector) bool {
	toEye := eye.Sub(p)
	dist := toEye.Length()
	if dist < VisibilityEps {
		return true
	}
	ray := vecmath.NewRay(p, toEye)
	hit := s.tree.Intersect(ray)
	if !hit.IsHit() {
		return true
	}
	return hit.T+VisibilityEps >= dist
}
