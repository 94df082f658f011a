package csg

import (
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Intersection is the boolean AND of its operands.
type Intersection struct {
	Operands []shape.Shape
}

// NewIntersection validates that at least two operands are given.
func NewIntersection(operands ...shape.Shape) (*Intersection, error) {
	if err := validateOperands("Intersection", operands); err != nil {
		return nil, err
	}
	return &Intersection{Operands: operands}, nil
}

func (n *Intersection) Compile() {
	compileAll(n.Operands)
}

// BoundingBox is the intersection of the children's boxes.
func (n *Intersection) BoundingBox() vecmath.Box {
	box := n.Operands[0].BoundingBox()
	for _, o := range n.Operands[1:] {
		box = intersectBox(box, o.BoundingBox())
	}
	return box
}

func intersectBox(a, b vecmath.Box) vecmath.Box {
	min := a.Min.Max(b.Min)
	max := a.Max.Min(b.Max)
	return vecmath.Box{Min: min, Max: max}
}

// Contains reports whether every operand contains p.
func (n *Intersection) Contains(p vecmath.Vector, eps float64) bool {
	for _, o := range n.Operands {
		if !o.Contains(p, eps) {
			return false
		}
	}
	return true
}

// Intersect returns the smallest-t candidate hit among operand hits whose
// point is contained in every other operand.
func (n *Intersection) Intersect(r vecmath.Ray) shape.Hit {
	best := shape.NoHit
	for i, o := range n.Operands {
		hit := o.Intersect(r)
		if !hit.IsHit() {
			continue
		}
		p := hit.PointOn(r)
		if n.containedInAllExcept(p, i) {
			candidate := shape.Hit{T: hit.T, Shape: n}
			best = shape.MinHit(best, candidate)
		}
	}
	return best
}

func (n *Intersection) containedInAllExcept(p vecmath.Vector, except int) bool {
	for j, o := range n.Operands {
		if j == except {
			continue
		}
		if !o.Contains(p, FilterEps) {
			return false
		}
	}
	return true
}

// Paths concatenates each child's paths, filtering points to those
// contained in every other child.
func (n *Intersection) Paths() paths.Paths {
	var out paths.Paths
	for i, o := range n.Operands {
		filtered := filterPolylines(o.Paths(), func(p vecmath.Vector) bool {
			return n.containedInAllExcept(p, i)
		})
		out.Append(filtered)
	}
	return out
}
