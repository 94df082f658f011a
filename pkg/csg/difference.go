package csg

import (
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Difference computes Operands[0] minus the union of the remaining
// operands.
type Difference struct {
	Operands []shape.Shape
}

// NewDifference validates that at least two operands are given.
func NewDifference(operands ...shape.Shape) (*Difference, error) {
	if err := validateOperands("Difference", operands); err != nil {
		return nil, err
	}
	return &Difference{Operands: operands}, nil
}

func (n *Difference) Compile() {
	compileAll(n.Operands)
}

// BoundingBox is the box of the base operand.
func (n *Difference) BoundingBox() vecmath.Box {
	return n.Operands[0].BoundingBox()
}

// Contains reports S0.Contains(p) and no Si (i>0) contains p.
func (n *Difference) Contains(p vecmath.Vector, eps float64) bool {
	if !n.Operands[0].Contains(p, eps) {
		return false
	}
	for _, o := range n.Operands[1:] {
		if o.Contains(p, eps) {
			return false
		}
	}
	return true
}

func (n *Difference) subtractedContains(p vecmath.Vector, except int) bool {
	for j := 1; j < len(n.Operands); j++ {
		if j == except {
			continue
		}
		if n.Operands[j].Contains(p, FilterEps) {
			return true
		}
	}
	return false
}

// Intersect combines candidate hits: (i) hits on S0 not contained in
// any Si (i>0), and (ii) hits on each Si (i>0) that are contained in S0
// and not contained in any other subtracted Sj.
func (n *Difference) Intersect(r vecmath.Ray) shape.Hit {
	best := shape.NoHit
	base := n.Operands[0]

	if hit := base.Intersect(r); hit.IsHit() {
		p := hit.PointOn(r)
		if !n.subtractedContains(p, -1) {
			best = shape.MinHit(best, shape.Hit{T: hit.T, Shape: n})
		}
	}
	for i := 1; i < len(n.Operands); i++ {
		hit := n.Operands[i].Intersect(r)
		if !hit.IsHit() {
			continue
		}
		p := hit.PointOn(r)
		if base.Contains(p, FilterEps) && !n.subtractedContains(p, i) {
			best = shape.MinHit(best, shape.Hit{T: hit.T, Shape: n})
		}
	}
	return best
}

// Paths returns S0's paths filtered outside every Si interior, plus each
// Si's paths filtered to points inside S0 and outside every other Sj.
func (n *Difference) Paths() paths.Paths {
	var out paths.Paths
	base := n.Operands[0]

	baseFiltered := filterPolylines(base.Paths(), func(p vecmath.Vector) bool {
		return !n.subtractedContains(p, -1)
	})
	out.Append(baseFiltered)

	for i := 1; i < len(n.Operands); i++ {
		idx := i
		filtered := filterPolylines(n.Operands[idx].Paths(), func(p vecmath.Vector) bool {
			return base.Contains(p, FilterEps) && !n.subtractedContains(p, idx)
		})
		out.Append(filtered)
	}
	return out
}
