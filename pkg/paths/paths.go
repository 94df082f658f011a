// Package paths implements the ordered-polyline model that flows through
// the render pipeline: 3D paths gathered from shapes, chopped into
// bounded-length segments, projected into normalized device coordinates,
// and finally clipped to the unit view rectangle.
package paths

import (
	"github.com/chazu/larnt/pkg/vecmath"
	"github.com/samber/lo"
)

// Path is a single polyline: an ordered sequence of points. A well-formed
// path has at least two points; callers should not append single-point
// paths (chop, project and filtering all assume >= 2).
type Path []vecmath.Vector

// Paths is an ordered collection of polylines. It is the type flowing
// between every stage of the render pipeline.
type Paths struct {
	P []Path
}

// New returns an empty Paths collection.
func New() Paths {
	return Paths{}
}

// FromPaths wraps an existing slice of paths.
func FromPaths(p []Path) Paths {
	return Paths{P: p}
}

// Add appends a single polyline.
func (ps *Paths) Add(p Path) {
	if len(p) < 2 {
		return
	}
	ps.P = append(ps.P, p)
}

// Append merges another Paths collection into this one.
func (ps *Paths) Append(other Paths) {
	ps.P = append(ps.P, other.P...)
}

// Len returns the number of polylines.
func (ps Paths) Len() int {
	return len(ps.P)
}

// BoundingBox returns the box enclosing every point of every path.
func (ps Paths) BoundingBox() vecmath.Box {
	b := vecmath.EmptyBox()
	for _, p := range ps.P {
		for _, v := range p {
			b = b.Union(vecmath.Box{Min: v, Max: v})
		}
	}
	return b
}

// Segment is one pair of consecutive points of a path.
type Segment struct {
	A, B vecmath.Vector
}

// FlattenToSegments returns every consecutive pair of points across every
// path.
func (ps Paths) FlattenToSegments() []Segment {
	var out []Segment
	for _, p := range ps.P {
		for i := 0; i+1 < len(p); i++ {
			out = append(out, Segment{A: p[i], B: p[i+1]})
		}
	}
	return out
}

// Chop returns a new Paths where every segment has length <= step (up to
// floating point slop). The chop preserves the original vertices; new
// interior points are inserted every step along each original segment,
// so the last sub-segment of each holds the remainder.
func (ps Paths) Chop(step float64) Paths {
	if step <= 0 {
		return ps
	}
	out := make([]Path, 0, len(ps.P))
	for _, p := range ps.P {
		out = append(out, chopPath(p, step))
	}
	return Paths{P: out}
}

func chopPath(p Path, step float64) Path {
	if len(p) < 2 {
		return p
	}
	result := make(Path, 0, len(p))
	for i := 0; i+1 < len(p); i++ {
		a, b := p[i], p[i+1]
		v := b.Sub(a)
		l := v.Length()
		if i == 0 {
			result = append(result, a)
		}
		if l == 0 {
			result = append(result, b)
			continue
		}
		for d := step; d < l; d += step {
			result = append(result, a.Add(v.Mul(d/l)))
		}
		result = append(result, b)
	}
	return result
}

// Transform applies m to every point of every path.
func (ps Paths) Transform(m vecmath.Matrix) Paths {
	out := make([]Path, len(ps.P))
	for i, p := range ps.P {
		np := make(Path, len(p))
		for j, v := range p {
			np[j] = m.TransformPoint(v)
		}
		out[i] = np
	}
	return Paths{P: out}
}

// Project transforms every point through m (the perspective*view matrix)
// and drops any resulting polyline that isn't entirely within the near/far
// NDC z range [-1, 1]. Z is retained on the surviving points for
// downstream depth-based pruning.
func (ps Paths) Project(m vecmath.Matrix) Paths {
	out := make([]Path, 0, len(ps.P))
	for _, p := range ps.P {
		np := make(Path, len(p))
		visible := true
		for j, v := range p {
			pt, w := m.TransformPointW(v)
			if w <= 0 {
				visible = false
			}
			if pt.Z < -1 || pt.Z > 1 {
				visible = false
			}
			np[j] = pt
		}
		if visible {
			out = append(out, np)
		}
	}
	return Paths{P: out}
}

// FilterToUnitRect clips every path to [-1,1]x[-1,1], splitting a path into
// multiple output polylines wherever it leaves and re-enters the rectangle.
func (ps Paths) FilterToUnitRect() Paths {
	var out []Path
	for _, p := range ps.P {
		out = append(out, clipPathToRect(p, -1, 1, -1, 1)...)
	}
	return Paths{P: out}
}

// Viewport maps [-1,1]^2 to [0,width]x[0,height] with y flipped.
func (ps Paths) Viewport(width, height float64) Paths {
	out := make([]Path, len(ps.P))
	for i, p := range ps.P {
		np := make(Path, len(p))
		for j, v := range p {
			np[j] = vecmath.V(
				(v.X+1)/2*width,
				(1-(v.Y+1)/2)*height,
				v.Z,
			)
		}
		out[i] = np
	}
	return Paths{P: out}
}

// clipPathToRect performs Liang-Barsky clipping of each segment of p
// against the axis-aligned rectangle [xmin,xmax]x[ymin,ymax], stitching
// consecutive surviving segments back into polylines and starting a new
// polyline wherever the path exits the rectangle.
func clipPathToRect(p Path, xmin, xmax, ymin, ymax float64) []Path {
	var result []Path
	var current Path
	flush := func() {
		if len(current) >= 2 {
			result = append(result, current)
		}
		current = nil
	}
	for i := 0; i+1 < len(p); i++ {
		a, b, ok := liangBarsky(p[i], p[i+1], xmin, xmax, ymin, ymax)
		if !ok {
			flush()
			continue
		}
		if len(current) == 0 {
			current = append(current, a)
		} else if current[len(current)-1] != a {
			flush()
			current = append(current, a)
		}
		current = append(current, b)
	}
	flush()
	return result
}

// liangBarsky clips segment a-b to the given rectangle, returning the
// (possibly shortened) endpoints and whether any part of the segment
// survives. Z is linearly interpolated along with x/y.
func liangBarsky(a, b vecmath.Vector, xmin, xmax, ymin, ymax float64) (vecmath.Vector, vecmath.Vector, bool) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	dz := b.Z - a.Z
	t0, t1 := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return false
			}
			if r > t0 {
				t0 = r
			}
		} else {
			if r < t0 {
				return false
			}
			if r < t1 {
				t1 = r
			}
		}
		return true
	}

	if !clip(-dx, a.X-xmin) || !clip(dx, xmax-a.X) ||
		!clip(-dy, a.Y-ymin) || !clip(dy, ymax-a.Y) {
		return vecmath.Vector{}, vecmath.Vector{}, false
	}
	na := vecmath.V(a.X+t0*dx, a.Y+t0*dy, a.Z+t0*dz)
	nb := vecmath.V(a.X+t1*dx, a.Y+t1*dy, a.Z+t1*dz)
	return na, nb, true
}

// Simplify applies Ramer-Douglas-Peucker simplification with the given
// distance threshold to every path. This is a post-processing convenience
// on top of the render pipeline's output; the core render contract does
// not require it.
func (ps Paths) Simplify(threshold float64) Paths {
	out := lo.Map(ps.P, func(p Path, _ int) Path {
		return simplifyPath(p, threshold)
	})
	return Paths{P: out}
}

func simplifyPath(p Path, threshold float64) Path {
	if len(p) < 3 {
		return p
	}
	a, b := p[0], p[len(p)-1]
	index := -1
	maxDist := 0.0
	for i := 1; i < len(p)-1; i++ {
		d := p[i].SegmentDistance(a, b)
		if d > maxDist {
			index = i
			maxDist = d
		}
	}
	if maxDist > threshold && index >= 0 {
		left := simplifyPath(p[:index+1], threshold)
		right := simplifyPath(p[index:], threshold)
		out := make(Path, 0, len(left)+len(right)-1)
		out = append(out, left[:len(left)-1]...)
		out = append(out, right...)
		return out
	}
	return Path{a, b}
}

// WithinBounds reports whether every point of every path lies within
// [0,width]x[0,height], used by tests as an output invariant check.
func (ps Paths) WithinBounds(width, height float64) bool {
	const eps = 1e-6
	for _, p := range ps.P {
		for _, v := range p {
			if v.X < -eps || v.X > width+eps || v.Y < -eps || v.Y > height+eps {
				return false
			}
		}
	}
	return true
}

// MaxSegmentLength returns the longest segment length across all paths,
// used by chop invariant tests.
func (ps Paths) MaxSegmentLength() float64 {
	max := 0.0
	for _, s := range ps.FlattenToSegments() {
		if l := s.A.Distance(s.B); l > max {
			max = l
		}
	}
	return max
}

// TotalLength sums the length of every segment across all paths.
func (ps Paths) TotalLength() float64 {
	total := 0.0
	for _, s := range ps.FlattenToSegments() {
		total += s.A.Distance(s.B)
	}
	return total
}
