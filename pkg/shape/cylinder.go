package shape

import (
	"math"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// CylinderTexture selects a Cylinder's default path set.
type CylinderTexture int

const (
	// CylinderStriped draws both cap circles plus N longitudinal lines.
	CylinderStriped CylinderTexture = iota
	// CylinderOutline draws only the two cap circles and two
	// longitudinal lines on opposite sides of the axis, for a minimal-ink
	// rendering. The lines are fixed in the cylinder's local frame; they
	// do not follow the eye position, so they are not true silhouettes.
	CylinderOutline
)

// Cylinder is a solid of radius Radius swept along the finite axis
// segment V0 -> V1; the axis need not be axis-aligned.
type Cylinder struct {
	Radius float64
	V0, V1 vecmath.Vector

	Texture  CylinderTexture
	LonLines int

	axis         vecmath.Vector
	u, v         vecmath.Vector
	length       float64
	compileDirty bool
}

// NewCylinder validates radius > 0 and that the axis has nonzero length.
func NewCylinder(radius float64, v0, v1 vecmath.Vector) (*Cylinder, error) {
	if radius <= 0 {
		return nil, newConstructionError("Cylinder", "radius must be positive")
	}
	if v0.Distance(v1) < 1e-12 {
		return nil, newConstructionError("Cylinder", "v0 and v1 must be distinct")
	}
	c := &Cylinder{Radius: radius, V0: v0, V1: v1, Texture: CylinderStriped, LonLines: 8}
	c.Compile()
	return c, nil
}

// Compile precomputes the local orthonormal frame (idempotent).
func (c *Cylinder) Compile() {
	d := c.V1.Sub(c.V0)
	c.length = d.Length()
	c.axis = d.Normalize()
	c.u, c.v = orthonormalBasis(c.axis)
}

// toLocal projects p into the cylinder's local frame: x,y are radial
// coordinates, z runs 0..length along the axis.
func (c *Cylinder) toLocal(p vecmath.Vector) vecmath.Vector {
	rel := p.Sub(c.V0)
	return vecmath.V(rel.Dot(c.u), rel.Dot(c.v), rel.Dot(c.axis))
}

func (c *Cylinder) fromLocal(p vecmath.Vector) vecmath.Vector {
	return c.V0.Add(c.u.Mul(p.X)).Add(c.v.Mul(p.Y)).Add(c.axis.Mul(p.Z))
}

func (c *Cylinder) BoundingBox() vecmath.Box {
	local := vecmath.NewBox(vecmath.V(-c.Radius, -c.Radius, 0), vecmath.V(c.Radius, c.Radius, c.length))
	corners := local.Corners()
	out := c.fromLocal(corners[0])
	b := vecmath.Box{Min: out, Max: out}
	for _, cor := range corners[1:] {
		p := c.fromLocal(cor)
		b.Min = b.Min.Min(p)
		b.Max = b.Max.Max(p)
	}
	return b
}

// Contains reports radial <= r+eps and axial projection within [0,length].
func (c *Cylinder) Contains(p vecmath.Vector, eps float64) bool {
	l := c.toLocal(p)
	radial := math.Hypot(l.X, l.Y)
	return radial <= c.Radius+eps && l.Z >= -eps && l.Z <= c.length+eps
}

// Intersect solves the local-frame lateral quadratic and the two end-cap
// disks, returning the nearest valid positive root.
func (c *Cylinder) Intersect(r vecmath.Ray) Hit {
	o := c.toLocal(r.Origin)
	// Direction transforms as a vector, not a point: no translation.
	dRel := r.Direction
	d := vecmath.V(dRel.Dot(c.u), dRel.Dot(c.v), dRel.Dot(c.axis))

	best := NoHit
	consider := func(t float64) {
		if t <= Epsilon {
			return
		}
		if best.IsHit() && t >= best.T {
			return
		}
		lp := vecmath.V(o.X+t*d.X, o.Y+t*d.Y, o.Z+t*d.Z)
		if lp.Z < -1e-9 || lp.Z > c.length+1e-9 {
			return
		}
		best = Hit{T: t, Shape: c}
	}

	a := d.X*d.X + d.Y*d.Y
	if a > 1e-15 {
		b := 2 * (o.X*d.X + o.Y*d.Y)
		cc := o.X*o.X + o.Y*o.Y - c.Radius*c.Radius
		disc := b*b - 4*a*cc
		if disc >= 0 {
			sq := math.Sqrt(disc)
			consider((-b - sq) / (2 * a))
			consider((-b + sq) / (2 * a))
		}
	}
	considerCap := func(z float64) {
		if math.Abs(d.Z) < 1e-15 {
			return
		}
		t := (z - o.Z) / d.Z
		if t <= Epsilon {
			return
		}
		x, y := o.X+t*d.X, o.Y+t*d.Y
		if x*x+y*y > c.Radius*c.Radius {
			return
		}
		if best.IsHit() && t >= best.T {
			return
		}
		best = Hit{T: t, Shape: c}
	}
	considerCap(0)
	considerCap(c.length)
	return best
}

func (c *Cylinder) Paths() paths.Paths {
	var out paths.Paths
	pts := 48
	circle := func(z float64) paths.Path {
		var p paths.Path
		for j := 0; j <= pts; j++ {
			theta := 2 * math.Pi * float64(j) / float64(pts)
			p = append(p, c.fromLocal(vecmath.V(c.Radius*math.Cos(theta), c.Radius*math.Sin(theta), z)))
		}
		return p
	}
	out.Add(circle(0))
	out.Add(circle(c.length))

	n := c.LonLines
	if n < 1 {
		n = 8
	}
	if c.Texture == CylinderOutline {
		n = 2
	}
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		x, y := c.Radius*math.Cos(theta), c.Radius*math.Sin(theta)
		out.Add(paths.Path{
			c.fromLocal(vecmath.V(x, y, 0)),
			c.fromLocal(vecmath.V(x, y, c.length)),
		})
	}
	return out
}
