package shape

import (
	"math"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Cone is a solid whose radius tapers linearly from Radius at V0 to 0 at
// V1, along the finite axis segment V0->V1.
type Cone struct {
	Radius float64
	V0, V1 vecmath.Vector

	SlantLines int

	axis   vecmath.Vector
	u, v   vecmath.Vector
	length float64
}

// NewCone validates radius > 0 and a nonzero axis length.
func NewCone(radius float64, v0, v1 vecmath.Vector) (*Cone, error) {
	if radius <= 0 {
		return nil, newConstructionError("Cone", "radius must be positive")
	}
	if v0.Distance(v1) < 1e-12 {
		return nil, newConstructionError("Cone", "v0 and v1 must be distinct")
	}
	c := &Cone{Radius: radius, V0: v0, V1: v1, SlantLines: 8}
	c.Compile()
	return c, nil
}

func (c *Cone) Compile() {
	d := c.V1.Sub(c.V0)
	c.length = d.Length()
	c.axis = d.Normalize()
	c.u, c.v = orthonormalBasis(c.axis)
}

func (c *Cone) toLocal(p vecmath.Vector) vecmath.Vector {
	rel := p.Sub(c.V0)
	return vecmath.V(rel.Dot(c.u), rel.Dot(c.v), rel.Dot(c.axis))
}

func (c *Cone) fromLocal(p vecmath.Vector) vecmath.Vector {
	return c.V0.Add(c.u.Mul(p.X)).Add(c.v.Mul(p.Y)).Add(c.axis.Mul(p.Z))
}

// radiusAt returns the cone's radius at axial position z in [0,length].
func (c *Cone) radiusAt(z float64) float64 {
	if c.length == 0 {
		return 0
	}
	r := c.Radius * (1 - z/c.length)
	if r < 0 {
		return 0
	}
	return r
}

func (c *Cone) BoundingBox() vecmath.Box {
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

// Contains reports radial <= radiusAt(z)+eps and z within [0,length].
func (c *Cone) Contains(p vecmath.Vector, eps float64) bool {
	l := c.toLocal(p)
	if l.Z < -eps || l.Z > c.length+eps {
		return false
	}
	radial := math.Hypot(l.X, l.Y)
	return radial <= c.radiusAt(l.Z)+eps
}

// Intersect solves the standard double-napped quadratic restricted to the
// finite axial extent, plus the base disk at V0.
func (c *Cone) Intersect(r vecmath.Ray) Hit {
	o := c.toLocal(r.Origin)
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
		z := o.Z + t*d.Z
		if z < -1e-9 || z > c.length+1e-9 {
			return
		}
		best = Hit{T: t, Shape: c}
	}

	if c.length > 0 {
		k := c.Radius / c.length
		k2 := k * k
		w0 := c.length - o.Z
		a := d.X*d.X + d.Y*d.Y - k2*d.Z*d.Z
		b := 2 * (o.X*d.X + o.Y*d.Y + k2*w0*d.Z)
		cc := o.X*o.X + o.Y*o.Y - k2*w0*w0
		if math.Abs(a) < 1e-15 {
			if math.Abs(b) > 1e-15 {
				consider(-cc / b)
			}
		} else {
			disc := b*b - 4*a*cc
			if disc >= 0 {
				sq := math.Sqrt(disc)
				consider((-b - sq) / (2 * a))
				consider((-b + sq) / (2 * a))
			}
		}
	}

	if math.Abs(d.Z) > 1e-15 {
		t := (0 - o.Z) / d.Z
		if t > Epsilon && (!best.IsHit() || t < best.T) {
			x, y := o.X+t*d.X, o.Y+t*d.Y
			if x*x+y*y <= c.Radius*c.Radius {
				best = Hit{T: t, Shape: c}
			}
		}
	}
	return best
}

func (c *Cone) Paths() paths.Paths {
	var out paths.Paths
	pts := 48
	var base paths.Path
	for j := 0; j <= pts; j++ {
		theta := 2 * math.Pi * float64(j) / float64(pts)
		base = append(base, c.fromLocal(vecmath.V(c.Radius*math.Cos(theta), c.Radius*math.Sin(theta), 0)))
	}
	out.Add(base)

	n := c.SlantLines
	if n < 1 {
		n = 8
	}
	apex := c.fromLocal(vecmath.V(0, 0, c.length))
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		x, y := c.Radius*math.Cos(theta), c.Radius*math.Sin(theta)
		out.Add(paths.Path{c.fromLocal(vecmath.V(x, y, 0)), apex})
	}
	return out
}
