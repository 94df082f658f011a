package shape

import (
	"math"
	"math/rand"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// SphereTexture selects which family of surface paths a Sphere emits.
type SphereTexture int

const (
	// SphereLatLng draws evenly spaced latitude and longitude circles.
	SphereLatLng SphereTexture = iota
	// SphereRandomEquators draws N great circles through random axes.
	SphereRandomEquators
	// SphereRandomCircles draws N small circles around random axes,
	// seeded by a reproducible stream.
	SphereRandomCircles
	// SphereRandomFuzz draws random surface points as degenerate
	// zero-length "dot" segments.
	SphereRandomFuzz
	// SphereOutline draws only the silhouette-defining equator facing
	// the default +Z viewing axis, for a minimal-ink rendering.
	SphereOutline
)

// Sphere is a solid ball centered at Center with the given Radius.
type Sphere struct {
	Center vecmath.Vector
	Radius float64

	Texture       SphereTexture
	Seed          int64
	LatLines      int
	LonLines      int
	PointsPerLine int
	RandomCount   int
}

// NewSphere validates radius > 0 and returns a sphere with lat-lng
// texture defaults.
func NewSphere(center vecmath.Vector, radius float64) (*Sphere, error) {
	if radius <= 0 {
		return nil, newConstructionError("Sphere", "radius must be positive")
	}
	return &Sphere{
		Center:        center,
		Radius:        radius,
		Texture:       SphereLatLng,
		LatLines:      8,
		LonLines:      12,
		PointsPerLine: 64,
		RandomCount:   24,
	}, nil
}

// Compile is a no-op for Sphere; there is no internal structure to build.
func (s *Sphere) Compile() {}

// BoundingBox returns the axis-aligned cube enclosing the ball.
func (s *Sphere) BoundingBox() vecmath.Box {
	r := vecmath.V(s.Radius, s.Radius, s.Radius)
	return vecmath.NewBox(s.Center.Sub(r), s.Center.Add(r))
}

// Contains reports |p - center| <= radius + eps.
func (s *Sphere) Contains(p vecmath.Vector, eps float64) bool {
	return p.Distance(s.Center) <= s.Radius+eps
}

// Intersect substitutes into |O + tD - C|^2 = r^2 and returns the smallest
// positive root greater than Epsilon.
func (s *Sphere) Intersect(r vecmath.Ray) Hit {
	oc := r.Origin.Sub(s.Center)
	a := r.Direction.Dot(r.Direction)
	b := 2 * oc.Dot(r.Direction)
	c := oc.Dot(oc) - s.Radius*s.Radius
	disc := b*b - 4*a*c
	if disc < 0 {
		return NoHit
	}
	sq := math.Sqrt(disc)
	t0 := (-b - sq) / (2 * a)
	t1 := (-b + sq) / (2 * a)
	if t0 > Epsilon {
		return Hit{T: t0, Shape: s}
	}
	if t1 > Epsilon {
		return Hit{T: t1, Shape: s}
	}
	return NoHit
}

// Paths returns this sphere's configured texture.
func (s *Sphere) Paths() paths.Paths {
	switch s.Texture {
	case SphereRandomEquators:
		return s.randomEquators()
	case SphereRandomCircles:
		return s.randomCircles()
	case SphereRandomFuzz:
		return s.randomFuzz()
	case SphereOutline:
		return s.outline()
	default:
		return s.latLngGrid()
	}
}

func (s *Sphere) latLngGrid() paths.Paths {
	var out paths.Paths
	n := s.LonLines
	if n < 1 {
		n = 1
	}
	m := s.LatLines
	if m < 1 {
		m = 1
	}
	pts := s.PointsPerLine
	if pts < 3 {
		pts = 3
	}
	// Longitude lines: fixed azimuth, sweep polar angle.
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		var line paths.Path
		for j := 0; j <= pts; j++ {
			phi := math.Pi * float64(j) / float64(pts)
			line = append(line, s.pointOnSphere(theta, phi))
		}
		out.Add(line)
	}
	// Latitude circles: fixed polar angle, sweep azimuth.
	for i := 1; i < m; i++ {
		phi := math.Pi * float64(i) / float64(m)
		var line paths.Path
		for j := 0; j <= pts; j++ {
			theta := 2 * math.Pi * float64(j) / float64(pts)
			line = append(line, s.pointOnSphere(theta, phi))
		}
		out.Add(line)
	}
	return out
}

func (s *Sphere) pointOnSphere(theta, phi float64) vecmath.Vector {
	x := s.Radius * math.Sin(phi) * math.Cos(theta)
	y := s.Radius * math.Sin(phi) * math.Sin(theta)
	z := s.Radius * math.Cos(phi)
	return s.Center.Add(vecmath.V(x, y, z))
}

func (s *Sphere) outline() paths.Paths {
	var out paths.Paths
	pts := s.PointsPerLine
	if pts < 3 {
		pts = 64
	}
	var line paths.Path
	for j := 0; j <= pts; j++ {
		theta := 2 * math.Pi * float64(j) / float64(pts)
		line = append(line, s.pointOnSphere(theta, math.Pi/2))
	}
	out.Add(line)
	return out
}

func (s *Sphere) randomEquators() paths.Paths {
	rng := rand.New(rand.NewSource(s.Seed))
	var out paths.Paths
	pts := s.PointsPerLine
	if pts < 3 {
		pts = 64
	}
	n := s.RandomCount
	for i := 0; i < n; i++ {
		axis := vecmath.RandomUnitVector(rng)
		u, v := orthonormalBasis(axis)
		var line paths.Path
		for j := 0; j <= pts; j++ {
			theta := 2 * math.Pi * float64(j) / float64(pts)
			p := u.Mul(math.Cos(theta) * s.Radius).Add(v.Mul(math.Sin(theta) * s.Radius))
			line = append(line, s.Center.Add(p))
		}
		out.Add(line)
	}
	return out
}

func (s *Sphere) randomCircles() paths.Paths {
	rng := rand.New(rand.NewSource(s.Seed))
	var out paths.Paths
	pts := s.PointsPerLine
	if pts < 3 {
		pts = 64
	}
	n := s.RandomCount
	for i := 0; i < n; i++ {
		phi := rng.Float64() * math.Pi
		theta0 := rng.Float64() * 2 * math.Pi
		axis := vecmath.V(math.Sin(phi)*math.Cos(theta0), math.Sin(phi)*math.Sin(theta0), math.Cos(phi))
		u, v := orthonormalBasis(axis)
		radiusScale := 0.3 + 0.6*rng.Float64()
		var line paths.Path
		for j := 0; j <= pts; j++ {
			theta := 2 * math.Pi * float64(j) / float64(pts)
			offset := axis.Mul(s.Radius * math.Sqrt(1-radiusScale*radiusScale))
			p := u.Mul(math.Cos(theta) * s.Radius * radiusScale).Add(v.Mul(math.Sin(theta) * s.Radius * radiusScale)).Add(offset)
			line = append(line, s.Center.Add(p))
		}
		out.Add(line)
	}
	return out
}

func (s *Sphere) randomFuzz() paths.Paths {
	rng := rand.New(rand.NewSource(s.Seed))
	var out paths.Paths
	n := s.RandomCount
	if n < 1 {
		n = 24
	}
	for i := 0; i < n; i++ {
		p := s.Center.Add(vecmath.RandomUnitVector(rng).Mul(s.Radius))
		// A degenerate zero-length pair renders as a dot.
		out.Add(paths.Path{p, p})
	}
	return out
}

// orthonormalBasis returns two unit vectors orthogonal to axis and to
// each other, using axis's minimal-magnitude-component trick to avoid a
// degenerate cross product.
func orthonormalBasis(axis vecmath.Vector) (vecmath.Vector, vecmath.Vector) {
	axis = axis.Normalize()
	helper := axis.MinAxis()
	u := axis.Cross(helper).Normalize()
	v := axis.Cross(u).Normalize()
	return u, v
}
