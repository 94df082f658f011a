package shape

import (
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// CubeTexture selects a Cube's default path set.
type CubeTexture int

const (
	// CubeVanilla draws the 12 edges only.
	CubeVanilla CubeTexture = iota
	// CubeStriped adds N evenly spaced vertical lines on each of the
	// four side faces.
	CubeStriped
)

// Cube is an axis-aligned box solid.
type Cube struct {
	Min, Max vecmath.Vector

	Texture    CubeTexture
	StripeRows int
}

// NewCube validates Min <= Max componentwise.
func NewCube(min, max vecmath.Vector) (*Cube, error) {
	if min.X > max.X || min.Y > max.Y || min.Z > max.Z {
		return nil, newConstructionError("Cube", "min must be componentwise <= max")
	}
	return &Cube{Min: min, Max: max, Texture: CubeVanilla, StripeRows: 4}, nil
}

func (c *Cube) Compile() {}

func (c *Cube) BoundingBox() vecmath.Box {
	return vecmath.NewBox(c.Min, c.Max)
}

// Contains applies coordinate-wise min - eps <= p <= max + eps.
func (c *Cube) Contains(p vecmath.Vector, eps float64) bool {
	return p.X >= c.Min.X-eps && p.X <= c.Max.X+eps &&
		p.Y >= c.Min.Y-eps && p.Y <= c.Max.Y+eps &&
		p.Z >= c.Min.Z-eps && p.Z <= c.Max.Z+eps
}

// Intersect returns the nearest positive slab boundary.
func (c *Cube) Intersect(r vecmath.Ray) Hit {
	tEnter, tExit := vecmath.NewBox(c.Min, c.Max).Intersect(r)
	if tEnter > tExit {
		return NoHit
	}
	if tEnter > Epsilon {
		return Hit{T: tEnter, Shape: c}
	}
	if tExit > Epsilon {
		return Hit{T: tExit, Shape: c}
	}
	return NoHit
}

func (c *Cube) Paths() paths.Paths {
	switch c.Texture {
	case CubeStriped:
		return c.stripedPaths()
	default:
		return c.edgePaths()
	}
}

func (c *Cube) corners() [8]vecmath.Vector {
	return vecmath.NewBox(c.Min, c.Max).Corners()
}

// edgePaths returns the 12 edges of the box, one 2-point path each.
func (c *Cube) edgePaths() paths.Paths {
	v := c.corners()
	// Corner order from Box.Corners: 000,100,010,110,001,101,011,111
	// (bit i = X,Y,Z respectively, using Min/Max per bit).
	edges := [][2]int{
		{0, 1}, {0, 2}, {1, 3}, {2, 3}, // bottom face (z = min)
		{4, 5}, {4, 6}, {5, 7}, {6, 7}, // top face (z = max)
		{0, 4}, {1, 5}, {2, 6}, {3, 7}, // verticals
	}
	var out paths.Paths
	for _, e := range edges {
		out.Add(paths.Path{v[e[0]], v[e[1]]})
	}
	return out
}

func (c *Cube) stripedPaths() paths.Paths {
	out := c.edgePaths()
	n := c.StripeRows
	if n < 1 {
		n = 4
	}
	sizeX := c.Max.X - c.Min.X
	sizeY := c.Max.Y - c.Min.Y
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n+1)
		// Vertical stripes on the +X and -X faces (varying Y along the
		// face) and the +Y/-Y faces (varying X along the face).
		y := c.Min.Y + t*sizeY
		out.Add(paths.Path{vecmath.V(c.Min.X, y, c.Min.Z), vecmath.V(c.Min.X, y, c.Max.Z)})
		out.Add(paths.Path{vecmath.V(c.Max.X, y, c.Min.Z), vecmath.V(c.Max.X, y, c.Max.Z)})
		x := c.Min.X + t*sizeX
		out.Add(paths.Path{vecmath.V(x, c.Min.Y, c.Min.Z), vecmath.V(x, c.Min.Y, c.Max.Z)})
		out.Add(paths.Path{vecmath.V(x, c.Max.Y, c.Min.Z), vecmath.V(x, c.Max.Y, c.Max.Z)})
	}
	return out
}
