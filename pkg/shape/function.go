package shape

import (
	"math"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// FunctionDirection selects which side of the height-field surface is
// solid.
type FunctionDirection int

const (
	// Below is solid for z <= f(x,y) within the bounding box.
	Below FunctionDirection = iota
	// Above is the complement of Below inside the box.
	Above
)

// FunctionTexture selects a Function shape's default path set.
type FunctionTexture int

const (
	// FunctionGrid draws isoparametric lines in x and y.
	FunctionGrid FunctionTexture = iota
	// FunctionSpiral draws a single Archimedean spiral across the
	// domain, height-sampled from the surface.
	FunctionSpiral
	// FunctionSwirl draws ArmCount spiral arms (3 if unset) with evenly
	// spaced phase offsets.
	FunctionSwirl
)

// Function is a height-field solid: a scalar surface z = f(x,y), sampled
// on a regular (N+1)x(N+1) grid over [MinXY,MaxXY], clipped in z to
// [ZMin,ZMax] and bounded in x/y to the sample rectangle.
type Function struct {
	F     func(x, y float64) float64
	Grid  [][]float64 // verbatim (N+1)x(N+1) samples; used instead of F when non-nil
	N     int
	MinXY vecmath.Vector // X, Y used; Z ignored
	MaxXY vecmath.Vector
	ZMin  float64
	ZMax  float64

	Direction FunctionDirection
	Step      float64
	Texture   FunctionTexture
	ArmCount  int
	Turns     float64

	grid [][]float64
}

// NewFunction validates that F is non-nil, that N >= 1 and that the XY
// rectangle is non-degenerate. It takes no pre-built Grid.
func NewFunction(f func(x, y float64) float64, n int, minXY, maxXY vecmath.Vector, zMin, zMax float64) (*Function, error) {
	if f == nil {
		return nil, newConstructionError("Function", "F must be non-nil")
	}
	if n < 1 {
		return nil, newConstructionError("Function", "N must be >= 1")
	}
	if minXY.X >= maxXY.X || minXY.Y >= maxXY.Y {
		return nil, newConstructionError("Function", "MinXY must be componentwise < MaxXY")
	}
	fn := &Function{
		F: f, N: n, MinXY: minXY, MaxXY: maxXY, ZMin: zMin, ZMax: zMax,
		Direction: Below, Step: 0.1, ArmCount: 3, Turns: 4,
	}
	fn.Compile()
	return fn, nil
}

// Compile precomputes the sample grid, calling F once per grid vertex, or
// leaves a caller-supplied Grid as-is.
func (f *Function) Compile() {
	if f.grid != nil {
		return
	}
	if f.Grid != nil {
		f.grid = f.Grid
		f.N = len(f.Grid) - 1
		return
	}
	f.grid = make([][]float64, f.N+1)
	for i := 0; i <= f.N; i++ {
		f.grid[i] = make([]float64, f.N+1)
		x := f.xAt(i)
		for j := 0; j <= f.N; j++ {
			y := f.yAt(j)
			f.grid[i][j] = f.F(x, y)
		}
	}
}

func (f *Function) xAt(i int) float64 {
	return f.MinXY.X + (f.MaxXY.X-f.MinXY.X)*float64(i)/float64(f.N)
}

func (f *Function) yAt(j int) float64 {
	return f.MinXY.Y + (f.MaxXY.Y-f.MinXY.Y)*float64(j)/float64(f.N)
}

// height evaluates the bilinear interpolant of the sample grid at (x,y).
// Points outside the XY rectangle are clamped to the boundary.
func (f *Function) height(x, y float64) float64 {
	fx := (x - f.MinXY.X) / (f.MaxXY.X - f.MinXY.X) * float64(f.N)
	fy := (y - f.MinXY.Y) / (f.MaxXY.Y - f.MinXY.Y) * float64(f.N)
	fx = math.Max(0, math.Min(float64(f.N), fx))
	fy = math.Max(0, math.Min(float64(f.N), fy))
	i0 := int(fx)
	j0 := int(fy)
	if i0 >= f.N {
		i0 = f.N - 1
	}
	if j0 >= f.N {
		j0 = f.N - 1
	}
	tx := fx - float64(i0)
	ty := fy - float64(j0)
	h00 := f.grid[i0][j0]
	h10 := f.grid[i0+1][j0]
	h01 := f.grid[i0][j0+1]
	h11 := f.grid[i0+1][j0+1]
	return h00*(1-tx)*(1-ty) + h10*tx*(1-ty) + h01*(1-tx)*ty + h11*tx*ty
}

func (f *Function) inXY(x, y float64) bool {
	return x >= f.MinXY.X && x <= f.MaxXY.X && y >= f.MinXY.Y && y <= f.MaxXY.Y
}

func (f *Function) BoundingBox() vecmath.Box {
	return vecmath.NewBox(
		vecmath.V(f.MinXY.X, f.MinXY.Y, f.ZMin),
		vecmath.V(f.MaxXY.X, f.MaxXY.Y, f.ZMax),
	)
}

// signedSide returns z - h(x,y), sign-flipped per Direction so that
// "inside" always corresponds to a non-positive value.
func (f *Function) signedSide(p vecmath.Vector) float64 {
	d := p.Z - f.height(p.X, p.Y)
	if f.Direction == Above {
		return -d
	}
	return d
}

// Contains reports whether p is within the box and on the solid side of
// the surface.
func (f *Function) Contains(p vecmath.Vector, eps float64) bool {
	box := f.BoundingBox()
	if !box.Contains(p) {
		return false
	}
	return f.signedSide(p) <= eps
}

// Intersect marches along the ray at Step, refining a detected sign
// change with one bisection step, bounded by the box diagonal / step to
// guarantee termination on pathological inputs.
func (f *Function) Intersect(r vecmath.Ray) Hit {
	box := f.BoundingBox()
	tEnter, tExit := box.Intersect(r)
	if tEnter > tExit || tExit < Epsilon {
		return NoHit
	}
	if tEnter < Epsilon {
		tEnter = Epsilon
	}
	step := f.Step
	if step <= 0 {
		step = 0.1
	}
	maxIter := int(box.Diagonal()/step) + 2

	prevT := tEnter
	prevP := r.Position(prevT)
	prevSide := f.signedSide(prevP)

	for i := 0; i < maxIter; i++ {
		t := prevT + step
		if t > tExit {
			t = tExit
		}
		p := r.Position(t)
		if !f.inXY(p.X, p.Y) {
			prevT, prevSide = t, f.signedSide(p)
			if t >= tExit {
				break
			}
			continue
		}
		side := f.signedSide(p)
		if prevSide == 0 {
			return Hit{T: prevT, Shape: f}
		}
		if (prevSide < 0) != (side < 0) {
			// One bisection refinement step.
			mid := (prevT + t) / 2
			midP := r.Position(mid)
			midSide := f.signedSide(midP)
			if (midSide < 0) == (prevSide < 0) {
				return Hit{T: (mid + t) / 2, Shape: f}
			}
			return Hit{T: (prevT + mid) / 2, Shape: f}
		}
		prevT, prevSide = t, side
		if t >= tExit {
			break
		}
	}
	return NoHit
}

func (f *Function) Paths() paths.Paths {
	switch f.Texture {
	case FunctionSpiral:
		return f.spiralPaths(1)
	case FunctionSwirl:
		arms := f.ArmCount
		if arms < 1 {
			arms = 3
		}
		var out paths.Paths
		for a := 0; a < arms; a++ {
			out.Append(f.spiralPaths(2*math.Pi*float64(a)/float64(arms)))
		}
		return out
	default:
		return f.gridPaths()
	}
}

func (f *Function) gridPaths() paths.Paths {
	var out paths.Paths
	n := f.N
	if n < 1 {
		n = 16
	}
	for i := 0; i <= n; i++ {
		x := f.xAt(i)
		var line paths.Path
		for j := 0; j <= n; j++ {
			y := f.yAt(j)
			line = append(line, vecmath.V(x, y, f.height(x, y)))
		}
		out.Add(line)
	}
	for j := 0; j <= n; j++ {
		y := f.yAt(j)
		var line paths.Path
		for i := 0; i <= n; i++ {
			x := f.xAt(i)
			line = append(line, vecmath.V(x, y, f.height(x, y)))
		}
		out.Add(line)
	}
	return out
}

// spiralPaths traces an Archimedean spiral from the domain center to its
// edge, offset by phase radians, height-sampled from the surface.
func (f *Function) spiralPaths(phase float64) paths.Paths {
	cx := (f.MinXY.X + f.MaxXY.X) / 2
	cy := (f.MinXY.Y + f.MaxXY.Y) / 2
	maxR := math.Min(f.MaxXY.X-cx, f.MaxXY.Y-cy)
	turns := f.Turns
	if turns <= 0 {
		turns = 4
	}
	const samples = 400
	var line paths.Path
	for i := 0; i <= samples; i++ {
		t := float64(i) / float64(samples)
		theta := phase + t*turns*2*math.Pi
		radius := t * maxR
		x := cx + radius*math.Cos(theta)
		y := cy + radius*math.Sin(theta)
		if !f.inXY(x, y) {
			continue
		}
		line = append(line, vecmath.V(x, y, f.height(x, y)))
	}
	var out paths.Paths
	out.Add(line)
	return out
}
