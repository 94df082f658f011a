package scenelang

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/chazu/larnt/pkg/mesh"
	"github.com/chazu/larnt/pkg/meshio"
	"github.com/chazu/larnt/pkg/scenegraph"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
	zygo "github.com/glycerine/zygomys/zygo"
)

func loadMeshFile(path string) (*mesh.Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	return meshio.Load(f, info.Size())
}

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// preprocessSource transforms scene script source before passing it to
// zygomys: :keyword tokens become string literals ("__kw_keyword", with
// any hyphen in the keyword name turned into an underscore),
// kebab-case identifiers become underscore identifiers (zygomys reads a
// bare hyphen as subtraction), and ; line comments become // comments.
// Both transformations respect string literal boundaries.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		if b[i] == '"' {
			result = append(result, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					result = append(result, b[i], b[i+1])
					i += 2
					continue
				}
				result = append(result, b[i])
				i++
			}
			if i < len(b) {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ';' {
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
			continue
		}
		if b[i] == ':' && i+1 < len(b) {
			if b[i+1] == '=' {
				result = append(result, b[i], b[i+1])
				i += 2
				continue
			}
			if isLetter(b[i+1]) {
				j := i + 1
				for j < len(b) && isKWChar(b[j]) {
					j++
				}
				kwName := strings.ReplaceAll(string(b[i+1:j]), "-", "_")
				result = append(result, '"')
				result = append(result, []byte(kwPrefix)...)
				result = append(result, []byte(kwName)...)
				result = append(result, '"')
				i = j
				continue
			}
		}
		if b[i] == '-' && i > 0 && i+1 < len(b) &&
			isIdentChar(b[i-1]) && isIdentStartChar(b[i+1]) {
			result = append(result, '_')
			i++
			continue
		}
		result = append(result, b[i])
		i++
	}
	return string(result)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}
func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
func isIdentStartChar(c byte) bool {
	return isLetter(c)
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpNodeRef struct {
	id   scenegraph.NodeID
	name string
}

func (n *sexpNodeRef) SexpString(ps *zygo.PrintState) string {
	if n.name != "" {
		return fmt.Sprintf("(noderef %q)", n.name)
	}
	return fmt.Sprintf("(noderef %s)", n.id)
}
func (n *sexpNodeRef) Type() *zygo.RegisteredType { return nil }

type sexpVec3 struct {
	vec vecmath.Vector
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %.3f %.3f %.3f)", v.vec.X, v.vec.Y, v.vec.Z)
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpMatrix struct {
	m vecmath.Matrix
}

func (m *sexpMatrix) SexpString(ps *zygo.PrintState) string { return "(matrix)" }
func (m *sexpMatrix) Type() *zygo.RegisteredType            { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	i := 0
	for i < len(args) {
		name, ok := isKW(args[i])
		if ok {
			if i+1 < len(args) {
				result.kw[name] = args[i+1]
				i += 2
			} else {
				result.kw[name] = zygo.SexpNull
				i++
			}
		} else {
			result.positional = append(result.positional, args[i])
			i++
		}
	}
	return result
}

func toFloat64(s zygo.Sexp) (float64, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float64(v.Val), nil
	case *zygo.SexpFloat:
		return v.Val, nil
	}
	return 0, fmt.Errorf("expected number, got %T", s)
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T", s)
}

func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T", s)
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

func toVec3(s zygo.Sexp) (vecmath.Vector, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return vecmath.Vector{}, fmt.Errorf("expected vec3, got %T", s)
}

func toNodeRef(s zygo.Sexp) (scenegraph.NodeID, error) {
	if ref, ok := s.(*sexpNodeRef); ok {
		return ref.id, nil
	}
	return "", fmt.Errorf("expected a shape reference, got %T", s)
}

func toMatrix(s zygo.Sexp) (vecmath.Matrix, error) {
	if m, ok := s.(*sexpMatrix); ok {
		return m.m, nil
	}
	return vecmath.Matrix{}, fmt.Errorf("expected a transform, got %T", s)
}

func floatKW(pa kwArgs, name string, def float64) (float64, error) {
	v, ok := pa.kw[name]
	if !ok {
		return def, nil
	}
	return toFloat64(v)
}

// ---------------------------------------------------------------------------
// Named height-field functions available to (function ...)
// ---------------------------------------------------------------------------

var namedHeightFuncs = map[string]func(x, y float64) float64{
	"sine": func(x, y float64) float64 {
		return math.Sin(x) * math.Cos(y)
	},
	"ripple": func(x, y float64) float64 {
		r := math.Hypot(x, y)
		return math.Sin(r*2) / (1 + r)
	},
	"plane": func(x, y float64) float64 {
		return 0
	},
	"saddle": func(x, y float64) float64 {
		return x*x - y*y
	},
}

// registerBuiltins installs every scene-description builtin into env,
// populating g as user code is evaluated.
func registerBuiltins(env *zygo.Zlisp, g *scenegraph.Graph) {

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires exactly 3 arguments, got %d", len(args))
		}
		x, err := toFloat64(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: x: %w", err)
		}
		y, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: y: %w", err)
		}
		z, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("vec3: z: %w", err)
		}
		return &sexpVec3{vec: vecmath.V(x, y, z)}, nil
	})

	// (sphere :center (vec3 0 0 0) :radius 5)
	env.AddFunction("sphere", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		center := vecmath.V(0, 0, 0)
		if v, ok := pa.kw["center"]; ok {
			c, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("sphere: center: %w", err)
			}
			center = c
		}
		radius, err := floatKW(pa, "radius", 1)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("sphere: radius: %w", err)
		}
		id := g.Add(&scenegraph.Node{Kind: scenegraph.KindSphere, Data: scenegraph.SphereData{Center: center, Radius: radius}})
		return &sexpNodeRef{id: id}, nil
	})

	// (cube :min (vec3 0 0 0) :max (vec3 1 1 1))
	env.AddFunction("cube", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		minV, ok := pa.kw["min"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cube requires :min")
		}
		maxV, ok := pa.kw["max"]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("cube requires :max")
		}
		lo, err := toVec3(minV)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: min: %w", err)
		}
		hi, err := toVec3(maxV)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cube: max: %w", err)
		}
		id := g.Add(&scenegraph.Node{Kind: scenegraph.KindCube, Data: scenegraph.CubeData{Min: lo, Max: hi}})
		return &sexpNodeRef{id: id}, nil
	})

	// (cylinder :radius 2 :v0 (vec3 ...) :v1 (vec3 ...))
	env.AddFunction("cylinder", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := registerAxisShape(g, scenegraph.KindCylinder, args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cylinder: %w", err)
		}
		return &sexpNodeRef{id: id}, nil
	})

	// (cone :radius 2 :v0 (vec3 ...) :v1 (vec3 ...))
	env.AddFunction("cone", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := registerAxisShape(g, scenegraph.KindCone, args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("cone: %w", err)
		}
		return &sexpNodeRef{id: id}, nil
	})

	// (triangle (vec3 ...) (vec3 ...) (vec3 ...))
	env.AddFunction("triangle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("triangle requires exactly 3 vertices, got %d", len(args))
		}
		verts := make([]vecmath.Vector, 3)
		for i, a := range args {
			v, err := toVec3(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("triangle: vertex %d: %w", i, err)
			}
			verts[i] = v
		}
		id := g.Add(&scenegraph.Node{Kind: scenegraph.KindTriangle, Data: scenegraph.TriangleData{V1: verts[0], V2: verts[1], V3: verts[2]}})
		return &sexpNodeRef{id: id}, nil
	})

	// (function :shape :sine :n 40 :min (vec3 -5 -5 0) :max (vec3 5 5 0) :z-min -2 :z-max 2)
	env.AddFunction("function", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		shapeName := "plane"
		if v, ok := pa.kw["shape"]; ok {
			s, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("function: shape: %w", err)
			}
			shapeName = s
		}
		f, ok := namedHeightFuncs[shapeName]
		if !ok {
			return zygo.SexpNull, fmt.Errorf("function: unknown named function %q", shapeName)
		}
		n := 20
		if v, ok := pa.kw["n"]; ok {
			nf, err := toFloat64(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("function: n: %w", err)
			}
			n = int(nf)
		}
		minXY := vecmath.V(-5, -5, 0)
		if v, ok := pa.kw["min"]; ok {
			m, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("function: min: %w", err)
			}
			minXY = m
		}
		maxXY := vecmath.V(5, 5, 0)
		if v, ok := pa.kw["max"]; ok {
			m, err := toVec3(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("function: max: %w", err)
			}
			maxXY = m
		}
		zMin, err := floatKW(pa, "z_min", -5)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("function: z-min: %w", err)
		}
		zMax, err := floatKW(pa, "z_max", 5)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("function: z-max: %w", err)
		}
		direction := shape.Below
		if v, ok := pa.kw["direction"]; ok {
			d, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("function: direction: %w", err)
			}
			if d == "above" {
				direction = shape.Above
			}
		}
		id := g.Add(&scenegraph.Node{Kind: scenegraph.KindFunction, Data: scenegraph.FunctionData{
			F: f, N: n, MinXY: minXY, MaxXY: maxXY, ZMin: zMin, ZMax: zMax, Direction: direction,
		}})
		return &sexpNodeRef{id: id}, nil
	})

	// (translate shape (vec3 dx dy dz))
	env.AddFunction("translate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("translate requires a shape and an offset vec3")
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: %w", err)
		}
		offset, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate: offset: %w", err)
		}
		id := g.Add(&scenegraph.Node{
			Kind:     scenegraph.KindTransformation,
			Children: []scenegraph.NodeID{child},
			Data:     scenegraph.TransformationData{Matrix: vecmath.Translate(offset)},
		})
		return &sexpNodeRef{id: id}, nil
	})

	// (scale shape (vec3 sx sy sz))
	env.AddFunction("scale", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("scale requires a shape and a factors vec3")
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: %w", err)
		}
		factors, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale: factors: %w", err)
		}
		id := g.Add(&scenegraph.Node{
			Kind:     scenegraph.KindTransformation,
			Children: []scenegraph.NodeID{child},
			Data:     scenegraph.TransformationData{Matrix: vecmath.Scale(factors)},
		})
		return &sexpNodeRef{id: id}, nil
	})

	// (rotate shape (vec3 axis) degrees)
	env.AddFunction("rotate", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("rotate requires a shape, an axis vec3, and a degree angle")
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: %w", err)
		}
		axis, err := toVec3(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: axis: %w", err)
		}
		degrees, err := toFloat64(args[2])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate: angle: %w", err)
		}
		id := g.Add(&scenegraph.Node{
			Kind:     scenegraph.KindTransformation,
			Children: []scenegraph.NodeID{child},
			Data:     scenegraph.TransformationData{Matrix: vecmath.Rotate(axis, degrees*math.Pi/180)},
		})
		return &sexpNodeRef{id: id}, nil
	})

	// (translate-matrix (vec3 dx dy dz)), (scale-matrix (vec3 sx sy sz)),
	// and (rotate-matrix (vec3 axis) degrees) build a standalone matrix
	// value for use with (transform shape matrix).
	env.AddFunction("translate_matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("translate-matrix requires an offset vec3")
		}
		offset, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("translate-matrix: %w", err)
		}
		return &sexpMatrix{m: vecmath.Translate(offset)}, nil
	})
	env.AddFunction("scale_matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("scale-matrix requires a factors vec3")
		}
		factors, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("scale-matrix: %w", err)
		}
		return &sexpMatrix{m: vecmath.Scale(factors)}, nil
	})
	env.AddFunction("rotate_matrix", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("rotate-matrix requires an axis vec3 and a degree angle")
		}
		axis, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-matrix: axis: %w", err)
		}
		degrees, err := toFloat64(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("rotate-matrix: angle: %w", err)
		}
		return &sexpMatrix{m: vecmath.Rotate(axis, degrees*math.Pi/180)}, nil
	})

	// (transform shape matrix) — the general form behind translate/scale/rotate.
	env.AddFunction("transform", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("transform requires a shape and a matrix")
		}
		child, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		m, err := toMatrix(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("transform: %w", err)
		}
		id := g.Add(&scenegraph.Node{
			Kind:     scenegraph.KindTransformation,
			Children: []scenegraph.NodeID{child},
			Data:     scenegraph.TransformationData{Matrix: m},
		})
		return &sexpNodeRef{id: id}, nil
	})

	// (mesh "path/to/model.3mf") — loads a triangle mesh from a 3MF file
	// and registers it as a KindMesh node.
	env.AddFunction("mesh", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("mesh requires a file path argument")
		}
		path, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		m, err := loadMeshFile(path)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("mesh: %w", err)
		}
		verts := make([]vecmath.Vector, 0, len(m.Triangles)*3)
		for _, tr := range m.Triangles {
			verts = append(verts, tr.V1, tr.V2, tr.V3)
		}
		id := g.Add(&scenegraph.Node{Kind: scenegraph.KindMesh, Data: scenegraph.MeshData{Vertices: verts}})
		return &sexpNodeRef{id: id}, nil
	})

	// (render :eye (vec3 ...) :center (vec3 ...) :up (vec3 ...)
	//         :width 800 :height 600 :fovy 50 :znear 0.1 :zfar 1000 :step 0.5)
	// records camera and sampling defaults on the graph for cmd/larnt to
	// apply; it does not itself produce paths, since scene script
	// evaluation only builds the scenegraph.Graph.
	env.AddFunction("render", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		p := scenegraph.RenderParams{
			Eye: vecmath.V(0, 0, 10), Center: vecmath.V(0, 0, 0), Up: vecmath.V(0, 1, 0),
			Width: 800, Height: 600, FovyDeg: 50, ZNear: 0.1, ZFar: 1000, Step: 0.5,
		}
		if v, ok := pa.kw["eye"]; ok {
			p.Eye, _ = toVec3(v)
		}
		if v, ok := pa.kw["center"]; ok {
			p.Center, _ = toVec3(v)
		}
		if v, ok := pa.kw["up"]; ok {
			p.Up, _ = toVec3(v)
		}
		var err error
		if p.Width, err = floatKW(pa, "width", p.Width); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: width: %w", err)
		}
		if p.Height, err = floatKW(pa, "height", p.Height); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: height: %w", err)
		}
		if p.FovyDeg, err = floatKW(pa, "fovy", p.FovyDeg); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: fovy: %w", err)
		}
		if p.ZNear, err = floatKW(pa, "znear", p.ZNear); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: znear: %w", err)
		}
		if p.ZFar, err = floatKW(pa, "zfar", p.ZFar); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: zfar: %w", err)
		}
		if p.Step, err = floatKW(pa, "step", p.Step); err != nil {
			return zygo.SexpNull, fmt.Errorf("render: step: %w", err)
		}
		p.Set = true
		g.Render = p
		return zygo.SexpNull, nil
	})

	// (difference base sub1 sub2 ...)
	env.AddFunction("difference", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := registerOperandNode(g, scenegraph.KindDifference, args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("difference: %w", err)
		}
		return &sexpNodeRef{id: id}, nil
	})

	// (intersection a b ...)
	env.AddFunction("intersection", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		id, err := registerOperandNode(g, scenegraph.KindIntersection, args)
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("intersection: %w", err)
		}
		return &sexpNodeRef{id: id}, nil
	})

	// (def "name" shape) — binds shape under a lookup name and returns it.
	env.AddFunction("def", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("def requires a name and a shape expression")
		}
		nodeName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("def: name: %w", err)
		}
		id, err := toNodeRef(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("def: %w", err)
		}
		n := g.Nodes[id]
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("def: unknown node")
		}
		n.Name = nodeName
		g.NameIndex[nodeName] = id
		return &sexpNodeRef{id: id, name: nodeName}, nil
	})

	// (ref "name") — looks up a previously def'd shape.
	env.AddFunction("ref", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("ref requires a name argument")
		}
		refName, err := toString(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("ref: %w", err)
		}
		n := g.Lookup(refName)
		if n == nil {
			return zygo.SexpNull, fmt.Errorf("ref: no shape named %q", refName)
		}
		return &sexpNodeRef{id: n.ID, name: refName}, nil
	})

	// (add shape) — registers shape as a top-level render root.
	env.AddFunction("add", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 1 {
			return zygo.SexpNull, fmt.Errorf("add requires exactly one shape argument")
		}
		id, err := toNodeRef(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("add: %w", err)
		}
		g.AddRoot(id)
		return &sexpNodeRef{id: id}, nil
	})
}

func registerAxisShape(g *scenegraph.Graph, kind scenegraph.Kind, args []zygo.Sexp) (scenegraph.NodeID, error) {
	pa := parseArgs(args)
	radius, err := floatKW(pa, "radius", 1)
	if err != nil {
		return "", fmt.Errorf("radius: %w", err)
	}
	v0V, ok := pa.kw["v0"]
	if !ok {
		return "", fmt.Errorf("requires :v0")
	}
	v1V, ok := pa.kw["v1"]
	if !ok {
		return "", fmt.Errorf("requires :v1")
	}
	v0, err := toVec3(v0V)
	if err != nil {
		return "", fmt.Errorf("v0: %w", err)
	}
	v1, err := toVec3(v1V)
	if err != nil {
		return "", fmt.Errorf("v1: %w", err)
	}
	var data any
	switch kind {
	case scenegraph.KindCylinder:
		data = scenegraph.CylinderData{Radius: radius, V0: v0, V1: v1}
	case scenegraph.KindCone:
		data = scenegraph.ConeData{Radius: radius, V0: v0, V1: v1}
	}
	return g.Add(&scenegraph.Node{Kind: kind, Data: data}), nil
}

func registerOperandNode(g *scenegraph.Graph, kind scenegraph.Kind, args []zygo.Sexp) (scenegraph.NodeID, error) {
	if len(args) < 2 {
		return "", fmt.Errorf("requires at least two operands")
	}
	children := make([]scenegraph.NodeID, len(args))
	for i, a := range args {
		id, err := toNodeRef(a)
		if err != nil {
			return "", fmt.Errorf("operand %d: %w", i, err)
		}
		children[i] = id
	}
	return g.Add(&scenegraph.Node{Kind: kind, Children: children}), nil
}
