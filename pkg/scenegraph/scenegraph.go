// Package scenegraph is the UUID-keyed scene description used
// by binding layers: a tagged tree of {Sphere, Cube, Cylinder, Cone,
// Triangle, Mesh, Function, Transformation, Difference, Intersection}
// nodes that Materialize turns into a live shape.Shape tree.
package scenegraph

import (
	"github.com/chazu/larnt/pkg/csg"
	"github.com/chazu/larnt/pkg/mesh"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
	"github.com/google/uuid"
)

// NodeID is a UUID-based identifier for a scene graph node.
type NodeID string

// NewNodeID mints a fresh random node identifier.
func NewNodeID() NodeID {
	return NodeID(uuid.New().String())
}

// Kind enumerates the wire-format node tags.
type Kind int

const (
	KindSphere Kind = iota
	KindCube
	KindCylinder
	KindCone
	KindTriangle
	KindMesh
	KindFunction
	KindTransformation
	KindDifference
	KindIntersection
)

// Node is one entry in the scene graph: a kind tag, kind-specific data,
// and (for compound nodes) child references. Name is an optional
// user-assigned label a binding layer can use to refer back to a node
// (e.g. a scenelang `def` binding).
type Node struct {
	ID       NodeID
	Kind     Kind
	Name     string
	Children []NodeID
	Data     any
}

// RenderParams is the camera and sampling configuration a scene script
// may set with a (render ...) call. A cmd/larnt binary applies these as
// defaults, letting a script carry its own preferred camera while command
// line flags still override any field explicitly passed on the CLI.
type RenderParams struct {
	Set             bool
	Eye, Center, Up vecmath.Vector
	Width, Height   float64
	FovyDeg         float64
	ZNear, ZFar     float64
	Step            float64
}

// Graph is a DAG of nodes keyed by NodeID; the same child NodeID may be
// referenced by more than one parent, sharing that sub-tree. It is
// produced once per scene evaluation and never mutated after Materialize
// has been called on any of its nodes.
type Graph struct {
	Nodes     map[NodeID]*Node
	Roots     []NodeID
	NameIndex map[string]NodeID
	Render    RenderParams
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes:     make(map[NodeID]*Node),
		NameIndex: make(map[string]NodeID),
	}
}

// Add inserts a node, minting an ID if node.ID is empty, indexes it by
// Name if one was given, and returns the assigned ID.
func (g *Graph) Add(n *Node) NodeID {
	if n.ID == "" {
		n.ID = NewNodeID()
	}
	g.Nodes[n.ID] = n
	if n.Name != "" {
		g.NameIndex[n.Name] = n.ID
	}
	return n.ID
}

// AddRoot registers id as a top-level, independently renderable node.
func (g *Graph) AddRoot(id NodeID) {
	g.Roots = append(g.Roots, id)
}

// Lookup returns the node registered under name, or nil.
func (g *Graph) Lookup(name string) *Node {
	id, ok := g.NameIndex[name]
	if !ok {
		return nil
	}
	return g.Nodes[id]
}

// Children returns the child nodes of n present in the graph, skipping
// any dangling references.
func (g *Graph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// MaterializeRoots builds every root node's shape.Shape tree, sharing a
// single materialization cache so sub-trees referenced by more than one
// root are built once.
func (g *Graph) MaterializeRoots() ([]shape.Shape, error) {
	cache := make(map[NodeID]shape.Shape)
	out := make([]shape.Shape, 0, len(g.Roots))
	for _, id := range g.Roots {
		s, err := g.materialize(id, cache)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// SphereData is the KindSphere payload.
type SphereData struct {
	Center  vecmath.Vector
	Radius  float64
	Texture shape.SphereTexture
	Seed    int64
}

// CubeData is the KindCube payload.
type CubeData struct {
	Min, Max vecmath.Vector
	Texture  shape.CubeTexture
}

// CylinderData is the KindCylinder payload.
type CylinderData struct {
	Radius float64
	V0, V1 vecmath.Vector
}

// ConeData is the KindCone payload.
type ConeData struct {
	Radius float64
	V0, V1 vecmath.Vector
}

// TriangleData is the KindTriangle payload.
type TriangleData struct {
	V1, V2, V3 vecmath.Vector
}

// MeshData is the KindMesh payload: a flat triangle-vertex list, three
// vectors per triangle.
type MeshData struct {
	Vertices []vecmath.Vector
}

// FunctionData is the KindFunction payload.
type FunctionData struct {
	F         func(x, y float64) float64
	N         int
	MinXY     vecmath.Vector
	MaxXY     vecmath.Vector
	ZMin      float64
	ZMax      float64
	Direction shape.FunctionDirection
}

// TransformationData is the KindTransformation payload; Children[0] is
// the transformed child.
type TransformationData struct {
	Matrix vecmath.Matrix
}

// Materialize walks the graph from root and builds a live shape.Shape
// tree. Nodes referenced by more than one parent are built once and
// the resulting shape.Shape is shared across every parent.
func (g *Graph) Materialize(root NodeID) (shape.Shape, error) {
	cache := make(map[NodeID]shape.Shape)
	return g.materialize(root, cache)
}

func (g *Graph) materialize(id NodeID, cache map[NodeID]shape.Shape) (shape.Shape, error) {
	if s, ok := cache[id]; ok {
		return s, nil
	}
	n, ok := g.Nodes[id]
	if !ok {
		return nil, &shapeGraphError{id: id}
	}

	var built shape.Shape
	var err error
	switch n.Kind {
	case KindSphere:
		d := n.Data.(SphereData)
		var s *shape.Sphere
		s, err = shape.NewSphere(d.Center, d.Radius)
		if err == nil {
			s.Texture = d.Texture
			s.Seed = d.Seed
			built = s
		}
	case KindCube:
		d := n.Data.(CubeData)
		var c *shape.Cube
		c, err = shape.NewCube(d.Min, d.Max)
		if err == nil {
			c.Texture = d.Texture
			built = c
		}
	case KindCylinder:
		d := n.Data.(CylinderData)
		built, err = shape.NewCylinder(d.Radius, d.V0, d.V1)
	case KindCone:
		d := n.Data.(ConeData)
		built, err = shape.NewCone(d.Radius, d.V0, d.V1)
	case KindTriangle:
		d := n.Data.(TriangleData)
		built = shape.NewTriangle(d.V1, d.V2, d.V3)
	case KindMesh:
		d := n.Data.(MeshData)
		tris := make([]*shape.Triangle, 0, len(d.Vertices)/3)
		for i := 0; i+2 < len(d.Vertices); i += 3 {
			tris = append(tris, shape.NewTriangle(d.Vertices[i], d.Vertices[i+1], d.Vertices[i+2]))
		}
		built = mesh.New(tris)
	case KindFunction:
		d := n.Data.(FunctionData)
		var f *shape.Function
		f, err = shape.NewFunction(d.F, d.N, d.MinXY, d.MaxXY, d.ZMin, d.ZMax)
		if err == nil {
			f.Direction = d.Direction
			built = f
		}
	case KindTransformation:
		d := n.Data.(TransformationData)
		if len(n.Children) != 1 {
			return nil, &shapeGraphError{id: id, reason: "transformation node requires exactly one child"}
		}
		var child shape.Shape
		child, err = g.materialize(n.Children[0], cache)
		if err != nil {
			return nil, err
		}
		built, err = shape.NewTransformed(child, d.Matrix)
	case KindDifference:
		built, err = g.materializeOperands(n, cache, csgDifference)
	case KindIntersection:
		built, err = g.materializeOperands(n, cache, csgIntersection)
	default:
		return nil, &shapeGraphError{id: id, reason: "unknown node kind"}
	}
	if err != nil {
		return nil, err
	}
	built.Compile()
	cache[id] = built
	return built, nil
}

type csgKind int

const (
	csgDifference csgKind = iota
	csgIntersection
)

func (g *Graph) materializeOperands(n *Node, cache map[NodeID]shape.Shape, kind csgKind) (shape.Shape, error) {
	operands := make([]shape.Shape, 0, len(n.Children))
	for _, childID := range n.Children {
		child, err := g.materialize(childID, cache)
		if err != nil {
			return nil, err
		}
		operands = append(operands, child)
	}
	if kind == csgDifference {
		return csg.NewDifference(operands...)
	}
	return csg.NewIntersection(operands...)
}

type shapeGraphError struct {
	id     NodeID
	reason string
}

func (e *shapeGraphError) Error() string {
	if e.reason != "" {
		return "scenegraph: node " + string(e.id) + ": " + e.reason
	}
	return "scenegraph: unknown node " + string(e.id)
}
