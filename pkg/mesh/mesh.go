// Package mesh implements the triangle-collection shape: a shared AABB
// tree for ray intersection and coplanar-adjacent edge suppression for
// silhouette-quality paths.
package mesh

import (
	"fmt"
	"math"

	"github.com/chazu/larnt/pkg/accel"
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
	"github.com/samber/lo"
)

// CoplanarCosine is the face-normal-parallel threshold (~1 degree) below
// which a shared edge between two triangles is suppressed from paths.
const CoplanarCosine = 0.9999

// Mesh is an immutable-after-compile collection of triangles sharing one
// AABB tree.
type Mesh struct {
	Triangles []*shape.Triangle

	tree        *accel.Tree
	shapes      []shape.Shape
	suppressed  map[edgeKey]bool
	vertexIndex map[string]int
	compiled    bool
}

type edgeKey [2]int

// New constructs a mesh from an explicit triangle list. Contains is
// always false for meshes; they never participate in CSG
// containment.
func New(triangles []*shape.Triangle) *Mesh {
	return &Mesh{Triangles: triangles}
}

// Compile builds the internal AABB tree and computes edge suppression by
// hashing edges on ordered vertex-index pairs. Idempotent.
func (m *Mesh) Compile() {
	if m.compiled {
		return
	}
	m.shapes = make([]shape.Shape, len(m.Triangles))
	for i, tr := range m.Triangles {
		tr.Compile()
		m.shapes[i] = tr
	}
	m.tree = accel.Build(m.shapes)
	m.vertexIndex = make(map[string]int)
	m.suppressed = computeSuppressedEdges(m.Triangles, m.indexOf)
	m.compiled = true
}

// indexOf assigns a stable integer index to a vertex, deduplicating by
// rounding to a fine grid so that floating-point-identical mesh vertices
// hash to the same index across triangles.
func (m *Mesh) indexOf(v vecmath.Vector) int {
	key := quantize(v)
	if idx, ok := m.vertexIndex[key]; ok {
		return idx
	}
	idx := len(m.vertexIndex)
	m.vertexIndex[key] = idx
	return idx
}

func (m *Mesh) BoundingBox() vecmath.Box {
	box := vecmath.EmptyBox()
	for _, tr := range m.Triangles {
		box = box.Union(tr.BoundingBox())
	}
	return box
}

// Contains is always false: meshes do not participate in CSG containment.
func (m *Mesh) Contains(p vecmath.Vector, eps float64) bool {
	return false
}

// Intersect delegates to the tree-accelerated minimum over triangles,
// reporting the mesh itself (not the individual triangle) as the hit
// shape reference.
func (m *Mesh) Intersect(r vecmath.Ray) shape.Hit {
	hit := m.tree.Intersect(r)
	if !hit.IsHit() {
		return shape.NoHit
	}
	return shape.Hit{T: hit.T, Shape: m}
}

// Paths emits every triangle edge, suppressing an edge between two
// triangles that share exactly that edge with parallel face normals.
func (m *Mesh) Paths() paths.Paths {
	var out paths.Paths
	for _, tr := range m.Triangles {
		ia, ib, ic := m.indexOf(tr.V1), m.indexOf(tr.V2), m.indexOf(tr.V3)
		emit := func(key edgeKey, a, b vecmath.Vector) {
			if m.suppressed[key] {
				return
			}
			out.Add(paths.Path{a, b})
		}
		emit(canonicalEdge(ia, ib), tr.V1, tr.V2)
		emit(canonicalEdge(ib, ic), tr.V2, tr.V3)
		emit(canonicalEdge(ic, ia), tr.V3, tr.V1)
	}
	return out
}

type triNormal struct {
	tri    int
	normal vecmath.Vector
}

// computeSuppressedEdges hashes every triangle edge on its canonical
// (ordered by index) vertex-index pair and marks a shared edge suppressed
// when exactly two triangles share it and their normals are parallel to
// within CoplanarCosine.
func computeSuppressedEdges(triangles []*shape.Triangle, indexOf func(vecmath.Vector) int) map[edgeKey]bool {
	edgeTris := make(map[edgeKey][]triNormal)
	for i, tr := range triangles {
		ia := indexOf(tr.V1)
		ib := indexOf(tr.V2)
		ic := indexOf(tr.V3)
		n := tr.Normal().Normalize()
		add := func(a, b int) {
			key := canonicalEdge(a, b)
			edgeTris[key] = append(edgeTris[key], triNormal{tri: i, normal: n})
		}
		add(ia, ib)
		add(ib, ic)
		add(ic, ia)
	}
	suppressed := make(map[edgeKey]bool)
	for key, tris := range edgeTris {
		unique := lo.UniqBy(tris, func(tn triNormal) int { return tn.tri })
		if len(unique) != 2 {
			continue
		}
		cos := unique[0].normal.Dot(unique[1].normal)
		if math.Abs(cos) >= CoplanarCosine {
			suppressed[key] = true
		}
	}
	return suppressed
}

func canonicalEdge(a, b int) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

func quantize(v vecmath.Vector) string {
	const scale = 1e6
	return fmt.Sprintf("%d,%d,%d",
		int64(math.Round(v.X*scale)),
		int64(math.Round(v.Y*scale)),
		int64(math.Round(v.Z*scale)))
}
