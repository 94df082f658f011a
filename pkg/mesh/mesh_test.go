package mesh

import (
	"testing"

	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

func V(x, y, z float64) vecmath.Vector { return vecmath.V(x, y, z) }

func TestMeshIntersectNearestTriangle(t *testing.T) {
	tris := []*shape.Triangle{
		shape.NewTriangle(V(-1, -1, 0), V(1, -1, 0), V(0, 1, 0)),
		shape.NewTriangle(V(-1, -1, 5), V(1, -1, 5), V(0, 1, 5)),
	}
	m := New(tris)
	m.Compile()
	r := vecmath.NewRay(V(0, 0, -10), V(0, 0, 1))
	hit := m.Intersect(r)
	if !hit.IsHit() {
		t.Fatal("expected a hit")
	}
	if hit.T > 10.1 || hit.T < 9.9 {
		t.Fatalf("expected nearest triangle at t~10, got %v", hit.T)
	}
	if hit.Shape != m {
		t.Fatal("hit shape reference should be the mesh, not the triangle")
	}
}

func TestMeshContainsAlwaysFalse(t *testing.T) {
	m := New([]*shape.Triangle{shape.NewTriangle(V(0, 0, 0), V(1, 0, 0), V(0, 1, 0))})
	m.Compile()
	if m.Contains(V(0.1, 0.1, 0), 1e-6) {
		t.Fatal("mesh Contains must always be false")
	}
}

// Two coplanar triangles sharing an edge, forming a unit square in the
// z=0 plane, should suppress the shared diagonal.
func TestMeshSuppressesCoplanarSharedEdge(t *testing.T) {
	a := shape.NewTriangle(V(0, 0, 0), V(1, 0, 0), V(1, 1, 0))
	b := shape.NewTriangle(V(0, 0, 0), V(1, 1, 0), V(0, 1, 0))
	m := New([]*shape.Triangle{a, b})
	m.Compile()
	ps := m.Paths()
	for _, p := range ps.P {
		isShared := (p[0] == V(0, 0, 0) && p[1] == V(1, 1, 0)) || (p[0] == V(1, 1, 0) && p[1] == V(0, 0, 0))
		if isShared {
			t.Fatalf("shared coplanar edge should be suppressed, found %v", p)
		}
	}
	// 6 candidate edges; the shared edge is emitted by both triangles and
	// suppressed both times, leaving 4.
	if got := ps.Len(); got != 4 {
		t.Fatalf("want 4 edges after suppression, got %d: %v", got, ps.P)
	}
}

func TestMeshKeepsNonCoplanarSharedEdge(t *testing.T) {
	// A folded pair of triangles sharing an edge but at an angle: the
	// shared edge (a crease) must survive.
	a := shape.NewTriangle(V(0, 0, 0), V(1, 0, 0), V(0, 1, 0))
	b := shape.NewTriangle(V(0, 0, 0), V(1, 0, 0), V(0, 0, 1))
	m := New([]*shape.Triangle{a, b})
	m.Compile()
	ps := m.Paths()
	found := false
	for _, p := range ps.P {
		if (p[0] == V(0, 0, 0) && p[1] == V(1, 0, 0)) || (p[0] == V(1, 0, 0) && p[1] == V(0, 0, 0)) {
			found = true
		}
	}
	if !found {
		t.Fatal("creased shared edge should not be suppressed")
	}
}

func TestMeshBoundingBoxUnion(t *testing.T) {
	tris := []*shape.Triangle{
		shape.NewTriangle(V(-1, -1, -1), V(1, -1, -1), V(0, 1, -1)),
		shape.NewTriangle(V(-2, -2, 2), V(2, -2, 2), V(0, 2, 2)),
	}
	m := New(tris)
	m.Compile()
	b := m.BoundingBox()
	if b.Min != V(-2, -2, -1) || b.Max != V(2, 2, 2) {
		t.Fatalf("BoundingBox = %v", b)
	}
}
