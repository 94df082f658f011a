package solidify

import (
	"testing"

	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestToTriangleMeshSphereProducesTriangles(t *testing.T) {
	sph, err := shape.NewSphere(vecmath.V(0, 0, 0), 10)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	sph.Compile()

	verts := ToTriangleMesh(sph, 16)
	if len(verts) == 0 {
		t.Fatal("expected non-zero output")
	}
	if len(verts)%3 != 0 {
		t.Fatalf("expected a multiple of 3 vertices (one triple per triangle), got %d", len(verts))
	}
}

func TestShapeSDF3SignMatchesContains(t *testing.T) {
	sph, err := shape.NewSphere(vecmath.V(0, 0, 0), 10)
	if err != nil {
		t.Fatalf("NewSphere: %v", err)
	}
	sph.Compile()

	solid := ToSDF3(sph)
	inside := solid.Evaluate(v3.Vec{X: 0, Y: 0, Z: 0})
	outside := solid.Evaluate(v3.Vec{X: 100, Y: 0, Z: 0})
	if inside >= 0 {
		t.Fatalf("expected a negative distance well inside the sphere, got %v", inside)
	}
	if outside <= 0 {
		t.Fatalf("expected a positive distance well outside the sphere, got %v", outside)
	}
}

func TestToTriangleMeshCubeStaysWithinSourceBounds(t *testing.T) {
	cube, err := shape.NewCube(vecmath.V(-5, -5, -5), vecmath.V(5, 5, 5))
	if err != nil {
		t.Fatalf("NewCube: %v", err)
	}
	cube.Compile()

	verts := ToTriangleMesh(cube, 24)
	if len(verts) == 0 {
		t.Fatal("expected non-zero output")
	}
	for _, v := range verts {
		if v.X < -5.5 || v.X > 5.5 || v.Y < -5.5 || v.Y > 5.5 || v.Z < -5.5 || v.Z > 5.5 {
			t.Fatalf("vertex %v falls well outside the source cube's bounds", v)
		}
	}
}
