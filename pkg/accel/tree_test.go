package accel

import (
	"math"
	"testing"

	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

func mustSphere(t *testing.T, c vecmath.Vector, r float64) shape.Shape {
	t.Helper()
	s, err := shape.NewSphere(c, r)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestEmptyTreeNoHit(t *testing.T) {
	tree := Build(nil)
	r := vecmath.NewRay(vecmath.V(0, 0, -5), vecmath.V(0, 0, 1))
	if tree.Intersect(r).IsHit() {
		t.Fatal("empty tree should never hit")
	}
}

func TestTreeFindsNearestAcrossManyShapes(t *testing.T) {
	var shapes []shape.Shape
	for i := 0; i < 20; i++ {
		shapes = append(shapes, mustSphere(t, vecmath.V(float64(i)*10, 0, 0), 1))
	}
	tree := Build(shapes)
	r := vecmath.NewRay(vecmath.V(-5, 0, 0), vecmath.V(1, 0, 0))
	hit := tree.Intersect(r)
	if !hit.IsHit() {
		t.Fatal("expected a hit")
	}
	if math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("expected the nearest sphere at t=4, got t=%v", hit.T)
	}
}

func TestTreeNeverReturnsFartherHit(t *testing.T) {
	near := mustSphere(t, vecmath.V(5, 0, 0), 1)
	far := mustSphere(t, vecmath.V(20, 0, 0), 1)
	tree := Build([]shape.Shape{far, near})
	r := vecmath.NewRay(vecmath.V(0, 0, 0), vecmath.V(1, 0, 0))
	hit := tree.Intersect(r)
	if !hit.IsHit() || hit.Shape != near {
		t.Fatalf("expected nearest shape returned, got t=%v shape=%v", hit.T, hit.Shape)
	}
}

func TestTreeMissesEverything(t *testing.T) {
	shapes := []shape.Shape{
		mustSphere(t, vecmath.V(0, 0, 0), 1),
		mustSphere(t, vecmath.V(10, 0, 0), 1),
	}
	tree := Build(shapes)
	r := vecmath.NewRay(vecmath.V(0, 100, 0), vecmath.V(0, 1, 0))
	if tree.Intersect(r).IsHit() {
		t.Fatal("expected a miss")
	}
}
