package shape

import (
	"math"
	"testing"

	"github.com/chazu/larnt/pkg/vecmath"
)

func V(x, y, z float64) vecmath.Vector { return vecmath.V(x, y, z) }

// checkHitContained verifies that a reported hit point satisfies the
// shape's own Contains within 1e-6.
func checkHitContained(t *testing.T, s Shape, r vecmath.Ray) {
	t.Helper()
	hit := s.Intersect(r)
	if !hit.IsHit() {
		return
	}
	p := r.Position(hit.T)
	if !s.Contains(p, 1e-6) {
		t.Fatalf("hit point %v at t=%v not contained by shape", p, hit.T)
	}
}

func TestSphereIntersectAndContains(t *testing.T) {
	s, err := NewSphere(V(0, 0, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	r := vecmath.NewRay(V(0, 0, -5), V(0, 0, 1))
	checkHitContained(t, s, r)
	hit := s.Intersect(r)
	if !hit.IsHit() || math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("expected t=4, got %v", hit.T)
	}
}

func TestSphereRejectsNonPositiveRadius(t *testing.T) {
	if _, err := NewSphere(V(0, 0, 0), 0); err == nil {
		t.Fatal("expected ConstructionError for zero radius")
	}
}

func TestSphereMiss(t *testing.T) {
	s, _ := NewSphere(V(0, 0, 0), 1)
	r := vecmath.NewRay(V(10, 10, 10), V(1, 0, 0))
	if s.Intersect(r).IsHit() {
		t.Fatal("expected a miss")
	}
}

func TestCubeIntersectAndContains(t *testing.T) {
	c, err := NewCube(V(-1, -1, -1), V(1, 1, 1))
	if err != nil {
		t.Fatal(err)
	}
	r := vecmath.NewRay(V(-5, 0, 0), V(1, 0, 0))
	checkHitContained(t, c, r)
	hit := c.Intersect(r)
	if math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("expected t=4, got %v", hit.T)
	}
}

func TestCubeRejectsInvertedBounds(t *testing.T) {
	if _, err := NewCube(V(1, 0, 0), V(-1, 0, 0)); err == nil {
		t.Fatal("expected ConstructionError for min > max")
	}
}

func TestCubeEdgeCount(t *testing.T) {
	c, _ := NewCube(V(-1, -1, -1), V(1, 1, 1))
	if got := c.Paths().Len(); got != 12 {
		t.Fatalf("want 12 edges, got %d", got)
	}
}

func TestCylinderIntersectAndContains(t *testing.T) {
	c, err := NewCylinder(1, V(0, 0, 0), V(0, 0, 5))
	if err != nil {
		t.Fatal(err)
	}
	r := vecmath.NewRay(V(-5, 0, 2), V(1, 0, 0))
	checkHitContained(t, c, r)
	hit := c.Intersect(r)
	if math.Abs(hit.T-4) > 1e-9 {
		t.Fatalf("expected lateral hit at t=4, got %v", hit.T)
	}
}

func TestCylinderCapHit(t *testing.T) {
	c, _ := NewCylinder(1, V(0, 0, 0), V(0, 0, 5))
	r := vecmath.NewRay(V(0, 0, -5), V(0, 0, 1))
	checkHitContained(t, c, r)
	hit := c.Intersect(r)
	if math.Abs(hit.T-5) > 1e-9 {
		t.Fatalf("expected cap hit at t=5, got %v", hit.T)
	}
}

func TestCylinderArbitraryAxis(t *testing.T) {
	c, err := NewCylinder(1, V(0, 0, 0), V(3, 4, 0))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(c.length-5) > 1e-9 {
		t.Fatalf("expected axis length 5, got %v", c.length)
	}
	if !c.Contains(V(0, 0, 0), 1e-9) {
		t.Fatal("v0 should be contained")
	}
}

func TestConeIntersectAndContains(t *testing.T) {
	c, err := NewCone(2, V(0, 0, 0), V(0, 0, 4))
	if err != nil {
		t.Fatal(err)
	}
	// Ray straight up the axis from below should hit the base disk first.
	r := vecmath.NewRay(V(0, 0, -5), V(0, 0, 1))
	checkHitContained(t, c, r)
	hit := c.Intersect(r)
	if !hit.IsHit() {
		t.Fatal("expected base disk hit")
	}
}

func TestConeRadiusTapers(t *testing.T) {
	c, _ := NewCone(2, V(0, 0, 0), V(0, 0, 4))
	if got := c.radiusAt(0); math.Abs(got-2) > 1e-9 {
		t.Fatalf("radius at base = %v, want 2", got)
	}
	if got := c.radiusAt(4); math.Abs(got) > 1e-9 {
		t.Fatalf("radius at apex = %v, want 0", got)
	}
}

func TestTriangleIntersect(t *testing.T) {
	tri := NewTriangle(V(-1, -1, 0), V(1, -1, 0), V(0, 1, 0))
	r := vecmath.NewRay(V(0, 0, -5), V(0, 0, 1))
	hit := tri.Intersect(r)
	if !hit.IsHit() || math.Abs(hit.T-5) > 1e-9 {
		t.Fatalf("expected t=5, got %v", hit.T)
	}
}

func TestTriangleBackfaceHitAllowed(t *testing.T) {
	tri := NewTriangle(V(-1, -1, 0), V(1, -1, 0), V(0, 1, 0))
	r := vecmath.NewRay(V(0, 0, 5), V(0, 0, -1))
	if !tri.Intersect(r).IsHit() {
		t.Fatal("expected backface hit to be allowed")
	}
}

func TestTriangleNeverContains(t *testing.T) {
	tri := NewTriangle(V(-1, -1, 0), V(1, -1, 0), V(0, 1, 0))
	if tri.Contains(V(0, 0, 0), 1e-6) {
		t.Fatal("triangle Contains must always be false")
	}
}

func TestFunctionFlatPlaneIntersect(t *testing.T) {
	f, err := NewFunction(func(x, y float64) float64 { return 0 }, 4, V(-5, -5, 0), V(5, 5, 0), -1, 1)
	if err != nil {
		t.Fatal(err)
	}
	f.Step = 0.05
	f.Compile()
	r := vecmath.NewRay(V(0, 0, 5), V(0, 0, -1))
	hit := f.Intersect(r)
	if !hit.IsHit() {
		t.Fatal("expected a hit on the flat plane")
	}
	if math.Abs(hit.T-5) > 0.05 {
		t.Fatalf("expected t~5, got %v", hit.T)
	}
}

func TestFunctionBelowContains(t *testing.T) {
	f, _ := NewFunction(func(x, y float64) float64 { return 0 }, 4, V(-5, -5, 0), V(5, 5, 0), -2, 2)
	f.Compile()
	if !f.Contains(V(0, 0, -1), 1e-9) {
		t.Fatal("point below the plane should be contained under Below")
	}
	if f.Contains(V(0, 0, 1), 1e-9) {
		t.Fatal("point above the plane should not be contained under Below")
	}
}

func TestFunctionAboveIsComplement(t *testing.T) {
	f, _ := NewFunction(func(x, y float64) float64 { return 0 }, 4, V(-5, -5, 0), V(5, 5, 0), -2, 2)
	f.Direction = Above
	f.Compile()
	if f.Contains(V(0, 0, -1), 1e-9) {
		t.Fatal("point below the plane should not be contained under Above")
	}
	if !f.Contains(V(0, 0, 1), 1e-9) {
		t.Fatal("point above the plane should be contained under Above")
	}
}

func TestFunctionRejectsNilFunc(t *testing.T) {
	if _, err := NewFunction(nil, 4, V(0, 0, 0), V(1, 1, 0), 0, 1); err == nil {
		t.Fatal("expected ConstructionError for nil function")
	}
}

func TestTransformedTranslateIntersect(t *testing.T) {
	s, _ := NewSphere(V(0, 0, 0), 1)
	tr, err := NewTransformed(s, vecmath.Translate(V(5, 0, 0)))
	if err != nil {
		t.Fatal(err)
	}
	r := vecmath.NewRay(V(-5, 0, 0), V(1, 0, 0))
	checkHitContained(t, tr, r)
	hit := tr.Intersect(r)
	if math.Abs(hit.T-9) > 1e-6 {
		t.Fatalf("expected t=9, got %v", hit.T)
	}
}

func TestTransformedNonRigidRescalesT(t *testing.T) {
	s, _ := NewSphere(V(0, 0, 0), 1)
	tr, err := NewTransformed(s, vecmath.Scale(V(2, 2, 2)))
	if err != nil {
		t.Fatal(err)
	}
	r := vecmath.NewRay(V(-10, 0, 0), V(1, 0, 0))
	hit := tr.Intersect(r)
	if !hit.IsHit() || math.Abs(hit.T-8) > 1e-6 {
		t.Fatalf("expected world t=8 (hit sphere of radius 2), got %v", hit.T)
	}
}

func TestTransformedRejectsSingularMatrix(t *testing.T) {
	s, _ := NewSphere(V(0, 0, 0), 1)
	if _, err := NewTransformed(s, vecmath.Scale(V(0, 1, 1))); err == nil {
		t.Fatal("expected SingularTransform error")
	}
}

func TestTransformedContainsForwarding(t *testing.T) {
	s, _ := NewSphere(V(0, 0, 0), 1)
	tr, _ := NewTransformed(s, vecmath.Translate(V(5, 0, 0)))
	if !tr.Contains(V(5, 0, 0), 1e-9) {
		t.Fatal("translated sphere should contain its new center")
	}
	if tr.Contains(V(0, 0, 0), 1e-9) {
		t.Fatal("translated sphere should not contain the old center")
	}
}
