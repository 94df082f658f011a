package csg

import (
	"testing"

	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

func V(x, y, z float64) vecmath.Vector { return vecmath.V(x, y, z) }

func mustSphere(t *testing.T, c vecmath.Vector, r float64) *shape.Sphere {
	t.Helper()
	s, err := shape.NewSphere(c, r)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func mustCube(t *testing.T, a, b vecmath.Vector) *shape.Cube {
	t.Helper()
	c, err := shape.NewCube(a, b)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestDifferenceRequiresTwoOperands(t *testing.T) {
	s := mustSphere(t, V(0, 0, 0), 1)
	if _, err := NewDifference(s); err == nil {
		t.Fatal("expected ConstructionError for a single operand")
	}
}

func TestDifferenceContainsInvariant(t *testing.T) {
	a := mustSphere(t, V(0, 0, 0), 2)
	b := mustCube(t, V(-2, -2, 0), V(2, 2, 2))
	d, err := NewDifference(a, b)
	if err != nil {
		t.Fatal(err)
	}
	d.Compile()

	cases := []vecmath.Vector{
		V(0, 0, -1), // inside A, outside B (B's z range starts at 0)
		V(0, 0, 1),  // inside both
		V(5, 5, 5),  // outside both
	}
	for _, p := range cases {
		want := a.Contains(p, 0) && !b.Contains(p, 0)
		got := d.Contains(p, 0)
		if got != want {
			t.Fatalf("Contains(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestIntersectionContainsInvariant(t *testing.T) {
	a := mustSphere(t, V(0, 0, 0), 2)
	b := mustCube(t, V(-2, -2, -2), V(2, 2, 0))
	in, err := NewIntersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	in.Compile()

	cases := []vecmath.Vector{
		V(0, 0, -1),
		V(0, 0, 1),
		V(5, 5, 5),
	}
	for _, p := range cases {
		want := a.Contains(p, 0) && b.Contains(p, 0)
		got := in.Contains(p, 0)
		if got != want {
			t.Fatalf("Contains(%v) = %v, want %v", p, got, want)
		}
	}
}

func TestDifferenceHemisphereIntersect(t *testing.T) {
	sphere := mustSphere(t, V(0, 0, 0), 1)
	box := mustCube(t, V(-2, -2, 0), V(2, 2, 2))
	d, err := NewDifference(sphere, box)
	if err != nil {
		t.Fatal(err)
	}
	d.Compile()

	// A ray straight up through the origin should hit the lower
	// hemisphere (upper half excised by the box).
	r := vecmath.NewRay(V(0, 0, -5), V(0, 0, 1))
	hit := d.Intersect(r)
	if !hit.IsHit() {
		t.Fatal("expected a hit on the remaining lower hemisphere")
	}
	if hit.T > 4.01 || hit.T < 3.99 {
		t.Fatalf("expected hit at t~4 (sphere surface at z=-1), got %v", hit.T)
	}

	// A ray through the excised upper half must miss the sphere surface
	// (it either misses entirely or hits the flat cut, which the box
	// itself doesn't draw here since we intersect only the difference).
	r2 := vecmath.NewRay(V(0, 0, 5), V(0, 0, -1))
	hit2 := d.Intersect(r2)
	if hit2.IsHit() && hit2.T < 4 {
		t.Fatalf("did not expect a hit on the excised upper hemisphere surface, got t=%v", hit2.T)
	}
}

func TestDifferencePathsExcludeSubtractedInterior(t *testing.T) {
	sphere := mustSphere(t, V(0, 0, 0), 1)
	sphere.Texture = shape.SphereLatLng
	box := mustCube(t, V(-2, -2, 0), V(2, 2, 2))
	d, err := NewDifference(sphere, box)
	if err != nil {
		t.Fatal(err)
	}
	d.Compile()
	ps := d.Paths()
	for _, p := range ps.P {
		for _, v := range p {
			if box.Contains(v, -FilterEps) {
				t.Fatalf("path point %v should have been filtered out of the box interior", v)
			}
		}
	}
}

func TestIntersectionPathsFilterToSharedRegion(t *testing.T) {
	a := mustSphere(t, V(0, 0, 0), 2)
	b := mustCube(t, V(-2, -2, -2), V(2, 2, 0))
	in, err := NewIntersection(a, b)
	if err != nil {
		t.Fatal(err)
	}
	in.Compile()
	ps := in.Paths()
	for _, p := range ps.P {
		for _, v := range p {
			if !b.Contains(v, FilterEps) {
				t.Fatalf("intersection path point %v outside cube operand", v)
			}
		}
	}
}
