package vecmath

import (
	"math"
	"math/rand"
	"testing"
)

func approxEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func TestVectorBasics(t *testing.T) {
	a := V(1, 2, 3)
	b := V(4, 5, 6)
	if got := a.Add(b); got != (Vector{5, 7, 9}) {
		t.Fatalf("Add: got %v", got)
	}
	if got := a.Dot(b); got != 32 {
		t.Fatalf("Dot: got %v", got)
	}
	if got := V(1, 0, 0).Cross(V(0, 1, 0)); got != (Vector{0, 0, 1}) {
		t.Fatalf("Cross: got %v", got)
	}
}

func TestNormalizeZero(t *testing.T) {
	z := Vector{}
	if got := z.Normalize(); got != (Vector{}) {
		t.Fatalf("Normalize(zero) = %v, want zero vector", got)
	}
}

func TestSegmentDistance(t *testing.T) {
	p := V(0, 1, 0)
	d := p.SegmentDistance(V(-1, 0, 0), V(1, 0, 0))
	if !approxEqual(d, 1, 1e-9) {
		t.Fatalf("SegmentDistance = %v, want 1", d)
	}
}

func TestBoxIntersectOriginInside(t *testing.T) {
	b := NewBox(V(-1, -1, -1), V(1, 1, 1))
	r := NewRay(V(0, 0, 0), V(1, 0, 0))
	tEnter, tExit := b.Intersect(r)
	if !(tEnter < 0 && tExit > 0) {
		t.Fatalf("expected tEnter<0<tExit, got (%v, %v)", tEnter, tExit)
	}
}

func TestBoxIntersectMiss(t *testing.T) {
	b := NewBox(V(-1, -1, -1), V(1, 1, 1))
	r := NewRay(V(5, 5, 5), V(0, 0, 1))
	tEnter, tExit := b.Intersect(r)
	if tEnter <= tExit {
		t.Fatalf("expected a miss (tEnter>tExit), got (%v, %v)", tEnter, tExit)
	}
}

func TestBoxEmpty(t *testing.T) {
	e := EmptyBox()
	if !e.Empty() {
		t.Fatal("EmptyBox should be Empty")
	}
	if e.Contains(V(0, 0, 0)) {
		t.Fatal("EmptyBox should contain nothing")
	}
}

func TestBoxUnion(t *testing.T) {
	a := NewBox(V(0, 0, 0), V(1, 1, 1))
	b := NewBox(V(-1, -1, -1), V(0.5, 0.5, 0.5))
	u := a.Union(b)
	want := NewBox(V(-1, -1, -1), V(1, 1, 1))
	if u != want {
		t.Fatalf("Union = %v, want %v", u, want)
	}
}

func TestMatrixInverseIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20; i++ {
		m := Translate(V(rng.Float64(), rng.Float64(), rng.Float64())).
			Mul(Scale(V(1+rng.Float64(), 1+rng.Float64(), 1+rng.Float64()))).
			Mul(Rotate(V(rng.Float64(), rng.Float64(), rng.Float64()), rng.Float64()))
		inv := m.Inverse()
		prod := m.Mul(inv)
		if d := prod.FrobeniusDistance(Identity()); d > 1e-9 {
			t.Fatalf("iteration %d: M*Minv deviates from I by %v", i, d)
		}
	}
}

func TestMatrixInverseSingularPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic inverting a singular matrix")
		}
	}()
	Scale(V(0, 1, 1)).Inverse()
}

func TestTransformDirectionNoTranslation(t *testing.T) {
	m := Translate(V(10, 20, 30))
	d := m.TransformDirection(V(1, 0, 0))
	if d != (Vector{1, 0, 0}) {
		t.Fatalf("TransformDirection should ignore translation, got %v", d)
	}
}

func TestTransformBoxCorners(t *testing.T) {
	b := NewBox(V(-1, -1, -1), V(1, 1, 1))
	m := Translate(V(5, 0, 0))
	got := m.TransformBox(b)
	want := NewBox(V(4, -1, -1), V(6, 1, 1))
	if got != want {
		t.Fatalf("TransformBox = %v, want %v", got, want)
	}
}

func TestLookAtOrthonormal(t *testing.T) {
	m := LookAt(V(4, 3, 2), V(0, 0, 0), V(0, 0, 1))
	// Rows 0..2 of the rotation part should each be unit length.
	rows := [][3]float64{
		{m.X00, m.X01, m.X02},
		{m.X10, m.X11, m.X12},
		{m.X20, m.X21, m.X22},
	}
	for i, row := range rows {
		l := math.Sqrt(row[0]*row[0] + row[1]*row[1] + row[2]*row[2])
		if !approxEqual(l, 1, 1e-9) {
			t.Fatalf("row %d not unit length: %v", i, l)
		}
	}
}
