package paths

import (
	"testing"

	"github.com/chazu/larnt/pkg/vecmath"
)

func V(x, y, z float64) vecmath.Vector { return vecmath.V(x, y, z) }

func TestAddRejectsDegenerate(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 0)})
	if ps.Len() != 0 {
		t.Fatalf("single-point path should be rejected, got len %d", ps.Len())
	}
	ps.Add(Path{V(0, 0, 0), V(1, 0, 0)})
	if ps.Len() != 1 {
		t.Fatalf("want len 1, got %d", ps.Len())
	}
}

func TestChopBoundsSegmentLength(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 0), V(10, 0, 0)})
	chopped := ps.Chop(1.0)
	if got := chopped.MaxSegmentLength(); got > 1.0+1e-9 {
		t.Fatalf("MaxSegmentLength = %v, want <= 1", got)
	}
	if got, want := chopped.TotalLength(), ps.TotalLength(); got < want-1e-9 || got > want+1e-9 {
		t.Fatalf("chop changed total length: got %v want %v", got, want)
	}
}

func TestChopPreservesEndpoints(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 0), V(10, 0, 0)})
	chopped := ps.Chop(3.0)
	p := chopped.P[0]
	if p[0] != V(0, 0, 0) || p[len(p)-1] != V(10, 0, 0) {
		t.Fatalf("endpoints not preserved: %v", p)
	}
}

func TestBoundingBox(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(-1, 2, 0), V(3, -4, 5)})
	b := ps.BoundingBox()
	if b.Min != V(-1, -4, 0) || b.Max != V(3, 2, 5) {
		t.Fatalf("BoundingBox = %v", b)
	}
}

func TestProjectDropsOutOfRangeZ(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 5), V(0, 0, 6)})
	m := vecmath.Identity()
	got := ps.Project(m)
	if got.Len() != 0 {
		t.Fatalf("expected path outside [-1,1] z range to be dropped, got %d paths", got.Len())
	}
}

func TestFilterToUnitRectClipsOutside(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(-2, 0, 0), V(2, 0, 0)})
	got := ps.FilterToUnitRect()
	if got.Len() != 1 {
		t.Fatalf("want 1 clipped path, got %d", got.Len())
	}
	p := got.P[0]
	if p[0].X < -1-1e-9 || p[len(p)-1].X > 1+1e-9 {
		t.Fatalf("clip did not bound to [-1,1]: %v", p)
	}
}

func TestFilterToUnitRectSplitsOnExit(t *testing.T) {
	var ps Paths
	// A path that goes out of bounds and back in should split into two.
	ps.Add(Path{V(0, 0, 0), V(3, 0, 0), V(0, 0.5, 0)})
	got := ps.FilterToUnitRect()
	if got.Len() != 2 {
		t.Fatalf("want 2 paths after split, got %d", got.Len())
	}
}

func TestFilterToUnitRectDropsFullyOutside(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(5, 5, 0), V(6, 6, 0)})
	got := ps.FilterToUnitRect()
	if got.Len() != 0 {
		t.Fatalf("expected fully-outside path dropped, got %d", got.Len())
	}
}

func TestViewportMapsCorners(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(-1, -1, 0), V(1, 1, 0)})
	got := ps.Viewport(100, 200)
	p := got.P[0]
	if p[0] != V(0, 200, 0) {
		t.Fatalf("bottom-left corner mapped to %v, want (0,200,0)", p[0])
	}
	if p[1] != V(100, 0, 0) {
		t.Fatalf("top-right corner mapped to %v, want (100,0,0)", p[1])
	}
	if !got.WithinBounds(100, 200) {
		t.Fatal("viewport output should be within bounds")
	}
}

func TestSimplifyCollapsesCollinearPoints(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 0), V(1, 0.001, 0), V(2, 0, 0)})
	got := ps.Simplify(0.01)
	if len(got.P[0]) != 2 {
		t.Fatalf("expected collinear midpoint dropped, got %v", got.P[0])
	}
}

func TestSimplifyKeepsSignificantDetail(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 0), V(1, 5, 0), V(2, 0, 0)})
	got := ps.Simplify(0.01)
	if len(got.P[0]) != 3 {
		t.Fatalf("expected sharp corner preserved, got %v", got.P[0])
	}
}

func TestFlattenToSegments(t *testing.T) {
	var ps Paths
	ps.Add(Path{V(0, 0, 0), V(1, 0, 0), V(2, 0, 0)})
	segs := ps.FlattenToSegments()
	if len(segs) != 2 {
		t.Fatalf("want 2 segments, got %d", len(segs))
	}
}
