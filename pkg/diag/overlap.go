package diag

import (
	"github.com/chazu/larnt/pkg/shape"
	"github.com/dhconnelly/rtreego"
)

// boxSpatial adapts a shape.Shape's bounding box to rtreego.Spatial for
// the broad-phase overlap query below.
type boxSpatial struct {
	index int
	rect  rtreego.Rect
}

func (b *boxSpatial) Bounds() rtreego.Rect {
	return b.rect
}

// CheckOverlaps runs a broad-phase R-tree query over every shape's
// bounding box and records an Info event for each pair of scene-top-level
// shapes whose boxes overlap. This is purely diagnostic: CSG operands are
// *expected* to overlap, so overlap here is informational (e.g. flagging
// two mesh subtrees that were probably meant to be CSG'd together but
// were added to the scene as siblings instead) rather than an error.
func CheckOverlaps(sink *Sink, source string, shapes []shape.Shape) {
	const dims = 3
	tree := rtreego.NewTree(dims, 2, 5)
	spatials := make([]*boxSpatial, 0, len(shapes))
	for i, s := range shapes {
		box := s.BoundingBox()
		size := box.Size()
		lengths := []float64{
			nonZero(size.X), nonZero(size.Y), nonZero(size.Z),
		}
		rect, err := rtreego.NewRect(
			rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z},
			lengths,
		)
		if err != nil {
			sink.Record(Warning, source, "shape %d has a degenerate bounding box: %v", i, err)
			continue
		}
		sp := &boxSpatial{index: i, rect: rect}
		spatials = append(spatials, sp)
		tree.Insert(sp)
	}

	seen := make(map[[2]int]bool)
	for _, sp := range spatials {
		hits := tree.SearchIntersect(sp.rect)
		for _, h := range hits {
			other := h.(*boxSpatial)
			if other.index == sp.index {
				continue
			}
			key := pairKey(sp.index, other.index)
			if seen[key] {
				continue
			}
			seen[key] = true
			sink.Record(Info, source, "bounding boxes of shapes %d and %d overlap", key[0], key[1])
		}
	}
}

func pairKey(a, b int) [2]int {
	if a < b {
		return [2]int{a, b}
	}
	return [2]int{b, a}
}

func nonZero(v float64) float64 {
	if v <= 0 {
		return 1e-9
	}
	return v
}
