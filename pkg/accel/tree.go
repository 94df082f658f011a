// Package accel implements the scene-wide ray intersection acceleration
// structure: a median-split AABB tree over shape references with
// ordered, nearest-child-first traversal.
package accel

import (
	"sort"

	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

// Tree is a binary tree of shape references; internal nodes cache the
// union AABB of their descendants. Leaf size is 1.
type Tree struct {
	root *node
}

type node struct {
	box   vecmath.Box
	leaf  shape.Shape
	left  *node
	right *node
}

func (n *node) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// Build constructs a tree over shapes, calling BoundingBox on each once.
// An empty input yields a tree whose Intersect always returns NoHit.
func Build(shapes []shape.Shape) *Tree {
	if len(shapes) == 0 {
		return &Tree{}
	}
	type entry struct {
		s        shape.Shape
		box      vecmath.Box
		centroid vecmath.Vector
	}
	entries := make([]entry, len(shapes))
	for i, s := range shapes {
		b := s.BoundingBox()
		entries[i] = entry{s: s, box: b, centroid: b.Center()}
	}

	var build func(es []entry) *node
	build = func(es []entry) *node {
		box := vecmath.EmptyBox()
		for _, e := range es {
			box = box.Union(e.box)
		}
		if len(es) == 1 {
			return &node{box: box, leaf: es[0].s}
		}
		spread := box.Size()
		axis := 0
		if spread.Y > spread.X {
			axis = 1
		}
		if spread.Z > axisMax(spread, axis) {
			axis = 2
		}
		sort.Slice(es, func(i, j int) bool {
			return componentAt(es[i].centroid, axis) < componentAt(es[j].centroid, axis)
		})
		mid := len(es) / 2
		left := build(es[:mid])
		right := build(es[mid:])
		return &node{box: box, left: left, right: right}
	}

	return &Tree{root: build(entries)}
}

func axisMax(v vecmath.Vector, axis int) float64 {
	if axis == 0 {
		return v.X
	}
	return v.Y
}

func componentAt(v vecmath.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Intersect performs an ordered nearest-child-first traversal: the
// nearer child (by slab t_enter) is visited first, and the farther child
// is pruned once its t_enter exceeds the best hit found so far.
func (t *Tree) Intersect(r vecmath.Ray) shape.Hit {
	if t == nil || t.root == nil {
		return shape.NoHit
	}
	best := shape.NoHit
	var walk func(n *node)
	walk = func(n *node) {
		if n == nil {
			return
		}
		tEnter, tExit := n.box.Intersect(r)
		if tEnter > tExit || tExit < 0 {
			return
		}
		if best.IsHit() && tEnter > best.T {
			return
		}
		if n.isLeaf() {
			hit := n.leaf.Intersect(r)
			best = shape.MinHit(best, hit)
			return
		}
		leftEnter, leftExit := n.left.box.Intersect(r)
		rightEnter, rightExit := n.right.box.Intersect(r)
		leftHits := leftEnter <= leftExit && leftExit >= 0
		rightHits := rightEnter <= rightExit && rightExit >= 0
		if leftHits && rightHits {
			if leftEnter <= rightEnter {
				walk(n.left)
				walk(n.right)
			} else {
				walk(n.right)
				walk(n.left)
			}
		} else if leftHits {
			walk(n.left)
		} else if rightHits {
			walk(n.right)
		}
	}
	walk(t.root)
	return best
}

// BoundingBox returns the tree's root box, or an empty box for an empty
// tree.
func (t *Tree) BoundingBox() vecmath.Box {
	if t == nil || t.root == nil {
		return vecmath.EmptyBox()
	}
	return t.root.box
}
