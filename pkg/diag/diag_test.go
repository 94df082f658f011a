package diag

import (
	"testing"

	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
)

func TestSinkRecordsEvents(t *testing.T) {
	s := NewSink()
	s.Record(Info, "test", "hello %d", 1)
	if len(s.Events()) != 1 {
		t.Fatalf("want 1 event, got %d", len(s.Events()))
	}
	if s.HasWarnings() {
		t.Fatal("Info event should not count as a warning")
	}
}

func TestCheckOverlapsFindsOverlappingBoxes(t *testing.T) {
	a, _ := shape.NewCube(vecmath.V(0, 0, 0), vecmath.V(1, 1, 1))
	b, _ := shape.NewCube(vecmath.V(0.5, 0.5, 0.5), vecmath.V(1.5, 1.5, 1.5))
	c, _ := shape.NewCube(vecmath.V(10, 10, 10), vecmath.V(11, 11, 11))

	sink := NewSink()
	CheckOverlaps(sink, "scene", []shape.Shape{a, b, c})

	found := false
	for _, e := range sink.Events() {
		if e.Level == Info {
			found = true
		}
	}
	if !found {
		t.Fatal("expected an overlap event between the two intersecting cubes")
	}
}

func TestCheckOverlapsNoFalsePositives(t *testing.T) {
	a, _ := shape.NewCube(vecmath.V(0, 0, 0), vecmath.V(1, 1, 1))
	c, _ := shape.NewCube(vecmath.V(10, 10, 10), vecmath.V(11, 11, 11))

	sink := NewSink()
	CheckOverlaps(sink, "scene", []shape.Shape{a, c})
	if len(sink.Events()) != 0 {
		t.Fatalf("expected no overlap events for disjoint boxes, got %v", sink.Events())
	}
}
