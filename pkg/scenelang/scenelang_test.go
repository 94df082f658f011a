package scenelang

import (
	"strings"
	"testing"

	"github.com/chazu/larnt/pkg/vecmath"
)

func TestEvaluateEmptySourceYieldsEmptyGraph(t *testing.T) {
	e := NewEngine()
	g, errs, err := e.Evaluate("")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected eval errors: %v", errs)
	}
	if len(g.Nodes) != 0 {
		t.Fatalf("expected empty graph, got %d nodes", len(g.Nodes))
	}
}

func TestEvaluateBuildsSphereAndRoot(t *testing.T) {
	e := NewEngine()
	src := `(add (sphere :center (vec3 0 0 0) :radius 3))`
	g, errs, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected eval errors: %v", errs)
	}
	if len(g.Roots) != 1 {
		t.Fatalf("want 1 root, got %d", len(g.Roots))
	}
	shapes, err := g.MaterializeRoots()
	if err != nil {
		t.Fatalf("MaterializeRoots: %v", err)
	}
	if len(shapes) != 1 {
		t.Fatalf("want 1 shape, got %d", len(shapes))
	}
	if !shapes[0].Contains(vecmath.V(0, 0, 0), 1e-9) {
		t.Fatal("expected sphere at the origin to contain the origin")
	}
}

func TestEvaluateDefAndRefBindName(t *testing.T) {
	e := NewEngine()
	src := `
(def "ball" (sphere :radius 2))
(add (translate (ref "ball") (vec3 5 0 0)))
`
	g, errs, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected eval errors: %v", errs)
	}
	if g.Lookup("ball") == nil {
		t.Fatal("expected \"ball\" to be registered in the name index")
	}
	shapes, err := g.MaterializeRoots()
	if err != nil {
		t.Fatalf("MaterializeRoots: %v", err)
	}
	if !shapes[0].Contains(vecmath.V(5, 0, 0), 1e-9) {
		t.Fatal("expected translated ball to contain (5,0,0)")
	}
}

func TestEvaluateDifferenceRequiresTwoOperands(t *testing.T) {
	e := NewEngine()
	src := `(add (difference (sphere :radius 3)))`
	_, errs, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected an eval error for a difference with a single operand")
	}
}

func TestEvaluateSyntaxErrorReportsEvalError(t *testing.T) {
	e := NewEngine()
	_, errs, err := e.Evaluate("(sphere :radius")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(errs) == 0 {
		t.Fatal("expected a parse error for unbalanced parens")
	}
}

func TestEvaluateKebabKeywordArgument(t *testing.T) {
	e := NewEngine()
	src := `(add (function :shape :plane :z-min -1 :z-max 1))`
	_, errs, err := e.Evaluate(src)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if len(errs) != 0 {
		t.Fatalf("unexpected eval errors: %v", errs)
	}
}

func TestPreprocessSourceConvertsKeywordsAndComments(t *testing.T) {
	out := preprocessSource("(board :grain-axis :z) ; a comment")
	if !strings.Contains(out, "__kw_grain_axis") {
		t.Fatalf("expected keyword conversion, got %q", out)
	}
	if !strings.Contains(out, "//") {
		t.Fatalf("expected comment conversion, got %q", out)
	}
}
