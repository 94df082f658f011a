// Package csg implements the constructive solid geometry nodes:
// intersection and difference over an ordered list of shape operands.
package csg

import (
	"github.com/chazu/larnt/pkg/shape"
)

// FilterEps is the containment tolerance used while filtering candidate
// intersections and path points: small enough that points lying exactly
// on a surface are not spuriously discarded.
const FilterEps = 1e-9

func validateOperands(kind string, operands []shape.Shape) error {
	if len(operands) < 2 {
		return shape.NewConstructionError(kind, "at least two operands are required")
	}
	return nil
}

func compileAll(operands []shape.Shape) {
	for _, s := range operands {
		s.Compile()
	}
}
