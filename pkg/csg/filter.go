package csg

import (
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

// filterPolylines splits every path into maximal runs of consecutive
// points satisfying keep, mirroring the visibility-run splitting used by
// the render pipeline's own visibility pass. A run of fewer than two
// points is dropped.
func filterPolylines(ps paths.Paths, keep func(vecmath.Vector) bool) paths.Paths {
	var out paths.Paths
	for _, p := range ps.P {
		var run paths.Path
		flush := func() {
			if len(run) >= 2 {
				out.Add(run)
			}
			run = nil
		}
		for _, v := range p {
			if keep(v) {
				run = append(run, v)
			} else {
				flush()
			}
		}
		flush()
	}
	return out
}
