// Package svgexport renders a paths.Paths as an SVG document using
// ajstarks/svgo, the same SVG library named in the teacher's dependency
// stack.
package svgexport

import (
	"fmt"
	"io"

	"github.com/ajstarks/svgo"
	"github.com/chazu/larnt/pkg/paths"
)

// Options controls the SVG output's stroke styling.
type Options struct {
	StrokeColor string
	StrokeWidth float64
	Background  string
}

// DefaultOptions returns black 1px strokes on a white background.
func DefaultOptions() Options {
	return Options{StrokeColor: "black", StrokeWidth: 1, Background: "white"}
}

// Write renders ps to w as an SVG document sized width x height. Points
// are expected to already be in pixel space (i.e. the output of
// paths.Viewport).
func Write(w io.Writer, ps paths.Paths, width, height int, opts Options) error {
	canvas := svg.New(w)
	canvas.Start(width, height)
	if opts.Background != "" {
		canvas.Rect(0, 0, width, height, fmt.Sprintf("fill:%s", opts.Background))
	}

	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%g", opts.StrokeColor, opts.StrokeWidth)
	for _, p := range ps.P {
		if len(p) < 2 {
			continue
		}
		xs := make([]int, len(p))
		ys := make([]int, len(p))
		for i, v := range p {
			xs[i] = int(v.X + 0.5)
			ys[i] = int(v.Y + 0.5)
		}
		canvas.Polyline(xs, ys, style)
	}
	canvas.End()
	return nil
}
