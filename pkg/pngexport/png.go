// Package pngexport rasterizes a paths.Paths to a PNG image using
// llgcode/draw2d, the raster/vector drawing library named in the
// teacher's dependency stack.
package pngexport

import (
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/llgcode/draw2d/draw2dimg"
	"github.com/llgcode/draw2d/draw2dkit"
)

// Options controls the raster output's stroke styling.
type Options struct {
	StrokeColor color.Color
	LineWidth   float64
	Background  color.Color
}

// DefaultOptions returns black 1px strokes on a white background.
func DefaultOptions() Options {
	return Options{StrokeColor: color.Black, LineWidth: 1, Background: color.White}
}

// Write rasterizes ps into a width x height RGBA image and encodes it as
// PNG to w. Points are expected to already be in pixel space (i.e. the
// output of paths.Viewport).
func Write(w io.Writer, ps paths.Paths, width, height int, opts Options) error {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	gc := draw2dimg.NewGraphicContext(img)

	gc.SetFillColor(opts.Background)
	draw2dkit.Rectangle(gc, 0, 0, float64(width), float64(height))
	gc.Fill()

	gc.SetStrokeColor(opts.StrokeColor)
	gc.SetLineWidth(opts.LineWidth)
	for _, p := range ps.P {
		if len(p) < 2 {
			continue
		}
		gc.MoveTo(p[0].X, p[0].Y)
		for _, v := range p[1:] {
			gc.LineTo(v.X, v.Y)
		}
		gc.Stroke()
	}

	return png.Encode(w, img)
}
