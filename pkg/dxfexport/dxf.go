// Package dxfexport writes a paths.Paths as a DXF drawing using
// yofu/dxf, the CAD interchange library named in the teacher's
// dependency stack. Unlike svgexport/pngexport, DXF output is written in
// the original 3D coordinates (before projection to screen space), since
// DXF is a vector CAD format rather than a raster/screen format.
package dxfexport

import (
	"github.com/chazu/larnt/pkg/paths"
	"github.com/yofu/dxf"
)

// Write builds a dxf.Drawing containing one 3D line entity per segment
// of every path in ps and saves it to filename.
func Write(ps paths.Paths, filename string) error {
	d := dxf.NewDrawing()

	for _, p := range ps.P {
		for i := 0; i+1 < len(p); i++ {
			a, b := p[i], p[i+1]
			d.Line(a.X, a.Y, a.Z, b.X, b.Y, b.Z)
		}
	}

	return d.SaveAs(filename)
}
