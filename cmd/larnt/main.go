// Command larnt evaluates a scenelang script and renders the resulting
// scene graph to one of several vector or raster formats.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/chazu/larnt/pkg/diag"
	"github.com/chazu/larnt/pkg/dxfexport"
	"github.com/chazu/larnt/pkg/mesh"
	"github.com/chazu/larnt/pkg/meshio"
	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/pngexport"
	"github.com/chazu/larnt/pkg/scene"
	"github.com/chazu/larnt/pkg/scenegraph"
	"github.com/chazu/larnt/pkg/scenelang"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/solidify"
	"github.com/chazu/larnt/pkg/svgexport"
	"github.com/chazu/larnt/pkg/txtexport"
	"github.com/chazu/larnt/pkg/vecmath"
)

var (
	format = flag.String("format", "svg", "output format: svg, png, dxf, txt, 3mf")
	out    = flag.String("out", "", "output path (defaults to stdout; required for dxf)")

	width   = flag.Float64("width", 0, "override the script's render width in pixels")
	height  = flag.Float64("height", 0, "override the script's render height in pixels")
	step    = flag.Float64("step", 0, "override the script's polyline chop length")
	fovyDeg = flag.Float64("fovy", 0, "override the script's vertical field of view, in degrees")

	cells = flag.Int("cells", 64, "marching-cubes cell count along the longest axis, for -format 3mf")
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		log.Fatalf("usage: larnt [flags] scene.zy")
	}
	scriptPath := flag.Arg(0)

	source, err := os.ReadFile(scriptPath)
	if err != nil {
		log.Fatalf("reading %s: %v", scriptPath, err)
	}

	engine := scenelang.NewEngine()
	graph, evalErrors, err := engine.Evaluate(string(source))
	if err != nil {
		log.Fatalf("evaluating %s: %v", scriptPath, err)
	}
	for _, e := range evalErrors {
		log.Printf("%s: %v", scriptPath, e)
	}
	if len(evalErrors) > 0 {
		log.Fatalf("%s: %d error(s), aborting", scriptPath, len(evalErrors))
	}

	shapes, err := graph.MaterializeRoots()
	if err != nil {
		log.Fatalf("materializing scene graph: %v", err)
	}
	if len(shapes) == 0 {
		log.Fatalf("%s: no roots registered with (add ...)", scriptPath)
	}

	sink := diag.NewSink()
	diag.CheckOverlaps(sink, scriptPath, shapes)
	for _, e := range sink.Events() {
		log.Print(e)
	}

	params := renderParams(graph.Render)

	var output *os.File
	if *out == "" {
		output = os.Stdout
	} else {
		output, err = os.Create(*out)
		if err != nil {
			log.Fatalf("creating %s: %v", *out, err)
		}
		defer output.Close()
	}

	switch *format {
	case "svg", "png", "txt":
		ps := renderPaths(shapes, params)
		if err := writeVector(*format, output, ps, params); err != nil {
			log.Fatalf("writing %s output: %v", *format, err)
		}
	case "dxf":
		if *out == "" {
			log.Fatalf("-format dxf requires -out (DXF is not a streamable format)")
		}
		ps := gatherRawPaths(shapes, params.Step)
		if err := dxfexport.Write(ps, *out); err != nil {
			log.Fatalf("writing dxf output: %v", err)
		}
	case "3mf":
		if err := writeSolid(shapes, output); err != nil {
			log.Fatalf("writing 3mf output: %v", err)
		}
	default:
		log.Fatalf("unknown -format %q: want one of svg, png, dxf, txt, 3mf", *format)
	}
}

// renderParams merges a script's (render ...) call with any flags the
// caller explicitly set on the command line. Flags override the script.
func renderParams(scriptDefaults scenegraph.RenderParams) scenegraph.RenderParams {
	p := scriptDefaults
	if !p.Set {
		p = scenegraph.RenderParams{
			Eye: vecmath.V(0, 0, 10), Center: vecmath.V(0, 0, 0), Up: vecmath.V(0, 1, 0),
			Width: 800, Height: 600, FovyDeg: 50, ZNear: 0.1, ZFar: 1000, Step: 0.5,
		}
	}
	if *width > 0 {
		p.Width = *width
	}
	if *height > 0 {
		p.Height = *height
	}
	if *step > 0 {
		p.Step = *step
	}
	if *fovyDeg > 0 {
		p.FovyDeg = *fovyDeg
	}
	return p
}

func renderPaths(shapes []shape.Shape, p scenegraph.RenderParams) paths.Paths {
	sc := scene.New()
	sc.Add(shapes...)
	return sc.Render(p.Eye, p.Center, p.Up, p.Width, p.Height, p.FovyDeg, p.ZNear, p.ZFar, p.Step)
}

// gatherRawPaths chops every shape's paths without projecting or
// visibility-testing them, for exports that want original 3D coordinates.
func gatherRawPaths(shapes []shape.Shape, step float64) paths.Paths {
	var gathered paths.Paths
	for _, sh := range shapes {
		sh.Compile()
		gathered.Append(sh.Paths())
	}
	return gathered.Chop(step)
}

func writeVector(format string, w *os.File, ps paths.Paths, p scenegraph.RenderParams) error {
	switch format {
	case "svg":
		return svgexport.Write(w, ps, int(p.Width), int(p.Height), svgexport.DefaultOptions())
	case "png":
		return pngexport.Write(w, ps, int(p.Width), int(p.Height), pngexport.DefaultOptions())
	case "txt":
		return txtexport.Write(w, ps)
	}
	return fmt.Errorf("writeVector: unreachable format %q", format)
}

// writeSolid runs every shape through the marching-cubes solidifier and
// writes the union of the resulting triangle soup as a single 3MF model.
func writeSolid(shapes []shape.Shape, w *os.File) error {
	var tris []*shape.Triangle
	for _, sh := range shapes {
		sh.Compile()
		verts := solidify.ToTriangleMesh(sh, *cells)
		for i := 0; i+2 < len(verts); i += 3 {
			tris = append(tris, shape.NewTriangle(verts[i], verts[i+1], verts[i+2]))
		}
	}
	if len(tris) == 0 {
		return fmt.Errorf("marching cubes produced no triangles")
	}
	return meshio.Save(w, mesh.New(tris))
}
