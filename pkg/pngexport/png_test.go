package pngexport

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

func TestWriteProducesDecodablePNG(t *testing.T) {
	ps := paths.New()
	ps.Add(paths.Path{vecmath.V(0, 0, 0), vecmath.V(50, 50, 0)})

	var buf bytes.Buffer
	if err := Write(&buf, ps, 64, 64, DefaultOptions()); err != nil {
		t.Fatalf("Write: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() != 64 || img.Bounds().Dy() != 64 {
		t.Fatalf("unexpected image size %v", img.Bounds())
	}
}
