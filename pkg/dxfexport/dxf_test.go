package dxfexport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/larnt/pkg/paths"
	"github.com/chazu/larnt/pkg/vecmath"
)

func TestWriteCreatesDXFFile(t *testing.T) {
	ps := paths.New()
	ps.Add(paths.Path{vecmath.V(0, 0, 0), vecmath.V(10, 0, 0), vecmath.V(10, 10, 0)})

	out := filepath.Join(t.TempDir(), "scene.dxf")
	if err := Write(ps, out); err != nil {
		t.Fatalf("Write: %v", err)
	}
	info, err := os.Stat(out)
	if err != nil {
		t.Fatalf("expected output file to exist: %v", err)
	}
	if info.Size() == 0 {
		t.Fatal("expected a non-empty DXF file")
	}
}
