// Package meshio loads and saves mesh.Mesh triangle soups as 3MF files
// using hpinc/go3mf, the 3D-manufacturing interchange library named in
// the teacher's dependency stack.
package meshio

import (
	"io"

	"github.com/chazu/larnt/pkg/mesh"
	"github.com/chazu/larnt/pkg/shape"
	"github.com/chazu/larnt/pkg/vecmath"
	"github.com/hpinc/go3mf"
)

const meshObjectID = 1

// Save encodes m as a single-object 3MF model and writes it to w.
func Save(w io.Writer, m *mesh.Mesh) error {
	model := new(go3mf.Model)

	verts := make([]go3mf.Point3D, 0, len(m.Triangles)*3)
	tris := make([]go3mf.Triangle, 0, len(m.Triangles))
	for _, tr := range m.Triangles {
		base := uint32(len(verts))
		verts = append(verts,
			go3mf.Point3D{float32(tr.V1.X), float32(tr.V1.Y), float32(tr.V1.Z)},
			go3mf.Point3D{float32(tr.V2.X), float32(tr.V2.Y), float32(tr.V2.Z)},
			go3mf.Point3D{float32(tr.V3.X), float32(tr.V3.Y), float32(tr.V3.Z)},
		)
		tris = append(tris, go3mf.Triangle{V1: base, V2: base + 1, V3: base + 2})
	}

	model.Resources.Objects = append(model.Resources.Objects, &go3mf.Object{
		ID: meshObjectID,
		Mesh: &go3mf.Mesh{
			Vertices:  go3mf.Vertices{Vertex: verts},
			Triangles: go3mf.Triangles{Triangle: tris},
		},
	})
	model.Build.Items = append(model.Build.Items, &go3mf.Item{ObjectID: meshObjectID})

	return go3mf.NewEncoder(w).Encode(model)
}

// Load decodes a 3MF model from r (size bytes long) and flattens every
// mesh object's triangles into a single mesh.Mesh.
func Load(r io.ReaderAt, size int64) (*mesh.Mesh, error) {
	model := new(go3mf.Model)
	if err := go3mf.NewDecoder(r, size).Decode(model); err != nil {
		return nil, shape.NewIoError("meshio.Load", err)
	}

	var tris []*shape.Triangle
	for _, obj := range model.Resources.Objects {
		if obj.Mesh == nil {
			continue
		}
		verts := obj.Mesh.Vertices.Vertex
		for _, t := range obj.Mesh.Triangles.Triangle {
			if t.V1 >= uint32(len(verts)) || t.V2 >= uint32(len(verts)) || t.V3 >= uint32(len(verts)) {
				continue
			}
			tris = append(tris, shape.NewTriangle(
				point(verts[t.V1]), point(verts[t.V2]), point(verts[t.V3]),
			))
		}
	}
	return mesh.New(tris), nil
}

func point(p go3mf.Point3D) vecmath.Vector {
	return vecmath.V(float64(p[0]), float64(p[1]), float64(p[2]))
}
