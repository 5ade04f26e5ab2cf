package halfedge

import (
	"errors"
	"testing"

	"github.com/layerforge/slicer/pkg/mesh3d"
	"github.com/layerforge/slicer/pkg/sliceerr"
)

func tetrahedron() *mesh3d.Mesh {
	return &mesh3d.Mesh{
		Vertices: []mesh3d.Vertex3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		Triangles: []mesh3d.Triangle{
			{0, 2, 1}, // base
			{0, 1, 3},
			{1, 2, 3},
			{2, 0, 3},
		},
	}
}

func TestCheckClosedMesh(t *testing.T) {
	if err := Check(tetrahedron()); err != nil {
		t.Errorf("expected closed tetrahedron to pass, got %v", err)
	}
}

func TestCheckOpenBoundary(t *testing.T) {
	m := tetrahedron()
	m.Triangles = m.Triangles[:3] // drop one face, leaving an open boundary
	if err := Check(m); err == nil {
		t.Error("expected an error for a mesh with an open boundary")
	}
}

func TestCheckNonManifoldEdge(t *testing.T) {
	m := tetrahedron()
	// A fifth triangle reusing an existing edge makes it non-manifold.
	m.Vertices = append(m.Vertices, mesh3d.Vertex3{X: 1, Y: 1, Z: 1})
	m.Triangles = append(m.Triangles, mesh3d.Triangle{0, 1, 4})

	err := Check(m)
	if !errors.Is(err, sliceerr.ErrNonManifold) {
		t.Errorf("got %v, want ErrNonManifold", err)
	}
}
