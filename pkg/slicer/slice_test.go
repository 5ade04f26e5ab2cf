package slicer

import (
	"context"
	"testing"

	"github.com/layerforge/slicer/pkg/mesh3d"
)

// unitCube returns the 8-vertex, 12-triangle mesh of [0,1]^3.
func unitCube() *mesh3d.Mesh {
	return &mesh3d.Mesh{
		Vertices: []mesh3d.Vertex3{
			{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
			{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
		},
		Triangles: []mesh3d.Triangle{
			{0, 1, 2}, {0, 2, 3}, // bottom
			{4, 6, 5}, {4, 7, 6}, // top
			{0, 4, 5}, {0, 5, 1}, // front
			{1, 5, 6}, {1, 6, 2}, // right
			{2, 6, 7}, {2, 7, 3}, // back
			{3, 7, 4}, {3, 4, 0}, // left
		},
	}
}

func tetrahedronMesh() *mesh3d.Mesh {
	return &mesh3d.Mesh{
		Vertices: []mesh3d.Vertex3{
			{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {0, 0, 1},
		},
		Triangles: []mesh3d.Triangle{
			{0, 2, 1},
			{0, 1, 3},
			{1, 2, 3},
			{2, 0, 3},
		},
	}
}

func newGraphs(n int) []*Graph {
	gs := make([]*Graph, n)
	for i := range gs {
		gs[i] = NewGraph()
	}
	return gs
}

func TestSliceTrianglesUnitCubeMidLayer(t *testing.T) {
	m := unitCube()
	plan, err := ComputePlan([]*mesh3d.Mesh{m}, 0.25)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	graphs := newGraphs(plan.Layers)
	if err := SliceTriangles(context.Background(), m, graphs, plan, 4); err != nil {
		t.Fatalf("SliceTriangles: %v", err)
	}

	// Layer 1 sits at z=0.25, strictly inside the cube: the four side walls
	// each cross the plane once, so the graph has exactly 4 sites forming
	// one 4-cycle.
	mid := graphs[1]
	if got := mid.Len(); got != 4 {
		t.Fatalf("layer 1: got %d sites, want 4", got)
	}
	assertTwoRegular(t, mid)
}

func TestSliceTrianglesTetrahedronInteriorLayer(t *testing.T) {
	m := tetrahedronMesh()
	plan, err := ComputePlan([]*mesh3d.Mesh{m}, 0.5)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	graphs := newGraphs(plan.Layers)
	if err := SliceTriangles(context.Background(), m, graphs, plan, 2); err != nil {
		t.Fatalf("SliceTriangles: %v", err)
	}

	// z = 0.5 cuts all three slanted faces (Case D each), leaving a single
	// triangular cross-section: 3 sites, each with edge count 2.
	layer := graphs[1]
	if got := layer.Len(); got != 3 {
		t.Fatalf("layer at z=0.5: got %d sites, want 3", got)
	}
	assertTwoRegular(t, layer)
}

func TestSliceTrianglesTetrahedronBaseLayerIsATriangle(t *testing.T) {
	m := tetrahedronMesh()
	plan, err := ComputePlan([]*mesh3d.Mesh{m}, 1.0)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	graphs := newGraphs(plan.Layers)
	if err := SliceTriangles(context.Background(), m, graphs, plan, 2); err != nil {
		t.Fatalf("SliceTriangles: %v", err)
	}

	// z=0 is the base face: that face is fully coplanar with the plane
	// (Case A, contributes nothing), but each of the three slanted faces
	// has exactly two vertices on the plane (its base edge) and one
	// vertex (the apex) above it. That is the two-on-plane case: the
	// base edge itself is the triangle's intersection with the plane,
	// keyed by the two base vertices' VertexKeys. The three base edges
	// together close into the triangle (0,0)-(1,0)-(0,1), matching the
	// tetrahedron's base face exactly.
	base := graphs[0]
	if got := base.Len(); got != 3 {
		t.Fatalf("base layer: got %d sites, want 3", got)
	}
	assertTwoRegular(t, base)

	wantKeys := []SiteKey{VertexKey(0), VertexKey(1), VertexKey(2)}
	for _, k := range wantKeys {
		if _, ok := base.Get(k); !ok {
			t.Errorf("base layer: missing expected vertex site %v", k)
		}
	}
}

func TestSliceTrianglesIdempotent(t *testing.T) {
	m := unitCube()
	plan, err := ComputePlan([]*mesh3d.Mesh{m}, 0.25)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}

	run := func() int {
		graphs := newGraphs(plan.Layers)
		if err := SliceTriangles(context.Background(), m, graphs, plan, 3); err != nil {
			t.Fatalf("SliceTriangles: %v", err)
		}
		return graphs[1].Len()
	}

	first := run()
	second := run()
	if first != second {
		t.Errorf("non-deterministic site count across runs: %d vs %d", first, second)
	}
}

// assertTwoRegular checks invariant L1: every site in a fully-formed
// interior layer has exactly two adjacent sites.
func assertTwoRegular(t *testing.T, g *Graph) {
	t.Helper()
	for _, k := range g.Keys() {
		vd, ok := g.Get(k)
		if !ok {
			t.Fatalf("key %v missing after Keys()", k)
		}
		if vd.EdgeCount != 2 {
			t.Errorf("site %v has edge count %d, want 2", k, vd.EdgeCount)
		}
	}
}
