package slicer

import (
	"errors"
	"testing"

	"github.com/layerforge/slicer/pkg/mesh3d"
	"github.com/layerforge/slicer/pkg/sliceerr"
)

func meshWithZRange(zmin, zmax float64) *mesh3d.Mesh {
	return &mesh3d.Mesh{
		Vertices: []mesh3d.Vertex3{{0, 0, zmin}, {1, 0, zmax}},
	}
}

func TestComputePlanUnitCube(t *testing.T) {
	m := meshWithZRange(0, 1)
	plan, err := ComputePlan([]*mesh3d.Mesh{m}, 0.25)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	if plan.ZMin != 0 || plan.ZMax != 1 {
		t.Errorf("got ZMin=%v ZMax=%v", plan.ZMin, plan.ZMax)
	}
	// floor((1-0)/0.25) + 1 = 4 + 1 = 5
	if plan.Layers != 5 {
		t.Errorf("got Layers=%d, want 5", plan.Layers)
	}
	if got := plan.Z(1); got != 0.25 {
		t.Errorf("Z(1)=%v, want 0.25", got)
	}
}

func TestComputePlanNonExactDivision(t *testing.T) {
	m := meshWithZRange(0, 1)
	plan, err := ComputePlan([]*mesh3d.Mesh{m}, 0.3)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	// floor(1/0.3)+1 = floor(3.333)+1 = 3+1 = 4; top triangles still land
	// in at least one slice even though 1.0 isn't a multiple of 0.3.
	if plan.Layers != 4 {
		t.Errorf("got Layers=%d, want 4", plan.Layers)
	}
}

func TestComputePlanMultipleMeshes(t *testing.T) {
	a := meshWithZRange(-1, 0)
	b := meshWithZRange(0.5, 2)
	plan, err := ComputePlan([]*mesh3d.Mesh{a, b}, 0.5)
	if err != nil {
		t.Fatalf("ComputePlan: %v", err)
	}
	if plan.ZMin != -1 || plan.ZMax != 2 {
		t.Errorf("got ZMin=%v ZMax=%v", plan.ZMin, plan.ZMax)
	}
}

func TestComputePlanInvalidDZ(t *testing.T) {
	m := meshWithZRange(0, 1)
	for _, dz := range []float64{0, -1} {
		_, err := ComputePlan([]*mesh3d.Mesh{m}, dz)
		if !errors.Is(err, sliceerr.ErrInvalidInput) {
			t.Errorf("dz=%v: got %v, want ErrInvalidInput", dz, err)
		}
	}
}

func TestComputePlanEmptyMeshList(t *testing.T) {
	_, err := ComputePlan(nil, 0.25)
	if !errors.Is(err, sliceerr.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}

func TestComputePlanEmptyMesh(t *testing.T) {
	_, err := ComputePlan([]*mesh3d.Mesh{{}}, 0.25)
	if !errors.Is(err, sliceerr.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
}
