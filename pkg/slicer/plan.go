package slicer

import (
	"fmt"
	"math"

	"github.com/layerforge/slicer/pkg/mesh3d"
	"github.com/layerforge/slicer/pkg/sliceerr"
)

// Plan is the result of Bounds & Layer Planning: the global z-extent of the
// input meshes and the derived layer count.
type Plan struct {
	ZMin, ZMax float64
	DZ         float64
	Layers     int // L = floor((zmax-zmin)/dz) + 1
}

// Z returns the height of layer k.
func (p Plan) Z(k int) float64 {
	return p.ZMin + float64(k)*p.DZ
}

// ComputePlan computes the global z-range over all input meshes and derives
// the number of layers and their heights.
//
// Fails with sliceerr.ErrInvalidInput when dz <= 0, when any mesh is empty,
// or when the resulting zmax < zmin.
func ComputePlan(meshes []*mesh3d.Mesh, dz float64) (Plan, error) {
	if dz <= 0 {
		return Plan{}, fmt.Errorf("dz must be > 0, got %v: %w", dz, sliceerr.ErrInvalidInput)
	}
	if len(meshes) == 0 {
		return Plan{}, fmt.Errorf("no input meshes: %w", sliceerr.ErrInvalidInput)
	}

	zmin, zmax := math.Inf(1), math.Inf(-1)
	for i, m := range meshes {
		if m.VertexCount() == 0 {
			return Plan{}, fmt.Errorf("mesh %d is empty: %w", i, sliceerr.ErrInvalidInput)
		}
		mmin, mmax := m.BoundsAxis(2)
		zmin = math.Min(zmin, mmin)
		zmax = math.Max(zmax, mmax)
	}

	if zmax < zmin {
		return Plan{}, fmt.Errorf("zmax (%v) < zmin (%v): %w", zmax, zmin, sliceerr.ErrInvalidInput)
	}

	layers := int(math.Floor((zmax-zmin)/dz)) + 1

	return Plan{ZMin: zmin, ZMax: zmax, DZ: dz, Layers: layers}, nil
}
