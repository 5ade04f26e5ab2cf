// Package halfedge checks closedness/manifoldness of a mesh3d.Mesh before
// it is handed to the slicing engine.
//
// The core slicing engine never walks half-edges or does
// neighbor-of-neighbor queries, so the full half-edge graph
// (vertex/edge/face/corner/half-edge cross-links) is not built here. Only
// the bookkeeping needed to detect "edge shared by more than two triangles"
// and "edge shared by fewer than two triangles" (an open boundary) survives.
package halfedge

import (
	"fmt"

	"github.com/layerforge/slicer/pkg/mesh3d"
	"github.com/layerforge/slicer/pkg/sliceerr"
)

type edgeKey struct {
	lo, hi uint32
}

func makeEdgeKey(a, b uint32) edgeKey {
	if a < b {
		return edgeKey{a, b}
	}
	return edgeKey{b, a}
}

// Check walks every triangle edge of m and reports sliceerr.ErrNonManifold
// wrapped with the offending vertex pair the first time a third triangle
// claims an already-twinned edge, or a plain error that wraps no sentinel if
// the mesh has an open boundary (some edge touched by only one triangle).
func Check(m *mesh3d.Mesh) error {
	counts := make(map[edgeKey]int, 3*m.TriangleCount())

	for _, t := range m.Triangles {
		idx := [3]uint32{t.I0, t.I1, t.I2}
		for e := 0; e < 3; e++ {
			a := idx[e]
			b := idx[(e+1)%3]
			key := makeEdgeKey(a, b)
			counts[key]++
			if counts[key] > 2 {
				return fmt.Errorf("edge {%d,%d} shared by more than two triangles: %w", key.lo, key.hi, sliceerr.ErrNonManifold)
			}
		}
	}

	for key, n := range counts {
		if n != 2 {
			return fmt.Errorf("edge {%d,%d} is a boundary edge (mesh is not closed)", key.lo, key.hi)
		}
	}

	return nil
}
