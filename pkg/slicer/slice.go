package slicer

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/layerforge/slicer/pkg/geom2"
	"github.com/layerforge/slicer/pkg/mesh3d"
)

// side classifies a vertex against a slicing plane.
type side int

const (
	below side = -1
	on    side = 0
	above side = 1
)

const planeEpsilon = 1e-9

func classify(z, plane float64) side {
	d := z - plane
	if d > planeEpsilon {
		return above
	}
	if d < -planeEpsilon {
		return below
	}
	return on
}

// SliceTriangles walks every triangle of m once and, for each layer whose
// plane the triangle's z-range straddles, emits that triangle's intersection
// segment (if any) into the corresponding layer's Graph.
//
// Triangles are distributed across a worker pool of size workers; each
// triangle only ever touches the Graphs of the (small number of) layers its
// own z-range spans, so contention on any one Graph's mutex is rare. A
// worker count <= 0 is normalized to 1.
func SliceTriangles(ctx context.Context, m *mesh3d.Mesh, graphs []*Graph, plan Plan, workers int) error {
	if workers <= 0 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for ti := range m.Triangles {
		t := m.Triangles[ti]
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			sliceOneTriangle(m, t, graphs, plan)
			return nil
		})
	}

	return g.Wait()
}

// sliceOneTriangle intersects a single triangle against every layer plane
// its z-range spans and records the resulting segment, if any.
func sliceOneTriangle(m *mesh3d.Mesh, t mesh3d.Triangle, graphs []*Graph, plan Plan) {
	zmin, zmax := m.TriangleBoundsAxis(t, 2)

	kmin := int((zmin - plan.ZMin) / plan.DZ)
	if kmin < 0 {
		kmin = 0
	}
	kmax := int((zmax-plan.ZMin)/plan.DZ) + 1
	if kmax > plan.Layers-1 {
		kmax = plan.Layers - 1
	}

	for k := kmin; k <= kmax; k++ {
		z := plan.Z(k)
		if z < zmin-planeEpsilon || z > zmax+planeEpsilon {
			continue
		}
		sliceTriangleAtPlane(m, t, graphs[k], z)
	}
}

// sliceTriangleAtPlane classifies the triangle's three vertices against the
// plane z and records the emitted segment, following the four cases of the
// reference slicing algorithm:
//
//   - Case A: all three vertices lie on the plane (the triangle is coplanar
//     with it). Degenerate: contributes no segment of its own, since any
//     boundary it has will be carried by a non-coplanar neighbor.
//   - Case B: exactly one vertex lies on the plane and the other two share
//     the same side. The triangle only touches the plane at a point;
//     no segment crosses its interior, so nothing is recorded.
//   - Case C: exactly one vertex lies on the plane and the other two are on
//     opposite sides. The segment runs from the on-plane vertex to the
//     point where the opposite edge crosses the plane.
//   - Two vertices lie on the plane (their shared edge lies in the plane):
//     the segment runs directly between those two vertices, keyed by
//     VertexKey rather than EdgeKey so that the adjacent triangle sharing
//     that same edge (whatever its own apex) contributes adjacencies to the
//     identical pair of sites instead of a distinct edge-keyed pair.
//   - Case D: no vertex lies on the plane and they split two-against-one.
//     The segment runs between the two edges that cross the plane.
func sliceTriangleAtPlane(m *mesh3d.Mesh, t mesh3d.Triangle, g *Graph, z float64) {
	idx := [3]uint32{t.I0, t.I1, t.I2}
	var pos [3]mesh3d.Vertex3
	var sd [3]side
	onCount := 0
	for i := 0; i < 3; i++ {
		pos[i] = m.Position(idx[i])
		sd[i] = classify(pos[i].Z, z)
		if sd[i] == on {
			onCount++
		}
	}

	if onCount == 3 {
		return // Case A
	}

	if onCount == 2 {
		// The edge joining the two on-plane vertices lies in the plane
		// itself, regardless of which side the third (apex) vertex falls
		// on: it is always the triangle's intersection with the plane.
		i0, i1 := onVertexIndices(sd)
		key0 := VertexKey(idx[i0])
		key1 := VertexKey(idx[i1])
		g.InsertSegment(key0, key1, project(pos[i0]), project(pos[i1]))
		return
	}

	if onCount == 1 {
		oi := onVertexIndex(sd)
		a, b := (oi+1)%3, (oi+2)%3
		if sd[a] == sd[b] {
			return // Case B: touches the plane at a single point
		}
		// Case C
		onKey := VertexKey(idx[oi])
		onPos := project(pos[oi])
		otherKey, otherPos := edgeCrossing(idx[a], idx[b], pos[a], pos[b], z)
		g.InsertSegment(onKey, otherKey, onPos, otherPos)
		return
	}

	// Case D: no vertex on-plane, a strict 2-1 split.
	var fs finiteSet
	for e := 0; e < 3; e++ {
		a, b := e, (e+1)%3
		if sd[a] == sd[b] {
			continue
		}
		key, p := edgeCrossing(idx[a], idx[b], pos[a], pos[b], z)
		fs.insert(key, p)
	}
	if fs.n == 2 {
		g.InsertSegment(fs.keys[0], fs.keys[1], fs.pos[0], fs.pos[1])
	}
}

func onVertexIndex(sd [3]side) int {
	for i, s := range sd {
		if s == on {
			return i
		}
	}
	return -1
}

// onVertexIndices returns the indices of the two on-plane vertices, in
// sd's original order. Only valid when exactly two entries of sd equal on.
func onVertexIndices(sd [3]side) (int, int) {
	var found [2]int
	n := 0
	for i, s := range sd {
		if s == on {
			found[n] = i
			n++
		}
	}
	return found[0], found[1]
}

func project(v mesh3d.Vertex3) geom2.Point2 {
	return geom2.P2(v.X, v.Y)
}

// edgeCrossing computes the site key and 2D position where the edge (a, b)
// crosses the plane z, linearly interpolating between the two endpoints.
func edgeCrossing(a, b uint32, pa, pb mesh3d.Vertex3, z float64) (SiteKey, geom2.Point2) {
	t := (z - pa.Z) / (pb.Z - pa.Z)
	p := geom2.P2(
		pa.X+t*(pb.X-pa.X),
		pa.Y+t*(pb.Y-pa.Y),
	)
	return EdgeKey(a, b), p
}
