package slicer

import (
	"sync"

	"github.com/layerforge/slicer/pkg/geom2"
)

// SiteKey identifies an intersection site by the topological feature it
// lies on: a vertex key has its upper 32 bits zero; an edge key packs the
// sorted pair of incident vertex indices into the upper/lower halves.
type SiteKey uint64

// VertexKey builds the site key for a vertex-on-plane intersection.
func VertexKey(v uint32) SiteKey {
	return SiteKey(v)
}

// EdgeKey builds the site key for a strict edge crossing, keyed by the
// unordered pair of incident vertex indices.
func EdgeKey(a, b uint32) SiteKey {
	lo, hi := a, b
	if lo > hi {
		lo, hi = hi, lo
	}
	return SiteKey(uint64(lo)<<32 | uint64(hi))
}

// VertexData is the per-site record in a layer's intersection graph.
type VertexData struct {
	Position  geom2.Point2
	EdgeCount int
	Edges     [2]SiteKey
}

// addEdge records an adjacency from this site to other, incrementing
// EdgeCount. A duplicate of an adjacency already recorded is ignored: an
// edge lying exactly in the slicing plane is reported once by each of its
// two incident triangles, and both reports name the same pair of vertex
// sites, so the second report must not consume a second adjacency slot.
// Only the first two distinct adjacencies are retained; a well-formed
// closed mesh never offers a third (see invariant L1 in spec.md §3).
func (vd *VertexData) addEdge(other SiteKey) {
	for i := 0; i < vd.EdgeCount; i++ {
		if vd.Edges[i] == other {
			return
		}
	}
	if vd.EdgeCount < 2 {
		vd.Edges[vd.EdgeCount] = other
		vd.EdgeCount++
	}
}

// Graph is one layer's intersection graph: a mapping from site key to
// VertexData. It is guarded by a mutex because the reference slicing design
// (spec.md §5, design (a)) iterates triangles once and a triangle spanning
// two layers mutates two layers' graphs concurrently with other workers.
type Graph struct {
	mu    sync.Mutex
	sites map[SiteKey]*VertexData
}

// NewGraph creates an empty per-layer intersection graph.
func NewGraph() *Graph {
	return &Graph{sites: make(map[SiteKey]*VertexData)}
}

// InsertSegment records the two endpoints of one intersection segment and
// their mutual adjacency (invariant L2: a -> b implies b -> a).
func (g *Graph) InsertSegment(a, b SiteKey, posA, posB geom2.Point2) {
	g.mu.Lock()
	defer g.mu.Unlock()

	va := g.entryLocked(a, posA)
	vb := g.entryLocked(b, posB)
	va.addEdge(b)
	vb.addEdge(a)
}

func (g *Graph) entryLocked(key SiteKey, pos geom2.Point2) *VertexData {
	vd, ok := g.sites[key]
	if !ok {
		vd = &VertexData{Position: pos}
		g.sites[key] = vd
	}
	return vd
}

// Len returns the number of sites recorded in the graph.
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.sites)
}

// Get returns the VertexData for key and whether it exists.
func (g *Graph) Get(key SiteKey) (VertexData, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	vd, ok := g.sites[key]
	if !ok {
		return VertexData{}, false
	}
	return *vd, true
}

// Keys returns every site key currently in the graph. Iteration order is
// the Go map's, which spec.md explicitly leaves implementation-defined.
func (g *Graph) Keys() []SiteKey {
	g.mu.Lock()
	defer g.mu.Unlock()
	keys := make([]SiteKey, 0, len(g.sites))
	for k := range g.sites {
		keys = append(keys, k)
	}
	return keys
}

// finiteSet is a fixed-capacity, dedup-by-key container used while
// collecting the intersection sites emitted by a single triangle's edges (spec.md
// §Glossary: "Finite set of size 2").
type finiteSet struct {
	keys [2]SiteKey
	pos  [2]geom2.Point2
	n    int
}

// insert adds (key, pos) if key is not already present and there is room.
// The third and later insertions for distinct keys are silently ignored.
func (s *finiteSet) insert(key SiteKey, pos geom2.Point2) {
	for i := 0; i < s.n; i++ {
		if s.keys[i] == key {
			return
		}
	}
	if s.n < 2 {
		s.keys[s.n] = key
		s.pos[s.n] = pos
		s.n++
	}
}
