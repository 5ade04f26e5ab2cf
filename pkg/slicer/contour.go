package slicer

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/layerforge/slicer/pkg/geom2"
	"github.com/layerforge/slicer/pkg/sliceerr"
)

// Contour is one closed polygon boundary on a single layer.
type Contour struct {
	Points []geom2.Point2
}

// BuildContours walks each layer's intersection graph once per layer,
// fanning layers out across a worker pool, and returns every closed polygon
// found, one []Contour per layer in layer order.
//
// Each layer's graph must already satisfy invariant L1 (every site has
// exactly two adjacent sites) from the Triangle Slicer phase; BuildContours
// reports sliceerr.ErrInternalInvariant if it does not, which happens for
// example when the sliced mesh is not closed.
func BuildContours(ctx context.Context, graphs []*Graph, workers int) ([][]Contour, error) {
	if workers <= 0 {
		workers = 1
	}

	results := make([][]Contour, len(graphs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for li := range graphs {
		li := li
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			contours, err := walkLayer(graphs[li])
			if err != nil {
				return fmt.Errorf("layer %d: %w", li, err)
			}
			results[li] = contours
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// walkLayer closes every polygon in a single layer's intersection graph by
// repeatedly picking an unvisited site and following its two adjacencies
// (prev/curr) until the walk returns to the start.
func walkLayer(g *Graph) ([]Contour, error) {
	visited := make(map[SiteKey]bool, g.Len())
	var contours []Contour

	for _, start := range g.Keys() {
		if visited[start] {
			continue
		}
		contour, err := walkOneContour(g, start, visited)
		if err != nil {
			return nil, err
		}
		contours = append(contours, contour)
	}

	return contours, nil
}

// walkOneContour follows the 2-regular graph starting at start, choosing at
// each step the adjacency that isn't where the walk just came from, until it
// arrives back at start.
func walkOneContour(g *Graph, start SiteKey, visited map[SiteKey]bool) (Contour, error) {
	var contour Contour

	prev := SiteKey(0)
	havePrev := false
	curr := start

	for {
		vd, ok := g.Get(curr)
		if !ok {
			return Contour{}, fmt.Errorf("site %v vanished mid-walk: %w", curr, sliceerr.ErrInternalInvariant)
		}
		if vd.EdgeCount != 2 {
			return Contour{}, fmt.Errorf("site %v has edge count %d, want 2: %w", curr, vd.EdgeCount, sliceerr.ErrInternalInvariant)
		}

		visited[curr] = true
		contour.Points = append(contour.Points, vd.Position)

		// Step to whichever adjacency isn't where we just came from; on the
		// very first step there is no "came from" yet, so take Edges[0].
		next := vd.Edges[0]
		if havePrev && next == prev {
			next = vd.Edges[1]
		}

		prev = curr
		curr = next
		havePrev = true

		if curr == start {
			break
		}
		if visited[curr] {
			return Contour{}, fmt.Errorf("walk re-entered site %v without returning to start %v: %w", curr, start, sliceerr.ErrInternalInvariant)
		}
	}

	return contour, nil
}
