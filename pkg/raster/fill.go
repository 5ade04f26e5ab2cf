package raster

import (
	"image"
	"image/color"
	"sort"
)

// edge is one directed segment of a subpath in device pixel space, used by
// the scanline fill below.
type edge struct {
	y0, y1 float64
	x0, x1 float64
}

// fillEvenOdd paints full coverage (alpha 255) over every pixel whose
// center lies inside an odd number of the given subpaths' edges, using the
// standard even-odd scanline algorithm. No antialiasing is performed: a
// pixel is either fully covered or not, matching ANTIALIAS_NONE.
//
// Running the crossing count across all subpaths together, rather than one
// subpath at a time, is what makes a "hole" subpath (wound the opposite way
// from its containing outer boundary) subtract its interior instead of
// adding a second disjoint fill: a point inside both the outer and inner
// boundary crosses two edges total, an even count, so it is left uncovered.
func fillEvenOdd(img *image.Alpha, paths []subpath) int {
	edges := collectEdges(paths)
	if len(edges) == 0 {
		return 0
	}

	bounds := img.Bounds()
	covered := 0

	var xs []float64
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		scanY := float64(py) + 0.5
		xs = xs[:0]
		for _, e := range edges {
			if x, ok := e.crossingX(scanY); ok {
				xs = append(xs, x)
			}
		}
		if len(xs) == 0 {
			continue
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			covered += fillSpan(img, py, xs[i], xs[i+1])
		}
	}

	return covered
}

// crossingX returns the x coordinate where e crosses the horizontal line
// y = scanY, using a half-open [ymin, ymax) test on the edge's y-extent
// (whichever of y0, y1 is smaller comes first) so a vertex that one edge
// passes through into the next is counted exactly once.
func (e edge) crossingX(scanY float64) (float64, bool) {
	ymin, ymax := e.y0, e.y1
	if ymin > ymax {
		ymin, ymax = ymax, ymin
	}
	if scanY < ymin || scanY >= ymax {
		return 0, false
	}
	t := (scanY - e.y0) / (e.y1 - e.y0)
	return e.x0 + t*(e.x1-e.x0), true
}

func collectEdges(paths []subpath) []edge {
	var edges []edge
	for _, sp := range paths {
		n := len(sp.points)
		if n < 2 {
			continue
		}
		for i := 0; i < n; i++ {
			a := sp.points[i]
			b := sp.points[(i+1)%n]
			if a.Y == b.Y {
				continue // horizontal edges never cross a scanline
			}
			edges = append(edges, edge{y0: a.Y, y1: b.Y, x0: a.X, x1: b.X})
		}
	}
	return edges
}

// fillSpan sets alpha 255 for every pixel in row py whose center falls in
// [x0, x1), and returns how many pixels it touched.
func fillSpan(img *image.Alpha, py int, x0, x1 float64) int {
	bounds := img.Bounds()
	px0 := int(x0 + 0.5)
	px1 := int(x1 + 0.5)
	if px0 < bounds.Min.X {
		px0 = bounds.Min.X
	}
	if px1 > bounds.Max.X {
		px1 = bounds.Max.X
	}
	n := 0
	for px := px0; px < px1; px++ {
		img.SetAlpha(px, py, color.Alpha{A: 255})
		n++
	}
	return n
}
