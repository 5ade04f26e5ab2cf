// Package geom2 provides 2D geometric primitives for the slicing engine.
package geom2

import "math"

// Point2 is an ordered pair of doubles in the slicing plane.
type Point2 struct {
	X, Y float64
}

// P2 creates a new Point2.
func P2(x, y float64) Point2 {
	return Point2{x, y}
}

// Add returns the vector sum a + b.
func (a Point2) Add(b Point2) Point2 {
	return Point2{a.X + b.X, a.Y + b.Y}
}

// Sub returns the vector difference a - b.
func (a Point2) Sub(b Point2) Point2 {
	return Point2{a.X - b.X, a.Y - b.Y}
}

// Scale returns the scalar product a * s.
func (a Point2) Scale(s float64) Point2 {
	return Point2{a.X * s, a.Y * s}
}

// Lerp returns the linear interpolation between a and b by t.
func (a Point2) Lerp(b Point2, t float64) Point2 {
	return Point2{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
	}
}

// Distance returns the Euclidean distance between two points.
func (a Point2) Distance(b Point2) float64 {
	return a.Sub(b).Len()
}

// Len returns the length (magnitude) of the vector.
func (a Point2) Len() float64 {
	return math.Sqrt(a.X*a.X + a.Y*a.Y)
}

// Transform is the affine map used to place a layer's polygons onto a
// raster surface: scale from world units to pixels, then translate so the
// world origin lands on the image center. Applying Scale then Translate (in
// that order) matches the cairo_translate/cairo_scale CTM composition the
// original slicer used: device = Scale(world) + Translate.
type Transform struct {
	TX, TY float64 // translation, in surface (pixel) units
	SX, SY float64 // scale, surface units per world unit
}

// Identity returns the affine identity transform.
func Identity() Transform {
	return Transform{SX: 1, SY: 1}
}

// NewTransform builds the translate-to-center/scale-to-pixels transform for
// a world-unit scene of size (sceneW, sceneH) rendered into a pixel surface
// of size (surfaceW, surfaceH), centered at the world origin.
func NewTransform(sceneW, sceneH float64, surfaceW, surfaceH int) Transform {
	return Transform{
		TX: float64(surfaceW) / 2,
		TY: float64(surfaceH) / 2,
		SX: float64(surfaceW) / sceneW,
		SY: float64(surfaceH) / sceneH,
	}
}

// Apply maps a world-space point to surface space.
func (t Transform) Apply(p Point2) Point2 {
	return Point2{
		X: p.X*t.SX + t.TX,
		Y: p.Y*t.SY + t.TY,
	}
}
