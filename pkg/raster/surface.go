// Package raster rasterizes closed 2D polygons to a single-channel alpha
// surface using the even-odd fill rule, with no antialiasing, mirroring a
// Cairo ARGB32/A8 surface used purely as a coverage mask.
package raster

import (
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/layerforge/slicer/pkg/geom2"
	"github.com/layerforge/slicer/pkg/sliceerr"
)

// subpath is one closed polygon's points, already mapped through the
// surface's transform into device pixel space.
type subpath struct {
	points []geom2.Point2
}

// Surface is a fixed-size drawing target backed by an 8-bit alpha channel.
// It mirrors a small slice of a 2D vector-graphics surface's contract
// (set_transform / begin_path / move_to / line_to / fill / pixels /
// write_png) rather than depending on a full vector-graphics library, since
// the even-odd fill is the one piece of domain logic this package exists
// to own.
type Surface struct {
	width, height int
	img           *image.Alpha
	transform     geom2.Transform
	paths         []subpath
	current       *subpath
}

// NewSurface allocates a width x height alpha surface, fully transparent.
func NewSurface(width, height int) *Surface {
	return &Surface{
		width:     width,
		height:    height,
		img:       image.NewAlpha(image.Rect(0, 0, width, height)),
		transform: geom2.Identity(),
	}
}

// SetTransform installs the scene-to-device transform applied to every
// point given to MoveTo/LineTo from this call onward.
func (s *Surface) SetTransform(t geom2.Transform) {
	s.transform = t
}

// Paint clears the entire surface to zero coverage (alpha 0), the
// background a layer's contours are then filled on top of. image.NewAlpha
// already zero-initializes its pixel buffer, so Paint is only needed to
// reset a Surface that has already been drawn on for reuse.
func (s *Surface) Paint() {
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
}

// BeginPath discards any in-progress path and starts a fresh set of
// subpaths to be filled together by the next Fill call.
func (s *Surface) BeginPath() {
	s.paths = nil
	s.current = nil
}

// MoveTo starts a new subpath at p (in scene coordinates).
func (s *Surface) MoveTo(p geom2.Point2) {
	s.paths = append(s.paths, subpath{points: []geom2.Point2{s.transform.Apply(p)}})
	s.current = &s.paths[len(s.paths)-1]
}

// LineTo appends p (in scene coordinates) to the current subpath.
func (s *Surface) LineTo(p geom2.Point2) {
	if s.current == nil {
		s.MoveTo(p)
		return
	}
	s.current.points = append(s.current.points, s.transform.Apply(p))
}

// Fill rasterizes every subpath accumulated since BeginPath using the
// even-odd rule with no antialiasing (a pixel's center sample decides
// in/out) and returns the fraction of the surface's pixels now covered.
func (s *Surface) Fill() float64 {
	covered := fillEvenOdd(s.img, s.paths)
	total := s.width * s.height
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total)
}

// Pixels returns the underlying alpha image.
func (s *Surface) Pixels() *image.Alpha {
	return s.img
}

// WritePNG encodes the surface as a grayscale PNG at path.
func (s *Surface) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w: %w", path, sliceerr.ErrIO, err)
	}
	defer f.Close()

	gray := image.NewGray(s.img.Rect)
	for i, a := range s.img.Pix {
		gray.Pix[i] = a
	}

	if err := png.Encode(f, gray); err != nil {
		return fmt.Errorf("encode %q: %w: %w", path, sliceerr.ErrIO, err)
	}
	return nil
}
