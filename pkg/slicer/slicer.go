package slicer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/layerforge/slicer/pkg/geom2"
	"github.com/layerforge/slicer/pkg/mesh3d"
	"github.com/layerforge/slicer/pkg/progress"
	"github.com/layerforge/slicer/pkg/raster"
)

// Engine drives the full plan -> slice -> contour -> rasterize pipeline
// over a set of input meshes.
type Engine struct {
	Meshes  []*mesh3d.Mesh
	DZ      float64
	Workers int

	// OutPrefix is prepended to each layer's index to name its output
	// file: "<OutPrefix><k>.png". It may include a directory component
	// (e.g. "out/slice"); the caller is responsible for that directory
	// already existing.
	OutPrefix                   string
	SceneWidth, SceneHeight     float64
	SurfaceWidth, SurfaceHeight int

	Reporter progress.Reporter
	Log      *slog.Logger
}

// LayerResult is the rasterized output of one layer.
type LayerResult struct {
	Index    int
	Z        float64
	Path     string
	Coverage float64
}

// Run executes all three pipeline phases in sequence and writes one
// "<OutPrefix><k>.png" per layer. The slicing and contour phases are fanned
// out across Engine.Workers goroutines; the rasterization phase renders the
// layers one at a time, in layer order, on the calling goroutine.
func (e *Engine) Run(ctx context.Context) ([]LayerResult, error) {
	reporter := e.Reporter
	if reporter == nil {
		reporter = progress.NullReporter{}
	}
	log := e.Log
	if log == nil {
		log = slog.Default()
	}
	defer func() {
		if err := reporter.Close(); err != nil {
			log.Warn("closing progress reporter", "error", err)
		}
	}()

	plan, err := ComputePlan(e.Meshes, e.DZ)
	if err != nil {
		return nil, fmt.Errorf("compute plan: %w", err)
	}
	log.Info("computed layer plan", "layers", plan.Layers, "zmin", plan.ZMin, "zmax", plan.ZMax)

	graphs := make([]*Graph, plan.Layers)
	for i := range graphs {
		graphs[i] = NewGraph()
	}

	reporter.Phase("slicing triangles")
	start := time.Now()
	for mi, m := range e.Meshes {
		if err := SliceTriangles(ctx, m, graphs, plan, e.Workers); err != nil {
			return nil, fmt.Errorf("slice mesh %d: %w", mi, err)
		}
		reporter.Update(float64(mi+1) / float64(len(e.Meshes)))
	}
	log.Info("sliced triangles", "elapsed", time.Since(start))

	reporter.Phase("building contours")
	start = time.Now()
	layerContours, err := BuildContours(ctx, graphs, e.Workers)
	if err != nil {
		return nil, fmt.Errorf("build contours: %w", err)
	}
	log.Info("built contours", "elapsed", time.Since(start))

	reporter.Phase("rasterizing layers")
	start = time.Now()
	results := make([]LayerResult, plan.Layers)
	transform := geom2.NewTransform(e.SceneWidth, e.SceneHeight, e.SurfaceWidth, e.SurfaceHeight)
	for k := 0; k < plan.Layers; k++ {
		res, err := e.rasterizeLayer(k, plan.Z(k), layerContours[k], transform)
		if err != nil {
			return nil, fmt.Errorf("rasterize layer %d: %w", k, err)
		}
		results[k] = res
		reporter.Update(float64(k+1) / float64(plan.Layers))
	}
	log.Info("rasterized layers", "elapsed", time.Since(start))

	return results, nil
}

func (e *Engine) rasterizeLayer(index int, z float64, contours []Contour, transform geom2.Transform) (LayerResult, error) {
	surface := raster.NewSurface(e.SurfaceWidth, e.SurfaceHeight)
	surface.Paint()
	surface.SetTransform(transform)
	surface.BeginPath()
	for _, c := range contours {
		if len(c.Points) == 0 {
			continue
		}
		surface.MoveTo(c.Points[0])
		for _, p := range c.Points[1:] {
			surface.LineTo(p)
		}
	}
	coverage := surface.Fill()

	path := fmt.Sprintf("%s%d.png", e.OutPrefix, index)
	if err := surface.WritePNG(path); err != nil {
		return LayerResult{}, err
	}

	return LayerResult{Index: index, Z: z, Path: path, Coverage: coverage}, nil
}
