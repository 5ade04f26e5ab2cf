// Command slicer converts a triangular mesh (Wavefront OBJ) into a stack of
// rasterized cross-section images, one per layer height, for 3D printing.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/layerforge/slicer/pkg/halfedge"
	"github.com/layerforge/slicer/pkg/mesh3d"
	"github.com/layerforge/slicer/pkg/progress"
	"github.com/layerforge/slicer/pkg/sliceerr"
	"github.com/layerforge/slicer/pkg/slicer"
)

var (
	outPrefix     string
	surfaceWidth  int
	surfaceHeight int
	sceneWidth    float64
	sceneHeight   float64
	workers       int
	quiet         bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slicer <input.obj> <dz>",
		Short: "Slice a triangular mesh into per-layer cross-section images",
		Args:  cobra.ExactArgs(2),
		RunE:  runSlice,
	}

	cmd.Flags().StringVar(&outPrefix, "out", "slice", "prefix for the written <prefix><k>.png files")
	cmd.Flags().IntVar(&surfaceWidth, "width", 1920, "output image width in pixels")
	cmd.Flags().IntVar(&surfaceHeight, "height", 1080, "output image height in pixels")
	cmd.Flags().Float64Var(&sceneWidth, "scene-width", 192, "scene width in model units")
	cmd.Flags().Float64Var(&sceneHeight, "scene-height", 108, "scene height in model units")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "worker pool size")
	cmd.Flags().BoolVar(&quiet, "quiet", false, "disable the live progress display")

	return cmd
}

func runSlice(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	if !strings.HasSuffix(strings.ToLower(inputPath), ".obj") {
		return fmt.Errorf("input %q: not a .obj file: %w", inputPath, sliceerr.ErrInvalidInput)
	}

	dz, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("parse dz %q: %w", args[1], sliceerr.ErrInvalidInput)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mesh, err := mesh3d.LoadOBJ(inputPath)
	if err != nil {
		return err
	}
	log.Info("loaded mesh", "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())

	if err := halfedge.Check(mesh); err != nil {
		return fmt.Errorf("mesh validation: %w", err)
	}

	if dir := filepath.Dir(outPrefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory %q: %w: %w", dir, sliceerr.ErrIO, err)
		}
	}

	var reporter progress.Reporter = progress.NullReporter{}
	if !quiet {
		term, err := progress.NewTerminalReporter()
		if err != nil {
			log.Warn("could not start terminal progress display, continuing without it", "error", err)
		} else {
			reporter = term
		}
	}

	engine := &slicer.Engine{
		Meshes:        []*mesh3d.Mesh{mesh},
		DZ:            dz,
		Workers:       workers,
		OutPrefix:     outPrefix,
		SceneWidth:    sceneWidth,
		SceneHeight:   sceneHeight,
		SurfaceWidth:  surfaceWidth,
		SurfaceHeight: surfaceHeight,
		Reporter:      reporter,
		Log:           log,
	}

	results, err := engine.Run(cmd.Context())
	if err != nil {
		return err
	}

	log.Info("slicing complete", "layers", len(results))
	return nil
}
