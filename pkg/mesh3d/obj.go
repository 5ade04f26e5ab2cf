package mesh3d

import (
	"bufio"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/layerforge/slicer/pkg/sliceerr"
)

// LoadOBJ parses a wavefront-style text mesh: one directive per line.
//
//	v x y z        appends a vertex (1-indexed from first occurrence)
//	f a b c [d]     appends a triangle; quads split into (a,b,c) and (a,c,d)
//	vt, vn, g, #    ignored
//	vp, l           rejected with sliceerr.ErrUnsupportedGeometry
//
// Unknown directives are skipped with a logged warning.
func LoadOBJ(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w: %w", path, sliceerr.ErrIO, err)
	}
	defer f.Close()

	m := &Mesh{}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			vtx, err := parseVertex(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %w", lineNo, sliceerr.ErrParse, err)
			}
			m.Vertices = append(m.Vertices, vtx)

		case "f":
			tris, err := parseFace(fields[1:], len(m.Vertices))
			if err != nil {
				return nil, fmt.Errorf("line %d: %w: %w", lineNo, sliceerr.ErrParse, err)
			}
			m.Triangles = append(m.Triangles, tris...)

		case "vt", "vn", "g", "#":
			// ignored

		case "vp", "l":
			return nil, fmt.Errorf("line %d: directive %q: %w", lineNo, fields[0], sliceerr.ErrUnsupportedGeometry)

		default:
			slog.Warn("skipping unknown OBJ directive", "line", lineNo, "directive", fields[0])
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %q: %w: %w", path, sliceerr.ErrIO, err)
	}

	if len(m.Vertices) > math.MaxUint32 {
		return nil, fmt.Errorf("mesh has %d vertices, exceeds 2^32: %w", len(m.Vertices), sliceerr.ErrInvalidInput)
	}

	return m, nil
}

func parseVertex(fields []string) (Vertex3, error) {
	if len(fields) < 3 {
		return Vertex3{}, fmt.Errorf("v directive needs 3 coordinates, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return Vertex3{}, fmt.Errorf("parse x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return Vertex3{}, fmt.Errorf("parse y: %w", err)
	}
	z, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return Vertex3{}, fmt.Errorf("parse z: %w", err)
	}
	return Vertex3{X: x, Y: y, Z: z}, nil
}

// parseFace parses the 1-based vertex indices of an `f` directive (ignoring
// any /vt/vn suffix) and splits a quad into two triangles.
func parseFace(fields []string, vertexCount int) ([]Triangle, error) {
	if len(fields) != 3 && len(fields) != 4 {
		return nil, fmt.Errorf("f directive needs 3 or 4 vertex indices, got %d", len(fields))
	}

	idx := make([]uint32, len(fields))
	for i, field := range fields {
		raw := field
		if slash := strings.IndexByte(field, '/'); slash >= 0 {
			raw = field[:slash]
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("parse face index %q: %w", field, err)
		}
		if n < 1 || n > vertexCount {
			return nil, fmt.Errorf("face index %d out of range [1,%d]", n, vertexCount)
		}
		idx[i] = uint32(n - 1)
	}

	tris := []Triangle{{idx[0], idx[1], idx[2]}}
	if len(idx) == 4 {
		tris = append(tris, Triangle{idx[0], idx[2], idx[3]})
	}
	return tris, nil
}
