// Package sliceerr declares the sentinel error kinds the slicing engine and
// its collaborators report. Callers use errors.Is against these sentinels;
// the engine itself never tries to recover from any of them.
package sliceerr

import "errors"

var (
	// ErrInvalidInput covers CLI usage errors, bad file extensions and an
	// invalid dz.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIO covers file-not-found, unreadable or unwritable conditions.
	ErrIO = errors.New("io error")

	// ErrParse covers malformed geometry files.
	ErrParse = errors.New("parse error")

	// ErrUnsupportedGeometry covers free-form (vp) or line (l) elements in
	// an OBJ file.
	ErrUnsupportedGeometry = errors.New("unsupported geometry")

	// ErrNonManifold is reported when an edge is shared by more than two
	// triangles.
	ErrNonManifold = errors.New("non-manifold surface")

	// ErrInternalInvariant marks a violation of the L1/L2/L3 invariants
	// detected during contouring. It is fatal: the engine never attempts
	// repair.
	ErrInternalInvariant = errors.New("internal invariant violated")
)
