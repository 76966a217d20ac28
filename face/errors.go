package face

import "errors"

var (
	// ErrTooFewPoints indicates a ring with fewer than 3 distinct points.
	ErrTooFewPoints = errors.New("face: ring has fewer than 3 distinct points")

	// ErrNoTriangles indicates that fan triangulation produced no face.
	ErrNoTriangles = errors.New("face: triangulation produced no face")
)
