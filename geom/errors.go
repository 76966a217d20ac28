package geom

import "errors"

var (
	// ErrDegenerate indicates a point set that does not span a plane
	// (fewer than 3 points, coincident or collinear points).
	ErrDegenerate = errors.New("geom: degenerate point set")

	// ErrEigenFailed indicates the covariance eigen decomposition did not converge.
	ErrEigenFailed = errors.New("geom: eigen decomposition failed")
)
