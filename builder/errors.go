// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// errors.go: sentinel errors for the builder package.

package builder

import "errors"

// ErrTooFewVertices indicates a footprint with fewer than 3 distinct points.
var ErrTooFewVertices = errors.New("builder: too few vertices")

// ErrNonPositiveSize indicates a box dimension or prism height <= 0.
var ErrNonPositiveSize = errors.New("builder: size must be positive")

// ErrNeedRandSource indicates WithJitter was used without an RNG.
var ErrNeedRandSource = errors.New("builder: jitter requires an RNG (use WithSeed)")
