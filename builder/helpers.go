// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// helpers.go: shared helpers for constructors.

package builder

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/katalvlaran/citysolid/geom"
)

// builderErrorf wraps a sentinel with the constructor name.
func builderErrorf(method string, err error, args ...any) error {
	if len(args) == 0 {
		return fmt.Errorf("%s: %w", method, err)
	}
	return fmt.Errorf("%s: %s: %w", method, fmt.Sprint(args...), err)
}

// footprintArea returns the signed XY area of a footprint, negative when it
// winds clockwise seen from +Z.
func footprintArea(fp geom.Ring) float64 {
	r := make(orb.Ring, len(fp))
	for i, p := range fp {
		r[i] = orb.Point{p.X, p.Y}
	}
	return planar.Area(r)
}
