// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// impl_gabled.go: a rectangular house with a gable roof.
//
// Contract:
//   • dx, dy, eave > 0 and ridge > eave (else ErrNonPositiveSize).
//   • The ridge runs along X at y = dy/2.
//   • Rings: bottom, front wall (y=0), back wall (y=dy), left gable (x=0),
//     right gable (x=dx), front roof, back roof. Every ring winds
//     counter-clockwise seen from outside.

package builder

import (
	"github.com/katalvlaran/citysolid/geom"
)

const methodGabledHouse = "GabledHouse"

// GabledHouse returns the seven faces of a gabled house over [0,dx]×[0,dy].
func GabledHouse(dx, dy, eave, ridge float64, opts ...BuilderOption) ([]geom.Ring, error) {
	if !(dx > 0) || !(dy > 0) || !(eave > 0) || !(ridge > eave) {
		return nil, builderErrorf(methodGabledHouse, ErrNonPositiveSize, dx, "×", dy, " eave ", eave, " ridge ", ridge)
	}
	my := dy / 2
	rings := []geom.Ring{
		{{}, {Y: dy}, {X: dx, Y: dy}, {X: dx}},
		{{}, {X: dx}, {X: dx, Z: eave}, {Z: eave}},
		{{X: dx, Y: dy}, {Y: dy}, {Y: dy, Z: eave}, {X: dx, Y: dy, Z: eave}},
		{{Y: dy}, {}, {Z: eave}, {Y: my, Z: ridge}, {Y: dy, Z: eave}},
		{{X: dx}, {X: dx, Y: dy}, {X: dx, Y: dy, Z: eave}, {X: dx, Y: my, Z: ridge}, {X: dx, Z: eave}},
		{{Z: eave}, {X: dx, Z: eave}, {X: dx, Y: my, Z: ridge}, {Y: my, Z: ridge}},
		{{X: dx, Y: dy, Z: eave}, {Y: dy, Z: eave}, {Y: my, Z: ridge}, {X: dx, Y: my, Z: ridge}},
	}
	return newBuilderConfig(opts...).finish(methodGabledHouse, rings)
}
