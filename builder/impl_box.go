// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// impl_box.go: axis-aligned boxes and their defective variants.
//
// Contract:
//   • dx, dy, dz > 0 (else ErrNonPositiveSize).
//   • Box rings: bottom, top, front (y=0), right (x=dx), back (y=dy), left (x=0).
//   • OpenBox omits the top ring.
//   • SplitRoofBox replaces the top with two halves split at x=dx/2, leaving a
//     T-junction in the front and back walls' top edges.

package builder

import (
	"github.com/katalvlaran/citysolid/geom"
)

const (
	methodBox          = "Box"
	methodOpenBox      = "OpenBox"
	methodSplitRoofBox = "SplitRoofBox"
)

// Box returns the six faces of [0,dx]×[0,dy]×[0,dz].
func Box(dx, dy, dz float64, opts ...BuilderOption) ([]geom.Ring, error) {
	rings, err := boxRings(methodBox, dx, dy, dz)
	if err != nil {
		return nil, err
	}
	return newBuilderConfig(opts...).finish(methodBox, rings)
}

// OpenBox returns a box without its top face: five faces, open along the
// four top edges.
func OpenBox(dx, dy, dz float64, opts ...BuilderOption) ([]geom.Ring, error) {
	rings, err := boxRings(methodOpenBox, dx, dy, dz)
	if err != nil {
		return nil, err
	}
	rings = append(rings[:1], rings[2:]...)
	return newBuilderConfig(opts...).finish(methodOpenBox, rings)
}

// SplitRoofBox returns a box whose top is made of two coplanar halves: seven
// faces.
func SplitRoofBox(dx, dy, dz float64, opts ...BuilderOption) ([]geom.Ring, error) {
	rings, err := boxRings(methodSplitRoofBox, dx, dy, dz)
	if err != nil {
		return nil, err
	}
	mx := dx / 2
	west := geom.Ring{{X: 0, Y: 0, Z: dz}, {X: mx, Y: 0, Z: dz}, {X: mx, Y: dy, Z: dz}, {X: 0, Y: dy, Z: dz}}
	east := geom.Ring{{X: mx, Y: 0, Z: dz}, {X: dx, Y: 0, Z: dz}, {X: dx, Y: dy, Z: dz}, {X: mx, Y: dy, Z: dz}}
	out := []geom.Ring{rings[0], west, east}
	out = append(out, rings[2:]...)
	return newBuilderConfig(opts...).finish(methodSplitRoofBox, out)
}

func boxRings(method string, dx, dy, dz float64) ([]geom.Ring, error) {
	if !(dx > 0) || !(dy > 0) || !(dz > 0) {
		return nil, builderErrorf(method, ErrNonPositiveSize, dx, "×", dy, "×", dz)
	}
	footprint := []geom.Point{{}, {X: dx}, {X: dx, Y: dy}, {Y: dy}}
	return prismRings(footprint, dz)
}
