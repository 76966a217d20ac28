// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// impl_prism.go: extruded footprint (LOD1 block model).
//
// Contract:
//   • footprint has ≥ 3 distinct XY points (else ErrTooFewVertices); Z is ignored.
//   • height > 0 (else ErrNonPositiveSize).
//   • Ring order: bottom, top, then one wall per footprint edge.
//   • Footprint orientation does not matter; walls face outward.

package builder

import (
	"github.com/katalvlaran/citysolid/geom"
)

const (
	methodPrism      = "Prism"
	minPrismVertices = 3
)

// Prism extrudes footprint from z=0 to z=height.
func Prism(footprint []geom.Point, height float64, opts ...BuilderOption) ([]geom.Ring, error) {
	cfg := newBuilderConfig(opts...)
	rings, err := prismRings(footprint, height)
	if err != nil {
		return nil, err
	}
	return cfg.finish(methodPrism, rings)
}

func prismRings(footprint []geom.Point, height float64) ([]geom.Ring, error) {
	fp := geom.Ring(footprint).Flatten().Normalize()
	if fp.DistinctCount() < minPrismVertices {
		return nil, builderErrorf(methodPrism, ErrTooFewVertices, "footprint")
	}
	if !(height > 0) {
		return nil, builderErrorf(methodPrism, ErrNonPositiveSize, "height")
	}
	if footprintArea(fp) < 0 {
		fp = fp.Reverse()
	}

	n := len(fp)
	top := make(geom.Ring, n)
	for i, p := range fp {
		top[i] = geom.Point{X: p.X, Y: p.Y, Z: height}
	}
	rings := make([]geom.Ring, 0, n+2)
	rings = append(rings, fp.Reverse(), top)
	for i := 0; i < n; i++ {
		a, b := fp[i], fp[(i+1)%n]
		rings = append(rings, geom.Ring{
			a,
			b,
			{X: b.X, Y: b.Y, Z: height},
			{X: a.X, Y: a.Y, Z: height},
		})
	}
	return rings, nil
}
