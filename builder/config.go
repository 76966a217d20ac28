// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// config.go: internal configuration and deterministic defaults.
//
// Defaults: no RNG, no jitter, no offset, open rings.

package builder

import (
	"math/rand"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/geom"
)

type builderConfig struct {
	rng    *rand.Rand
	jitter float64
	offset geom.Point
	closed bool
}

func newBuilderConfig(opts ...BuilderOption) builderConfig {
	var cfg builderConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// finish applies offset, jitter and ring closure in that order.
func (c builderConfig) finish(method string, rings []geom.Ring) ([]geom.Ring, error) {
	if c.jitter > 0 && c.rng == nil {
		return nil, builderErrorf(method, ErrNeedRandSource)
	}
	out := make([]geom.Ring, len(rings))
	for i, r := range rings {
		ring := make(geom.Ring, 0, len(r)+1)
		for _, p := range r {
			p = r3.Add(p, c.offset)
			if c.jitter > 0 {
				p = r3.Add(p, geom.Point{
					X: (2*c.rng.Float64() - 1) * c.jitter,
					Y: (2*c.rng.Float64() - 1) * c.jitter,
					Z: (2*c.rng.Float64() - 1) * c.jitter,
				})
			}
			ring = append(ring, p)
		}
		if c.closed && len(ring) > 0 {
			ring = append(ring, ring[0])
		}
		out[i] = ring
	}
	return out, nil
}
