// SPDX-License-Identifier: MIT
// Package: citysolid/builder
//
// options.go: functional options for the builder package.

package builder

import (
	"math/rand"

	"github.com/katalvlaran/citysolid/geom"
)

// BuilderOption customizes a constructor by mutating a builderConfig.
type BuilderOption func(*builderConfig)

// WithSeed creates a new *rand.Rand with the given seed.
func WithSeed(seed int64) BuilderOption {
	return func(c *builderConfig) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) BuilderOption {
	if r == nil {
		panic("builder: WithRand(nil)")
	}
	return func(c *builderConfig) {
		c.rng = r
	}
}

// WithJitter moves every vertex occurrence by a uniform offset in [-a, a] on
// each axis. Panics if a < 0.
func WithJitter(a float64) BuilderOption {
	if a < 0 {
		panic("builder: WithJitter(a<0)")
	}
	return func(c *builderConfig) {
		c.jitter = a
	}
}

// WithOffset translates the fixture by v.
func WithOffset(v geom.Point) BuilderOption {
	return func(c *builderConfig) {
		c.offset = v
	}
}

// WithClosedRings repeats each ring's first point at its end.
func WithClosedRings() BuilderOption {
	return func(c *builderConfig) {
		c.closed = true
	}
}
