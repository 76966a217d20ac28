package builder_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/citysolid/builder"
	"github.com/katalvlaran/citysolid/geom"
)

func TestBox_FacesPointOutward(t *testing.T) {
	rings, err := builder.Box(2, 3, 4)
	require.NoError(t, err)
	require.Len(t, rings, 6)

	center := geom.Point{X: 1, Y: 1.5, Z: 2}
	for i, r := range rings {
		n := geom.NewellNormal(r)
		require.Greater(t, r3.Norm(n), 0.0, "ring %d", i)
		out := r3.Sub(geom.Centroid(r), center)
		require.Greater(t, r3.Dot(n, out), 0.0, "ring %d faces inward", i)
	}
}

func TestPrism_ClockwiseFootprint(t *testing.T) {
	cw := []geom.Point{{}, {Y: 1}, {X: 1, Y: 1}, {X: 1}}
	rings, err := builder.Prism(cw, 3)
	require.NoError(t, err)
	require.Len(t, rings, 6)
	require.Less(t, geom.NewellNormal(rings[0]).Z, 0.0)
	require.Greater(t, geom.NewellNormal(rings[1]).Z, 0.0)
}

func TestPrism_ConcaveFootprintEitherWinding(t *testing.T) {
	ccw := []geom.Point{{}, {X: 4}, {X: 4, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 3}, {Y: 3}}
	cw := geom.Ring(ccw).Reverse()
	for name, fp := range map[string][]geom.Point{"ccw": ccw, "cw": cw} {
		rings, err := builder.Prism(fp, 2)
		require.NoError(t, err, name)
		require.Len(t, rings, 8, name)
		require.InDelta(t, -12.0, geom.NewellNormal(rings[0]).Z, 1e-12, name)
		require.InDelta(t, 12.0, geom.NewellNormal(rings[1]).Z, 1e-12, name)
	}
}

func TestPrism_Errors(t *testing.T) {
	_, err := builder.Prism([]geom.Point{{}, {X: 1}}, 1)
	require.ErrorIs(t, err, builder.ErrTooFewVertices)

	_, err = builder.Prism([]geom.Point{{}, {X: 1}, {Y: 1}}, 0)
	require.ErrorIs(t, err, builder.ErrNonPositiveSize)

	_, err = builder.Box(1, -1, 1)
	require.ErrorIs(t, err, builder.ErrNonPositiveSize)
}

func TestVariants(t *testing.T) {
	open, err := builder.OpenBox(1, 1, 1)
	require.NoError(t, err)
	require.Len(t, open, 5)

	split, err := builder.SplitRoofBox(2, 1, 1)
	require.NoError(t, err)
	require.Len(t, split, 7)
	require.Equal(t, geom.Point{X: 1, Y: 0, Z: 1}, split[1][1])
}

func TestOptions(t *testing.T) {
	rings, err := builder.Box(1, 1, 1, builder.WithClosedRings(), builder.WithOffset(geom.Point{X: 10}))
	require.NoError(t, err)
	for _, r := range rings {
		require.Len(t, r, 5)
		require.Equal(t, r[0], r[len(r)-1])
		require.GreaterOrEqual(t, r[0].X, 10.0)
	}

	_, err = builder.Box(1, 1, 1, builder.WithJitter(0.01))
	require.ErrorIs(t, err, builder.ErrNeedRandSource)

	a, err := builder.Box(1, 1, 1, builder.WithSeed(7), builder.WithJitter(0.01))
	require.NoError(t, err)
	b, err := builder.Box(1, 1, 1, builder.WithSeed(7), builder.WithJitter(0.01))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.NotEqual(t, a[0][3], a[2][0], "shared corner must be jittered per occurrence")

	require.Panics(t, func() { builder.WithJitter(-1) })
	require.Panics(t, func() { builder.WithRand(nil) })
}

func TestGabledHouse_FacesPointOutward(t *testing.T) {
	rings, err := builder.GabledHouse(12, 9, 6, 9)
	require.NoError(t, err)
	require.Len(t, rings, 7)

	center := geom.Point{X: 6, Y: 4.5, Z: 3}
	for i, r := range rings {
		out := r3.Sub(geom.Centroid(r), center)
		require.Greater(t, r3.Dot(geom.NewellNormal(r), out), 0.0, "ring %d faces inward", i)
	}
	require.Len(t, rings[3], 5)

	_, err = builder.GabledHouse(12, 9, 6, 6)
	require.ErrorIs(t, err, builder.ErrNonPositiveSize)
}
