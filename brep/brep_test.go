package brep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/builder"
	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/repair"
)

func facesOf(t *testing.T, k *brep.Polygonal, rings []geom.Ring) []*brep.Face {
	t.Helper()
	out := make([]*brep.Face, 0, len(rings))
	for _, r := range rings {
		w, err := k.MakeWire(r)
		require.NoError(t, err)
		f, err := k.MakeFace(w, false)
		require.NoError(t, err)
		out = append(out, f)
	}
	return out
}

func sewnShell(t *testing.T, k *brep.Polygonal, rings []geom.Ring, tol float64) *brep.Shell {
	t.Helper()
	c, err := k.Sew(facesOf(t, k, rings), tol)
	require.NoError(t, err)
	require.Len(t, c.Shells(), 1)
	require.Empty(t, c.Loose())
	return c.Shells()[0]
}

func square(z float64, lo, hi float64) geom.Ring {
	return geom.Ring{{X: lo, Y: lo, Z: z}, {X: hi, Y: lo, Z: z}, {X: hi, Y: hi, Z: z}, {X: lo, Y: hi, Z: z}}
}

func TestMakeWire(t *testing.T) {
	k := brep.NewPolygonal()
	w, err := k.MakeWire(geom.Ring{{}, {X: 1}, {X: 1, Y: 1}, {}})
	require.NoError(t, err)
	require.Equal(t, 3, w.Len())

	_, err = k.MakeWire(geom.Ring{{}, {}})
	require.ErrorIs(t, err, brep.ErrWireTooShort)
}

func TestMakeFace_Planarity(t *testing.T) {
	k := brep.NewPolygonal()

	w, err := k.MakeWire(square(0, 0, 1))
	require.NoError(t, err)
	f, err := k.MakeFace(w, true)
	require.NoError(t, err)
	require.InDelta(t, 1.0, f.Normal().Z, 1e-12)
	require.True(t, k.IsValid(f))

	slight := square(0, 0, 1)
	slight[2].Z = 1e-5
	w, err = k.MakeWire(slight)
	require.NoError(t, err)
	_, err = k.MakeFace(w, true)
	require.ErrorIs(t, err, brep.ErrNotPlanar)
	f, err = k.MakeFace(w, false)
	require.NoError(t, err)
	require.Greater(t, f.Tolerance(), brep.DefaultConfusion)
	require.True(t, k.IsValid(f))

	warped := square(0, 0, 1)
	warped[2].Z = 0.1
	w, err = k.MakeWire(warped)
	require.NoError(t, err)
	_, err = k.MakeFace(w, false)
	require.ErrorIs(t, err, brep.ErrNotPlanar)

	w, err = k.MakeWire(geom.Ring{{}, {X: 1}, {X: 2}})
	require.NoError(t, err)
	_, err = k.MakeFace(w, false)
	require.ErrorIs(t, err, brep.ErrDegenerateFace)
}

func TestAddHole(t *testing.T) {
	k := brep.NewPolygonal()
	w, err := k.MakeWire(square(0, 0, 10))
	require.NoError(t, err)
	f, err := k.MakeFace(w, false)
	require.NoError(t, err)

	hw, err := k.MakeWire(square(0, 2, 4))
	require.NoError(t, err)
	withHole, err := k.AddHole(f, hw)
	require.NoError(t, err)
	require.Equal(t, 1, withHole.HoleCount())
	require.Less(t, geom.NewellNormal(withHole.Holes()[0]).Z, 0.0)
	require.True(t, k.IsValid(withHole))

	ow, err := k.MakeWire(square(0, 20, 22))
	require.NoError(t, err)
	outside, err := k.AddHole(f, ow)
	require.NoError(t, err)
	require.False(t, k.IsValid(outside))

	fixed, err := k.FixFace(outside, repair.Params{})
	require.NoError(t, err)
	require.Zero(t, fixed.HoleCount())
	require.True(t, k.IsValid(fixed))
}

func TestSew_Box(t *testing.T) {
	k := brep.NewPolygonal()
	rings, err := builder.Box(1, 1, 1)
	require.NoError(t, err)

	sh := sewnShell(t, k, rings, 1e-6)
	require.Len(t, sh.Faces(), 6)
	require.True(t, k.IsClosed(sh))
	require.True(t, k.IsValid(sh))
	require.Equal(t, 12, k.Edges(sh))
	require.Zero(t, k.FreeEdges(sh))

	solid, err := k.MakeSolid(sh, nil)
	require.NoError(t, err)
	require.True(t, k.IsValid(solid))
	require.InDelta(t, 1.0, brep.Volume(solid), 1e-12)
}

func TestSew_ClosesJitteredGaps(t *testing.T) {
	k := brep.NewPolygonal(brep.WithSurfaceTolerance(0.01))
	rings, err := builder.Box(1, 1, 1, builder.WithSeed(3), builder.WithJitter(1e-3))
	require.NoError(t, err)

	sh := sewnShell(t, k, rings, 0.01)
	require.True(t, k.IsClosed(sh))
	require.True(t, k.IsValid(sh))

	c, err := k.Sew(facesOf(t, k, rings), 1e-5)
	require.NoError(t, err)
	require.False(t, k.IsClosed(c))
	require.Len(t, c.Loose(), 6)
}

func TestSew_SplitsTJunctions(t *testing.T) {
	k := brep.NewPolygonal()
	rings, err := builder.SplitRoofBox(2, 1, 1)
	require.NoError(t, err)

	sh := sewnShell(t, k, rings, 1e-6)
	require.Len(t, sh.Faces(), 7)
	require.True(t, k.IsClosed(sh))

	unified, err := k.Unify(sh)
	require.NoError(t, err)
	require.Equal(t, 6, brep.FaceCount(unified))
	require.True(t, k.IsClosed(unified))
	require.True(t, k.IsValid(unified))
}

func TestSew_OpenAndDisjoint(t *testing.T) {
	k := brep.NewPolygonal()

	open, err := builder.OpenBox(1, 1, 1)
	require.NoError(t, err)
	sh := sewnShell(t, k, open, 1e-6)
	require.False(t, k.IsClosed(sh))
	require.Equal(t, 4, k.FreeEdges(sh))

	a, err := builder.Box(1, 1, 1)
	require.NoError(t, err)
	b, err := builder.Box(1, 1, 1, builder.WithOffset(geom.Point{X: 5}))
	require.NoError(t, err)
	c, err := k.Sew(facesOf(t, k, append(a, b...)), 1e-6)
	require.NoError(t, err)
	require.Len(t, c.Shells(), 2)
	require.True(t, k.IsClosed(c))

	lone, err := k.Sew(facesOf(t, k, []geom.Ring{square(0, 0, 1)}), 1e-6)
	require.NoError(t, err)
	require.Empty(t, lone.Shells())
	require.Len(t, lone.Loose(), 1)

	_, err = k.Sew(nil, 1e-6)
	require.ErrorIs(t, err, brep.ErrNoFaces)
}

func TestSew_OrientsFlippedFace(t *testing.T) {
	k := brep.NewPolygonal()
	rings, err := builder.Box(1, 1, 1)
	require.NoError(t, err)
	rings[0] = rings[0].Reverse()

	sh := sewnShell(t, k, rings, 1e-6)
	require.True(t, k.IsValid(sh))

	fixed, err := k.FixShell(sh, repair.Params{})
	require.NoError(t, err)
	solid, err := k.MakeSolid(fixed, nil)
	require.NoError(t, err)
	require.True(t, k.IsValid(solid))
}

func TestWeld_UsesKernelConfusion(t *testing.T) {
	faces := facesOf(t, brep.NewPolygonal(), []geom.Ring{
		square(0, 0, 1),
		{{X: 1.001}, {X: 2}, {X: 2, Y: 1}, {X: 1.001, Y: 1}},
	})

	coarse := brep.NewPolygonal(brep.WithConfusion(0.5))
	welded := coarse.Weld(faces, 0.01)
	require.Len(t, welded, 2)
	require.Equal(t, welded[0].Outer()[1], welded[1].Outer()[0])
	for _, f := range welded {
		require.Equal(t, 0.5, f.Tolerance())
	}

	fine := brep.NewPolygonal().Weld(faces, 0.01)
	require.Len(t, fine, 2)
	for _, f := range fine {
		require.Less(t, f.Tolerance(), 0.5)
	}
}

func TestSolid_Cavity(t *testing.T) {
	k := brep.NewPolygonal()
	outerRings, err := builder.Box(10, 10, 10)
	require.NoError(t, err)
	innerRings, err := builder.Box(2, 2, 2, builder.WithOffset(geom.Point{X: 4, Y: 4, Z: 4}))
	require.NoError(t, err)
	outer := sewnShell(t, k, outerRings, 1e-6)
	inner := sewnShell(t, k, innerRings, 1e-6)

	wrong, err := k.MakeSolid(outer, []*brep.Shell{inner})
	require.NoError(t, err)
	require.False(t, k.IsValid(wrong))

	fixed, err := k.FixSolid(wrong, repair.Params{})
	require.NoError(t, err)
	require.True(t, k.IsValid(fixed))
	require.Len(t, fixed.Faces(), 12)
	require.InDelta(t, 992.0, brep.Volume(fixed), 1e-9)

	right, err := k.MakeSolid(outer, []*brep.Shell{brep.ReverseShell(inner)})
	require.NoError(t, err)
	require.True(t, k.IsValid(right))

	open, err := builder.OpenBox(2, 2, 2, builder.WithOffset(geom.Point{X: 4, Y: 4, Z: 4}))
	require.NoError(t, err)
	withOpen, err := k.MakeSolid(outer, []*brep.Shell{sewnShell(t, k, open, 1e-6)})
	require.NoError(t, err)
	dropped, err := k.FixSolid(withOpen, repair.Params{})
	require.NoError(t, err)
	require.Empty(t, dropped.Cavities())
}

func TestFixFace_NearDuplicateVertex(t *testing.T) {
	k := brep.NewPolygonal()
	w, err := k.MakeWire(geom.Ring{{}, {X: 1}, {X: 1 + 1e-9}, {X: 1, Y: 1}, {Y: 1}})
	require.NoError(t, err)
	f, err := k.MakeFace(w, false)
	require.NoError(t, err)
	require.False(t, k.IsValid(f))

	fixed, err := k.FixFace(f, repair.Params{})
	require.NoError(t, err)
	require.Len(t, fixed.Outer(), 4)
	require.True(t, k.IsValid(fixed))
}

func TestFixShape_Compound(t *testing.T) {
	k := brep.NewPolygonal()
	rings, err := builder.Box(1, 1, 1)
	require.NoError(t, err)
	c, err := k.Sew(facesOf(t, k, append(rings, square(5, 10, 11))), 1e-6)
	require.NoError(t, err)

	fixed, err := k.FixShape(c, repair.WithMax(1e-6, 10))
	require.NoError(t, err)
	require.Equal(t, brep.KindCompound, fixed.Kind())
	require.Equal(t, 7, brep.FaceCount(fixed))

	_, err = k.FixShape(nil, repair.Params{})
	require.ErrorIs(t, err, brep.ErrNilShape)
}

func TestShells(t *testing.T) {
	k := brep.NewPolygonal()
	rings, err := builder.Box(1, 1, 1)
	require.NoError(t, err)
	sh := sewnShell(t, k, rings, 1e-6)
	solid, err := k.MakeSolid(sh, []*brep.Shell{sh})
	require.NoError(t, err)

	require.Len(t, brep.Shells(solid), 2)
	require.Len(t, brep.Shells(sh), 1)
	require.Nil(t, brep.Shells(sh.Faces()[0]))
	require.True(t, brep.IsNil((*brep.Shell)(nil)))
	require.Zero(t, brep.FaceCount(nil))
	require.Equal(t, "solid", solid.Kind().String())
}

func TestGuard(t *testing.T) {
	err := brep.Guard("Sew", func() error { panic("boom") })
	require.ErrorIs(t, err, brep.ErrKernelFault)
	require.Contains(t, err.Error(), "boom")

	sentinel := errors.New("plain")
	require.ErrorIs(t, brep.Guard("Sew", func() error { return sentinel }), sentinel)
	require.NoError(t, brep.Guard("Sew", func() error { return nil }))
}

func TestOptions_Panic(t *testing.T) {
	require.Panics(t, func() { brep.WithConfusion(0) })
	require.Panics(t, func() { brep.WithSurfaceTolerance(-1) })
	require.Panics(t, func() { brep.WithFixMaxTolerance(0) })
	k := brep.NewPolygonal(brep.WithConfusion(1e-6))
	require.Equal(t, 1e-6, k.Options().Confusion)
}
