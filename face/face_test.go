package face_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/face"
	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/logsink"
	"github.com/katalvlaran/citysolid/repair"
)

// stubKernel overrides selected kernel calls of the polygonal kernel.
type stubKernel struct {
	*brep.Polygonal
	makeFace func(w *brep.Wire, onlyPlane bool) (*brep.Face, error)
	fixFace  func(f *brep.Face, p repair.Params) (*brep.Face, error)
}

func (s *stubKernel) MakeFace(w *brep.Wire, onlyPlane bool) (*brep.Face, error) {
	if s.makeFace != nil {
		return s.makeFace(w, onlyPlane)
	}
	return s.Polygonal.MakeFace(w, onlyPlane)
}

func (s *stubKernel) FixFace(f *brep.Face, p repair.Params) (*brep.Face, error) {
	if s.fixFace != nil {
		return s.fixFace(f, p)
	}
	return s.Polygonal.FixFace(f, p)
}

var errStub = errors.New("stub failure")

func quad(size float64) geom.Ring {
	return geom.Ring{{}, {X: size}, {X: size, Y: size}, {Y: size}, {}}
}

func TestBuild_CleanQuadIsDirect(t *testing.T) {
	b := face.NewBuilder(nil)
	res := b.BuildResult(quad(100), nil, 0.01)
	require.Equal(t, face.LevelDirect, res.Level)
	require.Len(t, res.Faces, 1)
}

func TestBuild_PerturbedQuadIsProjected(t *testing.T) {
	ring := quad(100)
	ring[3].Z = 0.1
	k := brep.NewPolygonal()
	b := face.NewBuilder(k)

	res := b.BuildResult(ring, nil, 0.01)
	require.Equal(t, face.LevelProjected, res.Level)
	require.Len(t, res.Faces, 1)
	require.True(t, k.IsValid(res.Faces[0]))
}

func TestBuild_TooFewPoints(t *testing.T) {
	var buf logsink.Buffer
	b := face.NewBuilder(nil, face.WithLogger(logsink.New(&buf, false)))

	for _, ring := range []geom.Ring{
		nil,
		{{}, {X: 1}},
		{{}, {X: 1}, {}},
		{{X: 1}, {X: 1}, {X: 1}, {X: 1}},
	} {
		res := b.BuildResult(ring, nil, 0.01)
		require.NotNil(t, res.Faces)
		require.Empty(t, res.Faces)
		require.Equal(t, face.LevelFailed, res.Level)
	}
	require.NotEmpty(t, buf.Lines())
}

func TestBuild_HolesSkippedIndividually(t *testing.T) {
	var buf logsink.Buffer
	b := face.NewBuilder(nil, face.WithLogger(logsink.New(&buf, false)))
	good := geom.Ring{{X: 10, Y: 10}, {X: 20, Y: 10}, {X: 20, Y: 20}, {X: 10, Y: 20}}
	bad := geom.Ring{{X: 30, Y: 30}, {X: 40, Y: 30}}

	res := b.BuildResult(quad(100), []geom.Ring{good, bad}, 0.01)
	require.Equal(t, face.LevelDirect, res.Level)
	require.Len(t, res.Faces, 1)
	require.Equal(t, 1, res.Faces[0].HoleCount())
	require.Equal(t, 1, res.HolesSkipped)
	require.Contains(t, buf.String(), "hole 1 skipped")
}

func TestBuild_RepairRung(t *testing.T) {
	calls := 0
	k := &stubKernel{Polygonal: brep.NewPolygonal()}
	k.makeFace = func(w *brep.Wire, onlyPlane bool) (*brep.Face, error) {
		calls++
		if calls <= 2 {
			return nil, errStub
		}
		return k.Polygonal.MakeFace(w, onlyPlane)
	}
	var got repair.Params
	k.fixFace = func(f *brep.Face, p repair.Params) (*brep.Face, error) {
		got = p
		return k.Polygonal.FixFace(f, p)
	}

	res := face.NewBuilder(k).BuildResult(quad(10), nil, 0.01)
	require.Equal(t, face.LevelRepaired, res.Level)
	require.Len(t, res.Faces, 1)
	require.Equal(t, repair.Params{Precision: 0.01, MaxTolerance: 10}, got)
}

func TestBuild_TriangulationRung(t *testing.T) {
	k := &stubKernel{Polygonal: brep.NewPolygonal()}
	k.makeFace = func(w *brep.Wire, onlyPlane bool) (*brep.Face, error) {
		if w.Len() > 3 {
			return nil, errStub
		}
		return k.Polygonal.MakeFace(w, onlyPlane)
	}
	pentagon := geom.Ring{{}, {X: 2}, {X: 3, Y: 1}, {X: 1, Y: 3}, {X: -1, Y: 1}}
	hole := geom.Ring{{X: 0.5, Y: 0.5}, {X: 1, Y: 0.5}, {X: 1, Y: 1}}

	res := face.NewBuilder(k).BuildResult(pentagon, []geom.Ring{hole}, 0.01)
	require.Equal(t, face.LevelTriangulated, res.Level)
	require.Len(t, res.Faces, 3)
	require.Equal(t, 1, res.HolesSkipped)
	for _, f := range res.Faces {
		require.Equal(t, pentagon[0], f.Outer()[0])
		require.Zero(t, f.HoleCount())
	}
}

func TestBuild_PanicFailsOnlyThatRung(t *testing.T) {
	k := &stubKernel{Polygonal: brep.NewPolygonal()}
	k.makeFace = func(w *brep.Wire, onlyPlane bool) (*brep.Face, error) {
		if w.Len() > 3 {
			panic("kernel exception")
		}
		return k.Polygonal.MakeFace(w, onlyPlane)
	}
	res := face.NewBuilder(k).BuildResult(quad(10), nil, 0.01)
	require.Equal(t, face.LevelTriangulated, res.Level)
	require.Len(t, res.Faces, 2)
}

func TestBuild_TotalFailureIsEmpty(t *testing.T) {
	k := &stubKernel{Polygonal: brep.NewPolygonal()}
	k.makeFace = func(*brep.Wire, bool) (*brep.Face, error) { return nil, errStub }

	faces := face.NewBuilder(k).Build(quad(10), nil, 0.01)
	require.NotNil(t, faces)
	require.Empty(t, faces)
}

func TestValidateAndFix(t *testing.T) {
	k := brep.NewPolygonal()
	b := face.NewBuilder(k)

	w, err := k.MakeWire(quad(1))
	require.NoError(t, err)
	clean, err := k.MakeFace(w, false)
	require.NoError(t, err)
	require.Same(t, clean, b.ValidateAndFix(clean, 0.01))

	w, err = k.MakeWire(geom.Ring{{}, {X: 1}, {X: 1 + 1e-9}, {X: 1, Y: 1}, {Y: 1}})
	require.NoError(t, err)
	dup, err := k.MakeFace(w, false)
	require.NoError(t, err)
	fixed := b.ValidateAndFix(dup, 0.01)
	require.NotNil(t, fixed)
	require.True(t, k.IsValid(fixed))

	bowtie, err := k.MakeWire(geom.Ring{{}, {X: 1, Y: 1}, {X: 1}, {Y: 1}})
	require.NoError(t, err)
	twisted, err := k.MakeFace(bowtie, false)
	if err == nil {
		require.Nil(t, b.ValidateAndFix(twisted, 0.01))
	}
	require.Nil(t, b.ValidateAndFix(nil, 0.01))
}

func TestCleanupStrategies(t *testing.T) {
	k := brep.NewPolygonal()
	b := face.NewBuilder(k)
	left := b.Build(geom.Ring{{}, {X: 1}, {X: 1, Y: 1}, {Y: 1}}, nil, 0.01)
	right := b.Build(geom.Ring{{X: 1.001}, {X: 2}, {X: 2, Y: 1}, {X: 1.001, Y: 1}}, nil, 0.01)
	faces := append(left, right...)

	require.Equal(t, faces, face.Identity{}.Apply(faces, 0.01))

	welded := face.WeldVertices{}.Apply(faces, 0.01)
	require.Len(t, welded, 2)
	require.Equal(t, welded[0].Outer()[1], welded[1].Outer()[0])

	coarse := face.WeldVertices{Kernel: brep.NewPolygonal(brep.WithConfusion(0.5))}.Apply(faces, 0.01)
	require.Len(t, coarse, 2)
	require.Equal(t, 0.5, coarse[0].Tolerance())

	flipped := []*brep.Face{welded[0], welded[1].Reversed()}
	oriented := face.OrientByAdjacency{}.Apply(flipped, 0.01)
	require.InDelta(t, oriented[0].Normal().Z, oriented[1].Normal().Z, 1e-12)

	calls := 0
	fn := face.CleanupFunc(func(f []*brep.Face, _ float64) []*brep.Face { calls++; return f })
	fn.Apply(faces, 0)
	require.Equal(t, 1, calls)
}

func TestLevelString(t *testing.T) {
	require.Equal(t, "projected", face.LevelProjected.String())
	require.Equal(t, "level(9)", face.Level(9).String())
	require.Panics(t, func() { face.WithRecorder(nil) })
}
