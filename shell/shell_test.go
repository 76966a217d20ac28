package shell_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/citysolid/brep"
	"github.com/katalvlaran/citysolid/builder"
	"github.com/katalvlaran/citysolid/face"
	"github.com/katalvlaran/citysolid/geom"
	"github.com/katalvlaran/citysolid/repair"
	"github.com/katalvlaran/citysolid/shell"
)

// stubKernel marks selected faces invalid and can make sewing panic.
type stubKernel struct {
	*brep.Polygonal
	badFace  func(*brep.Face) bool
	sewPanic bool
}

func (s *stubKernel) IsValid(shape brep.Shape) bool {
	if s.badFace != nil && !brep.IsNil(shape) {
		for _, f := range shape.Faces() {
			if s.badFace(f) {
				return false
			}
		}
	}
	return s.Polygonal.IsValid(shape)
}

func (s *stubKernel) Sew(faces []*brep.Face, tol float64) (*brep.Compound, error) {
	if s.sewPanic {
		panic("sewing exploded")
	}
	return s.Polygonal.Sew(faces, tol)
}

func farRight(f *brep.Face) bool { return geom.Centroid(f.Outer()).X > 3 }

type AssemblerSuite struct {
	suite.Suite
	kernel *brep.Polygonal
	faces  *face.Builder
}

func (s *AssemblerSuite) SetupTest() {
	s.kernel = brep.NewPolygonal()
	s.faces = face.NewBuilder(s.kernel)
}

func (s *AssemblerSuite) build(rings []geom.Ring, err error) []*brep.Face {
	s.Require().NoError(err)
	var out []*brep.Face
	for _, r := range rings {
		out = append(out, s.faces.Build(r, nil, 0.01)...)
	}
	return out
}

func (s *AssemblerSuite) box(opts ...builder.BuilderOption) []*brep.Face {
	return s.build(builder.Box(1, 1, 1, opts...))
}

func (s *AssemblerSuite) TestEmptyInputIsNil() {
	shape, rep := shell.NewAssembler(s.kernel).BuildWithReport(nil, 0.01, repair.Ultra)
	s.Nil(shape)
	s.ErrorIs(rep.Err, shell.ErrNoFaces)
}

func (s *AssemblerSuite) TestClosedBox() {
	for _, level := range repair.Levels() {
		shape, rep := shell.NewAssembler(s.kernel).BuildWithReport(s.box(), 0.01, level)
		s.Require().NotNil(shape, level.String())
		s.Equal(brep.KindShell, shape.Kind())
		s.Equal(6, brep.FaceCount(shape))
		s.True(s.kernel.IsClosed(shape))
		s.Equal(shell.BranchSingle, rep.Branch)
	}
}

func (s *AssemblerSuite) TestJitteredBoxCloses() {
	faces := s.box(builder.WithSeed(11), builder.WithJitter(1e-3))
	shape := shell.NewAssembler(s.kernel).Build(faces, 0.01, repair.Standard)
	s.Require().NotNil(shape)
	s.True(s.kernel.IsClosed(shape))
	s.True(s.kernel.IsValid(shape))
}

func (s *AssemblerSuite) TestUltraSewingOrder() {
	const tol = 0.01
	var seen []float64
	a := shell.NewAssembler(s.kernel, shell.WithOnSew(func(t float64) { seen = append(seen, t) }))
	shape, rep := a.BuildWithReport(s.box(), tol, repair.Ultra)
	s.Require().NotNil(shape)

	want := []float64{tol * 10, tol * 5, tol * 1}
	if diff := cmp.Diff(want, seen); diff != "" {
		s.Failf("sewing tolerances", "(-want +got):\n%s", diff)
	}
	s.Equal(want, rep.SewTolerances)
	s.Equal([]int{0, 0, 0}, rep.FacesLost)
}

func (s *AssemblerSuite) TestSinglePassBelowUltra() {
	var seen []float64
	a := shell.NewAssembler(s.kernel, shell.WithOnSew(func(t float64) { seen = append(seen, t) }))
	a.Build(s.box(), 0.01, repair.Aggressive)
	s.Equal([]float64{0.01}, seen)
}

func (s *AssemblerSuite) TestDisjointBoxesBecomeCompound() {
	faces := append(s.box(), s.box(builder.WithOffset(geom.Point{X: 5}))...)
	shape, rep := shell.NewAssembler(s.kernel).BuildWithReport(faces, 0.01, repair.Standard)
	s.Require().NotNil(shape)
	s.Require().Equal(brep.KindCompound, shape.Kind())
	shells := brep.Shells(shape)
	s.Require().Len(shells, 2)
	for _, sh := range shells {
		s.Len(sh.Faces(), 6)
	}
	s.Equal(shell.BranchCompound, rep.Branch)
	s.Equal(2, rep.ShellsFound)
}

func (s *AssemblerSuite) TestOpenBoxStaysOpen() {
	faces := s.build(builder.OpenBox(1, 1, 1))
	shape := shell.NewAssembler(s.kernel).Build(faces, 0.01, repair.Standard)
	s.Require().NotNil(shape)
	s.Equal(brep.KindShell, shape.Kind())
	s.False(s.kernel.IsClosed(shape))
}

func (s *AssemblerSuite) TestRejectsMostlyInvalidShell() {
	k := &stubKernel{Polygonal: s.kernel, badFace: farRight}
	faces := append(s.box(), s.box(builder.WithOffset(geom.Point{X: 5}))...)

	shape, rep := shell.NewAssembler(k).BuildWithReport(faces, 0.01, repair.Minimal)
	s.Require().NotNil(shape)
	s.Equal(brep.KindShell, shape.Kind())
	s.Equal(6, brep.FaceCount(shape))
	s.Equal(shell.BranchResewed, rep.Branch)
	s.Equal([]float64{0.01, 0.01}, rep.SewTolerances)
	s.False(rep.FinalFixed)
}

func (s *AssemblerSuite) TestNoAcceptableShellResewsRelaxed() {
	k := &stubKernel{Polygonal: s.kernel, badFace: func(*brep.Face) bool { return true }}
	faces := append(s.box(), s.box(builder.WithOffset(geom.Point{X: 5}))...)

	shape, rep := shell.NewAssembler(k).BuildWithReport(faces, 0.01, repair.Minimal)
	s.Require().NotNil(shape)
	s.Equal(brep.KindShell, shape.Kind())
	s.Equal(shell.BranchRelaxed, rep.Branch)
	s.Equal([]float64{0.01, 0.01 * shell.ResewRelaxMultiplier}, rep.SewTolerances)
	s.True(rep.FinalFixed, "invalid result gets a best-effort fix and is kept")
}

func (s *AssemblerSuite) TestRatioThresholdOverride() {
	// one bad face out of six is below 0.5 but not below 0.1
	k := &stubKernel{Polygonal: s.kernel, badFace: func(f *brep.Face) bool {
		c := geom.Centroid(f.Outer())
		return c.X > 3 && c.Z == 1
	}}
	faces := append(s.box(), s.box(builder.WithOffset(geom.Point{X: 5}))...)

	_, rep := shell.NewAssembler(k).BuildWithReport(faces, 0.01, repair.Minimal)
	s.Equal(shell.BranchCompound, rep.Branch)

	_, rep = shell.NewAssembler(k, shell.WithInvalidFaceRatio(0.1)).BuildWithReport(faces, 0.01, repair.Minimal)
	s.Equal(shell.BranchResewed, rep.Branch)
}

func (s *AssemblerSuite) TestStageOneDropsUnfixableFaces() {
	k := &stubKernel{Polygonal: s.kernel, badFace: func(f *brep.Face) bool {
		return geom.Centroid(f.Outer()).Z == 1
	}}
	shape, rep := shell.NewAssembler(k).BuildWithReport(s.box(), 0.01, repair.Aggressive)
	s.Require().NotNil(shape)
	s.Equal(1, rep.FacesDropped)
	s.Equal(5, brep.FaceCount(shape))
	s.False(s.kernel.IsClosed(shape))
}

func (s *AssemblerSuite) TestSewPanicIsFailure() {
	k := &stubKernel{Polygonal: s.kernel, sewPanic: true}
	shape, rep := shell.NewAssembler(k).BuildWithReport(s.box(), 0.01, repair.Standard)
	s.Nil(shape)
	s.ErrorIs(rep.Err, brep.ErrKernelFault)
}

func (s *AssemblerSuite) TestCleanupSlotsByLevel() {
	for _, tc := range []struct {
		level             repair.Level
		orient, dedupRuns int
	}{
		{repair.Minimal, 0, 0},
		{repair.Standard, 1, 0},
		{repair.Aggressive, 1, 1},
		{repair.Ultra, 1, 1},
	} {
		var orient, dedup int
		a := shell.NewAssembler(s.kernel,
			shell.WithOrientation(face.CleanupFunc(func(f []*brep.Face, _ float64) []*brep.Face { orient++; return f })),
			shell.WithDedup(face.CleanupFunc(func(f []*brep.Face, _ float64) []*brep.Face { dedup++; return f })),
		)
		s.Require().NotNil(a.Build(s.box(), 0.01, tc.level))
		s.Equal(tc.orient, orient, tc.level.String())
		s.Equal(tc.dedupRuns, dedup, tc.level.String())
	}
}

func (s *AssemblerSuite) TestRealCleanupStrategies() {
	faces := s.box(builder.WithSeed(5), builder.WithJitter(1e-3))
	a := shell.NewAssembler(s.kernel,
		shell.WithOrientation(face.OrientByAdjacency{}),
		shell.WithDedup(face.WeldVertices{Kernel: s.kernel}),
	)
	shape := a.Build(faces, 0.01, repair.Aggressive)
	s.Require().NotNil(shape)
	s.True(s.kernel.IsClosed(shape))
}

func TestAssemblerSuite(t *testing.T) {
	suite.Run(t, new(AssemblerSuite))
}

func TestOptionPanics(t *testing.T) {
	require.Panics(t, func() { shell.WithInvalidFaceRatio(0) })
	require.Panics(t, func() { shell.WithInvalidFaceRatio(1.5) })
	require.Panics(t, func() { shell.WithRelaxMultiplier(1) })
	require.Panics(t, func() { shell.WithOrientation(nil) })
	require.Panics(t, func() { shell.WithDedup(nil) })
	require.Panics(t, func() { shell.WithRecorder(nil) })
}
