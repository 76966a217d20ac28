package face

import "github.com/katalvlaran/citysolid/brep"

// Cleanup is a whole-face-set pass run before sewing. Implementations must
// not return faces the input did not describe; dropping collapsed faces is
// allowed.
type Cleanup interface {
	Apply(faces []*brep.Face, tol float64) []*brep.Face
}

// CleanupFunc adapts a function to Cleanup.
type CleanupFunc func(faces []*brep.Face, tol float64) []*brep.Face

// Apply implements Cleanup.
func (f CleanupFunc) Apply(faces []*brep.Face, tol float64) []*brep.Face { return f(faces, tol) }

// Identity returns the faces unchanged. It is the default for both cleanup
// slots of the shell assembler.
type Identity struct{}

// Apply implements Cleanup.
func (Identity) Apply(faces []*brep.Face, _ float64) []*brep.Face { return faces }

// WeldVertices merges vertices closer than tol across all faces. Rebuilt
// faces take their minimum tolerance from Kernel; nil uses a default
// polygonal kernel.
type WeldVertices struct {
	Kernel *brep.Polygonal
}

// Apply implements Cleanup.
func (w WeldVertices) Apply(faces []*brep.Face, tol float64) []*brep.Face {
	if len(faces) == 0 {
		return faces
	}
	k := w.Kernel
	if k == nil {
		k = brep.NewPolygonal()
	}
	return k.Weld(faces, tol)
}

// OrientByAdjacency flips faces so that faces sharing an edge traverse it in
// opposite directions.
type OrientByAdjacency struct{}

// Apply implements Cleanup.
func (OrientByAdjacency) Apply(faces []*brep.Face, _ float64) []*brep.Face {
	return brep.Orient(faces)
}
