package brep

import "errors"

var (
	// ErrWireTooShort indicates a point sequence with too few distinct points.
	ErrWireTooShort = errors.New("brep: wire has too few points")

	// ErrDegenerateFace indicates a loop with (near) zero area.
	ErrDegenerateFace = errors.New("brep: degenerate face")

	// ErrNotPlanar indicates a wire that does not lie on a plane within the
	// kernel's surface tolerance.
	ErrNotPlanar = errors.New("brep: wire is not planar")

	// ErrNilShape indicates a nil shape argument.
	ErrNilShape = errors.New("brep: nil shape")

	// ErrNoFaces indicates an operation that needs at least one face.
	ErrNoFaces = errors.New("brep: no faces")

	// ErrUnsupportedShape indicates a shape kind the operation does not accept.
	ErrUnsupportedShape = errors.New("brep: unsupported shape kind")
)

// ErrKernelFault wraps a panic raised inside a kernel call.
var ErrKernelFault = errors.New("brep: kernel fault")
