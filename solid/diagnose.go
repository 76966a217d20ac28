package solid

import (
	"fmt"

	"github.com/katalvlaran/citysolid/brep"
)

// Closure is a tri-state shell closure flag.
type Closure int

const (
	ClosureUnknown Closure = iota
	ClosureClosed
	ClosureOpen
)

func (c Closure) String() string {
	switch c {
	case ClosureClosed:
		return "closed"
	case ClosureOpen:
		return "open"
	default:
		return "unknown"
	}
}

// Diagnosis summarizes what is wrong with a shape.
type Diagnosis struct {
	Valid      bool
	TotalEdges int
	// FreeEdges counts edges not shared by exactly two faces.
	FreeEdges    int
	TotalFaces   int
	InvalidFaces []int
	// ShellClosed is the closure of the first shell; unknown when the shape
	// has none.
	ShellClosed Closure
	// Err is set when the diagnosis itself failed.
	Err string
}

// Diagnose inspects shape. It never alters the shape and never panics.
func Diagnose(k brep.Kernel, shape brep.Shape) Diagnosis {
	var d Diagnosis
	if brep.IsNil(shape) {
		d.Err = brep.ErrNilShape.Error()
		return d
	}
	err := brep.Guard("Diagnose", func() error {
		d.Valid = k.IsValid(shape)
		d.TotalEdges = k.Edges(shape)
		d.FreeEdges = k.FreeEdges(shape)
		faces := shape.Faces()
		d.TotalFaces = len(faces)
		for i, f := range faces {
			if !k.IsValid(f) {
				d.InvalidFaces = append(d.InvalidFaces, i)
			}
		}
		if shells := brep.Shells(shape); len(shells) > 0 {
			d.ShellClosed = ClosureOpen
			if k.IsClosed(shells[0]) {
				d.ShellClosed = ClosureClosed
			}
		}
		return nil
	})
	if err != nil {
		d.Err = err.Error()
	}
	return d
}

// Lines renders d as log lines.
func (d Diagnosis) Lines() []string {
	if d.Err != "" {
		return []string{"exception during diagnosis: " + d.Err}
	}
	head := "shape validation failed:"
	if d.Valid {
		head = "shape is valid:"
	}
	return []string{
		head,
		fmt.Sprintf("  - Total edges: %d, Free edges: %d", d.TotalEdges, d.FreeEdges),
		fmt.Sprintf("  - Total faces: %d, Invalid faces: %d", d.TotalFaces, len(d.InvalidFaces)),
		fmt.Sprintf("  - Shell closed: %s", d.ShellClosed),
	}
}

// IsExportable reports whether shape is a valid solid, shell or compound.
func IsExportable(k brep.Kernel, shape brep.Shape) bool {
	if brep.IsNil(shape) {
		return false
	}
	switch shape.Kind() {
	case brep.KindSolid, brep.KindShell, brep.KindCompound:
	default:
		return false
	}
	var ok bool
	err := brep.Guard("IsValid", func() error {
		ok = k.IsValid(shape)
		return nil
	})
	return err == nil && ok
}
