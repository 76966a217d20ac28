package shell

import "errors"

var (
	// ErrNoFaces indicates an empty input or that every face was dropped.
	ErrNoFaces = errors.New("shell: no faces")

	// ErrNoShells indicates sewing produced no shell.
	ErrNoShells = errors.New("shell: no shells extracted")
)
