package solid

import "errors"

var (
	// ErrStillInvalid indicates a repair strategy ran but its result does not validate.
	ErrStillInvalid = errors.New("solid: repaired shape still invalid")

	// ErrRebuildOpen indicates the relaxed rebuild did not produce one closed shell.
	ErrRebuildOpen = errors.New("solid: relaxed rebuild produced no closed shell")
)
