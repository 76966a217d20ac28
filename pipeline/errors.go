package pipeline

import "errors"

// ErrNilConfig is returned by Open for a nil configuration.
var ErrNilConfig = errors.New("pipeline: nil config")
