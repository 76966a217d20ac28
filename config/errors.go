package config

import "errors"

var (
	// ErrInvalid wraps every validation failure.
	ErrInvalid = errors.New("config: invalid configuration")

	// ErrEnv indicates an environment override that could not be parsed.
	ErrEnv = errors.New("config: bad environment override")
)
