package brep

import "fmt"

// Guard runs fn and converts a panic into an error wrapping ErrKernelFault.
// op names the call for the error message.
func Guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: %v: %w", op, r, ErrKernelFault)
		}
	}()
	return fn()
}
