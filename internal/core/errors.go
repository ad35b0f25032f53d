package core

import (
	"errors"
	"fmt"
)

// ErrPrecondition marks programmer errors detected at an API boundary, such as
// an unknown ghost personality or a level number below 1. Values wrapping it
// are raised with panic and never recovered by the simulation.
var ErrPrecondition = errors.New("precondition violated")

// Preconditionf builds an error wrapping ErrPrecondition.
func Preconditionf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrPrecondition, fmt.Sprintf(format, args...))
}

// MustLevel panics unless levelNumber is at least 1.
func MustLevel(levelNumber int) {
	if levelNumber < 1 {
		panic(Preconditionf("level number %d < 1", levelNumber))
	}
}
