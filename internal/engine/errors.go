package engine

import (
	"errors"

	"github.com/san-kum/abortcalc/internal/margin"
)

// Domain errors for engine operations.
var (
	// ErrInvalidQuantity indicates an identifier outside the five quantities.
	ErrInvalidQuantity = margin.ErrInvalidQuantity

	// ErrOutputLocked indicates an attempt to set the computed quantity directly.
	ErrOutputLocked = errors.New("engine: output quantity is computed and cannot be set")

	// ErrInvalidRange indicates a range with start > stop or a non-positive step.
	ErrInvalidRange = errors.New("engine: invalid range")
)
