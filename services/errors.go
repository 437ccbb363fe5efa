package services

import "github.com/pkg/errors"

var (
	// ErrOutOfBounds is returned for coordinates outside the grid. It is a
	// caller bug and is never clamped.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvariantViolation means an in-bounds cell had no occupant
	ErrInvariantViolation = errors.New("grid invariant violated")

	// ErrUnknownKind is returned when no behavior is registered for a kind
	ErrUnknownKind = errors.New("no behavior for entity kind")

	// ErrUnknownIntent is returned for text that does not parse as an action
	ErrUnknownIntent = errors.New("unknown intent")
)
