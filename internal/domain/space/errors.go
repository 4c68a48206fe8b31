package space

import "errors"

var (
	// ErrSpaceNotFound indicates the space doesn't exist.
	ErrSpaceNotFound = errors.New("space not found")
	// ErrInvalidInput indicates invalid space input.
	ErrInvalidInput = errors.New("invalid space input")
	// ErrUnknownColor indicates a color key outside the palette.
	ErrUnknownColor = errors.New("unknown space color key")
)
