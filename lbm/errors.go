package lbm

import "errors"

// Errors returned by solver construction and the parameter setters.
var (
	// ErrInvalidDimensions indicates a grid narrower or shorter than minSize cells.
	ErrInvalidDimensions = errors.New("lbm: invalid grid dimensions")

	// ErrInvalidViscosity indicates a viscosity that is not finite and positive.
	ErrInvalidViscosity = errors.New("lbm: viscosity must be finite and positive")

	// ErrInvalidVelocity indicates a non-finite driving velocity.
	ErrInvalidVelocity = errors.New("lbm: velocity must be finite")

	// ErrInvalidRampUp indicates a non-positive ramp-up length.
	ErrInvalidRampUp = errors.New("lbm: ramp-up steps must be positive")

	// ErrUnknownGeometry indicates an obstacle shape the generator cannot draw.
	ErrUnknownGeometry = errors.New("lbm: unknown geometry")

	// ErrUnknownBoundary indicates a boundary policy name or value that does not exist.
	ErrUnknownBoundary = errors.New("lbm: unknown boundary policy")
)
