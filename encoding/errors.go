// Package encoding: sentinel error set.
// All methods return these sentinels and callers match them via errors.Is.

package encoding

import "errors"

var (
	// ErrInvalidTolerance is returned when a non-positive (or non-finite)
	// tolerance is supplied for bit-count sizing. Rejected before any
	// bit-count computation.
	ErrInvalidTolerance = errors.New("encoding: tolerance must be positive")

	// ErrInvalidBounds is returned when Lo > Hi or a bound is NaN/Inf.
	ErrInvalidBounds = errors.New("encoding: invalid bounds")

	// ErrInvalidBits is returned for a negative explicit bit count.
	ErrInvalidBits = errors.New("encoding: negative bit count")

	// ErrWidthOverflow is returned when the tolerance would require more
	// bits than the method can represent exactly.
	ErrWidthOverflow = errors.New("encoding: required bit count too large")

	// ErrInvalidInner is returned when Bounded wraps a method other than
	// Unary, Binary or Arithmetic.
	ErrInvalidInner = errors.New("encoding: bounded inner method must be unary, binary or arithmetic")

	// ErrNilAllocator is returned when Expand is called without an allocator.
	ErrNilAllocator = errors.New("encoding: nil allocator")

	// ErrAllocation is returned when the allocator hands back a wrong
	// number of ids.
	ErrAllocation = errors.New("encoding: allocator returned wrong id count")
)
