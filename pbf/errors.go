// Package pbf: sentinel error set.
// All public operations return these sentinels and callers match them via
// errors.Is. No operation panics on user-triggered conditions; panics are
// reserved for programmer errors in private helpers.

package pbf

import "errors"

var (
	// ErrDivideByZero is returned by DivScalar when the divisor is zero.
	ErrDivideByZero = errors.New("pbf: divide by zero")

	// ErrInvalidPower is returned by Power for a negative exponent.
	ErrInvalidPower = errors.New("pbf: negative power")

	// ErrNonConvertible is returned when a PBF with at least one
	// non-constant term is collapsed to a scalar (Scalar, Evaluate).
	ErrNonConvertible = errors.New("pbf: not convertible to a scalar")
)
