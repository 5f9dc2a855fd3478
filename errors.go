// Package qubogen: sentinel error set for the compile dispatcher.
// Domain-specific sentinels live in their own packages (pbf, encoding,
// vmodel, quadratize, qubo); callers match all of them via errors.Is.

package qubogen

import "errors"

var (
	// ErrNilModel is returned when Compile is called without a source or
	// target adapter.
	ErrNilModel = errors.New("qubogen: nil source or target model")

	// ErrUnsupportedExpression is returned, before any encoding work,
	// when the source model uses a function/relation combination outside
	// {variable, affine, quadratic} × {equality, ≤, ≥}. The wrapping
	// message names the offending pair and entity.
	ErrUnsupportedExpression = errors.New("qubogen: unsupported expression")

	// ErrUnknownVariable is returned when a constraint or the objective
	// references a variable the source model never declared.
	ErrUnknownVariable = errors.New("qubogen: undeclared source variable")
)
