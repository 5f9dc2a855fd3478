// Package vmodel: sentinel error set.

package vmodel

import "errors"

var (
	// ErrDuplicateEncoding is returned when a source id is encoded twice,
	// a slack is encoded twice for the same constraint, or a target id is
	// already owned by another VirtualVariable.
	ErrDuplicateEncoding = errors.New("vmodel: duplicate encoding")

	// ErrUnknownSource is returned by Substitute when a polynomial
	// references a source id with no encoding.
	ErrUnknownSource = errors.New("vmodel: unknown source variable")

	// ErrNilTarget is returned when Encode is called without a target.
	ErrNilTarget = errors.New("vmodel: nil target model")
)
