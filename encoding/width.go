package encoding

import "math"

// maxDerivedBits caps tolerance-derived bit counts. A tolerance so tight
// that it needs more bits than this indicates a misconfigured Spec, not a
// legitimate encoding request.
const maxDerivedBits = 1 << 20

// validateSpec rejects malformed Specs before any sizing work.
func validateSpec(s Spec) error {
	if math.IsNaN(s.Lo) || math.IsInf(s.Lo, 0) || math.IsNaN(s.Hi) || math.IsInf(s.Hi, 0) {
		return ErrInvalidBounds
	}
	if s.Lo > s.Hi {
		return ErrInvalidBounds
	}
	if s.Bits < 0 {
		return ErrInvalidBits
	}

	return nil
}

// sizedWidth resolves the target-bit count for s given the method's
// representable range: reach(n) is the largest integer value expressible
// with n bits, so resolution(n) = Span/reach(n).
//
// Rules, in order:
//  1. Spec malformed → error.
//  2. Explicit Bits > 0 → returned as-is (tolerance ignored).
//  3. Degenerate Lo == Hi → 0 bits.
//  4. Otherwise the tolerance must be positive, and the result is the
//     smallest n ≥ 1 with Span/reach(n) ≤ Tol (minimality).
func sizedWidth(s Spec, reach func(n int) float64) (int, error) {
	if err := validateSpec(s); err != nil {
		return 0, err
	}
	if s.Bits > 0 {
		return s.Bits, nil
	}
	span := s.Span()
	if span == 0 {
		return 0, nil
	}
	if s.Tol <= 0 || math.IsNaN(s.Tol) {
		return 0, ErrInvalidTolerance
	}

	need := span / s.Tol
	for n := 1; n <= maxDerivedBits; n++ {
		if reach(n) >= need {
			return n, nil
		}
	}

	return 0, ErrWidthOverflow
}

// allocate invokes the allocator and verifies the contract.
func allocate(alloc Allocator, n int) ([]int, error) {
	if alloc == nil {
		return nil, ErrNilAllocator
	}
	if n == 0 {
		return nil, nil
	}
	ids, err := alloc.AllocateBinary(n)
	if err != nil {
		return nil, err
	}
	if len(ids) != n {
		return nil, ErrAllocation
	}

	return ids, nil
}
