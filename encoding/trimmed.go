package encoding

import (
	"math"
	"math/bits"

	"github.com/katalvlaran/qubogen/pbf"
)

// floorSlack absorbs fp noise when flooring Span/Tol to a level count.
const floorSlack = 1e-9

// Trimmed encodes on the exact grid Lo, Lo+Tol, …, Lo+L·Tol with
// L = ⌊Span/Tol⌋: binary doubling weights capped so the ladder tops out
// exactly at level L (e.g. L = 5 gives weights 1, 2, 2). Every level
// 0..L is reachable, so no validity constraint is needed.
//
// The step is the tolerance itself, never a rescale of the span. That is
// the difference from Binary, which spreads 2ⁿ−1 levels affinely over
// the interval: under Trimmed an integer range (Tol = 1) decodes to
// exact integers for any span, and a slack ladder lands on every value
// an integral residual can take.
type Trimmed struct{}

// Name implements Method.
func (Trimmed) Name() string { return "trimmed" }

// trimmedLevels resolves L, the number of grid steps above Lo.
func trimmedLevels(s Spec) (int, error) {
	if err := validateSpec(s); err != nil {
		return 0, err
	}
	if s.Span() == 0 {
		return 0, nil
	}
	if s.Tol <= 0 || math.IsNaN(s.Tol) {
		return 0, ErrInvalidTolerance
	}

	return int(math.Floor(s.Span()/s.Tol + floorSlack)), nil
}

// Bits implements Method: the smallest n with 2ⁿ−1 ≥ L. An explicit
// Spec.Bits is honored when it can still reach level L, and rejected
// with ErrInvalidBits when it cannot.
func (Trimmed) Bits(s Spec) (int, error) {
	levels, err := trimmedLevels(s)
	if err != nil {
		return 0, err
	}
	if s.Bits > 0 {
		if s.Bits < bits.Len(uint(levels)) {
			return 0, ErrInvalidBits
		}

		return s.Bits, nil
	}

	return bits.Len(uint(levels)), nil
}

// Expand implements Method. Weights double until the remaining headroom
// caps them: wᵢ = min(2ⁱ, L − Σⱼ₍ⱼ<ᵢ₎ wⱼ), which keeps 0..L contiguous
// and the maximum exactly L.
func (t Trimmed) Expand(alloc Allocator, s Spec) (Expansion, error) {
	n, err := t.Bits(s)
	if err != nil {
		return Expansion{}, err
	}
	levels, err := trimmedLevels(s)
	if err != nil {
		return Expansion{}, err
	}
	ids, err := allocate(alloc, n)
	if err != nil {
		return Expansion{}, err
	}
	if n == 0 {
		return Expansion{Value: pbf.Constant(s.Lo)}, nil
	}

	pairs := make([]pbf.TermCoeff, 0, n+1)
	pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: s.Lo})
	remaining := levels
	weight := 1
	for _, id := range ids {
		w := weight
		if w > remaining {
			w = remaining
		}
		if w > 0 {
			pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(id), Coeff: float64(w) * s.Tol})
		}
		remaining -= w
		weight *= 2
	}

	return Expansion{IDs: ids, Value: pbf.New(pairs...)}, nil
}
