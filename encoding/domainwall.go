package encoding

import "github.com/katalvlaran/qubogen/pbf"

// DomainWall encodes an integer level 0..n with n bits forming a monotone
// "wall": valid patterns are exactly the prefixes of ones (000…, 100…,
// 110…, …, 111…), and the encoded level is the wall position — the number
// of set bits.
//
// ξ = Lo + step·Σ bᵢ with step = Span/n, identical in shape to Unary, but
// validity is enforced: χ = Σ bᵢ₊₁·(1 − bᵢ) counts every broken wall
// (a bit low while its successor is high). A non-prefix pattern always
// contains an adjacent 0→1 rise, so χ is zero exactly at the n+1 monotone
// patterns and strictly positive elsewhere.
//
// Resolution: Span/n. Spec.Bits, when set, is the wall length n.
type DomainWall struct{}

// Name implements Method.
func (DomainWall) Name() string { return "domain-wall" }

// Bits implements Method: the smallest n with Span/n ≤ Tol, unless
// Spec.Bits is explicit.
func (DomainWall) Bits(s Spec) (int, error) {
	return sizedWidth(s, func(n int) float64 { return float64(n) })
}

// Expand implements Method.
func (DomainWall) Expand(alloc Allocator, s Spec) (Expansion, error) {
	n, err := DomainWall{}.Bits(s)
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

	step := s.Span() / float64(n)
	pairs := make([]pbf.TermCoeff, 0, n+1)
	pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: s.Lo})
	for _, id := range ids {
		pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(id), Coeff: step})
	}
	exp := Expansion{IDs: ids, Value: pbf.New(pairs...)}

	// χ = Σ bᵢ₊₁(1 − bᵢ): one summand per adjacent pair. A single-bit
	// wall has no invalid pattern and carries no constraint.
	if n > 1 {
		chiPairs := make([]pbf.TermCoeff, 0, 2*(n-1))
		for i := 0; i+1 < n; i++ {
			chiPairs = append(chiPairs,
				pbf.TermCoeff{Term: pbf.NewTerm(ids[i+1]), Coeff: 1},
				pbf.TermCoeff{Term: pbf.NewTerm(ids[i], ids[i+1]), Coeff: -1},
			)
		}
		exp.Constraint = pbf.New(chiPairs...)
		exp.HasConstraint = true
	}

	return exp, nil
}
