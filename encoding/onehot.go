package encoding

import "github.com/katalvlaran/qubogen/pbf"

// OneHot encodes a categorical value with one bit per category: bit k set
// selects the value Lo + k·step with step = Span/(n−1), so the categories
// tile [Lo, Hi] evenly.
//
// ξ = Σ vₖ·yₖ. Validity requires exactly one bit set, enforced by
// χ = (Σ yₖ − 1)², which is zero at the n one-hot patterns and strictly
// positive at every other 0/1 pattern.
//
// Resolution: Span/(n−1) — the category spacing. Spec.Bits, when set, is
// the category count n.
type OneHot struct{}

// Name implements Method.
func (OneHot) Name() string { return "one-hot" }

// Bits implements Method: the smallest n with Span/(n−1) ≤ Tol, unless
// Spec.Bits is explicit. One bit is allocated per category.
func (OneHot) Bits(s Spec) (int, error) {
	return sizedWidth(s, func(n int) float64 { return float64(n - 1) })
}

// Expand implements Method.
func (OneHot) Expand(alloc Allocator, s Spec) (Expansion, error) {
	n, err := OneHot{}.Bits(s)
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

	// Category values: v₀ = Lo, …, vₙ₋₁ = Hi (vₖ = Lo for n == 1).
	step := 0.0
	if n > 1 {
		step = s.Span() / float64(n-1)
	}
	pairs := make([]pbf.TermCoeff, 0, n)
	sum := pbf.Zero()
	for k, id := range ids {
		pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(id), Coeff: s.Lo + step*float64(k)})
		sum = sum.Add(pbf.FromTerm(pbf.NewTerm(id), 1))
	}

	// χ = (Σy − 1)² expanded over 0/1 variables.
	diff := sum.Sub(pbf.One())
	chi := diff.Mul(diff)

	return Expansion{
		IDs:           ids,
		Value:         pbf.New(pairs...),
		Constraint:    chi,
		HasConstraint: true,
	}, nil
}
