package encoding

import "github.com/katalvlaran/qubogen/pbf"

// ladder is the shared machinery behind Unary, Binary and Arithmetic: all
// three are weighted ladders y ↦ Lo + step·Σ wᵢ·yᵢ where the integer
// weights wᵢ are the only difference. reach(n) = Σ wᵢ is the largest
// representable integer, so step = Span/reach maps the ladder affinely
// onto [Lo, Hi].
type ladder struct {
	reach   func(n int) float64
	weights func(n int) []float64
}

func (l ladder) bits(s Spec) (int, error) {
	return sizedWidth(s, l.reach)
}

func (l ladder) expand(alloc Allocator, s Spec) (Expansion, error) {
	n, err := l.bits(s)
	if err != nil {
		return Expansion{}, err
	}
	ids, err := allocate(alloc, n)
	if err != nil {
		return Expansion{}, err
	}
	if n == 0 {
		// Degenerate fixed value: ξ is the constant Lo, no target ids.
		return Expansion{Value: pbf.Constant(s.Lo)}, nil
	}

	w := l.weights(n)
	step := s.Span() / l.reach(n)
	pairs := make([]pbf.TermCoeff, 0, n+1)
	pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: s.Lo})
	for i, id := range ids {
		pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(id), Coeff: step * w[i]})
	}

	return Expansion{IDs: ids, Value: pbf.New(pairs...)}, nil
}
