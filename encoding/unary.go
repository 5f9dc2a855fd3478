package encoding

// Unary encodes a value as a unit ladder: ξ = Lo + step·(y₁ + … + yₙ)
// with step = Span/n. Every integer level 0..n is reachable, redundantly
// for interior levels, so no validity constraint is needed.
//
// Resolution: Span/n — linear in the bit count, which makes Unary the
// most bit-hungry but also the most annealer-friendly ladder (single-bit
// flips move the value by one step).
type Unary struct{}

// Name implements Method.
func (Unary) Name() string { return "unary" }

var unaryLadder = ladder{
	reach:   func(n int) float64 { return float64(n) },
	weights: unaryWeights,
}

func unaryWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 1
	}

	return w
}

// Bits implements Method: the smallest n with Span/n ≤ Tol, unless
// Spec.Bits is explicit.
func (Unary) Bits(s Spec) (int, error) { return unaryLadder.bits(s) }

// Expand implements Method.
func (Unary) Expand(alloc Allocator, s Spec) (Expansion, error) {
	return unaryLadder.expand(alloc, s)
}
