package encoding

// Arithmetic encodes a value with arithmetic-progression weights:
// ξ = Lo + step·(y₁ + 2·y₂ + 3·y₃ + … + n·yₙ) with step = Span/(n(n+1)/2).
// Every integer level 0..n(n+1)/2 is reachable (weights 1..n form a
// complete sequence), so no validity constraint is needed.
//
// Resolution: Span/(n(n+1)/2) — quadratic reach in the bit count, a
// middle ground between Unary and Binary: fewer bits than Unary, smaller
// single-flip jumps than Binary.
type Arithmetic struct{}

// Name implements Method.
func (Arithmetic) Name() string { return "arithmetic" }

var arithmeticLadder = ladder{
	reach:   func(n int) float64 { return float64(n) * float64(n+1) / 2 },
	weights: arithmeticWeights,
}

func arithmeticWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = float64(i + 1)
	}

	return w
}

// Bits implements Method: the smallest n with Span/(n(n+1)/2) ≤ Tol,
// unless Spec.Bits is explicit.
func (Arithmetic) Bits(s Spec) (int, error) { return arithmeticLadder.bits(s) }

// Expand implements Method.
func (Arithmetic) Expand(alloc Allocator, s Spec) (Expansion, error) {
	return arithmeticLadder.expand(alloc, s)
}
