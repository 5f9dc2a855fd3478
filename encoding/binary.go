package encoding

import "math"

// Binary encodes a value with powers-of-two weights:
// ξ = Lo + step·(y₁ + 2·y₂ + … + 2ⁿ⁻¹·yₙ) with step = Span/(2ⁿ−1).
// Every integer level 0..2ⁿ−1 is reachable exactly once, so no validity
// constraint is needed.
//
// Resolution: Span/(2ⁿ−1) — the most bit-efficient ladder; the price is
// that a single bit flip can move the value by up to half the interval.
type Binary struct{}

// Name implements Method.
func (Binary) Name() string { return "binary" }

var binaryLadder = ladder{
	reach:   binaryReach,
	weights: binaryWeights,
}

func binaryReach(n int) float64 { return math.Pow(2, float64(n)) - 1 }

func binaryWeights(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = math.Pow(2, float64(i))
	}

	return w
}

// Bits implements Method: the smallest n with Span/(2ⁿ−1) ≤ Tol, unless
// Spec.Bits is explicit.
func (Binary) Bits(s Spec) (int, error) { return binaryLadder.bits(s) }

// Expand implements Method.
func (Binary) Expand(alloc Allocator, s Spec) (Expansion, error) {
	return binaryLadder.expand(alloc, s)
}
