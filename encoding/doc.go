// Package encoding turns a variable's domain description into an expansion
// over fresh binary target variables.
//
// 🚀 What is a variable encoding?
//
//	A QUBO solver only understands 0/1 variables.  An integer or bounded
//	real source variable must therefore be replaced by a polynomial ξ over
//	new binary variables whose reachable values cover the source domain.
//	Some encodings additionally need a validity constraint χ — a PBF that
//	is zero exactly on the semantically valid bit patterns and strictly
//	positive elsewhere.
//
// ✨ Available methods:
//   - Unary        — n bits, unit ladder; resolution (hi−lo)/n
//   - Binary       — n bits, powers-of-two weights; resolution (hi−lo)/(2ⁿ−1)
//   - Arithmetic   — n bits, weights 1,2,…,n; resolution (hi−lo)/(n(n+1)/2)
//   - OneHot       — n bits, one category each; χ = (Σb−1)²
//   - DomainWall   — n bits encode n+1 levels via a monotone wall; χ
//     penalizes every broken wall
//   - Trimmed      — capped doubling weights on the exact grid lo, lo+τ,
//     …, lo+⌊(hi−lo)/τ⌋·τ; step is the tolerance itself
//   - Bounded      — wraps Unary/Binary/Arithmetic, overriding the target
//     interval
//
// The ladder methods map their reachable values affinely onto the closed
// interval [Lo, Hi] of the Spec; Trimmed instead keeps the grid step at
// exactly Spec.Tol, which is what integer ranges and slack ladders need.
// Bit counts are either explicit (Spec.Bits > 0) or derived from the
// tolerance: the smallest n whose resolution does not exceed Spec.Tol.
// The explicit count always overrides the derived one.
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/qubogen/encoding"
//
//	exp, err := encoding.Binary{}.Expand(alloc, encoding.Spec{Lo: 0, Hi: 10, Tol: 0.5})
//	// exp.IDs   — freshly allocated target ids
//	// exp.Value — ξ, the source value as a PBF over exp.IDs
//	// exp.HasConstraint / exp.Constraint — χ when the method needs one
//
// Determinism: Expand allocates ids in one call and assigns weights in id
// order; identical Specs yield structurally identical expansions.
//
// Errors are package sentinels (ErrInvalidTolerance, ErrInvalidBounds, …)
// matched via errors.Is; see errors.go.
package encoding
