// Package pbf implements exact sparse arithmetic over pseudo-boolean
// functions — multilinear polynomials on 0/1 variables.
//
// 🚀 What is a PBF?
//
//	A pseudo-boolean function maps binary assignments to reals and is
//	always expressible as a multilinear polynomial: a sum of monomials,
//	each a coefficient times a product of distinct variables.  PBFs are
//	the universal currency of QUBO compilation:
//	  • objectives and constraints are PBFs,
//	  • variable encodings expand into PBFs,
//	  • penalty terms and quadratization rewrite PBFs into PBFs.
//
// ✨ Key properties:
//   - canonical sparse form: no zero coefficients are ever stored,
//     duplicate terms are summed on construction
//   - value semantics: every operation returns a fresh PBF; inputs are
//     never mutated, so sharing is always safe
//   - exact arithmetic: no rounding happens unless Round is called
//   - deterministic ordering: Terms() iterates in canonical order
//     (degree first, then variable ids), so renderings and downstream
//     transforms are reproducible
//
// ⚙️ Usage:
//
//	import "github.com/katalvlaran/qubogen/pbf"
//
//	x := pbf.FromTerm(pbf.NewTerm(0), 1) // x0
//	y := pbf.FromTerm(pbf.NewTerm(1), 1) // x1
//	f := x.Mul(y).MulScalar(3).Add(pbf.Constant(2)) // 3·x0·x1 + 2
//
// Complexity:
//
//   - Add/Sub:  O(|f| + |g|)
//   - Mul:      O(|f| · |g|)
//   - Power(n): n−1 multiplications
//
// Errors are package-level sentinels (ErrDivideByZero, ErrInvalidPower,
// ErrNonConvertible) matched via errors.Is; see errors.go.
package pbf
