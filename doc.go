// Package qubogen compiles constrained optimization models — binary,
// integer and real variables, equality and inequality constraints —
// into QUBO form for annealers and Ising-style samplers.
//
// 🚀 What is qubogen?
//
//	A deterministic compiler pipeline that brings together:
//		• Polynomial algebra: exact multilinear pseudo-boolean functions (pbf/)
//		• Variable encodings: Unary, Binary, Arithmetic, OneHot, DomainWall,
//		  plus Bounded re-ranging (encoding/)
//		• Virtual model: source ↔ target bookkeeping and decode (vmodel/)
//		• Degree reduction: Rosenberg quadratization with safe penalties
//		  (quadratize/)
//		• Penalty calibration: ρ and θ bounds from objective spread (penalty/)
//		• Normal form: canonical linear/quadratic maps and dense matrices
//		  (qubo/)
//
// ✨ Why choose qubogen?
//
//   - Exact algebra – coefficients are never truncated unless you ask
//   - Strict sentinels – every failure matches a package-level error
//     via errors.Is
//   - Deterministic – canonical term ordering end to end; Stable mode
//     makes quadratization byte-for-byte reproducible
//   - Adapter-based – plug any source model and any target sampler
//     through two small interfaces
//
// The root package ties the subpackages into a single call:
//
//	res, err := qubogen.Compile(src, dst,
//		qubogen.WithDefaultMethod(encoding.Unary{}),
//		qubogen.WithPenaltyMargin(2))
//
// Compile validates eagerly, encodes every variable, substitutes the
// objective and constraints, turns inequalities into slacked equalities,
// squares residuals into penalty polynomials, calibrates multipliers,
// assembles the total energy, reduces it to degree ≤ 2, and hands the
// QUBO normal form to the target adapter. Result.Decode maps solver
// bits back onto source values.
//
//	go get github.com/katalvlaran/qubogen
package qubogen
