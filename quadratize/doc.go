// Package quadratize reduces a pseudo-boolean function of degree > 2 to an
// equivalent function of degree ≤ 2 by introducing auxiliary variables.
//
// 🚀 What is quadratization?
//
//	QUBO solvers accept only quadratic energies. A cubic (or higher)
//	polynomial must be rewritten: pick a variable pair (a, b) occurring in
//	a high-degree monomial, introduce a fresh auxiliary z meant to equal
//	a·b, substitute z for the pair in every high-degree monomial, and add
//	Rosenberg's penalty
//
//	    P·(a·b − 2·a·z − 2·b·z + 3·z)
//
//	which is zero when z = a·b and at least P otherwise. With P larger
//	than the total coefficient mass the substitution touched, minimizing
//	over z recovers the original value at every original-variable
//	assignment.
//
// ✨ Operating modes:
//   - Stable  — the substituted pair is always the first two variables of
//     the canonically smallest highest-degree term: same input, bit-
//     identical output. Required for reproducible testing.
//   - Default — the most frequent pair across high-degree terms is
//     substituted first, which tends to need fewer auxiliaries; no
//     determinism guarantee.
//
// ⚙️ Usage:
//
//	res, err := quadratize.Reduce(f, alloc, quadratize.WithMode(quadratize.Stable))
//	// res.F       — degree ≤ 2
//	// res.Aux     — introduced auxiliaries with their defining pairs
//
// Guarantee: for every 0/1 assignment of the original variables,
// min over the auxiliary assignments of res.F equals f at that assignment.
//
// Complexity: one substitution strictly reduces the total degree excess,
// so the pass terminates after at most Σ(deg(ω)−2) substitutions.
package quadratize
