// Package penalty calibrates constraint and encoding penalty multipliers.
//
// 🚀 Why calibrate?
//
//	The total energy ℍ = ℍ₀ + Σ ρᵢ·ℍᵢ + Σ θ·χ only enforces constraints
//	if violating one can never pay off: the penalty a violation adds must
//	strictly exceed the largest objective improvement the violator could
//	buy with it.
//
// 📐 The bound:
//
//	Between any two 0/1 assignments the objective can move by at most
//	S = Σ |cᵢ| over its non-constant coefficients. A violated constraint
//	penalty ℍᵢ = r² increases by at least m = g², where g = GridStep(r)
//	is the coarsest grid holding every coefficient of the residual r:
//	every attainable r is an integer combination of its coefficients, so
//	the smallest nonzero |r| is at least g. For the integer-valued
//	validity polynomials of OneHot and DomainWall, m is exactly 1. Any
//
//	    ρ > S / m
//
//	therefore makes every violating assignment strictly worse than the
//	best feasible one. Rho and Theta return S/m + margin with a default
//	margin of 1, deliberately conservative: correctness over tightness.
//	The bound works on the residual before squaring on purpose — the
//	coefficients of r² cancel across monomials and can sit far above the
//	smallest value r² actually attains.
//
// Explicit user-set multipliers always override calibrated ones; the
// compiler applies overrides after calling into this package.
package penalty
