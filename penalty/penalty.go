package penalty

import (
	"math"

	"github.com/katalvlaran/qubogen/pbf"
	"gonum.org/v1/gonum/floats"
)

// DefaultMargin is added on top of the S/m ratio so the inequality is
// strict even when the ratio itself is attained.
const DefaultMargin = 1.0

// gridTolerance bounds the relative precision of the real-valued GCD in
// GridStep; steps below maxAbs·gridTolerance are treated as fp noise.
const gridTolerance = 1e-9

// Option configures calibration.
type Option func(*options)

type options struct {
	margin float64
}

// WithMargin overrides the additive safety margin (must be > 0 for the
// strictness guarantee; smaller values tighten the energy landscape at
// the caller's risk).
func WithMargin(m float64) Option {
	return func(o *options) { o.margin = m }
}

func gather(opts []Option) options {
	o := options{margin: DefaultMargin}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// objectiveSpread returns S: the sum of absolute non-constant objective
// coefficients — an upper bound on how much the objective can move
// between any two assignments.
func objectiveSpread(objective pbf.PBF) float64 {
	terms := objective.Terms()
	abs := make([]float64, 0, len(terms))
	for _, t := range terms {
		if t.IsConstant() {
			continue
		}
		abs = append(abs, math.Abs(objective.Coefficient(t)))
	}

	return floats.Sum(abs)
}

// GridStep returns the coarsest g such that every coefficient of f, the
// constant included, is an integer multiple of g within fp tolerance.
// Every attainable value of f is an integer combination of its
// coefficients, so every attainable value is a multiple of g and the
// smallest attainable nonzero |f| is at least g.
//
// Returns 0 for the zero polynomial. Near-incommensurate coefficients
// drive g down to the fp noise floor; the result stays a valid lower
// bound, just a very small one.
func GridStep(f pbf.PBF) float64 {
	terms := f.Terms()
	abs := make([]float64, 0, len(terms)+1)
	if c := f.Offset(); c != 0 {
		abs = append(abs, math.Abs(c))
	}
	for _, t := range terms {
		if t.IsConstant() {
			continue
		}
		abs = append(abs, math.Abs(f.Coefficient(t)))
	}
	if len(abs) == 0 {
		return 0
	}

	tol := floats.Max(abs) * gridTolerance
	g := abs[0]
	for _, c := range abs[1:] {
		g = realGCD(g, c, tol)
	}
	if g < tol {
		g = tol
	}

	return g
}

// realGCD runs the Euclidean algorithm on reals, stopping once the
// remainder drops below tol.
func realGCD(a, b, tol float64) float64 {
	for b > tol {
		a, b = b, math.Mod(a, b)
	}

	return a
}

// Rho computes the penalty multiplier for one constraint given its
// residual r (the un-squared polynomial whose zero set is the feasible
// region; the penalty applied is ℍᵢ = r²).
//
// Every attainable value of r sits on the grid of GridStep(r), so a
// violating assignment pays at least g² through r². ρ = S/g² + margin
// then prices any violation above the whole objective spread.
//
// A residual with no terms at all is vacuous and gets the bare margin.
//
// Note the grid, not the smallest coefficient of r², is what bounds the
// violation: squaring cancels monomials and its surviving coefficients
// say nothing about the smallest attainable nonzero value.
func Rho(objective, residual pbf.PBF, opts ...Option) float64 {
	o := gather(opts)
	g := GridStep(residual)
	if g == 0 {
		return o.margin
	}

	return objectiveSpread(objective)/(g*g) + o.margin
}

// Theta computes the penalty multiplier for an encoding validity
// polynomial χ. The χ built by the encoding package (OneHot, DomainWall)
// are integer-valued and at least 1 on every invalid pattern, so the
// minimum violation increment is 1 and θ = S + margin suffices.
func Theta(objective pbf.PBF, opts ...Option) float64 {
	o := gather(opts)

	return objectiveSpread(objective) + o.margin
}
