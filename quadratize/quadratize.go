package quadratize

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/qubogen/encoding"
	"github.com/katalvlaran/qubogen/pbf"
)

// Mode selects the term-selection policy.
type Mode int

const (
	// Default substitutes the most frequent pair first to reduce the
	// auxiliary count; output shape is not guaranteed stable.
	Default Mode = iota

	// Stable substitutes in canonical term order: identical inputs yield
	// bit-identical outputs.
	Stable
)

// ErrDegeneratePenalty flags an internal invariant violation: a chosen
// substitution whose penalty weight could not be bounded away from zero.
var ErrDegeneratePenalty = errors.New("quadratize: degenerate penalty weight")

// ErrNilAllocator is returned when Reduce is called without an allocator.
var ErrNilAllocator = errors.New("quadratize: nil allocator")

// Aux records one introduced auxiliary variable: ID is constrained by the
// added penalty to equal A AND B at any optimum.
type Aux struct {
	ID   int
	A, B int
}

// Result is the outcome of a reduction pass.
type Result struct {
	// F is the reduced polynomial, degree ≤ 2.
	F pbf.PBF

	// Aux lists the introduced auxiliaries in substitution order.
	Aux []Aux
}

// Option configures Reduce.
type Option func(*options)

type options struct {
	mode Mode
}

// WithMode selects the term-selection policy (Default when omitted).
func WithMode(m Mode) Option {
	return func(o *options) { o.mode = m }
}

// Reduce rewrites f into an equivalent polynomial of degree ≤ 2,
// allocating one fresh binary variable per substitution through alloc.
// The caller owns declaring binary domains for the returned auxiliaries.
//
// Errors:
//   - ErrNilAllocator     — alloc is nil while f needs reduction.
//   - ErrDegeneratePenalty — internal invariant violation (never expected
//     for finite canonical-form inputs).
func Reduce(f pbf.PBF, alloc encoding.Allocator, opts ...Option) (Result, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	res := Result{F: f}
	for res.F.Degree() > 2 {
		if alloc == nil {
			return Result{}, ErrNilAllocator
		}
		a, b := selectPair(res.F, o.mode)

		// Penalty mass: everything the substitution touches.
		weight := 0.0
		for _, t := range res.F.Terms() {
			if t.Degree() > 2 && t.Contains(a) && t.Contains(b) {
				weight += math.Abs(res.F.Coefficient(t))
			}
		}
		if weight <= 0 {
			return Result{}, ErrDegeneratePenalty
		}
		penalty := weight + 1

		ids, err := alloc.AllocateBinary(1)
		if err != nil {
			return Result{}, err
		}
		z := ids[0]

		res.F = substitute(res.F, a, b, z, penalty)
		res.Aux = append(res.Aux, Aux{ID: z, A: a, B: b})
	}

	return res, nil
}

// selectPair picks the variable pair to substitute next. The polynomial is
// guaranteed to have at least one term of degree > 2.
func selectPair(f pbf.PBF, mode Mode) (int, int) {
	if mode == Stable {
		// Canonically smallest highest-degree term; Terms() is already in
		// canonical order, so the last term has maximal degree and the
		// first of that degree is the canonical pick.
		deg := f.Degree()
		for _, t := range f.Terms() {
			if t.Degree() == deg {
				vars := t.Vars()

				return vars[0], vars[1]
			}
		}
	}

	// Heuristic: most frequent pair across all high-degree terms.
	type pair struct{ a, b int }
	counts := make(map[pair]int)
	for _, t := range f.Terms() {
		if t.Degree() <= 2 {
			continue
		}
		vars := t.Vars()
		for i := 0; i < len(vars); i++ {
			for j := i + 1; j < len(vars); j++ {
				counts[pair{vars[i], vars[j]}]++
			}
		}
	}
	best := pair{}
	bestCount := 0
	for p, c := range counts {
		if c > bestCount {
			best, bestCount = p, c
		}
	}

	return best.a, best.b
}

// substitute replaces {a, b} by z in every term of degree > 2 containing
// both, then adds Rosenberg's penalty P·(ab − 2az − 2bz + 3z).
func substitute(f pbf.PBF, a, b, z int, penalty float64) pbf.PBF {
	terms := f.Terms()
	pairs := make([]pbf.TermCoeff, 0, len(terms)+4)
	for _, t := range terms {
		c := f.Coefficient(t)
		if t.Degree() > 2 && t.Contains(a) && t.Contains(b) {
			kept := make([]int, 0, t.Degree()-1)
			for _, v := range t.Vars() {
				if v != a && v != b {
					kept = append(kept, v)
				}
			}
			kept = append(kept, z)
			sort.Ints(kept)
			pairs = append(pairs, pbf.TermCoeff{Term: pbf.NewTerm(kept...), Coeff: c})

			continue
		}
		pairs = append(pairs, pbf.TermCoeff{Term: t, Coeff: c})
	}

	pairs = append(pairs,
		pbf.TermCoeff{Term: pbf.NewTerm(a, b), Coeff: penalty},
		pbf.TermCoeff{Term: pbf.NewTerm(a, z), Coeff: -2 * penalty},
		pbf.TermCoeff{Term: pbf.NewTerm(b, z), Coeff: -2 * penalty},
		pbf.TermCoeff{Term: pbf.NewTerm(z), Coeff: 3 * penalty},
	)

	return pbf.New(pairs...)
}
