package pbf

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// PBF is a pseudo-boolean function in canonical sparse form: a map from
// Term to a nonzero float64 coefficient. The zero value is the zero
// polynomial and is ready to use.
//
// PBF has value semantics: every operation returns a fresh PBF and never
// mutates its receiver or arguments, so values may be shared freely.
type PBF struct {
	terms map[string]monomial
}

type monomial struct {
	term  Term
	coeff float64
}

// TermCoeff pairs a Term with its coefficient, for bulk construction.
type TermCoeff struct {
	Term  Term
	Coeff float64
}

// Zero returns the zero polynomial.
func Zero() PBF { return PBF{} }

// Constant returns the constant polynomial c.
func Constant(c float64) PBF {
	if c == 0 {
		return PBF{}
	}

	return PBF{terms: map[string]monomial{"": {coeff: c}}}
}

// One returns the multiplicative identity (constant 1).
func One() PBF { return Constant(1) }

// FromTerm returns the single-monomial polynomial c·t.
func FromTerm(t Term, c float64) PBF {
	if c == 0 {
		return PBF{}
	}

	return PBF{terms: map[string]monomial{t.key: {term: t, coeff: c}}}
}

// New builds a PBF from (term, coefficient) pairs. Coefficients of repeated
// terms are summed; entries summing to zero are dropped, preserving the
// canonical-form invariant.
func New(pairs ...TermCoeff) PBF {
	acc := newAccumulator(len(pairs))
	for _, p := range pairs {
		acc.add(p.Term, p.Coeff)
	}

	return acc.finish()
}

// accumulator gathers term/coefficient contributions, summing collisions.
type accumulator struct {
	terms map[string]monomial
}

func newAccumulator(capacity int) accumulator {
	return accumulator{terms: make(map[string]monomial, capacity)}
}

func (a accumulator) add(t Term, c float64) {
	if c == 0 {
		return
	}
	m, ok := a.terms[t.key]
	if !ok {
		a.terms[t.key] = monomial{term: t, coeff: c}

		return
	}
	m.coeff += c
	if m.coeff == 0 {
		delete(a.terms, t.key)

		return
	}
	a.terms[t.key] = m
}

func (a accumulator) finish() PBF {
	if len(a.terms) == 0 {
		return PBF{}
	}

	return PBF{terms: a.terms}
}

// Add returns f + g.
//
// Complexity: O(|f| + |g|).
func (f PBF) Add(g PBF) PBF {
	acc := newAccumulator(len(f.terms) + len(g.terms))
	for _, m := range f.terms {
		acc.add(m.term, m.coeff)
	}
	for _, m := range g.terms {
		acc.add(m.term, m.coeff)
	}

	return acc.finish()
}

// Neg returns -f.
func (f PBF) Neg() PBF {
	return f.MulScalar(-1)
}

// Sub returns f - g.
func (f PBF) Sub(g PBF) PBF {
	return f.Add(g.Neg())
}

// Mul returns the product f·g: every term pair (ωᵢ, ωⱼ) contributes
// coeff(ωᵢ)·coeff(ωⱼ) to the union term ωᵢ ∪ ωⱼ. Idempotence of 0/1
// variables keeps the result multilinear.
//
// Complexity: O(|f| · |g|) term pairs.
func (f PBF) Mul(g PBF) PBF {
	acc := newAccumulator(len(f.terms) * len(g.terms))
	for _, mf := range f.terms {
		for _, mg := range g.terms {
			acc.add(mf.term.Union(mg.term), mf.coeff*mg.coeff)
		}
	}

	return acc.finish()
}

// MulScalar returns c·f.
func (f PBF) MulScalar(c float64) PBF {
	if c == 0 {
		return PBF{}
	}
	out := make(map[string]monomial, len(f.terms))
	for k, m := range f.terms {
		out[k] = monomial{term: m.term, coeff: m.coeff * c}
	}

	return PBF{terms: out}.prune()
}

// DivScalar returns f/c.
//
// Errors:
//   - ErrDivideByZero when c == 0.
func (f PBF) DivScalar(c float64) (PBF, error) {
	if c == 0 {
		return PBF{}, ErrDivideByZero
	}

	return f.MulScalar(1 / c), nil
}

// Power returns fⁿ by repeated multiplication. Power(0) is the constant 1,
// Power(1) is f itself.
//
// Errors:
//   - ErrInvalidPower when n < 0.
func (f PBF) Power(n int) (PBF, error) {
	switch {
	case n < 0:
		return PBF{}, ErrInvalidPower
	case n == 0:
		return One(), nil
	}
	out := f
	for i := 1; i < n; i++ {
		out = out.Mul(f)
	}

	return out, nil
}

// EvaluatePartial fixes the given variables and returns the residual PBF
// over the remaining ones. A term containing a variable assigned false is
// dropped; variables assigned true are removed from their terms; terms
// colliding after reduction are summed.
//
// Complexity: O(Σ degree) over all terms.
func (f PBF) EvaluatePartial(assign map[int]bool) PBF {
	if len(assign) == 0 || len(f.terms) == 0 {
		return f
	}
	acc := newAccumulator(len(f.terms))
	for _, m := range f.terms {
		keep := m.term.vars[:0:0] // fresh slice; never alias the input
		dead := false
		for _, v := range m.term.vars {
			val, fixed := assign[v]
			switch {
			case !fixed:
				keep = append(keep, v)
			case !val:
				dead = true
			}
			if dead {
				break
			}
		}
		if dead {
			continue
		}
		acc.add(Term{vars: keep, key: termKey(keep)}, m.coeff)
	}

	return acc.finish()
}

// Evaluate fixes every variable of f and returns the resulting scalar.
//
// Errors:
//   - ErrNonConvertible when some variable of f is not assigned.
func (f PBF) Evaluate(assign map[int]bool) (float64, error) {
	return f.EvaluatePartial(assign).Scalar()
}

// Scalar collapses f to a number: 0 for the zero polynomial, the constant
// coefficient for a degree-0 polynomial.
//
// Errors:
//   - ErrNonConvertible when f has any non-constant term.
func (f PBF) Scalar() (float64, error) {
	if f.Size() > 0 {
		return 0, ErrNonConvertible
	}

	return f.Offset(), nil
}

// Offset returns the coefficient of the constant term (0 if absent).
func (f PBF) Offset() float64 {
	return f.terms[""].coeff
}

// Coefficient returns the coefficient of term t (0 if absent).
func (f PBF) Coefficient(t Term) float64 {
	return f.terms[t.key].coeff
}

// Degree reports the size of the largest term: 0 for the zero polynomial
// or a constant, 1 for affine, 2 for quadratic, and so on.
func (f PBF) Degree() int {
	d := 0
	for _, m := range f.terms {
		if m.term.Degree() > d {
			d = m.term.Degree()
		}
	}

	return d
}

// Size reports the number of non-constant terms.
func (f PBF) Size() int {
	n := len(f.terms)
	if _, ok := f.terms[""]; ok {
		n--
	}

	return n
}

// IsZero reports whether f is the zero polynomial.
func (f PBF) IsZero() bool { return len(f.terms) == 0 }

// Equal reports canonical map equality: same terms, same coefficients.
func (f PBF) Equal(g PBF) bool {
	if len(f.terms) != len(g.terms) {
		return false
	}
	for k, m := range f.terms {
		if g.terms[k].coeff != m.coeff {
			return false
		}
	}

	return true
}

// Terms returns every term of f (the constant term included, when present)
// in canonical order: degree ascending, then variable ids lexicographic.
func (f PBF) Terms() []Term {
	out := make([]Term, 0, len(f.terms))
	for _, m := range f.terms {
		out = append(out, m.term)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Compare(out[j]) < 0 })

	return out
}

// Variables returns the sorted distinct variable ids appearing in f.
func (f PBF) Variables() []int {
	seen := make(map[int]struct{})
	for _, m := range f.terms {
		for _, v := range m.term.vars {
			seen[v] = struct{}{}
		}
	}
	out := make([]int, 0, len(seen))
	for v := range seen {
		out = append(out, v)
	}
	sort.Ints(out)

	return out
}

// Round rounds every coefficient to the given number of decimal digits,
// dropping entries that round to zero.
func (f PBF) Round(digits int) PBF {
	shift := math.Pow(10, float64(digits))
	out := make(map[string]monomial, len(f.terms))
	for k, m := range f.terms {
		c := math.Round(m.coeff*shift) / shift
		if c != 0 {
			out[k] = monomial{term: m.term, coeff: c}
		}
	}
	if len(out) == 0 {
		return PBF{}
	}

	return PBF{terms: out}
}

// SumAbs returns the sum of absolute values of all non-constant
// coefficients. Penalty calibration uses it as a conservative bound on
// how much the polynomial can move between two assignments.
func (f PBF) SumAbs() float64 {
	s := 0.0
	for k, m := range f.terms {
		if k == "" {
			continue
		}
		s += math.Abs(m.coeff)
	}

	return s
}

// MaxAbs returns the largest absolute non-constant coefficient (0 if none).
func (f PBF) MaxAbs() float64 {
	c := 0.0
	for k, m := range f.terms {
		if k == "" {
			continue
		}
		if a := math.Abs(m.coeff); a > c {
			c = a
		}
	}

	return c
}

// MinAbs returns the smallest absolute non-constant coefficient (0 if none).
func (f PBF) MinAbs() float64 {
	c := math.Inf(1)
	seen := false
	for k, m := range f.terms {
		if k == "" {
			continue
		}
		seen = true
		if a := math.Abs(m.coeff); a < c {
			c = a
		}
	}
	if !seen {
		return 0
	}

	return c
}

// String renders f deterministically in canonical term order, e.g.
// "2 + 3·x0 - x1·x2". The zero polynomial renders as "0".
func (f PBF) String() string {
	if len(f.terms) == 0 {
		return "0"
	}
	var b strings.Builder
	for i, t := range f.Terms() {
		c := f.terms[t.key].coeff
		switch {
		case i == 0 && c < 0:
			b.WriteString("-")
			c = -c
		case i > 0 && c < 0:
			b.WriteString(" - ")
			c = -c
		case i > 0:
			b.WriteString(" + ")
		}
		switch {
		case t.IsConstant():
			b.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
		case c == 1:
			b.WriteString(t.String())
		default:
			b.WriteString(strconv.FormatFloat(c, 'g', -1, 64))
			b.WriteString("·")
			b.WriteString(t.String())
		}
	}

	return b.String()
}

// prune drops zero entries, restoring canonical form after scaling.
func (f PBF) prune() PBF {
	for k, m := range f.terms {
		if m.coeff == 0 {
			delete(f.terms, k)
		}
	}
	if len(f.terms) == 0 {
		return PBF{}
	}

	return f
}
