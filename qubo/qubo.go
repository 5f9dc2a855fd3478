package qubo

import (
	"errors"
	"math"

	"github.com/katalvlaran/qubogen/pbf"
	"gonum.org/v1/gonum/mat"
)

var (
	// ErrDegreeTooHigh is returned by FromPBF for a polynomial of degree
	// greater than 2 (quadratize first).
	ErrDegreeTooHigh = errors.New("qubo: polynomial degree exceeds 2")

	// ErrNegativeVariable is returned by FromPBF when a polynomial
	// references a negative variable id.
	ErrNegativeVariable = errors.New("qubo: negative variable id")
)

// Pair is a canonical quadratic index with I < J.
type Pair struct {
	I, J int
}

// Normal is the QUBO normal form:
//
//	E(x) = Scale·( Σ Linear[i]·xᵢ + Σ Quad[{i,j}]·xᵢ·xⱼ ) + Offset.
type Normal struct {
	// Vars is the number of binary variables (ids 0..Vars-1).
	Vars int

	// Linear maps variable index to its coefficient; zero entries absent.
	Linear map[int]float64

	// Quad maps canonical pairs (I < J) to coefficients; zero entries
	// absent.
	Quad map[Pair]float64

	// Scale multiplies every linear and quadratic coefficient.
	Scale float64

	// Offset is the assignment-independent energy.
	Offset float64
}

// FromPBF converts a degree ≤ 2 polynomial into normal form with Scale 1.
// Vars is the smallest count covering every referenced id; callers
// compiling against a wider target model may raise it afterwards.
//
// Errors:
//   - ErrDegreeTooHigh     — degree(f) > 2.
//   - ErrNegativeVariable  — f references a negative id.
func FromPBF(f pbf.PBF) (Normal, error) {
	if f.Degree() > 2 {
		return Normal{}, ErrDegreeTooHigh
	}

	n := Normal{
		Linear: make(map[int]float64),
		Quad:   make(map[Pair]float64),
		Scale:  1,
		Offset: f.Offset(),
	}
	for _, t := range f.Terms() {
		vars := t.Vars()
		if len(vars) > 0 && vars[0] < 0 {
			return Normal{}, ErrNegativeVariable
		}
		c := f.Coefficient(t)
		switch len(vars) {
		case 0:
			// Offset already captured.
		case 1:
			n.Linear[vars[0]] = c
			n.grow(vars[0])
		case 2:
			// Vars() is sorted, so the pair is already canonical.
			n.Quad[Pair{I: vars[0], J: vars[1]}] = c
			n.grow(vars[1])
		}
	}

	return n, nil
}

func (n *Normal) grow(id int) {
	if id+1 > n.Vars {
		n.Vars = id + 1
	}
}

// Energy evaluates the form at a 0/1 assignment of length ≥ Vars.
func (n Normal) Energy(assign []bool) float64 {
	e := 0.0
	for i, c := range n.Linear {
		if i < len(assign) && assign[i] {
			e += c
		}
	}
	for p, c := range n.Quad {
		if p.I < len(assign) && p.J < len(assign) && assign[p.I] && assign[p.J] {
			e += c
		}
	}

	return n.Scale*e + n.Offset
}

// Dense exports the form as a symmetric Vars×Vars matrix Q with
// Q[i][i] = Scale·Linear[i] and Q[i][j] = Q[j][i] = Scale·Quad[{i,j}]/2,
// so that xᵀQx + Offset reproduces Energy for 0/1 vectors x.
func (n Normal) Dense() *mat.SymDense {
	if n.Vars == 0 {
		return &mat.SymDense{}
	}
	q := mat.NewSymDense(n.Vars, nil)
	for i, c := range n.Linear {
		q.SetSym(i, i, n.Scale*c)
	}
	for p, c := range n.Quad {
		q.SetSym(p.I, p.J, n.Scale*c/2)
	}

	return q
}

// Normalize rescales the largest absolute coefficient to 1, folding the
// factor into Scale. A form with no terms is returned unchanged.
func (n Normal) Normalize() Normal {
	maxAbs := 0.0
	for _, c := range n.Linear {
		if a := math.Abs(c); a > maxAbs {
			maxAbs = a
		}
	}
	for _, c := range n.Quad {
		if a := math.Abs(c); a > maxAbs {
			maxAbs = a
		}
	}
	if maxAbs == 0 || maxAbs == 1 {
		return n.clone()
	}

	out := n.clone()
	out.Scale *= maxAbs
	for i, c := range out.Linear {
		out.Linear[i] = c / maxAbs
	}
	for p, c := range out.Quad {
		out.Quad[p] = c / maxAbs
	}

	return out
}

// Round rounds every coefficient (and the offset) to the given number of
// decimal digits, dropping entries that round to zero.
func (n Normal) Round(digits int) Normal {
	shift := math.Pow(10, float64(digits))
	round := func(v float64) float64 { return math.Round(v*shift) / shift }

	out := n.clone()
	out.Offset = round(out.Offset)
	for i, c := range out.Linear {
		if r := round(c); r != 0 {
			out.Linear[i] = r
		} else {
			delete(out.Linear, i)
		}
	}
	for p, c := range out.Quad {
		if r := round(c); r != 0 {
			out.Quad[p] = r
		} else {
			delete(out.Quad, p)
		}
	}

	return out
}

func (n Normal) clone() Normal {
	out := Normal{
		Vars:   n.Vars,
		Linear: make(map[int]float64, len(n.Linear)),
		Quad:   make(map[Pair]float64, len(n.Quad)),
		Scale:  n.Scale,
		Offset: n.Offset,
	}
	for i, c := range n.Linear {
		out.Linear[i] = c
	}
	for p, c := range n.Quad {
		out.Quad[p] = c
	}

	return out
}
