package penalty_test

import (
	"testing"

	"github.com/katalvlaran/qubogen/pbf"
	"github.com/katalvlaran/qubogen/penalty"
	"github.com/stretchr/testify/assert"
)

// TestGridStep pins the residual-grid computation.
func TestGridStep(t *testing.T) {
	// Coefficients 1, 9 and constant 10 share the unit grid.
	r := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: 1},
		pbf.TermCoeff{Term: pbf.NewTerm(1), Coeff: 9},
		pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: -10},
	)
	assert.InDelta(t, 1, penalty.GridStep(r), 1e-9)

	// 0.5 and 0.75 land on the quarter grid.
	r = pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: 0.5},
		pbf.TermCoeff{Term: pbf.NewTerm(1), Coeff: 0.75},
	)
	assert.InDelta(t, 0.25, penalty.GridStep(r), 1e-9)

	// A constant residual's only attainable value is the constant.
	assert.InDelta(t, 7, penalty.GridStep(pbf.Constant(7)), 1e-9)

	// The zero polynomial has no grid.
	assert.Zero(t, penalty.GridStep(pbf.Zero()))
}

// TestRho pins S/g² + margin on a fractional residual grid.
func TestRho(t *testing.T) {
	// Objective spread S = |3| + |-2| = 5 (constant excluded).
	objective := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: 3},
		pbf.TermCoeff{Term: pbf.NewTerm(1), Coeff: -2},
		pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: 100},
	)
	// Residual on the half grid: g = 0.5, minimum violation g² = 0.25.
	residual := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0, 1), Coeff: 2},
		pbf.TermCoeff{Term: pbf.NewTerm(2), Coeff: 0.5},
	)

	assert.InDelta(t, 5.0/0.25+1, penalty.Rho(objective, residual), 1e-9)
	assert.InDelta(t, 5.0/0.25+3, penalty.Rho(objective, residual, penalty.WithMargin(3)), 1e-9)
}

// TestRho_SurvivesSquaringCancellation verifies the bound tracks the
// residual's attainable values, not the coefficients left in r² after
// cancellation: with r = x0 + 9·x1 − 10 the square has no coefficient
// below 18, yet r = −1 is attainable at (0,1) and must stay unprofitable
// against a spread-100 objective.
func TestRho_SurvivesSquaringCancellation(t *testing.T) {
	objective := pbf.FromTerm(pbf.NewTerm(0), 100)
	residual := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: 1},
		pbf.TermCoeff{Term: pbf.NewTerm(1), Coeff: 9},
		pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: -10},
	)

	rho := penalty.Rho(objective, residual)
	assert.InDelta(t, 101, rho, 1e-6)

	// The calibrated ρ keeps the sole feasible point (1,1) optimal.
	h := objective.Add(residual.Mul(residual).MulScalar(rho))
	feasible, err := h.Evaluate(map[int]bool{0: true, 1: true})
	assert.NoError(t, err)
	for mask := 0; mask < 4; mask++ {
		assign := map[int]bool{0: mask&1 != 0, 1: mask&2 != 0}
		if assign[0] && assign[1] {
			continue
		}
		e, evalErr := h.Evaluate(assign)
		assert.NoError(t, evalErr)
		assert.Greater(t, e, feasible, "violating %v must cost more than the feasible point", assign)
	}
}

// TestRho_VacuousConstraint verifies an empty residual gets the bare
// margin.
func TestRho_VacuousConstraint(t *testing.T) {
	objective := pbf.FromTerm(pbf.NewTerm(0), 4)

	assert.Equal(t, 1.0, penalty.Rho(objective, pbf.Zero()))
}

// TestTheta pins S + margin for integer-valued validity polynomials.
func TestTheta(t *testing.T) {
	objective := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: 3},
		pbf.TermCoeff{Term: pbf.NewTerm(1, 2), Coeff: -2},
	)

	assert.Equal(t, 6.0, penalty.Theta(objective))
	assert.Equal(t, 5.5, penalty.Theta(objective, penalty.WithMargin(0.5)))
}

// TestTheta_MakesViolationsUnprofitable verifies the calibrated θ beats
// any objective gain: for an objective over 3 one-hot bits, every invalid
// pattern must cost strictly more than any valid one can save.
func TestTheta_MakesViolationsUnprofitable(t *testing.T) {
	// Objective rewards setting bits: -1 per bit (minimization).
	objective := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: -1},
		pbf.TermCoeff{Term: pbf.NewTerm(1), Coeff: -1},
		pbf.TermCoeff{Term: pbf.NewTerm(2), Coeff: -1},
	)
	// χ = (y0+y1+y2 − 1)².
	sum := pbf.New(
		pbf.TermCoeff{Term: pbf.NewTerm(0), Coeff: 1},
		pbf.TermCoeff{Term: pbf.NewTerm(1), Coeff: 1},
		pbf.TermCoeff{Term: pbf.NewTerm(2), Coeff: 1},
		pbf.TermCoeff{Term: pbf.NewTerm(), Coeff: -1},
	)
	chi := sum.Mul(sum)

	theta := penalty.Theta(objective)
	h := objective.Add(chi.MulScalar(theta))

	bestValid, worstValid := 0.0, 0.0
	bestInvalid := 0.0
	first := true
	for mask := 0; mask < 8; mask++ {
		assign := map[int]bool{}
		ones := 0
		for v := 0; v < 3; v++ {
			set := mask&(1<<v) != 0
			assign[v] = set
			if set {
				ones++
			}
		}
		e, err := h.Evaluate(assign)
		assert.NoError(t, err)
		switch {
		case ones == 1:
			if first || e < bestValid {
				bestValid = e
			}
			if first || e > worstValid {
				worstValid = e
			}
			first = false
		case mask == 0 || bestInvalid > e:
			bestInvalid = e
		}
	}

	assert.Greater(t, bestInvalid, worstValid,
		"every invalid pattern must rank above every valid one")
}
