package qubogen_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/qubogen"
	"github.com/katalvlaran/qubogen/encoding"
	"github.com/katalvlaran/qubogen/pbf"
	"github.com/katalvlaran/qubogen/qubo"
	"github.com/katalvlaran/qubogen/quadratize"
	"github.com/katalvlaran/qubogen/vmodel"
)

// memSource is an in-memory SourceModel.
type memSource struct {
	vars []qubogen.SourceVariable
	cons []qubogen.SourceConstraint
	obj  pbf.PBF
}

func (s memSource) Variables() []qubogen.SourceVariable     { return s.vars }
func (s memSource) Constraints() []qubogen.SourceConstraint { return s.cons }
func (s memSource) Objective() pbf.PBF                      { return s.obj }

// memTarget is an in-memory TargetModel handing out sequential ids.
type memTarget struct {
	next     int
	domains  map[int]bool
	normal   qubo.Normal
	exported bool
}

func newMemTarget() *memTarget { return &memTarget{domains: make(map[int]bool)} }

func (t *memTarget) AllocateBinary(n int) ([]int, error) {
	ids := make([]int, n)
	for i := range ids {
		ids[i] = t.next
		t.next++
	}

	return ids, nil
}

func (t *memTarget) AddBinaryDomain(id int) error {
	t.domains[id] = true

	return nil
}

func (t *memTarget) SetObjective(n qubo.Normal) error {
	t.normal, t.exported = n, true

	return nil
}

// x builds the linear monomial over one source id.
func x(id int) pbf.PBF { return pbf.FromTerm(pbf.NewTerm(id), 1) }

// bruteMin enumerates all 2^Vars assignments and returns the minimum
// energy with every assignment attaining it.
func bruteMin(n qubo.Normal) (float64, [][]bool) {
	var best float64
	var args [][]bool
	for mask := 0; mask < 1<<n.Vars; mask++ {
		assign := make([]bool, n.Vars)
		for i := range assign {
			assign[i] = mask&(1<<i) != 0
		}
		e := n.Energy(assign)
		switch {
		case len(args) == 0 || e < best:
			best, args = e, [][]bool{assign}
		case e == best:
			args = append(args, assign)
		}
	}

	return best, args
}

func TestCompile_NilModels(t *testing.T) {
	_, err := qubogen.Compile(nil, newMemTarget())
	assert.ErrorIs(t, err, qubogen.ErrNilModel)

	src := memSource{obj: pbf.Zero()}
	_, err = qubogen.Compile(src, nil)
	assert.ErrorIs(t, err, qubogen.ErrNilModel)
}

func TestCompile_LinearIntegerUnary(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 7, Name: "load", Domain: qubogen.DomainInteger, Lo: 0, Hi: 3},
		},
		obj: x(7),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst, qubogen.WithDefaultMethod(encoding.Unary{}))
	require.NoError(t, err)
	require.True(t, dst.exported)

	// [0,3] on the unit grid needs 3 unary bits; ξ = y0 + y1 + y2.
	assert.Equal(t, 3, res.Normal.Vars)
	assert.Equal(t, map[int]float64{0: 1, 1: 1, 2: 1}, res.Normal.Linear)
	assert.Empty(t, res.Normal.Quad)
	assert.Zero(t, res.Normal.Offset)
	assert.Empty(t, res.Aux)

	// Every allocated bit got a binary-domain declaration.
	assert.Len(t, dst.domains, 3)

	dec, err := res.Decode(map[int]bool{0: true, 1: true, 2: false})
	require.NoError(t, err)
	assert.InDelta(t, 2, dec.Source[7], 1e-12)
}

func TestCompile_BinaryVariable(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{{ID: 0, Domain: qubogen.DomainBinary}},
		obj:  x(0).MulScalar(2).Add(pbf.One()),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst)
	require.NoError(t, err)

	// A binary variable maps to exactly one target bit, ξ = y.
	assert.Equal(t, 1, res.Normal.Vars)
	assert.Equal(t, map[int]float64{0: 2}, res.Normal.Linear)
	assert.InDelta(t, 1, res.Normal.Offset, 1e-12)
}

func TestCompile_RealVariableResolution(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 1, Name: "ratio", Domain: qubogen.DomainReal, Lo: 0, Hi: 1},
		},
		obj: x(1),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst)
	require.NoError(t, err)

	// Default tolerance 0.01 under binary weights: 2^7-1 = 127 levels.
	vv, ok := res.Model.BySource(1)
	require.True(t, ok)
	assert.Len(t, vv.TargetIDs(), 7)

	all := make(map[int]bool)
	for _, id := range vv.TargetIDs() {
		all[id] = true
	}
	dec, err := res.Decode(all)
	require.NoError(t, err)
	assert.InDelta(t, 1, dec.Source[1], 1e-9)
}

func TestCompile_EqualityConstraint(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 0, Name: "pick-one", LHS: x(0).Add(x(1)), Relation: qubogen.Eq, RHS: 1},
		},
		obj: pbf.Zero(),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst)
	require.NoError(t, err)
	require.Contains(t, res.Rho, 0)

	best, args := bruteMin(res.Normal)
	assert.InDelta(t, 0, best, 1e-12)
	require.Len(t, args, 2)
	for _, a := range args {
		assert.NotEqual(t, a[0], a[1], "minima must satisfy x0 + x1 == 1")
	}
}

func TestCompile_LeConstraintWithSlack(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 3, LHS: x(0).Add(x(1)), Relation: qubogen.Le, RHS: 1},
		},
		obj: x(0).Neg().Sub(x(1)),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst)
	require.NoError(t, err)

	// Slack of span 1 adds one bit on top of the two variable bits.
	slack, ok := res.Model.SlackOf(3)
	require.True(t, ok)
	assert.Len(t, slack.TargetIDs(), 1)
	assert.Equal(t, 3, res.Normal.Vars)

	// Minimizing -x0-x1 under x0+x1 ≤ 1 picks exactly one of the two.
	best, args := bruteMin(res.Normal)
	assert.InDelta(t, -1, best, 1e-12)
	for _, a := range args {
		assert.NotEqual(t, a[0], a[1])
	}

	dec, err := res.Decode(map[int]bool{0: true, 1: false, 2: false})
	require.NoError(t, err)
	assert.InDelta(t, 0, dec.Slack[3], 1e-12)
}

func TestCompile_GeConstraintWithSlack(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 0, LHS: x(0).Add(x(1)), Relation: qubogen.Ge, RHS: 1},
		},
		obj: x(0).Add(x(1)),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst)
	require.NoError(t, err)

	// Minimizing x0+x1 under x0+x1 ≥ 1 again picks exactly one.
	best, args := bruteMin(res.Normal)
	assert.InDelta(t, 1, best, 1e-12)
	for _, a := range args {
		assert.NotEqual(t, a[0], a[1])
	}
}

func TestCompile_OneHotPenaltyRanksInvalidPatterns(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 5, Domain: qubogen.DomainInteger, Lo: 0, Hi: 2},
		},
		obj: x(5),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst,
		qubogen.WithVariableMethod(5, encoding.OneHot{}),
		qubogen.WithEncodingPenalty(5, 10),
	)
	require.NoError(t, err)
	require.Equal(t, 3, res.Normal.Vars)

	vv, ok := res.Model.BySource(5)
	require.True(t, ok)
	assert.InDelta(t, 10, vv.Penalty(), 1e-12)

	// Every invalid bit pattern must land strictly above every valid one.
	var maxValid, minInvalid float64
	haveValid, haveInvalid := false, false
	for mask := 0; mask < 8; mask++ {
		assign := []bool{mask&1 != 0, mask&2 != 0, mask&4 != 0}
		ones := 0
		for _, b := range assign {
			if b {
				ones++
			}
		}
		e := res.Normal.Energy(assign)
		if ones == 1 {
			if !haveValid || e > maxValid {
				maxValid, haveValid = e, true
			}
		} else if !haveInvalid || e < minInvalid {
			minInvalid, haveInvalid = e, true
		}
	}
	require.True(t, haveValid)
	require.True(t, haveInvalid)
	assert.Greater(t, minInvalid, maxValid)
}

func TestCompile_QuadraticConstraintQuadratizes(t *testing.T) {
	// (x0·x1 + x2 - 1)² carries a cubic cross term; reduction must kick in.
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
			{ID: 2, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 0, LHS: x(0).Mul(x(1)).Add(x(2)), Relation: qubogen.Eq, RHS: 1},
		},
		obj: pbf.Zero(),
	}
	dst := newMemTarget()

	res, err := qubogen.Compile(src, dst, qubogen.WithQuadratizeMode(quadratize.Stable))
	require.NoError(t, err)

	assert.Greater(t, res.Energy.Degree(), 2)
	assert.LessOrEqual(t, res.Reduced.Degree(), 2)
	require.NotEmpty(t, res.Aux)
	assert.Equal(t, 4, res.Normal.Vars)

	// Auxiliary bits got binary-domain declarations like any other bit.
	for _, a := range res.Aux {
		assert.True(t, dst.domains[a.ID])
	}

	best, args := bruteMin(res.Normal)
	assert.InDelta(t, 0, best, 1e-12)
	for _, a := range args {
		prod := 0.0
		if a[0] && a[1] {
			prod = 1
		}
		z := 0.0
		if a[2] {
			z = 1
		}
		assert.InDelta(t, 1, prod+z, 1e-12, "minima must satisfy x0·x1 + x2 == 1")
	}
}

func TestCompile_IncommensurateCoefficientsKeepOptimumFeasible(t *testing.T) {
	// x0 + 9·x1 == 10 forces (1,1); the squared residual's surviving
	// coefficients are all ≥ 18, yet the violation at (0,1) costs only 1.
	// Calibration must price that against the spread-100 objective.
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 0, LHS: x(0).Add(x(1).MulScalar(9)), Relation: qubogen.Eq, RHS: 10},
		},
		obj: x(0).MulScalar(100),
	}

	res, err := qubogen.Compile(src, newMemTarget())
	require.NoError(t, err)
	assert.InDelta(t, 101, res.Rho[0], 1e-6)

	best, args := bruteMin(res.Normal)
	assert.InDelta(t, 100, best, 1e-9)
	require.Len(t, args, 1)
	assert.Equal(t, []bool{true, true}, args[0], "the sole feasible point must stay optimal")
}

func TestCompile_SlackCoversNonPowerSpan(t *testing.T) {
	// Span-2 slack: a 2ⁿ−1 rescale would step by 2/3 and penalize
	// feasible points; the trimmed ladder hits 0, 1 and 2 exactly.
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
			{ID: 2, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 0, LHS: x(0).Add(x(1)).Add(x(2)), Relation: qubogen.Le, RHS: 2},
		},
		obj: pbf.Zero(),
	}

	res, err := qubogen.Compile(src, newMemTarget())
	require.NoError(t, err)

	slack, ok := res.Model.SlackOf(0)
	require.True(t, ok)
	assert.Len(t, slack.TargetIDs(), 2)

	best, args := bruteMin(res.Normal)
	assert.Equal(t, 0.0, best, "every feasible assignment needs an exact slack match")

	// All 7 feasible variable patterns must attain zero energy.
	feasible := map[[3]bool]bool{}
	for _, a := range args {
		ones := 0
		for _, b := range a[:3] {
			if b {
				ones++
			}
		}
		assert.LessOrEqual(t, ones, 2, "minima must satisfy the capacity")
		feasible[[3]bool{a[0], a[1], a[2]}] = true
	}
	assert.Len(t, feasible, 7)
}

func TestCompile_IntegerVariableExactGrid(t *testing.T) {
	// [0,4] has 5 levels: a 3-bit rescale would decode to multiples of
	// 4/7 and x == 3 would have no zero-penalty pattern.
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Name: "count", Domain: qubogen.DomainInteger, Lo: 0, Hi: 4},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 0, LHS: x(0), Relation: qubogen.Eq, RHS: 3},
		},
		obj: pbf.Zero(),
	}

	res, err := qubogen.Compile(src, newMemTarget())
	require.NoError(t, err)

	vv, ok := res.Model.BySource(0)
	require.True(t, ok)
	require.Len(t, vv.TargetIDs(), 3)

	// Every bit pattern decodes to a whole integer in [0, 4].
	for mask := 0; mask < 8; mask++ {
		assign := map[int]bool{0: mask&1 != 0, 1: mask&2 != 0, 2: mask&4 != 0}
		dec, decErr := res.Decode(assign)
		require.NoError(t, decErr)
		v := dec.Source[0]
		assert.InDelta(t, math.Round(v), v, 1e-12, "pattern %d decodes off the unit grid", mask)
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 4.0)
	}

	best, args := bruteMin(res.Normal)
	assert.Equal(t, 0.0, best, "x == 3 must have an exact zero-penalty pattern")
	for _, a := range args {
		assign := map[int]bool{}
		for i, b := range a {
			assign[i] = b
		}
		dec, decErr := res.Decode(assign)
		require.NoError(t, decErr)
		assert.InDelta(t, 3, dec.Source[0], 1e-12)
	}
}

func TestCompile_StableModeIsDeterministic(t *testing.T) {
	build := func() qubo.Normal {
		src := memSource{
			vars: []qubogen.SourceVariable{
				{ID: 0, Domain: qubogen.DomainBinary},
				{ID: 1, Domain: qubogen.DomainBinary},
				{ID: 2, Domain: qubogen.DomainBinary},
				{ID: 3, Domain: qubogen.DomainBinary},
			},
			cons: []qubogen.SourceConstraint{
				{ID: 0, LHS: x(0).Mul(x(1)).Add(x(2).Mul(x(3))), Relation: qubogen.Eq, RHS: 1},
			},
			obj: x(0).Sub(x(3)),
		}
		res, err := qubogen.Compile(src, newMemTarget(), qubogen.WithQuadratizeMode(quadratize.Stable))
		require.NoError(t, err)

		return res.Normal
	}

	first := build()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, build())
	}
}

func TestCompile_UnsupportedExpressionIsEager(t *testing.T) {
	cubic := x(0).Mul(x(1)).Mul(x(2))
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
			{ID: 2, Domain: qubogen.DomainBinary},
		},
		obj: cubic,
	}
	dst := newMemTarget()

	_, err := qubogen.Compile(src, dst)
	assert.ErrorIs(t, err, qubogen.ErrUnsupportedExpression)
	assert.Contains(t, err.Error(), "degree-3")

	// Validation precedes all target mutation.
	assert.Zero(t, dst.next)
	assert.False(t, dst.exported)
}

func TestCompile_UnsupportedRelation(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{{ID: 0, Domain: qubogen.DomainBinary}},
		cons: []qubogen.SourceConstraint{
			{ID: 0, Name: "strict", LHS: x(0), Relation: qubogen.Relation(9), RHS: 1},
		},
		obj: pbf.Zero(),
	}
	dst := newMemTarget()

	_, err := qubogen.Compile(src, dst)
	assert.ErrorIs(t, err, qubogen.ErrUnsupportedExpression)
	assert.Contains(t, err.Error(), `"strict"`)
	assert.Zero(t, dst.next)
}

func TestCompile_UnknownVariable(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{{ID: 0, Domain: qubogen.DomainBinary}},
		obj:  x(42),
	}

	_, err := qubogen.Compile(src, newMemTarget())
	assert.ErrorIs(t, err, qubogen.ErrUnknownVariable)
}

func TestCompile_DuplicateVariableID(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 0, Domain: qubogen.DomainBinary},
		},
		obj: x(0),
	}

	_, err := qubogen.Compile(src, newMemTarget())
	assert.ErrorIs(t, err, vmodel.ErrDuplicateEncoding)
}

func TestCompile_ConstraintPenaltyOverride(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainBinary},
			{ID: 1, Domain: qubogen.DomainBinary},
		},
		cons: []qubogen.SourceConstraint{
			{ID: 4, LHS: x(0).Add(x(1)), Relation: qubogen.Eq, RHS: 1},
		},
		obj: pbf.Zero(),
	}

	res, err := qubogen.Compile(src, newMemTarget(), qubogen.WithConstraintPenalty(4, 42))
	require.NoError(t, err)
	assert.InDelta(t, 42, res.Rho[4], 1e-12)

	// ρ scales the squared residual directly: a lone violated bit costs ρ.
	assert.InDelta(t, 42, res.Normal.Energy([]bool{false, false}), 1e-12)
}

func TestCompile_Rounding(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainReal, Lo: 0, Hi: 1},
		},
		obj: x(0),
	}

	res, err := qubogen.Compile(src, newMemTarget(),
		qubogen.WithRealTolerance(0.1),
		qubogen.WithRounding(3),
	)
	require.NoError(t, err)

	// 1/15 rounds to 0.067 at three digits.
	assert.InDelta(t, 0.067, res.Normal.Linear[0], 1e-12)
}

func TestCompile_VariableBitsOverride(t *testing.T) {
	src := memSource{
		vars: []qubogen.SourceVariable{
			{ID: 0, Domain: qubogen.DomainInteger, Lo: 0, Hi: 3},
		},
		obj: x(0),
	}

	res, err := qubogen.Compile(src, newMemTarget(),
		qubogen.WithDefaultMethod(encoding.Unary{}),
		qubogen.WithVariableBits(0, 6),
	)
	require.NoError(t, err)

	vv, ok := res.Model.BySource(0)
	require.True(t, ok)
	assert.Len(t, vv.TargetIDs(), 6)
}
