// Package qubogen: unified compile dispatcher.
//
// Compile runs the full pipeline: validate the source model, encode every
// variable, substitute the objective and constraints through the
// expansions, calibrate penalties, assemble the total energy, reduce it
// to degree ≤ 2, and export the QUBO normal form to the target model.
//
// Design principles:
//   - Eager validation: unsupported expressions abort before any encoding
//     work, naming the offending entity and function/relation pair.
//   - Strict sentinels: every failure wraps a package sentinel; callers
//     match with errors.Is across package boundaries.
//   - Exactness: no coefficient is truncated unless WithRounding asks.
//   - No partial output: on any error the target model receives nothing.

package qubogen

import (
	"fmt"

	"github.com/katalvlaran/qubogen/encoding"
	"github.com/katalvlaran/qubogen/pbf"
	"github.com/katalvlaran/qubogen/penalty"
	"github.com/katalvlaran/qubogen/quadratize"
	"github.com/katalvlaran/qubogen/qubo"
	"github.com/katalvlaran/qubogen/vmodel"
)

// Result is the outcome of one compilation. The retained Model decodes
// solver assignments back into source-variable values.
type Result struct {
	// Model is the virtual model built during compilation.
	Model *vmodel.Model

	// Energy is the assembled total energy ℍ before degree reduction.
	Energy pbf.PBF

	// Reduced is the degree ≤ 2 energy actually exported.
	Reduced pbf.PBF

	// Aux lists quadratization auxiliaries (empty when ℍ was already
	// quadratic).
	Aux []quadratize.Aux

	// Normal is the exported QUBO normal form.
	Normal qubo.Normal

	// Rho records the penalty multiplier chosen per constraint id.
	Rho map[int]float64
}

// Decode reconstructs source-variable (and slack) values from a 0/1
// assignment over all target ids.
func (r *Result) Decode(assign map[int]bool) (vmodel.Decoded, error) {
	return r.Model.Decode(assign)
}

// Compile transforms the source model into a QUBO on the target model.
//
// Errors: ErrNilModel, ErrUnsupportedExpression, ErrUnknownVariable, and
// the sentinels of the encoding, vmodel, quadratize and qubo packages.
// Compilation is all-or-nothing: no partial QUBO is ever exported.
func Compile(src SourceModel, dst TargetModel, opts ...Option) (*Result, error) {
	if src == nil || dst == nil {
		return nil, ErrNilModel
	}
	o := gatherOptions(opts)

	vars := src.Variables()
	cons := src.Constraints()
	objective := src.Objective()

	varIndex := make(map[int]SourceVariable, len(vars))
	for _, v := range vars {
		varIndex[v.ID] = v
	}
	if err := validate(vars, varIndex, cons, objective); err != nil {
		return nil, err
	}

	// Encode every source variable in declaration order.
	m := vmodel.New(vmodel.WithLogger(o.log))
	for _, v := range vars {
		method, spec := o.encodingFor(v)
		if _, err := m.Encode(dst, v.ID, method, spec); err != nil {
			return nil, fmt.Errorf("encoding %s: %w", variableName(v), err)
		}
	}

	// Substitute the objective through the expansions: ℍ₀.
	h0, err := m.Substitute(objective)
	if err != nil {
		return nil, fmt.Errorf("objective: %w", err)
	}

	// Per-constraint penalty polynomials ℍᵢ with multipliers ρᵢ.
	weighted := make([]vmodel.Weighted, 0, len(cons))
	rho := make(map[int]float64, len(cons))
	for _, c := range cons {
		hi, residual, cErr := constraintEnergy(m, dst, c, varIndex, o)
		if cErr != nil {
			return nil, cErr
		}
		r, set := o.conRho[c.ID]
		if !set {
			// Calibrate on the residual, not its square: squaring cancels
			// monomials and hides the smallest attainable violation.
			r = penalty.Rho(h0, residual, penalty.WithMargin(o.margin))
		}
		rho[c.ID] = r
		weighted = append(weighted, vmodel.Weighted{F: hi, Rho: r})
		o.log.Debug().Int("constraint", c.ID).Float64("rho", r).Msg("calibrated constraint")
	}

	// Encoding penalties θ for every validity-constrained expansion.
	for _, vv := range m.Variables() {
		if _, has := vv.Validity(); !has {
			continue
		}
		theta := penalty.Theta(h0, penalty.WithMargin(o.margin))
		if sid, ok := vv.Source(); ok {
			if t, set := o.varTheta[sid]; set {
				theta = t
			}
		}
		vv.SetPenalty(theta)
	}

	// Total energy ℍ = ℍ₀ + Σ ρᵢ·ℍᵢ + Σ θ·χ.
	h := m.Assemble(h0, weighted)
	if o.digits != noRounding {
		h = h.Round(o.digits)
	}

	res := &Result{Model: m, Energy: h, Reduced: h, Rho: rho}
	if h.Degree() > 2 {
		red, rErr := quadratize.Reduce(h, binaryAlloc{dst: dst}, quadratize.WithMode(o.mode))
		if rErr != nil {
			return nil, rErr
		}
		res.Reduced, res.Aux = red.F, red.Aux
		o.log.Debug().Int("aux", len(red.Aux)).Msg("quadratized energy")
	}

	normal, err := qubo.FromPBF(res.Reduced)
	if err != nil {
		return nil, err
	}
	// Cover every allocated target id, including bits the reduced energy
	// no longer mentions.
	if width := m.MaxTargetID() + 1; width > normal.Vars {
		normal.Vars = width
	}
	for _, a := range res.Aux {
		if a.ID+1 > normal.Vars {
			normal.Vars = a.ID + 1
		}
	}
	res.Normal = normal

	if err = dst.SetObjective(normal); err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	o.log.Info().
		Int("variables", normal.Vars).
		Int("linear", len(normal.Linear)).
		Int("quadratic", len(normal.Quad)).
		Msg("compiled QUBO")

	return res, nil
}

// constraintEnergy substitutes one constraint, attaches a slack for
// inequalities, and squares the residual into a penalty polynomial that
// is zero exactly on satisfying assignments. The un-squared residual is
// returned alongside for penalty calibration.
func constraintEnergy(m *vmodel.Model, dst TargetModel, c SourceConstraint, varIndex map[int]SourceVariable, o options) (pbf.PBF, pbf.PBF, error) {
	lhs, err := m.Substitute(c.LHS)
	if err != nil {
		return pbf.PBF{}, pbf.PBF{}, fmt.Errorf("constraint %s: %w", constraintName(c), err)
	}
	residual := lhs.Sub(pbf.Constant(c.RHS))

	if c.Relation != Eq {
		// LHS ≤ RHS becomes LHS + s = RHS with s ∈ [0, RHS − min(LHS)];
		// LHS ≥ RHS becomes LHS − s = RHS with s ∈ [0, max(LHS) − RHS].
		lo, hi := interval(c.LHS, varIndex)
		span := c.RHS - lo
		if c.Relation == Ge {
			span = hi - c.RHS
		}
		if span > 0 {
			method := o.slackMethod
			if method == nil {
				// Trimmed keeps the slack on the residual's own grid, so
				// every satisfiable residual value has an exact slack match.
				method = encoding.Trimmed{}
			}
			spec := encoding.Spec{Lo: 0, Hi: span, Tol: slackTolerance(c, varIndex, o)}
			slack, sErr := m.EncodeSlack(dst, c.ID, method, spec)
			if sErr != nil {
				return pbf.PBF{}, pbf.PBF{}, fmt.Errorf("slack for constraint %s: %w", constraintName(c), sErr)
			}
			if c.Relation == Le {
				residual = residual.Add(slack.Value())
			} else {
				residual = residual.Sub(slack.Value())
			}
		}
	}

	return residual.Mul(residual), residual, nil
}

// slackTolerance puts slacks on the unit grid for purely discrete
// constraints and on the real tolerance otherwise.
func slackTolerance(c SourceConstraint, varIndex map[int]SourceVariable, o options) float64 {
	for _, v := range c.LHS.Variables() {
		if varIndex[v].Domain == DomainReal {
			return o.realTol
		}
	}

	return DefaultIntegerTolerance
}

// validate rejects unsupported source models before any encoding work.
func validate(vars []SourceVariable, varIndex map[int]SourceVariable, cons []SourceConstraint, objective pbf.PBF) error {
	for _, v := range vars {
		switch v.Domain {
		case DomainBinary, DomainInteger, DomainReal:
		default:
			return fmt.Errorf("qubogen: %s has domain %s: %w", variableName(v), v.Domain, ErrUnsupportedExpression)
		}
	}

	if objective.Degree() > 2 {
		return fmt.Errorf("qubogen: objective uses %s: %w", functionKind(objective), ErrUnsupportedExpression)
	}
	if err := declared(objective, varIndex, "objective"); err != nil {
		return err
	}

	for _, c := range cons {
		switch c.Relation {
		case Eq, Le, Ge:
		default:
			return fmt.Errorf("qubogen: constraint %s uses %s %s: %w",
				constraintName(c), functionKind(c.LHS), c.Relation, ErrUnsupportedExpression)
		}
		if c.LHS.Degree() > 2 {
			return fmt.Errorf("qubogen: constraint %s uses %s %s: %w",
				constraintName(c), functionKind(c.LHS), c.Relation, ErrUnsupportedExpression)
		}
		if err := declared(c.LHS, varIndex, "constraint "+constraintName(c)); err != nil {
			return err
		}
	}

	return nil
}

// declared checks every variable of f against the declared set.
func declared(f pbf.PBF, varIndex map[int]SourceVariable, where string) error {
	for _, v := range f.Variables() {
		if _, ok := varIndex[v]; !ok {
			return fmt.Errorf("qubogen: %s references variable %d: %w", where, v, ErrUnknownVariable)
		}
	}

	return nil
}

// functionKind names an expression's shape for error messages.
func functionKind(f pbf.PBF) string {
	switch d := f.Degree(); {
	case d == 0:
		return "constant"
	case d == 1 && f.Size() == 1 && f.Offset() == 0:
		return "variable"
	case d == 1:
		return "affine"
	case d == 2:
		return "quadratic"
	default:
		return fmt.Sprintf("degree-%d", d)
	}
}

func variableName(v SourceVariable) string {
	if v.Name != "" {
		return fmt.Sprintf("variable %q", v.Name)
	}

	return fmt.Sprintf("variable %d", v.ID)
}

func constraintName(c SourceConstraint) string {
	if c.Name != "" {
		return fmt.Sprintf("%q", c.Name)
	}

	return fmt.Sprintf("%d", c.ID)
}

// encodingFor resolves the method and spec for one source variable.
// Without any override, integers go on the exact unit grid (Trimmed) and
// reals on the resolution-driven Binary ladder; a span rescale would
// decode "integers" to fractions whenever span+1 is not a power of two.
func (o options) encodingFor(v SourceVariable) (encoding.Method, encoding.Spec) {
	if v.Domain == DomainBinary {
		// A binary variable is its own encoding: one bit, ξ = y.
		return encoding.Unary{}, encoding.Spec{Lo: 0, Hi: 1, Bits: 1}
	}
	tol := DefaultIntegerTolerance
	if v.Domain == DomainReal {
		tol = o.realTol
	}
	method, ok := o.varMethod[v.ID]
	if !ok {
		method = o.defaultMethod
	}
	if method == nil {
		if v.Domain == DomainInteger {
			method = encoding.Trimmed{}
		} else {
			method = encoding.Binary{}
		}
	}

	return method, encoding.Spec{Lo: v.Lo, Hi: v.Hi, Tol: tol, Bits: o.varBits[v.ID]}
}

// binaryAlloc allocates quadratization auxiliaries and declares their
// binary domains in one step.
type binaryAlloc struct{ dst TargetModel }

func (a binaryAlloc) AllocateBinary(n int) ([]int, error) {
	ids, err := a.dst.AllocateBinary(n)
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		if err = a.dst.AddBinaryDomain(id); err != nil {
			return nil, err
		}
	}

	return ids, nil
}
