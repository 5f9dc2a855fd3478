package vmodel

import (
	"fmt"

	"github.com/katalvlaran/qubogen/encoding"
	"github.com/katalvlaran/qubogen/pbf"
	"github.com/rs/zerolog"
)

// Model is the ordered registry of VirtualVariables for one compilation.
// It owns the source→encoding and target→encoding maps and enforces the
// target-id partition invariant.
//
// Model is not safe for concurrent mutation; compilation is the single
// logical writer.
type Model struct {
	vars     []*VirtualVariable
	bySource map[int]*VirtualVariable
	bySlack  map[int]*VirtualVariable
	byTarget map[int]*VirtualVariable

	log zerolog.Logger
}

// Option configures a Model at construction.
type Option func(*Model)

// WithLogger attaches a structured logger for encode/assembly tracing.
// The default is zerolog.Nop(): no output, no I/O.
func WithLogger(log zerolog.Logger) Option {
	return func(m *Model) { m.log = log }
}

// New returns an empty Model.
func New(opts ...Option) *Model {
	m := &Model{
		bySource: make(map[int]*VirtualVariable),
		bySlack:  make(map[int]*VirtualVariable),
		byTarget: make(map[int]*VirtualVariable),
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}

	return m
}

// Encode creates the VirtualVariable for source id src using the given
// method and spec:
//
//  1. the method sizes and allocates the target ids through tgt,
//  2. ξ and χ are built from the expansion,
//  3. every target id is registered to the new VirtualVariable — a
//     collision with an existing owner fails with ErrDuplicateEncoding,
//  4. every target id gets a binary-domain constraint in the target model,
//  5. the VirtualVariable is appended in creation order.
//
// Re-encoding an already encoded source id fails with ErrDuplicateEncoding
// before any allocation; the earlier encoding is never overwritten.
func (m *Model) Encode(tgt Target, src int, method encoding.Method, spec encoding.Spec) (*VirtualVariable, error) {
	if _, dup := m.bySource[src]; dup {
		return nil, fmt.Errorf("vmodel: source %d already encoded: %w", src, ErrDuplicateEncoding)
	}

	vv, err := m.expand(tgt, method, spec)
	if err != nil {
		return nil, err
	}
	vv.source, vv.hasSource = src, true
	m.bySource[src] = vv
	m.vars = append(m.vars, vv)

	m.log.Debug().
		Int("source", src).
		Str("method", method.Name()).
		Ints("targets", vv.ids).
		Bool("constrained", vv.hasChi).
		Msg("encoded variable")

	return vv, nil
}

// EncodeSlack creates the slack VirtualVariable for constraint id cid.
// The slack is registered under the constraint, not under any source id.
// Encoding a second slack for the same constraint fails with
// ErrDuplicateEncoding.
func (m *Model) EncodeSlack(tgt Target, cid int, method encoding.Method, spec encoding.Spec) (*VirtualVariable, error) {
	if _, dup := m.bySlack[cid]; dup {
		return nil, fmt.Errorf("vmodel: constraint %d already has a slack: %w", cid, ErrDuplicateEncoding)
	}

	vv, err := m.expand(tgt, method, spec)
	if err != nil {
		return nil, err
	}
	vv.constraint = cid
	m.bySlack[cid] = vv
	m.vars = append(m.vars, vv)

	m.log.Debug().
		Int("constraint", cid).
		Str("method", method.Name()).
		Ints("targets", vv.ids).
		Msg("encoded slack")

	return vv, nil
}

// expand runs the strategy and registers target-id ownership.
func (m *Model) expand(tgt Target, method encoding.Method, spec encoding.Spec) (*VirtualVariable, error) {
	if tgt == nil {
		return nil, ErrNilTarget
	}
	exp, err := method.Expand(tgt, spec)
	if err != nil {
		return nil, err
	}
	for _, id := range exp.IDs {
		if owner, owned := m.byTarget[id]; owned {
			return nil, fmt.Errorf("vmodel: target %d already owned by encoding of %s: %w",
				id, ownerName(owner), ErrDuplicateEncoding)
		}
	}

	vv := &VirtualVariable{
		ids:    exp.IDs,
		value:  exp.Value,
		chi:    exp.Constraint,
		hasChi: exp.HasConstraint,
	}
	// Declare every domain before registering ownership, so a mid-loop
	// failure cannot leave orphaned ids in the partition.
	for _, id := range exp.IDs {
		if err = tgt.AddBinaryDomain(id); err != nil {
			return nil, fmt.Errorf("vmodel: binary domain for target %d: %w", id, err)
		}
	}
	for _, id := range exp.IDs {
		m.byTarget[id] = vv
	}

	return vv, nil
}

func ownerName(v *VirtualVariable) string {
	if v.hasSource {
		return fmt.Sprintf("source %d", v.source)
	}

	return fmt.Sprintf("slack of constraint %d", v.constraint)
}

// BySource returns the VirtualVariable encoding source id src.
func (m *Model) BySource(src int) (*VirtualVariable, bool) {
	vv, ok := m.bySource[src]

	return vv, ok
}

// SlackOf returns the slack VirtualVariable of constraint cid.
func (m *Model) SlackOf(cid int) (*VirtualVariable, bool) {
	vv, ok := m.bySlack[cid]

	return vv, ok
}

// ByTarget returns the VirtualVariable owning target id.
func (m *Model) ByTarget(id int) (*VirtualVariable, bool) {
	vv, ok := m.byTarget[id]

	return vv, ok
}

// Variables returns the VirtualVariables in creation order.
func (m *Model) Variables() []*VirtualVariable {
	out := make([]*VirtualVariable, len(m.vars))
	copy(out, m.vars)

	return out
}

// Len reports the number of VirtualVariables.
func (m *Model) Len() int { return len(m.vars) }

// TargetCount reports the number of owned target ids.
func (m *Model) TargetCount() int { return len(m.byTarget) }

// MaxTargetID returns the largest owned target id (-1 when none).
func (m *Model) MaxTargetID() int {
	maxID := -1
	for id := range m.byTarget {
		if id > maxID {
			maxID = id
		}
	}

	return maxID
}

// Substitute replaces every source-variable occurrence in f by its ξ and
// returns the composed polynomial over target ids. Composition is exact:
// no coefficient is truncated.
//
// Errors:
//   - ErrUnknownSource when f references an id with no encoding.
//
// Complexity: a product of the referenced expansions per term of f.
func (m *Model) Substitute(f pbf.PBF) (pbf.PBF, error) {
	out := pbf.Zero()
	for _, t := range f.Terms() {
		g := pbf.Constant(f.Coefficient(t))
		for _, src := range t.Vars() {
			vv, ok := m.bySource[src]
			if !ok {
				return pbf.PBF{}, fmt.Errorf("vmodel: source %d in term %s: %w", src, t, ErrUnknownSource)
			}
			g = g.Mul(vv.Value())
		}
		out = out.Add(g)
	}

	return out, nil
}

// Weighted pairs a substituted constraint polynomial ℍᵢ with its penalty ρᵢ.
type Weighted struct {
	F   pbf.PBF
	Rho float64
}

// Assemble forms the total energy ℍ = ℍ₀ + Σ ρᵢ·ℍᵢ + Σ θ·χ over all
// VirtualVariables carrying a validity constraint. Inputs must already be
// substituted (purely over target ids).
func (m *Model) Assemble(objective pbf.PBF, constraints []Weighted) pbf.PBF {
	h := objective
	for _, c := range constraints {
		h = h.Add(c.F.MulScalar(c.Rho))
	}
	for _, vv := range m.vars {
		if chi, ok := vv.Validity(); ok {
			h = h.Add(chi.MulScalar(vv.Penalty()))
		}
	}

	m.log.Debug().
		Int("terms", h.Size()).
		Int("degree", h.Degree()).
		Msg("assembled energy")

	return h
}

// Decoded holds reconstructed source-side values for one 0/1 assignment.
type Decoded struct {
	// Source maps each encoded source id to its decoded value.
	Source map[int]float64

	// Slack maps each constraint id with a slack to the slack's value.
	Slack map[int]float64
}

// Decode evaluates every ξ at the given target-bit assignment and
// reconstructs the source variable (and slack) values.
//
// Errors:
//   - pbf.ErrNonConvertible when the assignment misses any owned target id.
func (m *Model) Decode(assign map[int]bool) (Decoded, error) {
	out := Decoded{
		Source: make(map[int]float64, len(m.bySource)),
		Slack:  make(map[int]float64, len(m.bySlack)),
	}
	for _, vv := range m.vars {
		v, err := vv.Value().Evaluate(assign)
		if err != nil {
			return Decoded{}, fmt.Errorf("vmodel: decoding %s: %w", ownerName(vv), err)
		}
		if vv.hasSource {
			out.Source[vv.source] = v
		} else {
			out.Slack[vv.constraint] = v
		}
	}

	return out, nil
}
