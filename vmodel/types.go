package vmodel

import (
	"github.com/katalvlaran/qubogen/encoding"
	"github.com/katalvlaran/qubogen/pbf"
)

// Target is the capability the virtual model needs from the target-model
// adapter: fresh binary ids plus a binary-domain constraint per id.
type Target interface {
	encoding.Allocator

	// AddBinaryDomain declares id as a 0/1 variable in the target model.
	AddBinaryDomain(id int) error
}

// VirtualVariable binds one source variable (or one constraint's slack) to
// its binary encoding. It is immutable after creation except for the
// encoding-penalty assignment.
type VirtualVariable struct {
	source     int
	hasSource  bool
	constraint int

	ids   []int
	value pbf.PBF

	chi    pbf.PBF
	hasChi bool

	theta float64
}

// Source returns the bound source id, or ok=false for a constraint slack.
func (v *VirtualVariable) Source() (id int, ok bool) {
	return v.source, v.hasSource
}

// Constraint returns the originating constraint id for a slack, or
// ok=false for a source-variable encoding.
func (v *VirtualVariable) Constraint() (id int, ok bool) {
	return v.constraint, !v.hasSource
}

// TargetIDs returns a copy of the owned target ids in allocation order.
func (v *VirtualVariable) TargetIDs() []int {
	if len(v.ids) == 0 {
		return nil
	}
	ids := make([]int, len(v.ids))
	copy(ids, v.ids)

	return ids
}

// Value returns ξ: the source quantity as a PBF over the target ids.
func (v *VirtualVariable) Value() pbf.PBF { return v.value }

// Validity returns χ and whether the encoding carries one. χ is zero iff
// the target bits form a semantically valid pattern.
func (v *VirtualVariable) Validity() (pbf.PBF, bool) { return v.chi, v.hasChi }

// Penalty returns the encoding penalty θ (0 until calibrated or set).
func (v *VirtualVariable) Penalty() float64 { return v.theta }

// SetPenalty assigns θ. Explicit caller values override calibrated ones;
// this is the only mutation a VirtualVariable permits after creation.
func (v *VirtualVariable) SetPenalty(theta float64) { v.theta = theta }
