package qubogen

import (
	"strconv"

	"github.com/katalvlaran/qubogen/pbf"
	"github.com/katalvlaran/qubogen/qubo"
)

// Domain classifies a source variable's value set.
type Domain int

const (
	// DomainBinary is a 0/1 variable; bounds are implied.
	DomainBinary Domain = iota

	// DomainInteger is a bounded integer variable in [Lo, Hi].
	DomainInteger

	// DomainReal is a bounded real variable in [Lo, Hi], discretized to
	// the compilation's real tolerance.
	DomainReal
)

// String implements fmt.Stringer.
func (d Domain) String() string {
	switch d {
	case DomainBinary:
		return "binary"
	case DomainInteger:
		return "integer"
	case DomainReal:
		return "real"
	default:
		return "domain(" + strconv.Itoa(int(d)) + ")"
	}
}

// Relation classifies a constraint's comparison against its right-hand
// side.
type Relation int

const (
	// Eq is LHS == RHS.
	Eq Relation = iota

	// Le is LHS ≤ RHS.
	Le

	// Ge is LHS ≥ RHS.
	Ge
)

// String implements fmt.Stringer.
func (r Relation) String() string {
	switch r {
	case Eq:
		return "equality"
	case Le:
		return "less-equal"
	case Ge:
		return "greater-equal"
	default:
		return "relation(" + strconv.Itoa(int(r)) + ")"
	}
}

// SourceVariable describes one variable of the source model.
type SourceVariable struct {
	// ID is the source-side identifier, unique within the model.
	ID int

	// Name is an optional human-readable label for errors and logs.
	Name string

	// Domain classifies the value set.
	Domain Domain

	// Lo, Hi bound the value for integer and real domains; ignored for
	// binary variables.
	Lo, Hi float64
}

// SourceConstraint describes one constraint of the source model: an
// affine or quadratic left-hand side compared against a constant.
type SourceConstraint struct {
	// ID is the constraint identifier, unique within the model.
	ID int

	// Name is an optional human-readable label for errors and logs.
	Name string

	// LHS is the left-hand side over source-variable ids, degree ≤ 2.
	LHS pbf.PBF

	// Relation compares LHS against RHS.
	Relation Relation

	// RHS is the right-hand constant.
	RHS float64
}

// SourceModel is the adapter enumerating the problem to compile. All
// expressions are over source-variable ids.
type SourceModel interface {
	// Variables enumerates the source variables.
	Variables() []SourceVariable

	// Constraints enumerates the source constraints.
	Constraints() []SourceConstraint

	// Objective is the expression to minimize, degree ≤ 2.
	Objective() pbf.PBF
}

// TargetModel is the adapter receiving the compiled QUBO.
type TargetModel interface {
	// AllocateBinary returns n fresh target-variable ids.
	AllocateBinary(n int) ([]int, error)

	// AddBinaryDomain declares id as a 0/1 variable.
	AddBinaryDomain(id int) error

	// SetObjective receives the compiled energy in QUBO normal form.
	SetObjective(n qubo.Normal) error
}
