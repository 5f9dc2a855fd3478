package encoding

import "github.com/katalvlaran/qubogen/pbf"

// Allocator hands out fresh binary target-variable ids. It is the only
// capability an encoding method needs from the target model.
type Allocator interface {
	// AllocateBinary returns n fresh, never-before-issued ids.
	AllocateBinary(n int) ([]int, error)
}

// Spec describes the domain a method must cover.
//
// Fields:
//   - Lo, Hi — closed value interval the expansion maps onto. Lo == Hi
//     describes a degenerate fixed value (zero bits, constant ξ).
//   - Tol    — resolution tolerance for bit-count sizing: the chosen n is
//     the smallest with resolution(n) ≤ Tol. Ignored when Bits > 0.
//   - Bits   — explicit target-bit count; overrides the Tol-derived value.
type Spec struct {
	Lo, Hi float64
	Tol    float64
	Bits   int
}

// Span returns Hi − Lo.
func (s Spec) Span() float64 { return s.Hi - s.Lo }

// Expansion is the result of encoding one variable: the allocated target
// ids, the expansion polynomial ξ, and the optional validity constraint χ.
//
// Invariant: Value and Constraint reference only ids from IDs.
type Expansion struct {
	// IDs are the freshly allocated target ids, in allocation order.
	IDs []int

	// Value is ξ: the source quantity as a PBF over IDs.
	Value pbf.PBF

	// Constraint is χ: zero iff the bits form a valid pattern, strictly
	// positive otherwise. Meaningful only when HasConstraint is true.
	Constraint pbf.PBF

	// HasConstraint reports whether the method carries a validity
	// constraint (OneHot, DomainWall with at least two bits).
	HasConstraint bool
}

// Method is one variable-encoding strategy. Implementations are stateless
// value types; new strategies implement this interface without touching
// existing code.
type Method interface {
	// Name identifies the method in logs and error messages.
	Name() string

	// Bits reports how many target ids the method will allocate for s:
	// the explicit Spec.Bits when positive, otherwise the smallest count
	// whose resolution does not exceed Spec.Tol.
	Bits(s Spec) (int, error)

	// Expand allocates the ids and builds ξ and χ for s.
	Expand(alloc Allocator, s Spec) (Expansion, error)
}
