package encoding

// Bounded wraps a ladder method (Unary, Binary or Arithmetic) and rescales
// its expansion into the closed interval [Lo, Hi], regardless of the
// interval the caller's Spec carries. Bit counts follow the inner method's
// minimality rule against the wrapper's interval; an explicit Spec.Bits
// still overrides the tolerance-derived value.
type Bounded struct {
	// Inner is the wrapped ladder method.
	Inner Method

	// Lo, Hi is the interval the expansion is rescaled onto.
	Lo, Hi float64
}

// Name implements Method.
func (b Bounded) Name() string { return "bounded(" + b.innerName() + ")" }

func (b Bounded) innerName() string {
	if b.Inner == nil {
		return "nil"
	}

	return b.Inner.Name()
}

// rebound substitutes the wrapper's interval into the Spec.
func (b Bounded) rebound(s Spec) (Spec, error) {
	switch b.Inner.(type) {
	case Unary, Binary, Arithmetic:
	default:
		return Spec{}, ErrInvalidInner
	}

	return Spec{Lo: b.Lo, Hi: b.Hi, Tol: s.Tol, Bits: s.Bits}, nil
}

// Bits implements Method.
func (b Bounded) Bits(s Spec) (int, error) {
	inner, err := b.rebound(s)
	if err != nil {
		return 0, err
	}

	return b.Inner.Bits(inner)
}

// Expand implements Method.
func (b Bounded) Expand(alloc Allocator, s Spec) (Expansion, error) {
	inner, err := b.rebound(s)
	if err != nil {
		return Expansion{}, err
	}

	return b.Inner.Expand(alloc, inner)
}
