// Package qubogen: functional configuration for the compile dispatcher.
//
// Design goals mirror the rest of the module:
//   - no global state: configuration is threaded explicitly through
//     Compile and lives exactly as long as one compilation,
//   - per-entity overrides are keyed by stable source ids,
//   - every knob impacts behavior and is covered by tests.

package qubogen

import (
	"github.com/katalvlaran/qubogen/encoding"
	"github.com/katalvlaran/qubogen/penalty"
	"github.com/katalvlaran/qubogen/quadratize"
	"github.com/rs/zerolog"
)

// Defaults (single source of truth).
const (
	// DefaultIntegerTolerance lands integer encodings on the unit grid.
	DefaultIntegerTolerance = 1.0

	// DefaultRealTolerance is the discretization step for real variables
	// when the caller does not override it.
	DefaultRealTolerance = 0.01

	// noRounding disables the final coefficient rounding pass.
	noRounding = -1
)

// Option configures one compilation.
type Option func(*options)

type options struct {
	defaultMethod encoding.Method
	slackMethod   encoding.Method
	realTol       float64

	varMethod map[int]encoding.Method
	varBits   map[int]int
	varTheta  map[int]float64
	conRho    map[int]float64

	margin float64
	mode   quadratize.Mode
	digits int
	log    zerolog.Logger
}

func gatherOptions(opts []Option) options {
	o := options{
		realTol:   DefaultRealTolerance,
		varMethod: make(map[int]encoding.Method),
		varBits:   make(map[int]int),
		varTheta:  make(map[int]float64),
		conRho:    make(map[int]float64),
		margin:    penalty.DefaultMargin,
		mode:      quadratize.Default,
		digits:    noRounding,
		log:       zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithDefaultMethod selects the encoding used for integer and real
// variables without a per-variable override. When omitted, integers use
// Trimmed (exact unit grid) and reals use Binary (resolution-driven
// affine ladder). Note Binary rescales onto Span/(2ⁿ−1) steps, so
// forcing it onto integer variables loses grid exactness.
func WithDefaultMethod(m encoding.Method) Option {
	return func(o *options) { o.defaultMethod = m }
}

// WithSlackMethod selects the encoding used for inequality slacks
// (Trimmed when omitted, so slacks stay on the residual's grid).
func WithSlackMethod(m encoding.Method) Option {
	return func(o *options) { o.slackMethod = m }
}

// WithRealTolerance sets the discretization step for real variables.
// Validation happens at sizing time: a non-positive value surfaces as
// encoding.ErrInvalidTolerance from Compile.
func WithRealTolerance(tol float64) Option {
	return func(o *options) { o.realTol = tol }
}

// WithVariableMethod overrides the encoding method for one source
// variable.
func WithVariableMethod(id int, m encoding.Method) Option {
	return func(o *options) { o.varMethod[id] = m }
}

// WithVariableBits overrides the tolerance-derived bit count for one
// source variable.
func WithVariableBits(id, bits int) Option {
	return func(o *options) { o.varBits[id] = bits }
}

// WithEncodingPenalty sets θ for one source variable's validity
// constraint, overriding the calibrated value.
func WithEncodingPenalty(id int, theta float64) Option {
	return func(o *options) { o.varTheta[id] = theta }
}

// WithConstraintPenalty sets ρ for one constraint, overriding the
// calibrated value.
func WithConstraintPenalty(id int, rho float64) Option {
	return func(o *options) { o.conRho[id] = rho }
}

// WithPenaltyMargin overrides the additive margin used by penalty
// calibration.
func WithPenaltyMargin(m float64) Option {
	return func(o *options) { o.margin = m }
}

// WithQuadratizeMode selects the degree-reduction policy; Stable yields
// bit-identical outputs for identical inputs.
func WithQuadratizeMode(m quadratize.Mode) Option {
	return func(o *options) { o.mode = m }
}

// WithRounding rounds every energy coefficient to the given number of
// decimal digits before export. Rounding is the only place compilation
// ever truncates a coefficient.
func WithRounding(digits int) Option {
	return func(o *options) { o.digits = digits }
}

// WithLogger attaches a structured logger for stage-level compile
// tracing. The default is zerolog.Nop(): silent, no I/O.
func WithLogger(log zerolog.Logger) Option {
	return func(o *options) { o.log = log }
}
