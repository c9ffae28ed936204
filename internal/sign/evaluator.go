package sign

import (
	"fmt"
	"math"

	"go.uber.org/zap"
)

// Evaluator computes signs for values of one Host. It keeps no per-call
// state and may be shared between goroutines if its Host allows that.
type Evaluator struct {
	host   Host
	limits Limits
	log    *zap.Logger
}

// EvaluatorOption configures an Evaluator.
type EvaluatorOption func(*Evaluator)

// WithLogger attaches a logger; classification traces go to Debug.
func WithLogger(logger *zap.Logger) EvaluatorOption {
	return func(e *Evaluator) {
		if logger != nil {
			e.log = logger
		}
	}
}

// WithLimits sets the diagnostic truncation limits.
func WithLimits(limits Limits) EvaluatorOption {
	return func(e *Evaluator) { e.limits = limits }
}

func New(host Host, opts ...EvaluatorOption) *Evaluator {
	e := &Evaluator{
		host:   host,
		limits: DefaultLimits(),
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Evaluator) Host() Host { return e.host }

// call holds the per-invocation arguments.
type call struct {
	fallback    Value
	hasFallback bool
	preprocess  PreprocessFunc
}

// Option configures one Sign call.
type Option func(*call)

// WithFallback makes Sign return v instead of an *ArgumentError. v may be
// nil.
func WithFallback(v Value) Option {
	return func(c *call) {
		c.fallback = v
		c.hasFallback = true
	}
}

// WithPreprocess installs a hook that runs before evaluation. A nil fn is
// ignored.
func WithPreprocess(fn PreprocessFunc) Option {
	return func(c *call) { c.preprocess = fn }
}

// Sign evaluates x.
//
// The returned error is an *ArgumentError when x has no sign and no
// fallback was given. Any other error means the host could not produce its
// zero constant; fallbacks do not cover that.
func (e *Evaluator) Sign(x Value, opts ...Option) (Result, error) {
	var c call
	for _, opt := range opts {
		opt(&c)
	}

	if c.preprocess != nil {
		out := e.runPreprocess(c.preprocess, x)
		switch out.Kind {
		case PreprocessOverride:
			return Result{Value: out.Value, Source: SourceOverride}, nil
		case PreprocessReplace:
			x = out.Value
			defer e.release(x)
		}
	}

	s, f, err := e.evaluate(x)
	if err != nil {
		return Result{}, err
	}
	if f == nil {
		return Result{Sign: s, Source: SourceSign}, nil
	}

	if c.hasFallback {
		e.log.Debug("substituting fallback",
			zap.Stringer("kind", f.kind),
			zap.NamedError("cause", f.cause))
		return Result{Value: c.fallback, Source: SourceFallback}, nil
	}
	return Result{}, e.formatError(x, f)
}

// evaluate runs the NaN fast path, the three zero comparisons and, when
// they are all false, the self-equality probe.
func (e *Evaluator) evaluate(x Value) (Sign, *failure, error) {
	if fx, ok := e.host.(FloatExtractor); ok {
		if v, ok := fx.Float(x); ok && math.IsNaN(v) {
			return NaN, nil, nil
		}
	}

	zero, err := e.host.Zero()
	if err != nil {
		return 0, nil, fmt.Errorf("signum.sign: zero constant: %w", err)
	}
	defer e.release(zero)

	gtOK, gtErr := e.host.Compare(x, zero, OpGT)
	gt := OutcomeOf(gtOK, gtErr)

	ltOK, ltErr := e.host.Compare(x, zero, OpLT)
	if ltErr != nil {
		return 0, &failure{kind: KindComparison, cause: firstErr(gtErr, ltErr)}, nil
	}
	lt := OutcomeOf(ltOK, nil)

	eqOK, eqErr := e.host.Compare(x, zero, OpEQ)
	if eqErr != nil {
		return 0, &failure{kind: KindComparison, cause: firstErr(gtErr, eqErr)}, nil
	}
	eq := OutcomeOf(eqOK, nil)

	class := Classify(gt, lt, eq)
	e.log.Debug("classified",
		zap.Stringer("gt", gt),
		zap.Stringer("lt", lt),
		zap.Stringer("eq", eq),
		zap.Stringer("class", class))

	switch class {
	case ClassDeterminate:
		switch {
		case gt == OutcomeTrue:
			return Positive, nil, nil
		case lt == OutcomeTrue:
			return Negative, nil, nil
		default:
			return Zero, nil, nil
		}
	case ClassAmbiguous:
		s, f := e.probeSelf(x)
		return s, f, nil
	default:
		if gtErr != nil {
			return 0, &failure{kind: KindComparison, cause: gtErr}, nil
		}
		return 0, &failure{kind: KindContradiction}, nil
	}
}

// probeSelf separates NaN (x != x) from values that equal themselves but
// are not ordered against zero.
func (e *Evaluator) probeSelf(x Value) (Sign, *failure) {
	same, err := e.host.Compare(x, x, OpEQ)
	switch {
	case err != nil:
		return 0, &failure{kind: KindSelfComparison, cause: err}
	case !same:
		return NaN, nil
	default:
		return 0, &failure{kind: KindIncomparable}
	}
}

func (e *Evaluator) release(v Value) {
	if r, ok := e.host.(Releaser); ok {
		r.Release(v)
	}
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
