package sign

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument matches every *ArgumentError via errors.Is.
var ErrInvalidArgument = errors.New("signum.sign: invalid argument")

// Kind classifies why no sign could be assigned.
type Kind uint8

const (
	// KindComparison: a zero comparison failed.
	KindComparison Kind = iota
	// KindSelfComparison: the x == x probe failed.
	KindSelfComparison
	// KindContradiction: more than one zero comparison held.
	KindContradiction
	// KindIncomparable: x == x, yet x is neither >, < nor == zero.
	KindIncomparable
)

func (k Kind) String() string {
	switch k {
	case KindComparison:
		return "comparison_failure"
	case KindSelfComparison:
		return "self_comparison_failure"
	case KindContradiction:
		return "contradiction"
	case KindIncomparable:
		return "incomparable"
	default:
		return "unknown"
	}
}

// ArgumentError is returned when a value has no sign and no fallback was
// supplied.
type ArgumentError struct {
	Kind     Kind
	Repr     string
	ReprOK   bool
	TypeName string
	// Cause is the host failure, nil for contradictions and incomparable
	// values.
	Cause  error
	limits Limits
}

func (e *ArgumentError) Error() string {
	typeName := truncate(e.TypeName, e.limits.TypeName)

	if e.Cause != nil {
		repr := "???"
		if e.ReprOK {
			repr = truncate(e.Repr, e.limits.Repr)
		}
		return fmt.Sprintf("signum.sign: invalid argument `%s` (type '%s'). Inner error: %s",
			repr, typeName, truncate(e.Cause.Error(), e.limits.Inner))
	}

	if !e.ReprOK {
		return fmt.Sprintf("signum.sign: invalid argument of type '%s', "+
			"which does not support order comparisons (>, <, ==) and printing.", typeName)
	}
	return fmt.Sprintf("signum.sign: invalid argument `%s`. "+
		"Type '%s' does not support order comparisons (>, <, ==) or NaN detection.",
		truncate(e.Repr, e.limits.Repr), typeName)
}

func (e *ArgumentError) Unwrap() error { return e.Cause }

func (e *ArgumentError) Is(target error) bool { return target == ErrInvalidArgument }

// failure is the internal record of an error path before it is resolved to
// a fallback or an ArgumentError.
type failure struct {
	kind  Kind
	cause error
}

// formatError builds the diagnostic for x.
func (e *Evaluator) formatError(x Value, f *failure) *ArgumentError {
	repr, err := e.host.Repr(x)
	return &ArgumentError{
		Kind:     f.kind,
		Repr:     repr,
		ReprOK:   err == nil,
		TypeName: e.host.TypeName(x),
		Cause:    f.cause,
		limits:   e.limits,
	}
}
