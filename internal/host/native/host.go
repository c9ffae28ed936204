// Package native is the sign.Host for plain Go values.
//
// Numbers of every built-in kind, named numeric types such as
// time.Duration, bool (false = 0, true = 1), *big.Int, *big.Rat and
// *big.Float are ordered exactly against each other. Complex numbers support
// equality but not ordering. Types implementing sign.Orderable define their
// own comparisons. Everything else (strings, slices, maps, structs, nil)
// compares unequal to numbers and cannot be ordered.
package native

import (
	"fmt"
	"reflect"

	"signum/internal/sign"
)

// Floater lets a type offer a direct float64 conversion for the NaN fast
// path.
type Floater interface {
	Float64() (float64, error)
}

// Reprer overrides the display form used in diagnostics.
type Reprer interface {
	Repr() (string, error)
}

// Host implements sign.Host, sign.FloatExtractor. The zero value is ready
// to use.
type Host struct{}

var (
	_ sign.Host           = Host{}
	_ sign.FloatExtractor = Host{}
)

// New returns an evaluator over Go values.
func New(opts ...sign.EvaluatorOption) *sign.Evaluator {
	return sign.New(Host{}, opts...)
}

func (Host) Zero() (sign.Value, error) { return 0, nil }

func (Host) Compare(x, y sign.Value, op sign.Op) (ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			ok, err = false, fmt.Errorf("%v", r)
		}
	}()

	if o, isOrd := x.(sign.Orderable); isOrd {
		return compareOrderable(o, y, op)
	}
	if o, isOrd := y.(sign.Orderable); isOrd {
		// Reflected: x > y is y < x; equality is symmetric.
		return compareOrderable(o, x, reflectOp(op))
	}

	a, aok := toNumber(x)
	b, bok := toNumber(y)
	if aok && bok {
		return compareNumbers(a, b, op)
	}

	if op == sign.OpEQ {
		return equalOpaque(x, y), nil
	}
	return false, fmt.Errorf("'%s' not supported between instances of '%s' and '%s'",
		op, typeName(x), typeName(y))
}

func (h Host) Float(x sign.Value) (f float64, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			f, ok = 0, false
		}
	}()

	if fl, isFloater := x.(Floater); isFloater {
		v, err := fl.Float64()
		if err != nil {
			return 0, false
		}
		return v, true
	}
	return toFloat64(x)
}

func (Host) Repr(x sign.Value) (s string, err error) {
	defer func() {
		if r := recover(); r != nil {
			s, err = "", fmt.Errorf("repr: %v", r)
		}
	}()
	return repr(x)
}

func (Host) TypeName(x sign.Value) string { return typeName(x) }

func compareOrderable(o sign.Orderable, other sign.Value, op sign.Op) (bool, error) {
	switch op {
	case sign.OpGT:
		return o.GreaterThan(other)
	case sign.OpLT:
		return o.LessThan(other)
	default:
		return o.Equal(other)
	}
}

func reflectOp(op sign.Op) sign.Op {
	switch op {
	case sign.OpGT:
		return sign.OpLT
	case sign.OpLT:
		return sign.OpGT
	default:
		return op
	}
}

// equalOpaque compares values that are not both numbers. Different
// dynamic types are never equal; uncomparable types fall back to deep
// equality.
func equalOpaque(x, y sign.Value) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}
	if reflect.TypeOf(x) != reflect.TypeOf(y) {
		return false
	}
	if reflect.TypeOf(x).Comparable() {
		return x == y
	}
	return reflect.DeepEqual(x, y)
}

func typeName(x sign.Value) string {
	if x == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", x)
}
