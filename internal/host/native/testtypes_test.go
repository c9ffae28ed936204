package native

import (
	"errors"
	"fmt"

	"signum/internal/sign"
)

// myNumber orders itself through its float value and offers no Floater.
type myNumber struct{ v float64 }

func (m myNumber) other(x sign.Value) (float64, error) {
	switch o := x.(type) {
	case myNumber:
		return o.v, nil
	case int:
		return float64(o), nil
	case float64:
		return o, nil
	default:
		return 0, fmt.Errorf("cannot compare myNumber with %T", x)
	}
}

func (m myNumber) GreaterThan(x sign.Value) (bool, error) {
	o, err := m.other(x)
	return m.v > o, err
}

func (m myNumber) LessThan(x sign.Value) (bool, error) {
	o, err := m.other(x)
	return m.v < o, err
}

func (m myNumber) Equal(x sign.Value) (bool, error) {
	o, err := m.other(x)
	return m.v == o, err
}

func (m myNumber) String() string { return fmt.Sprintf("MyNumber(%g)", m.v) }

var errBoom = errors.New("Boom!")

// explodingNumber fails every comparison and conversion.
type explodingNumber struct{ v float64 }

func (explodingNumber) GreaterThan(sign.Value) (bool, error) { return false, errBoom }
func (explodingNumber) LessThan(sign.Value) (bool, error)    { return false, errBoom }
func (explodingNumber) Equal(sign.Value) (bool, error)       { return false, errBoom }
func (explodingNumber) Float64() (float64, error)            { return 0, errBoom }
func (e explodingNumber) String() string                     { return fmt.Sprintf("ExplodingNumber(%g)", e.v) }

// panickingNumber panics instead of returning errors.
type panickingNumber struct{}

func (panickingNumber) GreaterThan(sign.Value) (bool, error) { panic("kaboom") }
func (panickingNumber) LessThan(sign.Value) (bool, error)    { panic("kaboom") }
func (panickingNumber) Equal(sign.Value) (bool, error)       { panic("kaboom") }
func (panickingNumber) Repr() (string, error)                { return "", errors.New("no repr") }

// selfEqualOnly equals itself but is neither above, below nor at zero.
type selfEqualOnly struct{}

func (selfEqualOnly) GreaterThan(sign.Value) (bool, error) { return false, nil }
func (selfEqualOnly) LessThan(sign.Value) (bool, error)    { return false, nil }
func (s selfEqualOnly) Equal(x sign.Value) (bool, error)  { return x == sign.Value(s), nil }

// contradictory claims to be both above and below zero.
type contradictory struct{}

func (contradictory) GreaterThan(sign.Value) (bool, error) { return true, nil }
func (contradictory) LessThan(sign.Value) (bool, error)    { return true, nil }
func (contradictory) Equal(sign.Value) (bool, error)       { return false, nil }
