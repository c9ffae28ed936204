package native

import (
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"

	"signum/internal/sign"
)

// =============================================================================
// NUMERIC EXTRACTION
// =============================================================================

// number is an exact view of a real value: a finite rational, a signed
// infinity, or NaN.
type number struct {
	rat *big.Rat
	inf int
	nan bool
	// complex values keep their imaginary part; they are only ever compared
	// for equality.
	imag float64
	cplx bool
}

func finite(r *big.Rat) number { return number{rat: r} }

func fromFloat(f float64) number {
	switch {
	case math.IsNaN(f):
		return number{nan: true}
	case math.IsInf(f, 1):
		return number{inf: 1}
	case math.IsInf(f, -1):
		return number{inf: -1}
	default:
		return finite(new(big.Rat).SetFloat64(f))
	}
}

// toNumber converts any numeric Go value. ok is false for non-numbers.
func toNumber(x sign.Value) (number, bool) {
	switch v := x.(type) {
	case nil:
		return number{}, false
	case sign.Sign:
		return fromFloat(v.Float64()), true
	case *big.Int:
		if v == nil {
			return number{}, false
		}
		return finite(new(big.Rat).SetInt(v)), true
	case *big.Rat:
		if v == nil {
			return number{}, false
		}
		return finite(v), true
	case *big.Float:
		if v == nil {
			return number{}, false
		}
		if v.IsInf() {
			return number{inf: v.Sign()}, true
		}
		r, _ := v.Rat(nil)
		return finite(r), true
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return finite(big.NewRat(1, 1)), true
		}
		return finite(new(big.Rat)), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return finite(new(big.Rat).SetInt64(rv.Int())), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return finite(new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint()))), true
	case reflect.Float32, reflect.Float64:
		return fromFloat(rv.Float()), true
	case reflect.Complex64, reflect.Complex128:
		c := rv.Complex()
		n := fromFloat(real(c))
		n.imag = imag(c)
		n.cplx = true
		return n, true
	default:
		return number{}, false
	}
}

// toFloat64 is the direct conversion used by the NaN fast path.
func toFloat64(x sign.Value) (float64, bool) {
	switch v := x.(type) {
	case sign.Sign:
		return v.Float64(), true
	case *big.Int:
		if v == nil {
			return 0, false
		}
		f, _ := new(big.Float).SetInt(v).Float64()
		return f, true
	case *big.Rat:
		if v == nil {
			return 0, false
		}
		f, _ := v.Float64()
		return f, true
	case *big.Float:
		if v == nil {
			return 0, false
		}
		f, _ := v.Float64()
		return f, true
	}

	rv := reflect.ValueOf(x)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Bool:
		if rv.Bool() {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

// compareNumbers applies op. NaN is unordered and unequal to everything,
// itself included.
func compareNumbers(a, b number, op sign.Op) (bool, error) {
	if a.cplx || b.cplx {
		if op != sign.OpEQ {
			return false, fmt.Errorf("'%s' not supported for complex numbers", op)
		}
		if a.imag != b.imag {
			return false, nil
		}
	}
	if a.nan || b.nan {
		return false, nil
	}

	c := cmpNumbers(a, b)
	switch op {
	case sign.OpGT:
		return c > 0, nil
	case sign.OpLT:
		return c < 0, nil
	default:
		return c == 0, nil
	}
}

func cmpNumbers(a, b number) int {
	if a.inf != 0 || b.inf != 0 {
		switch {
		case a.inf == b.inf:
			return 0
		case a.inf > b.inf:
			return 1
		default:
			return -1
		}
	}
	return a.rat.Cmp(b.rat)
}

// =============================================================================
// DISPLAY
// =============================================================================

func repr(x sign.Value) (string, error) {
	switch v := x.(type) {
	case nil:
		return "nil", nil
	case sign.Sign:
		return v.String(), nil
	case Reprer:
		return v.Repr()
	case string:
		return strconv.Quote(v), nil
	case *big.Int:
		return v.String(), nil
	case *big.Rat:
		return v.RatString(), nil
	case *big.Float:
		return v.Text('g', -1), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return fmt.Sprintf("%v", v), nil
	}
}
