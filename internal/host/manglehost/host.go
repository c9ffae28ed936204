// Package manglehost evaluates signs of Google Mangle constants.
//
// Number and Float64 constants are ordered numerically; every other
// constant type (names, strings, bytes, structured values) equals only
// itself and cannot be ordered, so it yields an *sign.ArgumentError.
package manglehost

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/mangle/ast"
	"github.com/google/mangle/parse"

	"signum/internal/host/native"
	"signum/internal/sign"
)

// Host implements sign.Host and sign.FloatExtractor over ast.Constant.
// Ordering is delegated to the native host once constants are lowered to Go
// values.
type Host struct {
	numbers native.Host
}

var (
	_ sign.Host           = Host{}
	_ sign.FloatExtractor = Host{}
)

func New(opts ...sign.EvaluatorOption) *sign.Evaluator {
	return sign.New(Host{}, opts...)
}

func (Host) Zero() (sign.Value, error) { return ast.Number(0), nil }

func (h Host) Compare(x, y sign.Value, op sign.Op) (bool, error) {
	a, err := lower(x)
	if err != nil {
		return false, err
	}
	b, err := lower(y)
	if err != nil {
		return false, err
	}
	if op != sign.OpEQ && (!isNumeric(x) || !isNumeric(y)) {
		return false, fmt.Errorf("'%s' not supported between %s and %s", op, typeName(x), typeName(y))
	}
	return h.numbers.Compare(a, b, op)
}

func (Host) Float(x sign.Value) (float64, bool) {
	c, ok := x.(ast.Constant)
	if !ok {
		return 0, false
	}
	switch c.Type {
	case ast.NumberType:
		return float64(c.NumValue), true
	case ast.Float64Type:
		return math.Float64frombits(uint64(c.NumValue)), true
	default:
		return 0, false
	}
}

func (Host) Repr(x sign.Value) (string, error) {
	c, ok := x.(ast.Constant)
	if !ok {
		return "", fmt.Errorf("not a mangle constant: %T", x)
	}
	return c.String(), nil
}

func (Host) TypeName(x sign.Value) string { return typeName(x) }

// symbol distinguishes non-numeric constants from Go strings so a name and
// a string with the same text never compare equal.
type symbol struct {
	kind ast.ConstantType
	text string
}

// lower converts a constant to the Go value the native host compares.
func lower(x sign.Value) (sign.Value, error) {
	c, ok := x.(ast.Constant)
	if !ok {
		return nil, fmt.Errorf("not a mangle constant: %T", x)
	}
	switch c.Type {
	case ast.NumberType:
		return c.NumValue, nil
	case ast.Float64Type:
		return math.Float64frombits(uint64(c.NumValue)), nil
	case ast.NameType, ast.StringType, ast.BytesType:
		return symbol{kind: c.Type, text: c.Symbol}, nil
	default:
		return symbol{kind: c.Type, text: c.String()}, nil
	}
}

func isNumeric(x sign.Value) bool {
	c, ok := x.(ast.Constant)
	return ok && (c.Type == ast.NumberType || c.Type == ast.Float64Type)
}

func typeName(x sign.Value) string {
	c, ok := x.(ast.Constant)
	if !ok {
		return fmt.Sprintf("%T", x)
	}
	switch c.Type {
	case ast.NumberType:
		return "number"
	case ast.Float64Type:
		return "float64"
	case ast.NameType:
		return "name"
	case ast.StringType:
		return "string"
	case ast.BytesType:
		return "bytes"
	default:
		return "constant"
	}
}

// =============================================================================
// FACTS
// =============================================================================

// ArgSign is the outcome for one argument of a fact.
type ArgSign struct {
	Term   string
	Result sign.Result
	Err    error
}

// SignsOfAtom parses a single atom such as `reading(/probe, -2.5, 0)` and
// signs every argument. Variables and function applications are reported
// as errors.
func SignsOfAtom(e *sign.Evaluator, fact string, opts ...sign.Option) ([]ArgSign, error) {
	clean := strings.TrimSuffix(strings.TrimSpace(fact), ".")
	if clean == "" {
		return nil, fmt.Errorf("empty fact")
	}
	atom, err := parse.Atom(clean)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fact %q: %w", fact, err)
	}

	out := make([]ArgSign, 0, len(atom.Args))
	for _, arg := range atom.Args {
		as := ArgSign{Term: arg.String()}
		if c, ok := arg.(ast.Constant); ok {
			as.Result, as.Err = e.Sign(c, opts...)
		} else {
			as.Err = fmt.Errorf("%s is not a constant", arg)
		}
		out = append(out, as)
	}
	return out, nil
}
