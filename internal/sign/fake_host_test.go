package sign

import (
	"errors"
	"fmt"
)

// fakeValue scripts the answer to each comparison against zero.
type fakeValue struct {
	name  string
	gt    Outcome
	lt    Outcome
	eq    Outcome
	self  Outcome
	float *float64
	// reprFails makes Repr return an error.
	reprFails bool
}

type fakeZero struct{ id int }

var errBoom = errors.New("Boom!")

type fakeHost struct {
	compares []string
	zeros    int
	released []Value
	zeroErr  error
}

func (h *fakeHost) Zero() (Value, error) {
	if h.zeroErr != nil {
		return nil, h.zeroErr
	}
	h.zeros++
	return &fakeZero{id: h.zeros}, nil
}

func (h *fakeHost) Compare(x, y Value, op Op) (bool, error) {
	v := x.(*fakeValue)
	h.compares = append(h.compares, fmt.Sprintf("%s%s", v.name, op))

	out := v.eq
	switch {
	case y == x:
		out = v.self
	case op == OpGT:
		out = v.gt
	case op == OpLT:
		out = v.lt
	}
	switch out {
	case OutcomeError:
		return false, fmt.Errorf("%s %s: %w", v.name, op, errBoom)
	case OutcomeTrue:
		return true, nil
	default:
		return false, nil
	}
}

func (h *fakeHost) Repr(x Value) (string, error) {
	v := x.(*fakeValue)
	if v.reprFails {
		return "", errors.New("no repr")
	}
	return "Fake(" + v.name + ")", nil
}

func (h *fakeHost) TypeName(x Value) string { return "Fake" }

func (h *fakeHost) Float(x Value) (float64, bool) {
	v := x.(*fakeValue)
	if v.float == nil {
		return 0, false
	}
	return *v.float, true
}

func (h *fakeHost) Release(x Value) { h.released = append(h.released, x) }

func value(name string, gt, lt, eq Outcome) *fakeValue {
	return &fakeValue{name: name, gt: gt, lt: lt, eq: eq, self: OutcomeTrue}
}

var (
	F = OutcomeFalse
	T = OutcomeTrue
	E = OutcomeError
)
