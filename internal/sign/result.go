package sign

import (
	"math"
	"strconv"
)

// Sign is the terminal value of a successful evaluation.
type Sign int8

const (
	Negative Sign = -1
	Zero     Sign = 0
	Positive Sign = 1
	NaN      Sign = 2
)

// Int returns -1, 0 or 1. NaN reports 0; check IsNaN first.
func (s Sign) Int() int {
	if s == NaN {
		return 0
	}
	return int(s)
}

// Float64 returns -1, 0, 1 or math.NaN().
func (s Sign) Float64() float64 {
	if s == NaN {
		return math.NaN()
	}
	return float64(s)
}

func (s Sign) IsNaN() bool { return s == NaN }

func (s Sign) String() string {
	if s == NaN {
		return "NaN"
	}
	return strconv.Itoa(int(s))
}

// Source tells where a Result's payload came from.
type Source uint8

const (
	SourceSign     Source = iota // computed by the evaluator
	SourceOverride               // returned verbatim by a preprocess hook
	SourceFallback               // substituted for an error
)

func (s Source) String() string {
	switch s {
	case SourceSign:
		return "sign"
	case SourceOverride:
		return "override"
	case SourceFallback:
		return "fallback"
	default:
		return "invalid"
	}
}

// Result is what Evaluator.Sign returns. Sign is meaningful only for
// SourceSign; Value only for the other sources.
type Result struct {
	Sign   Sign
	Value  Value
	Source Source
}

// Interface returns the payload: the Sign for computed results, the
// override or fallback value otherwise.
func (r Result) Interface() any {
	if r.Source == SourceSign {
		return r.Sign
	}
	return r.Value
}
