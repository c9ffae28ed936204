package sign

import (
	"fmt"

	"go.uber.org/zap"
)

// PreprocessKind tags a PreprocessOutcome.
type PreprocessKind uint8

const (
	PreprocessNoChange PreprocessKind = iota
	PreprocessReplace
	PreprocessOverride
)

// PreprocessOutcome is what a preprocess hook decides:
//
//   - NoChange: evaluate the original value.
//   - Replace(v): evaluate v instead. The evaluator owns v until it returns.
//   - Override(v): return v as the result, skipping evaluation, fallback and
//     error reporting altogether.
type PreprocessOutcome struct {
	Kind  PreprocessKind
	Value Value
}

func NoChange() PreprocessOutcome { return PreprocessOutcome{} }

func Replace(v Value) PreprocessOutcome {
	return PreprocessOutcome{Kind: PreprocessReplace, Value: v}
}

func Override(v Value) PreprocessOutcome {
	return PreprocessOutcome{Kind: PreprocessOverride, Value: v}
}

// FromSequence maps the sequence shape hosts use for hook results: an empty
// sequence is NoChange, one element is Replace, and two or more elements
// Override with the element at index 1.
func FromSequence(items []Value) PreprocessOutcome {
	switch len(items) {
	case 0:
		return NoChange()
	case 1:
		return Replace(items[0])
	default:
		return Override(items[1])
	}
}

// PreprocessFunc transforms or short-circuits the input of one evaluation.
// A returned error is swallowed and the original value is used.
type PreprocessFunc func(x Value) (PreprocessOutcome, error)

// runPreprocess invokes the hook best-effort. A panicking hook counts as a
// failed one.
func (e *Evaluator) runPreprocess(fn PreprocessFunc, x Value) (out PreprocessOutcome) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Debug("preprocess panicked, ignoring", zap.String("panic", fmt.Sprint(r)))
			out = NoChange()
		}
	}()

	var err error
	out, err = fn(x)
	if err != nil {
		e.log.Debug("preprocess failed, ignoring", zap.Error(err))
		return NoChange()
	}
	return out
}
