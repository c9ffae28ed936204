package luahost

import (
	"math"

	"github.com/Shopify/go-lua"

	"signum/internal/sign"
)

// Open installs the global "signum" table in l and returns the host and
// evaluator backing it:
//
//	signum.sign(x [, opts])  -> -1 | 0 | 1 | nan | override | fallback
//	signum.nan               -> a NaN number
//
// opts.if_exc is a sequence whose first element replaces any error.
// opts.preprocess is a function of x returning a sequence: {} keeps x, {y}
// evaluates y instead, and {_, z} returns z as the result. Use table.pack
// when an element may be nil. Any other return value is ignored, as is an
// error raised by the function.
func Open(l *lua.State, opts ...sign.EvaluatorOption) (*Host, *sign.Evaluator) {
	h := NewHost(l)
	e := sign.New(h, opts...)

	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "sign", Function: signFunction(h, e)},
	}, 0)
	l.PushNumber(math.NaN())
	l.SetField(-2, "nan")
	l.SetGlobal("signum")
	return h, e
}

func signFunction(h *Host, e *sign.Evaluator) lua.Function {
	return func(l *lua.State) int {
		lua.CheckAny(l, 1)

		var held []Slot
		hold := func() Slot {
			s := h.Store()
			held = append(held, s)
			return s
		}
		releaseAll := func() {
			for _, s := range held {
				h.Release(s)
			}
		}

		l.PushValue(1)
		x := hold()

		var callOpts []sign.Option
		if l.TypeOf(2) == lua.TypeTable {
			l.Field(2, "if_exc")
			switch l.TypeOf(-1) {
			case lua.TypeNil:
				l.Pop(1)
			case lua.TypeTable:
				l.RawGetInt(-1, 1)
				l.Remove(-2)
				callOpts = append(callOpts, sign.WithFallback(hold()))
			default:
				releaseAll()
				lua.ArgumentError(l, 2, "if_exc must be a sequence")
			}

			l.Field(2, "preprocess")
			if l.TypeOf(-1) == lua.TypeNil {
				l.Pop(1)
			} else {
				callOpts = append(callOpts, sign.WithPreprocess(h.Preprocess(hold())))
			}
		} else if !l.IsNoneOrNil(2) {
			releaseAll()
			lua.ArgumentError(l, 2, "options must be a table")
		}

		res, err := e.Sign(x, callOpts...)
		if err != nil {
			releaseAll()
			lua.Errorf(l, "%s", err.Error())
			return 0
		}

		switch res.Source {
		case sign.SourceSign:
			if res.Sign.IsNaN() {
				l.PushNumber(math.NaN())
			} else {
				l.PushInteger(res.Sign.Int())
			}
		case sign.SourceOverride:
			s := res.Value.(Slot)
			h.Push(s)
			h.Release(s)
		case sign.SourceFallback:
			h.Push(res.Value.(Slot))
		}
		releaseAll()
		return 1
	}
}

// Preprocess adapts the Lua function held in fn to a sign.PreprocessFunc.
func (h *Host) Preprocess(fn Slot) sign.PreprocessFunc {
	return func(x sign.Value) (sign.PreprocessOutcome, error) {
		xs, ok := x.(Slot)
		if !ok {
			return sign.NoChange(), nil
		}
		l := h.l
		base := l.Top()
		h.Push(fn)
		h.Push(xs)
		if err := h.protectedCall(base, 1, 1); err != nil {
			return sign.NoChange(), err
		}
		defer l.SetTop(base)

		if l.TypeOf(-1) != lua.TypeTable {
			return sign.NoChange(), nil
		}
		switch n := sequenceLength(l, -1); {
		case n <= 0:
			return sign.NoChange(), nil
		case n == 1:
			l.RawGetInt(-1, 1)
			return sign.Replace(h.Store()), nil
		default:
			l.RawGetInt(-1, 2)
			return sign.Override(h.Store()), nil
		}
	}
}

// sequenceLength honours an explicit n field (as set by table.pack) and
// falls back to the raw length.
func sequenceLength(l *lua.State, index int) int {
	index = l.AbsIndex(index)
	l.Field(index, "n")
	defer l.Pop(1)
	if n, ok := l.ToInteger(-1); ok && l.TypeOf(-1) == lua.TypeNumber {
		return n
	}
	return l.RawLength(index)
}
