// Package luahost evaluates signs of Lua values.
//
// Values are addressed by Slot: an index into a private table kept in the
// Lua registry. The table holds a reference to every value the evaluator is
// working with, so the Lua collector cannot reclaim them mid-evaluation, and
// Release drops the reference again. Comparisons run through Lua's own
// operators (and therefore through __lt and __eq metamethods) inside a
// protected call, so a raised Lua error surfaces as a comparison failure.
//
// A Host is bound to one *lua.State and, like the state, must not be used
// from more than one goroutine at a time.
package luahost

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Shopify/go-lua"

	"signum/internal/sign"
)

const slotsKey = "signum.slots"

// reserve is the stack headroom any single host operation needs.
const reserve = 8

// Slot addresses a value held by a Host.
type Slot int

// Host implements sign.Host, sign.FloatExtractor and sign.Releaser.
type Host struct {
	l    *lua.State
	next int
	live int
}

var (
	_ sign.Host           = (*Host)(nil)
	_ sign.FloatExtractor = (*Host)(nil)
	_ sign.Releaser       = (*Host)(nil)
)

// NewHost creates the slot table in l's registry.
func NewHost(l *lua.State) *Host {
	l.NewTable()
	l.SetField(lua.RegistryIndex, slotsKey)
	return &Host{l: l}
}

func (h *Host) State() *lua.State { return h.l }

// Live reports how many slots are currently held.
func (h *Host) Live() int { return h.live }

// Store pops the value on top of the stack into a new slot.
func (h *Host) Store() Slot {
	l := h.l
	l.CheckStack(reserve)
	h.next++
	s := Slot(h.next)
	l.Field(lua.RegistryIndex, slotsKey)
	l.Insert(-2)
	l.RawSetInt(-2, int(s))
	l.Pop(1)
	h.live++
	return s
}

// Push pushes the value held in s.
func (h *Host) Push(s Slot) {
	l := h.l
	l.CheckStack(reserve)
	l.Field(lua.RegistryIndex, slotsKey)
	l.RawGetInt(-1, int(s))
	l.Remove(-2)
}

// Release drops the slot. Values that are not slots are ignored.
func (h *Host) Release(v sign.Value) {
	s, ok := v.(Slot)
	if !ok {
		return
	}
	l := h.l
	l.CheckStack(reserve)
	l.Field(lua.RegistryIndex, slotsKey)
	l.PushNil()
	l.RawSetInt(-2, int(s))
	l.Pop(1)
	h.live--
}

func (h *Host) Zero() (sign.Value, error) {
	h.l.PushInteger(0)
	return h.Store(), nil
}

func (h *Host) Compare(x, y sign.Value, op sign.Op) (bool, error) {
	xs, ys, err := slots(x, y)
	if err != nil {
		return false, err
	}

	l := h.l
	base := l.Top()
	l.PushGoFunction(comparator(op))
	h.Push(xs)
	h.Push(ys)
	if err := h.protectedCall(base, 2, 1); err != nil {
		return false, err
	}
	ok := l.ToBoolean(-1)
	l.SetTop(base)
	return ok, nil
}

// comparator evaluates op on arguments 1 and 2 the way Lua source would:
// a > b is b < a.
func comparator(op sign.Op) lua.Function {
	return func(l *lua.State) int {
		// Compare reports false for nil operands instead of raising.
		if l.IsNil(1) || l.IsNil(2) {
			if op != sign.OpEQ {
				lua.Errorf(l, "attempt to compare %s with %s", lua.TypeNameOf(l, 1), lua.TypeNameOf(l, 2))
				return 0
			}
			l.PushBoolean(l.IsNil(1) && l.IsNil(2))
			return 1
		}

		var r bool
		switch op {
		case sign.OpGT:
			r = l.Compare(2, 1, lua.OpLT)
		case sign.OpLT:
			r = l.Compare(1, 2, lua.OpLT)
		default:
			r = l.Compare(1, 2, lua.OpEq)
		}
		l.PushBoolean(r)
		return 1
	}
}

// Float only accepts genuine Lua numbers; numeric strings are left to the
// comparisons, which reject them.
func (h *Host) Float(x sign.Value) (float64, bool) {
	s, ok := x.(Slot)
	if !ok {
		return 0, false
	}
	l := h.l
	h.Push(s)
	defer l.Pop(1)
	if l.TypeOf(-1) != lua.TypeNumber {
		return 0, false
	}
	return l.ToNumber(-1)
}

func (h *Host) Repr(x sign.Value) (string, error) {
	s, ok := x.(Slot)
	if !ok {
		return "", fmt.Errorf("not a lua slot: %T", x)
	}
	l := h.l
	base := l.Top()
	l.PushGoFunction(display)
	h.Push(s)
	if err := h.protectedCall(base, 1, 1); err != nil {
		return "", err
	}
	str, _ := l.ToString(-1)
	l.SetTop(base)
	return str, nil
}

// display renders argument 1, honouring __tostring. Strings are quoted so
// "5" and 5 read differently in diagnostics.
func display(l *lua.State) int {
	if l.TypeOf(1) == lua.TypeString {
		s, _ := l.ToString(1)
		l.PushString(strconv.Quote(s))
		return 1
	}
	if _, ok := lua.ToStringMeta(l, 1); !ok {
		lua.Errorf(l, "'__tostring' must return a string")
	}
	return 1
}

func (h *Host) TypeName(x sign.Value) string {
	s, ok := x.(Slot)
	if !ok {
		return fmt.Sprintf("%T", x)
	}
	h.Push(s)
	defer h.l.Pop(1)
	return lua.TypeNameOf(h.l, -1)
}

// protectedCall runs the function below the nargs arguments on top of the
// stack. On failure the stack is reset to base and the Lua error message is
// returned.
func (h *Host) protectedCall(base, nargs, nresults int) error {
	l := h.l
	if err := l.ProtectedCall(nargs, nresults, 0); err != nil {
		msg := err.Error()
		if l.Top() > base {
			if s, ok := l.ToString(-1); ok {
				msg = s
			}
		}
		l.SetTop(base)
		return errors.New(msg)
	}
	return nil
}

func slots(x, y sign.Value) (Slot, Slot, error) {
	xs, ok := x.(Slot)
	if !ok {
		return 0, 0, fmt.Errorf("not a lua slot: %T", x)
	}
	ys, ok := y.(Slot)
	if !ok {
		return 0, 0, fmt.Errorf("not a lua slot: %T", y)
	}
	return xs, ys, nil
}
