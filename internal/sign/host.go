package sign

// Value is an opaque handle to a host value.
type Value = any

// Op is one of the ordering predicates the evaluator asks a host about.
type Op uint8

const (
	OpGT Op = iota // x > y
	OpLT           // x < y
	OpEQ           // x == y
)

func (o Op) String() string {
	switch o {
	case OpGT:
		return ">"
	case OpLT:
		return "<"
	case OpEQ:
		return "=="
	default:
		return "?"
	}
}

// Host is the capability set a runtime exposes to the evaluator.
//
// Compare must report a failed comparison as an error, never as false.
// Repr and TypeName are only used to build diagnostics.
type Host interface {
	// Zero returns a fresh zero value of the host. It is called once per
	// evaluation and released (see Releaser) before the evaluation returns.
	Zero() (Value, error)
	Compare(x, y Value, op Op) (bool, error)
	Repr(x Value) (string, error)
	TypeName(x Value) string
}

// FloatExtractor is implemented by hosts that can convert a value to a
// float64 directly. The evaluator uses it only to detect NaN early; ok is
// false whenever the conversion is not possible.
type FloatExtractor interface {
	Float(x Value) (f float64, ok bool)
}

// Releaser is implemented by hosts whose values carry ownership. The
// evaluator releases every value it acquired: the zero constant and a
// preprocess replacement.
type Releaser interface {
	Release(x Value)
}

// Orderable is the comparison protocol for Go values that define their own
// ordering. Hosts built on Go values dispatch to it.
type Orderable interface {
	GreaterThan(other Value) (bool, error)
	LessThan(other Value) (bool, error)
	Equal(other Value) (bool, error)
}
