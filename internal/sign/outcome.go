package sign

// Outcome is the three-valued result of one comparison.
type Outcome uint8

const (
	OutcomeError Outcome = iota
	OutcomeFalse
	OutcomeTrue
)

// OutcomeOf folds a host comparison result into an Outcome. An error always
// wins over the boolean.
func OutcomeOf(ok bool, err error) Outcome {
	switch {
	case err != nil:
		return OutcomeError
	case ok:
		return OutcomeTrue
	default:
		return OutcomeFalse
	}
}

func (o Outcome) String() string {
	switch o {
	case OutcomeError:
		return "error"
	case OutcomeFalse:
		return "false"
	case OutcomeTrue:
		return "true"
	default:
		return "invalid"
	}
}

// Classification buckets a (gt, lt, eq) outcome triple.
type Classification uint8

const (
	// ClassContradictionOrError: a comparison failed, or more than one
	// predicate held at once.
	ClassContradictionOrError Classification = iota
	// ClassAmbiguous: every predicate was false. Either NaN or a value that
	// is not ordered against zero.
	ClassAmbiguous
	// ClassDeterminate: exactly one predicate held.
	ClassDeterminate
)

func (c Classification) String() string {
	switch c {
	case ClassContradictionOrError:
		return "contradiction_or_error"
	case ClassAmbiguous:
		return "ambiguous"
	case ClassDeterminate:
		return "determinate"
	default:
		return "invalid"
	}
}

// Classify is a pure function of the three outcomes.
func Classify(gt, lt, eq Outcome) Classification {
	if gt == OutcomeError || lt == OutcomeError || eq == OutcomeError {
		return ClassContradictionOrError
	}
	trues := 0
	for _, o := range [...]Outcome{gt, lt, eq} {
		if o == OutcomeTrue {
			trues++
		}
	}
	switch trues {
	case 0:
		return ClassAmbiguous
	case 1:
		return ClassDeterminate
	default:
		return ClassContradictionOrError
	}
}
