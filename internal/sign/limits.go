package sign

import "unicode/utf8"

const (
	DefaultReprLimit     = 160
	DefaultTypeNameLimit = 80
	DefaultInnerLimit    = 320
)

// Limits caps each piece of an error message, in bytes. A non-positive
// limit disables truncation for that piece.
type Limits struct {
	Repr     int
	TypeName int
	Inner    int
}

func DefaultLimits() Limits {
	return Limits{
		Repr:     DefaultReprLimit,
		TypeName: DefaultTypeNameLimit,
		Inner:    DefaultInnerLimit,
	}
}

// truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	cut := n
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
