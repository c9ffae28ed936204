package config

import (
	"fmt"

	"signum/internal/sign"
)

// LimitsConfig caps the pieces of a sign error message, in bytes. Zero
// disables truncation.
type LimitsConfig struct {
	Repr     int `yaml:"repr" env:"REPR_LIMIT"`
	TypeName int `yaml:"type_name" env:"TYPE_LIMIT"`
	Inner    int `yaml:"inner" env:"INNER_LIMIT"`
}

func DefaultLimits() LimitsConfig {
	l := sign.DefaultLimits()
	return LimitsConfig{Repr: l.Repr, TypeName: l.TypeName, Inner: l.Inner}
}

// Validate checks that no limit is negative.
func (l LimitsConfig) Validate() error {
	if l.Repr < 0 {
		return fmt.Errorf("limits.repr must be >= 0")
	}
	if l.TypeName < 0 {
		return fmt.Errorf("limits.type_name must be >= 0")
	}
	if l.Inner < 0 {
		return fmt.Errorf("limits.inner must be >= 0")
	}
	return nil
}

// Sign converts to the evaluator's representation.
func (l LimitsConfig) Sign() sign.Limits {
	return sign.Limits{Repr: l.Repr, TypeName: l.TypeName, Inner: l.Inner}
}
