package native

import (
	"errors"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"signum/internal/sign"
)

func mustSign(t *testing.T, x sign.Value, opts ...sign.Option) sign.Result {
	t.Helper()
	r, err := New().Sign(x, opts...)
	require.NoError(t, err, "sign(%v)", x)
	return r
}

func TestSignNumbers(t *testing.T) {
	huge := new(big.Int).Exp(big.NewInt(10), big.NewInt(1000), nil)
	tests := []struct {
		name string
		x    sign.Value
		want sign.Sign
	}{
		{"int negative", -5, sign.Negative},
		{"int minus one", -1, sign.Negative},
		{"int zero", 0, sign.Zero},
		{"int one", 1, sign.Positive},
		{"int8", int8(-3), sign.Negative},
		{"uint64 max", uint64(math.MaxUint64), sign.Positive},
		{"uint zero", uint(0), sign.Zero},
		{"true", true, sign.Positive},
		{"false", false, sign.Zero},
		{"duration", -3 * time.Second, sign.Negative},
		{"big positive", huge, sign.Positive},
		{"big negative", new(big.Int).Neg(huge), sign.Negative},
		{"big difference", new(big.Int).Sub(huge, huge), sign.Zero},
		{"float negative", -5.0, sign.Negative},
		{"float zero", 0.0, sign.Zero},
		{"negative zero", math.Copysign(0, -1), sign.Zero},
		{"float32", float32(2.5), sign.Positive},
		{"tiny", 5e-324, sign.Positive},
		{"+inf", math.Inf(1), sign.Positive},
		{"-inf", math.Inf(-1), sign.Negative},
		{"rat negative", big.NewRat(-5, 2), sign.Negative},
		{"rat zero", big.NewRat(0, 2), sign.Zero},
		{"rat positive", big.NewRat(1, 2), sign.Positive},
		{"bigfloat", big.NewFloat(-5.5), sign.Negative},
		{"bigfloat inf", new(big.Float).SetInf(false), sign.Positive},
		{"bigfloat zero", new(big.Float), sign.Zero},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustSign(t, tt.x).Sign)
		})
	}
}

func TestSignNaN(t *testing.T) {
	for _, x := range []sign.Value{math.NaN(), -math.NaN(), 0 * math.NaN(), float32(math.NaN())} {
		r := mustSign(t, x)
		assert.True(t, r.Sign.IsNaN())
		assert.True(t, math.IsNaN(r.Sign.Float64()))
		assert.NotEqual(t, r.Sign.Float64(), r.Sign.Float64())
	}
}

func TestSignIsIdempotent(t *testing.T) {
	for _, x := range []sign.Value{-7, 0, 3.5, math.NaN(), big.NewRat(-1, 3)} {
		first := mustSign(t, x)
		second := mustSign(t, first.Interface())
		assert.Equal(t, first.Sign, second.Sign)
	}
}

func TestSignOrderable(t *testing.T) {
	assert.Equal(t, sign.Negative, mustSign(t, myNumber{-5}).Sign)
	assert.Equal(t, sign.Zero, mustSign(t, myNumber{0}).Sign)
	assert.Equal(t, sign.Positive, mustSign(t, myNumber{1}).Sign)
	// myNumber has no Floater, so NaN is found by the self probe. The probe
	// always calls Equal, with no identity shortcut, so a NaN-valued
	// Orderable is NaN here rather than an incomparable-value error.
	assert.Equal(t, sign.NaN, mustSign(t, myNumber{math.NaN()}).Sign)
}

func TestSignExplodingNumber(t *testing.T) {
	_, err := New().Sign(explodingNumber{-3.14})
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t,
		"signum.sign: invalid argument `ExplodingNumber(-3.14)` (type 'native.explodingNumber'). Inner error: Boom!",
		err.Error())
}

func TestSignPanickingNumber(t *testing.T) {
	_, err := New().Sign(panickingNumber{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid argument `???` (type 'native.panickingNumber'). Inner error: kaboom")
}

func TestSignIncomparableAndContradictory(t *testing.T) {
	_, err := New().Sign(selfEqualOnly{})
	var argErr *sign.ArgumentError
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, sign.KindIncomparable, argErr.Kind)

	_, err = New().Sign(contradictory{})
	require.True(t, errors.As(err, &argErr))
	assert.Equal(t, sign.KindContradiction, argErr.Kind)
	assert.Contains(t, err.Error(), "does not support order comparisons (>, <, ==) or NaN detection")
}

func TestSignRejectsNonNumbers(t *testing.T) {
	tests := []struct {
		x    sign.Value
		repr string
	}{
		{nil, "`nil`"},
		{"5.0", "`\"5.0\"`"},
		{"nan", "`\"nan\"`"},
		{complex(-1, 1), "`(-1+1i)`"},
		{[]float64{-8.75}, "`[-8.75]`"},
		{map[string]int{"a": 1}, "`map[a:1]`"},
	}
	for _, tt := range tests {
		_, err := New().Sign(tt.x)
		require.Error(t, err, "%v", tt.x)
		assert.Contains(t, err.Error(), "signum.sign: invalid argument "+tt.repr)
		assert.ErrorIs(t, err, sign.ErrInvalidArgument)
	}
}

func TestSignComplexZeroIsNotOrderable(t *testing.T) {
	_, err := New().Sign(complex(0, 0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not supported for complex numbers")
}

func TestSignFallbackGrid(t *testing.T) {
	tests := []struct {
		x        sign.Value
		fallback sign.Value
		want     any
	}{
		{nil, nil, nil},
		{"5.0", -2, -2},
		{complex(-1, 1), "none", "none"},
		{[]float64{-8.75}, -2, -2},
		{-1, nil, sign.Negative},
		{31.4, -2, sign.Positive},
		{big.NewRat(-99, 19), nil, sign.Negative},
	}
	for _, tt := range tests {
		r := mustSign(t, tt.x, sign.WithFallback(tt.fallback))
		assert.Equal(t, tt.want, r.Interface(), "sign(%v)", tt.x)
	}

	r := mustSign(t, math.NaN(), sign.WithFallback(-2))
	assert.Equal(t, sign.NaN, r.Interface())
}

func parseFloatHook(x sign.Value) (sign.PreprocessOutcome, error) {
	switch v := x.(type) {
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return sign.NoChange(), err
		}
		return sign.Replace(f), nil
	case int:
		return sign.Replace(float64(v)), nil
	}
	return sign.NoChange(), nil
}

func TestPreprocessConvertsStrings(t *testing.T) {
	assert.Equal(t, sign.Positive, mustSign(t, "5.0", sign.WithPreprocess(parseFloatHook)).Sign)
	assert.Equal(t, sign.NaN, mustSign(t, "nan", sign.WithPreprocess(parseFloatHook)).Sign)
	assert.Equal(t, sign.Negative, mustSign(t, -18, sign.WithPreprocess(parseFloatHook)).Sign)
}

func TestPreprocessTreatsSmallAsZero(t *testing.T) {
	const eps = 1e-9
	hook := func(x sign.Value) (sign.PreprocessOutcome, error) {
		if f, ok := x.(float64); ok && math.Abs(f) < eps {
			return sign.Replace(0), nil
		}
		return sign.Replace(x), nil
	}
	tests := []struct {
		x    sign.Value
		want sign.Sign
	}{{-1, sign.Negative}, {0, sign.Zero}, {-.187e-17, sign.Zero}, {5.0, sign.Positive}}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mustSign(t, tt.x, sign.WithPreprocess(hook)).Sign)
	}
}

func TestPreprocessExtractsNumbers(t *testing.T) {
	finder := regexp.MustCompile(`[-+]?(?:\d+\.\d*|\.\d+|\d+)(?:[eE][-+]?\d+)?`)
	hook := func(x sign.Value) (sign.PreprocessOutcome, error) {
		s, ok := x.(string)
		if !ok {
			return sign.NoChange(), nil
		}
		m := finder.FindString(s)
		if m == "" {
			return sign.NoChange(), nil
		}
		f, err := strconv.ParseFloat(m, 64)
		return sign.Replace(f), err
	}

	assert.Equal(t, sign.Positive, mustSign(t, "15 men on the dead man's chest", sign.WithPreprocess(hook)).Sign)
	assert.Equal(t, sign.Negative, mustSign(t, "Temperature is -.12e+02 °C", sign.WithPreprocess(hook)).Sign)
	assert.Equal(t, sign.Positive, mustSign(t, 123, sign.WithPreprocess(hook)).Sign)

	_, err := New().Sign("error", sign.WithPreprocess(hook))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "signum.sign: invalid argument `\"error\"` (type 'string')")
}

func TestPreprocessOverridesComplex(t *testing.T) {
	hook := func(x sign.Value) (sign.PreprocessOutcome, error) {
		z, ok := x.(complex128)
		if !ok || z == 0 {
			return sign.NoChange(), nil
		}
		abs := math.Hypot(real(z), imag(z))
		return sign.Override(z / complex(abs, 0)), nil
	}

	r := mustSign(t, complex(-1, 1), sign.WithPreprocess(hook))
	assert.Equal(t, sign.SourceOverride, r.Source)
	got := r.Value.(complex128)
	assert.InDelta(t, -math.Sqrt2/2, real(got), 1e-15)
	assert.InDelta(t, math.Sqrt2/2, imag(got), 1e-15)

	assert.Equal(t, sign.Negative, mustSign(t, -18.4, sign.WithPreprocess(hook)).Interface())
}

func TestPreprocessRecursesIntoSign(t *testing.T) {
	e := New()
	hook := func(x sign.Value) (sign.PreprocessOutcome, error) {
		if _, ok := x.(float64); !ok {
			return sign.NoChange(), nil
		}
		r, err := e.Sign(x)
		if err != nil {
			return sign.NoChange(), err
		}
		return sign.Override(r.Sign.Float64()), nil
	}

	r, err := e.Sign(-5, sign.WithPreprocess(hook))
	require.NoError(t, err)
	assert.Equal(t, sign.Negative, r.Interface())

	r, err = e.Sign(-5.0, sign.WithPreprocess(hook))
	require.NoError(t, err)
	assert.Equal(t, -1.0, r.Interface())

	r, err = e.Sign("error", sign.WithPreprocess(hook), sign.WithFallback(nil))
	require.NoError(t, err)
	assert.Nil(t, r.Interface())
}

func TestFloatFastPath(t *testing.T) {
	h := Host{}
	f, ok := h.Float(explodingNumber{})
	assert.False(t, ok)
	assert.Zero(t, f)

	f, ok = h.Float(big.NewRat(1, 4))
	assert.True(t, ok)
	assert.Equal(t, 0.25, f)

	_, ok = h.Float("1.0")
	assert.False(t, ok)
}
