package jsonish

import (
	"math/big"
	"strings"
)

// Number is the arbitrary-precision decimal carried by a Value of kind
// KindNumber (§3.1: "n is an arbitrary-precision decimal"). It wraps
// math/big.Rat the same way schemahost.Rat does, so a 64-bit float never
// lossily stands in for a literal like "12345678901234567890".
type Number struct {
	r *big.Rat
}

// NewNumberFromString parses s as a decimal or fractional literal. It
// accepts the same shapes the fixing state machine's number grammar (§4.5
// rule 8) and the primitive-coercion string rules (§4.8) recognise:
// optional sign, decimal point, exponent, or "a/b" fraction.
func NewNumberFromString(s string) (*Number, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, false
	}
	r := new(big.Rat)
	if _, ok := r.SetString(s); ok {
		return &Number{r: r}, true
	}
	return nil, false
}

// NewNumberFromInt64 builds an integral Number.
func NewNumberFromInt64(n int64) *Number {
	return &Number{r: new(big.Rat).SetInt64(n)}
}

// NewNumberFromFloat64 builds a Number from a float64, used when a host
// schema default or upstream decoder only has a float64 on hand.
func NewNumberFromFloat64(f float64) *Number {
	r := new(big.Rat)
	r.SetFloat64(f)
	return &Number{r: r}
}

// IsInt reports whether the number has a zero fractional part.
func (n *Number) IsInt() bool {
	return n.r.IsInt()
}

// Int64 returns the integral value, valid only when IsInt is true.
func (n *Number) Int64() int64 {
	return new(big.Int).Quo(n.r.Num(), n.r.Denom()).Int64()
}

// Float64 returns the nearest float64 approximation.
func (n *Number) Float64() float64 {
	f, _ := n.r.Float64()
	return f
}

// Rat exposes the underlying big.Rat for callers (e.g. the host schema
// library's numeric keyword checks) that want exact rational comparison.
func (n *Number) Rat() *big.Rat {
	return n.r
}

// RoundHalfEven rounds to the nearest integer, ties to even, matching
// §4.8's Int coercion rule for non-integral Number input.
func (n *Number) RoundHalfEven() int64 {
	if n.r.IsInt() {
		return n.Int64()
	}
	num := new(big.Int).Set(n.r.Num())
	den := n.r.Denom()
	quo, rem := new(big.Int).QuoRem(num, den, new(big.Int))
	twiceRem := new(big.Int).Mul(rem, big.NewInt(2))
	twiceRem.Abs(twiceRem)
	cmp := twiceRem.Cmp(den)
	neg := (num.Sign() < 0) != (den.Sign() < 0)
	switch {
	case cmp < 0:
		return quo.Int64()
	case cmp > 0:
		if neg {
			return quo.Int64() - 1
		}
		return quo.Int64() + 1
	default:
		// Exactly half: round to even.
		if quo.Bit(0) == 0 {
			return quo.Int64()
		}
		if neg {
			return quo.Int64() - 1
		}
		return quo.Int64() + 1
	}
}

// String formats the number as decimal text (adapted from
// schemahost.FormatRat): plain integer when it has no fractional part,
// otherwise a fixed-precision decimal with trailing zeros trimmed.
func (n *Number) String() string {
	if n.r.IsInt() {
		return n.r.Num().String()
	}
	dec := n.r.FloatString(12)
	dec = strings.TrimRight(dec, "0")
	dec = strings.TrimRight(dec, ".")
	if dec == "" {
		return "0"
	}
	return dec
}

// Sign returns -1, 0, or +1.
func (n *Number) Sign() int {
	return n.r.Sign()
}
