package lisp

import "math/big"

// NewBignum returns the normalized Value for an arbitrary-precision
// integer: a Fixnum if it fits in 64 bits, else a Bignum. The duality
// is surfaced as two distinct Kinds instead of one hidden union, so
// normalization is the boundary that keeps them canonical.
func NewBignum(v *big.Int) Value {
	if v.IsInt64() {
		return Fixnum(v.Int64())
	}
	return Bignum{V: new(big.Int).Set(v)}
}

// NewRational returns the normalized Value for num/den: a Fixnum or
// Bignum if the fraction reduces to an integer, else a Rational.
func NewRational(num, den *big.Int) Value {
	r := new(big.Rat).SetFrac(num, den)
	if r.IsInt() {
		return NewBignum(r.Num())
	}
	return Rational{R: r}
}

// NewComplex returns the normalized Value for (re, im): a Flonum if im
// is exactly zero and re is not NaN, else a Complex.
func NewComplex(re, im float64) Value {
	if im == 0 && re == re {
		return Flonum(re)
	}
	return Complex{Re: re, Im: im}
}

// Normalized returns the canonical form of v. It is
// idempotent and must be applied before structural comparison of
// numeric variants; Eq/Eqv/Equal/HashEq/HashEqv/HashEqual all apply it
// at every recursion step rather than trusting callers to have done so
// up front.
func Normalized(v Value) Value {
	switch x := v.(type) {
	case Bignum:
		return NewBignum(x.V)
	case Rational:
		return NewRational(x.R.Num(), x.R.Denom())
	case Complex:
		return NewComplex(x.Re, x.Im)
	default:
		return v
	}
}

// IsExact reports whether v is an exact number (fixnum, bignum, or
// rational) as opposed to an inexact flonum/complex, for callers that
// need to distinguish "3" from "3.0" without duplicating the numeric
// Kind list.
func IsExact(v Value) bool {
	switch v.(type) {
	case Fixnum, Bignum, Rational:
		return true
	default:
		return false
	}
}

// Sign returns -1, 0, or 1 for a negative, zero, or positive numeric
// Value. It panics via InternalInvariantError if v is not numeric or
// is a Complex, which has no total order.
func Sign(v Value) int {
	switch x := Normalized(v).(type) {
	case Fixnum:
		switch {
		case x < 0:
			return -1
		case x > 0:
			return 1
		default:
			return 0
		}
	case Bignum:
		return x.V.Sign()
	case Rational:
		return x.R.Sign()
	case Flonum:
		switch {
		case x < 0:
			return -1
		case x > 0:
			return 1
		default:
			return 0
		}
	default:
		panicInvariant("Sign", "value is not an ordered numeric kind")
		return 0
	}
}
