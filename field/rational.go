// SPDX-License-Identifier: MIT

package field

import "math/big"

// Rational is an exact fraction. The zero value is 0.
// Values are immutable: every operation allocates a fresh big.Rat.
type Rational struct {
	v *big.Rat
}

// RationalField is the Field of exact fractions.
type RationalField struct{}

// Zero returns 0.
func (RationalField) Zero() Rational { return Rational{} }

// One returns 1.
func (RationalField) One() Rational { return Rational{v: big.NewRat(1, 1)} }

// NewRational returns num/den in lowest terms. Panics when den == 0.
func NewRational(num, den int64) Rational {
	if den == 0 {
		panic(panicZeroDenom)
	}

	return Rational{v: big.NewRat(num, den)}
}

// RationalFromInt returns the integer n as a fraction.
func RationalFromInt(n int64) Rational { return Rational{v: big.NewRat(n, 1)} }

// RationalFromRat copies r.
func RationalFromRat(r *big.Rat) Rational { return Rational{v: new(big.Rat).Set(r)} }

func (a Rational) rat() *big.Rat {
	if a.v == nil {
		return new(big.Rat)
	}

	return a.v
}

// Rat returns a copy of the underlying value.
func (a Rational) Rat() *big.Rat { return new(big.Rat).Set(a.rat()) }

// Float64 returns the nearest float64 and whether it is exact.
func (a Rational) Float64() (float64, bool) { return a.rat().Float64() }

// Add returns a + b.
func (a Rational) Add(b Rational) Rational {
	return Rational{v: new(big.Rat).Add(a.rat(), b.rat())}
}

// Sub returns a - b.
func (a Rational) Sub(b Rational) Rational {
	return Rational{v: new(big.Rat).Sub(a.rat(), b.rat())}
}

// Mul returns a * b.
func (a Rational) Mul(b Rational) Rational {
	return Rational{v: new(big.Rat).Mul(a.rat(), b.rat())}
}

// Div returns a / b.
func (a Rational) Div(b Rational) Rational {
	if b.IsZero() {
		panic(panicDivByZero)
	}

	return Rational{v: new(big.Rat).Quo(a.rat(), b.rat())}
}

// Neg returns -a.
func (a Rational) Neg() Rational { return Rational{v: new(big.Rat).Neg(a.rat())} }

// Inv returns 1/a.
func (a Rational) Inv() Rational {
	if a.IsZero() {
		panic(panicNotInvertib)
	}

	return Rational{v: new(big.Rat).Inv(a.rat())}
}

// IsZero reports a == 0.
func (a Rational) IsZero() bool { return a.v == nil || a.v.Sign() == 0 }

// Equal reports a == b.
func (a Rational) Equal(b Rational) bool { return a.rat().Cmp(b.rat()) == 0 }

// String returns "n" for integers and "n/d" otherwise.
func (a Rational) String() string { return a.rat().RatString() }
