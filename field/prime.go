// SPDX-License-Identifier: MIT

package field

import "math/big"

// PrimeField is the finite field GF(p).
type PrimeField struct {
	p *big.Int // the prime modulus
}

// NewPrimeField creates GF(p). Panics unless p is a probable prime.
func NewPrimeField(p *big.Int) *PrimeField {
	if p == nil || p.Cmp(big.NewInt(1)) <= 0 || !p.ProbablyPrime(20) {
		panic(panicModulus)
	}

	return &PrimeField{p: new(big.Int).Set(p)}
}

// Order returns p.
func (f *PrimeField) Order() *big.Int { return new(big.Int).Set(f.p) }

// Zero returns the additive identity (0).
func (f *PrimeField) Zero() Prime { return Prime{value: big.NewInt(0), field: f} }

// One returns the multiplicative identity (1).
func (f *PrimeField) One() Prime { return Prime{value: big.NewInt(1), field: f} }

// Element reduces v modulo p.
func (f *PrimeField) Element(v int64) Prime {
	val := big.NewInt(v)
	val.Mod(val, f.p)

	return Prime{value: val, field: f}
}

// Prime is an element of a PrimeField, in range [0, p-1].
type Prime struct {
	value *big.Int    // element value
	field *PrimeField // parent field
}

// Value returns a copy of the canonical representative.
func (e Prime) Value() *big.Int { return new(big.Int).Set(e.value) }

func (e Prime) wrap(v *big.Int) Prime {
	v.Mod(v, e.field.p)

	return Prime{value: v, field: e.field}
}

// Add returns e + b mod p.
func (e Prime) Add(b Prime) Prime { return e.wrap(new(big.Int).Add(e.value, b.value)) }

// Sub returns e - b mod p.
func (e Prime) Sub(b Prime) Prime { return e.wrap(new(big.Int).Sub(e.value, b.value)) }

// Mul returns e * b mod p.
func (e Prime) Mul(b Prime) Prime { return e.wrap(new(big.Int).Mul(e.value, b.value)) }

// Div returns e * b⁻¹ mod p.
func (e Prime) Div(b Prime) Prime {
	if b.IsZero() {
		panic(panicDivByZero)
	}

	return e.Mul(b.Inv())
}

// Neg returns -e mod p.
func (e Prime) Neg() Prime { return e.wrap(new(big.Int).Neg(e.value)) }

// Inv returns the multiplicative inverse of e.
func (e Prime) Inv() Prime {
	inv := new(big.Int).ModInverse(e.value, e.field.p)
	if inv == nil {
		panic(panicNotInvertib)
	}

	return Prime{value: inv, field: e.field}
}

// IsZero returns true if e equals zero.
func (e Prime) IsZero() bool { return e.value.Sign() == 0 }

// Equal returns true if e equals b.
func (e Prime) Equal(b Prime) bool { return e.value.Cmp(b.value) == 0 }

// String returns the decimal representative.
func (e Prime) String() string { return e.value.String() }
