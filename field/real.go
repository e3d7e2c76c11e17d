// SPDX-License-Identifier: MIT

package field

import "strconv"

// Real is a float64 scalar.
type Real float64

// RealField is the Field of float64 scalars.
type RealField struct{}

// Zero returns 0.
func (RealField) Zero() Real { return 0 }

// One returns 1.
func (RealField) One() Real { return 1 }

// Add returns a + b.
func (a Real) Add(b Real) Real { return a + b }

// Sub returns a - b.
func (a Real) Sub(b Real) Real { return a - b }

// Mul returns a * b.
func (a Real) Mul(b Real) Real { return a * b }

// Div returns a / b.
func (a Real) Div(b Real) Real {
	if b == 0 {
		panic(panicDivByZero)
	}

	return a / b
}

// Neg returns -a.
func (a Real) Neg() Real { return -a }

// Inv returns 1/a.
func (a Real) Inv() Real {
	if a == 0 {
		panic(panicNotInvertib)
	}

	return 1 / a
}

// IsZero reports a == 0.
func (a Real) IsZero() bool { return a == 0 }

// Equal reports a == b (exact float comparison).
func (a Real) Equal(b Real) bool { return a == b }

// String formats a with the shortest exact representation.
func (a Real) String() string { return strconv.FormatFloat(float64(a), 'g', -1, 64) }
