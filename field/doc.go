// SPDX-License-Identifier: MIT

// Package field provides the scalar Field abstraction used by the generic
// linear-algebra code of linsolve, together with a generic dense Matrix[E],
// a Vector[E] and an exact LU decomposition over any Field.
//
// Matrix[E] follows the row, column, sub-matrix and visitor rules of the
// float64 matrix package: inclusive ranges, matrix.TraversalOrder for Walk
// and Visit, and a NewEmptyMatrix that takes its shape from the first
// SetSubMatrix at (0, 0).
//
// Three element kinds ship with the package:
//
//	Real     float64 arithmetic (inexact)
//	Rational exact fractions backed by math/big.Rat
//	Prime    integers modulo a prime p, backed by math/big.Int
//
// The algorithms in this package never compare against a tolerance: a pivot
// is usable iff it is not IsZero(). Over Real this is a plain non-zero test,
// so numerically sensitive work should use the float64 decompositions of the
// matrix package instead.
package field
