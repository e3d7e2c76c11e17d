// SPDX-License-Identifier: MIT

package field

import (
	"errors"
	"fmt"
)

var (
	// ErrBadShape is returned for ragged or empty element grids.
	ErrBadShape = errors.New("field: invalid shape")

	// ErrOutOfRange indicates a row or column index outside the matrix.
	ErrOutOfRange = errors.New("field: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions.
	ErrDimensionMismatch = errors.New("field: dimension mismatch")

	// ErrNonSquare is returned when a square matrix is required.
	ErrNonSquare = errors.New("field: matrix is not square")

	// ErrNegativePower is returned by Power for negative exponents.
	ErrNegativePower = errors.New("field: negative power")

	// ErrSingular is returned when solving against a singular LU.
	ErrSingular = errors.New("field: singular matrix")

	// ErrNilField is returned when a constructor receives a nil Field.
	ErrNilField = errors.New("field: nil field")

	// ErrNilMatrix indicates that a nil *Matrix or *Vector was passed.
	ErrNilMatrix = errors.New("field: nil matrix")

	// ErrRangeInverted is returned when a row or column range ends before it starts.
	ErrRangeInverted = errors.New("field: range end precedes start")

	// ErrEmptySelection is returned for an empty row or column index list.
	ErrEmptySelection = errors.New("field: empty index selection")

	// ErrIllegalState is returned by SetSubMatrix away from the origin of a
	// matrix that has no entries yet.
	ErrIllegalState = errors.New("field: illegal state")
)

// Panic messages for arithmetic misuse (division by the additive identity).
const (
	panicDivByZero   = "field: division by zero"
	panicNotInvertib = "field: element is not invertible"
	panicModulus     = "field: modulus must be a prime > 1"
	panicZeroDenom   = "field: zero denominator"
)

// fieldErrorf tags err with the failing operation.
func fieldErrorf(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
