// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Every exported operation reports failures through these sentinels, usually
// wrapped with an operation tag (matrixErrorf, denseErrorf, validatorErrorf).
// Callers match with errors.Is. User input never causes a panic; panics are
// reserved for nonsensical Option values.

package matrix

import "errors"

// Error priority inside one operation:
// nil/shape/index/NaN -> dimension mismatch -> structural (square, symmetric,
// positive definite) -> numerical state (singular).

var (
	// ErrBadShape is returned for ragged or otherwise malformed literal data.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrInvalidDimensions indicates that requested matrix dimensions are non-positive.
	ErrInvalidDimensions = errors.New("matrix: dimensions must be > 0")

	// ErrOutOfRange indicates that a row, column or vector index is outside valid bounds.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible operand dimensions, including a
	// copy destination that is too small.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrNonSquare signals that a square matrix was required.
	ErrNonSquare = errors.New("matrix: matrix is not square")

	// ErrAsymmetry signals that a matrix expected to be symmetric is not, under
	// the relative symmetry threshold.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within threshold")

	// ErrNonPositiveDefinite signals a Cholesky pivot below the positivity threshold.
	ErrNonPositiveDefinite = errors.New("matrix: matrix is not positive definite")

	// ErrSingular is returned by solvers bound to a singular (or rank-deficient)
	// decomposition.
	ErrSingular = errors.New("matrix: singular matrix")

	// ErrNaNInf signals a NaN or ±Inf value where the numeric policy requires
	// finite values.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix or Vector was passed.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrRangeInverted is returned when a row or column range ends before it starts.
	ErrRangeInverted = errors.New("matrix: range end precedes start")

	// ErrEmptySelection is returned when a row or column index list is empty.
	ErrEmptySelection = errors.New("matrix: empty index selection")

	// ErrIllegalState is returned when an operation is not allowed in the
	// current state, e.g. SetSubMatrix away from the origin of an
	// uninitialized matrix.
	ErrIllegalState = errors.New("matrix: illegal state")

	// ErrReadOnly is returned by SetVec on a read-only vector view.
	ErrReadOnly = errors.New("matrix: vector is read-only")

	// ErrNegativePower is returned by Power for a negative exponent.
	ErrNegativePower = errors.New("matrix: negative power")

	// ErrNoConvergence is returned when the Jacobi eigen solver exhausts its
	// rotation budget.
	ErrNoConvergence = errors.New("matrix: eigen decomposition did not converge")

	// ErrNoSingularValue is returned by SVD.Covariance when no singular value
	// reaches the requested cutoff.
	ErrNoSingularValue = errors.New("matrix: no singular value above cutoff")
)
