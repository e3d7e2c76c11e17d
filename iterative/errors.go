// SPDX-License-Identifier: MIT
// Package iterative: sentinel error set.
// Parameter problems are reported before the first iteration; numerical
// breakdowns are reported at the iteration where they are observed.
// Callers match with errors.Is.

package iterative

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/linsolve/matrix"
)

var (
	// ErrNilArgument indicates a nil operator or vector where one is required.
	ErrNilArgument = errors.New("iterative: nil operator or vector")

	// ErrNonSquareOperator signals a non-square operator or preconditioner.
	ErrNonSquareOperator = errors.New("iterative: operator is not square")

	// ErrDimensionMismatch is matrix.ErrDimensionMismatch, so one errors.Is
	// check covers both packages.
	ErrDimensionMismatch = matrix.ErrDimensionMismatch

	// ErrNonPositiveDefiniteOperator is returned by ConjugateGradient (with
	// checks on) when p·A·p <= 0.
	ErrNonPositiveDefiniteOperator = errors.New("iterative: operator is not positive definite")

	// ErrNonPositiveDefinitePreconditioner is returned when r·M·r <= 0 (CG) or
	// an M-inner product is negative (SymmLQ).
	ErrNonPositiveDefinitePreconditioner = errors.New("iterative: preconditioner is not positive definite")

	// ErrNonSelfAdjointOperator is returned by SymmLQ (with checks on) for a
	// non-symmetric operator.
	ErrNonSelfAdjointOperator = errors.New("iterative: operator is not self-adjoint")

	// ErrNonSelfAdjointPreconditioner is returned by SymmLQ (with checks on)
	// for a non-symmetric preconditioner.
	ErrNonSelfAdjointPreconditioner = errors.New("iterative: preconditioner is not self-adjoint")

	// ErrIllConditionedOperator is returned by SymmLQ when the condition
	// estimate reaches 0.1/ε.
	ErrIllConditionedOperator = errors.New("iterative: operator is ill-conditioned")

	// ErrSingularOperator is returned when the operator appears singular, e.g.
	// a zero diagonal entry for Jacobi or an eigenvector breakdown in SymmLQ.
	ErrSingularOperator = errors.New("iterative: operator is singular")

	// ErrMaxCountExceeded is returned when the iteration budget is spent.
	// The last fired event still holds the final iterate.
	ErrMaxCountExceeded = errors.New("iterative: maximal iteration count exceeded")
)

// iterErrorf wraps err as "<tag>: err". Call only with a non-nil err.
func iterErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
