// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"

	"github.com/katalvlaran/linsolve/matrix"
)

// iterate runs one method on plain slices: x holds the initial guess on
// entry and the final (or last) iterate on return.
type iterate func(a, m LinearOperator, b, x []float64) error

// checkParameters validates shapes before any iteration. m may be nil.
func checkParameters(a, m LinearOperator, b, x0 matrix.Vector) error {
	if a == nil || b == nil {
		return ErrNilArgument
	}
	if a.Rows() != a.Cols() {
		return fmt.Errorf("operator is %dx%d: %w", a.Rows(), a.Cols(), ErrNonSquareOperator)
	}
	if b.Len() != a.Rows() {
		return fmt.Errorf("b has length %d, want %d: %w", b.Len(), a.Rows(), ErrDimensionMismatch)
	}
	if x0 != nil && x0.Len() != a.Cols() {
		return fmt.Errorf("x0 has length %d, want %d: %w", x0.Len(), a.Cols(), ErrDimensionMismatch)
	}
	if m != nil {
		if m.Rows() != m.Cols() {
			return fmt.Errorf("preconditioner is %dx%d: %w", m.Rows(), m.Cols(), ErrNonSquareOperator)
		}
		if m.Rows() != a.Rows() {
			return fmt.Errorf("preconditioner is %dx%d, operator %dx%d: %w", m.Rows(), m.Cols(), a.Rows(), a.Cols(), ErrDimensionMismatch)
		}
	}

	return nil
}

// solveCopy solves into a fresh vector; x0 (nil means zero) is not touched.
func solveCopy(op string, run iterate, a, m LinearOperator, b, x0 matrix.Vector) (*matrix.VecDense, error) {
	if err := checkParameters(a, m, b, x0); err != nil {
		return nil, iterErrorf(op, err)
	}
	bs, err := matrix.ToSlice(b)
	if err != nil {
		return nil, iterErrorf(op, err)
	}
	x := make([]float64, a.Cols())
	if x0 != nil {
		if x, err = matrix.ToSlice(x0); err != nil {
			return nil, iterErrorf(op, err)
		}
	}
	if err = run(a, m, bs, x); err != nil {
		return nil, iterErrorf(op, err)
	}

	return matrix.NewVecDenseFrom(x, false), nil
}

// solveInPlace solves into x0. The last iterate is written back even when
// the solve fails.
func solveInPlace(op string, run iterate, a, m LinearOperator, b, x0 matrix.Vector) (matrix.Vector, error) {
	if x0 == nil {
		return nil, iterErrorf(op, ErrNilArgument)
	}
	if err := checkParameters(a, m, b, x0); err != nil {
		return nil, iterErrorf(op, err)
	}
	bs, err := matrix.ToSlice(b)
	if err != nil {
		return nil, iterErrorf(op, err)
	}
	x, err := matrix.ToSlice(x0)
	if err != nil {
		return nil, iterErrorf(op, err)
	}
	runErr := run(a, m, bs, x)
	for i, v := range x {
		if err = x0.SetVec(i, v); err != nil {
			return nil, iterErrorf(op, err)
		}
	}
	if runErr != nil {
		return nil, iterErrorf(op, runErr)
	}

	return x0, nil
}

// apply returns op·v. The operator sees a read-only view of v.
func apply(op LinearOperator, v []float64) ([]float64, error) {
	y, err := op.Operate(matrix.ReadOnly(matrix.NewVecDenseFrom(v, false)))
	if err != nil {
		return nil, err
	}
	if y == nil || y.Len() != op.Rows() {
		return nil, fmt.Errorf("operator returned a vector of the wrong length: %w", ErrDimensionMismatch)
	}

	return matrix.ToSlice(y)
}

// readOnly wraps a working slice for events.
func readOnly(v []float64) matrix.Vector {
	return matrix.ReadOnly(matrix.NewVecDenseFrom(v, false))
}
