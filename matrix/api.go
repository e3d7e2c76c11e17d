// SPDX-License-Identifier: MIT
// Package matrix: public API facades.
//
// Purpose:
//   - Thin entry points for common tasks; each delegates to the canonical
//     kernel or decomposition.
//   - Inverse, Determinant and SolveVec are one-call shortcuts over LU.

package matrix

import "math"

// NewZeros returns a new zero-initialized *Dense of size rows×cols.
func NewZeros(rows, cols int) (*Dense, error) {
	return NewDense(rows, cols)
}

// NewIdentity returns I_n.
func NewIdentity(n int) (*Dense, error) {
	id, err := NewDense(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		id.data[i*n+i] = 1.0
	}

	return id, nil
}

// NewDiagonal returns the square matrix with d on its diagonal.
func NewDiagonal(d []float64) (*Dense, error) {
	m, err := NewDense(len(d), len(d))
	if err != nil {
		return nil, err
	}
	for i, v := range d {
		m.data[i*m.c+i] = v
	}

	return m, nil
}

// CloneMatrix returns m.Clone().
func CloneMatrix(m Matrix) Matrix {
	return m.Clone()
}

// ZerosLike returns a new zero matrix with the same shape as m.
func ZerosLike(m Matrix) (*Dense, error) {
	return NewDense(m.Rows(), m.Cols())
}

// IdentityLike returns I with dimension Rows(m); m must be square.
func IdentityLike(m Matrix) (*Dense, error) {
	if err := ValidateSquare(m); err != nil {
		return nil, matrixErrorf("IdentityLike", err)
	}

	return NewIdentity(m.Rows())
}

// RowSums returns r with r[i] = Σ_j m[i,j].
func RowSums(m Matrix) ([]float64, error) {
	ones := make([]float64, m.Cols())
	for j := range ones {
		ones[j] = 1.0
	}

	return MatVec(m, ones)
}

// AllClose reports whether |a-b| <= atol + rtol·|b| holds entrywise.
// NaN never compares close; equal infinities do.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch.
func AllClose(a, b Matrix, rtol, atol float64) (bool, error) {
	if err := ValidateBinarySameShape(a, b); err != nil {
		return false, matrixErrorf("AllClose", err)
	}
	rtol, atol = math.Abs(rtol), math.Abs(atol)
	var av, bv float64
	for i := 0; i < a.Rows(); i++ {
		for j := 0; j < a.Cols(); j++ {
			av, _ = a.At(i, j)
			bv, _ = b.At(i, j)
			if av == bv {
				continue
			}
			if math.IsNaN(av) || math.IsNaN(bv) || math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
				return false, nil
			}
		}
	}

	return true, nil
}

// Inverse returns m⁻¹ through an LU decomposition.
//
// Errors:
//   - ErrNilMatrix, ErrNonSquare, ErrSingular.
func Inverse(m Matrix, opts ...Option) (*Dense, error) {
	lu, err := NewLU(m, opts...)
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}
	inv, err := lu.Solver().Inverse()
	if err != nil {
		return nil, matrixErrorf(opInverse, err)
	}

	return inv, nil
}

// Determinant returns det(m) through an LU decomposition (0 when singular).
func Determinant(m Matrix, opts ...Option) (float64, error) {
	lu, err := NewLU(m, opts...)
	if err != nil {
		return 0, matrixErrorf(opDeterminant, err)
	}

	return lu.Determinant(), nil
}

// SolveVec solves m·x = b through an LU decomposition.
func SolveVec(m Matrix, b Vector, opts ...Option) (*VecDense, error) {
	lu, err := NewLU(m, opts...)
	if err != nil {
		return nil, matrixErrorf("SolveVec", err)
	}

	return lu.Solver().Solve(b)
}
