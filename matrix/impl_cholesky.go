// SPDX-License-Identifier: MIT

// Package matrix - Cholesky decomposition of symmetric positive definite matrices.

package matrix

import (
	"fmt"
	"math"
)

const opCholesky = "Cholesky"

// Cholesky is the decomposition A = L·Lᵀ of a symmetric positive definite
// matrix. L and Lᵀ are computed at construction and cached separately.
type Cholesky struct {
	n  int
	lt []float64 // row-major Lᵀ (upper triangular)

	l, ltd *Dense
}

// NewCholesky decomposes m.
// MAIN DESCRIPTION:
//   - Validate symmetry under the relative threshold, then factor row by row
//     of Lᵀ, scaling by the inverse square-root pivot.
//
// Inputs:
//   - opts: WithSymmetryThreshold (relative, default DefaultSymmetryThreshold),
//     WithPositivityThreshold (absolute, default DefaultPositivityThreshold).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare.
//   - ErrAsymmetry when |a_ij - a_ji| > t·max(|a_ij|, |a_ji|).
//   - ErrNonPositiveDefinite when a pivot is <= the positivity threshold.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func NewCholesky(m Matrix, opts ...Option) (*Cholesky, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	a, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}
	o := gatherOptions(opts...)
	if err = ValidateSymmetric(a, o.symmetry); err != nil {
		return nil, matrixErrorf(opCholesky, err)
	}

	n := a.r
	lt := a.data
	var i, p, q int
	// keep the upper triangle only
	for i = 0; i < n; i++ {
		for q = 0; q < i; q++ {
			lt[i*n+q] = 0
		}
	}
	var inv float64
	for i = 0; i < n; i++ {
		if lt[i*n+i] <= o.positivity {
			log.Debugf("Cholesky: pivot %d is %g <= %g", i, lt[i*n+i], o.positivity)
			return nil, matrixErrorf(opCholesky, fmt.Errorf("pivot %d is %g: %w", i, lt[i*n+i], ErrNonPositiveDefinite))
		}
		lt[i*n+i] = math.Sqrt(lt[i*n+i])
		inv = 1.0 / lt[i*n+i]
		for q = n - 1; q > i; q-- {
			lt[i*n+q] *= inv
			for p = q; p < n; p++ {
				lt[q*n+p] -= lt[i*n+q] * lt[i*n+p]
			}
		}
	}

	c := &Cholesky{n: n, lt: lt}
	c.ltd = newDenseRaw(n, n, append([]float64(nil), lt...))
	c.l = transposeDense(c.ltd)

	return c, nil
}

// L returns the lower-triangular factor.
func (c *Cholesky) L() *Dense { return c.l }

// LT returns Lᵀ.
func (c *Cholesky) LT() *Dense { return c.ltd }

// Determinant returns (∏ L_ii)².
func (c *Cholesky) Determinant() float64 {
	det := 1.0
	for i := 0; i < c.n; i++ {
		v := c.lt[i*c.n+i]
		det *= v * v
	}

	return det
}

// Solver returns the Solver bound to this decomposition. It is always
// non-singular since construction rejects non positive definite input.
func (c *Cholesky) Solver() Solver { return solver{op: opCholesky, k: c} }

func (c *Cholesky) shape() (int, int) { return c.n, c.n }
func (c *Cholesky) nonSingular() bool { return true }

func (c *Cholesky) solveSlice(b []float64) []float64 {
	n, lt := c.n, c.lt
	x := make([]float64, n)
	copy(x, b)
	var i, j int
	// L·y = b
	for j = 0; j < n; j++ {
		x[j] /= lt[j*n+j]
		for i = j + 1; i < n; i++ {
			x[i] -= x[j] * lt[j*n+i]
		}
	}
	// Lᵀ·x = y
	for j = n - 1; j >= 0; j-- {
		x[j] /= lt[j*n+j]
		for i = 0; i < j; i++ {
			x[i] -= x[j] * lt[i*n+j]
		}
	}

	return x
}
