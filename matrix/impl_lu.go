// SPDX-License-Identifier: MIT

// Package matrix - LU decomposition with partial pivoting.

package matrix

import "math"

const opLU = "LU"

// LU is the decomposition P·A = L·U of a square matrix, computed by Crout
// elimination with partial pivoting.
//
// Behavior highlights:
//   - All factors are built once in NewLU; accessors return the same cached
//     *Dense on every call. Callers must not modify them.
//   - A pivot magnitude <= the singularity threshold marks the matrix
//     singular: L, U and P are nil, Determinant is 0 and solves fail with
//     ErrSingular.
type LU struct {
	n        int
	lu       []float64 // packed: strict lower part of L, upper part incl. diagonal of U
	pivot    []int     // row i of P·A is row pivot[i] of A
	even     bool      // permutation parity
	singular bool

	l, u, p *Dense
}

// NewLU decomposes the square matrix m.
// MAIN DESCRIPTION:
//   - Crout elimination column by column; in each column the row with the
//     largest candidate pivot is swapped into place.
//
// Inputs:
//   - m: square matrix; it is copied, never modified.
//   - opts: WithSingularityThreshold (default DefaultSingularityThreshold).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare.
//
// Complexity:
//   - Time O(n³), Space O(n²).
func NewLU(m Matrix, opts ...Option) (*LU, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	a, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opLU, err)
	}
	o := gatherOptions(opts...)

	n := a.r
	d := &LU{n: n, lu: a.data, pivot: make([]int, n), even: true}
	for i := range d.pivot {
		d.pivot[i] = i
	}

	lu := d.lu
	var (
		row, col, i, best int
		sum, largest      float64
	)
	for col = 0; col < n; col++ {
		for row = 0; row < col; row++ {
			sum = lu[row*n+col]
			for i = 0; i < row; i++ {
				sum -= lu[row*n+i] * lu[i*n+col]
			}
			lu[row*n+col] = sum
		}

		best, largest = col, math.Inf(-1)
		for row = col; row < n; row++ {
			sum = lu[row*n+col]
			for i = 0; i < col; i++ {
				sum -= lu[row*n+i] * lu[i*n+col]
			}
			lu[row*n+col] = sum
			if math.Abs(sum) > largest {
				largest, best = math.Abs(sum), row
			}
		}

		if math.Abs(lu[best*n+col]) <= o.singularity {
			log.Debugf("LU: singular at column %d (pivot %g <= %g)", col, lu[best*n+col], o.singularity)
			d.singular = true

			return d, nil
		}
		if best != col {
			for i = 0; i < n; i++ {
				lu[best*n+i], lu[col*n+i] = lu[col*n+i], lu[best*n+i]
			}
			d.pivot[best], d.pivot[col] = d.pivot[col], d.pivot[best]
			d.even = !d.even
		}

		for row = col + 1; row < n; row++ {
			lu[row*n+col] /= lu[col*n+col]
		}
	}
	d.buildFactors()

	return d, nil
}

func (d *LU) buildFactors() {
	n := d.n
	l := newDenseRaw(n, n, make([]float64, n*n))
	u := newDenseRaw(n, n, make([]float64, n*n))
	p := newDenseRaw(n, n, make([]float64, n*n))
	for i := 0; i < n; i++ {
		for j := 0; j < i; j++ {
			l.data[i*n+j] = d.lu[i*n+j]
		}
		l.data[i*n+i] = 1
		for j := i; j < n; j++ {
			u.data[i*n+j] = d.lu[i*n+j]
		}
		p.data[i*n+d.pivot[i]] = 1
	}
	d.l, d.u, d.p = l, u, p
}

// L returns the unit lower-triangular factor, nil when singular.
func (d *LU) L() *Dense { return d.l }

// U returns the upper-triangular factor, nil when singular.
func (d *LU) U() *Dense { return d.u }

// P returns the permutation matrix, nil when singular.
func (d *LU) P() *Dense { return d.p }

// Pivot returns a copy of the row permutation.
func (d *LU) Pivot() []int {
	out := make([]int, d.n)
	copy(out, d.pivot)

	return out
}

// Determinant returns det(A), 0 when singular.
func (d *LU) Determinant() float64 {
	if d.singular {
		return 0
	}
	det := 1.0
	if !d.even {
		det = -1.0
	}
	for i := 0; i < d.n; i++ {
		det *= d.lu[i*d.n+i]
	}

	return det
}

// IsNonSingular reports whether every pivot exceeded the threshold.
func (d *LU) IsNonSingular() bool { return !d.singular }

// Solver returns the Solver bound to this decomposition.
func (d *LU) Solver() Solver { return solver{op: opLU, k: d} }

func (d *LU) shape() (int, int) { return d.n, d.n }
func (d *LU) nonSingular() bool { return !d.singular }

func (d *LU) solveSlice(b []float64) []float64 {
	n := d.n
	x := make([]float64, n)
	var row, col int
	for row = 0; row < n; row++ {
		x[row] = b[d.pivot[row]]
	}
	// L·y = P·b
	for col = 0; col < n; col++ {
		for row = col + 1; row < n; row++ {
			x[row] -= x[col] * d.lu[row*n+col]
		}
	}
	// U·x = y
	for col = n - 1; col >= 0; col-- {
		x[col] /= d.lu[col*n+col]
		for row = 0; row < col; row++ {
			x[row] -= x[col] * d.lu[row*n+col]
		}
	}

	return x
}
