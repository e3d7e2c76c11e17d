// SPDX-License-Identifier: MIT

// Package matrix - eigen decomposition of real symmetric matrices by Jacobi
// rotations.

package matrix

import (
	"fmt"
	"math"
	"sort"
)

const (
	opEigen = "Eigen"

	// |λ_i| <= eigenRelSingular·max|λ| makes the Solver singular
	eigenRelSingular = 0x1p-52
)

// Eigen is the decomposition A = V·D·Vᵀ of a real symmetric matrix: D is
// diagonal with the eigenvalues in decreasing order and the columns of the
// orthogonal V are the matching unit eigenvectors.
// D, V and Vᵀ are computed at construction and cached.
type Eigen struct {
	n      int
	values []float64
	v      []float64 // row-major V

	d, vd, vt *Dense
}

// NewEigen decomposes the symmetric matrix m.
// MAIN DESCRIPTION:
//   - Validate symmetry under the relative threshold, then repeatedly
//     rotate away the largest off-diagonal entry (row-major scan) until all
//     are <= tol·‖A‖_F, accumulating the rotations into V.
//
// Inputs:
//   - opts: WithSymmetryThreshold (default DefaultSymmetryThreshold),
//     WithEigenTolerance (default DefaultEigenTolerance),
//     WithEigenMaxSweeps (default DefaultEigenMaxSweeps).
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions, ErrNonSquare, ErrAsymmetry.
//   - ErrNoConvergence when sweeps·n(n-1)/2 rotations were not enough.
//
// Complexity:
//   - Time O(n²) per rotation for the pivot scan, Space O(n²).
func NewEigen(m Matrix, opts ...Option) (*Eigen, error) {
	if err := ValidateSquareNonNil(m); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	a, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(opEigen, err)
	}
	o := gatherOptions(opts...)
	if err = ValidateSymmetric(a, o.symmetry); err != nil {
		return nil, matrixErrorf(opEigen, err)
	}

	n := a.r
	ad := a.data
	q := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		q[i*n+i] = 1
	}

	stop := o.eigenTol * FrobeniusNorm(a)
	budget := o.eigenSweeps * n * (n - 1) / 2
	var (
		rot, p, r      int
		maxOff, off    float64
		app, arr, apr  float64
		aip, air       float64
		theta, t, c, s float64
		newIP, newIR   float64
		converged      bool
	)
	for rot = 0; ; rot++ {
		maxOff = NormZero
		for i = 0; i < n; i++ {
			for j = i + 1; j < n; j++ {
				if off = math.Abs(ad[i*n+j]); off > maxOff {
					maxOff, p, r = off, i, j
				}
			}
		}
		if maxOff <= stop {
			converged = true
			break
		}
		if rot == budget {
			break
		}

		app, arr, apr = ad[p*n+p], ad[r*n+r], ad[p*n+r]
		theta = (arr - app) / (2 * apr)
		t = math.Copysign(1/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
		c = 1 / math.Sqrt(t*t+1)
		s = t * c

		for i = 0; i < n; i++ {
			if i == p || i == r {
				continue
			}
			aip, air = ad[i*n+p], ad[i*n+r]
			newIP = c*aip - s*air
			newIR = s*aip + c*air
			ad[i*n+p], ad[p*n+i] = newIP, newIP
			ad[i*n+r], ad[r*n+i] = newIR, newIR
		}
		ad[p*n+p] = c*c*app - 2*c*s*apr + s*s*arr
		ad[r*n+r] = s*s*app + 2*c*s*apr + c*c*arr
		ad[p*n+r], ad[r*n+p] = 0, 0

		for i = 0; i < n; i++ {
			aip, air = q[i*n+p], q[i*n+r]
			q[i*n+p] = c*aip - s*air
			q[i*n+r] = s*aip + c*air
		}
	}
	if !converged {
		log.Debugf("Eigen: off-diagonal %g > %g after %d rotations", maxOff, stop, rot)
		return nil, matrixErrorf(opEigen, fmt.Errorf("%d rotations, off-diagonal %g: %w", rot, maxOff, ErrNoConvergence))
	}

	// decreasing eigenvalues, columns of V permuted alike
	order := make([]int, n)
	for i = range order {
		order[i] = i
	}
	sort.SliceStable(order, func(x, y int) bool { return ad[order[x]*n+order[x]] > ad[order[y]*n+order[y]] })

	e := &Eigen{n: n, values: make([]float64, n), v: make([]float64, n*n)}
	for j = 0; j < n; j++ {
		e.values[j] = ad[order[j]*n+order[j]]
		for i = 0; i < n; i++ {
			e.v[i*n+j] = q[i*n+order[j]]
		}
	}
	e.vd = newDenseRaw(n, n, append([]float64(nil), e.v...))
	e.vt = transposeDense(e.vd)
	e.d = newDenseRaw(n, n, make([]float64, n*n))
	for i = 0; i < n; i++ {
		e.d.data[i*n+i] = e.values[i]
	}
	log.Debugf("Eigen: n=%d converged after %d rotations", n, rot)

	return e, nil
}

// D returns the diagonal eigenvalue matrix.
func (e *Eigen) D() *Dense { return e.d }

// V returns the matrix whose columns are the eigenvectors.
func (e *Eigen) V() *Dense { return e.vd }

// VT returns Vᵀ.
func (e *Eigen) VT() *Dense { return e.vt }

// RealEigenvalues returns a copy of the eigenvalues, largest first.
func (e *Eigen) RealEigenvalues() []float64 {
	return append([]float64(nil), e.values...)
}

// RealEigenvalue returns the i-th largest eigenvalue.
func (e *Eigen) RealEigenvalue(i int) (float64, error) {
	if i < 0 || i >= e.n {
		return 0, fmt.Errorf("%s.RealEigenvalue(%d): %w", opEigen, i, ErrOutOfRange)
	}

	return e.values[i], nil
}

// Eigenvector returns a copy of the unit eigenvector of RealEigenvalue(i).
func (e *Eigen) Eigenvector(i int) (*VecDense, error) {
	if i < 0 || i >= e.n {
		return nil, fmt.Errorf("%s.Eigenvector(%d): %w", opEigen, i, ErrOutOfRange)
	}
	out := make([]float64, e.n)
	for k := range out {
		out[k] = e.v[k*e.n+i]
	}

	return &VecDense{data: out}, nil
}

// Determinant returns the product of the eigenvalues.
func (e *Eigen) Determinant() float64 {
	det := 1.0
	for _, l := range e.values {
		det *= l
	}

	return det
}

// Solver returns the Solver bound to this decomposition: x = V·D⁻¹·Vᵀ·b.
// It is singular when some |λ_i| <= 2⁻⁵²·max|λ|.
func (e *Eigen) Solver() Solver { return solver{op: opEigen, k: e} }

func (e *Eigen) shape() (int, int) { return e.n, e.n }

func (e *Eigen) nonSingular() bool {
	largest := NormZero
	for _, l := range e.values {
		largest = math.Max(largest, math.Abs(l))
	}
	for _, l := range e.values {
		if math.Abs(l) <= eigenRelSingular*largest {
			return false
		}
	}

	return largest > 0
}

func (e *Eigen) solveSlice(b []float64) []float64 {
	n, v := e.n, e.v
	x := make([]float64, n)
	var i, j int
	var dot float64
	for j = 0; j < n; j++ {
		dot = 0
		for i = 0; i < n; i++ {
			dot += v[i*n+j] * b[i]
		}
		dot /= e.values[j]
		for i = 0; i < n; i++ {
			x[i] += dot * v[i*n+j]
		}
	}

	return x
}
