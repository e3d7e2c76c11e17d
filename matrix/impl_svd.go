// SPDX-License-Identifier: MIT

// Package matrix - singular value decomposition (Golub–Kahan–Reinsch).

package matrix

import (
	"fmt"
	"math"
)

const (
	opSVD           = "SVD"
	opSVDCovariance = "SVD.Covariance"
)

const (
	svdEps  = 0x1p-52  // relative machine precision
	svdTiny = 0x1p-966 // smallest value kept distinct from zero in the QR sweeps

	svdSafeMin = 0x1p-1022 // smallest normal float64
)

// SVD is the decomposition A = U·S·Vᵀ of an m×n matrix with U (m×m) and
// V (n×n) orthogonal and S (m×n) diagonal with non-increasing, non-negative
// entries.
//
// Behavior highlights:
//   - Factors, tolerance and rank are computed once at construction.
//   - NaN input does not fail: the singular values come out NaN.
//   - The solver is the Moore–Penrose pseudo-inverse; it is non-singular
//     only when rank == min(m,n).
type SVD struct {
	m, n      int
	sv        []float64 // min(m,n) values, descending
	u, v      *Dense
	ut, vt, s *Dense
	tol       float64
	rank      int
}

// NewSVD decomposes m.
// MAIN DESCRIPTION:
//   - Householder bidiagonalization followed by implicit-shift QR sweeps.
//
// Implementation:
//   - Stage 1: wide inputs are decomposed transposed and U, V swapped.
//   - Stage 2: bidiagonalize, accumulate U (thin) and V.
//   - Stage 3: QR sweeps until every super-diagonal entry is negligible.
//   - Stage 4: make values positive, sort descending, complete U to m×m.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions.
//
// Complexity:
//   - Time O(m·n·min(m,n) + m³), Space O(m² + n²).
func NewSVD(mat Matrix) (*SVD, error) {
	if err := ValidateNotNil(mat); err != nil {
		return nil, matrixErrorf(opSVD, err)
	}
	in, err := denseCopy(mat)
	if err != nil {
		return nil, matrixErrorf(opSVD, err)
	}

	rows, cols := in.r, in.c
	transposed := rows < cols
	if transposed {
		in = transposeDense(in)
	}
	a := rows2D(in)
	m, n := in.r, in.c // m >= n

	sv, uThin, v := golubKahan(a, m, n)
	u := completeBasis(uThin, m)
	if transposed {
		u, v = v, u
	}

	d := &SVD{m: rows, n: cols, sv: sv}
	d.u = fromRows(u)
	d.v = fromRows(v)
	d.ut = transposeDense(d.u)
	d.vt = transposeDense(d.v)
	d.s = newDenseRaw(rows, cols, make([]float64, rows*cols))
	for i, x := range sv {
		d.s.data[i*cols+i] = x
	}

	d.tol = math.Max(float64(max(rows, cols))*sv[0]*svdEps, math.Sqrt(svdSafeMin))
	for _, x := range sv {
		if x > d.tol {
			d.rank++
		}
	}
	if d.rank < len(sv) {
		log.Debugf("SVD: rank %d < %d (tolerance %g)", d.rank, len(sv), d.tol)
	}

	return d, nil
}

// golubKahan computes the thin SVD of the m×n (m >= n) matrix a, which it
// overwrites. It returns n singular values, U (m×n) and V (n×n).
func golubKahan(a [][]float64, m, n int) ([]float64, [][]float64, [][]float64) {
	nu := min(m, n)
	s := make([]float64, min(m+1, n))
	u := make([][]float64, m)
	for i := range u {
		u[i] = make([]float64, nu)
	}
	v := make([][]float64, n)
	for i := range v {
		v[i] = make([]float64, n)
	}
	e := make([]float64, n)
	work := make([]float64, m)

	nct := min(m-1, n)
	nrt := max(0, min(n-2, m))
	var i, j, k int
	var t float64

	// Reduce to bidiagonal form, storing the diagonal in s and the
	// super-diagonal in e.
	for k = 0; k < max(nct, nrt); k++ {
		if k < nct {
			s[k] = 0
			for i = k; i < m; i++ {
				s[k] = math.Hypot(s[k], a[i][k])
			}
			if s[k] != 0 {
				if a[k][k] < 0 {
					s[k] = -s[k]
				}
				for i = k; i < m; i++ {
					a[i][k] /= s[k]
				}
				a[k][k]++
			}
			s[k] = -s[k]
		}
		for j = k + 1; j < n; j++ {
			if k < nct && s[k] != 0 {
				t = 0
				for i = k; i < m; i++ {
					t += a[i][k] * a[i][j]
				}
				t = -t / a[k][k]
				for i = k; i < m; i++ {
					a[i][j] += t * a[i][k]
				}
			}
			e[j] = a[k][j]
		}
		if k < nct {
			for i = k; i < m; i++ {
				u[i][k] = a[i][k]
			}
		}
		if k < nrt {
			e[k] = 0
			for i = k + 1; i < n; i++ {
				e[k] = math.Hypot(e[k], e[i])
			}
			if e[k] != 0 {
				if e[k+1] < 0 {
					e[k] = -e[k]
				}
				for i = k + 1; i < n; i++ {
					e[i] /= e[k]
				}
				e[k+1]++
			}
			e[k] = -e[k]
			if k+1 < m && e[k] != 0 {
				for i = k + 1; i < m; i++ {
					work[i] = 0
				}
				for j = k + 1; j < n; j++ {
					for i = k + 1; i < m; i++ {
						work[i] += e[j] * a[i][j]
					}
				}
				for j = k + 1; j < n; j++ {
					t = -e[j] / e[k+1]
					for i = k + 1; i < m; i++ {
						a[i][j] += t * work[i]
					}
				}
			}
			for i = k + 1; i < n; i++ {
				v[i][k] = e[i]
			}
		}
	}

	// Set up the final bidiagonal matrix of order p.
	p := min(n, m+1)
	if nct < n {
		s[nct] = a[nct][nct]
	}
	if m < p {
		s[p-1] = 0
	}
	if nrt+1 < p {
		e[nrt] = a[nrt][p-1]
	}
	e[p-1] = 0

	// Generate U.
	for j = nct; j < nu; j++ {
		for i = 0; i < m; i++ {
			u[i][j] = 0
		}
		u[j][j] = 1
	}
	for k = nct - 1; k >= 0; k-- {
		if s[k] != 0 {
			for j = k + 1; j < nu; j++ {
				t = 0
				for i = k; i < m; i++ {
					t += u[i][k] * u[i][j]
				}
				t = -t / u[k][k]
				for i = k; i < m; i++ {
					u[i][j] += t * u[i][k]
				}
			}
			for i = k; i < m; i++ {
				u[i][k] = -u[i][k]
			}
			u[k][k] = 1 + u[k][k]
			for i = 0; i < k-1; i++ {
				u[i][k] = 0
			}
		} else {
			for i = 0; i < m; i++ {
				u[i][k] = 0
			}
			u[k][k] = 1
		}
	}

	// Generate V.
	for k = n - 1; k >= 0; k-- {
		if k < nrt && e[k] != 0 {
			for j = k + 1; j < n; j++ {
				t = 0
				for i = k + 1; i < n; i++ {
					t += v[i][k] * v[i][j]
				}
				t = -t / v[k+1][k]
				for i = k + 1; i < n; i++ {
					v[i][j] += t * v[i][k]
				}
			}
		}
		for i = 0; i < n; i++ {
			v[i][k] = 0
		}
		v[k][k] = 1
	}

	// Main iteration loop for the singular values.
	pp := p - 1
	var kase, ks int
	var f, g, cs, sn float64
	for p > 0 {
		// Inspect for negligible elements. The negated comparison also
		// terminates on NaN.
		for k = p - 2; k >= 0; k-- {
			if !(math.Abs(e[k]) > svdTiny+svdEps*(math.Abs(s[k])+math.Abs(s[k+1]))) {
				e[k] = 0
				break
			}
		}
		if k == p-2 {
			kase = 4 // convergence
		} else {
			for ks = p - 1; ks > k; ks-- {
				t = 0
				if ks != p {
					t += math.Abs(e[ks])
				}
				if ks != k+1 {
					t += math.Abs(e[ks-1])
				}
				if math.Abs(s[ks]) <= svdTiny+svdEps*t {
					s[ks] = 0
					break
				}
			}
			switch {
			case ks == k:
				kase = 3 // QR step
			case ks == p-1:
				kase = 1 // deflate negligible s(p)
			default:
				kase = 2 // split at negligible s(k)
				k = ks
			}
		}
		k++

		switch kase {
		case 1:
			f = e[p-2]
			e[p-2] = 0
			for j = p - 2; j >= k; j-- {
				t = math.Hypot(s[j], f)
				cs, sn = s[j]/t, f/t
				s[j] = t
				if j != k {
					f = -sn * e[j-1]
					e[j-1] = cs * e[j-1]
				}
				for i = 0; i < n; i++ {
					t = cs*v[i][j] + sn*v[i][p-1]
					v[i][p-1] = -sn*v[i][j] + cs*v[i][p-1]
					v[i][j] = t
				}
			}
		case 2:
			f = e[k-1]
			e[k-1] = 0
			for j = k; j < p; j++ {
				t = math.Hypot(s[j], f)
				cs, sn = s[j]/t, f/t
				s[j] = t
				f = -sn * e[j]
				e[j] = cs * e[j]
				for i = 0; i < m; i++ {
					t = cs*u[i][j] + sn*u[i][k-1]
					u[i][k-1] = -sn*u[i][j] + cs*u[i][k-1]
					u[i][j] = t
				}
			}
		case 3:
			scale := math.Max(math.Max(math.Max(math.Max(
				math.Abs(s[p-1]), math.Abs(s[p-2])), math.Abs(e[p-2])), math.Abs(s[k])), math.Abs(e[k]))
			sp := s[p-1] / scale
			spm1 := s[p-2] / scale
			epm1 := e[p-2] / scale
			sk := s[k] / scale
			ek := e[k] / scale
			b := ((spm1+sp)*(spm1-sp) + epm1*epm1) / 2
			c := (sp * epm1) * (sp * epm1)
			shift := 0.0
			if b != 0 || c != 0 {
				shift = math.Sqrt(b*b + c)
				if b < 0 {
					shift = -shift
				}
				shift = c / (b + shift)
			}
			f = (sk+sp)*(sk-sp) + shift
			g = sk * ek
			for j = k; j < p-1; j++ {
				t = math.Hypot(f, g)
				cs, sn = f/t, g/t
				if j != k {
					e[j-1] = t
				}
				f = cs*s[j] + sn*e[j]
				e[j] = cs*e[j] - sn*s[j]
				g = sn * s[j+1]
				s[j+1] = cs * s[j+1]
				for i = 0; i < n; i++ {
					t = cs*v[i][j] + sn*v[i][j+1]
					v[i][j+1] = -sn*v[i][j] + cs*v[i][j+1]
					v[i][j] = t
				}
				t = math.Hypot(f, g)
				cs, sn = f/t, g/t
				s[j] = t
				f = cs*e[j] + sn*s[j+1]
				s[j+1] = -sn*e[j] + cs*s[j+1]
				g = sn * e[j+1]
				e[j+1] = cs * e[j+1]
				if j < m-1 {
					for i = 0; i < m; i++ {
						t = cs*u[i][j] + sn*u[i][j+1]
						u[i][j+1] = -sn*u[i][j] + cs*u[i][j+1]
						u[i][j] = t
					}
				}
			}
			e[p-2] = f
		default:
			// make the value non-negative
			if s[k] <= 0 {
				if s[k] < 0 {
					s[k] = -s[k]
				} else {
					s[k] = 0
				}
				for i = 0; i <= pp; i++ {
					v[i][k] = -v[i][k]
				}
			}
			// order descending
			for k < pp {
				if s[k] >= s[k+1] {
					break
				}
				s[k], s[k+1] = s[k+1], s[k]
				if k < n-1 {
					for i = 0; i < n; i++ {
						v[i][k], v[i][k+1] = v[i][k+1], v[i][k]
					}
				}
				if k < m-1 {
					for i = 0; i < m; i++ {
						u[i][k], u[i][k+1] = u[i][k+1], u[i][k]
					}
				}
				k++
			}
			p--
		}
	}

	return s[:nu], u, v
}

// completeBasis extends the orthonormal columns of q (m×k) to an m×m
// orthogonal matrix by Gram–Schmidt on the unit vectors.
func completeBasis(q [][]float64, m int) [][]float64 {
	k := len(q[0])
	cols := make([][]float64, 0, m)
	for j := 0; j < k; j++ {
		col := make([]float64, m)
		for i := 0; i < m; i++ {
			col[i] = q[i][j]
		}
		cols = append(cols, col)
	}
	var i int
	var dot, norm float64
	for c := 0; c < m && len(cols) < m; c++ {
		cand := make([]float64, m)
		cand[c] = 1
		for pass := 0; pass < 2; pass++ {
			for _, b := range cols {
				dot = 0
				for i = 0; i < m; i++ {
					dot += b[i] * cand[i]
				}
				for i = 0; i < m; i++ {
					cand[i] -= dot * b[i]
				}
			}
		}
		norm = 0
		for i = 0; i < m; i++ {
			norm += cand[i] * cand[i]
		}
		norm = math.Sqrt(norm)
		if norm > 0.5 {
			for i = 0; i < m; i++ {
				cand[i] /= norm
			}
			cols = append(cols, cand)
		}
	}
	out := make([][]float64, m)
	for i = 0; i < m; i++ {
		out[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			out[i][j] = cols[j][i]
		}
	}

	return out
}

// U returns the left singular vectors (m×m).
func (d *SVD) U() *Dense { return d.u }

// UT returns Uᵀ.
func (d *SVD) UT() *Dense { return d.ut }

// V returns the right singular vectors (n×n).
func (d *SVD) V() *Dense { return d.v }

// VT returns Vᵀ.
func (d *SVD) VT() *Dense { return d.vt }

// S returns the m×n diagonal matrix of singular values.
func (d *SVD) S() *Dense { return d.s }

// SingularValues returns a copy of the min(m,n) singular values, descending.
func (d *SVD) SingularValues() []float64 {
	out := make([]float64, len(d.sv))
	copy(out, d.sv)

	return out
}

// Norm returns the largest singular value (the spectral norm).
func (d *SVD) Norm() float64 { return d.sv[0] }

// ConditionNumber returns σ_max / σ_min.
func (d *SVD) ConditionNumber() float64 { return d.sv[0] / d.sv[len(d.sv)-1] }

// InverseConditionNumber returns σ_min / σ_max.
func (d *SVD) InverseConditionNumber() float64 { return d.sv[len(d.sv)-1] / d.sv[0] }

// Tolerance returns the cutoff below which singular values count as zero.
func (d *SVD) Tolerance() float64 { return d.tol }

// Rank returns the number of singular values above Tolerance().
func (d *SVD) Rank() int { return d.rank }

// Covariance returns (V·S⁻¹)·(V·S⁻¹)ᵀ restricted to the singular values that
// are >= minSingularValue, i.e. the n×n matrix (AᵀA)⁻¹ when nothing is cut.
//
// Errors:
//   - ErrNoSingularValue when even σ_max < minSingularValue.
func (d *SVD) Covariance(minSingularValue float64) (*Dense, error) {
	p := 0
	for p < len(d.sv) && d.sv[p] >= minSingularValue {
		p++
	}
	if p == 0 {
		return nil, matrixErrorf(opSVDCovariance,
			fmt.Errorf("largest singular value %g < %g: %w", d.sv[0], minSingularValue, ErrNoSingularValue))
	}
	n := d.n
	// w[i][j] = V[j][i] / σ_i for the kept i
	w := make([]float64, p*n)
	for i := 0; i < p; i++ {
		for j := 0; j < n; j++ {
			w[i*n+j] = d.v.data[j*n+i] / d.sv[i]
		}
	}
	out := newDenseRaw(n, n, make([]float64, n*n))
	var acc float64
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			acc = ZeroSum
			for k := 0; k < p; k++ {
				acc += w[k*n+i] * w[k*n+j]
			}
			out.data[i*n+j] = acc
		}
	}

	return out, nil
}

// Solver returns the pseudo-inverse Solver.
func (d *SVD) Solver() Solver { return solver{op: opSVD, k: d} }

func (d *SVD) shape() (int, int) { return d.m, d.n }
func (d *SVD) nonSingular() bool { return d.rank == len(d.sv) }

// solveSlice returns V·S⁺·Uᵀ·b.
func (d *SVD) solveSlice(b []float64) []float64 {
	m, n := d.m, d.n
	c := make([]float64, len(d.sv))
	var i, k int
	for k = range d.sv {
		if d.sv[k] <= d.tol {
			continue
		}
		for i = 0; i < m; i++ {
			c[k] += d.u.data[i*m+k] * b[i]
		}
		c[k] /= d.sv[k]
	}
	x := make([]float64, n)
	for i = 0; i < n; i++ {
		for k = range c {
			x[i] += d.v.data[i*n+k] * c[k]
		}
	}

	return x
}
