// SPDX-License-Identifier: MIT

// Package matrix - QR decomposition by Householder reflections.

package matrix

import "math"

const opQR = "QR"

// householder holds the compact QR factorization shared by QR and RRQR.
// qrt is Aᵀ (one row per column of A) overwritten with the Householder
// vectors below/at the diagonal and R above it.
type householder struct {
	m, n      int
	qrt       [][]float64
	rDiag     []float64
	threshold float64
}

// factor runs the reflections; beforeStep (optional) may permute the
// columns minor..n-1 of qrt before each step.
func (h *householder) factor(beforeStep func(minor int)) {
	var (
		minor, row, col int
		xNormSqr, a     float64
		alpha           float64
	)
	steps := min(h.m, h.n)
	h.rDiag = make([]float64, steps)
	for minor = 0; minor < steps; minor++ {
		if beforeStep != nil {
			beforeStep(minor)
		}
		qrtMinor := h.qrt[minor]
		xNormSqr = NormZero
		for row = minor; row < h.m; row++ {
			xNormSqr += qrtMinor[row] * qrtMinor[row]
		}
		if qrtMinor[minor] > 0 {
			a = -math.Sqrt(xNormSqr)
		} else {
			a = math.Sqrt(xNormSqr)
		}
		h.rDiag[minor] = a
		if a == 0 {
			continue
		}
		// v = x - a·e_minor in place; |v|² = -2a·v_minor
		qrtMinor[minor] -= a
		for col = minor + 1; col < h.n; col++ {
			qrtCol := h.qrt[col]
			alpha = ZeroSum
			for row = minor; row < h.m; row++ {
				alpha -= qrtCol[row] * qrtMinor[row]
			}
			alpha /= a * qrtMinor[minor]
			for row = minor; row < h.m; row++ {
				qrtCol[row] -= alpha * qrtMinor[row]
			}
		}
	}
}

func (h *householder) r() *Dense {
	out := newDenseRaw(h.m, h.n, make([]float64, h.m*h.n))
	for row := len(h.rDiag) - 1; row >= 0; row-- {
		out.data[row*h.n+row] = h.rDiag[row]
		for col := row + 1; col < h.n; col++ {
			out.data[row*h.n+col] = h.qrt[col][row]
		}
	}

	return out
}

func (h *householder) qt() *Dense {
	m := h.m
	qt := newDenseRaw(m, m, make([]float64, m*m))
	var minor, row, col int
	var alpha float64
	for minor = m - 1; minor >= len(h.rDiag); minor-- {
		qt.data[minor*m+minor] = 1
	}
	for minor = len(h.rDiag) - 1; minor >= 0; minor-- {
		qrtMinor := h.qrt[minor]
		qt.data[minor*m+minor] = 1
		if qrtMinor[minor] == 0 {
			continue
		}
		for col = minor; col < m; col++ {
			alpha = ZeroSum
			for row = minor; row < m; row++ {
				alpha -= qt.data[col*m+row] * qrtMinor[row]
			}
			alpha /= h.rDiag[minor] * qrtMinor[minor]
			for row = minor; row < m; row++ {
				qt.data[col*m+row] -= alpha * qrtMinor[row]
			}
		}
	}

	return qt
}

// vectors returns the m×n matrix of Householder vectors, one per column,
// normalized by -rDiag.
func (h *householder) vectors() *Dense {
	out := newDenseRaw(h.m, h.n, make([]float64, h.m*h.n))
	for i := 0; i < h.m; i++ {
		for j := 0; j < min(i+1, h.n); j++ {
			out.data[i*h.n+j] = h.qrt[j][i] / -h.rDiag[j]
		}
	}

	return out
}

func (h *householder) shape() (int, int) { return h.m, h.n }

func (h *householder) nonSingular() bool {
	for _, d := range h.rDiag {
		if math.Abs(d) <= h.threshold {
			return false
		}
	}

	return true
}

// solveSlice applies Qᵀ to b then back-substitutes through R. Unknowns past
// min(m,n) stay zero.
func (h *householder) solveSlice(b []float64) []float64 {
	y := make([]float64, h.m)
	copy(y, b)
	x := make([]float64, h.n)
	var minor, row, i int
	var dot float64
	for minor = 0; minor < len(h.rDiag); minor++ {
		qrtMinor := h.qrt[minor]
		dot = ZeroSum
		for row = minor; row < h.m; row++ {
			dot += y[row] * qrtMinor[row]
		}
		dot /= h.rDiag[minor] * qrtMinor[minor]
		for row = minor; row < h.m; row++ {
			y[row] += dot * qrtMinor[row]
		}
	}
	for row = len(h.rDiag) - 1; row >= 0; row-- {
		y[row] /= h.rDiag[row]
		x[row] = y[row]
		for i = 0; i < row; i++ {
			y[i] -= y[row] * h.qrt[row][i]
		}
	}

	return x
}

func newHouseholder(m Matrix, op string, opts []Option) (*householder, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(op, err)
	}
	a, err := denseCopy(m)
	if err != nil {
		return nil, matrixErrorf(op, err)
	}
	o := gatherOptions(opts...)

	return &householder{
		m:         a.r,
		n:         a.c,
		qrt:       rows2D(transposeDense(a)),
		threshold: o.qrThreshold,
	}, nil
}

// QR is the decomposition A = Q·R of an m×n matrix, Q orthogonal (m×m) and
// R upper triangular (m×n). Factors are computed once and cached.
type QR struct {
	h *householder

	q, qt, r, hv *Dense
}

// NewQR decomposes m with Householder reflections.
//
// Inputs:
//   - opts: WithQRThreshold (default 0): |R_kk| at or below it makes the
//     solver singular.
//
// Errors:
//   - ErrNilMatrix, ErrInvalidDimensions.
//
// Complexity:
//   - Time O(m·n·min(m,n) + m³) including Q, Space O(m² + m·n).
func NewQR(m Matrix, opts ...Option) (*QR, error) {
	h, err := newHouseholder(m, opQR, opts)
	if err != nil {
		return nil, err
	}
	h.factor(nil)

	return newQRFrom(h), nil
}

func newQRFrom(h *householder) *QR {
	d := &QR{h: h}
	d.r = h.r()
	d.qt = h.qt()
	d.q = transposeDense(d.qt)
	d.hv = h.vectors()
	if !h.nonSingular() {
		log.Debugf("QR: %dx%d matrix is singular at threshold %g", h.m, h.n, h.threshold)
	}

	return d
}

// Q returns the orthogonal factor (m×m).
func (d *QR) Q() *Dense { return d.q }

// QT returns Qᵀ.
func (d *QR) QT() *Dense { return d.qt }

// R returns the upper-triangular factor (m×n).
func (d *QR) R() *Dense { return d.r }

// H returns the Householder vectors, one column per reflection.
func (d *QR) H() *Dense { return d.hv }

// Solver returns the least-squares Solver bound to this decomposition.
func (d *QR) Solver() Solver { return solver{op: opQR, k: d.h} }
