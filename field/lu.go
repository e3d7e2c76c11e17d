// SPDX-License-Identifier: MIT

package field

// LU is the exact decomposition P·A = L·U of a square matrix over a Field.
// The pivot of each column is the first non-zero candidate, which keeps the
// factors exact for Rational and Prime elements.
type LU[E Element[E]] struct {
	field    Field[E]
	n        int
	lu       []E   // packed L (strictly lower, unit diagonal implied) and U
	pivot    []int // row permutation
	even     bool  // parity of the permutation
	singular bool
	l, u, p  *Matrix[E] // factors, nil when singular
}

// NewLU decomposes the square matrix m.
func NewLU[E Element[E]](m *Matrix[E]) (*LU[E], error) {
	if m == nil {
		return nil, fieldErrorf(opLU, ErrNilMatrix)
	}
	if m.r == 0 {
		return nil, fieldErrorf(opLU, ErrBadShape)
	}
	if !m.IsSquare() {
		return nil, fieldErrorf(opLU, ErrNonSquare)
	}
	n := m.r
	d := &LU[E]{
		field: m.field,
		n:     n,
		lu:    make([]E, len(m.data)),
		pivot: make([]int, n),
		even:  true,
	}
	copy(d.lu, m.data)
	for i := range d.pivot {
		d.pivot[i] = i
	}

	var row, col, i, nonZero int
	var sum E
	lu := d.lu
	for col = 0; col < n; col++ {
		// upper part of the column
		for row = 0; row < col; row++ {
			sum = lu[row*n+col]
			for i = 0; i < row; i++ {
				sum = sum.Sub(lu[row*n+i].Mul(lu[i*n+col]))
			}
			lu[row*n+col] = sum
		}
		// lower part, remembering the first usable pivot
		nonZero = -1
		for row = col; row < n; row++ {
			sum = lu[row*n+col]
			for i = 0; i < col; i++ {
				sum = sum.Sub(lu[row*n+i].Mul(lu[i*n+col]))
			}
			lu[row*n+col] = sum
			if nonZero < 0 && !sum.IsZero() {
				nonZero = row
			}
		}
		if nonZero < 0 {
			d.singular = true
			return d, nil
		}
		if nonZero != col {
			for i = 0; i < n; i++ {
				lu[nonZero*n+i], lu[col*n+i] = lu[col*n+i], lu[nonZero*n+i]
			}
			d.pivot[nonZero], d.pivot[col] = d.pivot[col], d.pivot[nonZero]
			d.even = !d.even
		}
		diag := lu[col*n+col]
		for row = col + 1; row < n; row++ {
			lu[row*n+col] = lu[row*n+col].Div(diag)
		}
	}
	d.buildFactors()

	return d, nil
}

func (d *LU[E]) buildFactors() {
	n := d.n
	zero, one := d.field.Zero(), d.field.One()
	l, u, p := make([]E, n*n), make([]E, n*n), make([]E, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			l[i*n+j], u[i*n+j], p[i*n+j] = zero, zero, zero
			switch {
			case j < i:
				l[i*n+j] = d.lu[i*n+j]
			case j == i:
				l[i*n+j] = one
				u[i*n+j] = d.lu[i*n+j]
			default:
				u[i*n+j] = d.lu[i*n+j]
			}
		}
		p[i*n+d.pivot[i]] = one
	}
	d.l = &Matrix[E]{field: d.field, r: n, c: n, data: l}
	d.u = &Matrix[E]{field: d.field, r: n, c: n, data: u}
	d.p = &Matrix[E]{field: d.field, r: n, c: n, data: p}
}

// L returns the unit lower-triangular factor, or nil when singular.
func (d *LU[E]) L() *Matrix[E] { return d.l }

// U returns the upper-triangular factor, or nil when singular.
func (d *LU[E]) U() *Matrix[E] { return d.u }

// P returns the permutation matrix, or nil when singular.
func (d *LU[E]) P() *Matrix[E] { return d.p }

// Pivot returns a copy of the row permutation.
func (d *LU[E]) Pivot() []int {
	out := make([]int, len(d.pivot))
	copy(out, d.pivot)

	return out
}

// IsNonSingular reports whether a unique solution exists.
func (d *LU[E]) IsNonSingular() bool { return !d.singular }

// Determinant returns det(A); zero when singular.
func (d *LU[E]) Determinant() E {
	if d.singular {
		return d.field.Zero()
	}
	det := d.field.One()
	if !d.even {
		det = det.Neg()
	}
	for i := 0; i < d.n; i++ {
		det = det.Mul(d.lu[i*d.n+i])
	}

	return det
}

// Solve returns x with A·x = b.
func (d *LU[E]) Solve(b []E) ([]E, error) {
	if len(b) != d.n {
		return nil, fieldErrorf(opLUSolve, ErrDimensionMismatch)
	}
	if d.singular {
		return nil, fieldErrorf(opLUSolve, ErrSingular)
	}
	n := d.n
	x := make([]E, n)
	for row := 0; row < n; row++ {
		x[row] = b[d.pivot[row]]
	}
	// L·y = Pb
	for col := 0; col < n; col++ {
		for i := col + 1; i < n; i++ {
			x[i] = x[i].Sub(x[col].Mul(d.lu[i*n+col]))
		}
	}
	// U·x = y
	for col := n - 1; col >= 0; col-- {
		x[col] = x[col].Div(d.lu[col*n+col])
		for i := 0; i < col; i++ {
			x[i] = x[i].Sub(x[col].Mul(d.lu[i*n+col]))
		}
	}

	return x, nil
}

// SolveMatrix solves A·X = B column by column.
func (d *LU[E]) SolveMatrix(b *Matrix[E]) (*Matrix[E], error) {
	if b == nil {
		return nil, fieldErrorf(opLUSolve, ErrNilMatrix)
	}
	if b.r != d.n {
		return nil, fieldErrorf(opLUSolve, ErrDimensionMismatch)
	}
	if d.singular {
		return nil, fieldErrorf(opLUSolve, ErrSingular)
	}
	out, err := NewMatrix(d.field, b.r, b.c)
	if err != nil {
		return nil, fieldErrorf(opLUSolve, err)
	}
	col := make([]E, b.r)
	for j := 0; j < b.c; j++ {
		for i := 0; i < b.r; i++ {
			col[i] = b.data[i*b.c+j]
		}
		x, err := d.Solve(col)
		if err != nil {
			return nil, err
		}
		for i := 0; i < b.r; i++ {
			out.data[i*b.c+j] = x[i]
		}
	}

	return out, nil
}

// Inverse returns A⁻¹.
func (d *LU[E]) Inverse() (*Matrix[E], error) {
	id, err := Identity(d.field, d.n)
	if err != nil {
		return nil, fieldErrorf(opLUInverse, err)
	}
	inv, err := d.SolveMatrix(id)
	if err != nil {
		return nil, fieldErrorf(opLUInverse, err)
	}

	return inv, nil
}
