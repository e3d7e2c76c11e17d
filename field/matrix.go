// SPDX-License-Identifier: MIT

package field

import (
	"fmt"
	"strings"
)

// Operation tags used in error wrapping.
const (
	opNew       = "NewMatrix"
	opNewFrom   = "NewMatrixFrom"
	opAt        = "At"
	opSet       = "Set"
	opAdd       = "Add"
	opSub       = "Sub"
	opMul       = "Mul"
	opOperate   = "Operate"
	opPower     = "Power"
	opIdentity  = "Identity"
	opLU        = "LU"
	opLUSolve   = "LU.Solve"
	opLUInverse = "LU.Inverse"
)

// Matrix is a dense row-major matrix over the field of E.
type Matrix[E Element[E]] struct {
	field Field[E]
	r, c  int
	data  []E // len == r*c, offset i*c + j
}

// NewMatrix returns a rows×cols matrix filled with f.Zero().
func NewMatrix[E Element[E]](f Field[E], rows, cols int) (*Matrix[E], error) {
	if f == nil {
		return nil, fieldErrorf(opNew, ErrNilField)
	}
	if rows <= 0 || cols <= 0 {
		return nil, fieldErrorf(opNew, ErrBadShape)
	}
	data := make([]E, rows*cols)
	zero := f.Zero()
	for k := range data {
		data[k] = zero
	}

	return &Matrix[E]{field: f, r: rows, c: cols, data: data}, nil
}

// NewMatrixFrom copies a non-empty, non-ragged grid of elements.
func NewMatrixFrom[E Element[E]](f Field[E], rows [][]E) (*Matrix[E], error) {
	if f == nil {
		return nil, fieldErrorf(opNewFrom, ErrNilField)
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fieldErrorf(opNewFrom, ErrBadShape)
	}
	r, c := len(rows), len(rows[0])
	data := make([]E, 0, r*c)
	for i, row := range rows {
		if len(row) != c {
			return nil, fieldErrorf(opNewFrom, fmt.Errorf("row %d has %d entries, want %d: %w", i, len(row), c, ErrBadShape))
		}
		data = append(data, row...)
	}

	return &Matrix[E]{field: f, r: r, c: c, data: data}, nil
}

// Identity returns the n×n identity over f.
func Identity[E Element[E]](f Field[E], n int) (*Matrix[E], error) {
	m, err := NewMatrix(f, n, n)
	if err != nil {
		return nil, fieldErrorf(opIdentity, err)
	}
	one := f.One()
	for i := 0; i < n; i++ {
		m.data[i*n+i] = one
	}

	return m, nil
}

// Field returns the scalar field of m.
func (m *Matrix[E]) Field() Field[E] { return m.field }

// Rows returns the row count.
func (m *Matrix[E]) Rows() int { return m.r }

// Cols returns the column count.
func (m *Matrix[E]) Cols() int { return m.c }

// IsSquare reports Rows() == Cols().
func (m *Matrix[E]) IsSquare() bool { return m.r == m.c }

// At returns the element at (i, j).
func (m *Matrix[E]) At(i, j int) (E, error) {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		var zero E
		return zero, fmt.Errorf("%s(%d,%d): %w", opAt, i, j, ErrOutOfRange)
	}

	return m.data[i*m.c+j], nil
}

// Set stores v at (i, j).
func (m *Matrix[E]) Set(i, j int, v E) error {
	if i < 0 || i >= m.r || j < 0 || j >= m.c {
		return fmt.Errorf("%s(%d,%d): %w", opSet, i, j, ErrOutOfRange)
	}
	m.data[i*m.c+j] = v

	return nil
}

// Clone returns an independent copy. Elements are immutable values, so a
// shallow copy of the backing slice is enough.
func (m *Matrix[E]) Clone() *Matrix[E] {
	data := make([]E, len(m.data))
	copy(data, m.data)

	return &Matrix[E]{field: m.field, r: m.r, c: m.c, data: data}
}

// Add returns m + b.
func (m *Matrix[E]) Add(b *Matrix[E]) (*Matrix[E], error) {
	if b == nil {
		return nil, fieldErrorf(opAdd, ErrNilMatrix)
	}
	if m.r != b.r || m.c != b.c {
		return nil, fieldErrorf(opAdd, ErrDimensionMismatch)
	}
	out := m.Clone()
	for k := range out.data {
		out.data[k] = out.data[k].Add(b.data[k])
	}

	return out, nil
}

// Sub returns m - b.
func (m *Matrix[E]) Sub(b *Matrix[E]) (*Matrix[E], error) {
	if b == nil {
		return nil, fieldErrorf(opSub, ErrNilMatrix)
	}
	if m.r != b.r || m.c != b.c {
		return nil, fieldErrorf(opSub, ErrDimensionMismatch)
	}
	out := m.Clone()
	for k := range out.data {
		out.data[k] = out.data[k].Sub(b.data[k])
	}

	return out, nil
}

// Scale returns alpha·m.
func (m *Matrix[E]) Scale(alpha E) *Matrix[E] {
	out := m.Clone()
	for k := range out.data {
		out.data[k] = out.data[k].Mul(alpha)
	}

	return out
}

// Mul returns the product m·b.
func (m *Matrix[E]) Mul(b *Matrix[E]) (*Matrix[E], error) {
	if b == nil {
		return nil, fieldErrorf(opMul, ErrNilMatrix)
	}
	if m.c != b.r {
		return nil, fieldErrorf(opMul, ErrDimensionMismatch)
	}
	out, err := NewMatrix(m.field, m.r, b.c)
	if err != nil {
		return nil, fieldErrorf(opMul, err)
	}
	var i, j, k int
	var sum E
	for i = 0; i < m.r; i++ {
		for j = 0; j < b.c; j++ {
			sum = m.field.Zero()
			for k = 0; k < m.c; k++ {
				sum = sum.Add(m.data[i*m.c+k].Mul(b.data[k*b.c+j]))
			}
			out.data[i*b.c+j] = sum
		}
	}

	return out, nil
}

// Transpose returns mᵀ.
func (m *Matrix[E]) Transpose() *Matrix[E] {
	data := make([]E, len(m.data))
	for i := 0; i < m.r; i++ {
		for j := 0; j < m.c; j++ {
			data[j*m.r+i] = m.data[i*m.c+j]
		}
	}

	return &Matrix[E]{field: m.field, r: m.c, c: m.r, data: data}
}

// Operate returns m·x.
func (m *Matrix[E]) Operate(x []E) ([]E, error) {
	if len(x) != m.c {
		return nil, fieldErrorf(opOperate, ErrDimensionMismatch)
	}
	out := make([]E, m.r)
	for i := 0; i < m.r; i++ {
		sum := m.field.Zero()
		for k := 0; k < m.c; k++ {
			sum = sum.Add(m.data[i*m.c+k].Mul(x[k]))
		}
		out[i] = sum
	}

	return out, nil
}

// Power returns m^k for k >= 0 by binary exponentiation.
// Power(0) is the identity and Power(1) is a copy of m.
func (m *Matrix[E]) Power(k int) (*Matrix[E], error) {
	if k < 0 {
		return nil, fmt.Errorf("%s(%d): %w", opPower, k, ErrNegativePower)
	}
	if !m.IsSquare() {
		return nil, fieldErrorf(opPower, ErrNonSquare)
	}
	if k == 0 {
		return Identity(m.field, m.r)
	}

	var result *Matrix[E]
	base := m.Clone()
	var err error
	for {
		if k&1 == 1 {
			if result == nil {
				result = base.Clone()
			} else if result, err = result.Mul(base); err != nil {
				return nil, fieldErrorf(opPower, err)
			}
		}
		k >>= 1
		if k == 0 {
			break
		}
		if base, err = base.Mul(base); err != nil {
			return nil, fieldErrorf(opPower, err)
		}
	}

	return result, nil
}

// Equal reports same shape and element-wise equality.
func (m *Matrix[E]) Equal(b *Matrix[E]) bool {
	if m == nil || b == nil {
		return m == b
	}
	if m.r != b.r || m.c != b.c {
		return false
	}
	for k := range m.data {
		if !m.data[k].Equal(b.data[k]) {
			return false
		}
	}

	return true
}

// String renders one bracketed row per line.
func (m *Matrix[E]) String() string {
	var sb strings.Builder
	for i := 0; i < m.r; i++ {
		sb.WriteString("[")
		for j := 0; j < m.c; j++ {
			if j > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(m.data[i*m.c+j].String())
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}
