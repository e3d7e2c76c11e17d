// SPDX-License-Identifier: MIT

package field

import "fmt"

// Ranges are inclusive, as in the float64 matrix package: SubMatrix(0, 1, 2, 2)
// selects rows 0..1 of column 2. Index checks run before the inversion
// check.

const (
	opEmpty        = "NewEmptyMatrix"
	opRow          = "Row"
	opSetRow       = "SetRow"
	opColumn       = "Column"
	opSetColumn    = "SetColumn"
	opSubMatrix    = "SubMatrix"
	opSubIndices   = "SubMatrixIndices"
	opSetSubMatrix = "SetSubMatrix"
	opOperateVec   = "OperateVector"
)

// NewEmptyMatrix returns a matrix over f without entries. Its first
// SetSubMatrix at (0, 0) gives it the shape of the written block.
func NewEmptyMatrix[E Element[E]](f Field[E]) (*Matrix[E], error) {
	if f == nil {
		return nil, fieldErrorf(opEmpty, ErrNilField)
	}

	return &Matrix[E]{field: f}, nil
}

func (m *Matrix[E]) checkRange(r0, r1, c0, c1 int) error {
	if r0 < 0 || r0 >= m.r || r1 < 0 || r1 >= m.r {
		return fmt.Errorf("rows [%d,%d] of %d: %w", r0, r1, m.r, ErrOutOfRange)
	}
	if c0 < 0 || c0 >= m.c || c1 < 0 || c1 >= m.c {
		return fmt.Errorf("cols [%d,%d] of %d: %w", c0, c1, m.c, ErrOutOfRange)
	}
	if r1 < r0 {
		return fmt.Errorf("rows [%d,%d]: %w", r0, r1, ErrRangeInverted)
	}
	if c1 < c0 {
		return fmt.Errorf("cols [%d,%d]: %w", c0, c1, ErrRangeInverted)
	}

	return nil
}

// Row returns a copy of row i.
func (m *Matrix[E]) Row(i int) ([]E, error) {
	if i < 0 || i >= m.r {
		return nil, fmt.Errorf("%s(%d): %w", opRow, i, ErrOutOfRange)
	}

	return append([]E(nil), m.data[i*m.c:(i+1)*m.c]...), nil
}

// SetRow overwrites row i with data, which must have Cols() entries.
func (m *Matrix[E]) SetRow(i int, data []E) error {
	if i < 0 || i >= m.r {
		return fmt.Errorf("%s(%d): %w", opSetRow, i, ErrOutOfRange)
	}
	if len(data) != m.c {
		return fmt.Errorf("%s(%d): %w", opSetRow, i, ErrDimensionMismatch)
	}
	copy(m.data[i*m.c:(i+1)*m.c], data)

	return nil
}

// Column returns a copy of column j.
func (m *Matrix[E]) Column(j int) ([]E, error) {
	if j < 0 || j >= m.c {
		return nil, fmt.Errorf("%s(%d): %w", opColumn, j, ErrOutOfRange)
	}
	out := make([]E, m.r)
	for i := range out {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// SetColumn overwrites column j with data, which must have Rows() entries.
func (m *Matrix[E]) SetColumn(j int, data []E) error {
	if j < 0 || j >= m.c {
		return fmt.Errorf("%s(%d): %w", opSetColumn, j, ErrOutOfRange)
	}
	if len(data) != m.r {
		return fmt.Errorf("%s(%d): %w", opSetColumn, j, ErrDimensionMismatch)
	}
	for i, e := range data {
		m.data[i*m.c+j] = e
	}

	return nil
}

// RowVector returns row i as a new Vector.
func (m *Matrix[E]) RowVector(i int) (*Vector[E], error) {
	row, err := m.Row(i)
	if err != nil {
		return nil, err
	}

	return &Vector[E]{field: m.field, data: row}, nil
}

// ColumnVector returns column j as a new Vector.
func (m *Matrix[E]) ColumnVector(j int) (*Vector[E], error) {
	col, err := m.Column(j)
	if err != nil {
		return nil, err
	}

	return &Vector[E]{field: m.field, data: col}, nil
}

// SetRowVector overwrites row i with the entries of v.
func (m *Matrix[E]) SetRowVector(i int, v *Vector[E]) error {
	if v == nil {
		return fieldErrorf(opSetRow, ErrNilMatrix)
	}

	return m.SetRow(i, v.data)
}

// SetColumnVector overwrites column j with the entries of v.
func (m *Matrix[E]) SetColumnVector(j int, v *Vector[E]) error {
	if v == nil {
		return fieldErrorf(opSetColumn, ErrNilMatrix)
	}

	return m.SetColumn(j, v.data)
}

// OperateVector returns m·v as a Vector.
func (m *Matrix[E]) OperateVector(v *Vector[E]) (*Vector[E], error) {
	if v == nil {
		return nil, fieldErrorf(opOperateVec, ErrNilMatrix)
	}
	out, err := m.Operate(v.data)
	if err != nil {
		return nil, fieldErrorf(opOperateVec, err)
	}

	return &Vector[E]{field: m.field, data: out}, nil
}

// SubMatrix copies the inclusive region [r0..r1]×[c0..c1].
//
// Errors:
//   - ErrOutOfRange for any index outside the matrix.
//   - ErrRangeInverted when r1<r0 or c1<c0.
func (m *Matrix[E]) SubMatrix(r0, r1, c0, c1 int) (*Matrix[E], error) {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return nil, fieldErrorf(opSubMatrix, err)
	}
	rows, cols := r1-r0+1, c1-c0+1
	data := make([]E, 0, rows*cols)
	for i := r0; i <= r1; i++ {
		data = append(data, m.data[i*m.c+c0:i*m.c+c1+1]...)
	}

	return &Matrix[E]{field: m.field, r: rows, c: cols, data: data}, nil
}

// SubMatrixIndices copies the selected rows and columns, in the given
// order; indices may repeat.
//
// Errors:
//   - ErrEmptySelection, ErrOutOfRange.
func (m *Matrix[E]) SubMatrixIndices(rows, cols []int) (*Matrix[E], error) {
	if len(rows) == 0 || len(cols) == 0 {
		return nil, fieldErrorf(opSubIndices, ErrEmptySelection)
	}
	for _, i := range rows {
		if i < 0 || i >= m.r {
			return nil, fieldErrorf(opSubIndices, fmt.Errorf("row %d: %w", i, ErrOutOfRange))
		}
	}
	for _, j := range cols {
		if j < 0 || j >= m.c {
			return nil, fieldErrorf(opSubIndices, fmt.Errorf("col %d: %w", j, ErrOutOfRange))
		}
	}
	data := make([]E, 0, len(rows)*len(cols))
	for _, i := range rows {
		for _, j := range cols {
			data = append(data, m.data[i*m.c+j])
		}
	}

	return &Matrix[E]{field: m.field, r: len(rows), c: len(cols), data: data}, nil
}

// SetSubMatrix writes data with its top-left corner at (row, col).
//
// A matrix without entries (NewEmptyMatrix) takes the shape of data on a
// write at (0, 0); any other position fails with ErrIllegalState. Nothing
// is written on error.
//
// Errors:
//   - ErrNilField on the zero value Matrix{}.
//   - ErrBadShape (empty or ragged data), ErrIllegalState, ErrOutOfRange.
func (m *Matrix[E]) SetSubMatrix(data [][]E, row, col int) error {
	if m.field == nil {
		return fieldErrorf(opSetSubMatrix, ErrNilField)
	}
	if len(data) == 0 || len(data[0]) == 0 {
		return fmt.Errorf("%s(%d,%d): %w", opSetSubMatrix, row, col, ErrBadShape)
	}
	rows, cols := len(data), len(data[0])
	for i := 1; i < rows; i++ {
		if len(data[i]) != cols {
			return fmt.Errorf("%s(%d,%d): row %d: %w", opSetSubMatrix, row, col, i, ErrBadShape)
		}
	}

	fresh := m.data == nil
	r, c := m.r, m.c
	if fresh {
		if row != 0 || col != 0 {
			return fmt.Errorf("%s(%d,%d): %w", opSetSubMatrix, row, col, ErrIllegalState)
		}
		r, c = rows, cols
	}
	if row < 0 || col < 0 || row+rows > r || col+cols > c {
		return fmt.Errorf("%s(%d,%d): %w", opSetSubMatrix, row, col, ErrOutOfRange)
	}

	if fresh {
		m.r, m.c = rows, cols
		m.data = make([]E, rows*cols)
	}
	for i := 0; i < rows; i++ {
		copy(m.data[(row+i)*m.c+col:(row+i)*m.c+col+cols], data[i])
	}

	return nil
}
