// SPDX-License-Identifier: MIT

// Package matrix - rows, columns and rectangular regions of a Dense.
//
// Ranges are inclusive: SubMatrix(0, 1, 2, 2) selects rows 0..1 of column 2.
// Index checks run before the inversion check, so an out-of-range end is
// reported as ErrOutOfRange even when it also precedes the start.

package matrix

import (
	"fmt"
	"math"
)

const (
	ctxRow           = "Row"
	ctxSetRow        = "SetRow"
	ctxColumn        = "Column"
	ctxSetColumn     = "SetColumn"
	ctxSubMatrix     = "SubMatrix"
	ctxSubIndices    = "SubMatrixIndices"
	ctxCopySub       = "CopySubMatrix"
	ctxCopySubIdx    = "CopySubMatrixIndices"
	ctxSetSubMatrix  = "SetSubMatrix"
	ctxCheckRange    = "range"
	ctxCheckIndexSet = "index set"
)

// checkRange validates an inclusive rectangle [r0..r1]×[c0..c1].
func (m *Dense) checkRange(r0, r1, c0, c1 int) error {
	if r0 < 0 || r0 >= m.r || r1 < 0 || r1 >= m.r {
		return fmt.Errorf("%s rows [%d,%d] of %d: %w", ctxCheckRange, r0, r1, m.r, ErrOutOfRange)
	}
	if c0 < 0 || c0 >= m.c || c1 < 0 || c1 >= m.c {
		return fmt.Errorf("%s cols [%d,%d] of %d: %w", ctxCheckRange, c0, c1, m.c, ErrOutOfRange)
	}
	if r1 < r0 {
		return fmt.Errorf("%s rows [%d,%d]: %w", ctxCheckRange, r0, r1, ErrRangeInverted)
	}
	if c1 < c0 {
		return fmt.Errorf("%s cols [%d,%d]: %w", ctxCheckRange, c0, c1, ErrRangeInverted)
	}

	return nil
}

// checkIndexSets validates explicit row and column selections.
func (m *Dense) checkIndexSets(rows, cols []int) error {
	if len(rows) == 0 || len(cols) == 0 {
		return fmt.Errorf("%s: %w", ctxCheckIndexSet, ErrEmptySelection)
	}
	for _, i := range rows {
		if i < 0 || i >= m.r {
			return fmt.Errorf("%s: row %d: %w", ctxCheckIndexSet, i, ErrOutOfRange)
		}
	}
	for _, j := range cols {
		if j < 0 || j >= m.c {
			return fmt.Errorf("%s: col %d: %w", ctxCheckIndexSet, j, ErrOutOfRange)
		}
	}

	return nil
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// SetRow overwrites row i with data, which must have Cols() entries.
func (m *Dense) SetRow(i int, data []float64) error {
	if i < 0 || i >= m.r {
		return denseErrorf(ctxSetRow, i, 0, ErrOutOfRange)
	}
	if len(data) != m.c {
		return denseErrorf(ctxSetRow, i, 0, ErrDimensionMismatch)
	}
	if err := m.checkFinite(ctxSetRow, data); err != nil {
		return err
	}
	copy(m.data[i*m.c:(i+1)*m.c], data)

	return nil
}

// Column returns a copy of column j.
func (m *Dense) Column(j int) ([]float64, error) {
	if j < 0 || j >= m.c {
		return nil, denseErrorf(ctxColumn, 0, j, ErrOutOfRange)
	}
	out := make([]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = m.data[i*m.c+j]
	}

	return out, nil
}

// SetColumn overwrites column j with data, which must have Rows() entries.
func (m *Dense) SetColumn(j int, data []float64) error {
	if j < 0 || j >= m.c {
		return denseErrorf(ctxSetColumn, 0, j, ErrOutOfRange)
	}
	if len(data) != m.r {
		return denseErrorf(ctxSetColumn, 0, j, ErrDimensionMismatch)
	}
	if err := m.checkFinite(ctxSetColumn, data); err != nil {
		return err
	}
	for i := 0; i < m.r; i++ {
		m.data[i*m.c+j] = data[i]
	}

	return nil
}

// RowVector returns row i as a new VecDense.
func (m *Dense) RowVector(i int) (*VecDense, error) {
	row, err := m.Row(i)
	if err != nil {
		return nil, err
	}

	return &VecDense{data: row}, nil
}

// ColumnVector returns column j as a new VecDense.
func (m *Dense) ColumnVector(j int) (*VecDense, error) {
	col, err := m.Column(j)
	if err != nil {
		return nil, err
	}

	return &VecDense{data: col}, nil
}

// SetRowVector overwrites row i with the entries of v.
func (m *Dense) SetRowVector(i int, v Vector) error {
	data, err := ToSlice(v)
	if err != nil {
		return denseErrorf(ctxSetRow, i, 0, err)
	}

	return m.SetRow(i, data)
}

// SetColumnVector overwrites column j with the entries of v.
func (m *Dense) SetColumnVector(j int, v Vector) error {
	data, err := ToSlice(v)
	if err != nil {
		return denseErrorf(ctxSetColumn, 0, j, err)
	}

	return m.SetColumn(j, data)
}

// SubMatrix copies the inclusive region [r0..r1]×[c0..c1] into a new Dense.
//
// Errors:
//   - ErrOutOfRange for any index outside the matrix.
//   - ErrRangeInverted when r1<r0 or c1<c0.
func (m *Dense) SubMatrix(r0, r1, c0, c1 int) (*Dense, error) {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return nil, matrixErrorf(ctxSubMatrix, err)
	}
	view, err := m.View(r0, c0, r1-r0+1, c1-c0+1)
	if err != nil {
		return nil, matrixErrorf(ctxSubMatrix, err)
	}
	out, err := NewDense(view.r, view.c)
	if err != nil {
		return nil, matrixErrorf(ctxSubMatrix, err)
	}
	out.validateNaNInf = m.validateNaNInf
	for i := 0; i < view.r; i++ {
		src := (view.r0+i)*m.c + view.c0
		copy(out.data[i*out.c:(i+1)*out.c], m.data[src:src+view.c])
	}

	return out, nil
}

// SubMatrixIndices copies the selected rows and columns, in the given order,
// into a new Dense.
//
// Errors:
//   - ErrEmptySelection, ErrOutOfRange.
func (m *Dense) SubMatrixIndices(rows, cols []int) (*Dense, error) {
	if err := m.checkIndexSets(rows, cols); err != nil {
		return nil, matrixErrorf(ctxSubIndices, err)
	}
	out, err := m.Induced(rows, cols)
	if err != nil {
		return nil, matrixErrorf(ctxSubIndices, err)
	}

	return out, nil
}

// CopySubMatrix copies [r0..r1]×[c0..c1] into the top-left corner of dst.
// dst must have at least r1-r0+1 rows of at least c1-c0+1 entries.
//
// Errors:
//   - ErrOutOfRange, ErrRangeInverted, ErrDimensionMismatch (dst too small).
func (m *Dense) CopySubMatrix(r0, r1, c0, c1 int, dst [][]float64) error {
	if err := m.checkRange(r0, r1, c0, c1); err != nil {
		return matrixErrorf(ctxCopySub, err)
	}
	rows, cols := r1-r0+1, c1-c0+1
	if err := checkDestination(dst, rows, cols); err != nil {
		return matrixErrorf(ctxCopySub, err)
	}
	for i := 0; i < rows; i++ {
		src := (r0+i)*m.c + c0
		copy(dst[i][:cols], m.data[src:src+cols])
	}

	return nil
}

// CopySubMatrixIndices copies the selected rows and columns into dst.
//
// Errors:
//   - ErrEmptySelection, ErrOutOfRange, ErrDimensionMismatch (dst too small).
func (m *Dense) CopySubMatrixIndices(rows, cols []int, dst [][]float64) error {
	if err := m.checkIndexSets(rows, cols); err != nil {
		return matrixErrorf(ctxCopySubIdx, err)
	}
	if err := checkDestination(dst, len(rows), len(cols)); err != nil {
		return matrixErrorf(ctxCopySubIdx, err)
	}
	for i, ri := range rows {
		for j, cj := range cols {
			dst[i][j] = m.data[ri*m.c+cj]
		}
	}

	return nil
}

func checkDestination(dst [][]float64, rows, cols int) error {
	if len(dst) < rows {
		return fmt.Errorf("destination has %d rows, need %d: %w", len(dst), rows, ErrDimensionMismatch)
	}
	for i := 0; i < rows; i++ {
		if len(dst[i]) < cols {
			return fmt.Errorf("destination row %d has %d entries, need %d: %w", i, len(dst[i]), cols, ErrDimensionMismatch)
		}
	}

	return nil
}

// SetSubMatrix writes data with its top-left corner at (row, col).
// MAIN DESCRIPTION:
//   - Overwrite a rectangular block, or shape an uninitialized matrix.
//
// Behavior highlights:
//   - On the zero value Dense{} a write at (0,0) initializes the matrix to
//     the shape of data (with the default numeric policy); any other
//     position fails with ErrIllegalState.
//   - The block must fit entirely; nothing is written on error.
//
// Errors:
//   - ErrInvalidDimensions (empty data), ErrBadShape (ragged data),
//     ErrIllegalState, ErrOutOfRange, ErrNaNInf.
func (m *Dense) SetSubMatrix(data [][]float64, row, col int) error {
	if len(data) == 0 || len(data[0]) == 0 {
		return denseErrorf(ctxSetSubMatrix, row, col, ErrInvalidDimensions)
	}
	rows, cols := len(data), len(data[0])
	for i := 1; i < rows; i++ {
		if len(data[i]) != cols {
			return denseErrorf(ctxSetSubMatrix, row, col, ErrBadShape)
		}
	}

	fresh := m.data == nil
	validate, r, c := m.validateNaNInf, m.r, m.c
	if fresh {
		if row != 0 || col != 0 {
			return denseErrorf(ctxSetSubMatrix, row, col, ErrIllegalState)
		}
		validate, r, c = DefaultValidateNaNInf, rows, cols
	}
	if row < 0 || col < 0 || row+rows > r || col+cols > c {
		return denseErrorf(ctxSetSubMatrix, row, col, ErrOutOfRange)
	}
	if validate {
		for i := 0; i < rows; i++ {
			if err := finiteRow(ctxSetSubMatrix, data[i]); err != nil {
				return err
			}
		}
	}

	// all checks passed: only now may the receiver change
	if fresh {
		m.r, m.c = rows, cols
		m.data = make([]float64, rows*cols)
		m.validateNaNInf = DefaultValidateNaNInf
	}
	for i := 0; i < rows; i++ {
		copy(m.data[(row+i)*m.c+col:(row+i)*m.c+col+cols], data[i])
	}

	return nil
}

func (m *Dense) checkFinite(ctx string, data []float64) error {
	if !m.validateNaNInf {
		return nil
	}

	return finiteRow(ctx, data)
}

func finiteRow(ctx string, data []float64) error {
	for k, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("Dense.%s: entry %d: %w", ctx, k, ErrNaNInf)
		}
	}

	return nil
}
