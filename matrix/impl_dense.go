// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Row-major flat buffer with the index formula i*cols + j.
//   - At/Set return errors instead of panicking.
//   - No-copy windows (MatrixView) and copy-based extraction (Induced).
//   - Optional rejection of NaN/Inf, carried per instance.
//
// Complexity quicksheet:
//   - NewDense: O(r*c); At/Set: O(1); Clone: O(r*c); View: O(1); Induced: O(r'*c').

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt      = "At"
	ctxSet     = "Set"
	ctxApply   = "Apply"
	ctxView    = "View"
	ctxInduce  = "Induced"
	ctxFrom    = "NewDenseFrom"
	ctxOperate = "Operate"
)

// ---------- Formatting literals  ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps err as "Dense.<method>(row,col): err", keeping the
// sentinel reachable through errors.Is.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c (offset = i*c + j).
//   - validateNaNInf rejects NaN/Inf in Set when true.
//
// The zero value is an uninitialized 0×0 matrix; SetSubMatrix at the origin
// gives it a shape.
type Dense struct {
	r, c           int
	data           []float64
	validateNaNInf bool
}

var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix.
//
// Errors:
//   - ErrInvalidDimensions when rows<=0 or cols<=0.
//
// Only WithValidateNaNInf / WithNoValidateNaNInf affect the result.
func NewDense(rows, cols int, opts ...Option) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	o := gatherOptions(opts...)

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: o.validateNaNInf,
	}, nil
}

// NewDenseFrom deep-copies a literal row slice into a new Dense.
// MAIN DESCRIPTION:
//   - Build a matrix from [][]float64, the usual way to write fixtures.
//
// Implementation:
//   - Stage 1: reject empty input (ErrInvalidDimensions).
//   - Stage 2: reject ragged rows (ErrBadShape) before allocating.
//   - Stage 3: copy row by row; enforce the numeric policy.
//
// Errors:
//   - ErrInvalidDimensions, ErrBadShape, ErrNaNInf (policy on).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(rows [][]float64, opts ...Option) (*Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%s: %w", ctxFrom, ErrInvalidDimensions)
	}
	c := len(rows[0])
	var i, j int
	for i = 1; i < len(rows); i++ {
		if len(rows[i]) != c {
			return nil, fmt.Errorf("%s: row %d has %d entries, want %d: %w", ctxFrom, i, len(rows[i]), c, ErrBadShape)
		}
	}
	m, err := NewDense(len(rows), c, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ctxFrom, err)
	}
	for i = range rows {
		if m.validateNaNInf {
			for j = 0; j < c; j++ {
				if math.IsNaN(rows[i][j]) || math.IsInf(rows[i][j], 0) {
					return nil, denseErrorf(ctxFrom, i, j, ErrNaNInf)
				}
			}
		}
		copy(m.data[i*c:(i+1)*c], rows[i])
	}

	return m, nil
}

// newDenseRaw wraps data without copying. Internal: data must have r*c entries.
func newDenseRaw(r, c int, data []float64) *Dense {
	return &Dense{r: r, c: c, data: data, validateNaNInf: DefaultValidateNaNInf}
}

// Rows returns the row count.
func (m *Dense) Rows() int { return m.r }

// Cols returns the column count.
func (m *Dense) Cols() int { return m.c }

// Shape packs Rows() and Cols() into a single call.
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// IsSquare reports Rows() == Cols().
func (m *Dense) IsSquare() bool { return m.r == m.c }

// indexOf bounds-checks (row,col) and returns the flat offset.
// The bare ErrOutOfRange is wrapped by the public caller.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r {
		return 0, ErrOutOfRange
	}
	if col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the value at (row, col) or ErrOutOfRange.
func (m *Dense) At(row, col int) (float64, error) {
	off, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[off], nil
}

// Set stores v at (row, col).
//
// Errors:
//   - ErrOutOfRange for bad indices.
//   - ErrNaNInf when v is not finite and the policy is on.
func (m *Dense) Set(row, col int, v float64) error {
	off, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && (math.IsNaN(v) || math.IsInf(v, 0)) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[off] = v

	return nil
}

// Clone returns a deep copy (new buffer, same numeric policy).
// The dynamic type is *Dense.
func (m *Dense) Clone() Matrix {
	return m.copyDense()
}

func (m *Dense) copyDense() *Dense {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// RawData returns a copy of the row-major buffer.
func (m *Dense) RawData() []float64 {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return cp
}

// Data returns the matrix as a fresh [][]float64.
func (m *Dense) Data() [][]float64 {
	out := make([][]float64, m.r)
	for i := 0; i < m.r; i++ {
		out[i] = make([]float64, m.c)
		copy(out[i], m.data[i*m.c:(i+1)*m.c])
	}

	return out
}

// String renders one bracketed row per line, values in %g.
// Intended for logs and test failures, not hot paths.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			fmt.Fprintf(&b, "%g", m.data[base+j])
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// Operate returns m·x as a new *VecDense, so *Dense can serve as a linear
// operator.
//
// Errors:
//   - ErrNilMatrix when x is nil.
//   - ErrDimensionMismatch when x.Len() != Cols().
//
// Complexity:
//   - Time O(r*c), Space O(r).
func (m *Dense) Operate(x Vector) (Vector, error) {
	y, err := m.operate(x)
	if err != nil {
		return nil, err
	}

	return y, nil
}

func (m *Dense) operate(x Vector) (*VecDense, error) {
	if x == nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxOperate, ErrNilMatrix)
	}
	if x.Len() != m.c {
		return nil, fmt.Errorf("Dense.%s: vector length %d, want %d: %w", ctxOperate, x.Len(), m.c, ErrDimensionMismatch)
	}
	xs, err := ToSlice(x)
	if err != nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxOperate, err)
	}
	out := make([]float64, m.r)
	var i, j, base int
	var acc float64
	for i = 0; i < m.r; i++ {
		acc = ZeroSum
		base = i * m.c
		for j = 0; j < m.c; j++ {
			acc += m.data[base+j] * xs[j]
		}
		out[i] = acc
	}

	return &VecDense{data: out}, nil
}

// View creates a no-copy window [r0:r0+rows, c0:c0+cols) over the same storage.
// Writes through the view reach m and obey its numeric policy.
//
// Errors:
//   - ErrBadShape when the window does not fit.
//
// Notes:
//   - MatrixView does not implement Matrix, so kernels never copy it by accident.
func (m *Dense) View(r0, c0, rows, cols int) (*MatrixView, error) {
	if r0 < 0 || c0 < 0 || rows < 0 || cols < 0 || r0+rows > m.r || c0+cols > m.c {
		return nil, fmt.Errorf("Dense.%s(%d,%d,%d,%d): %w", ctxView, r0, c0, rows, cols, ErrBadShape)
	}

	return &MatrixView{base: m, r0: r0, c0: c0, r: rows, c: cols}, nil
}

// Induced copies the rows and columns named by the index lists (duplicates
// allowed) into a new Dense with the same numeric policy.
//
// Errors:
//   - ErrEmptySelection when either list is empty.
//   - ErrOutOfRange for an index outside the matrix.
//
// Complexity:
//   - Time O(rp*cp), Space O(rp*cp).
func (m *Dense) Induced(rowsIdx, colsIdx []int) (*Dense, error) {
	rp, cp := len(rowsIdx), len(colsIdx)
	if rp == 0 || cp == 0 {
		return nil, fmt.Errorf("Dense.%s: %w", ctxInduce, ErrEmptySelection)
	}
	res, err := NewDense(rp, cp)
	if err != nil {
		return nil, fmt.Errorf("Dense.%s: %w", ctxInduce, err)
	}
	res.validateNaNInf = m.validateNaNInf

	var i, j, ri, cj int
	for j = 0; j < cp; j++ {
		if cj = colsIdx[j]; cj < 0 || cj >= m.c {
			return nil, fmt.Errorf("Dense.%s: col index %d: %w", ctxInduce, cj, ErrOutOfRange)
		}
	}
	for i = 0; i < rp; i++ {
		ri = rowsIdx[i]
		if ri < 0 || ri >= m.r {
			return nil, fmt.Errorf("Dense.%s: row index %d: %w", ctxInduce, ri, ErrOutOfRange)
		}
		for j = 0; j < cp; j++ {
			res.data[i*cp+j] = m.data[ri*m.c+colsIdx[j]]
		}
	}

	return res, nil
}

// MatrixView is a non-owning window into a Dense (shared storage).
type MatrixView struct {
	base   *Dense
	r0, c0 int // top-left offset in base
	r, c   int // window size
}

// Rows returns the number of rows in the view.
func (v *MatrixView) Rows() int { return v.r }

// Cols returns the number of columns in the view.
func (v *MatrixView) Cols() int { return v.c }

// At reads element (i,j) of the view.
func (v *MatrixView) At(i, j int) (float64, error) {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return 0, fmt.Errorf("MatrixView.At(%d,%d): %w", i, j, ErrOutOfRange)
	}

	return v.base.data[(v.r0+i)*v.base.c+(v.c0+j)], nil
}

// Set writes element (i,j) through to the base matrix.
func (v *MatrixView) Set(i, j int, val float64) error {
	if i < 0 || i >= v.r || j < 0 || j >= v.c {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrOutOfRange)
	}
	if v.base.validateNaNInf && (math.IsNaN(val) || math.IsInf(val, 0)) {
		return fmt.Errorf("MatrixView.Set(%d,%d): %w", i, j, ErrNaNInf)
	}
	v.base.data[(v.r0+i)*v.base.c+(v.c0+j)] = val

	return nil
}

// FrobeniusNorm returns sqrt(Σ v_ij²) over the window.
func (v *MatrixView) FrobeniusNorm() float64 {
	var i, j, base int
	var sum float64
	for i = 0; i < v.r; i++ {
		base = (v.r0+i)*v.base.c + v.c0
		for j = 0; j < v.c; j++ {
			sum += v.base.data[base+j] * v.base.data[base+j]
		}
	}

	return math.Sqrt(sum)
}

// Do visits every element in row-major order and stops as soon as f
// returns false. Read-only.
func (m *Dense) Do(f func(i, j int, v float64) bool) {
	var i, j, base int
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			if !f(i, j, m.data[base+j]) {
				return
			}
		}
	}
}

// Apply replaces each element with f(i,j,v) in row-major order.
// MAIN DESCRIPTION:
//   - In-place map honoring the numeric policy.
//
// Behavior highlights:
//   - The first non-finite result (policy on) aborts with ErrNaNInf and
//     the matrix keeps its previous values.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func (m *Dense) Apply(f func(i, j int, v float64) float64) error {
	staged := make([]float64, len(m.data))
	var i, j, base int
	var nv float64
	for i = 0; i < m.r; i++ {
		base = i * m.c
		for j = 0; j < m.c; j++ {
			nv = f(i, j, m.data[base+j])
			if m.validateNaNInf && (math.IsNaN(nv) || math.IsInf(nv, 0)) {
				return denseErrorf(ctxApply, i, j, ErrNaNInf)
			}
			staged[base+j] = nv
		}
	}
	copy(m.data, staged)

	return nil
}
