// SPDX-License-Identifier: MIT

// Package matrix - Solver facade shared by all decompositions.
//
// Every decomposition reduces solving to one routine on a plain slice; the
// facade adds the common contract around it:
//   - dimension check first (ErrDimensionMismatch),
//   - then singularity (ErrSingular),
//   - right-hand sides are read only through Vector / Matrix,
//   - Inverse() == SolveMatrix(I).

package matrix

import "fmt"

// Solver solves linear systems with a fixed, already decomposed matrix A.
// Solvers are stateless; one Solver may be used for any number of systems.
type Solver interface {
	// Solve returns x with A·x = b (least squares for over-determined QR/SVD).
	Solve(b Vector) (*VecDense, error)

	// SolveMatrix returns X with A·X = B.
	SolveMatrix(b Matrix) (*Dense, error)

	// Inverse returns A⁻¹ (pseudo-inverse for rectangular QR/SVD).
	Inverse() (*Dense, error)

	// IsNonSingular reports whether A is invertible for this decomposition.
	IsNonSingular() bool
}

// kernel is what a decomposition provides to the facade.
type kernel interface {
	// shape of A: b must have rows entries, x has cols entries.
	shape() (rows, cols int)
	nonSingular() bool
	// solveSlice must not retain or modify b.
	solveSlice(b []float64) []float64
}

// solver adapts a kernel to Solver.
type solver struct {
	op string
	k  kernel
}

var _ Solver = solver{}

func (s solver) IsNonSingular() bool { return s.k.nonSingular() }

func (s solver) Solve(b Vector) (*VecDense, error) {
	if b == nil {
		return nil, fmt.Errorf("%s.Solve: %w", s.op, ErrNilMatrix)
	}
	rows, _ := s.k.shape()
	if b.Len() != rows {
		return nil, fmt.Errorf("%s.Solve: vector length %d, want %d: %w", s.op, b.Len(), rows, ErrDimensionMismatch)
	}
	if !s.k.nonSingular() {
		return nil, fmt.Errorf("%s.Solve: %w", s.op, ErrSingular)
	}
	bs, err := ToSlice(b)
	if err != nil {
		return nil, fmt.Errorf("%s.Solve: %w", s.op, err)
	}

	return &VecDense{data: s.k.solveSlice(bs)}, nil
}

func (s solver) SolveMatrix(b Matrix) (*Dense, error) {
	if b == nil {
		return nil, fmt.Errorf("%s.SolveMatrix: %w", s.op, ErrNilMatrix)
	}
	rows, cols := s.k.shape()
	if b.Rows() != rows {
		return nil, fmt.Errorf("%s.SolveMatrix: matrix has %d rows, want %d: %w", s.op, b.Rows(), rows, ErrDimensionMismatch)
	}
	if !s.k.nonSingular() {
		return nil, fmt.Errorf("%s.SolveMatrix: %w", s.op, ErrSingular)
	}
	bd, err := denseCopy(b)
	if err != nil {
		return nil, fmt.Errorf("%s.SolveMatrix: %w", s.op, err)
	}
	nrhs := bd.c
	out := newDenseRaw(cols, nrhs, make([]float64, cols*nrhs))
	col := make([]float64, rows)
	var i, j int
	for j = 0; j < nrhs; j++ {
		for i = 0; i < rows; i++ {
			col[i] = bd.data[i*nrhs+j]
		}
		x := s.k.solveSlice(col)
		for i = 0; i < cols; i++ {
			out.data[i*nrhs+j] = x[i]
		}
	}

	return out, nil
}

func (s solver) Inverse() (*Dense, error) {
	rows, _ := s.k.shape()
	id, err := NewIdentity(rows)
	if err != nil {
		return nil, fmt.Errorf("%s.Inverse: %w", s.op, err)
	}
	inv, err := s.SolveMatrix(id)
	if err != nil {
		return nil, fmt.Errorf("%s.Inverse: %w", s.op, err)
	}

	return inv, nil
}

// denseCopy returns an independent *Dense with m's entries.
func denseCopy(m Matrix) (*Dense, error) {
	if m == nil {
		return nil, ErrNilMatrix
	}
	if d, ok := m.(*Dense); ok {
		if d.data == nil {
			return nil, ErrInvalidDimensions
		}
		return d.copyDense(), nil
	}
	rows, cols := m.Rows(), m.Cols()
	if rows <= 0 || cols <= 0 {
		return nil, ErrInvalidDimensions
	}
	out := newDenseRaw(rows, cols, make([]float64, rows*cols))
	var err error
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if out.data[i*cols+j], err = m.At(i, j); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}

// rows2D splits a copy of d into rows.
func rows2D(d *Dense) [][]float64 {
	return d.Data()
}

// fromRows builds a *Dense from a rectangular [][]float64 without validation.
func fromRows(a [][]float64) *Dense {
	r, c := len(a), len(a[0])
	data := make([]float64, 0, r*c)
	for _, row := range a {
		data = append(data, row...)
	}

	return newDenseRaw(r, c, data)
}
