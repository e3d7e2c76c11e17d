// SPDX-License-Identifier: MIT

package iterative

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/katalvlaran/linsolve/matrix"
)

// LinearOperator is a linear map known only through its action on vectors.
// *matrix.Dense implements it.
type LinearOperator interface {
	Rows() int
	Cols() int
	// Operate returns A·x. It must not modify x.
	Operate(x matrix.Vector) (matrix.Vector, error)
}

var (
	_ LinearOperator = (*matrix.Dense)(nil)
	_ LinearOperator = (*Hilbert)(nil)
	_ LinearOperator = (*InverseHilbert)(nil)
	_ LinearOperator = (*Diagonal)(nil)
	_ LinearOperator = (*Jacobi)(nil)
)

const (
	opOperate = "Operate"
	opJacobi  = "NewJacobi"
)

// checkOperand validates x for an n×n operator and returns its entries.
func checkOperand(name string, n int, x matrix.Vector) ([]float64, error) {
	if x == nil {
		return nil, fmt.Errorf("%s.%s: %w", name, opOperate, ErrNilArgument)
	}
	if x.Len() != n {
		return nil, fmt.Errorf("%s.%s: vector length %d, want %d: %w", name, opOperate, x.Len(), n, ErrDimensionMismatch)
	}

	return matrix.ToSlice(x)
}

// Hilbert is the n×n Hilbert matrix H_ij = 1/(i+j+1), applied without
// being stored. It is symmetric positive definite and very ill-conditioned.
type Hilbert struct {
	n int
}

// NewHilbert returns the n×n Hilbert operator.
func NewHilbert(n int) *Hilbert { return &Hilbert{n: n} }

// Rows returns n.
func (h *Hilbert) Rows() int { return h.n }

// Cols returns n.
func (h *Hilbert) Cols() int { return h.n }

// At returns entry (i, j).
func (h *Hilbert) At(i, j int) float64 { return 1 / float64(i+j+1) }

// Dense materializes the operator, e.g. to build a Jacobi preconditioner.
func (h *Hilbert) Dense() (*matrix.Dense, error) {
	m, err := matrix.NewDense(h.n, h.n)
	if err != nil {
		return nil, iterErrorf("Hilbert.Dense", err)
	}
	for i := 0; i < h.n; i++ {
		for j := 0; j < h.n; j++ {
			if err = m.Set(i, j, h.At(i, j)); err != nil {
				return nil, iterErrorf("Hilbert.Dense", err)
			}
		}
	}

	return m, nil
}

// Operate returns H·x.
func (h *Hilbert) Operate(x matrix.Vector) (matrix.Vector, error) {
	xs, err := checkOperand("Hilbert", h.n, x)
	if err != nil {
		return nil, err
	}
	y := make([]float64, h.n)
	var i, j int
	for i = 0; i < h.n; i++ {
		for j = 0; j < h.n; j++ {
			y[i] += xs[j] / float64(i+j+1)
		}
	}

	return matrix.NewVecDenseFrom(y, false), nil
}

// InverseHilbert is the exact inverse of the n×n Hilbert matrix, whose
// entries are integers:
//
//	(-1)^(i+j) (i+j+1) C(n+i, n-j-1) C(n+j, n-i-1) C(i+j, i)²
//
// Entries grow quickly; beyond n≈13 they no longer fit a float64 exactly.
type InverseHilbert struct {
	n int
}

// NewInverseHilbert returns the inverse of the n×n Hilbert operator.
func NewInverseHilbert(n int) *InverseHilbert { return &InverseHilbert{n: n} }

// Rows returns n.
func (h *InverseHilbert) Rows() int { return h.n }

// Cols returns n.
func (h *InverseHilbert) Cols() int { return h.n }

// At returns entry (i, j).
func (h *InverseHilbert) At(i, j int) float64 {
	n := h.n
	v := float64(i+j+1) *
		float64(combin.Binomial(n+i, n-j-1)) *
		float64(combin.Binomial(n+j, n-i-1))
	c := float64(combin.Binomial(i+j, i))
	v *= c * c
	if (i+j)%2 == 1 {
		return -v
	}

	return v
}

// Operate returns H⁻¹·x.
func (h *InverseHilbert) Operate(x matrix.Vector) (matrix.Vector, error) {
	xs, err := checkOperand("InverseHilbert", h.n, x)
	if err != nil {
		return nil, err
	}
	y := make([]float64, h.n)
	var i, j int
	for i = 0; i < h.n; i++ {
		for j = 0; j < h.n; j++ {
			y[i] += h.At(i, j) * xs[j]
		}
	}

	return matrix.NewVecDenseFrom(y, false), nil
}

// Diagonal is the operator diag(d).
type Diagonal struct {
	d []float64
}

// NewDiagonal returns diag(d). d is copied.
func NewDiagonal(d []float64) *Diagonal {
	return &Diagonal{d: append([]float64(nil), d...)}
}

// Rows returns len(d).
func (g *Diagonal) Rows() int { return len(g.d) }

// Cols returns len(d).
func (g *Diagonal) Cols() int { return len(g.d) }

// Operate returns the entrywise product d∘x.
func (g *Diagonal) Operate(x matrix.Vector) (matrix.Vector, error) {
	xs, err := checkOperand("Diagonal", len(g.d), x)
	if err != nil {
		return nil, err
	}
	for i := range xs {
		xs[i] *= g.d[i]
	}

	return matrix.NewVecDenseFrom(xs, false), nil
}

// Jacobi is the diagonal preconditioner M = diag(1/a_ii).
type Jacobi struct {
	Diagonal
}

// NewJacobi builds the Jacobi preconditioner of the square matrix a.
//
// Errors:
//   - ErrNilArgument, ErrNonSquareOperator.
//   - ErrSingularOperator for a zero diagonal entry.
func NewJacobi(a matrix.Matrix) (*Jacobi, error) {
	if a == nil {
		return nil, iterErrorf(opJacobi, ErrNilArgument)
	}
	if a.Rows() != a.Cols() {
		return nil, iterErrorf(opJacobi, ErrNonSquareOperator)
	}
	d := make([]float64, a.Rows())
	for i := range d {
		aii, err := a.At(i, i)
		if err != nil {
			return nil, iterErrorf(opJacobi, err)
		}
		if aii == 0 {
			return nil, fmt.Errorf("%s: a[%d,%d] is zero: %w", opJacobi, i, i, ErrSingularOperator)
		}
		d[i] = 1 / aii
	}

	return &Jacobi{Diagonal{d: d}}, nil
}

// Sqrt returns diag(1/sqrt(a_ii)). With M = Sqrt()², ‖Sqrt()·r‖ is the norm
// SymmLQ reports for a Jacobi-preconditioned solve.
func (j *Jacobi) Sqrt() *Jacobi {
	d := make([]float64, len(j.d))
	for i, v := range j.d {
		d[i] = math.Sqrt(v)
	}

	return &Jacobi{Diagonal{d: d}}
}
