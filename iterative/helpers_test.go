// SPDX-License-Identifier: MIT

package iterative_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/iterative"
	"github.com/katalvlaran/linsolve/matrix"
)

// unit returns e_j of length n.
func unit(t *testing.T, n, j int) *matrix.VecDense {
	t.Helper()
	v, err := matrix.NewVecDense(n)
	require.NoError(t, err)
	require.NoError(t, v.SetVec(j, 1))

	return v
}

// entries reads any Vector into a slice.
func entries(t *testing.T, v matrix.Vector) []float64 {
	t.Helper()
	s, err := matrix.ToSlice(v)
	require.NoError(t, err)

	return s
}

// mustDense builds a *matrix.Dense from rows.
func mustDense(t *testing.T, rows [][]float64) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDenseFrom(rows)
	require.NoError(t, err)

	return m
}

// requireRelClose checks |got-want| <= tol·|want| entrywise.
func requireRelClose(t *testing.T, want, got []float64, tol float64, msg string) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		require.InDelta(t, want[i], got[i], tol*abs(want[i]), "%s: entry %d", msg, i)
	}
}

func abs(x float64) float64 {
	if x < 0 {
		return -x
	}

	return x
}

// userVec is a caller-defined Vector.
type userVec struct{ data []float64 }

func (v *userVec) Len() int { return len(v.data) }

func (v *userVec) AtVec(i int) (float64, error) {
	if i < 0 || i >= len(v.data) {
		return 0, matrix.ErrOutOfRange
	}

	return v.data[i], nil
}

func (v *userVec) SetVec(i int, x float64) error {
	if i < 0 || i >= len(v.data) {
		return matrix.ErrOutOfRange
	}
	v.data[i] = x

	return nil
}

// recorder counts events and keeps a copy of each fired event's data.
type recorder struct {
	t         *testing.T
	counts    [4]int
	iters     []int
	residuals []float64
	last      []float64
}

func newRecorder(t *testing.T) *recorder { return &recorder{t: t} }

func (r *recorder) note(kind int, e iterative.Event) {
	r.counts[kind]++
	r.iters = append(r.iters, e.Iterations)
	r.residuals = append(r.residuals, e.NormOfResidual)
	r.last = entries(r.t, e.X)
	require.ErrorIs(r.t, e.X.SetVec(0, 1), matrix.ErrReadOnly)
	require.ErrorIs(r.t, e.B.SetVec(0, 1), matrix.ErrReadOnly)
	if e.ProvidesResidual() {
		require.ErrorIs(r.t, e.R.SetVec(0, 1), matrix.ErrReadOnly)
	}
}

func (r *recorder) InitializationPerformed(e iterative.Event) { r.note(0, e) }
func (r *recorder) IterationStarted(e iterative.Event)        { r.note(1, e) }
func (r *recorder) IterationPerformed(e iterative.Event)      { r.note(2, e) }
func (r *recorder) TerminationPerformed(e iterative.Event)    { r.note(3, e) }

// hilbertColumn returns column j of the exact inverse Hilbert matrix.
func hilbertColumn(n, j int) []float64 {
	inv := iterative.NewInverseHilbert(n)
	col := make([]float64, n)
	for i := range col {
		col[i] = inv.At(i, j)
	}

	return col
}
