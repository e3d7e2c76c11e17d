// SPDX-License-Identifier: MIT

package iterative_test

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/linsolve/iterative"
	"github.com/katalvlaran/linsolve/matrix"
)

func TestSymmLQHilbert(t *testing.T) {
	t.Parallel()

	const n = 5
	h := iterative.NewHilbert(n)
	s := iterative.NewSymmLQ(iterative.WithMaxIterations(100), iterative.WithDelta(1e-12), iterative.WithCheck())
	for j := 0; j < n; j++ {
		x, err := s.Solve(h, unit(t, n, j))
		require.NoError(t, err)
		requireRelClose(t, hilbertColumn(n, j), entries(t, x), 1e-6, fmt.Sprintf("column %d", j))
	}
}

func TestSymmLQJacobiHilbert(t *testing.T) {
	t.Parallel()

	const n = 8
	h := iterative.NewHilbert(n)
	hd, err := h.Dense()
	require.NoError(t, err)
	m, err := iterative.NewJacobi(hd)
	require.NoError(t, err)

	s := iterative.NewSymmLQ(iterative.WithMaxIterations(100), iterative.WithDelta(1e-12), iterative.WithCheck())
	for j := 0; j < n; j++ {
		x, err := s.SolvePreconditioned(h, m, unit(t, n, j), nil)
		require.NoError(t, err)
		requireRelClose(t, hilbertColumn(n, j), entries(t, x), 1e-4, fmt.Sprintf("column %d", j))
	}
}

// TestSymmLQShiftedDiagonal solves (A - shift·I)·x = b for
// A = diag((i+1)·1.1/n), optionally preconditioned by a perturbed
// |A - shift·I|⁻¹, with known solution x_i = n - i.
func TestSymmLQShiftedDiagonal(t *testing.T) {
	t.Parallel()

	type shifted struct {
		n      int
		precon bool
		shift  float64
		pertbn float64
	}
	cases := []shifted{
		{1, false, 0, 0},
		{2, false, 0, 0},
		{1, true, 0, 0},
		{2, true, 0, 0},
		{5, true, 0, 0},
		{5, true, 0.25, 0},
		{50, false, 0, 0},
		{50, false, 0.25, 0},
		{50, true, 0, 0.1},
		{50, true, 0.25, 0.1},
	}
	for _, goodb := range []bool{false, true} {
		for _, tc := range cases {
			tc, goodb := tc, goodb
			name := fmt.Sprintf("n=%d/precon=%v/shift=%g/pertbn=%g/goodb=%v", tc.n, tc.precon, tc.shift, tc.pertbn, goodb)
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				n := tc.n
				d := make([]float64, n)
				minv := make([]float64, n)
				xt := make([]float64, n)
				b := make([]float64, n)
				for i := 0; i < n; i++ {
					d[i] = float64(i+1) * 1.1 / float64(n)
					den := math.Abs(d[i] - tc.shift)
					if i%10 == 0 {
						den += math.Abs(tc.pertbn)
					}
					minv[i] = 1 / den
					xt[i] = float64(n - i)
					b[i] = d[i]*xt[i] - tc.shift*xt[i]
				}

				opts := []iterative.Option{
					iterative.WithMaxIterations(2 * n),
					iterative.WithDelta(1e-12),
					iterative.WithCheck(),
					iterative.WithShift(tc.shift),
				}
				if goodb {
					opts = append(opts, iterative.WithGoodB())
				}
				var m iterative.LinearOperator
				if tc.precon {
					m = iterative.NewDiagonal(minv)
				}

				s := iterative.NewSymmLQ(opts...)
				x, err := s.SolvePreconditioned(iterative.NewDiagonal(d), m, matrix.NewVecDenseFrom(b, false), nil)
				require.NoError(t, err)

				diff := make([]float64, n)
				floats.SubTo(diff, entries(t, x), xt)
				require.LessOrEqual(t, floats.Norm(diff, 2)/floats.Norm(xt, 2), 1e-9)
			})
		}
	}
}

func TestSymmLQIndefinite(t *testing.T) {
	t.Parallel()

	// eigenvalues 3 and -1
	a := mustDense(t, [][]float64{{1, 2}, {2, 1}})
	s := iterative.NewSymmLQ(iterative.WithCheck())
	x, err := s.Solve(a, matrix.NewVecDenseFrom([]float64{1, 5}, false))
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{3, -1}, entries(t, x), 1e-10)
}

func TestSymmLQBreakdowns(t *testing.T) {
	t.Parallel()

	ones := matrix.NewVecDenseFrom([]float64{1, 1, 1}, false)
	sym := mustDense(t, [][]float64{{1, 2, 3}, {2, 4, 5}, {3, 5, 6}})
	checked := iterative.NewSymmLQ(iterative.WithMaxIterations(100), iterative.WithCheck())

	_, err := checked.Solve(mustDense(t, [][]float64{{1, 2, 3}, {2, 4, 5}, {2.999, 5, 6}}), ones)
	require.ErrorIs(t, err, iterative.ErrNonSelfAdjointOperator)

	_, err = checked.SolvePreconditioned(sym, mustDense(t, [][]float64{{1, 0, -1}, {0, 1, 0}, {0, 0, 1}}), ones, nil)
	require.ErrorIs(t, err, iterative.ErrNonSelfAdjointPreconditioner)

	// a negative definite preconditioner fails with or without checks
	for _, s := range []*iterative.SymmLQ{checked, iterative.NewSymmLQ()} {
		_, err = s.SolvePreconditioned(iterative.NewDiagonal([]float64{1, 1, 1}), iterative.NewDiagonal([]float64{-1, -1, -1}), ones, nil)
		require.ErrorIs(t, err, iterative.ErrNonPositiveDefinitePreconditioner)
	}
}

func TestSymmLQConditionBreakdowns(t *testing.T) {
	t.Parallel()

	b := matrix.NewVecDenseFrom([]float64{1, 1}, false)
	cases := []struct {
		name  string
		a     iterative.LinearOperator
		shift float64
		want  error
	}{
		// gmax/gmin of the LQ factors reaches 0.1/ε
		{"nearly singular", iterative.NewDiagonal([]float64{1, 1e-17}), 0, iterative.ErrIllConditionedOperator},
		{"shift on an eigenvalue", iterative.NewDiagonal([]float64{1, 2}), 2, iterative.ErrIllConditionedOperator},
		// ‖T‖ overflows, so ‖A‖·‖x‖·ε exceeds ‖b‖ after one step
		{"badly scaled", iterative.NewDiagonal([]float64{2e154, 1e154}), 0, iterative.ErrSingularOperator},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			s := iterative.NewSymmLQ(iterative.WithShift(tc.shift), iterative.WithMaxIterations(100))
			_, err := s.Solve(tc.a, b)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestSymmLQMaxCount(t *testing.T) {
	t.Parallel()

	const n = 10
	b := matrix.NewVecDenseFrom([]float64{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}, false)
	s := iterative.NewSymmLQ(iterative.WithMaxIterations(n), iterative.WithDelta(1e-12))
	_, err := s.Solve(iterative.NewHilbert(n), b)
	require.ErrorIs(t, err, iterative.ErrMaxCountExceeded)
	require.Equal(t, n, s.Manager().Iterations())
}

func TestSymmLQParameterChecks(t *testing.T) {
	t.Parallel()

	s := iterative.NewSymmLQ()
	a := iterative.NewHilbert(3)
	b := unit(t, 3, 0)

	_, err := s.Solve(mustDense(t, [][]float64{{1, 2, 3}, {4, 5, 6}}), unit(t, 2, 0))
	require.ErrorIs(t, err, iterative.ErrNonSquareOperator)
	_, err = s.Solve(a, unit(t, 2, 0))
	require.ErrorIs(t, err, iterative.ErrDimensionMismatch)
	_, err = s.SolveWithGuess(a, b, unit(t, 4, 0))
	require.ErrorIs(t, err, iterative.ErrDimensionMismatch)
	_, err = s.SolvePreconditioned(a, mustDense(t, [][]float64{{1, 0, 0}, {0, 1, 0}}), b, nil)
	require.ErrorIs(t, err, iterative.ErrNonSquareOperator)
	_, err = s.SolvePreconditioned(a, iterative.NewDiagonal([]float64{1, 1}), b, nil)
	require.ErrorIs(t, err, iterative.ErrDimensionMismatch)
	_, err = s.SolveInPlace(a, nil, b, nil)
	require.ErrorIs(t, err, iterative.ErrNilArgument)
}

// TestSymmLQGuessIgnored checks that the guess only fixes the dimension and
// is never written by the copying entry points.
func TestSymmLQGuessIgnored(t *testing.T) {
	t.Parallel()

	h := iterative.NewHilbert(4)
	b := unit(t, 4, 1)
	s := iterative.NewSymmLQ(iterative.WithDelta(1e-12))

	want, err := s.Solve(h, b)
	require.NoError(t, err)

	x0 := &userVec{data: []float64{7, 7, 7, 7}}
	x, err := s.SolveWithGuess(h, b, x0)
	require.NoError(t, err)
	require.Equal(t, entries(t, want), entries(t, x))
	require.Equal(t, []float64{7, 7, 7, 7}, x0.data)

	got, err := s.SolveInPlace(h, nil, b, x0)
	require.NoError(t, err)
	require.Same(t, x0, got)
	require.Equal(t, entries(t, want), x0.data)
}

func TestSymmLQZeroRightHandSide(t *testing.T) {
	t.Parallel()

	rec := newRecorder(t)
	s := iterative.NewSymmLQ(iterative.WithListener(rec))
	x, err := s.SolveWithGuess(iterative.NewHilbert(3), matrix.NewVecDenseFrom([]float64{0, 0, 0}, false), &userVec{data: []float64{1, 2, 3}})
	require.NoError(t, err)
	require.Equal(t, []float64{0, 0, 0}, entries(t, x))
	require.Equal(t, [4]int{1, 0, 0, 1}, rec.counts)
	require.Equal(t, 0, s.Manager().Iterations())
}

func TestSymmLQEvents(t *testing.T) {
	t.Parallel()

	const n = 5
	h := iterative.NewHilbert(n)
	for j := 0; j < n; j++ {
		rec := newRecorder(t)
		noR := &iterative.ListenerFuncs{OnIteration: func(e iterative.Event) {
			require.False(t, e.ProvidesResidual())
		}}
		s := iterative.NewSymmLQ(
			iterative.WithMaxIterations(100),
			iterative.WithDelta(1e-10),
			iterative.WithListener(rec),
			iterative.WithListener(noR),
		)
		x, err := s.Solve(h, unit(t, n, j))
		require.NoError(t, err)

		k := s.Manager().Iterations()
		require.Equal(t, [4]int{1, k, k, 1}, rec.counts, "column %d", j)
		require.Equal(t, entries(t, x), rec.last)

		require.True(t, s.Manager().RemoveListener(rec))
	}
}

// TestSymmLQNormOfResidual compares the estimated residual norm with the
// true one, in the M-norm when preconditioned.
func TestSymmLQNormOfResidual(t *testing.T) {
	t.Parallel()

	const n = 5
	h := iterative.NewHilbert(n)
	hd, err := h.Dense()
	require.NoError(t, err)
	jac, err := iterative.NewJacobi(hd)
	require.NoError(t, err)

	for _, precon := range []bool{false, true} {
		var m iterative.LinearOperator
		if precon {
			m = jac
		}
		for j := 0; j < n; j++ {
			bs := entries(t, unit(t, n, j))
			compare := func(e iterative.Event) {
				hx, err := h.Operate(e.X)
				require.NoError(t, err)
				r := make([]float64, n)
				floats.SubTo(r, bs, entries(t, hx))
				if precon {
					sr, err := jac.Sqrt().Operate(matrix.NewVecDenseFrom(r, false))
					require.NoError(t, err)
					r = entries(t, sr)
				}
				tn := floats.Norm(r, 2)
				require.InDelta(t, tn, e.NormOfResidual, math.Max(1e-5*tn, 1e-10),
					"precon=%v column %d iteration %d", precon, j, e.Iterations)
			}
			s := iterative.NewSymmLQ(
				iterative.WithMaxIterations(100),
				iterative.WithDelta(1e-12),
				iterative.WithListener(&iterative.ListenerFuncs{OnInitialization: compare, OnIteration: compare}),
			)
			_, err := s.SolvePreconditioned(h, m, unit(t, n, j), nil)
			require.NoError(t, err)
		}
	}
}
