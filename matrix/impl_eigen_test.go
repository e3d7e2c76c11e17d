// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/linsolve/matrix"
)

func TestEigenFactor(t *testing.T) {
	t.Parallel()

	a := choleskyFixture(t)
	for name, in := range map[string]matrix.Matrix{"dense": a, "interface": hide{a}} {
		in := in
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			e, err := matrix.NewEigen(in)
			require.NoError(t, err)

			// A·V = V·D
			require.LessOrEqual(t, maxAbsDiff(t, MustMul(t, a, e.V()), MustMul(t, e.V(), e.D())), 1e-9)
			RequireOrthogonal(t, e.V(), 1e-12)
			require.True(t, matrix.Equal(e.VT(), MustT(t, e.V())))
			require.Same(t, e.D(), e.D())

			values := e.RealEigenvalues()
			require.InDeltaSlice(t, []float64{1137.7969086763537, 72.63312503009787, 23.24143727735928, 5.65767667064948, 0.6708523455402261}, values, 1e-9)
			for i := 1; i < len(values); i++ {
				require.Greater(t, values[i-1], values[i])
			}
			require.InDelta(t, 7290000.0, e.Determinant(), 1e-4)
		})
	}
}

func TestEigenAccessors(t *testing.T) {
	t.Parallel()

	e, err := matrix.NewEigen(MustFrom(t, [][]float64{{2, 1}, {1, 2}}))
	require.NoError(t, err)

	values := e.RealEigenvalues()
	require.InDeltaSlice(t, []float64{3, 1}, values, 1e-14)
	values[0] = 42
	l, err := e.RealEigenvalue(0)
	require.NoError(t, err)
	require.InDelta(t, 3, l, 1e-14)

	v, err := e.Eigenvector(0)
	require.NoError(t, err)
	got := vecValues(t, v)
	require.InDelta(t, math.Abs(got[0]), math.Abs(got[1]), 1e-15)
	require.InDelta(t, 1/math.Sqrt2, math.Abs(got[0]), 1e-15)
	require.Equal(t, math.Signbit(got[0]), math.Signbit(got[1]))

	_, err = e.RealEigenvalue(2)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)
	_, err = e.Eigenvector(-1)
	require.ErrorIs(t, err, matrix.ErrOutOfRange)

	// already diagonal: no rotation, values sorted
	d, err := matrix.NewDiagonal([]float64{1, 3, 2})
	require.NoError(t, err)
	e, err = matrix.NewEigen(d)
	require.NoError(t, err)
	require.Equal(t, []float64{3, 2, 1}, e.RealEigenvalues())
	CompareExact(t, [][]float64{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}}, e.V())
}

func TestEigenSolver(t *testing.T) {
	t.Parallel()

	a := choleskyFixture(t)
	e, err := matrix.NewEigen(a)
	require.NoError(t, err)
	s := e.Solver()
	require.True(t, s.IsNonSingular())

	b, err := matrix.RowSums(a)
	require.NoError(t, err)
	x, err := s.Solve(&hideVec{data: b})
	require.NoError(t, err)
	require.InDeltaSlice(t, onesVec(5), x.RawData(), 1e-9)

	inv, err := s.Inverse()
	require.NoError(t, err)
	id, err := matrix.NewIdentity(5)
	require.NoError(t, err)
	require.LessOrEqual(t, maxAbsDiff(t, MustMul(t, a, inv), id), 1e-9)

	_, err = s.Solve(matrix.NewVecDenseFrom([]float64{1, 2}, false))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	// eigenvalues 2 and 0
	e, err = matrix.NewEigen(MustFrom(t, [][]float64{{1, 1}, {1, 1}}))
	require.NoError(t, err)
	require.False(t, e.Solver().IsNonSingular())
	require.Zero(t, e.Determinant())
	_, err = e.Solver().Solve(matrix.NewVecDenseFrom([]float64{1, 1}, false))
	require.ErrorIs(t, err, matrix.ErrSingular)
}

func TestEigenRejects(t *testing.T) {
	t.Parallel()

	_, err := matrix.NewEigen(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, err = matrix.NewEigen(MustDense(t, 2, 3))
	require.ErrorIs(t, err, matrix.ErrNonSquare)

	_, err = matrix.NewEigen(MustFrom(t, [][]float64{{1, 2}, {2.1, 5}}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	// one sweep is 10 rotations, far from enough for the 5×5 fixture
	_, err = matrix.NewEigen(choleskyFixture(t), matrix.WithEigenMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrNoConvergence)
}
